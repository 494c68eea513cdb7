// Package cart implements the persistent cart collection store: an ordered
// in-memory list of cart entries mirrored to durable storage on every
// mutation.
package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/fashionkart/storefront/internal/domain"
	"github.com/fashionkart/storefront/internal/storage"
)

// Store owns the cart collection for the lifetime of the session. It is
// constructed explicitly and handed to consumers; there is no package-level
// instance. Consumers hold read snapshots plus mutation calls, and may
// register subscribers for change notification.
type Store struct {
	mu          sync.Mutex
	items       []domain.CartItem
	storage     storage.Store
	logger      *slog.Logger
	subscribers []func()
}

// New creates the cart store and hydrates it once from durable storage.
// A missing or unparseable payload starts the cart empty; hydration never
// fails the caller.
func New(ctx context.Context, st storage.Store, logger *slog.Logger) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
	}
	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	data, err := s.storage.Get(ctx, storage.CartKey)
	if err != nil {
		if err != storage.ErrNoValue {
			s.logger.Warn("cart hydration read failed, starting empty",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("cart payload unparseable, starting empty",
			slog.String("error", err.Error()),
		)
		return
	}
	s.items = items

	s.logger.Info("cart hydrated",
		slog.Int("entries", len(items)),
	)
}

// Add puts quantity units of the product in the given size into the cart.
// An empty size defaults to "M" and a quantity below one is treated as one.
// If an entry for (product id, size) already exists its quantity is
// incremented; the cart never holds two entries with the same key.
func (s *Store) Add(ctx context.Context, product domain.Product, size string, quantity int) {
	if size == "" {
		size = domain.DefaultSize
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID && s.items[i].Size == size {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, domain.CartItem{
			Product:  product,
			Size:     size,
			Quantity: quantity,
		})
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.Info("item added to cart",
		slog.String("product_id", product.ID),
		slog.String("size", size),
		slog.Int("quantity", quantity),
	)
	s.notify()
}

// Remove deletes the entry with the exact (product id, size) key. Removing an
// absent key is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, productID, size string) {
	if size == "" {
		size = domain.DefaultSize
	}

	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID && s.items[i].Size == size {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if removed {
		s.logger.Info("item removed from cart",
			slog.String("product_id", productID),
			slog.String("size", size),
		)
		s.notify()
	}
}

// SetQuantity replaces the quantity of an existing entry. A quantity of zero
// or less removes the entry. Setting quantity on an absent key is a no-op;
// SetQuantity never adds entries.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int, size string) {
	if size == "" {
		size = domain.DefaultSize
	}
	if quantity <= 0 {
		s.Remove(ctx, productID, size)
		return
	}

	s.mu.Lock()
	updated := false
	for i := range s.items {
		if s.items[i].Product.ID == productID && s.items[i].Size == size {
			s.items[i].Quantity = quantity
			updated = true
			break
		}
	}
	if updated {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if updated {
		s.logger.Info("cart quantity updated",
			slog.String("product_id", productID),
			slog.String("size", size),
			slog.Int("quantity", quantity),
		)
		s.notify()
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.Info("cart cleared")
	s.notify()
}

// Items returns a snapshot copy of the cart entries in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems returns the sum of quantities across all entries.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of unit price times quantity across all entries.
// Unit prices are parsed from the price text snapshotted at add time.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Subscribe registers a function invoked synchronously after every mutation.
// Subscribers must be registered before the store is shared.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// persistLocked writes the full serialized collection to durable storage.
// The caller holds s.mu, so two rapid mutations produce two sequential writes
// in program order and the later write reflects the latest state. Write
// failures are logged and absorbed; the in-memory state stays authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.CartItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("marshal cart", slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Set(ctx, storage.CartKey, data); err != nil {
		s.logger.Error("persist cart", slog.String("error", err.Error()))
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
