// Package wishlist implements the persistent wishlist collection store: an
// ordered list of unique product snapshots keyed by product id, mirrored to
// durable storage on every mutation.
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fashionkart/storefront/internal/domain"
	"github.com/fashionkart/storefront/internal/notify"
	"github.com/fashionkart/storefront/internal/storage"
)

// Store owns the wishlist collection for the lifetime of the session. It
// emits user-visible notices through the notifier on adds, removes, and
// clears.
type Store struct {
	mu          sync.Mutex
	items       []domain.Product
	storage     storage.Store
	notifier    notify.Notifier
	logger      *slog.Logger
	subscribers []func()
}

// New creates the wishlist store and hydrates it once from durable storage.
// A missing or unparseable payload starts the wishlist empty.
func New(ctx context.Context, st storage.Store, notifier notify.Notifier, logger *slog.Logger) *Store {
	s := &Store{
		storage:  st,
		notifier: notifier,
		logger:   logger,
	}
	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	data, err := s.storage.Get(ctx, storage.WishlistKey)
	if err != nil {
		if err != storage.ErrNoValue {
			s.logger.Warn("wishlist hydration read failed, starting empty",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	var items []domain.Product
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("wishlist payload unparseable, starting empty",
			slog.String("error", err.Error()),
		)
		return
	}
	s.items = items

	s.logger.Info("wishlist hydrated",
		slog.Int("entries", len(items)),
	)
}

// Add appends the product unless its id is already present. The add is
// idempotent: the duplicate path changes nothing and emits no notice.
func (s *Store) Add(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	for _, item := range s.items {
		if item.ID == product.ID {
			s.mu.Unlock()
			return
		}
	}
	s.items = append(s.items, product)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifier.Push("Added to wishlist",
		fmt.Sprintf("%s has been added to your wishlist.", product.Name))
	s.logger.Info("item added to wishlist",
		slog.String("product_id", product.ID),
	)
	s.notify()
}

// Remove deletes the entry with the given product id and emits a notice
// naming the removed product. Removing an absent id is a silent no-op.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	var removed *domain.Product
	for i := range s.items {
		if s.items[i].ID == productID {
			p := s.items[i]
			removed = &p
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if removed != nil {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if removed == nil {
		return
	}

	s.notifier.Push("Removed from wishlist",
		fmt.Sprintf("%s has been removed from your wishlist.", removed.Name))
	s.logger.Info("item removed from wishlist",
		slog.String("product_id", productID),
	)
	s.notify()
}

// Contains reports whether a product id is in the wishlist.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// Clear empties the wishlist and emits a notice, even when already empty.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifier.Push("Wishlist cleared",
		"All items have been removed from your wishlist.")
	s.logger.Info("wishlist cleared")
	s.notify()
}

// Items returns a snapshot copy of the wishlist in insertion order.
func (s *Store) Items() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems returns the wishlist size.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers a function invoked synchronously after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// persistLocked writes the full serialized collection to durable storage
// while the caller holds s.mu. Failures are logged and absorbed.
func (s *Store) persistLocked(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.Product{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("marshal wishlist", slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Set(ctx, storage.WishlistKey, data); err != nil {
		s.logger.Error("persist wishlist", slog.String("error", err.Error()))
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
