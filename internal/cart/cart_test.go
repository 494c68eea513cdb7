package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionkart/storefront/internal/domain"
	"github.com/fashionkart/storefront/internal/storage"
	filestore "github.com/fashionkart/storefront/internal/storage/file"
	redisstore "github.com/fashionkart/storefront/internal/storage/redis"
)

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) (*Store, storage.Store) {
	t.Helper()
	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return New(context.Background(), fs, newTestLogger()), fs
}

func testProduct(id, name, price string) domain.Product {
	return domain.Product{ID: id, Name: name, Price: price}
}

// failingStorage rejects every write so the store's absorb-and-log path can
// be exercised.
type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, error) {
	return nil, storage.ErrNoValue
}
func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}
func (failingStorage) Delete(context.Context, string) error { return nil }
func (failingStorage) Close() error                         { return nil }

// --- Tests ---

func TestAdd_NewEntry(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "L", 2)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, "L", items[0].Size)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAdd_MergesSameProductAndSize(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "L", 2)
	s.Add(ctx, testProduct("p1", "Tee", "100"), "L", 3)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAdd_SameProductDifferentSize(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "L", 1)
	s.Add(ctx, testProduct("p1", "Tee", "100"), "XL", 1)

	require.Len(t, s.Items(), 2)
}

func TestAdd_DefaultsSizeAndQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "", 0)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.DefaultSize, items[0].Size)
	assert.Equal(t, 1, items[0].Quantity)

	// An empty size addresses the same entry as an explicit "M".
	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 1)
	items = s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemove_AbsentKeyIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 1)
	s.Remove(ctx, "p1", "L")
	s.Remove(ctx, "missing", "M")

	require.Len(t, s.Items(), 1)
}

func TestRemove_ExactKey(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 1)
	s.Add(ctx, testProduct("p1", "Tee", "100"), "L", 1)
	s.Remove(ctx, "p1", "M")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].Size)
}

func TestSetQuantity_Replaces(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 2)
	s.SetQuantity(ctx, "p1", 7, "M")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestSetQuantity_ZeroRemoves(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 2)
	s.SetQuantity(ctx, "p1", 0, "M")

	assert.Empty(t, s.Items())
}

func TestSetQuantity_NegativeRemoves(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 2)
	s.SetQuantity(ctx, "p1", -3, "M")

	assert.Empty(t, s.Items())
}

func TestSetQuantity_AbsentKeyNeverAdds(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.SetQuantity(ctx, "ghost", 5, "M")

	assert.Empty(t, s.Items())
}

func TestTotals(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 2)
	s.Add(ctx, testProduct("p2", "Jacket", "250.50"), "L", 1)

	assert.Equal(t, 3, s.TotalItems())
	assert.InDelta(t, 450.50, s.TotalPrice(), 0.0001)
}

func TestTotalPrice_MalformedPriceCountsZero(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "not-a-price"), "M", 3)
	s.Add(ctx, testProduct("p2", "Jacket", "50"), "M", 1)

	assert.InDelta(t, 50.0, s.TotalPrice(), 0.0001)
}

func TestClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 2)
	s.Clear(ctx)

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
}

func TestPersistence_RoundTrip(t *testing.T) {
	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first := New(ctx, fs, newTestLogger())
	first.Add(ctx, testProduct("p1", "Tee", "100"), "M", 2)
	first.Add(ctx, testProduct("p2", "Jacket", "250.50"), "L", 1)

	// A second store over the same storage hydrates the prior state.
	second := New(ctx, fs, newTestLogger())
	items := second.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "p2", items[1].Product.ID)
}

func TestPersistence_EverySuccessfulMutationWrites(t *testing.T) {
	s, fs := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 2)
	s.SetQuantity(ctx, "p1", 5, "M")

	data, err := fs.Get(ctx, storage.CartKey)
	require.NoError(t, err)
	var items []domain.CartItem
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	s.Remove(ctx, "p1", "M")
	data, err = fs.Get(ctx, storage.CartKey)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestPersistence_RoundTripOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	rs := redisstore.NewWithClient(client)
	ctx := context.Background()

	first := New(ctx, rs, newTestLogger())
	first.Add(ctx, testProduct("p1", "Tee", "100"), "M", 2)

	second := New(ctx, rs, newTestLogger())
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestHydrate_CorruptPayloadStartsEmpty(t *testing.T) {
	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Set(ctx, storage.CartKey, []byte("{not json")))

	s := New(ctx, fs, newTestLogger())
	assert.Empty(t, s.Items())

	// The store remains usable and overwrites the corrupt payload.
	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 1)
	data, err := fs.Get(ctx, storage.CartKey)
	require.NoError(t, err)
	var items []domain.CartItem
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
}

func TestPersistFailure_Absorbed(t *testing.T) {
	s := New(context.Background(), failingStorage{}, newTestLogger())
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 1)

	// In-memory state stays authoritative despite the write failure.
	require.Len(t, s.Items(), 1)
}

func TestSubscribe_NotifiedOnMutations(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var calls int
	s.Subscribe(func() { calls++ })

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 1)
	s.SetQuantity(ctx, "p1", 3, "M")
	s.Remove(ctx, "p1", "M")
	s.Clear(ctx)

	assert.Equal(t, 4, calls)
}

func TestSubscribe_NoOpMutationsDoNotNotify(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var calls int
	s.Subscribe(func() { calls++ })

	s.Remove(ctx, "ghost", "M")
	s.SetQuantity(ctx, "ghost", 2, "M")

	assert.Equal(t, 0, calls)
}

func TestItems_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, testProduct("p1", "Tee", "100"), "M", 1)

	snapshot := s.Items()
	snapshot[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}
