package storage

import (
	"context"
	"errors"
)

// Known storage keys. Each maps to the JSON-serialized array of one
// collection's entries.
const (
	CartKey     = "fashionkart-cart"
	WishlistKey = "fashionkart-wishlist"
)

// ErrNoValue is returned by Get when nothing is stored under the key.
// Callers treat it as "start empty", never as a failure.
var ErrNoValue = errors.New("storage: no value under key")

// Store is the durable key/value boundary the collection stores persist
// through. Writes are last-writer-wins: two sessions sharing the same store
// can overwrite each other, and no merge is attempted.
type Store interface {
	// Get returns the value stored under key, or ErrNoValue if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key. Absent keys are a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
