package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for a key that was never written.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the raw storage under the cart store, the service-side
// stand-in for the browser storage the cart layout originally lived in.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
