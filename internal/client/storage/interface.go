// Package storage provides the client's durable key-value store for
// credentials. It survives process restarts; each operation is independently
// asynchronous and independently failable, so callers must tolerate partial
// application across multiple keys.
package storage

import "context"

// Store is a durable key-value store.
type Store interface {
	// Get returns the value for key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key.
	Clear(ctx context.Context) error
}
