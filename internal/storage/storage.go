// Package storage is the durable key/value layer behind the identity holder
// and the relationship store. Every value is a JSON document.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or has
// been removed.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a synchronous, write-through key/value store.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
