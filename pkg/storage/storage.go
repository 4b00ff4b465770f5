// Package storage provides the persistent key-value medium that projects are
// written through to.
//
// Every value is an opaque byte slice stored under a string key. Keys are read
// and written independently; there are no cross-key transactions. Backends:
//
//   - [FileStore]: one JSON file per key under a directory (CLI default)
//   - [MemoryStore]: process-local map, for tests and ephemeral sessions
//   - storage/redis: Redis-backed store for shared deployments
//   - storage/mongo: MongoDB-backed store, one document per key
//
// [Scope] prefixes every key so several projects can share one backend, and
// [Observe] reports reads and writes to the registered observability hooks.
package storage

import (
	"context"
	"errors"
)

// Sentinel errors for storage operations.
var (
	// ErrClosed is returned when a store is used after Close.
	ErrClosed = errors.New("store closed")

	// ErrUnavailable is returned when a backend cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the interface for key-value persistence backends.
type Store interface {
	// Get returns the value stored under key and whether it exists.
	// A missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
