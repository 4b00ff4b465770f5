package storage

import "context"

// ScopedStore wraps a Store with a key prefix for workspace isolation.
// This lets many projects share one backend, each under its own namespace:
//
//	ws := storage.Scope(redisStore, "ws:3f2a…:")
//	proj := project.New(ws)
//
// Closing a scoped store does not close the inner store.
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scope returns a store whose keys are prefixed with prefix.
func Scope(inner Store, prefix string) *ScopedStore {
	return &ScopedStore{inner: inner, prefix: prefix}
}

// Get reads the prefixed key.
func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set writes the prefixed key.
func (s *ScopedStore) Set(ctx context.Context, key string, data []byte) error {
	return s.inner.Set(ctx, s.prefix+key, data)
}

// Delete removes the prefixed key.
func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close does nothing; the inner store is owned by the caller.
func (s *ScopedStore) Close() error {
	return nil
}

// Prefix returns the key prefix.
func (s *ScopedStore) Prefix() string {
	return s.prefix
}

var _ Store = (*ScopedStore)(nil)
