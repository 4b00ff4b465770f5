package storage

import (
	"context"

	"github.com/matzehuels/boardcreator/pkg/observability"
)

// ObservedStore reports every operation on the wrapped store to the
// registered [observability.StorageHooks].
type ObservedStore struct {
	Store
}

// Observe wraps s so reads, writes and deletes emit storage hook events.
func Observe(s Store) *ObservedStore {
	return &ObservedStore{Store: s}
}

// Get reads key and reports a hit or miss.
func (s *ObservedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := s.Store.Get(ctx, key)
	if err == nil {
		observability.Storage().OnRead(ctx, key, ok)
	}
	return data, ok, err
}

// Set writes key and reports the value size.
func (s *ObservedStore) Set(ctx context.Context, key string, data []byte) error {
	err := s.Store.Set(ctx, key, data)
	if err == nil {
		observability.Storage().OnWrite(ctx, key, len(data))
	}
	return err
}

// Delete removes key and reports it.
func (s *ObservedStore) Delete(ctx context.Context, key string) error {
	err := s.Store.Delete(ctx, key)
	if err == nil {
		observability.Storage().OnDelete(ctx, key)
	}
	return err
}
