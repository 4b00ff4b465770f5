// Package redis provides a Redis-backed storage.Store for deployments where
// several processes share projects.
//
// Each key maps to one Redis string under a configurable prefix:
//
//	store, err := redis.Open(ctx, redis.Config{Addr: "localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/matzehuels/boardcreator/pkg/storage"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "boardcreator:"

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key. Empty means DefaultPrefix.
	Prefix string
}

// Store implements storage.Store on top of a Redis client.
type Store struct {
	client *goredis.Client
	prefix string
}

// Open connects to Redis and verifies the connection with PING, retrying
// transient failures with backoff.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := storage.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return storage.Retryable(fmt.Errorf("%w: %v", storage.ErrUnavailable, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return New(client, cfg.Prefix), nil
}

// New wraps an existing client. An empty prefix means DefaultPrefix.
func New(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get retrieves a value. redis.Nil is reported as a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores a value without expiration.
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// Delete removes a value.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ storage.Store = (*Store)(nil)
