package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the caching operations interface.
// Implementations are free to drop entries at any time; callers treat it as advisory.
type Cache interface {
	// Get retrieves a value by key. Missing keys yield an error matching ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Incr atomically adds one to the integer stored at key, starting from 0,
	// and returns the new value. The value reads back through Get as decimal text.
	Incr(ctx context.Context, key string) (int64, error)

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}

// Nop is a Cache that stores nothing. It stands in when no cache is configured.
type Nop struct{}

func (Nop) Get(_ context.Context, key string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Nop) Delete(context.Context, string) error { return nil }

func (Nop) Incr(context.Context, string) (int64, error) { return 0, nil }

func (Nop) Ping(context.Context) error { return nil }

func (Nop) Close() error { return nil }
