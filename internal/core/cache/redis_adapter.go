package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Option configures a RedisAdapter.
type Option func(*RedisAdapter)

// WithKeyPrefix namespaces every key, so several deployments can share one redis database.
func WithKeyPrefix(prefix string) Option {
	return func(r *RedisAdapter) {
		r.prefix = prefix
	}
}

// WithOperationTimeout bounds every call that arrives without its own deadline.
func WithOperationTimeout(d time.Duration) Option {
	return func(r *RedisAdapter) {
		r.timeout = d
	}
}

// RedisAdapter implements Cache on a go-redis client.
type RedisAdapter struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisAdapter parses redisURL (redis://[:password@]host[:port][/database])
// and builds a client. It does not dial; call Ping to check connectivity.
func NewRedisAdapter(redisURL string, opts ...Option) (*RedisAdapter, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	r := &RedisAdapter{
		client:  redis.NewClient(redisOpts),
		timeout: time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}

	logger.Get().Debug("Redis cache configured",
		zap.String("addr", redisOpts.Addr),
		zap.Int("db", redisOpts.DB),
		zap.String("key_prefix", r.prefix),
	)
	return r, nil
}

func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) Delete(ctx context.Context, key string) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) Incr(ctx context.Context, key string) (int64, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	n, err := r.client.Incr(ctx, r.prefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return n, nil
}

func (r *RedisAdapter) Ping(ctx context.Context) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisAdapter) Close() error {
	return r.client.Close()
}

// bound applies the operation timeout unless ctx already carries a deadline.
func (r *RedisAdapter) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

var _ Cache = (*RedisAdapter)(nil)
