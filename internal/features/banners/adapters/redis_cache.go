package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ticket-sales/internal/core/cache"
	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/banners/domain"
	"ticket-sales/internal/features/banners/ports"

	"go.uber.org/zap"
)

const (
	bannerListGenerationKey = "banners:generation"
	bannerListKeyPrefix     = "banners:list:"
)

func bannerListKey(gen int64) string {
	return bannerListKeyPrefix + strconv.FormatInt(gen, 10)
}

// RedisListCache implements ports.ListCache on the shared cache. Cache
// failures are logged and otherwise ignored; the database stays the source of truth.
type RedisListCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisListCache creates a new RedisListCache.
func NewRedisListCache(c cache.Cache, ttl time.Duration) *RedisListCache {
	return &RedisListCache{
		cache: c,
		ttl:   ttl,
	}
}

// Get returns the listing cached for the current generation, if any.
func (r *RedisListCache) Get(ctx context.Context) ([]*domain.Banner, int64, bool) {
	gen, err := r.generation(ctx)
	if err != nil {
		metrics.CacheMissesTotal.Inc()
		logger.Get().Warn("Failed to read banner list generation", zap.Error(err))
		return nil, -1, false
	}

	data, err := r.cache.Get(ctx, bannerListKey(gen))
	if err != nil {
		metrics.CacheMissesTotal.Inc()
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Get().Warn("Failed to read banner list from cache", zap.Error(err))
		}
		return nil, gen, false
	}

	var banners []*domain.Banner
	if err := json.Unmarshal(data, &banners); err != nil {
		metrics.CacheMissesTotal.Inc()
		logger.Get().Warn("Discarding corrupt banner list cache entry", zap.Error(err))
		return nil, gen, false
	}

	metrics.CacheHitsTotal.Inc()
	return banners, gen, true
}

// Set stores the listing read under gen. Once the generation has moved on the
// entry is unreachable and simply expires.
func (r *RedisListCache) Set(ctx context.Context, gen int64, banners []*domain.Banner) {
	if gen < 0 {
		return
	}

	data, err := json.Marshal(banners)
	if err != nil {
		logger.Get().Warn("Failed to marshal banner list", zap.Error(err))
		return
	}

	if err := r.cache.Set(ctx, bannerListKey(gen), data, r.ttl); err != nil {
		logger.Get().Warn("Failed to save banner list to cache", zap.Error(err))
	}
}

// Invalidate advances the generation and drops the previous generation's entry.
func (r *RedisListCache) Invalidate(ctx context.Context) {
	gen, err := r.cache.Incr(ctx, bannerListGenerationKey)
	if err != nil {
		logger.Get().Error("Failed to invalidate banner list cache", zap.Error(err))
		return
	}
	if err := r.cache.Delete(ctx, bannerListKey(gen-1)); err != nil {
		logger.Get().Warn("Failed to drop stale banner list", zap.Int64("generation", gen-1), zap.Error(err))
	}
}

func (r *RedisListCache) generation(ctx context.Context) (int64, error) {
	data, err := r.cache.Get(ctx, bannerListGenerationKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	gen, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse banner list generation %q: %w", data, err)
	}
	return gen, nil
}

var _ ports.ListCache = (*RedisListCache)(nil)
