package cachemanager

import (
	"context"
	"time"

	"github.com/zjrosen/enroll/internal/log"
)

// ReadThroughCache serves values from cache and falls back to load on a miss,
// storing what load returns. Load errors are returned and never cached.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache CacheManager[K, V]
	load  func(ctx context.Context, input I) (V, error)
}

// NewReadThroughCache wraps cache around load. A nil cache sends every call
// straight to load.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	load func(ctx context.Context, input I) (V, error),
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load}
}

func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.cache == nil {
		return r.load(ctx, input)
	}
	if v, ok := r.cache.Get(ctx, key); ok {
		log.Debug(log.CatCache, "cache hit", "key", key)
		return v, nil
	}

	v, err := r.load(ctx, input)
	if err != nil {
		return v, err
	}
	r.cache.Set(ctx, key, v, ttl)
	return v, nil
}
