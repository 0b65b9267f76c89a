// Package cachemanager provides TTL caches keyed by string-like keys.
// The in-memory backend wraps patrickmn/go-cache; the Redis backend stores
// JSON-encoded values in go-redis. ReadThroughCache fills either on miss.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a best-effort TTL store. Backend failures surface as misses.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
}
