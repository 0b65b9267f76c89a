package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/enroll/internal/log"
)

// InMemoryCacheManager keeps values in a process-local go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	name  string
	store *gocache.Cache
}

var _ CacheManager[string, int] = (*InMemoryCacheManager[string, int])(nil)

// NewInMemoryCacheManager creates a cache whose entries default to ttl and are
// swept every cleanup. name only appears in log lines.
func NewInMemoryCacheManager[K ~string, V any](name string, ttl, cleanup time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		name:  name,
		store: gocache.New(ttl, cleanup),
	}
}

func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	raw, found := c.store.Get(string(key))
	if !found {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "cached value has unexpected type", "cache", c.name, "key", key)
		return zero, false
	}
	return v, true
}

func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.store.Set(string(key), value, ttl)
}

// Len reports the number of unexpired entries.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.store.ItemCount()
}
