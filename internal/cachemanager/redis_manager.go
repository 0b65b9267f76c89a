package cachemanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zjrosen/enroll/internal/log"
)

// Connect builds a go-redis client from either a redis:// URL or a host:port.
func Connect(addr string) (*redis.Client, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

// RedisCacheManager stores JSON-encoded values under "<prefix>:<key>".
// Errors talking to Redis are logged and reported as cache misses.
type RedisCacheManager[K ~string, V any] struct {
	client *redis.Client
	prefix string
}

var _ CacheManager[string, int] = (*RedisCacheManager[string, int])(nil)

// NewRedisCacheManager creates a Redis-backed cache namespaced by prefix.
func NewRedisCacheManager[K ~string, V any](client *redis.Client, prefix string) *RedisCacheManager[K, V] {
	return &RedisCacheManager[K, V]{client: client, prefix: prefix}
}

func (c *RedisCacheManager[K, V]) key(k K) string {
	return c.prefix + ":" + string(k)
}

func (c *RedisCacheManager[K, V]) decode(key K, raw string) (V, bool) {
	var v V
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.ErrorErr(log.CatCache, "decode cached value", err, "key", key)
		return v, false
	}
	return v, true
}

// Get retrieves an item by key.
func (c *RedisCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	var zero V
	raw, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return zero, false
	}
	if err != nil {
		log.ErrorErr(log.CatCache, "redis get", err, "key", key)
		return zero, false
	}
	return c.decode(key, raw)
}

// Set stores value under key for ttl.
func (c *RedisCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.ErrorErr(log.CatCache, "encode cache value", err, "key", key)
		return
	}
	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		log.ErrorErr(log.CatCache, "redis set", err, "key", key)
	}
}
