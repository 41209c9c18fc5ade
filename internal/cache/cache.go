package cache

import (
	"encoding/json"
	"time"

	"github.com/aminrz/transfer-registry/pkg/logger"
	"github.com/aminrz/transfer-registry/pkg/redis"
)

// ViewCache is a JSON-backed read-through cache bound to one record type T.
// A zero TTL stores keys without expiry.
type ViewCache[T any] struct {
	adapter redis.RedisAdapter
	ttl     time.Duration
}

func NewViewCache[T any](adapter redis.RedisAdapter, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{adapter: adapter, ttl: ttl}
}

// Get retrieves and unmarshals a cached value. A miss, an unreachable cache
// and a corrupt payload all come back as (nil, false); the caller falls
// through to the store.
func (c *ViewCache[T]) Get(key string) (*T, bool) {
	data, err := c.adapter.Get(key)
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it under key. Cache write failures are
// logged, not returned, so a flaky cache never fails a read.
func (c *ViewCache[T]) Set(key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.adapter.Set(key, data, c.ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Delete drops key. Used to invalidate after a mutation.
func (c *ViewCache[T]) Delete(key string) {
	if err := c.adapter.Del(key); err != nil {
		logger.Warn("cache delete failed", "key", key, "error", err)
	}
}
