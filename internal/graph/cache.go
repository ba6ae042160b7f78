package graph

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort byte cache for graph responses. Misses and
// failures are indistinguishable on purpose: the caller falls back to the
// service either way.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
}

const cacheKeyPrefix = "graph:"

// RedisCache backs Cache with Redis.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	// Fire and forget; a failed cache write only costs a future fetch.
	c.rdb.Set(ctx, cacheKeyPrefix+key, data, ttl)
}
