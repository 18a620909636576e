// internal/cache/redis_cache.go
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisEstimateCache implements EstimateCache on top of Redis. Cache
// failures are logged and treated as misses; the caller recomputes.
type RedisEstimateCache struct {
	client *redis.Client
}

// NewRedisEstimateCache creates a Redis-backed estimate cache.
func NewRedisEstimateCache(client *redis.Client) *RedisEstimateCache {
	return &RedisEstimateCache{client: client}
}

func (c *RedisEstimateCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).WithField("key", key).Warn("estimate cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *RedisEstimateCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("estimate cache write failed")
	}
}
