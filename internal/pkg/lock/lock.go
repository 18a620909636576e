// internal/pkg/lock/lock.go
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Locker serializes mutations that touch a shared resource. The ledger
// credit on approval and the ledger debit on fulfillment both rewrite
// the same production house inventory, so every ledger-touching
// transaction runs under the house's lock.
type Locker interface {
	// Acquire blocks until the lock is held or ctx expires. The returned
	// function releases the lock and must always be called.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// RedisLocker implements Locker on top of bsm/redislock.
type RedisLocker struct {
	client *redislock.Client
}

// NewRedisLocker creates a locker backed by the given Redis client.
func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

// Acquire obtains the lock with linear retry backoff.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lk, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 40),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return func() {
		_ = lk.Release(context.Background())
	}, nil
}

// NoopLocker is used in tests and single-node deployments where the
// database transaction alone provides the required serialization.
type NoopLocker struct{}

func (NoopLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	return func() {}, nil
}

// ProductionHouseKey returns the lock key guarding a production house ledger.
func ProductionHouseKey(houseID uint) string {
	return fmt.Sprintf("lock:production_house:%d", houseID)
}
