// internal/cache/cache.go
package cache

import (
	"context"
	"time"
)

// EstimateCache holds serialized stock estimates for a short TTL. The
// estimate is always recomputable from persisted history, so a miss or
// an unavailable backend only costs a recomputation.
type EstimateCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
}

// NoopEstimateCache disables caching. Used in tests.
type NoopEstimateCache struct{}

func (NoopEstimateCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

func (NoopEstimateCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
}
