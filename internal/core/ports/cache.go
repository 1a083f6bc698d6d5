// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository is a JSON value cache keyed by string. Get reports a miss
// with the adapter's miss error; GetOrSet runs load on a miss and stores the
// result for ttl.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest any) error
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error
	GetOrSet(ctx context.Context, key string, dest any, load func() (any, error), ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}
