// internal/adapters/redis_adapter/cache.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// CacheKeyPrefix namespaces cached views
type CacheKeyPrefix string

const (
	PrefixInventory CacheKeyPrefix = "inv"
	PrefixDashboard CacheKeyPrefix = "dash"
	PrefixSuppliers CacheKeyPrefix = "sup"
	PrefixImportJob CacheKeyPrefix = "import:job"
)

// ErrCacheMiss is returned by Get when the key does not exist or expired
var ErrCacheMiss = errors.New("cache miss")

// unlinkBatch bounds the number of keys sent in one UNLINK
const unlinkBatch = 500

// Cache stores JSON encoded values in Redis. Concurrent misses on the same
// key share one load.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	loads  singleflight.Group
	logger *slog.Logger
}

var _ ports.CacheRepository = (*Cache)(nil)

// NewCache creates a cache using ttl for Set
func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		rdb:    client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "cache")),
	}
}

// Set stores value under key with the default ttl
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	return c.SetWithTTL(ctx, key, value, c.ttl)
}

// SetWithTTL stores value under key for ttl. A zero ttl never expires.
func (c *Cache) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	_, err := c.store(ctx, key, value, ttl)
	return err
}

func (c *Cache) store(ctx context.Context, key string, value any, ttl time.Duration) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache value for %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.ErrorContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return raw, fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return raw, nil
}

// Get decodes the value stored under key into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case err != nil:
		c.logger.ErrorContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return nil
}

// GetOrSet fills dest from the cache, falling back to load on a miss. The
// loaded value is cached for ttl; a failed write is logged and the loaded
// value is still returned. Load errors are returned wrapped and not cached.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest any, load func() (any, error), ttl time.Duration) error {
	err := c.Get(ctx, key, dest)
	if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	v, err, _ := c.loads.Do(key, func() (any, error) {
		value, err := load()
		if err != nil {
			return nil, err
		}
		raw, err := c.store(ctx, key, value, ttl)
		if raw == nil {
			return nil, err
		}
		if err != nil {
			c.logger.WarnContext(ctx, "serving uncached value", slog.String("key", key))
		}
		return raw, nil
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}

	return json.Unmarshal(v.([]byte), dest)
}

// Delete removes keys. Missing keys are ignored.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	for len(keys) > 0 {
		n := min(len(keys), unlinkBatch)
		if err := c.rdb.Unlink(ctx, keys[:n]...).Err(); err != nil {
			return fmt.Errorf("failed to delete %d cache keys: %w", n, err)
		}
		keys = keys[n:]
	}
	return nil
}

// DeletePattern removes every key matching a glob pattern
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	var matched []string
	iter := c.rdb.Scan(ctx, 0, pattern, unlinkBatch).Iterator()
	for iter.Next(ctx) {
		matched = append(matched, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache pattern %s: %w", pattern, err)
	}

	c.logger.DebugContext(ctx, "cache pattern cleared",
		slog.String("pattern", pattern),
		slog.Int("keys", len(matched)))
	return c.Delete(ctx, matched...)
}

// Ping checks Redis connectivity
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// BuildKey joins prefix and parts with ':'
func BuildKey(prefix CacheKeyPrefix, parts ...string) string {
	return strings.Join(append([]string{string(prefix)}, parts...), ":")
}

// CacheManager drops cached views after mutations. Failures are logged
// only; a stale view expires with its ttl.
type CacheManager struct {
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewCacheManager creates a cache manager over cache
func NewCacheManager(cache ports.CacheRepository, logger *slog.Logger) *CacheManager {
	return &CacheManager{
		cache:  cache,
		logger: logger.With(slog.String("component", "cache_manager")),
	}
}

// InvalidateInventoryCache drops the item views for ids and the dashboard.
// With no ids every item view is dropped.
func (m *CacheManager) InvalidateInventoryCache(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		m.clear(ctx, PrefixInventory, PrefixDashboard)
		return
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = BuildKey(PrefixInventory, "item", id)
	}
	if err := m.cache.Delete(ctx, keys...); err != nil {
		m.logger.WarnContext(ctx, "item cache invalidation failed",
			slog.Int("ids", len(ids)),
			slog.String("error", err.Error()))
	}
	m.clear(ctx, PrefixDashboard)
}

// InvalidateSupplierCache drops the supplier list and the dashboard
func (m *CacheManager) InvalidateSupplierCache(ctx context.Context) {
	m.clear(ctx, PrefixSuppliers, PrefixDashboard)
}

func (m *CacheManager) clear(ctx context.Context, prefixes ...CacheKeyPrefix) {
	for _, prefix := range prefixes {
		if err := m.cache.DeletePattern(ctx, BuildKey(prefix, "*")); err != nil {
			m.logger.WarnContext(ctx, "cache invalidation failed",
				slog.String("prefix", string(prefix)),
				slog.String("error", err.Error()))
		}
	}
}
