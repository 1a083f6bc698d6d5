// internal/adapters/redis_adapter/cache_test.go
package redis_a_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/warehouse-be/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/test/helpers"
)

func newTestCache(t *testing.T) (*redis_a.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis_a.NewCache(client, 5*time.Minute, helpers.TestLogger()), mr
}

func seed(t *testing.T, cache *redis_a.Cache, keys ...string) {
	t.Helper()
	for _, key := range keys {
		require.NoError(t, cache.Set(context.Background(), key, key))
	}
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	t.Run("item", func(t *testing.T) {
		in := domain.InventoryItem{ID: "INV-007", Name: "Stretch Film", Category: "Packaging", Quantity: 12, Location: "P-01"}
		require.NoError(t, cache.Set(ctx, "inv:item:INV-007", in))

		var out domain.InventoryItem
		require.NoError(t, cache.Get(ctx, "inv:item:INV-007", &out))
		assert.Equal(t, in.ID, out.ID)
		assert.Equal(t, in.Name, out.Name)
		assert.Equal(t, in.Quantity, out.Quantity)
		assert.Equal(t, in.Location, out.Location)
	})

	t.Run("id_list", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "ids", []string{"INV-001", "INV-002"}))

		var out []string
		require.NoError(t, cache.Get(ctx, "ids", &out))
		assert.Equal(t, []string{"INV-001", "INV-002"}, out)
	})

	t.Run("default_ttl_applied", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "ttl:default", 1))
		assert.Equal(t, 5*time.Minute, mr.TTL("ttl:default"))
	})

	t.Run("missing_key_is_miss", func(t *testing.T) {
		var out string
		assert.ErrorIs(t, cache.Get(ctx, "nope", &out), redis_a.ErrCacheMiss)
	})

	t.Run("corrupt_value", func(t *testing.T) {
		require.NoError(t, mr.Set("corrupt", "{not json"))

		var out map[string]any
		err := cache.Get(ctx, "corrupt", &out)
		require.Error(t, err)
		assert.NotErrorIs(t, err, redis_a.ErrCacheMiss)
	})
}

func TestCache_SetWithTTL_Expires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "short", "value", time.Second))
	mr.FastForward(2 * time.Second)

	var out string
	assert.ErrorIs(t, cache.Get(ctx, "short", &out), redis_a.ErrCacheMiss)
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	keys := make([]string, 0, 1200)
	for i := range 1200 {
		keys = append(keys, redis_a.BuildKey(redis_a.PrefixInventory, "item", fmt.Sprintf("INV-%04d", i+1)))
	}
	seed(t, cache, keys...)
	seed(t, cache, "sup:list")

	require.NoError(t, cache.Delete(ctx))
	require.NoError(t, cache.Delete(ctx, append(keys, "missing")...))

	assert.Equal(t, []string{"sup:list"}, mr.Keys())
}

func TestCache_DeletePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "dashboard_only", pattern: "dash:*", want: []string{"inv:item:INV-001", "sup:list"}},
		{name: "item_views", pattern: "inv:item:*", want: []string{"dash:stats", "sup:list"}},
		{name: "no_match", pattern: "import:*", want: []string{"dash:stats", "inv:item:INV-001", "sup:list"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, mr := newTestCache(t)
			seed(t, cache, "dash:stats", "inv:item:INV-001", "sup:list")

			require.NoError(t, cache.DeletePattern(context.Background(), tt.pattern))
			assert.Equal(t, tt.want, mr.Keys())
		})
	}
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()

	t.Run("loads_once_then_serves_cache", func(t *testing.T) {
		cache, mr := newTestCache(t)
		var loads int
		load := func() (any, error) {
			loads++
			return domain.DashboardStats{TotalItems: 4}, nil
		}

		for range 3 {
			var stats domain.DashboardStats
			require.NoError(t, cache.GetOrSet(ctx, "dash:stats", &stats, load, time.Minute))
			assert.Equal(t, 4, stats.TotalItems)
		}
		assert.Equal(t, 1, loads)
		assert.Equal(t, time.Minute, mr.TTL("dash:stats"))
	})

	t.Run("load_error_not_cached", func(t *testing.T) {
		cache, mr := newTestCache(t)

		var out string
		err := cache.GetOrSet(ctx, "inv:item:INV-404", &out, func() (any, error) {
			return nil, domain.ErrNotFound
		}, time.Minute)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.False(t, mr.Exists("inv:item:INV-404"))
	})

	t.Run("concurrent_misses_share_load", func(t *testing.T) {
		cache, _ := newTestCache(t)
		var loads atomic.Int32
		release := make(chan struct{})
		load := func() (any, error) {
			loads.Add(1)
			<-release
			return "shared", nil
		}

		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, cache.GetOrSet(ctx, "shared", &results[i], load, time.Minute))
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, loads.Load(), int32(8))
		assert.GreaterOrEqual(t, loads.Load(), int32(1))
		for _, r := range results {
			assert.Equal(t, "shared", r)
		}
	})

	t.Run("redis_down_returns_read_error", func(t *testing.T) {
		cache, mr := newTestCache(t)
		mr.Close()

		var out string
		err := cache.GetOrSet(ctx, "k", &out, func() (any, error) { return "v", nil }, time.Minute)
		require.Error(t, err)
		assert.NotErrorIs(t, err, redis_a.ErrCacheMiss)
	})
}

func TestCacheManager_InvalidateInventoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("selected_ids", func(t *testing.T) {
		cache, mr := newTestCache(t)
		manager := redis_a.NewCacheManager(cache, helpers.TestLogger())
		seed(t, cache, "inv:item:INV-001", "inv:item:INV-002", "dash:stats", "sup:list")

		manager.InvalidateInventoryCache(ctx, "INV-001")

		assert.Equal(t, []string{"inv:item:INV-002", "sup:list"}, mr.Keys())
	})

	t.Run("all_items", func(t *testing.T) {
		cache, mr := newTestCache(t)
		manager := redis_a.NewCacheManager(cache, helpers.TestLogger())
		seed(t, cache, "inv:item:INV-001", "inv:item:INV-002", "dash:stats", "sup:list")

		manager.InvalidateInventoryCache(ctx)

		assert.Equal(t, []string{"sup:list"}, mr.Keys())
	})

	t.Run("redis_down_is_logged_only", func(t *testing.T) {
		cache, mr := newTestCache(t)
		manager := redis_a.NewCacheManager(cache, helpers.TestLogger())
		mr.Close()

		assert.NotPanics(t, func() { manager.InvalidateInventoryCache(ctx, "INV-001") })
	})
}

func TestCacheManager_InvalidateSupplierCache(t *testing.T) {
	cache, mr := newTestCache(t)
	manager := redis_a.NewCacheManager(cache, helpers.TestLogger())
	seed(t, cache, "sup:list", "sup:names", "dash:stats", "inv:item:INV-001")

	manager.InvalidateSupplierCache(context.Background())

	assert.Equal(t, []string{"inv:item:INV-001"}, mr.Keys())
}

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix redis_a.CacheKeyPrefix
		parts  []string
		want   string
	}{
		{name: "item_view", prefix: redis_a.PrefixInventory, parts: []string{"item", "INV-001"}, want: "inv:item:INV-001"},
		{name: "dashboard", prefix: redis_a.PrefixDashboard, parts: []string{"stats"}, want: "dash:stats"},
		{name: "import_job", prefix: redis_a.PrefixImportJob, parts: []string{"abc"}, want: "import:job:abc"},
		{name: "prefix_only", prefix: redis_a.PrefixSuppliers, want: "sup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redis_a.BuildKey(tt.prefix, tt.parts...))
		})
	}
}
