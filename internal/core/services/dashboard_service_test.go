// internal/core/services/dashboard_service_test.go
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/warehouse-be/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/services"
	"github.com/ammerola/warehouse-be/test/helpers"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore(t)
	helpers.SeedSuppliers(t, store, helpers.CreateTestSupplier())
	helpers.SeedItems(t, store,
		helpers.CreateTestInventoryItem(),
		helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
			i.ID = "INV-002"
			i.Quantity = 0
		}),
		helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
			i.ID = "INV-003"
			i.Archived = true
		}),
		helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
			i.ID = "INV-004"
			i.Category = "Packaging"
			i.Quantity = 250
			i.PricePerPiece = decimal.RequireFromString("0.10")
		}),
	)

	svc := services.NewDashboardService(store, nil, 0, time.Minute, helpers.TestLogger())
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalItems)
	assert.Equal(t, 3, stats.ActiveItems)
	assert.Equal(t, 1, stats.ArchivedItems)
	assert.Equal(t, 2, stats.InStock)
	assert.Equal(t, 1, stats.Critical)
	assert.Equal(t, 1, stats.Overstock)
	assert.Equal(t, 275, stats.TotalUnits)
	assert.True(t, decimal.RequireFromString("274.75").Equal(stats.InventoryValue), stats.InventoryValue.String())
	assert.Equal(t, 1, stats.SupplierCount)
	assert.Equal(t, []string{"INV-002"}, stats.ReorderQueue)
	assert.Equal(t, map[string]int{"Electronics": 2, "Packaging": 1}, stats.ByCategory)
}

func TestDashboardService_Cached(t *testing.T) {
	ctx := context.Background()
	tr := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(tr.Client, time.Minute, helpers.TestLogger())

	store := helpers.NewMemoryStore(t)
	helpers.SeedItems(t, store, helpers.CreateTestInventoryItems(2)...)
	svc := services.NewDashboardService(store, cache, 0, time.Minute, helpers.TestLogger())

	first, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalItems)
	assert.True(t, tr.Server.Exists(services.DashboardCacheKey))

	helpers.SeedItems(t, store, helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
		i.ID = "INV-003"
	}))

	cached, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cached.TotalItems, "second read is served from the cache")

	refreshed, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, refreshed.TotalItems)

	after, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, after.TotalItems)

	tr.Server.FastForward(2 * time.Minute)
	assert.False(t, tr.Server.Exists(services.DashboardCacheKey))
}

func TestDashboardService_CacheUnavailable(t *testing.T) {
	tr := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(tr.Client, time.Minute, helpers.TestLogger())
	store := helpers.NewMemoryStore(t)
	helpers.SeedItems(t, store, helpers.CreateTestInventoryItem())
	svc := services.NewDashboardService(store, cache, 0, time.Minute, helpers.TestLogger())

	tr.Server.Close()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalItems)

	_, err = svc.Refresh(context.Background())
	assert.Error(t, err)
}
