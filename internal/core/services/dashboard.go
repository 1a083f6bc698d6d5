// internal/core/services/dashboard.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// DashboardCacheKey is where computed dashboard stats are cached
const DashboardCacheKey = "dash:stats"

// DashboardService computes dashboard statistics
type DashboardService struct {
	store              ports.DocumentStore
	cache              ports.CacheRepository
	overstockThreshold int
	ttl                time.Duration
	now                func() time.Time
	logger             *slog.Logger
}

// NewDashboardService creates a new dashboard service. cache may be nil.
func NewDashboardService(store ports.DocumentStore, cache ports.CacheRepository, overstockThreshold int, ttl time.Duration, logger *slog.Logger) *DashboardService {
	if overstockThreshold <= 0 {
		overstockThreshold = domain.DefaultOverstockThreshold
	}
	return &DashboardService{
		store:              store,
		cache:              cache,
		overstockThreshold: overstockThreshold,
		ttl:                ttl,
		now:                func() time.Time { return time.Now().UTC() },
		logger:             logger.With(slog.String("service", "dashboard")),
	}
}

// Stats returns cached statistics, computing them on a miss
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache == nil {
		return s.compute(ctx)
	}

	var stats domain.DashboardStats
	err := s.cache.GetOrSet(ctx, DashboardCacheKey, &stats, func() (interface{}, error) {
		return s.compute(ctx)
	}, s.ttl)
	if err != nil {
		s.logger.WarnContext(ctx, "dashboard cache unavailable, computing directly",
			slog.String("error", err.Error()))
		return s.compute(ctx)
	}
	return &stats, nil
}

// Refresh recomputes the statistics and overwrites the cached copy
func (s *DashboardService) Refresh(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, DashboardCacheKey, stats, s.ttl); err != nil {
			return nil, fmt.Errorf("failed to cache dashboard stats: %w", err)
		}
	}
	s.logger.InfoContext(ctx, "dashboard stats refreshed",
		slog.Int("active_items", stats.ActiveItems),
		slog.Int("reorder_queue", len(stats.ReorderQueue)))
	return stats, nil
}

func (s *DashboardService) compute(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		items     []*domain.InventoryItem
		suppliers []ports.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = loadItems(gctx, s.store)
		return err
	})
	g.Go(func() error {
		var err error
		suppliers, err = s.store.GetAll(gctx, ports.CollectionSuppliers)
		if err != nil {
			return fmt.Errorf("failed to load suppliers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := domain.ComputeDashboardStats(items, len(suppliers), s.overstockThreshold)
	stats.GeneratedAt = s.now()
	return stats, nil
}
