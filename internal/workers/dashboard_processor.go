// internal/workers/dashboard_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// StatsRefresher recomputes and caches dashboard statistics
type StatsRefresher interface {
	Refresh(ctx context.Context) (*domain.DashboardStats, error)
}

// DashboardProcessor handles dashboard refresh tasks
type DashboardProcessor struct {
	stats  StatsRefresher
	logger *slog.Logger
}

// NewDashboardProcessor creates a new dashboard processor
func NewDashboardProcessor(stats StatsRefresher, logger *slog.Logger) *DashboardProcessor {
	return &DashboardProcessor{
		stats:  stats,
		logger: logger.With(slog.String("processor", "dashboard")),
	}
}

// RefreshStats recomputes the dashboard so API reads hit a warm cache
func (p *DashboardProcessor) RefreshStats(ctx context.Context, t *asynq.Task) error {
	stats, err := p.stats.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh dashboard: %w", err)
	}

	p.logger.InfoContext(ctx, "dashboard refreshed",
		slog.Int("total_items", stats.TotalItems),
		slog.Int("low_stock", stats.LowStock),
		slog.Int("critical", stats.Critical))
	return nil
}
