// internal/handlers/dashboard.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// DashboardReader returns dashboard statistics
type DashboardReader interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	Refresh(ctx context.Context) (*domain.DashboardStats, error)
}

// DashboardHandler handles dashboard operations
type DashboardHandler struct {
	responder
	stats DashboardReader
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(stats DashboardReader, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		responder: responder{logger: logger.With(slog.String("handler", "dashboard"))},
		stats:     stats,
	}
}

// GetDashboard handles GET /api/v1/dashboard. ?refresh=true bypasses the cache.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	load := h.stats.Stats
	if r.URL.Query().Get("refresh") == "true" {
		load = h.stats.Refresh
	}

	stats, err := load(ctx)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to load dashboard")
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	h.respondJSON(w, http.StatusOK, stats)
}
