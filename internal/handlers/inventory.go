// internal/handlers/inventory.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	redis_a "github.com/ammerola/warehouse-be/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/core/services"
)

const itemCacheTTL = 5 * time.Minute

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	responder
	service     ports.InventoryService
	bulk        ports.BulkCoordinator
	cache       ports.CacheRepository
	invalidator CacheInvalidator
	validate    *validator.Validate
}

// NewInventoryHandler creates a new inventory handler. cache and invalidator
// may be nil.
func NewInventoryHandler(
	service ports.InventoryService,
	bulk ports.BulkCoordinator,
	cache ports.CacheRepository,
	invalidator CacheInvalidator,
	logger *slog.Logger,
) *InventoryHandler {
	return &InventoryHandler{
		responder:   responder{logger: logger.With(slog.String("handler", "inventory"))},
		service:     service,
		bulk:        bulk,
		cache:       cache,
		invalidator: invalidatorOrNoop(invalidator),
		validate:    services.NewValidator(),
	}
}

// GetInventory handles GET /api/v1/inventory/{id}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	item, err := h.loadItem(ctx, id)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to retrieve inventory item")
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) loadItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	if h.cache == nil {
		return h.service.GetByID(ctx, id)
	}

	var (
		item     domain.InventoryItem
		fetchErr error
	)
	err := h.cache.GetOrSet(ctx, redis_a.BuildKey(redis_a.PrefixInventory, "item", id), &item,
		func() (interface{}, error) {
			found, err := h.service.GetByID(ctx, id)
			fetchErr = err
			return found, err
		}, itemCacheTTL)
	if err == nil {
		return &item, nil
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	h.logger.WarnContext(ctx, "item cache unavailable, reading store",
		slog.String("id", id),
		slog.String("error", err.Error()))
	return h.service.GetByID(ctx, id)
}

// ListInventory handles GET /api/v1/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.List(ctx, parseListParams(r))
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to list inventory items")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// NextID handles GET /api/v1/inventory/next-id
func (h *InventoryHandler) NextID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := h.service.NextID(ctx)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to generate inventory id")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

// NextLocation handles GET /api/v1/locations/next?category=
func (h *InventoryHandler) NextLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.URL.Query().Get("category")

	location, err := h.service.NextLocation(ctx, category)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to generate location")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"category": strings.TrimSpace(category),
		"location": location,
	})
}

// CreateInventory handles POST /api/v1/inventory
func (h *InventoryHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.ItemInput
	if err := decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.Create(ctx, input)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to create inventory item")
		return
	}
	h.invalidator.InvalidateInventoryCache(ctx, item.ID)

	h.logger.InfoContext(ctx, "inventory item created",
		slog.String("id", item.ID),
		slog.String("location", item.Location))

	h.respondJSON(w, http.StatusCreated, item)
}

// UpdateInventory handles PUT and PATCH /api/v1/inventory/{id}
func (h *InventoryHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var input domain.ItemInput
	if err := decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.Update(ctx, id, input)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to update inventory item")
		return
	}
	h.invalidator.InvalidateInventoryCache(ctx, id)

	h.respondJSON(w, http.StatusOK, item)
}

// ArchiveInventory handles POST /api/v1/inventory/{id}/archive
func (h *InventoryHandler) ArchiveInventory(w http.ResponseWriter, r *http.Request) {
	h.toggleArchive(w, r, h.service.Archive, "Failed to archive inventory item")
}

// RestoreInventory handles POST /api/v1/inventory/{id}/restore
func (h *InventoryHandler) RestoreInventory(w http.ResponseWriter, r *http.Request) {
	h.toggleArchive(w, r, h.service.Restore, "Failed to restore inventory item")
}

func (h *InventoryHandler) toggleArchive(
	w http.ResponseWriter,
	r *http.Request,
	apply func(context.Context, string) (*domain.InventoryItem, error),
	failure string,
) {
	ctx := r.Context()
	id := r.PathValue("id")

	item, err := apply(ctx, id)
	if err != nil {
		h.respondServiceError(ctx, w, err, failure)
		return
	}
	h.invalidator.InvalidateInventoryCache(ctx, id)

	h.respondJSON(w, http.StatusOK, item)
}

// DeleteInventory handles DELETE /api/v1/inventory/{id}
func (h *InventoryHandler) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, false)
}

// PermanentlyDeleteInventory handles DELETE /api/v1/inventory/{id}/permanent
func (h *InventoryHandler) PermanentlyDeleteInventory(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, true)
}

func (h *InventoryHandler) remove(w http.ResponseWriter, r *http.Request, permanent bool) {
	ctx := r.Context()
	id := r.PathValue("id")

	var err error
	if permanent {
		err = h.service.PermanentlyDelete(ctx, id)
	} else {
		err = h.service.Delete(ctx, id)
	}
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to delete inventory item")
		return
	}
	h.invalidator.InvalidateInventoryCache(ctx, id)

	h.logger.InfoContext(ctx, "inventory item deleted",
		slog.String("id", id),
		slog.Bool("permanent", permanent))

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Inventory item deleted successfully",
		"id":        id,
		"permanent": permanent,
	})
}

// BulkRequest is the body of POST /api/v1/inventory/bulk
type BulkRequest struct {
	IDs       []string          `json:"ids" validate:"required,min=1,max=500,unique,dive,required"`
	Operation domain.BulkAction `json:"operation" validate:"required"`
	Fields    domain.ItemInput  `json:"fields"`
}

// BulkInventory handles POST /api/v1/inventory/bulk
func (h *InventoryHandler) BulkInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := services.ValidateStruct(h.validate, req); err != nil {
		h.respondServiceError(ctx, w, err, "Invalid bulk request")
		return
	}

	result, err := h.bulk.BulkApply(ctx, req.IDs, domain.BulkOperation{
		Action: req.Operation,
		Fields: req.Fields,
	})
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to apply bulk operation")
		return
	}
	h.invalidator.InvalidateInventoryCache(ctx, req.IDs...)

	h.logger.InfoContext(ctx, "bulk operation applied",
		slog.String("operation", string(req.Operation)),
		slog.Int("succeeded", result.SuccessCount),
		slog.Int("failed", result.FailedCount))

	h.respondJSON(w, http.StatusOK, result)
}

// parseListParams parses query parameters for listing inventory
func parseListParams(r *http.Request) ports.ListParams {
	q := r.URL.Query()
	params := ports.ListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "id",
		SortOrder: "asc",
		Archived:  ports.ArchiveActive,
	}

	if page := q.Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := q.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.PageSize = l
		}
	}

	params.Search = q.Get("search")
	params.Category = q.Get("category")
	params.Status = q.Get("status")
	params.Supplier = q.Get("supplier")

	switch ports.ArchiveFilter(q.Get("archived")) {
	case ports.ArchiveArchived:
		params.Archived = ports.ArchiveArchived
	case ports.ArchiveAll:
		params.Archived = ports.ArchiveAll
	}

	if sortBy := q.Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}

	if order := q.Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}
