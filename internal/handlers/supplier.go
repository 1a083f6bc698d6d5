// internal/handlers/supplier.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	responder
	service     ports.SupplierService
	invalidator CacheInvalidator
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(service ports.SupplierService, invalidator CacheInvalidator, logger *slog.Logger) *SupplierHandler {
	return &SupplierHandler{
		responder:   responder{logger: logger.With(slog.String("handler", "supplier"))},
		service:     service,
		invalidator: invalidatorOrNoop(invalidator),
	}
}

// ListSuppliers handles GET /api/v1/suppliers
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	suppliers, err := h.service.ListSuppliers(ctx)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to list suppliers")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// GetSupplier handles GET /api/v1/suppliers/{id}
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	supplier, err := h.service.GetSupplier(ctx, r.PathValue("id"))
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to retrieve supplier")
		return
	}

	h.respondJSON(w, http.StatusOK, supplier)
}

// CreateSupplier handles POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.SupplierInput
	if err := decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	supplier, err := h.service.CreateSupplier(ctx, input)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to create supplier")
		return
	}
	h.invalidator.InvalidateSupplierCache(ctx)

	h.respondJSON(w, http.StatusCreated, supplier)
}

// UpdateSupplier handles PUT /api/v1/suppliers/{id}
func (h *SupplierHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.SupplierInput
	if err := decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	supplier, err := h.service.UpdateSupplier(ctx, r.PathValue("id"), input)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to update supplier")
		return
	}
	h.invalidator.InvalidateSupplierCache(ctx)

	h.respondJSON(w, http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /api/v1/suppliers/{id}
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.service.DeleteSupplier(ctx, id); err != nil {
		h.respondServiceError(ctx, w, err, "Failed to delete supplier")
		return
	}
	h.invalidator.InvalidateSupplierCache(ctx)

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Supplier deleted successfully",
		"id":      id,
	})
}
