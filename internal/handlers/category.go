// internal/handlers/category.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// CategoryCatalog reads and extends the category mapping
type CategoryCatalog interface {
	Categories(ctx context.Context) (domain.CategoryMap, error)
	AddCategory(ctx context.Context, name string) (domain.CategoryMap, error)
	AddSubcategory(ctx context.Context, category, name string) (domain.CategoryMap, error)
}

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	responder
	catalog CategoryCatalog
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(catalog CategoryCatalog, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		responder: responder{logger: logger.With(slog.String("handler", "category"))},
		catalog:   catalog,
	}
}

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to load categories")
		return
	}

	h.respondJSON(w, http.StatusOK, categories)
}

// AddCategory handles POST /api/v1/categories
func (h *CategoryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categories, err := h.catalog.AddCategory(ctx, req.Name)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to add category")
		return
	}

	h.respondJSON(w, http.StatusCreated, categories)
}

// AddSubcategory handles POST /api/v1/categories/{name}/subcategories
func (h *CategoryHandler) AddSubcategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categories, err := h.catalog.AddSubcategory(ctx, r.PathValue("name"), req.Name)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to add subcategory")
		return
	}

	h.respondJSON(w, http.StatusCreated, categories)
}
