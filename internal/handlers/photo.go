// internal/handlers/photo.go
package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// PhotoUploader stores an item photo and returns the updated item
type PhotoUploader interface {
	Upload(ctx context.Context, itemID string, r io.Reader) (*domain.InventoryItem, error)
}

// PhotoHandler handles item photo uploads
type PhotoHandler struct {
	responder
	photos      PhotoUploader
	invalidator CacheInvalidator
	maxFileSize int64
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photos PhotoUploader, invalidator CacheInvalidator, maxFileSize int64, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{
		responder:   responder{logger: logger.With(slog.String("handler", "photo"))},
		photos:      photos,
		invalidator: invalidatorOrNoop(invalidator),
		maxFileSize: maxFileSize,
	}
}

// UploadPhoto handles POST /api/v1/inventory/{id}/photo
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Photo is required")
		return
	}
	defer file.Close()

	item, err := h.photos.Upload(ctx, id, file)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to upload photo")
		return
	}
	h.invalidator.InvalidateInventoryCache(ctx, id)

	h.logger.InfoContext(ctx, "photo uploaded",
		slog.String("id", id),
		slog.String("file_name", header.Filename),
		slog.Int64("size", header.Size))

	h.respondJSON(w, http.StatusOK, item)
}
