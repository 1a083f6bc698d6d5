// internal/core/services/photo.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// PhotoService stores item photos and links them to their item
type PhotoService struct {
	items     ports.InventoryService
	storage   ports.ObjectStorage
	processor ports.ImageProcessor
	logger    *slog.Logger
}

// NewPhotoService creates a new photo service
func NewPhotoService(items ports.InventoryService, storage ports.ObjectStorage, processor ports.ImageProcessor, logger *slog.Logger) *PhotoService {
	return &PhotoService{
		items:     items,
		storage:   storage,
		processor: processor,
		logger:    logger.With(slog.String("service", "photo")),
	}
}

// Upload downscales the image, stores it and sets the item's photoUrl
func (s *PhotoService) Upload(ctx context.Context, itemID string, r io.Reader) (*domain.InventoryItem, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	data, err := s.processor.Process(r)
	if err != nil {
		return nil, domain.NewValidationError("photo", "Photo could not be processed: %v", err)
	}

	key := fmt.Sprintf("items/%s/%s.jpg", itemID, uuid.New().String())
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(data), "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	item, err := s.items.Update(ctx, itemID, domain.ItemInput{PhotoURL: domain.Text(url)})
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned photo",
				slog.String("key", key),
				slog.String("error", delErr.Error()))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "item photo uploaded",
		slog.String("id", itemID),
		slog.String("key", key),
		slog.Int("bytes", len(data)))
	return item, nil
}
