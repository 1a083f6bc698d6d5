// internal/core/services/supplier.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// SupplierService manages supplier records
type SupplierService struct {
	store    ports.DocumentStore
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.SupplierService = (*SupplierService)(nil)

// NewSupplierService creates a new supplier service
func NewSupplierService(store ports.DocumentStore, validate *validator.Validate, logger *slog.Logger) *SupplierService {
	if validate == nil {
		validate = NewValidator()
	}
	return &SupplierService{
		store:    store,
		validate: validate,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.With(slog.String("service", "supplier")),
	}
}

// ListSuppliers returns all suppliers ordered by id
func (s *SupplierService) ListSuppliers(ctx context.Context) ([]*domain.Supplier, error) {
	return loadSuppliers(ctx, s.store)
}

// CreateSupplier validates the input and stores it under the next SUP-NNN id
func (s *SupplierService) CreateSupplier(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error) {
	if err := ValidateStruct(s.validate, input); err != nil {
		return nil, err
	}

	docs, err := s.store.GetAll(ctx, ports.CollectionSuppliers)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}

	now := s.now()
	supplier := &domain.Supplier{
		ID:        domain.NextSupplierID(documentIDs(docs)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	supplier.Apply(input)

	current, err := s.store.GetOne(ctx, ports.CollectionSuppliers, supplier.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check supplier id: %w", err)
	}
	if current != nil {
		return nil, fmt.Errorf("supplier %s: %w", supplier.ID, domain.ErrDuplicateID)
	}

	if err := s.store.SetOne(ctx, ports.CollectionSuppliers, supplier.ID, supplier.Fields()); err != nil {
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "created supplier",
		slog.String("id", supplier.ID),
		slog.String("name", supplier.Name))
	return supplier, nil
}

// GetSupplier retrieves a supplier by id
func (s *SupplierService) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	doc, err := s.store.GetOne(ctx, ports.CollectionSuppliers, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read supplier %s: %w", id, err)
	}
	if doc == nil {
		return nil, notFound("supplier", id)
	}
	return domain.DecodeSupplier(doc)
}

// UpdateSupplier replaces the editable fields of a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, id string, input domain.SupplierInput) (*domain.Supplier, error) {
	if err := ValidateStruct(s.validate, input); err != nil {
		return nil, err
	}
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Apply(input)
	supplier.UpdatedAt = s.now()
	if err := s.store.SetOne(ctx, ports.CollectionSuppliers, id, supplier.Fields()); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "updated supplier", slog.String("id", id))
	return supplier, nil
}

// DeleteSupplier removes a supplier. Items keep their supplier reference.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id string) error {
	if _, err := s.GetSupplier(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteOne(ctx, ports.CollectionSuppliers, id); err != nil {
		if errors.Is(err, ports.ErrDocumentNotFound) {
			return notFound("supplier", id)
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted supplier", slog.String("id", id))
	return nil
}
