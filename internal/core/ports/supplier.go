// internal/core/ports/supplier.go
package ports

import (
	"context"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// SupplierDirectory is the supplier read/create collaborator used by imports
type SupplierDirectory interface {
	ListSuppliers(ctx context.Context) ([]*domain.Supplier, error)
	CreateSupplier(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error)
}

// SupplierService extends the directory with single-supplier maintenance
type SupplierService interface {
	SupplierDirectory
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, input domain.SupplierInput) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}
