// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// InventoryService defines the single-item mutation and query port
type InventoryService interface {
	Create(ctx context.Context, input domain.ItemInput) (*domain.InventoryItem, error)
	Update(ctx context.Context, id string, input domain.ItemInput) (*domain.InventoryItem, error)
	Archive(ctx context.Context, id string) (*domain.InventoryItem, error)
	Restore(ctx context.Context, id string) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
	PermanentlyDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	NextID(ctx context.Context) (string, error)
	NextLocation(ctx context.Context, category string) (string, error)
}

// BulkCoordinator applies one operation across many items
type BulkCoordinator interface {
	BulkApply(ctx context.Context, ids []string, op domain.BulkOperation) (*domain.BulkOperationResult, error)
}

// ArchiveFilter selects items by archive state
type ArchiveFilter string

const (
	ArchiveActive   ArchiveFilter = "active"
	ArchiveArchived ArchiveFilter = "archived"
	ArchiveAll      ArchiveFilter = "all"
)

// ListParams holds parameters for listing inventory
type ListParams struct {
	Search    string
	Category  string
	Status    string
	Supplier  string
	Archived  ArchiveFilter
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ListResult holds the result of listing inventory
type ListResult struct {
	Items      []*domain.InventoryItem `json:"items"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalCount int64                   `json:"totalCount"`
	TotalPages int                     `json:"totalPages"`
}
