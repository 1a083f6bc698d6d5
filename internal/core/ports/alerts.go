// internal/core/ports/alerts.go
package ports

import (
	"context"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// StockAlerter publishes a notice when an item needs restocking
type StockAlerter interface {
	NotifyLowStock(ctx context.Context, item *domain.InventoryItem) error
}
