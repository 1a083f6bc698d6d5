// internal/core/domain/status.go
package domain

// StockStatus is the derived stock state of an inventory item
type StockStatus string

// Status constants. Overstock is a dashboard statistic only and is never
// produced by ComputeStatus or stored on an item.
const (
	StatusInStock   StockStatus = "In Stock"
	StatusLowStock  StockStatus = "Low Stock"
	StatusCritical  StockStatus = "Critical"
	StatusOverstock StockStatus = "Overstock"
)

// DefaultOverstockThreshold is the quantity above which an item counts as overstocked
const DefaultOverstockThreshold = 200

// ComputeStatus derives the stock status. Rules are evaluated in order and the
// first match wins.
func ComputeStatus(quantity int, reorderRequired bool, reorderLevel *int) StockStatus {
	switch {
	case quantity <= 0:
		return StatusCritical
	case reorderLevel != nil && quantity <= *reorderLevel:
		return StatusLowStock
	case reorderRequired:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// IsOverstock reports whether quantity exceeds the overstock threshold
func IsOverstock(quantity, threshold int) bool {
	return quantity > threshold
}

// NeedsAttention reports whether the status warrants a restock alert
func (s StockStatus) NeedsAttention() bool {
	return s == StatusLowStock || s == StatusCritical
}

// IsValid reports whether s is one of the persisted statuses
func (s StockStatus) IsValid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusCritical:
		return true
	}
	return false
}
