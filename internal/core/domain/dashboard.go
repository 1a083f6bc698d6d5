// internal/core/domain/dashboard.go
package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates inventory figures for the dashboard
type DashboardStats struct {
	TotalItems     int             `json:"totalItems"`
	ActiveItems    int             `json:"activeItems"`
	ArchivedItems  int             `json:"archivedItems"`
	InStock        int             `json:"inStock"`
	LowStock       int             `json:"lowStock"`
	Critical       int             `json:"critical"`
	Overstock      int             `json:"overstock"`
	TotalUnits     int             `json:"totalUnits"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
	SupplierCount  int             `json:"supplierCount"`
	ReorderQueue   []string        `json:"reorderQueue"`
	ByCategory     map[string]int  `json:"byCategory"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// ComputeDashboardStats aggregates items. Archived items only count towards
// ArchivedItems. Overstock is counted alongside the derived status.
func ComputeDashboardStats(items []*InventoryItem, supplierCount, overstockThreshold int) *DashboardStats {
	stats := &DashboardStats{
		TotalItems:     len(items),
		InventoryValue: decimal.Zero,
		SupplierCount:  supplierCount,
		ReorderQueue:   []string{},
		ByCategory:     make(map[string]int),
	}
	for _, item := range items {
		if item.Archived {
			stats.ArchivedItems++
			continue
		}
		stats.ActiveItems++
		stats.TotalUnits += item.Quantity
		stats.InventoryValue = stats.InventoryValue.Add(
			item.PricePerPiece.Mul(decimal.NewFromInt(int64(item.Quantity))))
		stats.ByCategory[item.Category]++

		switch ComputeStatus(item.Quantity, item.ReorderRequired, item.ReorderLevel) {
		case StatusCritical:
			stats.Critical++
			stats.ReorderQueue = append(stats.ReorderQueue, item.ID)
		case StatusLowStock:
			stats.LowStock++
			stats.ReorderQueue = append(stats.ReorderQueue, item.ID)
		default:
			stats.InStock++
		}
		if IsOverstock(item.Quantity, overstockThreshold) {
			stats.Overstock++
		}
	}
	sort.Strings(stats.ReorderQueue)
	return stats
}
