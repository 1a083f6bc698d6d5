package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

func TestComputeDashboardStats(t *testing.T) {
	items := []*domain.InventoryItem{
		{ID: "INV-001", Category: "Electronics", Quantity: 250, PricePerPiece: decimal.NewFromInt(2)},
		{ID: "INV-002", Category: "Electronics", Quantity: 3, ReorderLevel: intPtr(5), PricePerPiece: decimal.NewFromInt(10)},
		{ID: "INV-003", Category: "Furniture", Quantity: 0, PricePerPiece: decimal.NewFromInt(99)},
		{ID: "INV-004", Category: "Furniture", Quantity: 1000, Archived: true, PricePerPiece: decimal.NewFromInt(1)},
	}

	stats := domain.ComputeDashboardStats(items, 3, domain.DefaultOverstockThreshold)

	assert.Equal(t, 4, stats.TotalItems)
	assert.Equal(t, 3, stats.ActiveItems)
	assert.Equal(t, 1, stats.ArchivedItems)
	assert.Equal(t, 1, stats.InStock)
	assert.Equal(t, 1, stats.LowStock)
	assert.Equal(t, 1, stats.Critical)
	assert.Equal(t, 1, stats.Overstock, "archived items are not counted")
	assert.Equal(t, 253, stats.TotalUnits)
	assert.True(t, decimal.NewFromInt(530).Equal(stats.InventoryValue))
	assert.Equal(t, []string{"INV-002", "INV-003"}, stats.ReorderQueue)
	assert.Equal(t, map[string]int{"Electronics": 2, "Furniture": 1}, stats.ByCategory)
	assert.Equal(t, 3, stats.SupplierCount)
}

func TestSalesOrder_AddLine(t *testing.T) {
	order := &domain.SalesOrder{}
	order.AddLine(&domain.InventoryItem{ID: "INV-001", Name: "Cable", PricePerPiece: decimal.RequireFromString("2.50")}, 4)
	order.AddLine(&domain.InventoryItem{ID: "INV-002", Name: "Plug", PricePerPiece: decimal.RequireFromString("1.25")}, 2)

	assert.Len(t, order.Lines, 2)
	assert.True(t, decimal.RequireFromString("12.50").Equal(order.Total))
	assert.Equal(t, "Cable", order.Lines[0].ItemName)
}
