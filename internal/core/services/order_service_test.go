// internal/core/services/order_service_test.go
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/adapters/memory"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/core/services"
	"github.com/ammerola/warehouse-be/test/helpers"
)

func seedOrderStock(t *testing.T) *memory.DocumentStore {
	t.Helper()
	store := helpers.NewMemoryStore(t)
	helpers.SeedItems(t, store,
		helpers.CreateTestInventoryItem(),
		helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
			i.ID = "INV-002"
			i.Name = "Tape Roll"
			i.Quantity = 4
			i.PricePerPiece = decimal.RequireFromString("2.50")
		}),
		helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
			i.ID = "INV-003"
			i.Archived = true
		}),
	)
	return store
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()
	store := seedOrderStock(t)
	writes := store.Writes()
	svc := services.NewOrderService(store, nil, helpers.TestLogger())

	order, err := svc.Checkout(ctx, domain.CheckoutInput{
		Customer: "Walk-in",
		Lines: []domain.CheckoutLine{
			{ItemID: "INV-001", Quantity: 2},
			{ItemID: "INV-002", Quantity: 4},
			{ItemID: "INV-001", Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "SO-001", order.ID)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	require.Len(t, order.Lines, 2, "repeated lines are combined")
	assert.Equal(t, "INV-001", order.Lines[0].ItemID)
	assert.Equal(t, 5, order.Lines[0].Quantity)
	assert.Equal(t, "Tape Roll", order.Lines[1].ItemName)
	assert.True(t, decimal.RequireFromString("59.95").Equal(order.Total), order.Total.String())
	assert.Equal(t, writes+1, store.Writes(), "order and stock changes commit together")

	cable := helpers.LoadItem(t, store, "INV-001")
	assert.Equal(t, 20, cable.Quantity)
	assert.Equal(t, 5, cable.QuantitySold)

	tape := helpers.LoadItem(t, store, "INV-002")
	assert.Equal(t, 0, tape.Quantity)
	assert.Equal(t, domain.StatusCritical, tape.Status)

	stored, err := svc.GetOrder(ctx, "SO-001")
	require.NoError(t, err)
	assert.Equal(t, "Walk-in", stored.Customer)
	assert.Len(t, stored.Lines, 2)
}

func TestOrderService_CheckoutRejected(t *testing.T) {
	tests := []struct {
		name    string
		input   domain.CheckoutInput
		message string
		errIs   error
	}{
		{
			name:    "no_lines",
			input:   domain.CheckoutInput{},
			message: "Lines is required",
		},
		{
			name:    "zero_quantity",
			input:   domain.CheckoutInput{Lines: []domain.CheckoutLine{{ItemID: "INV-001"}}},
			message: "Quantity must be greater than 0",
		},
		{
			name: "insufficient_stock",
			input: domain.CheckoutInput{Lines: []domain.CheckoutLine{
				{ItemID: "INV-002", Quantity: 1},
				{ItemID: "INV-001", Quantity: 30},
			}},
			message: "Insufficient stock for INV-001: requested 30, available 25",
		},
		{
			name: "combined_lines_exceed_stock",
			input: domain.CheckoutInput{Lines: []domain.CheckoutLine{
				{ItemID: "INV-002", Quantity: 3},
				{ItemID: "INV-002", Quantity: 2},
			}},
			message: "Insufficient stock for INV-002: requested 5, available 4",
		},
		{
			name:    "archived_item",
			input:   domain.CheckoutInput{Lines: []domain.CheckoutLine{{ItemID: "INV-003", Quantity: 1}}},
			message: "Item INV-003 is archived",
		},
		{
			name:  "missing_item",
			input: domain.CheckoutInput{Lines: []domain.CheckoutLine{{ItemID: "INV-404", Quantity: 1}}},
			errIs: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seedOrderStock(t)
			writes := store.Writes()
			svc := services.NewOrderService(store, nil, helpers.TestLogger())

			_, err := svc.Checkout(context.Background(), tt.input)
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.True(t, domain.IsValidationError(err))
				assert.Equal(t, tt.message, err.Error())
			}
			assert.Equal(t, writes, store.Writes(), "nothing is written")
			assert.Equal(t, 4, helpers.LoadItem(t, store, "INV-002").Quantity)
		})
	}
}

func TestOrderService_ListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore(t)
	for id, day := range map[string]int{"SO-001": 1, "SO-002": 3, "SO-003": 2} {
		order := &domain.SalesOrder{
			ID:        id,
			Status:    domain.OrderStatusCompleted,
			CreatedAt: time.Date(2026, 2, day, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, store.SetOne(ctx, ports.CollectionSalesOrders, id, order.Fields()))
	}
	svc := services.NewOrderService(store, nil, helpers.TestLogger())

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"SO-002", "SO-003", "SO-001"}, ids)

	_, err = svc.GetOrder(ctx, "SO-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
