// internal/core/services/supplier_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/services"
	"github.com/ammerola/warehouse-be/test/helpers"
)

func TestSupplierService_CreateSupplier(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore(t)
	svc := services.NewSupplierService(store, nil, helpers.TestLogger())

	first, err := svc.CreateSupplier(ctx, domain.SupplierInput{
		Name:      "  Globex  ",
		Email:     "sales@globex.example",
		Purchases: ledger(100),
		Payments:  ledger(40),
	})
	require.NoError(t, err)
	assert.Equal(t, "SUP-001", first.ID)
	assert.Equal(t, "Globex", first.Name)
	assert.Equal(t, domain.SupplierActive, first.Status)
	assert.True(t, decimal.NewFromInt(60).Equal(first.Balance))

	second, err := svc.CreateSupplier(ctx, domain.SupplierInput{Name: "Initech", Status: domain.SupplierInactive})
	require.NoError(t, err)
	assert.Equal(t, "SUP-002", second.ID)

	stored, err := svc.GetSupplier(ctx, "SUP-001")
	require.NoError(t, err)
	assert.Equal(t, "sales@globex.example", stored.Email)
	assert.True(t, decimal.NewFromInt(60).Equal(stored.Balance))
}

func TestSupplierService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   domain.SupplierInput
		message string
	}{
		{
			name:    "name_required",
			input:   domain.SupplierInput{Email: "a@b.example"},
			message: "Name is required",
		},
		{
			name:    "email_format",
			input:   domain.SupplierInput{Name: "Globex", Email: "not-an-email"},
			message: "Email must be a valid email address",
		},
		{
			name:    "unknown_status",
			input:   domain.SupplierInput{Name: "Globex", Status: "Paused"},
			message: "Status must be one of: Active, Inactive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := helpers.NewMemoryStore(t)
			svc := services.NewSupplierService(store, services.NewValidator(), helpers.TestLogger())

			_, err := svc.CreateSupplier(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, 0, store.Writes())
		})
	}
}

func TestSupplierService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore(t)
	helpers.SeedSuppliers(t, store, helpers.CreateTestSupplier())
	helpers.SeedItems(t, store, helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
		i.SupplierID = "SUP-001"
	}))
	svc := services.NewSupplierService(store, nil, helpers.TestLogger())

	updated, err := svc.UpdateSupplier(ctx, "SUP-001", domain.SupplierInput{
		Name:   "Acme Components Ltd",
		Phone:  "555-0100",
		Status: domain.SupplierInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Components Ltd", updated.Name)
	assert.Equal(t, domain.SupplierInactive, updated.Status)
	assert.Empty(t, updated.Email, "update replaces every editable field")
	assert.NotEqual(t, updated.CreatedAt, updated.UpdatedAt)

	require.NoError(t, svc.DeleteSupplier(ctx, "SUP-001"))
	_, err = svc.GetSupplier(ctx, "SUP-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "SUP-001", helpers.LoadItem(t, store, "INV-001").SupplierID,
		"items keep their supplier reference")

	suppliers, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Empty(t, suppliers)
}

func TestSupplierService_UpdateKeepsLedger(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore(t)
	helpers.SeedSuppliers(t, store, helpers.CreateTestSupplier(func(s *domain.Supplier) {
		s.Purchases = decimal.NewFromInt(500)
		s.Payments = decimal.NewFromInt(120)
		s.Balance = decimal.NewFromInt(380)
	}))
	svc := services.NewSupplierService(store, nil, helpers.TestLogger())

	renamed, err := svc.UpdateSupplier(ctx, "SUP-001", domain.SupplierInput{Name: "Acme Holdings"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(renamed.Purchases))
	assert.True(t, decimal.NewFromInt(120).Equal(renamed.Payments))
	assert.True(t, decimal.NewFromInt(380).Equal(renamed.Balance))

	paid, err := svc.UpdateSupplier(ctx, "SUP-001", domain.SupplierInput{Name: "Acme Holdings", Payments: ledger(200)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(paid.Purchases))
	assert.True(t, decimal.NewFromInt(300).Equal(paid.Balance))

	stored, err := svc.GetSupplier(ctx, "SUP-001")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(stored.Balance))
}

func ledger(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestSupplierService_MissingSupplier(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore(t)
	svc := services.NewSupplierService(store, nil, helpers.TestLogger())

	_, err := svc.GetSupplier(ctx, "SUP-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateSupplier(ctx, "SUP-404", domain.SupplierInput{Name: "Nobody"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteSupplier(ctx, "SUP-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.Writes())
}
