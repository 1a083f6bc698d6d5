package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

func TestNormalizeCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"7", 7},
		{"-3", 0},
		{"3.9", 3},
		{" 12 ", 12},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"1e2", 100},
	}

	for _, tt := range tests {
		t.Run("raw_"+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeCount(tt.raw))
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	assert.True(t, decimal.RequireFromString("12.50").Equal(domain.NormalizeAmount("12.50")))
	assert.True(t, domain.NormalizeAmount("-1").IsZero())
	assert.True(t, domain.NormalizeAmount("free").IsZero())
	assert.True(t, domain.NormalizeAmount("").IsZero())
}

func TestNormalizeOptionalCount(t *testing.T) {
	assert.Nil(t, domain.NormalizeOptionalCount(""))
	assert.Nil(t, domain.NormalizeOptionalCount("   "))
	require.NotNil(t, domain.NormalizeOptionalCount("4.7"))
	assert.Equal(t, 4, *domain.NormalizeOptionalCount("4.7"))
}

func TestRawValue_UnmarshalJSON(t *testing.T) {
	var in domain.ItemInput
	err := json.Unmarshal([]byte(`{"quantity": 7, "pricePerPiece": "2.5", "reorderLevel": "", "quantitySold": null}`), &in)
	require.NoError(t, err)

	require.NotNil(t, in.Quantity)
	assert.Equal(t, "7", in.Quantity.String())
	require.NotNil(t, in.PricePerPiece)
	assert.Equal(t, "2.5", in.PricePerPiece.String())
	require.NotNil(t, in.ReorderLevel)
	assert.True(t, in.ReorderLevel.IsBlank())
	assert.Nil(t, in.QuantitySold)
	assert.Nil(t, in.Name)
}

func TestInventoryItem_Apply(t *testing.T) {
	item := &domain.InventoryItem{
		ID:           "INV-001",
		Name:         "Cable",
		Category:     "Electronics",
		Quantity:     10,
		Brand:        "Acme",
		ReorderLevel: intPtr(3),
	}

	item.Apply(domain.ItemInput{
		Name:     domain.Text("  USB Cable  "),
		Quantity: domain.Raw("3.9"),
	})

	assert.Equal(t, "USB Cable", item.Name)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "Acme", item.Brand, "unsupplied fields are kept")
	require.NotNil(t, item.ReorderLevel)

	item.Apply(domain.ItemInput{ReorderLevel: domain.Raw("")})
	assert.Nil(t, item.ReorderLevel, "blank reorder level clears it")
}

func TestInventoryItem_EnforceReorderLevel(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		level    *int
		flag     bool
		want     bool
	}{
		{name: "below_level_forces_flag", quantity: 2, level: intPtr(5), want: true},
		{name: "at_level_forces_flag", quantity: 5, level: intPtr(5), want: true},
		{name: "above_level_keeps_caller_value", quantity: 6, level: intPtr(5), flag: false, want: false},
		{name: "above_level_keeps_caller_true", quantity: 6, level: intPtr(5), flag: true, want: true},
		{name: "no_level_keeps_caller_value", quantity: 0, flag: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &domain.InventoryItem{Quantity: tt.quantity, ReorderLevel: tt.level, ReorderRequired: tt.flag}
			item.EnforceReorderLevel()
			assert.Equal(t, tt.want, item.ReorderRequired)
		})
	}
}

func TestInventoryItem_Validate(t *testing.T) {
	err := (&domain.InventoryItem{Category: "Tools"}).Validate()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "Name is required", ve.Error())

	err = (&domain.InventoryItem{}).Validate()
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Name is required", ve.Message, "first violated field wins")

	err = (&domain.InventoryItem{Name: "Drill"}).Validate()
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Category is required", ve.Message)

	assert.NoError(t, (&domain.InventoryItem{Name: "Drill", Category: "Tools"}).Validate())
}

func TestInventoryItem_FieldsStripsEmptyValues(t *testing.T) {
	item := &domain.InventoryItem{
		ID:            "INV-004",
		Name:          "Desk",
		Category:      "Furniture",
		Quantity:      2,
		PricePerPiece: decimal.RequireFromString("150.25"),
		Status:        domain.StatusInStock,
		CreatedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	fields := item.Fields()

	for _, key := range []string{"subcategory", "brand", "location", "supplierId", "photoUrl", "description", "reorderLevel", "archivedAt", "updatedAt"} {
		assert.NotContains(t, fields, key)
	}
	assert.Equal(t, 150.25, fields["pricePerPiece"])
	assert.Equal(t, "In Stock", fields["status"])
	assert.Equal(t, false, fields["archived"])
}

func TestDecodeInventoryItem(t *testing.T) {
	archivedAt := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	original := &domain.InventoryItem{
		ID:                "INV-010",
		Name:              "Monitor",
		Category:          "Electronics",
		Subcategory:       "Computers",
		Quantity:          4,
		Location:          "E-04",
		PricePerPiece:     decimal.RequireFromString("199.99"),
		SupplierID:        "SUP-002",
		QuantityPurchased: 6,
		QuantitySold:      2,
		ReorderLevel:      intPtr(5),
		ReorderRequired:   true,
		Status:            domain.StatusLowStock,
		Archived:          true,
		ArchivedAt:        &archivedAt,
	}

	decoded, err := domain.DecodeInventoryItem(original.Fields())
	require.NoError(t, err)

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Quantity, decoded.Quantity)
	assert.True(t, original.PricePerPiece.Equal(decoded.PricePerPiece))
	require.NotNil(t, decoded.ReorderLevel)
	assert.Equal(t, 5, *decoded.ReorderLevel)
	require.NotNil(t, decoded.ArchivedAt)
	assert.True(t, archivedAt.Equal(*decoded.ArchivedAt))
}

func TestDecodeInventoryItem_DerivesMissingStatus(t *testing.T) {
	decoded, err := domain.DecodeInventoryItem(map[string]any{
		"id": "INV-001", "name": "Tape", "category": "Packaging", "quantity": float64(0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCritical, decoded.Status)
}

func TestInventoryItem_ArchiveRestore(t *testing.T) {
	item := &domain.InventoryItem{ID: "INV-001"}
	now := time.Now()

	item.MarkArchived(now)
	assert.True(t, item.Archived)
	require.NotNil(t, item.ArchivedAt)

	clone := item.Clone()
	item.MarkRestored()
	assert.False(t, item.Archived)
	assert.Nil(t, item.ArchivedAt)
	assert.True(t, clone.Archived, "clone is independent")
	assert.NotNil(t, clone.ArchivedAt)
}
