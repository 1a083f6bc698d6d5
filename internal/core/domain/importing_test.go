package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

func TestColumnField_Synonyms(t *testing.T) {
	tests := []struct {
		header string
		want   domain.ImportField
	}{
		{"Name", domain.FieldName},
		{"NAME", domain.FieldName},
		{"Category", domain.FieldCategory},
		{"CATEGORY", domain.FieldCategory},
		{"Sub Category", domain.FieldSubcategory},
		{"Subcategory", domain.FieldSubcategory},
		{"SubCategory", domain.FieldSubcategory},
		{"SUBCATEGORY", domain.FieldSubcategory},
		{"  qty ", domain.FieldQuantity},
		{"pricePerPiece", domain.FieldPrice},
		{"Supplier ID", domain.FieldSupplier},
		{"reorder level", domain.FieldReorderLevel},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := domain.ColumnField(tt.header)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := domain.ColumnField("Colour")
	assert.False(t, ok)
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", domain.CellText(nil))
	assert.Equal(t, "abc", domain.CellText("  abc "))
	assert.Equal(t, "7", domain.CellText(float64(7)))
	assert.Equal(t, "2.5", domain.CellText(2.5))
	assert.Equal(t, "12", domain.CellText(12))
	assert.Equal(t, "true", domain.CellText(true))
}

func TestParseImportRows(t *testing.T) {
	rows := []domain.RawRow{
		{"NAME": "Laptop", "CATEGORY": "Electronics", "Qty": "4", "Price": "899.99", "Supplier": "Acme"},
		{"Name": "Chair", "Category": "", "Quantity": 3},
		{"Name": "", "Category": "", "Quantity": ""},
		{"Name": "Desk", "Category": "Furniture", "Quantity": "-1", "Price": "abc"},
		{"Name": "Stapler", "Category": "Office Supplies", "SubCategory": "Stationery", "Location": "O-07", "Reorder Level": "2"},
	}

	preview := domain.ParseImportRows(rows, 1)

	assert.Equal(t, 4, preview.TotalRows, "blank rows are skipped")
	require.Len(t, preview.Drafts, 2)
	assert.Equal(t, []string{
		"Row 3: Category is required",
		"Row 5: Quantity must be a non-negative number",
		"Row 5: Price must be a non-negative number",
	}, preview.Errors)

	laptop := preview.Drafts[0]
	assert.Equal(t, 2, laptop.Row)
	assert.Equal(t, "Laptop", laptop.Name)
	assert.Equal(t, 4, laptop.Quantity)
	assert.Equal(t, 4, laptop.QuantityPurchased)
	assert.Equal(t, 0, laptop.QuantitySold)
	assert.False(t, laptop.ReorderRequired)
	assert.True(t, decimal.RequireFromString("899.99").Equal(laptop.PricePerPiece))
	assert.Equal(t, "Acme", laptop.Supplier)

	stapler := preview.Drafts[1]
	assert.Equal(t, 6, stapler.Row)
	assert.Equal(t, "Stationery", stapler.Subcategory)
	assert.Equal(t, "O-07", stapler.Location)
	require.NotNil(t, stapler.ReorderLevel)
	assert.Equal(t, 2, *stapler.ReorderLevel)
}

func TestParseImportRows_HeaderOffset(t *testing.T) {
	preview := domain.ParseImportRows([]domain.RawRow{{"Name": "Widget"}}, 0)
	assert.Equal(t, []string{"Row 1: Category is required"}, preview.Errors)
	assert.Empty(t, preview.Drafts)
}

func TestRawRow_FieldsPrefersFirstNonBlankColumn(t *testing.T) {
	row := domain.RawRow{"Supplier": "", "Supplier ID": "SUP-004", "Supplier Name": "Acme"}
	fields := row.Fields()
	assert.Equal(t, "SUP-004", fields[domain.FieldSupplier])
}

func TestRawRow_FieldsUsesSortedHeaders(t *testing.T) {
	row := domain.RawRow{"SupplierName": "Zeta", "Supplier Name": "Acme"}
	for range 20 {
		assert.Equal(t, "Acme", row.Fields()[domain.FieldSupplier])
	}
}

func TestDraftItem_Input(t *testing.T) {
	draft := domain.DraftItem{
		Name:              "Laptop",
		Category:          "Electronics",
		Quantity:          4,
		QuantityPurchased: 4,
		PricePerPiece:     decimal.RequireFromString("10.5"),
		ReorderLevel:      intPtr(1),
	}

	item := &domain.InventoryItem{}
	item.Apply(draft.Input("SUP-001", "E-01"))

	assert.Equal(t, "SUP-001", item.SupplierID)
	assert.Equal(t, "E-01", item.Location)
	assert.Equal(t, 4, item.QuantityPurchased)
	assert.True(t, decimal.RequireFromString("10.5").Equal(item.PricePerPiece))
	require.NotNil(t, item.ReorderLevel)
	assert.Equal(t, 1, *item.ReorderLevel)
}
