// internal/adapters/tabular/parser_test.go
package tabular_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/adapters/tabular"
	"github.com/ammerola/warehouse-be/internal/core/domain"
)

func TestParser_CSV(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRows   int
		wantOffset int
		check      func(t *testing.T, rows []domain.RawRow)
	}{
		{
			name:       "header_then_rows",
			input:      "Name,Category,Qty\nBolt,Hardware,12\nNut,Hardware,40\n",
			wantRows:   2,
			wantOffset: 1,
			check: func(t *testing.T, rows []domain.RawRow) {
				assert.Equal(t, "Bolt", rows[0]["Name"])
				assert.Equal(t, "40", rows[1]["Qty"])
			},
		},
		{
			name:       "leading_blank_rows_shift_offset",
			input:      ",,\n,,\nName,Category\nBolt,Hardware\n",
			wantRows:   1,
			wantOffset: 3,
		},
		{
			name:       "inner_blank_rows_are_kept",
			input:      "Name,Category\nBolt,Hardware\n,\nNut,Hardware\n,\n",
			wantRows:   3,
			wantOffset: 1,
			check: func(t *testing.T, rows []domain.RawRow) {
				assert.True(t, rows[1].IsBlank())
				assert.Equal(t, "Nut", rows[2]["Name"])
			},
		},
		{
			name:       "short_rows_fill_missing_cells",
			input:      "Name,Category,Brand\nBolt\n",
			wantRows:   1,
			wantOffset: 1,
			check: func(t *testing.T, rows []domain.RawRow) {
				assert.Contains(t, rows[0], "Brand")
				assert.Nil(t, rows[0]["Brand"])
			},
		},
		{
			name:       "byte_order_mark_is_stripped",
			input:      "\ufeffName,Category\nBolt,Hardware\n",
			wantRows:   1,
			wantOffset: 1,
			check: func(t *testing.T, rows []domain.RawRow) {
				assert.Equal(t, "Bolt", rows[0]["Name"])
			},
		},
	}

	p := tabular.NewParser(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, offset, err := p.Parse("stock.csv", strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Len(t, rows, tt.wantRows)
			assert.Equal(t, tt.wantOffset, offset)
			if tt.check != nil {
				tt.check(t, rows)
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	p := tabular.NewParser(16)

	_, _, err := p.Parse("stock.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, tabular.ErrUnsupportedFormat)

	_, _, err = p.Parse("empty.csv", strings.NewReader(",,\n\n"))
	assert.ErrorIs(t, err, tabular.ErrNoHeader)

	_, _, err = p.Parse("big.csv", strings.NewReader(strings.Repeat("a", 17)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")

	_, _, err = p.Parse("broken.xlsx", strings.NewReader("not a zip"))
	assert.Error(t, err)
}

func TestWorkbookRoundTrip(t *testing.T) {
	reorder := 5
	var buf bytes.Buffer
	err := tabular.WriteWorkbook(&buf, "Inventory",
		[]string{"Name", "Category", "Quantity", "Price", "Reorder Level"},
		[][]any{
			{"USB-C Cable", "Electronics", 25, decimal.RequireFromString("9.5"), &reorder},
			{"Hammer", "Tools", 0, decimal.Zero, (*int)(nil)},
		})
	require.NoError(t, err)

	rows, offset, err := tabular.NewParser(0).Parse("export.xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, offset)
	require.Len(t, rows, 2)

	preview := domain.ParseImportRows(rows, offset)
	require.Empty(t, preview.Errors)
	require.Len(t, preview.Drafts, 2)

	first := preview.Drafts[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, "USB-C Cable", first.Name)
	assert.Equal(t, 25, first.Quantity)
	assert.True(t, decimal.RequireFromString("9.5").Equal(first.PricePerPiece))
	require.NotNil(t, first.ReorderLevel)
	assert.Equal(t, 5, *first.ReorderLevel)

	assert.Nil(t, preview.Drafts[1].ReorderLevel)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := tabular.WriteCSV(&buf, []string{"Name", "Quantity"}, [][]any{
		{"Bolt, M6", 12},
		{"Nut", nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "Name,Quantity\n\"Bolt, M6\",12\nNut,\n", buf.String())
}
