package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

func TestNextInventoryID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "empty_set", existing: nil, want: "INV-001"},
		{name: "single", existing: []string{"INV-001"}, want: "INV-002"},
		{name: "takes_max_not_count", existing: []string{"INV-001", "INV-007", "INV-003"}, want: "INV-008"},
		{name: "ignores_foreign_ids", existing: []string{"ABC-100", "INV-002", "inv-050", "INV-x"}, want: "INV-003"},
		{name: "grows_past_padding", existing: []string{"INV-999"}, want: "INV-1000"},
		{name: "unpadded_suffix", existing: []string{"INV-12"}, want: "INV-013"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NextInventoryID(tt.existing))
		})
	}
}

func TestNextInventoryID_Sequence(t *testing.T) {
	var ids []string
	for n := 1; n <= 42; n++ {
		next := domain.NextInventoryID(ids)
		assert.Equal(t, fmt.Sprintf("INV-%03d", n), next)
		ids = append(ids, next)
	}
}

func TestNextSupplierAndOrderID(t *testing.T) {
	assert.Equal(t, "SUP-001", domain.NextSupplierID(nil))
	assert.Equal(t, "SUP-004", domain.NextSupplierID([]string{"SUP-003", "SUP-001"}))
	assert.Equal(t, "SO-001", domain.NextOrderID([]string{"INV-009"}))
	assert.Equal(t, "SO-011", domain.NextOrderID([]string{"SO-010"}))
}

func TestLocationScheme_NextCode(t *testing.T) {
	scheme := domain.DefaultLocationScheme()

	tests := []struct {
		name      string
		category  string
		locations []string
		want      string
	}{
		{name: "first_in_category", category: "Electronics", locations: nil, want: "E-01"},
		{name: "continues_after_max", category: "Electronics", locations: []string{"E-01", "E-02", "F-01"}, want: "E-03"},
		{name: "other_prefix_unaffected", category: "Furniture", locations: []string{"E-01", "E-02", "F-01"}, want: "F-02"},
		{name: "case_insensitive_category", category: "electronics", locations: []string{"E-05"}, want: "E-06"},
		{name: "unmapped_uses_first_letter", category: "widgets", locations: []string{"W-09"}, want: "W-10"},
		{name: "ignores_unassigned", category: "Electronics", locations: []string{domain.UnassignedLocation, ""}, want: "E-01"},
		{name: "ignores_longer_prefix", category: "Electronics", locations: []string{"EX-07"}, want: "E-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scheme.NextCode(tt.category, tt.locations))
		})
	}
}

func TestLocationScheme_Prefix(t *testing.T) {
	scheme := domain.NewLocationScheme(map[string]string{"Food & Beverage": "g", "Blank": " "})

	assert.Equal(t, "G", scheme.Prefix("food & beverage"))
	assert.Equal(t, "B", scheme.Prefix("Blank"))
	assert.Equal(t, "Ä", scheme.Prefix("äpfel"))
	assert.Equal(t, "X", scheme.Prefix("  "))
}

func TestLocationScheme_RunningList(t *testing.T) {
	scheme := domain.DefaultLocationScheme()
	running := []string{"E-01"}

	for _, want := range []string{"E-02", "E-03", "E-04"} {
		code := scheme.NextCode("Electronics", running)
		assert.Equal(t, want, code)
		running = append(running, code)
	}
}
