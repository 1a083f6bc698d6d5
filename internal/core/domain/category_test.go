package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

func TestCategoryMap_WithCategory(t *testing.T) {
	base := domain.CategoryMap{"Electronics": {"Phones"}}

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "adds_new_category", input: "Garden"},
		{name: "trims_name", input: "  Toys  "},
		{name: "rejects_blank", input: " ", wantErr: "Category name is required"},
		{name: "rejects_case_insensitive_duplicate", input: "ELECTRONICS", wantErr: "Category Electronics already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := base.WithCategory(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, domain.IsValidationError(err))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			_, ok := next.Lookup(tt.input)
			assert.True(t, ok)
			assert.Len(t, base, 1, "original mapping is not mutated")
		})
	}
}

func TestCategoryMap_WithSubcategory(t *testing.T) {
	base := domain.CategoryMap{"Electronics": {"Phones"}}

	next, err := base.WithSubcategory("electronics", "Cables")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cables", "Phones"}, next["Electronics"])
	assert.Equal(t, []string{"Phones"}, base["Electronics"])

	_, err = base.WithSubcategory("Electronics", "phones")
	assert.True(t, domain.IsValidationError(err))

	_, err = base.WithSubcategory("Garden", "Hoses")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryMap_DocumentRoundTrip(t *testing.T) {
	categories := domain.DefaultCategories()

	decoded, err := domain.DecodeCategoryMap(categories.Fields())
	require.NoError(t, err)
	assert.Equal(t, categories, decoded)
	assert.Equal(t, categories.Names(), decoded.Names())
}

func TestDecodeCategoryMap_Empty(t *testing.T) {
	decoded, err := domain.DecodeCategoryMap(map[string]any{})
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}
