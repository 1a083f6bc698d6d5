// internal/core/domain/category.go
package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CategoryMap maps a category name to its set of subcategory names.
// Items reference categories by name; removing one does not touch items.
type CategoryMap map[string][]string

// DefaultCategories is the mapping used when none has been stored yet
func DefaultCategories() CategoryMap {
	return CategoryMap{
		"Electronics":     {"Cables", "Components", "Computers", "Phones"},
		"Furniture":       {"Chairs", "Desks", "Shelving"},
		"Office Supplies": {"Paper", "Stationery", "Toner"},
		"Apparel":         {"Footwear", "Outerwear", "Uniforms"},
		"Hardware":        {"Fasteners", "Hand Tools", "Power Tools"},
		"Food & Beverage": {"Beverages", "Dry Goods", "Snacks"},
		"Packaging":       {"Boxes", "Labels", "Tape"},
	}
}

// Clone returns a deep copy of the mapping
func (m CategoryMap) Clone() CategoryMap {
	out := make(CategoryMap, len(m))
	for k, subs := range m {
		out[k] = append([]string(nil), subs...)
	}
	return out
}

// Lookup finds a category by case-insensitive name and returns its stored key
func (m CategoryMap) Lookup(name string) (string, bool) {
	key := FoldKey(name)
	for k := range m {
		if FoldKey(k) == key {
			return k, true
		}
	}
	return "", false
}

// Names returns the category names in sorted order
func (m CategoryMap) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// WithCategory returns a new mapping that also contains the named category
func (m CategoryMap) WithCategory(name string) (CategoryMap, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "Category name is required")
	}
	if existing, ok := m.Lookup(name); ok {
		return nil, NewValidationError("name", "Category %s already exists", existing)
	}
	out := m.Clone()
	out[name] = []string{}
	return out, nil
}

// WithSubcategory returns a new mapping with sub added under category
func (m CategoryMap) WithSubcategory(category, sub string) (CategoryMap, error) {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return nil, NewValidationError("name", "Subcategory name is required")
	}
	key, ok := m.Lookup(category)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", strings.TrimSpace(category), ErrNotFound)
	}
	folded := FoldKey(sub)
	for _, s := range m[key] {
		if FoldKey(s) == folded {
			return nil, NewValidationError("name", "Subcategory %s already exists in %s", s, key)
		}
	}
	out := m.Clone()
	out[key] = append(out[key], sub)
	sort.Strings(out[key])
	return out, nil
}

// Fields returns the document representation of the mapping
func (m CategoryMap) Fields() map[string]any {
	categories := make(map[string]any, len(m))
	for k, subs := range m {
		list := make([]any, len(subs))
		for i, s := range subs {
			list[i] = s
		}
		categories[k] = list
	}
	return map[string]any{"categories": categories}
}

// DecodeCategoryMap builds a mapping from its document representation
func DecodeCategoryMap(doc map[string]any) (CategoryMap, error) {
	var wrapper struct {
		Categories CategoryMap `json:"categories"`
	}
	if err := decodeDocument(doc, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if wrapper.Categories == nil {
		wrapper.Categories = CategoryMap{}
	}
	for k, subs := range wrapper.Categories {
		if subs == nil {
			wrapper.Categories[k] = []string{}
		}
	}
	return wrapper.Categories, nil
}
