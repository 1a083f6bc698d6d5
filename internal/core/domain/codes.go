// internal/core/domain/codes.go
package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Code prefixes for sequential identifiers
const (
	InventoryIDPrefix = "INV"
	SupplierIDPrefix  = "SUP"
	OrderIDPrefix     = "SO"

	// UnassignedLocation is used when no location can be resolved for an item
	UnassignedLocation = "UNASSIGNED"
)

var (
	inventoryIDPattern = sequencePattern(InventoryIDPrefix)
	supplierIDPattern  = sequencePattern(SupplierIDPrefix)
	orderIDPattern     = sequencePattern(OrderIDPrefix)
)

func sequencePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-(\d+)$`)
}

// nextSequence returns prefix-(max+1) padded to width digits. Codes that do not
// match the pattern are ignored.
func nextSequence(prefix string, width int, pattern *regexp.Regexp, existing []string) string {
	highest := 0
	for _, code := range existing {
		m := pattern.FindStringSubmatch(strings.TrimSpace(code))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s-%0*d", prefix, width, highest+1)
}

// NextInventoryID returns the next INV-NNN id after the highest existing one
func NextInventoryID(existingIDs []string) string {
	return nextSequence(InventoryIDPrefix, 3, inventoryIDPattern, existingIDs)
}

// NextSupplierID returns the next SUP-NNN id
func NextSupplierID(existingIDs []string) string {
	return nextSequence(SupplierIDPrefix, 3, supplierIDPattern, existingIDs)
}

// NextOrderID returns the next SO-NNN id
func NextOrderID(existingIDs []string) string {
	return nextSequence(OrderIDPrefix, 3, orderIDPattern, existingIDs)
}

// FoldKey trims and case-folds s for case-insensitive matching.
// A Caser is stateful, so a fresh one is used per call.
func FoldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// DefaultLocationPrefixes maps well-known categories to location prefixes
var DefaultLocationPrefixes = map[string]string{
	"Electronics":      "E",
	"Furniture":        "F",
	"Office Supplies":  "O",
	"Apparel":          "A",
	"Hardware":         "H",
	"Food & Beverage":  "G",
	"Health & Beauty":  "B",
	"Tools":            "T",
	"Packaging":        "P",
	"Sports & Outdoor": "S",
}

// LocationScheme allocates <Prefix>-NN location codes per category
type LocationScheme struct {
	prefixes map[string]string
}

// NewLocationScheme creates a scheme from a category → prefix table.
// Category lookups are case-insensitive.
func NewLocationScheme(prefixes map[string]string) *LocationScheme {
	s := &LocationScheme{
		prefixes: make(map[string]string, len(prefixes)),
	}
	for category, prefix := range prefixes {
		prefix = strings.ToUpper(strings.TrimSpace(prefix))
		if prefix == "" {
			continue
		}
		s.prefixes[FoldKey(category)] = prefix
	}
	return s
}

// DefaultLocationScheme returns a scheme built from DefaultLocationPrefixes
func DefaultLocationScheme() *LocationScheme {
	return NewLocationScheme(DefaultLocationPrefixes)
}

// Prefix returns the location prefix for a category, falling back to its
// first letter uppercased.
func (s *LocationScheme) Prefix(category string) string {
	category = strings.TrimSpace(category)
	if p, ok := s.prefixes[FoldKey(category)]; ok {
		return p
	}
	for _, r := range category {
		return string(unicode.ToUpper(r))
	}
	return "X"
}

// NextCode returns {prefix}-(max+1) padded to two digits, scanning the given
// locations for codes with the category's prefix.
func (s *LocationScheme) NextCode(category string, existingLocations []string) string {
	prefix := s.Prefix(category)
	return nextSequence(prefix, 2, sequencePattern(prefix), existingLocations)
}
