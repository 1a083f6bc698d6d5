// cmd/seeder/classifier.go
package main

import (
	"sort"
	"strings"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// CategoryClassifier guesses a category and subcategory from item text
type CategoryClassifier struct {
	keywords map[string]map[string][]string // category -> subcategory -> keywords
}

// NewCategoryClassifier returns a classifier over the default categories
func NewCategoryClassifier() *CategoryClassifier {
	return &CategoryClassifier{
		keywords: map[string]map[string][]string{
			"Electronics": {
				"Cables":     {"cable", "usb", "hdmi", "charger", "adapter", "cord"},
				"Components": {"resistor", "capacitor", "sensor", "board", "chip", "relay"},
				"Computers":  {"laptop", "desktop", "monitor", "keyboard", "mouse", "ssd"},
				"Phones":     {"phone", "smartphone", "headset", "handset"},
			},
			"Furniture": {
				"Chairs":   {"chair", "stool", "seat"},
				"Desks":    {"desk", "table", "workstation"},
				"Shelving": {"shelf", "shelving", "rack", "bookcase", "cabinet"},
			},
			"Office Supplies": {
				"Paper":      {"paper", "notebook", "envelope", "a4", "letter pad"},
				"Stationery": {"pen", "pencil", "stapler", "marker", "binder", "clip"},
				"Toner":      {"toner", "ink", "cartridge"},
			},
			"Apparel": {
				"Footwear":  {"boot", "shoe", "sneaker"},
				"Outerwear": {"jacket", "coat", "vest", "hoodie"},
				"Uniforms":  {"uniform", "shirt", "overall", "apron"},
			},
			"Hardware": {
				"Fasteners":   {"screw", "bolt", "nut", "washer", "nail", "anchor"},
				"Hand Tools":  {"hammer", "wrench", "pliers", "screwdriver", "saw"},
				"Power Tools": {"drill", "grinder", "sander", "jigsaw", "impact driver"},
			},
			"Food & Beverage": {
				"Beverages": {"water", "juice", "soda", "coffee", "tea"},
				"Dry Goods": {"rice", "flour", "pasta", "sugar", "beans"},
				"Snacks":    {"chips", "cookie", "bar", "nuts", "cracker"},
			},
			"Packaging": {
				"Boxes":  {"box", "carton", "crate"},
				"Labels": {"label", "sticker", "tag"},
				"Tape":   {"tape"},
			},
		},
	}
}

// Classify returns the best matching category and subcategory. ok is false
// when no keyword matches.
func (c *CategoryClassifier) Classify(text string) (category, subcategory string, ok bool) {
	words := " " + strings.ToLower(text) + " "

	best := 0
	for _, cat := range sortedKeys(c.keywords) {
		subs := c.keywords[cat]
		for _, sub := range sortedKeys(subs) {
			score := 0
			for _, kw := range subs[sub] {
				if strings.Contains(words, kw) {
					score += len(kw)
				}
			}
			if score > best {
				best, category, subcategory = score, cat, sub
			}
		}
	}
	return category, subcategory, best > 0
}

// Fill sets a missing category (and subcategory) on row from its name and
// description. It reports whether the row was changed.
func (c *CategoryClassifier) Fill(row domain.RawRow) bool {
	fields := row.Fields()
	if fields[domain.FieldCategory] != "" {
		return false
	}

	category, subcategory, ok := c.Classify(fields[domain.FieldName] + " " + fields[domain.FieldDescription])
	if !ok {
		return false
	}
	row["Category"] = category
	if fields[domain.FieldSubcategory] == "" {
		row["Subcategory"] = subcategory
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
