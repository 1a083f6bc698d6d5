// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"
	"strconv"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

var itemNames = []string{
	"USB-C Cable 2m",
	"Office Chair",
	"Steel Bolt M8",
	"Shipping Carton",
	"Black Toner Cartridge",
	"Cordless Drill 18V",
	"Safety Vest",
	"Bottled Water 500ml",
}

var itemCategories = []string{
	"Electronics",
	"Furniture",
	"Hardware",
	"Packaging",
	"Office Supplies",
	"Hardware",
	"Apparel",
	"Food & Beverage",
}

// newItemInput returns the create input for the n-th benchmark item
func newItemInput(n int) domain.ItemInput {
	name := fmt.Sprintf("%s #%d", itemNames[n%len(itemNames)], n)
	category := itemCategories[n%len(itemCategories)]
	return domain.ItemInput{
		Name:          &name,
		Category:      &category,
		Quantity:      domain.Raw(strconv.Itoa(n % 300)),
		PricePerPiece: domain.Raw("12.50"),
		ReorderLevel:  domain.Raw("10"),
	}
}

// createImportRows builds spreadsheet rows the way the parser returns them.
// Every tenth row is missing its name.
func createImportRows(count int) []domain.RawRow {
	rows := make([]domain.RawRow, count)
	for i := range rows {
		name := itemNames[i%len(itemNames)]
		if i%10 == 9 {
			name = ""
		}
		rows[i] = domain.RawRow{
			"Item Name":     name,
			"Category":      itemCategories[i%len(itemCategories)],
			"Qty":           float64(i % 300),
			"Unit Price":    "4.25",
			"Supplier Name": fmt.Sprintf("Supplier %d", i%5),
			"Reorder Level": "15",
		}
	}
	return rows
}
