// internal/core/domain/order.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusCompleted is the status of a checked-out order
const OrderStatusCompleted = "Completed"

// OrderLine snapshots the item name and price at order time
type OrderLine struct {
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// SalesOrder represents a completed cart checkout
type SalesOrder struct {
	ID        string          `json:"id"`
	Customer  string          `json:"customer,omitempty"`
	Lines     []OrderLine     `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CheckoutLine is a requested cart line
type CheckoutLine struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// CheckoutInput is a cart submitted for checkout
type CheckoutInput struct {
	Customer string         `json:"customer" validate:"max=200"`
	Lines    []CheckoutLine `json:"lines" validate:"required,min=1,dive"`
}

// AddLine appends a line priced from the item and updates the total
func (o *SalesOrder) AddLine(item *InventoryItem, quantity int) {
	total := item.PricePerPiece.Mul(decimal.NewFromInt(int64(quantity)))
	o.Lines = append(o.Lines, OrderLine{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Quantity:  quantity,
		UnitPrice: item.PricePerPiece,
		LineTotal: total,
	})
	o.Total = o.Total.Add(total)
}

// Fields returns the document representation of the order
func (o *SalesOrder) Fields() map[string]any {
	lines := make([]any, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = map[string]any{
			"itemId":    l.ItemID,
			"itemName":  l.ItemName,
			"quantity":  l.Quantity,
			"unitPrice": l.UnitPrice.InexactFloat64(),
			"lineTotal": l.LineTotal.InexactFloat64(),
		}
	}
	f := map[string]any{
		"id":     o.ID,
		"lines":  lines,
		"total":  o.Total.InexactFloat64(),
		"status": o.Status,
	}
	putText(f, "customer", o.Customer)
	putTime(f, "createdAt", o.CreatedAt)
	return f
}

// DecodeSalesOrder builds an order from its document representation
func DecodeSalesOrder(doc map[string]any) (*SalesOrder, error) {
	var o SalesOrder
	if err := decodeDocument(doc, &o); err != nil {
		return nil, fmt.Errorf("failed to decode sales order: %w", err)
	}
	return &o, nil
}
