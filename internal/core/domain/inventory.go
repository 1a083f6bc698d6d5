// internal/core/domain/inventory.go
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem represents a single stocked article
type InventoryItem struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Subcategory       string          `json:"subcategory,omitempty"`
	Quantity          int             `json:"quantity"`
	Location          string          `json:"location,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	PricePerPiece     decimal.Decimal `json:"pricePerPiece"`
	SupplierID        string          `json:"supplierId,omitempty"`
	QuantityPurchased int             `json:"quantityPurchased"`
	QuantitySold      int             `json:"quantitySold"`
	ReorderRequired   bool            `json:"reorderRequired"`
	ReorderLevel      *int            `json:"reorderLevel,omitempty"`
	Status            StockStatus     `json:"status"`
	PhotoURL          string          `json:"photoUrl,omitempty"`
	Description       string          `json:"description,omitempty"`
	Archived          bool            `json:"archived"`
	ArchivedAt        *time.Time      `json:"archivedAt,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ItemInput is a partial item as supplied by a caller. Nil fields are
// "not supplied"; numeric fields are raw text and get normalized on apply.
type ItemInput struct {
	ID                *string   `json:"id,omitempty"`
	Name              *string   `json:"name,omitempty"`
	Category          *string   `json:"category,omitempty"`
	Subcategory       *string   `json:"subcategory,omitempty"`
	Quantity          *RawValue `json:"quantity,omitempty"`
	Location          *string   `json:"location,omitempty"`
	Brand             *string   `json:"brand,omitempty"`
	PricePerPiece     *RawValue `json:"pricePerPiece,omitempty"`
	SupplierID        *string   `json:"supplierId,omitempty"`
	QuantityPurchased *RawValue `json:"quantityPurchased,omitempty"`
	QuantitySold      *RawValue `json:"quantitySold,omitempty"`
	ReorderRequired   *bool     `json:"reorderRequired,omitempty"`
	ReorderLevel      *RawValue `json:"reorderLevel,omitempty"`
	PhotoURL          *string   `json:"photoUrl,omitempty"`
	Description       *string   `json:"description,omitempty"`
}

// IsEmpty reports whether no field was supplied
func (in ItemInput) IsEmpty() bool {
	return in == ItemInput{}
}

func applyText(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// Apply merges the supplied fields over the item. Unsupplied fields are left
// untouched; a blank reorder level clears it.
func (i *InventoryItem) Apply(in ItemInput) {
	applyText(&i.Name, in.Name)
	applyText(&i.Category, in.Category)
	applyText(&i.Subcategory, in.Subcategory)
	applyText(&i.Location, in.Location)
	applyText(&i.Brand, in.Brand)
	applyText(&i.SupplierID, in.SupplierID)
	applyText(&i.PhotoURL, in.PhotoURL)
	applyText(&i.Description, in.Description)

	if in.Quantity != nil {
		i.Quantity = NormalizeCount(in.Quantity.String())
	}
	if in.QuantityPurchased != nil {
		i.QuantityPurchased = NormalizeCount(in.QuantityPurchased.String())
	}
	if in.QuantitySold != nil {
		i.QuantitySold = NormalizeCount(in.QuantitySold.String())
	}
	if in.PricePerPiece != nil {
		i.PricePerPiece = NormalizeAmount(in.PricePerPiece.String())
	}
	if in.ReorderRequired != nil {
		i.ReorderRequired = *in.ReorderRequired
	}
	if in.ReorderLevel != nil {
		i.ReorderLevel = NormalizeOptionalCount(in.ReorderLevel.String())
	}
}

// Normalize clamps stored numeric fields at zero
func (i *InventoryItem) Normalize() {
	i.Quantity = clampCount(i.Quantity)
	i.QuantityPurchased = clampCount(i.QuantityPurchased)
	i.QuantitySold = clampCount(i.QuantitySold)
	if i.ReorderLevel != nil {
		level := clampCount(*i.ReorderLevel)
		i.ReorderLevel = &level
	}
	if i.PricePerPiece.IsNegative() {
		i.PricePerPiece = decimal.Zero
	}
}

// EnforceReorderLevel forces ReorderRequired when quantity has fallen to or
// below the reorder level.
func (i *InventoryItem) EnforceReorderLevel() {
	if i.ReorderLevel != nil && i.Quantity <= *i.ReorderLevel {
		i.ReorderRequired = true
	}
}

// RefreshStatus re-derives Status from the quantity state
func (i *InventoryItem) RefreshStatus() {
	i.Status = ComputeStatus(i.Quantity, i.ReorderRequired, i.ReorderLevel)
}

// Validate performs domain validation and returns the first violation
func (i *InventoryItem) Validate() error {
	if i.Name == "" {
		return NewValidationError("name", "Name is required")
	}
	if i.Category == "" {
		return NewValidationError("category", "Category is required")
	}
	return nil
}

// MarkArchived soft-deletes the item
func (i *InventoryItem) MarkArchived(at time.Time) {
	i.Archived = true
	i.ArchivedAt = &at
}

// MarkRestored clears the soft-delete markers
func (i *InventoryItem) MarkRestored() {
	i.Archived = false
	i.ArchivedAt = nil
}

// Clone returns a deep copy of the item
func (i *InventoryItem) Clone() *InventoryItem {
	c := *i
	if i.ReorderLevel != nil {
		level := *i.ReorderLevel
		c.ReorderLevel = &level
	}
	if i.ArchivedAt != nil {
		at := *i.ArchivedAt
		c.ArchivedAt = &at
	}
	return &c
}

// Fields returns the document representation of the item. Fields without a
// value are omitted rather than written as nulls.
func (i *InventoryItem) Fields() map[string]any {
	f := map[string]any{
		"id":                i.ID,
		"name":              i.Name,
		"category":          i.Category,
		"quantity":          i.Quantity,
		"pricePerPiece":     i.PricePerPiece.InexactFloat64(),
		"quantityPurchased": i.QuantityPurchased,
		"quantitySold":      i.QuantitySold,
		"reorderRequired":   i.ReorderRequired,
		"status":            string(i.Status),
		"archived":          i.Archived,
	}
	putText(f, "subcategory", i.Subcategory)
	putText(f, "location", i.Location)
	putText(f, "brand", i.Brand)
	putText(f, "supplierId", i.SupplierID)
	putText(f, "photoUrl", i.PhotoURL)
	putText(f, "description", i.Description)
	putTime(f, "createdAt", i.CreatedAt)
	putTime(f, "updatedAt", i.UpdatedAt)
	if i.ReorderLevel != nil {
		f["reorderLevel"] = *i.ReorderLevel
	}
	if i.ArchivedAt != nil {
		f["archivedAt"] = *i.ArchivedAt
	}
	return f
}

// DecodeInventoryItem builds an item from its document representation
func DecodeInventoryItem(doc map[string]any) (*InventoryItem, error) {
	var item InventoryItem
	if err := decodeDocument(doc, &item); err != nil {
		return nil, fmt.Errorf("failed to decode inventory item: %w", err)
	}
	if !item.Status.IsValid() {
		item.RefreshStatus()
	}
	return &item, nil
}

func putText(f map[string]any, key, value string) {
	if value != "" {
		f[key] = value
	}
}

func putTime(f map[string]any, key string, value time.Time) {
	if !value.IsZero() {
		f[key] = value
	}
}

// decodeDocument converts a loosely typed document into a typed value via its
// JSON form, which every store backend can produce.
func decodeDocument(doc map[string]any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
