// internal/core/domain/supplier.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SupplierStatus represents whether a supplier is in use
type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "Active"
	SupplierInactive SupplierStatus = "Inactive"
)

// Placeholder values for suppliers created during import
const (
	ImportedSupplierCategory = "Imported"
	ImportedSupplierContact  = "Imported supplier"
)

// Supplier represents a vendor goods are purchased from
type Supplier struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Contact   string          `json:"contact,omitempty"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Category  string          `json:"category,omitempty"`
	Status    SupplierStatus  `json:"status"`
	Purchases decimal.Decimal `json:"purchases"`
	Payments  decimal.Decimal `json:"payments"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SupplierInput holds the caller-editable supplier fields
type SupplierInput struct {
	Name      string          `json:"name" validate:"required,max=200"`
	Contact   string          `json:"contact" validate:"max=200"`
	Email     string          `json:"email" validate:"omitempty,email"`
	Phone     string          `json:"phone" validate:"max=50"`
	Category  string          `json:"category" validate:"max=100"`
	Status    SupplierStatus  `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Purchases *decimal.Decimal `json:"purchases,omitempty"`
	Payments  *decimal.Decimal `json:"payments,omitempty"`
}

// PlaceholderSupplier returns the input used to auto-create a supplier that
// an import row referenced by name only.
func PlaceholderSupplier(name string) SupplierInput {
	return SupplierInput{
		Name:     strings.TrimSpace(name),
		Contact:  ImportedSupplierContact,
		Category: ImportedSupplierCategory,
		Status:   SupplierActive,
	}
}

// Apply copies the input onto the supplier and recomputes the balance
func (s *Supplier) Apply(in SupplierInput) {
	s.Name = strings.TrimSpace(in.Name)
	s.Contact = strings.TrimSpace(in.Contact)
	s.Email = strings.TrimSpace(in.Email)
	s.Phone = strings.TrimSpace(in.Phone)
	s.Category = strings.TrimSpace(in.Category)
	s.Status = in.Status
	if s.Status == "" {
		s.Status = SupplierActive
	}
	// omitted ledger fields keep their stored value
	if in.Purchases != nil {
		s.Purchases = *in.Purchases
	}
	if in.Payments != nil {
		s.Payments = *in.Payments
	}
	s.Balance = s.Purchases.Sub(s.Payments)
}

// Fields returns the document representation of the supplier
func (s *Supplier) Fields() map[string]any {
	f := map[string]any{
		"id":        s.ID,
		"name":      s.Name,
		"status":    string(s.Status),
		"purchases": s.Purchases.InexactFloat64(),
		"payments":  s.Payments.InexactFloat64(),
		"balance":   s.Balance.InexactFloat64(),
	}
	putText(f, "contact", s.Contact)
	putText(f, "email", s.Email)
	putText(f, "phone", s.Phone)
	putText(f, "category", s.Category)
	putTime(f, "createdAt", s.CreatedAt)
	putTime(f, "updatedAt", s.UpdatedAt)
	return f
}

// DecodeSupplier builds a supplier from its document representation
func DecodeSupplier(doc map[string]any) (*Supplier, error) {
	var s Supplier
	if err := decodeDocument(doc, &s); err != nil {
		return nil, fmt.Errorf("failed to decode supplier: %w", err)
	}
	return &s, nil
}
