// internal/core/domain/bulk.go
package domain

import (
	"fmt"
	"strings"
)

// BulkAction names a mutation applied to a set of items
type BulkAction string

const (
	BulkArchive           BulkAction = "archive"
	BulkRestore           BulkAction = "restore"
	BulkDelete            BulkAction = "delete"
	BulkPermanentlyDelete BulkAction = "permanentlyDelete"
	BulkUpdate            BulkAction = "update"
)

// BulkOperation is one action plus, for updates, the fields to merge
type BulkOperation struct {
	Action BulkAction
	Fields ItemInput
}

// Validate checks the action is known and that an update carries fields
func (op BulkOperation) Validate() error {
	switch op.Action {
	case BulkArchive, BulkRestore, BulkDelete, BulkPermanentlyDelete:
		return nil
	case BulkUpdate:
		if op.Fields.IsEmpty() {
			return NewValidationError("fields", "Bulk update requires at least one field")
		}
		if op.Fields.ID != nil {
			return NewValidationError("fields", "Bulk update cannot change item ids")
		}
		if op.Fields.Name != nil && strings.TrimSpace(*op.Fields.Name) == "" {
			return NewValidationError("name", "Name is required")
		}
		if op.Fields.Category != nil && strings.TrimSpace(*op.Fields.Category) == "" {
			return NewValidationError("category", "Category is required")
		}
		return nil
	default:
		return NewValidationError("operation", "Unknown bulk operation %q", op.Action)
	}
}

// BulkOperationResult reports per-batch accounting. Missing items are
// reported here instead of failing the whole batch.
type BulkOperationResult struct {
	Success      bool     `json:"success"`
	SuccessCount int      `json:"successCount"`
	FailedCount  int      `json:"failedCount"`
	Errors       []string `json:"errors,omitempty"`
}

// ItemNotFoundMessage is the per-item error recorded for a missing id
func ItemNotFoundMessage(id string) string {
	return fmt.Sprintf("Item %s not found", id)
}
