// internal/core/ports/document_store.go
package ports

import (
	"context"
	"errors"
)

// Collection names
const (
	CollectionInventory   = "inventory"
	CollectionSuppliers   = "suppliers"
	CollectionSalesOrders = "salesOrders"
	CollectionSettings    = "settings"
)

// SettingsCategoriesID is the settings document holding the category map
const SettingsCategoriesID = "categories"

// ErrDocumentNotFound is returned by UpdateOne, DeleteOne and BatchWrite when
// the target document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Document is a loosely typed record. Stores return it with its "id" set.
type Document map[string]any

// Patch is a partial update. Keys in Unset are removed from the document
// instead of being written as nulls.
type Patch struct {
	Set   Document
	Unset []string
}

// WriteOpKind is the kind of a staged batch write
type WriteOpKind string

const (
	WriteSet    WriteOpKind = "set"
	WriteUpdate WriteOpKind = "update"
	WriteDelete WriteOpKind = "delete"
)

// WriteOp is one mutation inside a BatchWrite
type WriteOp struct {
	Kind       WriteOpKind
	Collection string
	ID         string
	Fields     Document
	Unset      []string
}

// DocumentStore defines the persistence port. BatchWrite commits all ops or
// none of them.
type DocumentStore interface {
	GetAll(ctx context.Context, collection string) ([]Document, error)
	// GetOne returns nil, nil when the document does not exist
	GetOne(ctx context.Context, collection, id string) (Document, error)
	SetOne(ctx context.Context, collection, id string, fields Document) error
	UpdateOne(ctx context.Context, collection, id string, patch Patch) error
	DeleteOne(ctx context.Context, collection, id string) error
	BatchWrite(ctx context.Context, ops []WriteOp) error
}

// DocumentID returns the id stored on a document
func DocumentID(doc Document) string {
	id, _ := doc["id"].(string)
	return id
}
