// internal/core/services/types.go
package services

import (
	"context"
	"fmt"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// loadItems reads and decodes the whole inventory collection
func loadItems(ctx context.Context, store ports.DocumentStore) ([]*domain.InventoryItem, error) {
	docs, err := store.GetAll(ctx, ports.CollectionInventory)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	items := make([]*domain.InventoryItem, 0, len(docs))
	for _, doc := range docs {
		item, err := domain.DecodeInventoryItem(doc)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", ports.DocumentID(doc), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// loadItem point-reads one item; it returns nil, nil when absent
func loadItem(ctx context.Context, store ports.DocumentStore, id string) (*domain.InventoryItem, error) {
	doc, err := store.GetOne(ctx, ports.CollectionInventory, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory item %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return domain.DecodeInventoryItem(doc)
}

// loadSuppliers reads and decodes the supplier collection
func loadSuppliers(ctx context.Context, store ports.DocumentStore) ([]*domain.Supplier, error) {
	docs, err := store.GetAll(ctx, ports.CollectionSuppliers)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	suppliers := make([]*domain.Supplier, 0, len(docs))
	for _, doc := range docs {
		s, err := domain.DecodeSupplier(doc)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", ports.DocumentID(doc), err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, nil
}

func documentIDs(docs []ports.Document) []string {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, ports.DocumentID(doc))
	}
	return ids
}

func itemLocations(items []*domain.InventoryItem) []string {
	locations := make([]string, 0, len(items))
	for _, item := range items {
		if item.Location != "" {
			locations = append(locations, item.Location)
		}
	}
	return locations
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}
