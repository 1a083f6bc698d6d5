// internal/core/services/inventory.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// InventoryService handles single-item inventory mutations
type InventoryService struct {
	store     ports.DocumentStore
	locations *domain.LocationScheme
	alerter   ports.StockAlerter
	now       func() time.Time
	logger    *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service. alerter may be nil.
func NewInventoryService(store ports.DocumentStore, locations *domain.LocationScheme, alerter ports.StockAlerter, logger *slog.Logger) *InventoryService {
	if locations == nil {
		locations = domain.DefaultLocationScheme()
	}
	return &InventoryService{
		store:     store,
		locations: locations,
		alerter:   alerter,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.With(slog.String("service", "inventory")),
	}
}

// Create normalizes the input, resolves id and location, derives the reorder
// flag and status, and writes the new item. An id that already exists fails
// with domain.ErrDuplicateID.
func (s *InventoryService) Create(ctx context.Context, input domain.ItemInput) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{}
	item.Apply(input)
	item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if input.ID != nil {
		item.ID = strings.TrimSpace(*input.ID)
	}
	if item.ID == "" || item.Location == "" {
		existing, err := loadItems(ctx, s.store)
		if err != nil {
			return nil, err
		}
		if item.ID == "" {
			ids := make([]string, len(existing))
			for i, e := range existing {
				ids[i] = e.ID
			}
			item.ID = domain.NextInventoryID(ids)
		}
		if item.Location == "" {
			item.Location = s.locations.NextCode(item.Category, itemLocations(existing))
		}
	}

	item.EnforceReorderLevel()
	item.RefreshStatus()
	now := s.now()
	item.CreatedAt = now
	item.UpdatedAt = now

	// The id may have been allocated by a concurrent create since it was generated.
	current, err := s.store.GetOne(ctx, ports.CollectionInventory, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check inventory id: %w", err)
	}
	if current != nil {
		return nil, fmt.Errorf("inventory item %s: %w", item.ID, domain.ErrDuplicateID)
	}

	if err := s.store.SetOne(ctx, ports.CollectionInventory, item.ID, item.Fields()); err != nil {
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	s.logger.InfoContext(ctx, "created inventory item",
		slog.String("id", item.ID),
		slog.String("name", item.Name),
		slog.String("location", item.Location),
		slog.String("status", string(item.Status)))

	s.alert(ctx, item, "")
	return item, nil
}

// Update merges the supplied fields over the stored item and re-derives the
// reorder flag and status. A missing item fails with domain.ErrNotFound and
// nothing is written.
func (s *InventoryService) Update(ctx context.Context, id string, input domain.ItemInput) (*domain.InventoryItem, error) {
	existing, err := loadItem(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("inventory item", id)
	}

	item := existing.Clone()
	item.Apply(input)
	item.Normalize()
	item.EnforceReorderLevel()
	item.RefreshStatus()
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.UpdatedAt = s.now()

	if err := s.store.SetOne(ctx, ports.CollectionInventory, id, item.Fields()); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.logger.InfoContext(ctx, "updated inventory item",
		slog.String("id", id),
		slog.Int("quantity", item.Quantity),
		slog.String("status", string(item.Status)))

	s.alert(ctx, item, existing.Status)
	return item, nil
}

// Archive soft-deletes an item
func (s *InventoryService) Archive(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item, err := s.mustLoad(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.store.UpdateOne(ctx, ports.CollectionInventory, id, archivePatch(now)); err != nil {
		return nil, s.mapWriteError(id, err)
	}
	item.MarkArchived(now)

	s.logger.InfoContext(ctx, "archived inventory item", slog.String("id", id))
	return item, nil
}

// Restore clears the soft-delete markers of an item
func (s *InventoryService) Restore(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item, err := s.mustLoad(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateOne(ctx, ports.CollectionInventory, id, restorePatch()); err != nil {
		return nil, s.mapWriteError(id, err)
	}
	item.MarkRestored()

	s.logger.InfoContext(ctx, "restored inventory item", slog.String("id", id))
	return item, nil
}

// Delete removes an item
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

// PermanentlyDelete removes an item. It has the same effect as Delete.
func (s *InventoryService) PermanentlyDelete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *InventoryService) remove(ctx context.Context, id string) error {
	if _, err := s.mustLoad(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteOne(ctx, ports.CollectionInventory, id); err != nil {
		return s.mapWriteError(id, err)
	}

	s.logger.InfoContext(ctx, "deleted inventory item", slog.String("id", id))
	return nil
}

// GetByID retrieves an inventory item by id
func (s *InventoryService) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.mustLoad(ctx, id)
}

// NextID previews the id the next create without an explicit id would get
func (s *InventoryService) NextID(ctx context.Context) (string, error) {
	docs, err := s.store.GetAll(ctx, ports.CollectionInventory)
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}
	return domain.NextInventoryID(documentIDs(docs)), nil
}

// NextLocation previews the next location code for a category
func (s *InventoryService) NextLocation(ctx context.Context, category string) (string, error) {
	if strings.TrimSpace(category) == "" {
		return "", domain.NewValidationError("category", "Category is required")
	}
	items, err := loadItems(ctx, s.store)
	if err != nil {
		return "", err
	}
	return s.locations.NextCode(category, itemLocations(items)), nil
}

// List returns a filtered, sorted page of items
func (s *InventoryService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	items, err := loadItems(ctx, s.store)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if matchesListParams(item, params) {
			filtered = append(filtered, item)
		}
	}
	sortItems(filtered, params.SortBy, params.SortOrder)

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &ports.ListResult{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: int64(total),
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func (s *InventoryService) mustLoad(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item, err := loadItem(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("inventory item", id)
	}
	return item, nil
}

func (s *InventoryService) mapWriteError(id string, err error) error {
	if errors.Is(err, ports.ErrDocumentNotFound) {
		return notFound("inventory item", id)
	}
	return fmt.Errorf("failed to write inventory item %s: %w", id, err)
}

// alert publishes a low-stock notice when an item newly needs attention
func (s *InventoryService) alert(ctx context.Context, item *domain.InventoryItem, previous domain.StockStatus) {
	if s.alerter == nil || !item.Status.NeedsAttention() || previous.NeedsAttention() {
		return
	}
	if err := s.alerter.NotifyLowStock(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "failed to publish low stock alert",
			slog.String("id", item.ID),
			slog.String("error", err.Error()))
	}
}

func archivePatch(at time.Time) ports.Patch {
	return ports.Patch{Set: ports.Document{"archived": true, "archivedAt": at}}
}

func restorePatch() ports.Patch {
	return ports.Patch{Set: ports.Document{"archived": false}, Unset: []string{"archivedAt"}}
}

func matchesListParams(item *domain.InventoryItem, p ports.ListParams) bool {
	switch p.Archived {
	case ports.ArchiveAll:
	case ports.ArchiveArchived:
		if !item.Archived {
			return false
		}
	default:
		if item.Archived {
			return false
		}
	}
	if p.Category != "" && domain.FoldKey(item.Category) != domain.FoldKey(p.Category) {
		return false
	}
	if p.Status != "" && domain.FoldKey(string(item.Status)) != domain.FoldKey(p.Status) {
		return false
	}
	if p.Supplier != "" && item.SupplierID != p.Supplier {
		return false
	}
	if p.Search != "" {
		needle := domain.FoldKey(p.Search)
		haystack := domain.FoldKey(strings.Join([]string{
			item.ID, item.Name, item.Brand, item.Location, item.Description, item.Subcategory,
		}, " "))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func sortItems(items []*domain.InventoryItem, sortBy, order string) {
	less := func(a, b *domain.InventoryItem) bool { return a.ID < b.ID }
	switch sortBy {
	case "name":
		less = func(a, b *domain.InventoryItem) bool { return domain.FoldKey(a.Name) < domain.FoldKey(b.Name) }
	case "category":
		less = func(a, b *domain.InventoryItem) bool { return a.Category < b.Category }
	case "quantity":
		less = func(a, b *domain.InventoryItem) bool { return a.Quantity < b.Quantity }
	case "price", "pricePerPiece":
		less = func(a, b *domain.InventoryItem) bool { return a.PricePerPiece.LessThan(b.PricePerPiece) }
	case "status":
		less = func(a, b *domain.InventoryItem) bool { return a.Status < b.Status }
	case "location":
		less = func(a, b *domain.InventoryItem) bool { return a.Location < b.Location }
	case "updatedAt":
		less = func(a, b *domain.InventoryItem) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	desc := strings.EqualFold(order, "desc")
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
