// internal/core/services/import.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// ImportService turns tabular rows into inventory items, resolving supplier
// references and allocating locations along the way.
type ImportService struct {
	store     ports.DocumentStore
	items     ports.InventoryService
	suppliers ports.SupplierDirectory
	parser    ports.TabularParser
	locations *domain.LocationScheme
	logger    *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	store ports.DocumentStore,
	items ports.InventoryService,
	suppliers ports.SupplierDirectory,
	parser ports.TabularParser,
	locations *domain.LocationScheme,
	logger *slog.Logger,
) *ImportService {
	if locations == nil {
		locations = domain.DefaultLocationScheme()
	}
	return &ImportService{
		store:     store,
		items:     items,
		suppliers: suppliers,
		parser:    parser,
		locations: locations,
		logger:    logger.With(slog.String("service", "import")),
	}
}

// Preview validates rows without writing anything
func (s *ImportService) Preview(ctx context.Context, rows []domain.RawRow, headerOffset int) *domain.ImportPreview {
	preview := domain.ParseImportRows(rows, headerOffset)
	s.logger.InfoContext(ctx, "import preview parsed",
		slog.Int("rows", preview.TotalRows),
		slog.Int("valid", len(preview.Drafts)),
		slog.Int("errors", len(preview.Errors)))
	return preview
}

// ParseFile reads an uploaded file and previews its rows. Unreadable files
// are reported as validation errors.
func (s *ImportService) ParseFile(ctx context.Context, fileName string, r io.Reader) (*domain.ImportPreview, error) {
	rows, offset, err := s.parser.Parse(fileName, r)
	if err != nil {
		return nil, domain.NewValidationError("file", "Could not read %s: %v", fileName, err)
	}
	return s.Preview(ctx, rows, offset), nil
}

// ImportFile parses, previews and confirms a file in one pass. Parse errors
// are carried into the result errors.
func (s *ImportService) ImportFile(ctx context.Context, fileName string, r io.Reader) (*domain.ImportPreview, *domain.ImportResult, error) {
	preview, err := s.ParseFile(ctx, fileName, r)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.Confirm(ctx, preview.Drafts)
	if result != nil {
		result.Errors = append(append([]string{}, preview.Errors...), result.Errors...)
	}
	return preview, result, err
}

// importBatch holds the bookkeeping shared by the rows of one confirmation
type importBatch struct {
	byID      map[string]*domain.Supplier
	byName    map[string]*domain.Supplier
	created   map[string]*domain.Supplier
	locations []string
	result    *domain.ImportResult
}

// Confirm creates the drafts one by one. Rows are processed sequentially so
// that location allocation and supplier de-duplication see earlier rows.
// Row-level failures are reported in the result; store failures abort and are
// returned with the partial result.
func (s *ImportService) Confirm(ctx context.Context, drafts []domain.DraftItem) (*domain.ImportResult, error) {
	suppliers, err := s.suppliers.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	existing, err := loadItems(ctx, s.store)
	if err != nil {
		return nil, err
	}

	batch := &importBatch{
		byID:      make(map[string]*domain.Supplier, len(suppliers)),
		byName:    make(map[string]*domain.Supplier, len(suppliers)),
		created:   make(map[string]*domain.Supplier),
		locations: itemLocations(existing),
		result:    &domain.ImportResult{CreatedIDs: []string{}},
	}
	for _, sup := range suppliers {
		batch.byID[sup.ID] = sup
		if _, dup := batch.byName[domain.FoldKey(sup.Name)]; !dup {
			batch.byName[domain.FoldKey(sup.Name)] = sup
		}
	}

	for _, draft := range drafts {
		if err := ctx.Err(); err != nil {
			return batch.result, err
		}

		supplierID := s.resolveSupplier(ctx, batch, draft)
		location := s.resolveLocation(batch, draft)

		item, err := s.items.Create(ctx, draft.Input(supplierID, location))
		if err != nil {
			if domain.IsValidationError(err) || errors.Is(err, domain.ErrDuplicateID) {
				batch.result.Errors = append(batch.result.Errors, fmt.Sprintf("Row %d: %s", draft.Row, err.Error()))
				continue
			}
			return batch.result, fmt.Errorf("failed to import row %d: %w", draft.Row, err)
		}

		batch.locations = append(batch.locations, item.Location)
		batch.result.Created++
		batch.result.CreatedIDs = append(batch.result.CreatedIDs, item.ID)
	}

	s.logger.InfoContext(ctx, "import confirmed",
		slog.Int("drafts", len(drafts)),
		slog.Int("created", batch.result.Created),
		slog.Int("suppliers_created", batch.result.SuppliersCreated),
		slog.Int("errors", len(batch.result.Errors)))

	return batch.result, nil
}

// resolveSupplier maps the row's supplier reference to an id: exact id, then
// case-insensitive name, then suppliers created earlier in this batch, then a
// new placeholder supplier. A failed creation leaves the reference empty.
func (s *ImportService) resolveSupplier(ctx context.Context, batch *importBatch, draft domain.DraftItem) string {
	ref := strings.TrimSpace(draft.Supplier)
	if ref == "" {
		return ""
	}
	if sup, ok := batch.byID[ref]; ok {
		return sup.ID
	}
	key := domain.FoldKey(ref)
	if sup, ok := batch.byName[key]; ok {
		return sup.ID
	}
	if sup, ok := batch.created[key]; ok {
		return sup.ID
	}

	sup, err := s.suppliers.CreateSupplier(ctx, domain.PlaceholderSupplier(ref))
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", domain.ErrSupplierCreationFailed, ref, err)
		s.logger.WarnContext(ctx, "supplier auto-creation failed",
			slog.Int("row", draft.Row),
			slog.String("supplier", ref),
			slog.String("error", err.Error()))
		batch.result.Warnings = append(batch.result.Warnings, fmt.Sprintf("Row %d: %s", draft.Row, err.Error()))
		return ""
	}

	batch.created[key] = sup
	batch.result.SuppliersCreated++
	s.logger.InfoContext(ctx, "auto-created supplier",
		slog.String("id", sup.ID),
		slog.String("name", sup.Name))
	return sup.ID
}

// resolveLocation prefers the row's own location, then a code generated from
// persisted and already-imported locations.
func (s *ImportService) resolveLocation(batch *importBatch, draft domain.DraftItem) string {
	if loc := strings.TrimSpace(draft.Location); loc != "" {
		return loc
	}
	if strings.TrimSpace(draft.Category) == "" {
		return domain.UnassignedLocation
	}
	return s.locations.NextCode(draft.Category, batch.locations)
}
