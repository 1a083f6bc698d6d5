// internal/core/services/import_service_test.go
package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/warehouse-be/internal/adapters/memory"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/core/services"
	"github.com/ammerola/warehouse-be/test/helpers"
	"github.com/ammerola/warehouse-be/test/mocks"
)

type importFixture struct {
	store     *memory.DocumentStore
	items     *services.InventoryService
	suppliers *services.SupplierService
	svc       *services.ImportService
}

func newImportFixture(t *testing.T, parser ports.TabularParser) *importFixture {
	t.Helper()
	store := helpers.NewMemoryStore(t)
	items := newInventoryService(t, store, nil)
	suppliers := services.NewSupplierService(store, nil, helpers.TestLogger())
	return &importFixture{
		store:     store,
		items:     items,
		suppliers: suppliers,
		svc:       services.NewImportService(store, items, suppliers, parser, nil, helpers.TestLogger()),
	}
}

func draft(row int, name, category, supplier string) domain.DraftItem {
	return domain.DraftItem{Row: row, Name: name, Category: category, Quantity: 5, QuantityPurchased: 5, Supplier: supplier}
}

func TestImportService_Confirm_DeduplicatesSuppliers(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t, nil)
	helpers.SeedSuppliers(t, f.store, helpers.CreateTestSupplier())

	result, err := f.svc.Confirm(ctx, []domain.DraftItem{
		draft(2, "Widget", "Hardware", "Globex"),
		draft(3, "Gadget", "Hardware", " globex "),
		draft(4, "Cable", "Electronics", "acme components"),
		draft(5, "Charger", "Electronics", "SUP-001"),
		draft(6, "Sprocket", "Hardware", ""),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Created)
	assert.Equal(t, 1, result.SuppliersCreated)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005"}, result.CreatedIDs)

	suppliers, err := f.suppliers.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	globex := suppliers[1]
	assert.Equal(t, "SUP-002", globex.ID)
	assert.Equal(t, "Globex", globex.Name)
	assert.Equal(t, domain.ImportedSupplierCategory, globex.Category)

	assert.Equal(t, "SUP-002", helpers.LoadItem(t, f.store, "INV-001").SupplierID)
	assert.Equal(t, "SUP-002", helpers.LoadItem(t, f.store, "INV-002").SupplierID)
	assert.Equal(t, "SUP-001", helpers.LoadItem(t, f.store, "INV-003").SupplierID)
	assert.Equal(t, "SUP-001", helpers.LoadItem(t, f.store, "INV-004").SupplierID)
	assert.Empty(t, helpers.LoadItem(t, f.store, "INV-005").SupplierID)
}

func TestImportService_Confirm_AllocatesLocationsAcrossRows(t *testing.T) {
	f := newImportFixture(t, nil)
	helpers.SeedItems(t, f.store, helpers.CreateTestInventoryItem())

	rowWithLocation := draft(4, "Shelf", "Furniture", "")
	rowWithLocation.Location = "DOCK-3"

	result, err := f.svc.Confirm(context.Background(), []domain.DraftItem{
		draft(2, "Mouse", "Electronics", ""),
		draft(3, "Keyboard", "Electronics", ""),
		rowWithLocation,
		draft(5, "Desk", "Furniture", ""),
	})
	require.NoError(t, err)
	require.Equal(t, 4, result.Created)

	locations := make([]string, 0, len(result.CreatedIDs))
	for _, id := range result.CreatedIDs {
		locations = append(locations, helpers.LoadItem(t, f.store, id).Location)
	}
	assert.Equal(t, []string{"E-02", "E-03", "DOCK-3", "F-01"}, locations)
}

func TestImportService_Confirm_RowErrorsDoNotStopLaterRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mocks.NewMockInventoryService(ctrl)
	store := helpers.NewMemoryStore(t)
	suppliers := services.NewSupplierService(store, nil, helpers.TestLogger())
	svc := services.NewImportService(store, items, suppliers, nil, nil, helpers.TestLogger())

	gomock.InOrder(
		items.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.InventoryItem{ID: "INV-001", Location: "H-01"}, nil),
		items.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.NewValidationError("name", "Name is too long")),
		items.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrDuplicateID),
		items.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.InventoryItem{ID: "INV-002", Location: "H-02"}, nil),
	)

	result, err := svc.Confirm(context.Background(), []domain.DraftItem{
		draft(2, "A", "Hardware", ""),
		draft(3, "B", "Hardware", ""),
		draft(4, "C", "Hardware", ""),
		draft(5, "D", "Hardware", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, []string{"INV-001", "INV-002"}, result.CreatedIDs)
	assert.Equal(t, []string{"Row 3: Name is too long", "Row 4: duplicate id"}, result.Errors)
}

func TestImportService_Confirm_StoreFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mocks.NewMockInventoryService(ctrl)
	store := helpers.NewMemoryStore(t)
	suppliers := services.NewSupplierService(store, nil, helpers.TestLogger())
	svc := services.NewImportService(store, items, suppliers, nil, nil, helpers.TestLogger())

	gomock.InOrder(
		items.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.InventoryItem{ID: "INV-001"}, nil),
		items.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full")),
	)

	result, err := svc.Confirm(context.Background(), []domain.DraftItem{
		draft(2, "A", "Hardware", ""),
		draft(3, "B", "Hardware", ""),
		draft(4, "C", "Hardware", ""),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Created)
}

func TestImportService_Confirm_SupplierCreationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockSupplierDirectory(ctrl)
	store := helpers.NewMemoryStore(t)
	items := newInventoryService(t, store, nil)
	svc := services.NewImportService(store, items, directory, nil, nil, helpers.TestLogger())

	directory.EXPECT().ListSuppliers(gomock.Any()).Return([]*domain.Supplier{}, nil)
	directory.EXPECT().
		CreateSupplier(gomock.Any(), domain.PlaceholderSupplier("Globex")).
		Return(nil, errors.New("quota exceeded")).
		Times(2)

	result, err := svc.Confirm(context.Background(), []domain.DraftItem{
		draft(2, "Widget", "Hardware", "Globex"),
		draft(3, "Gadget", "Hardware", "Globex"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.SuppliersCreated)
	require.Len(t, result.Warnings, 2)
	assert.True(t, strings.HasPrefix(result.Warnings[0], "Row 2: supplier creation failed: Globex"))
	assert.Empty(t, helpers.LoadItem(t, store, "INV-001").SupplierID)
}

func TestImportService_ImportFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	parser := mocks.NewMockTabularParser(ctrl)
	f := newImportFixture(t, parser)

	parser.EXPECT().
		Parse("stock.csv", gomock.Any()).
		Return([]domain.RawRow{
			{"Item Name": "Bolt", "Category": "Hardware", "Qty": "12.9", "Price": "0.25"},
			{"Item Name": "", "Category": "Hardware", "Qty": "3"},
			{"Item Name": "", "Category": "", "Qty": ""},
			{"Item Name": "Nut", "Category": "Hardware", "Qty": "0", "Supplier": "Globex"},
		}, 1, nil)

	preview, result, err := f.svc.ImportFile(context.Background(), "stock.csv", strings.NewReader("ignored"))
	require.NoError(t, err)

	assert.Equal(t, 3, preview.TotalRows)
	assert.Len(t, preview.Drafts, 2)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.SuppliersCreated)
	assert.Equal(t, []string{"Row 3: Name is required"}, result.Errors)

	assert.Equal(t, 12, helpers.LoadItem(t, f.store, "INV-001").Quantity)
	nut := helpers.LoadItem(t, f.store, "INV-002")
	assert.Equal(t, 0, nut.Quantity)
	assert.Equal(t, domain.StatusCritical, nut.Status)
	assert.Equal(t, "SUP-001", nut.SupplierID)
}

func TestImportService_ParseFileError(t *testing.T) {
	ctrl := gomock.NewController(t)
	parser := mocks.NewMockTabularParser(ctrl)
	f := newImportFixture(t, parser)

	parser.EXPECT().Parse("stock.pdf", gomock.Any()).Return(nil, 0, errors.New("unsupported file format"))

	_, err := f.svc.ParseFile(context.Background(), "stock.pdf", strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	assert.Contains(t, err.Error(), "unsupported file format")
	assert.Equal(t, 0, f.store.Writes())
}
