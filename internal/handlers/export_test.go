// internal/handlers/export_test.go
package handlers_test

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/handlers"
	"github.com/ammerola/warehouse-be/test/helpers"
	"github.com/ammerola/warehouse-be/test/mocks"
)

func exportPages(items []*domain.InventoryItem, pageSize int) []*ports.ListResult {
	totalPages := (len(items) + pageSize - 1) / pageSize
	var pages []*ports.ListResult
	for p := 0; p < totalPages; p++ {
		end := (p + 1) * pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, &ports.ListResult{
			Items:      items[p*pageSize : end],
			Page:       p + 1,
			PageSize:   pageSize,
			TotalCount: int64(len(items)),
			TotalPages: totalPages,
		})
	}
	return pages
}

func TestExportHandler_CSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockInventoryService(ctrl)

	items := helpers.CreateTestInventoryItems(3)
	level := 5
	items[1].ReorderLevel = &level
	items[2].SupplierID = "SUP-001"
	items[2].Archived = true

	// two pages force the handler to keep paging
	pages := exportPages(items, 2)
	gomock.InOrder(
		service.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params ports.ListParams) (*ports.ListResult, error) {
				assert.Equal(t, 1, params.Page)
				assert.Equal(t, 500, params.PageSize)
				assert.Equal(t, ports.ArchiveAll, params.Archived)
				assert.Equal(t, "Electronics", params.Category)
				return pages[0], nil
			}),
		service.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params ports.ListParams) (*ports.ListResult, error) {
				assert.Equal(t, 2, params.Page)
				return pages[1], nil
			}),
	)

	handler := handlers.NewExportHandler(service, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export?format=csv&archived=all&category=Electronics", nil)
	w := httptest.NewRecorder()

	handler.ExportInventory(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{
		"Name", "Category", "Subcategory", "Quantity", "Location",
		"Brand", "Price", "Supplier", "Reorder Level", "Description",
	}, records[0])
	assert.Equal(t, []string{
		"Test Item 1", "Electronics", "Cables", "3", "E-01",
		"Anker", "9.99", "", "", "",
	}, records[1])
	assert.Equal(t, "5", records[2][8])
	assert.Equal(t, "SUP-001", records[3][7])
}

func TestExportHandler_Workbook(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockInventoryService(ctrl)

	items := helpers.CreateTestInventoryItems(2)
	service.EXPECT().List(gomock.Any(), gomock.Any()).Return(exportPages(items, 500)[0], nil)

	handler := handlers.NewExportHandler(service, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export", nil)
	w := httptest.NewRecorder()

	handler.ExportInventory(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Inventory", sheet.Name)
	assert.Equal(t, 3, sheet.MaxRow)

	header, err := sheet.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Name", header.Value)

	qty, err := sheet.Cell(2, 3)
	require.NoError(t, err)
	n, err := qty.Int()
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestExportHandler_Errors(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockInventoryService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "unknown_format",
			query:          "?format=pdf",
			setupMocks:     func(m *mocks.MockInventoryService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Format must be one of: xlsx, csv",
		},
		{
			name:  "listing_fails",
			query: "",
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("store offline"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to retrieve data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockInventoryService(ctrl)
			tt.setupMocks(service)

			handler := handlers.NewExportHandler(service, helpers.TestLogger())

			w := httptest.NewRecorder()
			handler.ExportInventory(w, httptest.NewRequest(http.MethodGet, "/api/v1/export"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedError, decodeError(t, w.Body.Bytes()))
		})
	}
}
