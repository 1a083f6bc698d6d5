// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ammerola/warehouse-be/internal/adapters/tabular"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

const exportPageSize = 500

// ExportHandler handles inventory export operations
type ExportHandler struct {
	responder
	service ports.InventoryService
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.InventoryService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		responder: responder{logger: logger.With(slog.String("handler", "export"))},
		service:   service,
	}
}

// ExportInventory handles GET /api/v1/export/excel. The list filters of
// GET /api/v1/inventory apply; ?format=csv switches from xlsx to CSV.
func (h *ExportHandler) ExportInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := parseListParams(r)
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		h.respondError(w, http.StatusBadRequest, "Format must be one of: xlsx, csv")
		return
	}

	h.logger.InfoContext(ctx, "starting export",
		slog.String("format", format),
		slog.String("archived", string(params.Archived)))

	items, err := h.collect(ctx, params)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to retrieve data")
		return
	}

	header := make([]string, len(domain.ExportColumns))
	for i, col := range domain.ExportColumns {
		header[i] = col.Header
	}
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, exportRow(item))
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	if format == "csv" {
		err = tabular.WriteCSV(&buf, header, rows)
		contentType = "text/csv; charset=utf-8"
	} else {
		err = tabular.WriteWorkbook(&buf, "Inventory", header, rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate export",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate export file")
		return
	}

	filename := fmt.Sprintf("inventory_export_%s.%s", time.Now().Format("20060102_150405"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.ErrorContext(ctx, "failed to write export response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "export completed",
		slog.Int("total_rows", len(rows)),
		slog.String("filename", filename))
}

// collect pages through the listing until every matching item is read
func (h *ExportHandler) collect(ctx context.Context, params ports.ListParams) ([]*domain.InventoryItem, error) {
	params.Page = 1
	params.PageSize = exportPageSize

	var items []*domain.InventoryItem
	for {
		result, err := h.service.List(ctx, params)
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if params.Page >= result.TotalPages || len(result.Items) == 0 {
			return items, nil
		}
		params.Page++
	}
}

func exportRow(item *domain.InventoryItem) []any {
	row := make([]any, len(domain.ExportColumns))
	for i, col := range domain.ExportColumns {
		switch col.Field {
		case domain.FieldName:
			row[i] = item.Name
		case domain.FieldCategory:
			row[i] = item.Category
		case domain.FieldSubcategory:
			row[i] = item.Subcategory
		case domain.FieldQuantity:
			row[i] = item.Quantity
		case domain.FieldLocation:
			row[i] = item.Location
		case domain.FieldBrand:
			row[i] = item.Brand
		case domain.FieldPrice:
			row[i] = item.PricePerPiece
		case domain.FieldSupplier:
			row[i] = item.SupplierID
		case domain.FieldReorderLevel:
			if item.ReorderLevel != nil {
				row[i] = *item.ReorderLevel
			}
		case domain.FieldDescription:
			row[i] = item.Description
		}
	}
	return row
}
