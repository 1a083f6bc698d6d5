// internal/core/domain/importing.go
package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one spreadsheet or CSV row keyed by its header text
type RawRow map[string]any

// ImportField is a draft field a column can map to
type ImportField string

const (
	FieldName         ImportField = "name"
	FieldCategory     ImportField = "category"
	FieldSubcategory  ImportField = "subcategory"
	FieldQuantity     ImportField = "quantity"
	FieldLocation     ImportField = "location"
	FieldBrand        ImportField = "brand"
	FieldPrice        ImportField = "price"
	FieldSupplier     ImportField = "supplier"
	FieldReorderLevel ImportField = "reorderLevel"
	FieldDescription  ImportField = "description"
)

// ImportColumns lists the accepted header synonyms per field. Matching is
// case-insensitive and ignores surrounding whitespace.
var ImportColumns = map[ImportField][]string{
	FieldName:         {"Name", "Item Name", "Item", "Product", "Product Name"},
	FieldCategory:     {"Category"},
	FieldSubcategory:  {"Sub Category", "Subcategory", "Sub-Category"},
	FieldQuantity:     {"Quantity", "Qty", "Stock", "Quantity In Stock"},
	FieldLocation:     {"Location", "Location Code", "Bin"},
	FieldBrand:        {"Brand"},
	FieldPrice:        {"Price", "Price Per Piece", "PricePerPiece", "Unit Price"},
	FieldSupplier:     {"Supplier", "Supplier Name", "SupplierName", "Supplier ID", "SupplierId"},
	FieldReorderLevel: {"Reorder Level", "ReorderLevel", "Reorder Point"},
	FieldDescription:  {"Description", "Notes"},
}

// ExportColumns is the header row written by exports, in order. Every entry
// is an import synonym so exported files can be imported again.
var ExportColumns = []struct {
	Header string
	Field  ImportField
}{
	{"Name", FieldName},
	{"Category", FieldCategory},
	{"Subcategory", FieldSubcategory},
	{"Quantity", FieldQuantity},
	{"Location", FieldLocation},
	{"Brand", FieldBrand},
	{"Price", FieldPrice},
	{"Supplier", FieldSupplier},
	{"Reorder Level", FieldReorderLevel},
	{"Description", FieldDescription},
}

var columnIndex = buildColumnIndex()

func buildColumnIndex() map[string]ImportField {
	idx := make(map[string]ImportField)
	for field, synonyms := range ImportColumns {
		for _, s := range synonyms {
			idx[FoldKey(s)] = field
		}
	}
	return idx
}

// ColumnField resolves a header to its field
func ColumnField(header string) (ImportField, bool) {
	f, ok := columnIndex[FoldKey(header)]
	return f, ok
}

// Fields maps the row through the synonym table. When two columns map to the
// same field, the first non-blank one in sorted header order wins.
func (r RawRow) Fields() map[ImportField]string {
	headers := make([]string, 0, len(r))
	for h := range r {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	out := make(map[ImportField]string)
	for _, h := range headers {
		field, ok := ColumnField(h)
		if !ok {
			continue
		}
		value := CellText(r[h])
		if value == "" {
			continue
		}
		if _, seen := out[field]; !seen {
			out[field] = value
		}
	}
	return out
}

// IsBlank reports whether every cell in the row is empty
func (r RawRow) IsBlank() bool {
	for _, v := range r {
		if CellText(v) != "" {
			return false
		}
	}
	return true
}

// CellText renders a loosely typed cell as trimmed text
func CellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// DraftItem is a validated import row waiting for confirmation
type DraftItem struct {
	Row               int             `json:"row"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Subcategory       string          `json:"subcategory,omitempty"`
	Quantity          int             `json:"quantity"`
	Location          string          `json:"location,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	PricePerPiece     decimal.Decimal `json:"pricePerPiece"`
	Supplier          string          `json:"supplier,omitempty"`
	ReorderLevel      *int            `json:"reorderLevel,omitempty"`
	Description       string          `json:"description,omitempty"`
	QuantityPurchased int             `json:"quantityPurchased"`
	QuantitySold      int             `json:"quantitySold"`
	ReorderRequired   bool            `json:"reorderRequired"`
}

// Input converts the draft into a create input with resolved references
func (d DraftItem) Input(supplierID, location string) ItemInput {
	in := ItemInput{
		Name:              Text(d.Name),
		Category:          Text(d.Category),
		Subcategory:       Text(d.Subcategory),
		Quantity:          Raw(strconv.Itoa(d.Quantity)),
		Location:          Text(location),
		Brand:             Text(d.Brand),
		PricePerPiece:     Raw(d.PricePerPiece.String()),
		SupplierID:        Text(supplierID),
		QuantityPurchased: Raw(strconv.Itoa(d.QuantityPurchased)),
		QuantitySold:      Raw(strconv.Itoa(d.QuantitySold)),
		ReorderRequired:   &d.ReorderRequired,
		Description:       Text(d.Description),
	}
	if d.ReorderLevel != nil {
		in.ReorderLevel = Raw(strconv.Itoa(*d.ReorderLevel))
	}
	return in
}

// ImportPreview is the outcome of parsing rows before anything is written
type ImportPreview struct {
	TotalRows int         `json:"totalRows"`
	Drafts    []DraftItem `json:"drafts"`
	Errors    []string    `json:"errors,omitempty"`
}

// ParseImportRows validates rows into drafts. Row numbers are 1-based plus
// headerOffset. Invalid rows are reported and skipped; parsing continues.
func ParseImportRows(rows []RawRow, headerOffset int) *ImportPreview {
	preview := &ImportPreview{Drafts: []DraftItem{}}
	for i, row := range rows {
		if row.IsBlank() {
			continue
		}
		preview.TotalRows++
		rowNum := i + 1 + headerOffset
		draft, problems := parseImportRow(row, rowNum)
		if len(problems) > 0 {
			for _, p := range problems {
				preview.Errors = append(preview.Errors, fmt.Sprintf("Row %d: %s", rowNum, p))
			}
			continue
		}
		preview.Drafts = append(preview.Drafts, draft)
	}
	return preview
}

func parseImportRow(row RawRow, rowNum int) (DraftItem, []string) {
	fields := row.Fields()
	var problems []string

	draft := DraftItem{
		Row:         rowNum,
		Name:        fields[FieldName],
		Category:    fields[FieldCategory],
		Subcategory: fields[FieldSubcategory],
		Location:    fields[FieldLocation],
		Brand:       fields[FieldBrand],
		Supplier:    fields[FieldSupplier],
		Description: fields[FieldDescription],
	}
	if draft.Name == "" {
		problems = append(problems, "Name is required")
	}
	if draft.Category == "" {
		problems = append(problems, "Category is required")
	}

	if raw := fields[FieldQuantity]; raw != "" {
		q, ok := parseNumber(raw)
		if !ok || q < 0 {
			problems = append(problems, "Quantity must be a non-negative number")
		} else {
			draft.Quantity = NormalizeCount(raw)
		}
	}
	if raw := fields[FieldPrice]; raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil || p.IsNegative() {
			problems = append(problems, "Price must be a non-negative number")
		} else {
			draft.PricePerPiece = p
		}
	}
	draft.ReorderLevel = NormalizeOptionalCount(fields[FieldReorderLevel])

	draft.QuantityPurchased = draft.Quantity
	draft.QuantitySold = 0
	draft.ReorderRequired = false
	return draft, problems
}

// ImportResult summarizes a confirmed import
type ImportResult struct {
	Created          int      `json:"created"`
	CreatedIDs       []string `json:"createdIds"`
	SuppliersCreated int      `json:"suppliersCreated"`
	Errors           []string `json:"errors,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// ImportJobStatus is the lifecycle state of an asynchronous import
type ImportJobStatus string

const (
	ImportJobQueued     ImportJobStatus = "queued"
	ImportJobProcessing ImportJobStatus = "processing"
	ImportJobCompleted  ImportJobStatus = "completed"
	ImportJobFailed     ImportJobStatus = "failed"
)

// ImportJob tracks an uploaded file processed by the worker
type ImportJob struct {
	ID          string          `json:"id"`
	FileName    string          `json:"fileName"`
	Status      ImportJobStatus `json:"status"`
	TotalRows   int             `json:"totalRows"`
	ParseErrors []string        `json:"parseErrors,omitempty"`
	Result      *ImportResult   `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
