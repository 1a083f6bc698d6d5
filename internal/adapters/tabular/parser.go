// internal/adapters/tabular/parser.go
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoHeader is returned when a file has no non-blank row
var ErrNoHeader = errors.New("file has no header row")

const utf8BOM = "\ufeff"

// Parser reads the first worksheet of an xlsx workbook, or a CSV file, into
// header-keyed rows. The first non-blank row is the header.
type Parser struct {
	maxBytes int64
}

var _ ports.TabularParser = (*Parser)(nil)

// NewParser creates a parser. maxBytes of 0 disables the size limit.
func NewParser(maxBytes int64) *Parser {
	return &Parser{maxBytes: maxBytes}
}

// Parse dispatches on the file extension. Blank rows after the header are
// kept so row numbers match the file.
func (p *Parser) Parse(fileName string, r io.Reader) ([]domain.RawRow, int, error) {
	if p.maxBytes > 0 {
		r = io.LimitReader(r, p.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read file: %w", err)
	}
	if p.maxBytes > 0 && int64(len(data)) > p.maxBytes {
		return nil, 0, fmt.Errorf("file exceeds %d bytes", p.maxBytes)
	}

	var grid [][]any
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		grid, err = readWorkbook(data)
	case ".csv", ".txt":
		grid, err = readCSV(data)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
	}
	if err != nil {
		return nil, 0, err
	}

	return rowsFromGrid(grid)
}

func rowsFromGrid(grid [][]any) ([]domain.RawRow, int, error) {
	headerIdx := -1
	for i, cells := range grid {
		if !blankCells(cells) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, 0, ErrNoHeader
	}

	headers := make([]string, len(grid[headerIdx]))
	seen := make(map[string]bool, len(headers))
	for i, h := range grid[headerIdx] {
		name := strings.TrimPrefix(domain.CellText(h), utf8BOM)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		headers[i] = name
	}

	body := grid[headerIdx+1:]
	// trailing blank rows carry no row numbers worth reporting
	for len(body) > 0 && blankCells(body[len(body)-1]) {
		body = body[:len(body)-1]
	}

	rows := make([]domain.RawRow, 0, len(body))
	for _, cells := range body {
		row := make(domain.RawRow, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows, headerIdx + 1, nil
}

func blankCells(cells []any) bool {
	for _, c := range cells {
		if domain.CellText(c) != "" {
			return false
		}
	}
	return true
}

func readCSV(data []byte) ([][]any, error) {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	grid := make([][]any, len(records))
	for i, rec := range records {
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
		}
		grid[i] = cells
	}
	return grid, nil
}

func readWorkbook(data []byte) ([][]any, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, ErrNoHeader
	}

	sheet := file.Sheets[0]
	defer sheet.Close()

	grid := make([][]any, 0, sheet.MaxRow)
	for idx := 0; idx < sheet.MaxRow; idx++ {
		row, err := sheet.Row(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", idx+1, err)
		}
		cells := make([]any, sheet.MaxCol)
		for col := 0; col < sheet.MaxCol; col++ {
			cells[col] = cellValue(row.GetCell(col))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// cellValue keeps numbers numeric so "12" and "12.0" normalize alike
func cellValue(c *xlsx.Cell) any {
	if c == nil {
		return nil
	}
	if c.Type() == xlsx.CellTypeNumeric && !c.IsTime() {
		if f, err := c.Float(); err == nil {
			return f
		}
	}
	if c.Type() == xlsx.CellTypeBool {
		return c.Bool()
	}
	s, err := c.FormattedValue()
	if err != nil {
		return c.Value
	}
	return s
}
