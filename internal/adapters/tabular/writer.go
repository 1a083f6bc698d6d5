// internal/adapters/tabular/writer.go
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// WriteWorkbook writes a single-sheet xlsx workbook with a bold header row
func WriteWorkbook(w io.Writer, sheetName string, header []string, rows [][]any) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		cell := headerRow.AddCell()
		cell.Value = h
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			setCell(row.AddCell(), v)
		}
	}

	if len(header) > 0 {
		sheet.SetColWidth(1, len(header), 18)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes header and rows as CSV
func WriteCSV(w io.Writer, header []string, rows [][]any) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(header))
	for _, values := range rows {
		record = record[:0]
		for _, v := range values {
			record = append(record, domain.CellText(v))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func setCell(cell *xlsx.Cell, v any) {
	switch t := v.(type) {
	case nil:
	case int:
		cell.SetInt(t)
	case int64:
		cell.SetInt64(t)
	case float64:
		cell.SetFloat(t)
	case bool:
		cell.SetBool(t)
	case decimal.Decimal:
		f, _ := t.Float64()
		cell.SetFloat(f)
	case *int:
		if t != nil {
			cell.SetInt(*t)
		}
	default:
		cell.SetString(domain.CellText(t))
	}
}
