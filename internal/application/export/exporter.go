// Package export builds spreadsheet downloads from filtered list data.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hms/backend/internal/domain/listing"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated files
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column maps one spreadsheet column to a record field
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(T) interface{}
}

// Filename derives the download name from the active filter scope:
// "All_Data" for an unfiltered list, the filtered day when a single
// calendar day is selected, "Filtered" otherwise.
func Filename(entity string, filters listing.Filters, now time.Time) string {
	scope := "All_Data"
	switch {
	case filters.Date.SingleDay():
		scope = filters.Date.Start.Format("2006-01-02")
	case filters.Active():
		scope = "Filtered"
	}
	return fmt.Sprintf("%s_%s_%s.xlsx", entity, scope, now.Format("2006-01-02"))
}

// Generate renders records into an xlsx workbook: one header row, one row
// per record. An empty record set is refused and no bytes are produced.
func Generate[T any](sheetName string, columns []Column[T], records []T) ([]byte, error) {
	if len(records) == 0 {
		return nil, shared.ErrEmptyExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		width := col.Width
		if width <= 0 {
			width = 18
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}

		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell %d: %w", i+1, err)
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			return nil, fmt.Errorf("header %s: %w", col.Header, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("header style %s: %w", col.Header, err)
		}
	}

	for rowIdx, record := range records {
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("cell %d,%d: %w", colIdx+1, rowIdx+2, err)
			}
			value := col.Value(record)
			if s, ok := value.(string); ok {
				value = sanitizeCell(s)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatDate renders timestamps the way the web tables show them
func FormatDate(t time.Time) string {
	return t.Format("2 Jan, 2006")
}

// FormatMoney renders monetary amounts with two decimal places
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// sanitizeCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
