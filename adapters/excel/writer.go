package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shoumique/employee-reporter/domain/table"
)

// Column width bounds for the export sheet, in Excel character units.
const (
	minColWidth = 12
	maxColWidth = 42
)

// sheetNameLimit is Excel's hard cap on worksheet names.
const sheetNameLimit = 31

// Writer builds the styled export workbook: dark header band, Bengali-safe
// fonts, frozen header row, width-clamped columns.
type Writer struct{}

// NewWriter returns an export workbook writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders t into a single-sheet workbook named after the report title
// and returns the raw .xlsx bytes.
func (w *Writer) Write(t table.Table, reportTitle string) ([]byte, error) {
	sheet := sanitizeSheetName(reportTitle)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, header := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for row, cells := range t.Rows {
		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := w.applyStyles(f, sheet, t); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *Writer) applyStyles(f *excelize.File, sheet string, t table.Table) error {
	if len(t.Headers) == 0 {
		return nil
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Nirmala UI"},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Nirmala UI"},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, 1, 28); err != nil {
		return err
	}
	if len(t.Rows) > 0 {
		bottom := fmt.Sprintf("%s%d", lastCol, len(t.Rows)+1)
		if err := f.SetCellStyle(sheet, "A2", bottom, bodyStyle); err != nil {
			return err
		}
	}

	for col := range t.Headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, columnWidth(t, col)); err != nil {
			return err
		}
	}

	// Keep the header band visible while scrolling.
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// columnWidth sizes a column to its longest value plus padding, clamped to
// [minColWidth, maxColWidth].
func columnWidth(t table.Table, col int) float64 {
	maxLen := len([]rune(t.Headers[col]))
	for _, row := range t.Rows {
		if col >= len(row) {
			continue
		}
		if n := len([]rune(table.CellString(row[col]))); n > maxLen {
			maxLen = n
		}
	}
	width := maxLen + 4
	if width > maxColWidth {
		width = maxColWidth
	}
	if width < minColWidth {
		width = minColWidth
	}
	return float64(width)
}

// sanitizeSheetName trims the title to Excel's limits and strips characters
// worksheet names cannot hold.
func sanitizeSheetName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Employee Report"
	}
	replacer := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")
	title = strings.TrimSpace(replacer.Replace(title))
	runes := []rune(title)
	if len(runes) > sheetNameLimit {
		title = string(runes[:sheetNameLimit])
	}
	return title
}
