// Package excel reads uploaded spreadsheets into the domain table model and
// writes the styled export workbook.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shoumique/employee-reporter/domain/table"
	apperrors "github.com/shoumique/employee-reporter/internal/errors"
)

// Reader handles reading Excel and CSV files.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given file; the extension decides the
// format (.csv or .xlsx).
func NewReader(filePath string) *Reader {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	return &Reader{filePath: filePath, fileType: ext}
}

// Read loads the file into a raw table: first row as headers, the rest as
// string cells. No conversion happens here; the table still carries Bijoy
// text until the caller normalizes it.
func (r *Reader) Read() (table.Table, error) {
	log.Printf("[Reader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return table.Table{}, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		// Legacy BIFF .xls in particular: excelize only opens OOXML
		// containers, so anything else is refused up front.
		return table.Table{}, apperrors.InvalidInput(fmt.Sprintf("unsupported file type %q; use .xlsx or .csv", r.fileType))
	}
}

func (r *Reader) readExcel() (table.Table, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.Table{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	log.Printf("[Reader] Sheet %q read in %.2fms (%d rows)", sheets[0],
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return buildTable(rows)
}

func (r *Reader) readCSV() (table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[Reader] CSV file read (%d rows)", len(rows))

	return buildTable(rows)
}

// buildTable converts raw string rows into the table model. Ragged rows are
// padded so every row has one cell per header.
func buildTable(rows [][]string) (table.Table, error) {
	if len(rows) == 0 {
		return table.Table{}, fmt.Errorf("file has no rows")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		data = append(data, row[:len(headers)])
	}

	log.Printf("[Reader] file processed (%d columns, %d rows)", len(headers), len(data))
	return table.NewTable(headers, data), nil
}
