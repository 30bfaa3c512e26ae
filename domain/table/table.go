// Package table holds the in-memory spreadsheet model and the pure
// transformations applied to it: whole-table Bijoy normalization, header
// role resolution, and employee record extraction. Nothing here performs
// I/O; readers and writers live in the adapters.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// CellString renders a cell for display and comparison. Floats that hold
// whole numbers print without a trailing ".0"; excel readers deliver ids
// that way.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		if c == float64(int64(c)) {
			return strconv.FormatInt(int64(c), 10)
		}
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprint(c)
	}
}

// Table is an ordered, row-major snapshot of one sheet. Cells are untyped:
// only string cells participate in conversion, anything else (numbers,
// booleans, nil) is carried through untouched. Index labels are optional;
// pandas-produced files carry them, spreadsheets read by us usually do not.
type Table struct {
	Headers []string
	Rows    [][]any
	Index   []string
}

// NewTable builds a table from string rows, the shape the excel reader
// produces.
func NewTable(headers []string, rows [][]string) Table {
	t := Table{Headers: append([]string(nil), headers...)}
	t.Rows = make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		t.Rows[i] = cells
	}
	return t
}

// Cell returns the string form of the cell at (row, col), trimmed. Out of
// range or non-string cells degrade to their printable form or "".
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(CellString(cells[col]))
}

// ColumnIndex returns the position of the named header, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// SelectColumns returns a copy of t restricted to the named columns, in the
// given order. Unknown names are skipped; if nothing survives, the full
// table is returned (same degradation as the original export path).
func (t Table) SelectColumns(names []string) Table {
	var keep []int
	var headers []string
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			keep = append(keep, idx)
			headers = append(headers, t.Headers[idx])
		}
	}
	if len(keep) == 0 {
		return t.clone()
	}

	out := Table{Headers: headers, Index: append([]string(nil), t.Index...)}
	out.Rows = make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]any, len(keep))
		for j, idx := range keep {
			if idx < len(row) {
				cells[j] = row[idx]
			}
		}
		out.Rows[i] = cells
	}
	return out
}

func (t Table) clone() Table {
	out := Table{
		Headers: append([]string(nil), t.Headers...),
		Index:   append([]string(nil), t.Index...),
	}
	out.Rows = make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]any(nil), row...)
	}
	return out
}
