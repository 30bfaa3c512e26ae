package table

import (
	"strconv"
	"strings"
)

// missingSentinel is the literal pandas leaves behind for missing values in
// exported sheets.
const missingSentinel = "nan"

// Record is one (identifier, display name) pair derived from a row. Records
// are transient: recomputed on every load, never persisted.
type Record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExtractOptions tunes record extraction.
type ExtractOptions struct {
	// HeaderArtifactBound drives the embedded-header-row heuristic: a row
	// whose id and name both parse as positive integers at or below this
	// bound is assumed to be a column-numbering artifact and skipped. Tuned
	// to one known sheet; revisit against real data before trusting it for
	// short numeric ids.
	HeaderArtifactBound int
}

// DefaultExtractOptions matches the source sheets seen so far.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{HeaderArtifactBound: 60}
}

// ExtractRecords walks the rows of t and builds the deduplication-ready
// employee list from the resolved id and name columns. Rows with an empty
// or missing id are skipped, as are embedded numeric header rows; a blank
// display name falls back to the id.
func ExtractRecords(t Table, idIndex, nameIndex int, opts ExtractOptions) []Record {
	if len(t.Headers) == 0 {
		return nil
	}

	records := make([]Record, 0, len(t.Rows))
	for row := range t.Rows {
		id := t.Cell(row, idIndex)
		name := t.Cell(row, nameIndex)

		if id == "" || id == missingSentinel {
			continue
		}
		if isHeaderArtifact(id, name, opts.HeaderArtifactBound) {
			continue
		}
		if name == "" || name == missingSentinel {
			name = id
		}
		records = append(records, Record{ID: id, Name: name})
	}
	return records
}

// RowRecords returns one Record per row of t, aligned with t.Rows. Unlike
// ExtractRecords nothing is skipped: callers that need a key for every
// exported row (per-document filenames) use this against the full-width
// table, before any column narrowing can drop the id or name column.
func RowRecords(t Table, idIndex, nameIndex int) []Record {
	records := make([]Record, len(t.Rows))
	for row := range t.Rows {
		id := t.Cell(row, idIndex)
		if id == missingSentinel {
			id = ""
		}
		name := t.Cell(row, nameIndex)
		if name == "" || name == missingSentinel {
			name = id
		}
		records[row] = Record{ID: id, Name: name}
	}
	return records
}

// isHeaderArtifact flags rows where both cells are small positive integers,
// the shape a literal "1 2 3 ..." column-numbering row takes when it leaks
// into the data.
func isHeaderArtifact(id, name string, bound int) bool {
	idN, err := strconv.Atoi(id)
	if err != nil {
		return false
	}
	nameN, err := strconv.Atoi(name)
	if err != nil {
		return false
	}
	return idN > 0 && idN <= bound && nameN > 0 && nameN <= bound
}

// FilterRows returns a copy of t keeping only rows whose id-column value is
// in ids. Membership is a pure set predicate over the trimmed string form;
// an empty id set keeps everything (export-all).
func FilterRows(t Table, idIndex int, ids []string) Table {
	if len(ids) == 0 {
		return t.clone()
	}

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[strings.TrimSpace(id)] = struct{}{}
	}

	out := Table{
		Headers: append([]string(nil), t.Headers...),
	}
	for row := range t.Rows {
		if _, ok := want[t.Cell(row, idIndex)]; ok {
			out.Rows = append(out.Rows, append([]any(nil), t.Rows[row]...))
		}
	}
	return out
}
