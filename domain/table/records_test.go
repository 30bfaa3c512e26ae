package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func employeeTable() Table {
	return Table{
		Headers: []string{"sl", "পার্সোনেল নং", "নাম"},
		Rows: [][]any{
			{"1", "101", "করিম"},
			{"2", "nan", "রহিম"},      // missing id: skipped
			{"3", "", "সালাম"},        // empty id: skipped
			{"4", "5", "6"},           // numeric header artifact: skipped
			{"5", "103", ""},          // blank name: falls back to id
			{"6", "104", "nan"},       // missing name: falls back to id
			{"7", " 105 ", " জামাল "}, // trimmed
			{"8", 106, "বেগম"},        // numeric cell still extractable
		},
	}
}

func TestExtractRecords(t *testing.T) {
	records := ExtractRecords(employeeTable(), 1, 2, DefaultExtractOptions())

	assert.Equal(t, []Record{
		{ID: "101", Name: "করিম"},
		{ID: "103", Name: "103"},
		{ID: "104", Name: "104"},
		{ID: "105", Name: "জামাল"},
		{ID: "106", Name: "বেগম"},
	}, records)
}

func TestExtractRecordsHeaderArtifactBound(t *testing.T) {
	tab := Table{
		Headers: []string{"id", "name"},
		Rows: [][]any{
			{"60", "60"},  // at the bound: artifact
			{"61", "61"},  // above it: legitimate
			{"60", "x60"}, // name not numeric: legitimate
		},
	}

	records := ExtractRecords(tab, 0, 1, DefaultExtractOptions())

	assert.Equal(t, []Record{
		{ID: "61", Name: "61"},
		{ID: "60", Name: "x60"},
	}, records)
}

func TestExtractRecordsEmptyTable(t *testing.T) {
	assert.Nil(t, ExtractRecords(Table{}, 0, 0, DefaultExtractOptions()))
}

func TestRowRecordsKeepsEveryRow(t *testing.T) {
	tab := Table{
		Headers: []string{"পার্সোনেল নং", "নাম"},
		Rows: [][]any{
			{"101", "করিম"},
			{"nan", "রহিম"}, // missing id kept, blanked
			{"103", ""},     // blank name falls back to id
		},
	}

	records := RowRecords(tab, 0, 1)

	assert.Equal(t, []Record{
		{ID: "101", Name: "করিম"},
		{ID: "", Name: "রহিম"},
		{ID: "103", Name: "103"},
	}, records)
}

func TestFilterRows(t *testing.T) {
	tab := employeeTable()

	out := FilterRows(tab, 1, []string{"101", " 105", "999"})

	assert.Equal(t, tab.Headers, out.Headers)
	assert.Len(t, out.Rows, 2)
	assert.Equal(t, "করিম", out.Cell(0, 2))
	assert.Equal(t, "জামাল", out.Cell(1, 2))
}

func TestFilterRowsEmptySetKeepsAll(t *testing.T) {
	tab := employeeTable()

	out := FilterRows(tab, 1, nil)

	assert.Equal(t, len(tab.Rows), len(out.Rows))

	// Copy semantics: mutating the filtered table leaves the input alone.
	out.Rows[0][0] = "mutated"
	assert.Equal(t, "1", tab.Rows[0][0])
}

func TestSelectColumns(t *testing.T) {
	tab := employeeTable()

	out := tab.SelectColumns([]string{"নাম", "missing", "sl"})
	assert.Equal(t, []string{"নাম", "sl"}, out.Headers)
	assert.Equal(t, "করিম", out.Cell(0, 0))
	assert.Equal(t, "1", out.Cell(0, 1))

	// Nothing valid selected: full table comes back.
	all := tab.SelectColumns([]string{"missing"})
	assert.Equal(t, tab.Headers, all.Headers)
}
