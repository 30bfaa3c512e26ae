package table

import (
	"fmt"
	"strings"

	"github.com/shoumique/employee-reporter/domain/bangla"
)

// NormalizeStats counts gate decisions across one Normalize pass. Rejected
// is the interesting number: cells where the converter produced garbage and
// the original value was kept.
type NormalizeStats struct {
	Passthrough int `json:"passthrough"`
	Converted   int `json:"converted"`
	Rejected    int `json:"rejected"`
}

func (s *NormalizeStats) record(outcome bangla.Outcome) {
	switch outcome {
	case bangla.OutcomeConverted:
		s.Converted++
	case bangla.OutcomeRejected:
		s.Rejected++
	default:
		s.Passthrough++
	}
}

// Normalize runs every cell, header, and index label of t through the same
// gate and returns a new table; the input is never mutated. Headers get the
// extra cleanup the original sheet needs (embedded newlines, pandas
// "Unnamed:" placeholders) and are deduplicated left to right with _1, _2,
// ... suffixes on repeats.
//
// Normalize is idempotent: already-Bengali text passes through the gate
// unchanged, and suffixed headers do not collide a second time.
func Normalize(t Table, gate *bangla.Gate) (Table, NormalizeStats) {
	var stats NormalizeStats

	out := Table{Headers: make([]string, 0, len(t.Headers))}

	seen := make(map[string]int, len(t.Headers))
	for _, raw := range t.Headers {
		name := normalizeHeader(raw, gate, &stats)
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
		}
		out.Headers = append(out.Headers, name)
	}

	out.Rows = make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			converted, outcome := gate.ClassifyValue(cell)
			stats.record(outcome)
			cells[j] = converted
		}
		out.Rows[i] = cells
	}

	if t.Index != nil {
		out.Index = make([]string, len(t.Index))
		for i, label := range t.Index {
			converted, outcome := gate.Classify(label)
			stats.record(outcome)
			out.Index[i] = converted
		}
	}

	return out, stats
}

// normalizeHeader converts a single header label. Pandas artifact headers
// ("Unnamed: 3") are kept verbatim so downstream position math still lines
// up with the source sheet.
func normalizeHeader(raw string, gate *bangla.Gate, stats *NormalizeStats) string {
	if strings.HasPrefix(raw, "Unnamed:") {
		stats.Passthrough++
		return raw
	}
	clean := strings.TrimSpace(strings.ReplaceAll(raw, "\n", " "))
	converted, outcome := gate.Classify(clean)
	stats.record(outcome)
	if outcome == bangla.OutcomeConverted {
		return strings.TrimSpace(strings.ReplaceAll(converted, "\n", " "))
	}
	return clean
}
