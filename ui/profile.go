package ui

import (
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/shoumique/employee-reporter/domain/table"
)

// ColumnProfile summarizes one column for the configure screen. Numeric
// aggregates are only present when most of the column parses as numbers.
type ColumnProfile struct {
	Name     string   `json:"name"`
	NonEmpty int      `json:"non_empty"`
	Distinct int      `json:"distinct"`
	Numeric  bool     `json:"numeric"`
	Mean     *float64 `json:"mean,omitempty"`
	Median   *float64 `json:"median,omitempty"`
	StdDev   *float64 `json:"std_dev,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// profileColumns computes per-column counts and, for numeric columns,
// descriptive statistics.
func profileColumns(t table.Table) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(t.Headers))
	for col, name := range t.Headers {
		p := ColumnProfile{Name: name}

		distinct := make(map[string]struct{})
		var values []float64
		for row := range t.Rows {
			cell := t.Cell(row, col)
			if cell == "" || strings.EqualFold(cell, "nan") {
				continue
			}
			p.NonEmpty++
			distinct[cell] = struct{}{}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				values = append(values, v)
			}
		}
		p.Distinct = len(distinct)

		// A column counts as numeric when at least half of its filled
		// cells parse; ID-like columns with stray text still profile.
		if p.NonEmpty > 0 && len(values)*2 >= p.NonEmpty {
			p.Numeric = true
			data := stats.Float64Data(values)
			p.Mean = statValue(stats.Mean(data))
			p.Median = statValue(stats.Median(data))
			p.StdDev = statValue(stats.StandardDeviation(data))
			p.Min = statValue(stats.Min(data))
			p.Max = statValue(stats.Max(data))
		}
		profiles = append(profiles, p)
	}
	return profiles
}

func statValue(v float64, err error) *float64 {
	if err != nil {
		return nil
	}
	return &v
}
