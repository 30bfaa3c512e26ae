// Package report defines the fixed report presets offered on the configure
// screen. Column positions are tied to the standard AGM personnel sheet
// layout; unknown positions are silently dropped for narrower sheets.
package report

// Preset is one ready-made report: a label, a short markdown description,
// and the column positions it pulls from the normalized sheet.
type Preset struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Positions   []int  `json:"-"`
}

// Presets lists every preset in display order.
func Presets() []Preset {
	return []Preset{
		{
			Key:         "performance",
			Label:       "Performance Report",
			Description: "Current placement, branch details & **performance metrics**",
			Icon:        "📊",
			Positions:   []int{3, 5, 10, 14, 15, 16, 17, 18, 19, 39, 40, 41},
		},
		{
			Key:         "appraisal",
			Label:       "Appraisal Report",
			Description: "Educational qualifications & complete **promotion history**",
			Icon:        "🎓",
			Positions:   []int{3, 5, 7, 8, 18, 19, 20, 21, 22, 23, 24, 25},
		},
		{
			Key:         "basic_info",
			Label:       "Basic Info Report",
			Description: "Personal identification & **demographic information**",
			Icon:        "👤",
			Positions:   []int{3, 5, 6, 7, 26, 35, 28, 34},
		},
		{
			Key:         "transfer",
			Label:       "Transfer Report",
			Description: "Transfer orders & **workplace movement history**",
			Icon:        "🔄",
			Positions:   []int{3, 5, 9, 10, 11, 12, 13, 14, 15, 16, 17},
		},
		{
			Key:         "seniority",
			Label:       "Seniority Report",
			Description: "Seniority list with complete **promotion timeline**",
			Icon:        "📋",
			Positions:   []int{3, 5, 18, 19, 20, 21, 22, 23, 24, 25, 27, 42},
		},
		{
			Key:         "prl",
			Label:       "PRL Report",
			Description: "Pre-retirement leave **eligibility & date information**",
			Icon:        "📅",
			Positions:   []int{3, 5, 26, 27, 42, 35},
		},
	}
}

// Find returns the preset for key, or false.
func Find(key string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// Columns maps a preset onto the actual header list. An unknown key means
// "everything": the full header list is returned, matching the permissive
// behaviour callers rely on when no preset is chosen.
func Columns(key string, headers []string) []string {
	p, ok := Find(key)
	if !ok {
		return append([]string(nil), headers...)
	}
	cols := make([]string, 0, len(p.Positions))
	for _, pos := range p.Positions {
		if pos < len(headers) {
			cols = append(cols, headers[pos])
		}
	}
	return cols
}
