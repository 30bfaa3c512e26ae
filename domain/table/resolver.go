package table

import "strings"

// RoleSpec describes how to locate one logical column. Exact names win over
// keyword substrings, which win over the positional fallback. The fallback
// index is schema-specific (it encodes one known sheet layout) and is
// clamped to the actual column count.
type RoleSpec struct {
	Exact    []string
	Keywords []string
	Fallback int
}

// RolesConfig carries the id and display-name role specs. Comparisons are
// case-insensitive and trimmed; the header list itself is never modified.
type RolesConfig struct {
	ID   RoleSpec
	Name RoleSpec
}

// DefaultRoles matches the standard AGM personnel sheet: পার্সোনেল নং at
// column 3, নাম at column 5.
func DefaultRoles() RolesConfig {
	return RolesConfig{
		ID: RoleSpec{
			Exact:    []string{"id"},
			Keywords: []string{"পার্সোনেল", "personnel", "emp_id", "employee_id"},
			Fallback: 3,
		},
		Name: RoleSpec{
			Exact:    []string{"নাম", "name_bn", "name"},
			Keywords: []string{"নাম", "name"},
			Fallback: 5,
		},
	}
}

// RoleAssignment is the resolved (id, name) column pair. The fallback flags
// report that a positional default was used; callers may log them, but the
// indices are always valid for the given headers.
type RoleAssignment struct {
	IDIndex      int
	NameIndex    int
	IDFallback   bool
	NameFallback bool
}

// ResolveRoles finds the identifier and display-name columns. It is total:
// any non-empty header list yields two in-range indices, distinct whenever
// the table has more than one column. A single-column table degrades to
// (0, 0).
func ResolveRoles(headers []string, cfg RolesConfig) RoleAssignment {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var a RoleAssignment
	a.IDIndex, a.IDFallback = resolveRole(lower, cfg.ID)
	a.NameIndex, a.NameFallback = resolveRole(lower, cfg.Name)

	// Independent searches may land on the same column; nudge the name one
	// to the right when possible.
	if a.NameIndex == a.IDIndex && a.IDIndex+1 < len(headers) {
		a.NameIndex = a.IDIndex + 1
	}
	return a
}

func resolveRole(lower []string, spec RoleSpec) (int, bool) {
	for _, exact := range spec.Exact {
		for i, h := range lower {
			if h == exact {
				return i, false
			}
		}
	}

	for i, h := range lower {
		for _, kw := range spec.Keywords {
			if strings.Contains(h, kw) {
				return i, false
			}
		}
	}

	idx := spec.Fallback
	if idx > len(lower)-1 {
		idx = len(lower) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx, true
}
