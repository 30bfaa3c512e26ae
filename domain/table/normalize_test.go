package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shoumique/employee-reporter/domain/bangla"
	"github.com/shoumique/employee-reporter/ports"
)

// garbling converter: consonant-only output, the way English text comes
// back from the real Bijoy converter.
func garblingGate() *bangla.Gate {
	return bangla.NewGate(ports.ConverterFunc(func(string) (string, error) {
		return "নমমক", nil
	}))
}

// valid converter: output with a vowel sign and no misplaced final letter.
func convertingGate() *bangla.Gate {
	return bangla.NewGate(ports.ConverterFunc(func(string) (string, error) {
		return "বাড়ি", nil
	}))
}

func failingGate() *bangla.Gate {
	return bangla.NewGate(ports.ConverterFunc(func(string) (string, error) {
		return "", errors.New("transliterator unavailable")
	}))
}

func TestNormalizeHeaderDedup(t *testing.T) {
	in := Table{Headers: []string{"Name", "Name", "Name", "Other"}}

	out, _ := Normalize(in, garblingGate())

	assert.Equal(t, []string{"Name", "Name_1", "Name_2", "Other"}, out.Headers)
}

func TestNormalizeUnnamedHeadersKeptVerbatim(t *testing.T) {
	in := Table{Headers: []string{"Unnamed: 0", "Unnamed: 1"}}

	out, stats := Normalize(in, convertingGate())

	assert.Equal(t, []string{"Unnamed: 0", "Unnamed: 1"}, out.Headers)
	assert.Zero(t, stats.Converted)
}

func TestNormalizeCellsAndTypes(t *testing.T) {
	in := Table{
		Headers: []string{"a", "b", "c"},
		Rows: [][]any{
			{"Avgvi", 42, "নাম"},
			{"12345", nil, true},
		},
	}

	out, stats := Normalize(in, convertingGate())

	// String cell converted; number, nil, bool, Bengali, and pure-digit
	// cells untouched.
	assert.Equal(t, "বাড়ি", out.Rows[0][0])
	assert.Equal(t, 42, out.Rows[0][1])
	assert.Equal(t, "নাম", out.Rows[0][2])
	assert.Equal(t, "12345", out.Rows[1][0])
	assert.Nil(t, out.Rows[1][1])
	assert.Equal(t, true, out.Rows[1][2])

	// Headers "a","b","c" convert too (they are alphabetic strings).
	assert.Equal(t, 4, stats.Converted)

	// Input untouched.
	assert.Equal(t, "Avgvi", in.Rows[0][0])
	assert.Equal(t, []string{"a", "b", "c"}, in.Headers)
}

func TestNormalizeIndexLabels(t *testing.T) {
	in := Table{
		Headers: []string{"x"},
		Index:   []string{"Avgvi", "১"},
	}

	out, _ := Normalize(in, convertingGate())

	assert.Equal(t, []string{"বাড়ি", "১"}, out.Index)
}

func TestNormalizeConverterFailureDegradesToPassthrough(t *testing.T) {
	in := Table{
		Headers: []string{"header"},
		Rows:    [][]any{{"some text"}},
	}

	out, stats := Normalize(in, failingGate())

	assert.Equal(t, "some text", out.Rows[0][0])
	assert.Equal(t, []string{"header"}, out.Headers)
	assert.Zero(t, stats.Converted)
	assert.Zero(t, stats.Rejected)
}

func TestNormalizeIdempotent(t *testing.T) {
	in := Table{
		Headers: []string{"Name", "Name", "id"},
		Rows: [][]any{
			{"Avgvi", "rst", "101"},
			{"নাম", 7, "nan"},
		},
		Index: []string{"Avgvi", "x"},
	}
	gate := convertingGate()

	once, _ := Normalize(in, gate)
	twice, _ := Normalize(once, gate)

	assert.Equal(t, once, twice)
}

func TestNormalizeRejectedKeepsOriginal(t *testing.T) {
	in := Table{
		Headers: []string{"id", "name_bn"},
		Rows:    [][]any{{"Rural/Urben", "UT Status"}},
	}

	out, stats := Normalize(in, garblingGate())

	assert.Equal(t, "Rural/Urben", out.Rows[0][0])
	assert.Equal(t, "UT Status", out.Rows[0][1])
	assert.Equal(t, []string{"id", "name_bn"}, out.Headers)
	assert.Equal(t, 4, stats.Rejected)
}

// The scenario from the source sheets: mixed pandas artifact, Bengali, and
// ASCII headers with a first data row.
func TestNormalizeAndResolveEndToEnd(t *testing.T) {
	in := Table{
		Headers: []string{"Unnamed: 0", "নাম", "id"},
		Rows:    [][]any{{"1", "জন", "101"}},
	}

	out, _ := Normalize(in, garblingGate())

	assert.Equal(t, []string{"Unnamed: 0", "নাম", "id"}, out.Headers)
	assert.Equal(t, [][]any{{"1", "জন", "101"}}, out.Rows)

	roles := ResolveRoles(out.Headers, DefaultRoles())
	assert.Equal(t, 2, roles.IDIndex)
	assert.Equal(t, 1, roles.NameIndex)
	assert.False(t, roles.IDFallback)
	assert.False(t, roles.NameFallback)
}
