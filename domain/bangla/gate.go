package bangla

import (
	"strings"

	"github.com/shoumique/employee-reporter/ports"
)

// Outcome describes what the gate decided for one value.
type Outcome int

const (
	// OutcomePassthrough - nothing to convert (empty, already Bengali,
	// no alphabetic content) or the converter itself failed.
	OutcomePassthrough Outcome = iota
	// OutcomeConverted - converter output was valid Bengali and replaced
	// the original.
	OutcomeConverted
	// OutcomeRejected - converter output was garbage, original kept.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeRejected:
		return "rejected"
	default:
		return "passthrough"
	}
}

// Gate wraps a Converter with the validity rules that decide whether its
// output replaces the original text. The converter transliterates anything,
// English included, into Bengali code points; the gate is what keeps plain
// Latin identifiers like "id" or "name_bn" from being mangled.
type Gate struct {
	conv ports.Converter
}

// NewGate returns a gate around the given converter.
func NewGate(conv ports.Converter) *Gate {
	return &Gate{conv: conv}
}

// Classify applies the conversion rules to raw, in strict order:
//
//  1. Empty / all-whitespace input passes through.
//  2. Text already containing Bengali passes through - it must never be
//     re-converted, even when other scripts are mixed in.
//  3. Text with no alphabetic character (pure digits, punctuation) passes
//     through; there is nothing to transliterate.
//  4. A converter failure passes the original through; errors never
//     propagate out of the gate.
//  5. Converted output is accepted only if it contains at least one
//     dependent vowel sign AND the final-only letter never appears
//     immediately before another Bengali code point. Real Bijoy text always
//     produces vowel signs; English fed through the converter produces
//     consonant-only runs, and any 'r' lands as a mid-word final-only
//     letter.
//  6. Anything else is rejected and the original is kept.
func (g *Gate) Classify(raw string) (string, Outcome) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return raw, OutcomePassthrough
	}

	if HasBengali(text) {
		return raw, OutcomePassthrough
	}

	if !hasAlpha(text) {
		return raw, OutcomePassthrough
	}

	converted, err := g.conv.Convert(raw)
	if err != nil {
		return raw, OutcomePassthrough
	}

	if HasVowelSign(converted) && !HasMisplacedFinal(converted) {
		return converted, OutcomeConverted
	}

	return raw, OutcomeRejected
}

// ClassifyValue applies Classify to string values and leaves every other
// cell type (numbers, booleans, nil) untouched.
func (g *Gate) ClassifyValue(value any) (any, Outcome) {
	s, ok := value.(string)
	if !ok {
		return value, OutcomePassthrough
	}
	return g.Classify(s)
}
