// Package bijoy transliterates Bijoy-encoded (SutonnyMJ layout) text into
// Unicode Bengali. Bijoy stores glyphs in visual order against ASCII and
// CP1252 code points, so conversion is a glyph map followed by reordering
// passes: the reph glyph comes after the consonant it precedes logically,
// and the pre-base vowel signs come before theirs.
//
// The converter is deliberately blind: it maps whatever it is given, so
// English text comes out as consonant-only Bengali garbage. Validity
// screening belongs to the caller (domain/bangla.Gate).
package bijoy

import "strings"

// rephMark is a private-use placeholder for the Bijoy reph glyph (©) until
// the reordering pass moves a logical র্ in front of its consonant.
const rephMark = '\uE000'

const (
	hasant    = '্'
	signE     = 'ে'
	signAI    = 'ৈ'
	signI     = 'ি'
	signAA    = 'া'
	signAUTag = 'ৗ'
)

// glyphMap covers the SutonnyMJ code page: independent vowels on A-J,
// consonants on K-r, signs and modifiers on s-z and the CP1252 extras.
var glyphMap = map[rune]string{
	// Independent vowels
	'A': "অ", 'B': "ই", 'C': "ঈ", 'D': "উ", 'E': "ঊ",
	'F': "ঋ", 'G': "এ", 'H': "ঐ", 'I': "ও", 'J': "ঔ",

	// Consonants
	'K': "ক", 'L': "খ", 'M': "গ", 'N': "ঘ", 'O': "ঙ",
	'P': "চ", 'Q': "ছ", 'R': "জ", 'S': "ঝ", 'T': "ঞ",
	'U': "ট", 'V': "ঠ", 'W': "ড", 'X': "ঢ", 'Y': "ণ",
	'Z': "ত", '_': "থ", '`': "দ", 'a': "ধ", 'b': "ন",
	'c': "প", 'd': "ফ", 'e': "ব", 'f': "ভ", 'g': "ম",
	'h': "য", 'i': "র", 'j': "ল", 'k': "শ", 'l': "ষ",
	'm': "স", 'n': "হ", 'o': "\u09DC", 'p': "\u09DD", 'q': "\u09DF",

	// 'r' is the Bijoy slot for Khanda Ta. English words containing a
	// non-final 'r' therefore garble into impossible mid-word sequences;
	// the validity gate keys on exactly that.
	'r': "ৎ",

	// Modifiers and dependent signs
	's': "ং", 't': "ঃ", 'u': "ঁ",
	'v': "া", 'w': "ি", 'x': "ী", 'y': "ু", 'z': "ূ",

	// CP1252 region
	'†': "ে", '‡': "ে", 'ˆ': "ৈ", 'Š': "ৗ",
	'„': "ৃ", 'ƒ': "ূ",
	'Ö': "্র", '«': "্র", '¨': "্য",
	'©': string(rephMark),
	'&': "্",
	'|': "।",

	// Digits
	'0': "০", '1': "১", '2': "২", '3': "৩", '4': "৪",
	'5': "৫", '6': "৬", '7': "৭", '8': "৮", '9': "৯",
}

// Converter implements ports.Converter for Bijoy text.
type Converter struct{}

// New returns a Bijoy converter.
func New() *Converter {
	return &Converter{}
}

// Convert transliterates text from Bijoy visual order to Unicode logical
// order. Unmapped runes are kept as-is; Convert never fails.
func (c *Converter) Convert(text string) (string, error) {
	mapped := mapGlyphs(text)
	mapped = reorderReph(mapped)
	mapped = reorderPrebaseSigns(mapped)
	mapped = composeVowels(mapped)
	return string(mapped), nil
}

func mapGlyphs(text string) []rune {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := glyphMap[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return []rune(b.String())
}

// reorderReph replaces each reph placeholder with a logical র্ placed in
// front of the consonant cluster the glyph was drawn over. In Bijoy the ©
// glyph directly follows its cluster, e.g. Kg© for কর্ম.
func reorderReph(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if r != rephMark {
			out = append(out, r)
			continue
		}
		at := len(out)
		if at > 0 && isConsonant(out[at-1]) {
			// Hop back over conjunct parts (্ + consonant pairs) to the
			// cluster base.
			base := at - 1
			for base >= 2 && out[base-1] == hasant && isConsonant(out[base-2]) {
				base -= 2
			}
			out = append(out[:base], append([]rune{'র', hasant}, out[base:]...)...)
		}
		// A reph with nothing before it has no cluster to attach to; the
		// glyph is dropped.
	}
	return out
}

// reorderPrebaseSigns moves ি, ে and ৈ behind the consonant cluster they
// visually precede.
func reorderPrebaseSigns(runes []rune) []rune {
	out := append([]rune(nil), runes...)
	for i := 0; i < len(out); i++ {
		r := out[i]
		if r != signI && r != signE && r != signAI {
			continue
		}
		if i+1 >= len(out) || !isConsonant(out[i+1]) {
			continue // malformed input, leave the sign in place
		}
		end := i + 1
		for end+2 < len(out) && out[end+1] == hasant && isConsonant(out[end+2]) {
			end += 2
		}
		copy(out[i:end], out[i+1:end+1])
		out[end] = r
		i = end
	}
	return out
}

// composeVowels folds visual-order digraphs into their single code points:
// ে+া is ো, ে+ৗ is ৌ, and অ+া is আ.
func composeVowels(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i+1 < len(runes) {
			switch {
			case r == signE && runes[i+1] == signAA:
				out = append(out, 'ো')
				i++
				continue
			case r == signE && runes[i+1] == signAUTag:
				out = append(out, 'ৌ')
				i++
				continue
			case r == 'অ' && runes[i+1] == signAA:
				out = append(out, 'আ')
				i++
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func isConsonant(r rune) bool {
	return (r >= 'ক' && r <= 'হ') || r == '\u09DC' || r == '\u09DD' || r == '\u09DF'
}
