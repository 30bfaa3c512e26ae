// Package bangla decides whether text is, or can be converted into, valid
// Unicode Bengali. It contains the code-point range predicates and the
// accept/discard gate applied to every converter result.
package bangla

import "unicode"

// Bengali Unicode block boundaries.
const (
	blockStart = 0x0980
	blockEnd   = 0x09FF
)

// Dependent vowel signs (Mc category): AA, I, II, U, UU, R, RR, E, AI, O, AU
// all sit in 0x09BE-0x09CC.
const (
	vowelSignLo = 0x09BE
	vowelSignHi = 0x09CC
)

// KhandaTa (U+09CE) is strictly word-final in real Bengali. Bijoy maps the
// Latin letter 'r' to it, so garbled English shows it mid-word.
const KhandaTa = 'ৎ'

// IsBengali reports whether r lies in the main Bengali Unicode block.
func IsBengali(r rune) bool {
	return r >= blockStart && r <= blockEnd
}

// IsVowelSign reports whether r is a Bengali dependent vowel sign.
func IsVowelSign(r rune) bool {
	return r >= vowelSignLo && r <= vowelSignHi
}

// IsFinalOnly reports whether r is the one Bengali letter that may only
// appear as the last character of a word.
func IsFinalOnly(r rune) bool {
	return r == KhandaTa
}

// HasBengali reports whether s contains any Bengali code point.
func HasBengali(s string) bool {
	for _, r := range s {
		if IsBengali(r) {
			return true
		}
	}
	return false
}

// HasVowelSign reports whether s contains at least one dependent vowel sign.
func HasVowelSign(s string) bool {
	for _, r := range s {
		if IsVowelSign(r) {
			return true
		}
	}
	return false
}

// HasMisplacedFinal reports whether the final-only letter is immediately
// followed by another Bengali code point anywhere in s. The look-ahead is
// exactly one character; a trailing final-only letter is fine.
func HasMisplacedFinal(s string) bool {
	runes := []rune(s)
	for i, r := range runes {
		if IsFinalOnly(r) && i+1 < len(runes) && IsBengali(runes[i+1]) {
			return true
		}
	}
	return false
}

// hasAlpha reports whether s contains any alphabetic character in any script.
func hasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
