// Package generator turns a StringSpec plus a Randomizer into random strings
// built from weighted character classes, and provides classification
// predicates over arbitrary strings.
package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"railfuzz/pkg/randomizer"
)

// Symbols is the fixed alphabet used for the symbol character class.
// The backslash appears twice; that is intentional and affects selection
// weights for reproducible streams.
const Symbols = "!\\\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Emoji block sampled for the unicode character class, upper bound exclusive.
const (
	unicodeLo = 0x1F600
	unicodeHi = 0x1F64F
)

// StringSpec defines the criteria for generating random strings.
// Lowercase ASCII letters are always eligible; each toggle adds one more
// character class to the weighted selection.
type StringSpec struct {
	// Length is the target length in characters, not bytes.
	Length uint32 `yaml:"length"`
	// IncludeUnicode adds characters from a fixed emoji block.
	IncludeUnicode bool `yaml:"include_unicode"`
	// IncludeSymbol adds ASCII punctuation from Symbols.
	IncludeSymbol bool `yaml:"include_symbol"`
	// IncludeCapitalLetters adds uppercase ASCII letters.
	IncludeCapitalLetters bool `yaml:"include_capital_letters"`
	// IncludeNumbers adds decimal digits.
	IncludeNumbers bool `yaml:"include_numbers"`
}

// DefaultSpec returns the default criteria: six lowercase characters.
func DefaultSpec() StringSpec {
	return StringSpec{Length: 6}
}

// FromRandomizer draws a fully random spec: length 1 to 50 and independent
// random toggles.
func FromRandomizer(r *randomizer.Randomizer) StringSpec {
	return StringSpec{
		Length:                r.NumberBetween(1, 50),
		IncludeUnicode:        r.Bool(),
		IncludeSymbol:         r.Bool(),
		IncludeCapitalLetters: r.Bool(),
		IncludeNumbers:        r.Bool(),
	}
}

// Generate produces one random string satisfying the spec. Per character it
// draws a class selector in [0,100) and resolves it against the enabled
// classes in fixed priority order: unicode below 20, symbol below 40, capital
// below 60, numeric below 80, lowercase as the catch-all. A disabled class's
// selector range falls through to the next enabled class. Each character
// counts as one unit toward Length regardless of its byte width.
func (s StringSpec) Generate(r *randomizer.Randomizer) string {
	symbols := []rune(Symbols)

	var b strings.Builder
	for n := uint32(0); n < s.Length; n++ {
		choice := r.NumberBetween(0, 99)
		switch {
		case s.IncludeUnicode && choice < 20:
			ch := rune(r.NumberBetween(unicodeLo, unicodeHi-1))
			if !utf8.ValidRune(ch) {
				ch = '?'
			}
			b.WriteRune(ch)
		case s.IncludeSymbol && choice < 40:
			b.WriteRune(symbols[r.NumberBetween(0, uint32(len(symbols)-1))])
		case s.IncludeCapitalLetters && choice < 60:
			b.WriteByte(byte('A' + r.NumberBetween(0, 25)))
		case s.IncludeNumbers && choice < 80:
			b.WriteByte(byte('0' + r.NumberBetween(0, 9)))
		default:
			b.WriteByte(byte('a' + r.NumberBetween(0, 25)))
		}
	}
	return b.String()
}

// ContainsUnicode reports whether s holds any non-ASCII character.
func ContainsUnicode(s string) bool {
	for _, ch := range s {
		if ch > unicode.MaxASCII {
			return true
		}
	}
	return false
}

// ContainsSymbols reports whether s holds any character from Symbols.
func ContainsSymbols(s string) bool {
	return strings.ContainsAny(s, Symbols)
}

// ContainsNumbers reports whether s holds any numeric character.
func ContainsNumbers(s string) bool {
	return strings.ContainsFunc(s, unicode.IsNumber)
}

// ContainsCapitalLetters reports whether s holds any uppercase character.
func ContainsCapitalLetters(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

// ContainsOnlyLowercase reports whether none of the other character classes
// appear in s.
func ContainsOnlyLowercase(s string) bool {
	return !ContainsCapitalLetters(s) &&
		!ContainsNumbers(s) &&
		!ContainsSymbols(s) &&
		!ContainsUnicode(s)
}
