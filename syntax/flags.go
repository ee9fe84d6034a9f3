// Package syntax parses an ECMAScript RegExp source and flag set into a
// validated pattern tree (a YarrPattern), and defines the ErrorCode
// enumeration every structural parse failure reports.
package syntax

import "strings"

// Flag is a single ECMAScript RegExp flag letter.
type Flag uint16

const (
	HasIndices Flag = 1 << iota // d
	Global                      // g
	IgnoreCase                  // i
	Multiline                   // m
	DotAll                      // s
	Unicode                     // u
	UnicodeSets                 // v
	Sticky                      // y
)

// canonicalOrder is the order the `flags` getter serializes letters in,
// so a parse/serialize round trip is stable.
var canonicalOrder = []struct {
	flag   Flag
	letter byte
}{
	{HasIndices, 'd'},
	{Global, 'g'},
	{IgnoreCase, 'i'},
	{Multiline, 'm'},
	{DotAll, 's'},
	{Unicode, 'u'},
	{UnicodeSets, 'v'},
	{Sticky, 'y'},
}

var letterToFlag = map[byte]Flag{
	'd': HasIndices,
	'g': Global,
	'i': IgnoreCase,
	'm': Multiline,
	's': DotAll,
	'u': Unicode,
	'v': UnicodeSets,
	'y': Sticky,
}

// ParseFlags parses a flags string into a Flag set. It rejects unknown
// letters, duplicate letters, and the mutually-exclusive u/v pair,
// returning ok=false in any of those cases (mirrors
// how engines reject bad flag strings before touching the pattern).
func ParseFlags(s string) (flags Flag, ok bool) {
	var seen Flag
	for i := 0; i < len(s); i++ {
		bit, known := letterToFlag[s[i]]
		if !known {
			return 0, false
		}
		if seen&bit != 0 {
			return 0, false
		}
		seen |= bit
	}
	if seen&Unicode != 0 && seen&UnicodeSets != 0 {
		return 0, false
	}
	return seen, true
}

// String serializes the flag set in canonical order (d g i m s u v y).
func (f Flag) String() string {
	var sb strings.Builder
	for _, e := range canonicalOrder {
		if f&e.flag != 0 {
			sb.WriteByte(e.letter)
		}
	}
	return sb.String()
}

// Has reports whether every bit in mask is set in f.
func (f Flag) Has(mask Flag) bool { return f&mask == mask }

// Mode selects which of the three parser grammars (Legacy, Unicode,
// UnicodeSets) governs parsing.
type Mode int

const (
	Legacy Mode = iota
	UnicodeMode
	UnicodeSetsMode
)

// ModeOf derives the parser Mode from a flag set.
func ModeOf(f Flag) Mode {
	switch {
	case f.Has(UnicodeSets):
		return UnicodeSetsMode
	case f.Has(Unicode):
		return UnicodeMode
	default:
		return Legacy
	}
}
