package charclass

import "unicode"

// FoldCodePoint implements the ignoreCase folding policy: under
// Unicode/UnicodeSets mode, Unicode simple case folding; otherwise ASCII
// folding restricted to A-Z. It returns the set of code points a single
// source code point expands to under the pattern's ignoreCase flag: always
// at least {c}, and a second member when a fold partner exists.
func FoldCodePoint(c rune, unicodeMode bool) []rune {
	if !unicodeMode {
		if c >= 'A' && c <= 'Z' {
			return []rune{c, c + ('a' - 'A')}
		}
		if c >= 'a' && c <= 'z' {
			return []rune{c, c - ('a' - 'A')}
		}
		return []rune{c}
	}

	folded := unicode.SimpleFold(c)
	if folded == c {
		return []rune{c}
	}
	// unicode.SimpleFold walks a cycle; ECMAScript simple case folding
	// wants the small closed set reachable from c, which for every
	// practical case is the 2-cycle {c, folded}. Collect the full cycle
	// defensively in case the Unicode data ever yields a longer one.
	out := []rune{c}
	for f := folded; f != c; f = unicode.SimpleFold(f) {
		out = append(out, f)
	}
	return out
}

// AddCaseFoldedCodePoint adds c to the builder along with its fold
// partner(s) under the given ignoreCase/unicode mode combination.
func (b *Builder) AddCaseFoldedCodePoint(c rune, ignoreCase, unicodeMode bool) *Builder {
	if !ignoreCase {
		return b.AddCodePoint(c)
	}
	for _, f := range FoldCodePoint(c, unicodeMode) {
		b.AddCodePoint(f)
	}
	return b
}

// AddCaseFoldedRange adds [lo,hi] along with every code point's fold
// partners under the given mode.
func (b *Builder) AddCaseFoldedRange(lo, hi rune, ignoreCase, unicodeMode bool) *Builder {
	if !ignoreCase {
		return b.AddRange(lo, hi)
	}
	b.AddRange(lo, hi)
	for c := lo; c <= hi; c++ {
		for _, f := range FoldCodePoint(c, unicodeMode) {
			b.AddCodePoint(f)
		}
		if c == MaxCodePoint {
			break
		}
	}
	return b
}
