package vm

import "github.com/coregx/yarrgo/syntax"

// atBOL reports whether pos is a valid ^ position: the start of input
// always, or just past a line terminator when /m is set.
func (s *state) atBOL(pos int) bool {
	if pos == 0 {
		return true
	}
	if !s.flags.Has(syntax.Multiline) {
		return false
	}
	return s.bp.NewlineClass.Contains(s.input[pos-1])
}

// atEOL reports whether pos is a valid $ position: the end of input
// always, or just before a line terminator when /m is set.
func (s *state) atEOL(pos int) bool {
	if pos == len(s.input) {
		return true
	}
	if !s.flags.Has(syntax.Multiline) {
		return false
	}
	return s.bp.NewlineClass.Contains(s.input[pos])
}

// atWordBoundary reports whether pos sits between a word character and a
// non-word character (or input boundary), the \b condition. \B is the
// negation, applied by the caller via ByteTerm.Invert.
//
// Word-class membership always uses the pattern's ASCII \w definition
// (bp.WordClass), even under /u — ECMAScript's own word-boundary algorithm
// does not consult the Unicode property tables \p{} does, so there is no
// separate "unicode word class" to switch to here despite
// BytecodePattern.UnicodeIgnoreCaseWordClass existing as a field for a
// fuller case-folding treatment of \w inside character classes.
func (s *state) atWordBoundary(pos int) bool {
	before := pos > 0 && s.bp.WordClass.Contains(s.input[pos-1])
	after := pos < len(s.input) && s.bp.WordClass.Contains(s.input[pos])
	return before != after
}
