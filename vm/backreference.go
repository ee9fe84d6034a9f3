package vm

import (
	"github.com/coregx/yarrgo/charclass"
	"github.com/coregx/yarrgo/syntax"
)

// backrefMatcher returns a matchOne function for \N: an unset capture
// (the group never participated, or this attempt hasn't reached it yet)
// matches the empty string, per ECMAScript's back-reference semantics.
func (s *state) backrefMatcher(subpatternID int) func(int) (int, bool) {
	return func(pos int) (int, bool) {
		start, end := s.caps[2*subpatternID], s.caps[2*subpatternID+1]
		if start < 0 {
			return pos, true
		}
		capLen := end - start
		if pos+capLen > len(s.input) {
			return pos, false
		}
		ignoreCase := s.flags.Has(syntax.IgnoreCase)
		unicodeMode := s.flags.Has(syntax.Unicode) || s.flags.Has(syntax.UnicodeSets)
		for i := 0; i < capLen; i++ {
			a, b := s.input[start+i], s.input[pos+i]
			if a == b {
				continue
			}
			if ignoreCase && foldEquals(a, b, unicodeMode) {
				continue
			}
			return pos, false
		}
		return pos + capLen, true
	}
}

func foldEquals(a, b rune, unicodeMode bool) bool {
	for _, f := range charclass.FoldCodePoint(a, unicodeMode) {
		if f == b {
			return true
		}
	}
	return false
}
