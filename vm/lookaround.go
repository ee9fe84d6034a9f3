package vm

import (
	"github.com/coregx/yarrgo/bytecode"
	"github.com/coregx/yarrgo/syntax"
)

// matchLookaround matches a (?=...)/(?!...)/(?<=...)/(?<!...) assertion: it
// never advances pos for the terms that follow it, but a positive
// assertion's captures persist past it, so success continues by replaying
// the nested disjunction's own continuation rather than copying captures
// wholesale.
func (s *state) matchLookaround(t *bytecode.ByteTerm, pos int, k cont) bool {
	if t.MatchDirection == syntax.Backward {
		return s.matchLookbehind(t, pos, k)
	}

	if t.Invert {
		saved := make([]int, len(s.caps))
		copy(saved, s.caps)
		matched := s.matchDisjunction(t.Nested, pos, func(int) bool { return true })
		copy(s.caps, saved) // negative lookahead never keeps captures either way
		if matched {
			return false
		}
		return k(pos)
	}

	return s.matchDisjunction(t.Nested, pos, func(int) bool {
		return k(pos)
	})
}

// matchLookbehind evaluates a lookbehind by trying every candidate start
// position at or before pos and running the nested subpattern forward from
// there, requiring it land exactly on pos. The nested bytecode was compiled
// in the same left-to-right term order as written (the compiler does not
// reverse lookbehind bodies), so this asks "does some substring ending at
// pos satisfy the subpattern" rather than executing a reversed program —
// correct, though O(pos) candidate starts instead of a single backward scan.
func (s *state) matchLookbehind(t *bytecode.ByteTerm, pos int, k cont) bool {
	for start := pos; start >= 0; start-- {
		if !s.step() {
			return false
		}
		saved := make([]int, len(s.caps))
		copy(saved, s.caps)
		matched := s.matchDisjunction(t.Nested, start, func(np int) bool { return np == pos })
		if matched {
			if t.Invert {
				copy(s.caps, saved)
				return false
			}
			if k(pos) {
				return true
			}
			copy(s.caps, saved)
			continue
		}
		copy(s.caps, saved)
	}
	if t.Invert {
		return k(pos)
	}
	return false
}
