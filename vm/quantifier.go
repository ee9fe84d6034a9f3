package vm

import (
	"github.com/coregx/yarrgo/bytecode"
	"github.com/coregx/yarrgo/syntax"
)

// matchQuantified repeats matchOne according to q, then hands off to the
// rest of the alternative via matchRest/k. Greedy tries the longest
// repetition count first and backs off one at a time; lazy tries the
// shortest first and extends one at a time. Both stop offering an extra
// zero-width repetition once the minimum is satisfied, so `()*` can't spin
// forever on a pos that never advances.
func (s *state) matchQuantified(q syntax.Quantifier, pos int, matchOne func(int) (int, bool), rest []bytecode.ByteTerm, k cont) bool {
	tail := func(p int) bool { return s.matchTerms(rest, p, k) }

	switch q.Type {
	case syntax.FixedCount:
		p := pos
		for i := 0; i < q.Min; i++ {
			np, ok := matchOne(p)
			if !ok {
				return false
			}
			p = np
		}
		return tail(p)
	case syntax.NonGreedy:
		return s.matchLazy(q, 0, pos, matchOne, tail)
	default:
		return s.matchGreedy(q, 0, pos, matchOne, tail)
	}
}

func (s *state) matchGreedy(q syntax.Quantifier, count, pos int, matchOne func(int) (int, bool), k cont) bool {
	if !s.step() {
		return false
	}
	if q.Max == syntax.Unbounded || count < q.Max {
		if np, ok := matchOne(pos); ok && (np != pos || count < q.Min) {
			if s.matchGreedy(q, count+1, np, matchOne, k) {
				return true
			}
		}
	}
	if count < q.Min {
		return false
	}
	return k(pos)
}

func (s *state) matchLazy(q syntax.Quantifier, count, pos int, matchOne func(int) (int, bool), k cont) bool {
	if !s.step() {
		return false
	}
	if count >= q.Min {
		if k(pos) {
			return true
		}
	}
	if q.Max == syntax.Unbounded || count < q.Max {
		if np, ok := matchOne(pos); ok && (np != pos || count < q.Min) {
			return s.matchLazy(q, count+1, np, matchOne, k)
		}
	}
	return false
}
