package vm

import (
	"github.com/coregx/yarrgo/bytecode"
	"github.com/coregx/yarrgo/syntax"
)

// matchGroup matches a capturing or non-capturing parenthesized group,
// repeating it as its quantifier demands. ParenOnce/ParenTerminal are the
// analyzer's optimization hints; correctness here does not depend on
// them, so both are handled identically to ParenCapturing — an optimizing
// executor would fast-path them, this one always walks the general
// quantifier loop.
func (s *state) matchGroup(t *bytecode.ByteTerm, pos int, k cont) bool {
	q := t.Quantifier
	switch q.Type {
	case syntax.FixedCount:
		return s.matchGroupFixed(t, q.Min, pos, k)
	case syntax.NonGreedy:
		return s.matchGroupLazy(t, q, 0, pos, k)
	default:
		return s.matchGroupGreedy(t, q, 0, pos, k)
	}
}

// matchGroupOnce runs the group's nested disjunction once at pos, recording
// (or restoring, on failure) its capture slot.
func (s *state) matchGroupOnce(t *bytecode.ByteTerm, pos int, k cont) bool {
	capturing := t.CaptureIndex >= 0
	var savedStart, savedEnd int
	if capturing {
		savedStart, savedEnd = s.caps[2*t.CaptureIndex], s.caps[2*t.CaptureIndex+1]
	}
	ok := s.matchDisjunction(t.Nested, pos, func(newPos int) bool {
		if capturing {
			s.caps[2*t.CaptureIndex] = pos
			s.caps[2*t.CaptureIndex+1] = newPos
		}
		return k(newPos)
	})
	if !ok && capturing {
		s.caps[2*t.CaptureIndex] = savedStart
		s.caps[2*t.CaptureIndex+1] = savedEnd
	}
	return ok
}

func (s *state) matchGroupFixed(t *bytecode.ByteTerm, count, pos int, k cont) bool {
	if count == 0 {
		return k(pos)
	}
	return s.matchGroupOnce(t, pos, func(p int) bool {
		return s.matchGroupFixed(t, count-1, p, k)
	})
}

func (s *state) matchGroupGreedy(t *bytecode.ByteTerm, q syntax.Quantifier, count, pos int, k cont) bool {
	if !s.step() {
		return false
	}
	if q.Max == syntax.Unbounded || count < q.Max {
		took := s.matchGroupOnce(t, pos, func(np int) bool {
			if np == pos && count >= q.Min {
				return false
			}
			return s.matchGroupGreedy(t, q, count+1, np, k)
		})
		if took {
			return true
		}
	}
	if count < q.Min {
		return false
	}
	return k(pos)
}

func (s *state) matchGroupLazy(t *bytecode.ByteTerm, q syntax.Quantifier, count, pos int, k cont) bool {
	if !s.step() {
		return false
	}
	if count >= q.Min {
		if k(pos) {
			return true
		}
	}
	if q.Max == syntax.Unbounded || count < q.Max {
		return s.matchGroupOnce(t, pos, func(np int) bool {
			if np == pos && count >= q.Min {
				return false
			}
			return s.matchGroupLazy(t, q, count+1, np, k)
		})
	}
	return false
}
