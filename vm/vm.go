// Package vm executes a bytecode.BytecodePattern against an input string.
// A ByteTerm stream can express backreferences and lookaround, which rule
// out DFA/NFA set simulation — vm is a recursive backtracker over the
// term tree, continuation-passing so that failure anywhere past a
// quantifier, alternative, or group unwinds to the nearest choice point
// and tries the next option.
package vm

import (
	"errors"

	"github.com/coregx/yarrgo/bytecode"
	"github.com/coregx/yarrgo/charclass"
	"github.com/coregx/yarrgo/syntax"
)

// ErrCatastrophicBacktracking is returned when a match attempt exceeds the
// step budget: rather than let a pathological pattern (nested unbounded
// quantifiers over shared input) spin forever,
// the vm gives up and reports it couldn't finish.
var ErrCatastrophicBacktracking = errors.New("vm: exceeded backtracking step budget")

// maxSteps bounds the number of term-attempts a single Exec call may take.
// Chosen generously; real patterns never come close, pathological ones
// (nested unbounded quantifiers over shared input) do.
const maxSteps = 50_000_000

// maxRecursionDepth guards Go's call stack against the same pathological
// patterns — each nested group, lookaround, or quantifier iteration adds a
// frame.
const maxRecursionDepth = 4000

// cont is the "what happens if this succeeds" continuation. It returns
// true if the overall match at the resulting position ultimately
// succeeds; the matcher tries alternatives in order until one continuation
// returns true.
type cont func(pos int) bool

// Result holds subpattern capture offsets after a successful match.
// Offsets[0]/Offsets[1] is the whole-match span; Offsets[2*n]/Offsets[2*n+1] is
// subpattern n's span, or (-1,-1) if that subpattern never captured.
type Result struct {
	Offsets []int
}

// Group returns subpattern n's captured span, or ok=false if it never
// captured during this match.
func (r *Result) Group(n int) (start, end int, ok bool) {
	start, end = r.Offsets[2*n], r.Offsets[2*n+1]
	return start, end, start >= 0
}

type state struct {
	input []rune
	flags syntax.Flag
	bp    *bytecode.BytecodePattern
	caps  []int
	steps int
	depth int
}

// Exec attempts an anchored match of bp starting exactly at input[start:].
// Unanchored search (trying successive start positions) and sticky-flag
// handling belong to the facade above the vm; Exec always
// matches at a single fixed position.
func Exec(bp *bytecode.BytecodePattern, input []rune, start int) (*Result, error) {
	s := &state{
		input: input,
		flags: bp.Flags,
		bp:    bp,
		caps:  make([]int, bp.OffsetVectorBaseForNamedCaptures),
	}
	for i := range s.caps {
		s.caps[i] = -1
	}

	matched := false
	var end int
	ok := s.matchDisjunction(bp.Body, start, func(p int) bool {
		matched = true
		end = p
		return true
	})
	if s.steps >= maxSteps {
		return nil, ErrCatastrophicBacktracking
	}
	if !ok || !matched {
		return nil, nil
	}
	s.caps[0] = start
	s.caps[1] = end
	return &Result{Offsets: s.caps}, nil
}

func (s *state) step() bool {
	s.steps++
	return s.steps < maxSteps
}

// matchDisjunction tries each alternative of d in order at pos, restoring
// any captures a failed attempt wrote before trying the next one.
func (s *state) matchDisjunction(d *bytecode.ByteDisjunction, pos int, k cont) bool {
	if s.depth++; s.depth > maxRecursionDepth {
		s.depth--
		return false
	}
	defer func() { s.depth-- }()

	saved := make([]int, len(s.caps))
	for _, r := range d.AltRanges {
		if !s.step() {
			return false
		}
		copy(saved, s.caps)
		if s.matchTerms(d.Terms[r[0]:r[1]], pos, k) {
			return true
		}
		copy(s.caps, saved)
	}
	return false
}

// matchTerms walks one alternative's term slice left to right, dispatching
// each op and threading the rest of the slice through as the continuation
// for whatever choice points that op introduces.
func (s *state) matchTerms(terms []bytecode.ByteTerm, pos int, k cont) bool {
	if !s.step() {
		return false
	}
	if len(terms) == 0 {
		return k(pos)
	}
	t := &terms[0]
	rest := terms[1:]

	switch t.Op {
	case bytecode.OpCheckInput:
		if len(s.input)-pos < t.CheckedCount {
			return false
		}
		return s.matchTerms(rest, pos, k)

	case bytecode.OpUncheckInput, bytecode.OpHaveCheckedInput:
		return s.matchTerms(rest, pos, k)

	case bytecode.OpPatternCharacter:
		return s.matchQuantified(t.Quantifier, pos, s.literalMatcher(t.Character, 0), rest, k)

	case bytecode.OpPatternCasedCharacter:
		return s.matchQuantified(t.Quantifier, pos, s.literalMatcher(t.Character, t.CharacterHi), rest, k)

	case bytecode.OpCharacterClass:
		return s.matchQuantified(t.Quantifier, pos, s.classMatcher(t.Class), rest, k)

	case bytecode.OpBackReference:
		return s.matchQuantified(t.Quantifier, pos, s.backrefMatcher(t.SubpatternID), rest, k)

	case bytecode.OpAssertionBOL:
		if !s.atBOL(pos) {
			return false
		}
		return s.matchTerms(rest, pos, k)

	case bytecode.OpAssertionEOL:
		if !s.atEOL(pos) {
			return false
		}
		return s.matchTerms(rest, pos, k)

	case bytecode.OpAssertionWordBoundary:
		if s.atWordBoundary(pos) == t.Invert {
			return false
		}
		return s.matchTerms(rest, pos, k)

	case bytecode.OpParenthesesSubpatternBegin:
		// rest[0] is this group's matching End marker; whatever follows
		// the group runs only once the group (and any of its own
		// quantifier repetitions) has matched.
		after := rest[1:]
		return s.matchGroup(t, pos, func(p int) bool {
			return s.matchTerms(after, p, k)
		})

	case bytecode.OpParentheticalAssertionBegin:
		after := rest[1:]
		return s.matchLookaround(t, pos, func(p int) bool {
			return s.matchTerms(after, p, k)
		})

	case bytecode.OpDotStarEnclosure:
		return s.matchTerms(rest, pos, k)
	}

	return s.matchTerms(rest, pos, k)
}

func (s *state) literalMatcher(lo, hi rune) func(int) (int, bool) {
	return func(pos int) (int, bool) {
		if pos >= len(s.input) {
			return pos, false
		}
		c := s.input[pos]
		if c == lo || (hi != 0 && c == hi) {
			return pos + 1, true
		}
		return pos, false
	}
}

func (s *state) classMatcher(cls *charclass.CharacterClass) func(int) (int, bool) {
	return func(pos int) (int, bool) {
		if pos >= len(s.input) {
			return pos, false
		}
		if cls.Contains(s.input[pos]) {
			return pos + 1, true
		}
		return pos, false
	}
}
