// Package literal extracts the literal byte strings a compiled pattern is
// required to begin with. The facade feeds the result to package prefilter,
// which scans the input for those literals with SIMD-style primitives so
// the backtracking interpreter is only invoked at positions that could
// actually start a match.
//
// A Literal is one required prefix; a Seq is the set of alternatives
// (one per top-level pattern alternative, e.g. two entries for /foo|bar/).
package literal

import "bytes"

// Literal is one byte sequence a match may begin with. Complete is true
// when the sequence is the entire alternative: finding the literal in the
// input is then finding a whole match, not just a candidate position.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// Seq is an ordered set of alternative literals. A nil or empty Seq means
// no useful literal information could be extracted.
type Seq struct {
	lits []Literal
}

// NewSeq returns an empty Seq.
func NewSeq() *Seq {
	return &Seq{}
}

// Push appends lit unless an identical byte sequence is already present.
// A duplicate arriving with Complete == false demotes the stored entry,
// since the weaker claim is the one that holds for both alternatives.
func (s *Seq) Push(lit Literal) {
	for i := range s.lits {
		if bytes.Equal(s.lits[i].Bytes, lit.Bytes) {
			if !lit.Complete {
				s.lits[i].Complete = false
			}
			return
		}
	}
	s.lits = append(s.lits, lit)
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lits)
}

// IsEmpty reports whether the Seq carries no literals.
func (s *Seq) IsEmpty() bool { return s.Len() == 0 }

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal { return s.lits[i] }

// MinLiteralLen returns the length of the shortest literal, or 0 for an
// empty Seq.
func (s *Seq) MinLiteralLen() int {
	if s.IsEmpty() {
		return 0
	}
	min := len(s.lits[0].Bytes)
	for _, l := range s.lits[1:] {
		if len(l.Bytes) < min {
			min = len(l.Bytes)
		}
	}
	return min
}

// AllComplete reports whether every literal is Complete, i.e. whether a
// prefilter hit is a whole match by itself.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, l := range s.lits {
		if !l.Complete {
			return false
		}
	}
	return true
}

// Minimize drops every literal that has another literal of the Seq as a
// proper prefix. The scan for the shorter literal finds every position the
// longer one could start at, so the longer entry only adds automaton
// states without adding candidate positions. Entries dropped this way
// force the survivor to Complete == false (a hit now only locates a
// candidate, it no longer identifies which alternative matched).
func (s *Seq) Minimize() {
	if s.Len() < 2 {
		return
	}
	// Equal-length duplicates were already merged by Push, so "proper
	// prefix" here always means strictly shorter.
	subsumed := make([]bool, len(s.lits))
	for i, l := range s.lits {
		for j, m := range s.lits {
			if i == j || len(m.Bytes) >= len(l.Bytes) {
				continue
			}
			if bytes.HasPrefix(l.Bytes, m.Bytes) {
				subsumed[i] = true
				s.lits[j].Complete = false
				break
			}
		}
	}
	kept := make([]Literal, 0, len(s.lits))
	for i, l := range s.lits {
		if !subsumed[i] {
			kept = append(kept, l)
		}
	}
	s.lits = kept
}
