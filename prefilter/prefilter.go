// Package prefilter accelerates matching by scanning the input for bytes
// the pattern is required to begin with, so the interpreter only runs at
// candidate positions instead of at every position in turn.
//
// A Prefilter is built from the literals package's extraction result.
// The builder picks the cheapest primitive that covers the literal set:
//
//   - one single-byte literal     → simd.Memchr
//   - two/three single bytes     → simd.Memchr2 / simd.Memchr3
//   - one multi-byte literal     → simd.Memmem
//   - many literals              → an Aho-Corasick automaton
//   - a leading character class  → simd.MemchrInTable
//
// Prefilters are advisory: Find never skips a position where a match
// could start, but a reported position may still fail in the
// interpreter. A nil Prefilter means "try every position".
package prefilter

import (
	"github.com/coregx/yarrgo/literal"
	"github.com/coregx/yarrgo/simd"
)

// Prefilter finds candidate match-start positions in a byte haystack.
type Prefilter interface {
	// Find returns the first position at or after start where a match
	// could begin, or -1 when no such position exists in the rest of the
	// haystack.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a Find hit is a whole match by itself
	// (every underlying literal covers its entire pattern alternative).
	IsComplete() bool

	// MinLiteralLen returns the length of the shortest literal the
	// prefilter guarantees at a reported position (1 for class tables).
	MinLiteralLen() int
}

// FromSeq builds the cheapest prefilter covering seq, or nil when seq is
// empty or an automaton could not be built.
func FromSeq(seq *literal.Seq) Prefilter {
	switch seq.Len() {
	case 0:
		return nil
	case 1:
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return &memchrPrefilter{needles: []byte{lit.Bytes[0]}, complete: lit.Complete}
		}
		return &memmemPrefilter{needle: lit.Bytes, complete: lit.Complete}
	case 2, 3:
		if bytes, ok := singleBytes(seq); ok {
			return &memchrPrefilter{needles: bytes, complete: seq.AllComplete()}
		}
	}
	return newAhoCorasickPrefilter(seq)
}

// FromClassTable builds a prefilter that scans for any byte the table
// admits. It is never complete: the class is one character of a longer
// pattern.
func FromClassTable(table *[256]bool) Prefilter {
	return &classPrefilter{table: table}
}

func singleBytes(seq *literal.Seq) ([]byte, bool) {
	out := make([]byte, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		b := seq.Get(i).Bytes
		if len(b) != 1 {
			return nil, false
		}
		out = append(out, b[0])
	}
	return out, true
}

// memchrPrefilter scans for one, two, or three alternative single bytes.
type memchrPrefilter struct {
	needles  []byte
	complete bool
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	var idx int
	switch len(p.needles) {
	case 1:
		idx = simd.Memchr(haystack[start:], p.needles[0])
	case 2:
		idx = simd.Memchr2(haystack[start:], p.needles[0], p.needles[1])
	default:
		idx = simd.Memchr3(haystack[start:], p.needles[0], p.needles[1], p.needles[2])
	}
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *memchrPrefilter) IsComplete() bool { return p.complete }
func (p *memchrPrefilter) MinLiteralLen() int { return 1 }

// memmemPrefilter scans for one multi-byte literal.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) IsComplete() bool { return p.complete }
func (p *memmemPrefilter) MinLiteralLen() int { return len(p.needle) }

// classPrefilter scans for any byte in a membership table.
type classPrefilter struct {
	table *[256]bool
}

func (p *classPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.MemchrInTable(haystack[start:], p.table)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *classPrefilter) IsComplete() bool { return false }
func (p *classPrefilter) MinLiteralLen() int { return 1 }
