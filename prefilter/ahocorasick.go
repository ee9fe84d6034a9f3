package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/yarrgo/literal"
)

// ahoCorasickPrefilter covers literal sets too large or too uneven for
// the memchr/memmem primitives with a multi-pattern automaton. The
// automaton reports the leftmost occurrence of any literal, which is
// exactly the candidate-position contract Find needs.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
	minLen   int
}

func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		complete: seq.AllComplete(),
		minLen:   seq.MinLiteralLen(),
	}
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool   { return p.complete }
func (p *ahoCorasickPrefilter) MinLiteralLen() int { return p.minLen }
