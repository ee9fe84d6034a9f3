package yarrgo

import (
	"github.com/coregx/yarrgo/syntax"
	"github.com/coregx/yarrgo/vm"
)

// MatchResult is the result of a successful Exec, modeled on the array
// %RegExp.prototype.exec% returns: indexable groups plus the Index/Input
// properties ECMAScript attaches to it.
type MatchResult struct {
	// Input is the full string Exec was called on.
	Input string
	// Index is the rune offset the match started at.
	Index int

	re      *RegExp
	runes   []rune
	offsets []int
}

func newMatchResult(re *RegExp, input string, runes []rune, res *vm.Result) *MatchResult {
	return &MatchResult{
		Input:   input,
		Index:   res.Offsets[0],
		re:      re,
		runes:   runes,
		offsets: res.Offsets,
	}
}

// NumGroups returns the number of capturing groups, not counting group 0
// (the whole match).
func (m *MatchResult) NumGroups() int {
	return len(m.offsets)/2 - 1
}

// Group returns capturing group n's text (n == 0 is the whole match), or
// ok=false if that group did not participate in the match.
func (m *MatchResult) Group(n int) (text string, ok bool) {
	if 2*n+1 >= len(m.offsets) {
		return "", false
	}
	start, end := m.offsets[2*n], m.offsets[2*n+1]
	if start < 0 {
		return "", false
	}
	return string(m.runes[start:end]), true
}

// GroupIndices returns capturing group n's [start, end) rune offsets, or
// ok=false if it did not participate.
func (m *MatchResult) GroupIndices(n int) (start, end int, ok bool) {
	if 2*n+1 >= len(m.offsets) {
		return -1, -1, false
	}
	start, end = m.offsets[2*n], m.offsets[2*n+1]
	return start, end, start >= 0
}

// NamedGroup returns the text captured by the named group, or ok=false if
// the name is unknown or the group did not participate. When a name is
// shared by captures in different alternatives (the Unicode duplicate-name
// allowance), at most one of them participated in the match and that one
// is returned.
func (m *MatchResult) NamedGroup(name string) (text string, ok bool) {
	for _, id := range m.re.c.pattern.GroupNames[name] {
		if text, ok = m.Group(id); ok {
			return text, true
		}
	}
	return "", false
}

// AllGroups returns every group's text, group 0 first; unmatched groups
// are the empty string (use Group or GroupIndices to distinguish
// "unmatched" from "matched empty").
func (m *MatchResult) AllGroups() []string {
	out := make([]string, len(m.offsets)/2)
	for i := range out {
		out[i], _ = m.Group(i)
	}
	return out
}

// Indices returns each capture's [start, end) rune-offset pair, group 0
// first, with a nil entry for every capture that did not participate. It
// returns nil unless the pattern was compiled with the d flag — only d
// attaches .indices to an exec result.
func (m *MatchResult) Indices() [][]int {
	if !m.re.c.flags.Has(syntax.HasIndices) {
		return nil
	}
	out := make([][]int, len(m.offsets)/2)
	for i := range out {
		if start, end, ok := m.GroupIndices(i); ok {
			out[i] = []int{start, end}
		}
	}
	return out
}

// IndicesGroups is the named-capture companion to Indices, mirroring
// .indices.groups: every group name maps to its [start, end) pair, or to
// nil when that name's capture did not participate. Returns nil unless
// the d flag is set or when the pattern has no named groups. A name
// shared across alternatives (the Unicode duplicate-name allowance)
// reports the one capture that participated.
func (m *MatchResult) IndicesGroups() map[string][]int {
	names := m.re.c.pattern.GroupNames
	if !m.re.c.flags.Has(syntax.HasIndices) || len(names) == 0 {
		return nil
	}
	out := make(map[string][]int, len(names))
	for name, ids := range names {
		out[name] = nil
		for _, id := range ids {
			if start, end, ok := m.GroupIndices(id); ok {
				out[name] = []int{start, end}
				break
			}
		}
	}
	return out
}
