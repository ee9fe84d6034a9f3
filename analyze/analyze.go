// Package analyze walks a parsed syntax.YarrPattern to compute the facts
// the bytecode compiler needs: per-alternative minimum consumed length,
// whether any anchor appears anywhere in the pattern, and a frame-slot
// layout assigning every backtrackable term a unique index into its
// owning alternative's backtrack frame.
package analyze

import "github.com/coregx/yarrgo/syntax"

// Analyze mutates pattern in place, filling MinimumSize/OnceThrough on
// every alternative, ContainsBOL/ContainsEOL on the pattern, FrameSlot on
// every term that needs backtrack state, and promoting
// syntax.ParenCapturing groups with a max-1 quantifier to syntax.ParenOnce
// (the "Once" ByteTerm family is driven by this).
func Analyze(pattern *syntax.YarrPattern) {
	a := &analyzer{}
	a.disjunction(pattern.Root)
	pattern.ContainsBOL = a.containsBOL
	pattern.ContainsEOL = a.containsEOL
}

type analyzer struct {
	containsBOL bool
	containsEOL bool
}

func (a *analyzer) disjunction(d *syntax.PatternDisjunction) {
	for i := range d.Alternatives {
		a.alternative(&d.Alternatives[i], i == len(d.Alternatives)-1)
	}
}

// alternative computes MinimumSize (sum of each term's own minimum
// contribution), assigns frame slots, and sets OnceThrough on the
// alternative when every term quantifies exactly once (a pure
// concatenation with no backtrack points of its own — it either
// matches once or fails, never re-enters).
func (a *analyzer) alternative(alt *syntax.PatternAlternative, isLastAlternative bool) {
	frameSlot := 0
	minSize := 0
	onceThrough := true

	for i := range alt.Terms {
		t := &alt.Terms[i]
		t.InputPosition = minSize

		switch t.Kind {
		case syntax.TermAnchor:
			switch t.Anchor {
			case syntax.AssertionBOL:
				a.containsBOL = true
			case syntax.AssertionEOL:
				a.containsEOL = true
			}
		case syntax.TermParentheses, syntax.TermParentheticalAssertion:
			a.disjunction(t.Disjunction)
		}

		needsFrameSlot := t.Quantifier.Type != syntax.FixedCount ||
			t.Kind == syntax.TermParentheses || t.Kind == syntax.TermParentheticalAssertion
		if needsFrameSlot {
			t.FrameSlot = frameSlot
			frameSlot++
		}

		if t.Quantifier.Type != syntax.FixedCount || t.Quantifier.Min != 1 || t.Quantifier.Max != 1 {
			onceThrough = false
		}

		minSize += termMinimumSize(t)

		if t.Kind == syntax.TermParentheses && t.ParenType == syntax.ParenCapturing && t.Quantifier.Max == 1 {
			t.ParenType = syntax.ParenOnce
		}
	}

	if len(alt.Terms) > 0 {
		last := &alt.Terms[len(alt.Terms)-1]
		if last.Kind == syntax.TermParentheses && last.Quantifier.Max == syntax.Unbounded && last.Quantifier.Type == syntax.Greedy {
			last.ParenType = syntax.ParenTerminal
		}
	}

	alt.MinimumSize = minSize
	alt.OnceThrough = onceThrough
}

// termMinimumSize is the guaranteed number of input units a term consumes
// at minimum: its own atomic width (0 for zero-width assertions, 1 for a
// character/class, the disjunction's own minimum for parens/lookaround)
// times its quantifier's Min.
func termMinimumSize(t *syntax.PatternTerm) int {
	var atomic int
	switch t.Kind {
	case syntax.TermCharacter, syntax.TermCharacterClass:
		atomic = 1
	case syntax.TermBackReference:
		atomic = 0 // unknown at analysis time; conservative lower bound
	case syntax.TermParentheses:
		atomic = disjunctionMinimumSize(t.Disjunction)
	case syntax.TermParentheticalAssertion, syntax.TermAnchor, syntax.TermForwardReference:
		atomic = 0
	}
	return atomic * t.Quantifier.Min
}

// disjunctionMinimumSize is the minimum over all of a disjunction's
// alternatives (the matcher might take the cheapest one).
func disjunctionMinimumSize(d *syntax.PatternDisjunction) int {
	if len(d.Alternatives) == 0 {
		return 0
	}
	min := -1
	for i := range d.Alternatives {
		alt := &d.Alternatives[i]
		size := 0
		for j := range alt.Terms {
			size += termMinimumSize(&alt.Terms[j])
		}
		if min == -1 || size < min {
			min = size
		}
	}
	return min
}

// DotStarEnclosure reports whether every alternative of the root
// disjunction begins and ends with an unanchored `.*` (the
// compiler-synthesized optimization precondition). bytecode.Compile stores
// the result in BytecodePattern.DotStarEnclosure; no DotStarEnclosure term
// is emitted into the term stream. Any greedy {0,∞} character-class term
// counts as `.*` here: the class itself is not compared with `.`, so
// `[a-z]*x[a-z]*` also reports true.
func DotStarEnclosure(pattern *syntax.YarrPattern) bool {
	d := pattern.Root
	if len(d.Alternatives) == 0 {
		return false
	}
	for i := range d.Alternatives {
		alt := &d.Alternatives[i]
		if len(alt.Terms) < 1 {
			return false
		}
		first := alt.Terms[0]
		last := alt.Terms[len(alt.Terms)-1]
		if !isUnanchoredDotStar(first) || !isUnanchoredDotStar(last) {
			return false
		}
	}
	return true
}

func isUnanchoredDotStar(t syntax.PatternTerm) bool {
	return t.Kind == syntax.TermCharacterClass &&
		t.Quantifier.Min == 0 && t.Quantifier.Max == syntax.Unbounded &&
		t.Quantifier.Type == syntax.Greedy
}
