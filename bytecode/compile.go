package bytecode

import (
	"errors"

	"github.com/coregx/yarrgo/analyze"
	"github.com/coregx/yarrgo/charclass"
	"github.com/coregx/yarrgo/syntax"
)

// ErrTooComplex is returned when compilation would recurse deeper than
// maxRecursionDepth.
var ErrTooComplex = errors.New("bytecode: pattern too complex to compile")

const maxRecursionDepth = 1000

// Compile lowers an analyzed pattern (syntax.Parse followed by
// analyze.Analyze) into a BytecodePattern. The caller must have already
// run analyze.Analyze so MinimumSize/FrameSlot/ContainsBOL/ContainsEOL are
// populated.
func Compile(pattern *syntax.YarrPattern) (*BytecodePattern, error) {
	c := &compiler{flags: pattern.Flags}

	body, err := c.compileDisjunction(pattern.Root, true, 0)
	if err != nil {
		return nil, err
	}

	offsetBase := 2 * (pattern.NumSubpatterns + 1)
	bp := &BytecodePattern{
		Body:                               body,
		Flags:                              pattern.Flags,
		DuplicateNamedGroupForSubpatternID: pattern.DuplicateNamedGroupForSubpatternID,
		OffsetVectorBaseForNamedCaptures:   offsetBase,
		OffsetsSize:                        offsetBase + pattern.NumDuplicateNamedGroups,
		ContainsBOL:                        pattern.ContainsBOL,
		ContainsEOL:                        pattern.ContainsEOL,
		DotStarEnclosure:                   analyze.DotStarEnclosure(pattern),
		NewlineClass:                       newlineClass(),
		WordClass:                          classEscapeW(),
	}
	return bp, nil
}

type compiler struct {
	flags syntax.Flag
}

func newlineClass() *charclass.CharacterClass {
	return charclass.NewBuilder().AddCodePoint('\n').AddCodePoint('\r').AddCodePoint(0x2028).AddCodePoint(0x2029).Finalize()
}

func classEscapeW() *charclass.CharacterClass {
	return charclass.NewBuilder().AddRange('a', 'z').AddRange('A', 'Z').AddRange('0', '9').AddCodePoint('_').Finalize()
}

// compileDisjunction emits Begin/Disjunction/End-bracketed alternatives.
// isBody selects the BodyAlternative* tags for the root disjunction versus
// Alternative* for a nested one.
func (c *compiler) compileDisjunction(d *syntax.PatternDisjunction, isBody bool, depth int) (*ByteDisjunction, error) {
	if depth > maxRecursionDepth {
		return nil, ErrTooComplex
	}

	bd := &ByteDisjunction{NumSubpatterns: d.LastSubpatternID - d.FirstSubpatternID + 1}

	beginOp, disjOp, endOp := OpAlternativeBegin, OpAlternativeDisjunction, OpAlternativeEnd
	if isBody {
		beginOp, disjOp, endOp = OpBodyAlternativeBegin, OpBodyAlternativeDisjunction, OpBodyAlternativeEnd
	}

	altStarts := make([]int, len(d.Alternatives))
	bd.AltRanges = make([][2]int, len(d.Alternatives))
	for i, alt := range d.Alternatives {
		altStarts[i] = len(bd.Terms)
		op := beginOp
		if i > 0 {
			op = disjOp
		}
		headIdx := len(bd.Terms)
		bd.Terms = append(bd.Terms, ByteTerm{Op: op})
		bodyStart := len(bd.Terms)

		if alt.MinimumSize > 0 {
			bd.Terms = append(bd.Terms, ByteTerm{Op: OpCheckInput, CheckedCount: alt.MinimumSize})
		}

		if err := c.compileAlternative(&alt, bd, depth); err != nil {
			return nil, err
		}

		if alt.MinimumSize > 0 {
			bd.Terms = append(bd.Terms, ByteTerm{Op: OpUncheckInput, CheckedCount: alt.MinimumSize})
		}

		bd.AltRanges[i] = [2]int{bodyStart, len(bd.Terms)}
		bd.Terms[headIdx].Next = len(bd.Terms) // where to jump to try the next alternative
	}
	bd.Terms = append(bd.Terms, ByteTerm{Op: endOp})
	endIdx := len(bd.Terms) - 1
	for _, start := range altStarts {
		bd.Terms[start].End = endIdx
	}

	bd.FrameSize = frameSizeOf(d)
	return bd, nil
}

func frameSizeOf(d *syntax.PatternDisjunction) int {
	max := 0
	for i := range d.Alternatives {
		alt := &d.Alternatives[i]
		count := 0
		for j := range alt.Terms {
			t := &alt.Terms[j]
			needsFrameSlot := t.Quantifier.Type != syntax.FixedCount ||
				t.Kind == syntax.TermParentheses || t.Kind == syntax.TermParentheticalAssertion
			if needsFrameSlot && t.FrameSlot+1 > count {
				count = t.FrameSlot + 1
			}
		}
		if count > max {
			max = count
		}
	}
	return max
}

func (c *compiler) compileAlternative(alt *syntax.PatternAlternative, bd *ByteDisjunction, depth int) error {
	for i := range alt.Terms {
		if err := c.compileTerm(&alt.Terms[i], bd, depth); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) compileTerm(t *syntax.PatternTerm, bd *ByteDisjunction, depth int) error {
	switch t.Kind {
	case syntax.TermCharacter:
		c.compileCharacter(t, bd)
	case syntax.TermCharacterClass:
		bd.Terms = append(bd.Terms, ByteTerm{
			Op:           OpCharacterClass,
			Class:        t.Class,
			FrameLocation: t.FrameSlot,
			Quantifier:   t.Quantifier,
		})
	case syntax.TermBackReference, syntax.TermForwardReference:
		bd.Terms = append(bd.Terms, ByteTerm{
			Op:           OpBackReference,
			SubpatternID: t.SubpatternID,
			FrameLocation: t.FrameSlot,
			Quantifier:   t.Quantifier,
		})
	case syntax.TermAnchor:
		op := OpAssertionBOL
		if t.Anchor == syntax.AssertionEOL {
			op = OpAssertionEOL
		} else if t.Anchor == syntax.AssertionWordBoundary {
			op = OpAssertionWordBoundary
		}
		bd.Terms = append(bd.Terms, ByteTerm{Op: op, Invert: t.Invert})
	case syntax.TermParentheses:
		return c.compileParentheses(t, bd, depth)
	case syntax.TermParentheticalAssertion:
		return c.compileLookaround(t, bd, depth)
	}
	return nil
}

func (c *compiler) compileCharacter(t *syntax.PatternTerm, bd *ByteDisjunction) {
	if !c.flags.Has(syntax.IgnoreCase) {
		bd.Terms = append(bd.Terms, ByteTerm{
			Op:           OpPatternCharacter,
			Character:    t.Character,
			FrameLocation: t.FrameSlot,
			Quantifier:   t.Quantifier,
		})
		return
	}
	folds := charclass.FoldCodePoint(t.Character, c.flags.Has(syntax.Unicode) || c.flags.Has(syntax.UnicodeSets))
	if len(folds) < 2 {
		bd.Terms = append(bd.Terms, ByteTerm{
			Op:           OpPatternCharacter,
			Character:    t.Character,
			FrameLocation: t.FrameSlot,
			Quantifier:   t.Quantifier,
		})
		return
	}
	bd.Terms = append(bd.Terms, ByteTerm{
		Op:            OpPatternCasedCharacter,
		Character:     folds[0],
		CharacterHi:   folds[1],
		FrameLocation: t.FrameSlot,
		Quantifier:    t.Quantifier,
	})
}

func (c *compiler) compileParentheses(t *syntax.PatternTerm, bd *ByteDisjunction, depth int) error {
	nested, err := c.compileDisjunction(t.Disjunction, false, depth+1)
	if err != nil {
		return err
	}
	pk := ParenNormal
	switch t.ParenType {
	case syntax.ParenOnce:
		pk = ParenOnce
	case syntax.ParenTerminal:
		pk = ParenTerminal
	}
	captureIdx := -1
	if t.ParenType != syntax.ParenNonCapturing {
		captureIdx = t.CaptureIndex
	}
	bd.Terms = append(bd.Terms, ByteTerm{
		Op:            OpParenthesesSubpatternBegin,
		Nested:        nested,
		ParenKind:     pk,
		CaptureIndex:  captureIdx,
		SubpatternID:  t.CaptureIndex,
		FrameLocation: t.FrameSlot,
		Quantifier:    t.Quantifier,
	})
	bd.Terms = append(bd.Terms, ByteTerm{
		Op:           OpParenthesesSubpatternEnd,
		ParenKind:    pk,
		CaptureIndex: captureIdx,
		SubpatternID: t.CaptureIndex,
	})
	return nil
}

func (c *compiler) compileLookaround(t *syntax.PatternTerm, bd *ByteDisjunction, depth int) error {
	nested, err := c.compileDisjunction(t.Disjunction, false, depth+1)
	if err != nil {
		return err
	}
	bd.Terms = append(bd.Terms, ByteTerm{
		Op:             OpParentheticalAssertionBegin,
		Nested:         nested,
		Invert:         t.Invert,
		MatchDirection: t.MatchDirection,
		FrameLocation:  t.FrameSlot,
	})
	bd.Terms = append(bd.Terms, ByteTerm{
		Op:             OpParentheticalAssertionEnd,
		Invert:         t.Invert,
		MatchDirection: t.MatchDirection,
	})
	return nil
}
