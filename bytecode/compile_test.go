package bytecode

import (
	"testing"

	"github.com/coregx/yarrgo/analyze"
	"github.com/coregx/yarrgo/syntax"
)

func mustCompile(t *testing.T, src string, flags syntax.Flag) *BytecodePattern {
	t.Helper()
	p, err := syntax.Parse(src, flags)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	analyze.Analyze(p)
	bp, err := Compile(p)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", src, err)
	}
	return bp
}

func TestCompileSimpleConcatenation(t *testing.T) {
	bp := mustCompile(t, `abc`, 0)
	var chars []rune
	for _, term := range bp.Body.Terms {
		if term.Op == OpPatternCharacter {
			chars = append(chars, term.Character)
		}
	}
	if string(chars) != "abc" {
		t.Errorf("got characters %q, want \"abc\"", string(chars))
	}
}

func TestCompileAlternationJumpTargets(t *testing.T) {
	bp := mustCompile(t, `ab|cd|ef`, 0)
	var heads []ByteTerm
	for _, term := range bp.Body.Terms {
		switch term.Op {
		case OpBodyAlternativeBegin, OpBodyAlternativeDisjunction:
			heads = append(heads, term)
		}
	}
	if len(heads) != 3 {
		t.Fatalf("expected 3 alternative heads, got %d", len(heads))
	}
	endOp := bp.Body.Terms[len(bp.Body.Terms)-1]
	if endOp.Op != OpBodyAlternativeEnd {
		t.Fatalf("expected last term to be BodyAlternativeEnd, got %v", endOp.Op)
	}
	endIdx := len(bp.Body.Terms) - 1
	for i, head := range heads {
		if head.End != endIdx {
			t.Errorf("alternative %d End = %d, want %d", i, head.End, endIdx)
		}
	}
	// Each head's Next should point past its own alternative body, to the
	// following alternative's own head (or, for the last, to End).
	for i := 0; i < len(heads)-1; i++ {
		if heads[i].Next <= i {
			t.Errorf("alternative %d Next = %d should be an index forward into the term stream", i, heads[i].Next)
		}
	}
}

func TestCompileCapturingGroup(t *testing.T) {
	bp := mustCompile(t, `(a)(b)`, 0)
	var begins []ByteTerm
	for _, term := range bp.Body.Terms {
		if term.Op == OpParenthesesSubpatternBegin {
			begins = append(begins, term)
		}
	}
	if len(begins) != 2 {
		t.Fatalf("expected 2 capturing groups, got %d", len(begins))
	}
	if begins[0].CaptureIndex != 1 || begins[1].CaptureIndex != 2 {
		t.Errorf("capture indices = %d, %d, want 1, 2", begins[0].CaptureIndex, begins[1].CaptureIndex)
	}
	for i, b := range begins {
		if b.Nested == nil {
			t.Errorf("group %d: nested disjunction is nil", i)
		}
	}
}

func TestCompileNonCapturingGroupHasNoCaptureIndex(t *testing.T) {
	bp := mustCompile(t, `(?:abc)`, 0)
	for _, term := range bp.Body.Terms {
		if term.Op == OpParenthesesSubpatternBegin && term.CaptureIndex != -1 {
			t.Errorf("non-capturing group got CaptureIndex %d, want -1", term.CaptureIndex)
		}
	}
}

func TestCompileQuantifiedGroupPromotedToParenOnce(t *testing.T) {
	bp := mustCompile(t, `(ab)?`, 0)
	for _, term := range bp.Body.Terms {
		if term.Op == OpParenthesesSubpatternBegin && term.ParenKind != ParenOnce {
			t.Errorf("ParenKind = %v, want ParenOnce", term.ParenKind)
		}
	}
}

func TestCompileLookaround(t *testing.T) {
	bp := mustCompile(t, `a(?=b)`, 0)
	found := false
	for _, term := range bp.Body.Terms {
		if term.Op == OpParentheticalAssertionBegin {
			found = true
			if term.Invert {
				t.Error("positive lookahead should not be Invert")
			}
			if term.MatchDirection != syntax.Forward {
				t.Error("lookahead should be Forward")
			}
		}
	}
	if !found {
		t.Fatal("expected a ParentheticalAssertionBegin term")
	}
}

func TestCompileLookbehindInvert(t *testing.T) {
	bp := mustCompile(t, `(?<!ab)c`, 0)
	found := false
	for _, term := range bp.Body.Terms {
		if term.Op == OpParentheticalAssertionBegin {
			found = true
			if !term.Invert {
				t.Error("negative lookbehind should be Invert")
			}
			if term.MatchDirection != syntax.Backward {
				t.Error("lookbehind should be Backward")
			}
		}
	}
	if !found {
		t.Fatal("expected a ParentheticalAssertionBegin term")
	}
}

func TestCompileIgnoreCaseEmitsCasedCharacter(t *testing.T) {
	bp := mustCompile(t, `a`, syntax.IgnoreCase)
	found := false
	for _, term := range bp.Body.Terms {
		if term.Op == OpPatternCasedCharacter {
			found = true
			if term.Character != 'A' && term.Character != 'a' {
				t.Errorf("unexpected fold character %q", term.Character)
			}
		}
	}
	if !found {
		t.Error("expected a PatternCasedCharacter term under IgnoreCase")
	}
}

func TestCompileCheckInputEmittedForNonZeroMinimum(t *testing.T) {
	bp := mustCompile(t, `abc`, 0)
	if bp.Body.Terms[1].Op != OpCheckInput {
		t.Errorf("expected CheckInput as second term, got %v", bp.Body.Terms[1].Op)
	}
	if bp.Body.Terms[1].CheckedCount != 3 {
		t.Errorf("CheckedCount = %d, want 3", bp.Body.Terms[1].CheckedCount)
	}
}

func TestCompileBackReference(t *testing.T) {
	bp := mustCompile(t, `(a)\1`, 0)
	found := false
	for _, term := range bp.Body.Terms {
		if term.Op == OpBackReference {
			found = true
			if term.SubpatternID != 1 {
				t.Errorf("SubpatternID = %d, want 1", term.SubpatternID)
			}
		}
	}
	if !found {
		t.Fatal("expected a BackReference term")
	}
}

func TestCompileFrameSizeAccountsForQuantifiedTerms(t *testing.T) {
	bp := mustCompile(t, `a+b*c`, 0)
	if bp.Body.FrameSize < 2 {
		t.Errorf("FrameSize = %d, want at least 2 for two quantified terms", bp.Body.FrameSize)
	}
}
