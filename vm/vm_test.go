package vm

import (
	"testing"

	"github.com/coregx/yarrgo/analyze"
	"github.com/coregx/yarrgo/bytecode"
	"github.com/coregx/yarrgo/syntax"
)

func compilePattern(t *testing.T, src string, flags syntax.Flag) *bytecode.BytecodePattern {
	t.Helper()
	p, err := syntax.Parse(src, flags)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	analyze.Analyze(p)
	bp, err := bytecode.Compile(p)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", src, err)
	}
	return bp
}

func execAt(t *testing.T, bp *bytecode.BytecodePattern, input string, start int) *Result {
	t.Helper()
	r, err := Exec(bp, []rune(input), start)
	if err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	return r
}

func TestExecConcatenation(t *testing.T) {
	bp := compilePattern(t, `abc`, 0)
	r := execAt(t, bp, "abcdef", 0)
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Offsets[0] != 0 || r.Offsets[1] != 3 {
		t.Errorf("span = [%d,%d), want [0,3)", r.Offsets[0], r.Offsets[1])
	}
}

func TestExecConcatenationFailsWithoutMatch(t *testing.T) {
	bp := compilePattern(t, `abc`, 0)
	if r := execAt(t, bp, "xyzabc", 0); r != nil {
		t.Errorf("expected no match at position 0, got span [%d,%d)", r.Offsets[0], r.Offsets[1])
	}
}

func TestExecAlternation(t *testing.T) {
	bp := compilePattern(t, `cat|dog|bird`, 0)
	for _, in := range []string{"dog", "cat", "bird"} {
		r := execAt(t, bp, in, 0)
		if r == nil || r.Offsets[1] != len(in) {
			t.Errorf("%q: expected full match", in)
		}
	}
}

func TestExecGreedyQuantifier(t *testing.T) {
	bp := compilePattern(t, `a+`, 0)
	r := execAt(t, bp, "aaab", 0)
	if r == nil || r.Offsets[1] != 3 {
		t.Fatalf("expected greedy a+ to consume 3 a's, got %+v", r)
	}
}

func TestExecLazyQuantifier(t *testing.T) {
	bp := compilePattern(t, `a+?`, 0)
	r := execAt(t, bp, "aaab", 0)
	if r == nil || r.Offsets[1] != 1 {
		t.Fatalf("expected lazy a+? to consume 1 a, got %+v", r)
	}
}

func TestExecBoundedQuantifier(t *testing.T) {
	bp := compilePattern(t, `a{2,3}`, 0)
	r := execAt(t, bp, "aaaa", 0)
	if r == nil || r.Offsets[1] != 3 {
		t.Fatalf("expected a{2,3} to consume 3 a's, got %+v", r)
	}
}

func TestExecCapturingGroup(t *testing.T) {
	bp := compilePattern(t, `(foo)(bar)`, 0)
	r := execAt(t, bp, "foobar", 0)
	if r == nil {
		t.Fatal("expected a match")
	}
	if start, end, ok := r.Group(1); !ok || start != 0 || end != 3 {
		t.Errorf("group 1 = [%d,%d) ok=%v, want [0,3) true", start, end, ok)
	}
	if start, end, ok := r.Group(2); !ok || start != 3 || end != 6 {
		t.Errorf("group 2 = [%d,%d) ok=%v, want [3,6) true", start, end, ok)
	}
}

func TestExecOptionalGroupUnsetWhenSkipped(t *testing.T) {
	bp := compilePattern(t, `(a)?b`, 0)
	r := execAt(t, bp, "b", 0)
	if r == nil {
		t.Fatal("expected a match")
	}
	if _, _, ok := r.Group(1); ok {
		t.Error("expected group 1 to be unset")
	}
}

func TestExecBackReference(t *testing.T) {
	bp := compilePattern(t, `(a+)\1`, 0)
	r := execAt(t, bp, "aaaa", 0)
	if r == nil || r.Offsets[1] != 4 {
		t.Fatalf("expected (a+)\\1 to match \"aaaa\" fully, got %+v", r)
	}
}

func TestExecBackReferenceNoMatch(t *testing.T) {
	bp := compilePattern(t, `(abc)\1`, 0)
	if r := execAt(t, bp, "abcabd", 0); r != nil {
		t.Errorf("expected no match, got %+v", r)
	}
}

func TestExecPositiveLookahead(t *testing.T) {
	bp := compilePattern(t, `foo(?=bar)`, 0)
	r := execAt(t, bp, "foobar", 0)
	if r == nil || r.Offsets[1] != 3 {
		t.Fatalf("lookahead should not consume bar, got %+v", r)
	}
	if r := execAt(t, compilePattern(t, `foo(?=bar)`, 0), "foobaz", 0); r != nil {
		t.Errorf("expected no match for foo(?=bar) against foobaz, got %+v", r)
	}
}

func TestExecNegativeLookahead(t *testing.T) {
	bp := compilePattern(t, `foo(?!bar)`, 0)
	if r := execAt(t, bp, "foobar", 0); r != nil {
		t.Errorf("expected no match, got %+v", r)
	}
	r := execAt(t, bp, "foobaz", 0)
	if r == nil {
		t.Fatal("expected a match against foobaz")
	}
}

func TestExecPositiveLookbehind(t *testing.T) {
	bp := compilePattern(t, `(?<=foo)bar`, 0)
	r := execAt(t, bp, "bar", 0)
	if r != nil {
		t.Errorf("expected no match without preceding foo, got %+v", r)
	}
}

func TestExecNegativeLookbehind(t *testing.T) {
	bp := compilePattern(t, `(?<!foo)bar`, 0)
	r := execAt(t, bp, "bar", 0)
	if r == nil {
		t.Fatal("expected a match, nothing precedes bar here")
	}
}

func TestExecAnchorsMultiline(t *testing.T) {
	bp := compilePattern(t, `^b`, syntax.Multiline)
	r := execAt(t, bp, "a\nb", 2)
	if r == nil {
		t.Fatal("expected ^ to match right after a newline under /m")
	}
}

func TestExecWordBoundary(t *testing.T) {
	bp := compilePattern(t, `\bcat\b`, 0)
	r := execAt(t, bp, "cat", 0)
	if r == nil || r.Offsets[1] != 3 {
		t.Fatalf("expected \\bcat\\b to match standalone cat, got %+v", r)
	}
}

func TestExecIgnoreCase(t *testing.T) {
	bp := compilePattern(t, `abc`, syntax.IgnoreCase)
	r := execAt(t, bp, "ABC", 0)
	if r == nil || r.Offsets[1] != 3 {
		t.Fatalf("expected case-insensitive match, got %+v", r)
	}
}

func TestExecCharacterClass(t *testing.T) {
	bp := compilePattern(t, `[a-c]+`, 0)
	r := execAt(t, bp, "abcz", 0)
	if r == nil || r.Offsets[1] != 3 {
		t.Fatalf("expected [a-c]+ to consume \"abc\", got %+v", r)
	}
}
