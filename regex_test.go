package yarrgo

import "testing"

func TestCompileAndTest(t *testing.T) {
	re, err := Compile(`\d+`, "")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if !re.Test("age: 42") {
		t.Error("expected Test to find digits")
	}
	if re.Test("no digits here") {
		t.Error("expected Test to find nothing")
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	if _, err := Compile(`(unclosed`, ""); err == nil {
		t.Error("expected an error for an unclosed group")
	}
}

func TestCompileInvalidFlags(t *testing.T) {
	if _, err := Compile(`a`, "q"); err == nil {
		t.Error("expected an error for an unknown flag letter")
	}
}

func TestMustCompilePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustCompile to panic on an invalid pattern")
		}
	}()
	MustCompile(`(unclosed`, "")
}

func TestExecCaptureGroups(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)\.(\w+)`, "")
	m := re.Exec("contact user@example.com today")
	if m == nil {
		t.Fatal("expected a match")
	}
	if g, ok := m.Group(1); !ok || g != "user" {
		t.Errorf("group 1 = %q, ok=%v, want \"user\"", g, ok)
	}
	if g, ok := m.Group(2); !ok || g != "example" {
		t.Errorf("group 2 = %q, ok=%v, want \"example\"", g, ok)
	}
	whole, _ := m.Group(0)
	if whole != "user@example.com" {
		t.Errorf("group 0 = %q, want \"user@example.com\"", whole)
	}
}

func TestExecNamedGroups(t *testing.T) {
	re := MustCompile(`(?<year>\d{4})-(?<month>\d{2})`, "")
	m := re.Exec("2026-07")
	if m == nil {
		t.Fatal("expected a match")
	}
	if y, ok := m.NamedGroup("year"); !ok || y != "2026" {
		t.Errorf("named group year = %q, ok=%v", y, ok)
	}
	if mo, ok := m.NamedGroup("month"); !ok || mo != "07" {
		t.Errorf("named group month = %q, ok=%v", mo, ok)
	}
}

func TestExecNoMatch(t *testing.T) {
	re := MustCompile(`xyz`, "")
	if m := re.Exec("abc"); m != nil {
		t.Errorf("expected no match, got %+v", m)
	}
}

func TestExecGlobalAdvancesLastIndex(t *testing.T) {
	re := MustCompile(`\d+`, "g")
	var found []string
	for {
		m := re.Exec("1 22 333")
		if m == nil {
			break
		}
		g, _ := m.Group(0)
		found = append(found, g)
	}
	if len(found) != 3 || found[0] != "1" || found[1] != "22" || found[2] != "333" {
		t.Errorf("got %v, want [1 22 333]", found)
	}
	if re.LastIndex != 0 {
		t.Errorf("LastIndex after exhausting matches = %d, want 0", re.LastIndex)
	}
}

func TestExecStickyFailsPastLastIndex(t *testing.T) {
	re := MustCompile(`\d+`, "y")
	re.LastIndex = 1
	if m := re.Exec("1 22"); m != nil {
		t.Errorf("sticky match should only try LastIndex exactly, got %+v", m)
	}
}

func TestMatchAll(t *testing.T) {
	re := MustCompile(`\w+`, "")
	matches := re.MatchAll("one two three")
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
}

func TestCachedCompileReturnsSameArtifact(t *testing.T) {
	a := MustCompile(`abc`, "i")
	b := MustCompile(`abc`, "i")
	if a.c != b.c {
		t.Error("expected the compiled-pattern cache to be reused for identical source/flags")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig should validate, got %v", err)
	}
}

func TestConfigValidateRejectsOutOfRange(t *testing.T) {
	c := Config{MaxCacheEntries: 0}
	if err := c.Validate(); err == nil {
		t.Error("expected an error for MaxCacheEntries = 0")
	}
}

func TestFlagAccessors(t *testing.T) {
	re := MustCompile(`a`, "dgimsy")
	if !re.HasIndices() || !re.Global() || !re.IgnoreCase() || !re.Multiline() || !re.DotAll() || !re.Sticky() {
		t.Error("expected every letter of dgimsy to be reported set")
	}
	if re.Unicode() || re.UnicodeSets() {
		t.Error("expected u and v to be reported unset")
	}
	re = MustCompile(`a`, "v")
	if !re.UnicodeSets() || re.Unicode() || re.HasIndices() {
		t.Error("expected only v to be reported set")
	}
}

func TestIndicesRequireHasIndicesFlag(t *testing.T) {
	re := MustCompile(`(?<word>\w+)`, "")
	m := re.Exec("hi")
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Indices() != nil {
		t.Error("Indices() without the d flag should be nil")
	}
	if m.IndicesGroups() != nil {
		t.Error("IndicesGroups() without the d flag should be nil")
	}
}

func TestIndices(t *testing.T) {
	re := MustCompile(`(?<word>\w+) (\d+)?`, "d")
	m := re.Exec("go 42")
	if m == nil {
		t.Fatal("expected a match")
	}
	idx := m.Indices()
	if len(idx) != 3 {
		t.Fatalf("len(Indices()) = %d, want 3", len(idx))
	}
	if idx[0][0] != 0 || idx[0][1] != 5 {
		t.Errorf("Indices()[0] = %v, want [0 5]", idx[0])
	}
	if idx[1][0] != 0 || idx[1][1] != 2 {
		t.Errorf("Indices()[1] = %v, want [0 2]", idx[1])
	}
	if idx[2][0] != 3 || idx[2][1] != 5 {
		t.Errorf("Indices()[2] = %v, want [3 5]", idx[2])
	}
	groups := m.IndicesGroups()
	if pair := groups["word"]; len(pair) != 2 || pair[0] != 0 || pair[1] != 2 {
		t.Errorf("IndicesGroups()[word] = %v, want [0 2]", pair)
	}
}

func TestIndicesUnsetCaptureIsNil(t *testing.T) {
	re := MustCompile(`(?<a>x)|(?<b>y)`, "d")
	m := re.Exec("y")
	if m == nil {
		t.Fatal("expected a match")
	}
	idx := m.Indices()
	if idx[1] != nil {
		t.Errorf("Indices()[1] = %v, want nil for the unmatched branch", idx[1])
	}
	if idx[2] == nil {
		t.Error("Indices()[2] should be set for the matched branch")
	}
	groups := m.IndicesGroups()
	if groups["a"] != nil {
		t.Errorf("IndicesGroups()[a] = %v, want nil", groups["a"])
	}
	if pair := groups["b"]; len(pair) != 2 || pair[0] != 0 || pair[1] != 1 {
		t.Errorf("IndicesGroups()[b] = %v, want [0 1]", pair)
	}
}
