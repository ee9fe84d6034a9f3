package yarrgo

import "testing"

func TestReplaceFirstOnly(t *testing.T) {
	re := MustCompile(`\d+`, "")
	got := re.Replace("a1 b2 c3", "X")
	if got != "aX b2 c3" {
		t.Errorf("Replace = %q, want \"aX b2 c3\"", got)
	}
}

func TestReplaceGlobal(t *testing.T) {
	re := MustCompile(`\d+`, "g")
	got := re.Replace("a1 b2 c3", "X")
	if got != "aX bX cX" {
		t.Errorf("Replace = %q, want \"aX bX cX\"", got)
	}
}

func TestReplaceGroupReferences(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)`, "")
	got := re.Replace("user@example", "$2:$1")
	if got != "example:user" {
		t.Errorf("Replace = %q, want \"example:user\"", got)
	}
}

func TestReplaceNamedGroupReference(t *testing.T) {
	re := MustCompile(`(?<first>\w+) (?<last>\w+)`, "")
	got := re.Replace("Ada Lovelace", "$<last>, $<first>")
	if got != "Lovelace, Ada" {
		t.Errorf("Replace = %q, want \"Lovelace, Ada\"", got)
	}
}

func TestReplaceDollarEscapes(t *testing.T) {
	re := MustCompile(`x`, "")
	got := re.Replace("x", "$$1")
	if got != "$1" {
		t.Errorf("Replace = %q, want \"$1\"", got)
	}
}

func TestReplaceFunc(t *testing.T) {
	re := MustCompile(`\d+`, "g")
	got := re.ReplaceFunc("1 2 3", func(m *MatchResult) string {
		g, _ := m.Group(0)
		return g + g
	})
	if got != "11 22 33" {
		t.Errorf("ReplaceFunc = %q, want \"11 22 33\"", got)
	}
}

func TestSplitBasic(t *testing.T) {
	re := MustCompile(`,\s*`, "")
	got := re.Split("a, b,c", -1)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Split = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Split[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitWithCapturingGroup(t *testing.T) {
	re := MustCompile(`(-)`, "")
	got := re.Split("a-b", -1)
	want := []string{"a", "-", "b"}
	if len(got) != len(want) {
		t.Fatalf("Split = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Split[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitLimit(t *testing.T) {
	re := MustCompile(`,`, "")
	got := re.Split("a,b,c,d", 2)
	if len(got) != 2 {
		t.Fatalf("Split with limit 2 = %v, want 2 elements", got)
	}
}
