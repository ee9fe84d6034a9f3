package syntax

import "testing"

func TestParseFlagsRoundTrip(t *testing.T) {
	// Every valid flags string serializes back with the same membership in
	// canonical d g i m s u v y order.
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"g", "g"},
		{"gi", "gi"},
		{"ig", "gi"},
		{"ymsg", "gmsy"},
		{"dgimsuy", "dgimsuy"},
		{"dgimsvy", "dgimsvy"},
		{"v", "v"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, ok := ParseFlags(tt.in)
			if !ok {
				t.Fatalf("ParseFlags(%q) rejected", tt.in)
			}
			if got := f.String(); got != tt.want {
				t.Errorf("ParseFlags(%q).String() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFlagsRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown letter", "x"},
		{"unknown among valid", "gix"},
		{"duplicate", "gg"},
		{"duplicate apart", "gig"},
		{"u with v", "uv"},
		{"v with u", "vgu"},
		{"uppercase", "G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseFlags(tt.in); ok {
				t.Errorf("ParseFlags(%q) accepted, want rejection", tt.in)
			}
		})
	}
}

func TestModeOf(t *testing.T) {
	tests := []struct {
		flags string
		want  Mode
	}{
		{"", Legacy},
		{"gim", Legacy},
		{"u", UnicodeMode},
		{"gu", UnicodeMode},
		{"v", UnicodeSetsMode},
	}
	for _, tt := range tests {
		f, ok := ParseFlags(tt.flags)
		if !ok {
			t.Fatalf("ParseFlags(%q) rejected", tt.flags)
		}
		if got := ModeOf(f); got != tt.want {
			t.Errorf("ModeOf(%q) = %v, want %v", tt.flags, got, tt.want)
		}
	}
}

func TestErrorCodeMessages(t *testing.T) {
	// Spot-check the message table: every code but NoError produces the
	// prefixed host-visible SyntaxError text.
	if got := ParenthesesUnmatched.Error(); got != "Invalid regular expression: unmatched parentheses" {
		t.Errorf("ParenthesesUnmatched.Error() = %q", got)
	}
	for code := NoError + 1; code <= InvalidClassSetCharacter; code++ {
		msg := code.Error()
		if len(msg) <= len("Invalid regular expression: ") {
			t.Errorf("ErrorCode %d has no message", code)
		}
	}
}
