package simd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemmem(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{"empty needle", "hello", "", 0},
		{"empty haystack", "", "x", -1},
		{"needle longer than haystack", "ab", "abc", -1},
		{"exact match", "hello", "hello", 0},
		{"middle", "hello world", "world", 6},
		{"single byte needle", "hello", "l", 2},
		{"not present", "hello world", "xyz", -1},
		{"repeated prefix", "aaaaaabaaaa", "aab", 4},
		{"last byte collision", "abxaby", "aby", 3},
		{"long haystack", strings.Repeat("ab", 100) + "needle", "needle", 200},
		{"overlapping candidates", "ababab", "abab", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memmem([]byte(tt.haystack), []byte(tt.needle)); got != tt.want {
				t.Errorf("Memmem(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestMemmemMatchesBytesIndex(t *testing.T) {
	haystack := []byte("the quick brown fox jumps over the lazy dog, " +
		strings.Repeat("filler ", 40) + "the end")
	needles := []string{"the", "fox", "dog,", "filler", "the end", "missing", "g, f"}
	for _, n := range needles {
		want := bytes.Index(haystack, []byte(n))
		if got := Memmem(haystack, []byte(n)); got != want {
			t.Errorf("Memmem(..., %q) = %d, want %d", n, got, want)
		}
	}
}
