package simd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   byte
		want     int
	}{
		{"empty haystack", "", 'a', -1},
		{"single byte hit", "a", 'a', 0},
		{"single byte miss", "b", 'a', -1},
		{"short haystack", "hello", 'l', 2},
		{"first byte", "xyz", 'x', 0},
		{"last byte", "xyz", 'z', 2},
		{"not found", "abcdefg", 'q', -1},
		{"spans chunk boundary", strings.Repeat("x", 9) + "y", 'y', 9},
		{"first of many", "aXbXcX", 'X', 1},
		{"long haystack hit", strings.Repeat(".", 100) + "!", '!', 100},
		{"long haystack miss", strings.Repeat(".", 100), '!', -1},
		{"hit inside wide chunk", strings.Repeat(".", 40) + "!" + strings.Repeat(".", 40), '!', 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memchr([]byte(tt.haystack), tt.needle); got != tt.want {
				t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestMemchrMatchesIndexByte(t *testing.T) {
	// Cross-check the SWAR paths against the stdlib across a length sweep
	// that covers the byte-loop, 8-byte, and 32-byte code paths.
	for n := 0; n <= 130; n++ {
		haystack := bytes.Repeat([]byte{'.'}, n)
		for pos := 0; pos < n; pos += 7 {
			haystack[pos] = 'x'
			want := bytes.IndexByte(haystack, 'x')
			if got := Memchr(haystack, 'x'); got != want {
				t.Fatalf("Memchr(len=%d, pos=%d) = %d, want %d", n, pos, got, want)
			}
			haystack[pos] = '.'
		}
	}
}

func TestMemchr2(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		n1, n2   byte
		want     int
	}{
		{"empty", "", 'a', 'b', -1},
		{"first needle wins", "xay", 'a', 'y', 1},
		{"second needle wins", "xby", 'a', 'b', 1},
		{"neither", "xyz", 'a', 'b', -1},
		{"long", strings.Repeat(".", 50) + "b", 'a', 'b', 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memchr2([]byte(tt.haystack), tt.n1, tt.n2); got != tt.want {
				t.Errorf("Memchr2(%q, %q, %q) = %d, want %d", tt.haystack, tt.n1, tt.n2, got, tt.want)
			}
		})
	}
}

func TestMemchr3(t *testing.T) {
	tests := []struct {
		name       string
		haystack   string
		n1, n2, n3 byte
		want       int
	}{
		{"empty", "", 'a', 'b', 'c', -1},
		{"third needle", "xyc", 'a', 'b', 'c', 2},
		{"earliest of three", "cba", 'a', 'b', 'c', 0},
		{"none", "xyz", 'a', 'b', 'c', -1},
		{"long", strings.Repeat(".", 50) + "c.", 'a', 'b', 'c', 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memchr3([]byte(tt.haystack), tt.n1, tt.n2, tt.n3); got != tt.want {
				t.Errorf("Memchr3(%q) = %d, want %d", tt.haystack, got, tt.want)
			}
		})
	}
}

func TestMemchrInTable(t *testing.T) {
	var digits [256]bool
	for b := '0'; b <= '9'; b++ {
		digits[b] = true
	}
	tests := []struct {
		name     string
		haystack string
		want     int
	}{
		{"empty", "", -1},
		{"leading digit", "7abc", 0},
		{"inner digit", "abc7def", 3},
		{"no digit", "abcdef", -1},
		{"long", strings.Repeat("x", 90) + "5", 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemchrInTable([]byte(tt.haystack), &digits); got != tt.want {
				t.Errorf("MemchrInTable(%q) = %d, want %d", tt.haystack, got, tt.want)
			}
		})
	}
}
