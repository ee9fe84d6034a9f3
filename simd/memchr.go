// Package simd provides accelerated byte-search primitives for the
// prefilter layer: single/dual/triple byte search (Memchr*), membership-
// table search (MemchrInTable), and substring search (Memmem). All
// implementations are SWAR (SIMD Within A Register) pure Go, processing
// 8 bytes per uint64 step; on amd64 with wide vector units available the
// single-byte search switches to a 32-bytes-per-iteration unrolled loop.
package simd

// wideThreshold is the minimum haystack length at which the unrolled
// wide loop beats the plain 8-byte SWAR loop's lower setup cost.
const wideThreshold = 64

// Memchr returns the index of the first occurrence of needle in
// haystack, or -1 if needle is not present.
func Memchr(haystack []byte, needle byte) int {
	if useWide && len(haystack) >= wideThreshold {
		return memchrWide(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first occurrence of either needle1 or
// needle2 in haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first occurrence of needle1, needle2,
// or needle3 in haystack, or -1 if none is present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3Generic(haystack, needle1, needle2, needle3)
}

// MemchrInTable returns the index of the first byte b of haystack for
// which table[b] is true, or -1 if no byte of haystack is in the table.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	for i, b := range haystack {
		if table[b] {
			return i
		}
	}
	return -1
}
