package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. It is equivalent to bytes.Index but
// drives the search with Memchr over a single distinguishing byte of the
// needle, so long non-matching stretches are crossed at SWAR speed.
//
// The distinguishing byte is the needle's last byte: word endings and
// terminators discriminate better than openings in both text and source
// code, and picking it is O(1) against building a frequency table.
func Memmem(haystack, needle []byte) int {
	needleLen := len(needle)
	haystackLen := len(haystack)

	// Empty needle matches at the start, mirroring bytes.Index.
	if needleLen == 0 {
		return 0
	}
	if haystackLen == 0 || needleLen > haystackLen {
		return -1
	}
	if needleLen == 1 {
		return Memchr(haystack, needle[0])
	}

	rareByte, rareIdx := needle[needleLen-1], needleLen-1

	searchStart := 0
	for {
		candidatePos := Memchr(haystack[searchStart:], rareByte)
		if candidatePos == -1 {
			return -1
		}
		candidatePos += searchStart

		needleStartPos := candidatePos - rareIdx
		if needleStartPos >= 0 && needleStartPos+needleLen <= haystackLen &&
			bytes.Equal(haystack[needleStartPos:needleStartPos+needleLen], needle) {
			return needleStartPos
		}

		searchStart = candidatePos + 1
		if searchStart >= haystackLen {
			return -1
		}
	}
}
