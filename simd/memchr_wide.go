package simd

import (
	"encoding/binary"
	"math/bits"
)

// memchrWide is the unrolled variant of memchrGeneric: four independent
// 8-byte SWAR probes per iteration, so the loads can overlap in the
// pipeline. Only called for haystacks of at least wideThreshold bytes.
func memchrWide(haystack []byte, needle byte) int {
	const lo8 = 0x0101010101010101
	const hi8 = 0x8080808080808080
	needleMask := uint64(needle) * lo8

	idx := 0
	for idx+32 <= len(haystack) {
		c0 := binary.LittleEndian.Uint64(haystack[idx:])
		c1 := binary.LittleEndian.Uint64(haystack[idx+8:])
		c2 := binary.LittleEndian.Uint64(haystack[idx+16:])
		c3 := binary.LittleEndian.Uint64(haystack[idx+24:])

		x0 := c0 ^ needleMask
		x1 := c1 ^ needleMask
		x2 := c2 ^ needleMask
		x3 := c3 ^ needleMask

		z0 := (x0 - lo8) & ^x0 & hi8
		z1 := (x1 - lo8) & ^x1 & hi8
		z2 := (x2 - lo8) & ^x2 & hi8
		z3 := (x3 - lo8) & ^x3 & hi8

		if z0|z1|z2|z3 != 0 {
			if z0 != 0 {
				return idx + bits.TrailingZeros64(z0)/8
			}
			if z1 != 0 {
				return idx + 8 + bits.TrailingZeros64(z1)/8
			}
			if z2 != 0 {
				return idx + 16 + bits.TrailingZeros64(z2)/8
			}
			return idx + 24 + bits.TrailingZeros64(z3)/8
		}
		idx += 32
	}
	if idx < len(haystack) {
		if rest := memchrGeneric(haystack[idx:], needle); rest >= 0 {
			return idx + rest
		}
	}
	return -1
}
