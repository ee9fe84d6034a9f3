//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// useWide gates the 32-bytes-per-iteration unrolled search. The unroll
// only pays for itself where the core can issue the four 8-byte loads of
// an iteration together; AVX2 support is the proxy for that class of
// hardware.
var useWide = cpu.X86.HasAVX2
