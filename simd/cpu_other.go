//go:build !amd64

package simd

var useWide = false
