package pmath

import (
	"math/bits"
)

// CeilToPowerOf2 rounds n up to the next power of 2. Values below 2 return 1.
func CeilToPowerOf2(n int) int {
	if n < 2 {
		return 1
	}
	return 1 << bits.Len64(uint64(n-1))
}

func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// PowerOf2Index returns log2 of CeilToPowerOf2(n).
func PowerOf2Index(n int) int {
	return bits.TrailingZeros64(uint64(CeilToPowerOf2(n)))
}

// AlignUp rounds n up to a multiple of align, which must be a power of 2.
func AlignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}
