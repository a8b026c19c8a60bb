package pmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilToPowerOf2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 16: 16, 17: 32, 4095: 4096}
	for in, want := range cases {
		assert.Equal(t, want, CeilToPowerOf2(in), "n=%d", in)
	}
}

func TestPowerOf2Index(t *testing.T) {
	assert.Equal(t, 0, PowerOf2Index(1))
	assert.Equal(t, 4, PowerOf2Index(16))
	assert.Equal(t, 5, PowerOf2Index(17))
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uintptr(0), AlignUp(0, 8))
	assert.Equal(t, uintptr(8), AlignUp(1, 8))
	assert.Equal(t, uintptr(64), AlignUp(64, 64))
	assert.False(t, IsPowerOf2(12))
	assert.True(t, IsPowerOf2(1))
}
