package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntHelpers(t *testing.T) {
	assert.Equal(t, 2, IntMin(2, 5))
	assert.Equal(t, 5, IntMax(2, 5))
	assert.Equal(t, 7, IntAbs(-7))
	assert.Equal(t, -1, IntSign(-3))
	assert.Equal(t, 0, IntSign(0))
	assert.Equal(t, 10, IntClamp(42, 0, 10))
	assert.Equal(t, 0, IntClamp(-3, 0, 10))
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{0, 32, 0},
		{-1, 32, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FloorDiv(tt.a, tt.b), "FloorDiv(%d, %d)", tt.a, tt.b)
	}
}

func TestISqrt(t *testing.T) {
	assert.Equal(t, int64(0), ISqrt(0))
	assert.Equal(t, int64(1), ISqrt(3))
	assert.Equal(t, int64(5), ISqrt(25))
	assert.Equal(t, int64(65536), ISqrt(1<<32))
	assert.Equal(t, int64(92681), ISqrt(1<<33))
}
