package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5))
	assert.Equal(t, 0.0, Clamp(math.NaN()))
	assert.Equal(t, 0.0, Clamp(math.Inf(1)))
	assert.Equal(t, 12.5, Clamp(12.5))
}

func TestToleranceComparisons(t *testing.T) {
	assert.True(t, IsZero(0.009))
	assert.True(t, IsZero(-0.01))
	assert.False(t, IsZero(0.02))

	assert.False(t, Exceeds(100.01, 100))
	assert.True(t, Exceeds(100.02, 100))
	assert.False(t, Exceeds(99, 100))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 10.13, Round(10.125))
	assert.Equal(t, 0.3, Round(0.1+0.2))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{1234.5, "$1,234.50"},
		{999.999, "$1,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-42.1, "-$42.10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "Format(%v)", tt.in)
	}
}
