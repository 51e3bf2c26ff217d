package cmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinArithmetic(t *testing.T) {
	a := Spin{1, 2, 3}
	b := Spin{4, -1, 2}

	assert.Equal(t, Spin{5, 1, 5}, a.Add(b))
	assert.Equal(t, Spin{-3, 3, 1}, a.Sub(b))
	assert.InDelta(t, 1*4+2*-1+3*2, a.Dot(b), 1e-12)
	assert.Equal(t, Spin{2, 4, 6}, a.Scale(2))
}

func TestSpinNorm(t *testing.T) {
	assert.InDelta(t, 5.0, Spin{3, 4, 0}.Norm(), 1e-12)
	assert.InDelta(t, 0.0, Spin{0, 0, 0}.Norm(), 1e-12)
}

func TestSignOrPositive(t *testing.T) {
	assert.Equal(t, 1.0, signOrPositive(0))
	assert.Equal(t, 1.0, signOrPositive(0.5))
	assert.Equal(t, -1.0, signOrPositive(-0.5))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, isFinite(0))
	assert.True(t, isFinite(-123.456))
	assert.False(t, isFinite(1.0/zero()))
	assert.False(t, isFinite(zero()/zero()))
}

func zero() float64 { return 0 }
