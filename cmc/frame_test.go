package cmc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrame(t *testing.T) {
	t.Run("R is orthogonal", func(t *testing.T) {
		fr := BuildFrame(37, 112)
		prod := matMul(fr.R, fr.RT)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				assert.InDelta(t, want, prod[i][j], 1e-12)
			}
		}
	})

	t.Run("c is a unit vector parallel to d", func(t *testing.T) {
		fr := BuildFrame(45, 30)
		require.InDelta(t, 1.0, fr.C.Norm(), 1e-12)
		require.InDelta(t, 1.0, fr.D.Norm(), 1e-12)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, fr.D[i], fr.C[i], 1e-12)
		}
	})

	t.Run("zero angles align constraint with +z", func(t *testing.T) {
		fr := BuildFrame(0, 0)
		assert.InDelta(t, 0, fr.D[0], 1e-12)
		assert.InDelta(t, 0, fr.D[1], 1e-12)
		assert.InDelta(t, 1, fr.D[2], 1e-12)
	})

	t.Run("ToConstraintFrame and ToLabFrame are inverses", func(t *testing.T) {
		fr := BuildFrame(17, 283)
		v := Spin{0.3, -0.6, 0.74}
		got := fr.ToLabFrame(fr.ToConstraintFrame(v))
		for i := 0; i < 3; i++ {
			assert.InDelta(t, v[i], got[i], 1e-12)
		}
	})
}

func TestMatMulIdentity(t *testing.T) {
	id := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	m := [3][3]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	got := matMul(id, m)
	assert.Equal(t, m, got)
}

func TestTranspose(t *testing.T) {
	m := [3][3]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	want := [3][3]float64{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}}
	assert.Equal(t, want, transpose(m))
}

func TestMatVecMatchesExplicitProduct(t *testing.T) {
	m := [3][3]float64{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}
	v := Spin{1, 1, 1}
	got := matVec(m, v)
	assert.Equal(t, Spin{2, 3, 4}, got)
}

func TestBuildFrameHandlesWraparoundAngles(t *testing.T) {
	a := BuildFrame(30, 20)
	b := BuildFrame(30+360, 20-720)
	for i := 0; i < 3; i++ {
		assert.True(t, math.Abs(a.D[i]-b.D[i]) < 1e-9)
	}
}
