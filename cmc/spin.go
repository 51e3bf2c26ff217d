package cmc

import "math"

// Spin is a classical magnetic moment direction, a unit 3-vector.
type Spin [3]float64

// Norm returns the Euclidean length of s.
func (s Spin) Norm() float64 {
	return math.Sqrt(s[0]*s[0] + s[1]*s[1] + s[2]*s[2])
}

// Add returns the vector sum s + o.
func (s Spin) Add(o Spin) Spin {
	return Spin{s[0] + o[0], s[1] + o[1], s[2] + o[2]}
}

// Sub returns the vector difference s − o.
func (s Spin) Sub(o Spin) Spin {
	return Spin{s[0] - o[0], s[1] - o[1], s[2] - o[2]}
}

// Dot returns the scalar product s·o.
func (s Spin) Dot(o Spin) float64 {
	return s[0]*o[0] + s[1]*o[1] + s[2]*o[2]
}

// Scale returns s scaled by c.
func (s Spin) Scale(c float64) Spin {
	return Spin{s[0] * c, s[1] * c, s[2] * c}
}

// matVec applies a fixed 3x3 matrix to v, inlined to nine multiplies and
// six adds so no dynamic shape or heap allocation appears in the hot
// path.
func matVec(m [3][3]float64, v Spin) Spin {
	return Spin{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// signOrPositive returns the sign of x, treating sign(0) as +1.
func signOrPositive(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
