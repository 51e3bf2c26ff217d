package cmc

import "math"

// Frame is the immutable rotation pair (R, Rᵀ) mapping the lab frame to
// the constraint frame whose ẑ′ is the constraint direction, plus the
// constraint row vector c. Kept as plain fixed-size arrays, never a
// resizable matrix structure, since every dimension is fixed at 3.
type Frame struct {
	R  [3][3]float64
	RT [3][3]float64
	C  Spin // constraint vector, third row of R
	D  Spin // constraint direction in lab frame
}

// BuildFrame computes R = R_y(φ)·R_z(θ), its transpose, and the constraint
// vector c = ẑ·R. Angles are in degrees.
func BuildFrame(phiDeg, thetaDeg float64) Frame {
	a := phiDeg * math.Pi / 180.0
	b := thetaDeg * math.Pi / 180.0

	sinA, cosA := math.Sin(a), math.Cos(a)
	sinB, cosB := math.Sin(b), math.Cos(b)

	ry := [3][3]float64{
		{cosA, 0, -sinA},
		{0, 1, 0},
		{sinA, 0, cosA},
	}
	rz := [3][3]float64{
		{cosB, sinB, 0},
		{-sinB, cosB, 0},
		{0, 0, 1},
	}

	r := matMul(ry, rz)
	rt := transpose(r)

	return Frame{
		R:  r,
		RT: rt,
		C:  Spin{r[2][0], r[2][1], r[2][2]},
		D:  Spin{sinA * cosB, sinA * sinB, cosA},
	}
}

// ToConstraintFrame maps a lab-frame vector into the constraint frame.
func (fr Frame) ToConstraintFrame(v Spin) Spin {
	return matVec(fr.R, v)
}

// ToLabFrame maps a constraint-frame vector back to the lab frame.
func (fr Frame) ToLabFrame(v Spin) Spin {
	return matVec(fr.RT, v)
}

func matMul(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return out
}

func transpose(m [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}
