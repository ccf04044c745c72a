package geom

import "math"

// EigenVals33 computes all three eigenvalues of a symmetric 3x3 matrix
// using the closed-form trigonometric method (O.K. Smith, CACM 1961).
// Eigenvalues are returned in ascending order.
func EigenVals33(m [3][3]float64) [3]float64 {
	p1 := Sq(m[0][1]) + Sq(m[0][2]) + Sq(m[1][2])

	if p1 <= 0 {
		// m is diagonal: sort its entries
		e := [3]float64{m[0][0], m[1][1], m[2][2]}
		if e[0] > e[1] {
			e[0], e[1] = e[1], e[0]
		}
		if e[1] > e[2] {
			e[1], e[2] = e[2], e[1]
		}
		if e[0] > e[1] {
			e[0], e[1] = e[1], e[0]
		}
		return e
	}

	q := OneThird * (m[0][0] + m[1][1] + m[2][2])
	p2 := Sq(m[0][0]-q) + Sq(m[1][1]-q) + Sq(m[2][2]-q) + 2*p1
	p := math.Sqrt(p2 * OneSix)
	pinv := 1.0 / p

	var b [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b[i][j] = pinv * m[i][j]
		}
		b[i][i] = pinv * (m[i][i] - q)
	}

	// Clamp to keep acos well defined for (nearly) isotropic input
	r := 0.5 * Det33(b)
	if r < -1 {
		r = -1
	} else if r > 1 {
		r = 1
	}

	phi := OneThird * math.Acos(r)
	e3 := q + 2*p*math.Cos(phi)
	e1 := q + 2*p*math.Cos(phi+2*math.Pi*OneThird)
	e2 := 3*q - e1 - e3

	return [3]float64{e1, e2, e3}
}

// Eigen33 computes the max/min eigenvalue ratio and the maximum eigenvalue
// of a symmetric 3x3 matrix, used for anisotropy detection.
func Eigen33(m [3][3]float64) (ratio, max float64) {
	e := EigenVals33(m)
	max = e[2]
	min := e[0]
	if math.Abs(min) < Epzero {
		if min < 0 {
			min = -Epzero
		} else {
			min = Epzero
		}
	}
	ratio = max / min
	return ratio, max
}
