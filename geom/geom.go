// Package geom provides the fixed-size geometric and small dense-matrix
// kernels used by the cellwise assembly and evaluation code: 3-vector
// operations, 3x3 and packed-symmetric matrix algebra, eigenvalues of
// symmetric 3x3 matrices, and the triangle/tetrahedron measure helpers.
//
// Symmetric 3x3 matrices are stored packed with 6 independent entries
// ordered (s11, s22, s33, s12, s23, s13). Every symmetric operation in this
// package follows that ordering.
package geom

import "math"

// Numerical constants shared by the geometric kernels.
const (
	OneThird  = 1.0 / 3.0
	OneSix    = 1.0 / 6.0
	OneTwelve = 1.0 / 12.0

	// Epzero is the threshold under which a real value is treated as zero.
	Epzero = 1e-12

	// InfiniteR and BigR bound representable magnitudes in diagnostics.
	InfiniteR = 1e30
	BigR      = 1e12

	Pi = math.Pi
)

// MachineEpsilon returns the smallest eps with 1+eps distinguishable from 1
// in float64 arithmetic.
func MachineEpsilon() float64 {
	eps := 1.0
	for 1.0+eps/2 > 1.0 {
		eps /= 2
	}
	return eps
}

// Sq returns the square of x.
func Sq(x float64) float64 { return x * x }

// Distance returns the euclidean distance between points a and b.
func Distance(a, b [3]float64) float64 {
	return math.Sqrt(SquareDistance(a, b))
}

// SquareDistance returns the squared euclidean distance between a and b.
func SquareDistance(a, b [3]float64) float64 {
	v := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Dot returns the dot product of u and v.
func Dot(u, v [3]float64) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// Norm returns the euclidean norm of v.
func Norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// SquareNorm returns the squared euclidean norm of v.
func SquareNorm(v [3]float64) float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Cross returns the cross product u x v.
func Cross(u, v [3]float64) [3]float64 {
	return [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// LengthUnitVector returns the length of the segment a->b and the unit
// vector directed from a to b.
func LengthUnitVector(a, b [3]float64) (length float64, unit [3]float64) {
	v := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	length = Norm(v)
	inv := 1.0 / length
	unit = [3]float64{v[0] * inv, v[1] * inv, v[2] * inv}
	return length, unit
}

// MatVec returns the product m * v.
func MatVec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// MatTVec returns the product of the transpose of m by v.
func MatTVec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[1][0]*v[1] + m[2][0]*v[2],
		m[0][1]*v[0] + m[1][1]*v[1] + m[2][1]*v[2],
		m[0][2]*v[0] + m[1][2]*v[1] + m[2][2]*v[2],
	}
}

// SymMatVec returns the product of a packed symmetric matrix by v.
func SymMatVec(s [6]float64, v [3]float64) [3]float64 {
	return [3]float64{
		s[0]*v[0] + s[3]*v[1] + s[5]*v[2],
		s[3]*v[0] + s[1]*v[1] + s[4]*v[2],
		s[5]*v[0] + s[4]*v[1] + s[2]*v[2],
	}
}

// Det33 returns the determinant of m.
func Det33(m [3][3]float64) float64 {
	com0 := m[1][1]*m[2][2] - m[2][1]*m[1][2]
	com1 := m[2][1]*m[0][2] - m[0][1]*m[2][2]
	com2 := m[0][1]*m[1][2] - m[1][1]*m[0][2]
	return m[0][0]*com0 + m[1][0]*com1 + m[2][0]*com2
}

// SymDet returns the determinant of a packed symmetric matrix.
func SymDet(s [6]float64) float64 {
	com0 := s[1]*s[2] - s[4]*s[4]
	com1 := s[4]*s[5] - s[3]*s[2]
	com2 := s[3]*s[4] - s[1]*s[5]
	return s[0]*com0 + s[3]*com1 + s[5]*com2
}

// Inv33Cramer returns the inverse of m computed by Cramer's rule.
//
// There is no singularity guard: a (near-)singular input yields Inf/NaN
// entries. Ensuring non-singularity is the caller's contract.
func Inv33Cramer(m [3][3]float64) [3][3]float64 {
	var out [3][3]float64

	out[0][0] = m[1][1]*m[2][2] - m[2][1]*m[1][2]
	out[0][1] = m[2][1]*m[0][2] - m[0][1]*m[2][2]
	out[0][2] = m[0][1]*m[1][2] - m[1][1]*m[0][2]

	out[1][0] = m[2][0]*m[1][2] - m[1][0]*m[2][2]
	out[1][1] = m[0][0]*m[2][2] - m[2][0]*m[0][2]
	out[1][2] = m[1][0]*m[0][2] - m[0][0]*m[1][2]

	out[2][0] = m[1][0]*m[2][1] - m[2][0]*m[1][1]
	out[2][1] = m[2][0]*m[0][1] - m[0][0]*m[2][1]
	out[2][2] = m[0][0]*m[1][1] - m[1][0]*m[0][1]

	invdet := 1.0 / (m[0][0]*out[0][0] + m[1][0]*out[0][1] + m[2][0]*out[0][2])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] *= invdet
		}
	}
	return out
}

// Inv33CramerInPlace inverts a in place using Cramer's rule. Same
// singularity contract as Inv33Cramer.
func Inv33CramerInPlace(a *[3][3]float64) {
	a00 := a[1][1]*a[2][2] - a[2][1]*a[1][2]
	a01 := a[2][1]*a[0][2] - a[0][1]*a[2][2]
	a02 := a[0][1]*a[1][2] - a[1][1]*a[0][2]
	a10 := a[2][0]*a[1][2] - a[1][0]*a[2][2]
	a11 := a[0][0]*a[2][2] - a[2][0]*a[0][2]
	a12 := a[1][0]*a[0][2] - a[0][0]*a[1][2]
	a20 := a[1][0]*a[2][1] - a[2][0]*a[1][1]
	a21 := a[2][0]*a[0][1] - a[0][0]*a[2][1]
	a22 := a[0][0]*a[1][1] - a[1][0]*a[0][1]

	detInv := 1.0 / (a[0][0]*a00 + a[1][0]*a01 + a[2][0]*a02)

	a[0][0], a[0][1], a[0][2] = a00*detInv, a01*detInv, a02*detInv
	a[1][0], a[1][1], a[1][2] = a10*detInv, a11*detInv, a12*detInv
	a[2][0], a[2][1], a[2][2] = a20*detInv, a21*detInv, a22*detInv
}

// Inv33SymCramerInPlace inverts a symmetric matrix held in full 3x3
// storage, in place, exploiting symmetry to skip the lower cofactors.
func Inv33SymCramerInPlace(a *[3][3]float64) {
	a00 := a[1][1]*a[2][2] - a[2][1]*a[1][2]
	a01 := a[2][1]*a[0][2] - a[0][1]*a[2][2]
	a02 := a[0][1]*a[1][2] - a[1][1]*a[0][2]
	a11 := a[0][0]*a[2][2] - a[2][0]*a[0][2]
	a12 := a[1][0]*a[0][2] - a[0][0]*a[1][2]
	a22 := a[0][0]*a[1][1] - a[1][0]*a[0][1]

	detInv := 1.0 / (a[0][0]*a00 + a[1][0]*a01 + a[2][0]*a02)

	a[0][0], a[0][1], a[0][2] = a00*detInv, a01*detInv, a02*detInv
	a[1][0], a[1][1], a[1][2] = a01*detInv, a11*detInv, a12*detInv
	a[2][0], a[2][1], a[2][2] = a02*detInv, a12*detInv, a22*detInv
}

// SymInvCramer returns the inverse of a packed symmetric matrix computed by
// Cramer's rule. Same singularity contract as Inv33Cramer.
func SymInvCramer(s [6]float64) [6]float64 {
	var out [6]float64

	out[0] = s[1]*s[2] - s[4]*s[4]
	out[1] = s[0]*s[2] - s[5]*s[5]
	out[2] = s[0]*s[1] - s[3]*s[3]
	out[3] = s[4]*s[5] - s[3]*s[2]
	out[4] = s[3]*s[5] - s[0]*s[4]
	out[5] = s[3]*s[4] - s[1]*s[5]

	detinv := 1.0 / (s[0]*out[0] + s[3]*out[3] + s[5]*out[5])
	for k := 0; k < 6; k++ {
		out[k] *= detinv
	}
	return out
}

// SymProduct returns the product s1 * s2 of two packed symmetric matrices.
// The result is stored packed; it is exactly symmetric only when s1 and s2
// commute, matching the upper-triangle convention of the packed form.
func SymProduct(s1, s2 [6]float64) [6]float64 {
	return [6]float64{
		s1[0]*s2[0] + s1[3]*s2[3] + s1[5]*s2[5], // s11
		s1[3]*s2[3] + s1[1]*s2[1] + s1[4]*s2[4], // s22
		s1[5]*s2[5] + s1[4]*s2[4] + s1[2]*s2[2], // s33
		s1[0]*s2[3] + s1[3]*s2[1] + s1[5]*s2[4], // s12
		s1[3]*s2[5] + s1[1]*s2[4] + s1[4]*s2[2], // s23
		s1[0]*s2[5] + s1[3]*s2[4] + s1[5]*s2[2], // s13
	}
}

// SymTripleProduct returns the full 3x3 product s1 * s2 * s3 of three
// packed symmetric matrices.
func SymTripleProduct(s1, s2, s3 [6]float64) [3][3]float64 {
	var m [3][3]float64

	m[0][0] = s1[0]*s2[0] + s1[3]*s2[3] + s1[5]*s2[5]
	m[1][1] = s1[3]*s2[3] + s1[1]*s2[1] + s1[4]*s2[4]
	m[2][2] = s1[5]*s2[5] + s1[4]*s2[4] + s1[2]*s2[2]
	m[0][1] = s1[0]*s2[3] + s1[3]*s2[1] + s1[5]*s2[4]
	m[1][0] = s2[0]*s1[3] + s2[3]*s1[1] + s2[5]*s1[4]
	m[1][2] = s1[3]*s2[5] + s1[1]*s2[4] + s1[4]*s2[2]
	m[2][1] = s2[3]*s1[5] + s2[1]*s1[4] + s2[4]*s1[2]
	m[0][2] = s1[0]*s2[5] + s1[3]*s2[4] + s1[5]*s2[2]
	m[2][0] = s2[0]*s1[5] + s2[3]*s1[4] + s2[5]*s1[2]

	var out [3][3]float64
	out[0][0] = m[0][0]*s3[0] + m[0][1]*s3[3] + m[0][2]*s3[5]
	out[1][1] = m[1][0]*s3[3] + m[1][1]*s3[1] + m[1][2]*s3[4]
	out[2][2] = m[2][0]*s3[5] + m[2][1]*s3[4] + m[2][2]*s3[2]
	out[0][1] = m[0][0]*s3[3] + m[0][1]*s3[1] + m[0][2]*s3[4]
	out[1][0] = s3[0]*m[1][0] + s3[3]*m[1][1] + s3[5]*m[1][2]
	out[1][2] = m[1][0]*s3[5] + m[1][1]*s3[4] + m[1][2]*s3[2]
	out[2][1] = s3[3]*m[2][0] + s3[1]*m[2][1] + s3[4]*m[2][2]
	out[0][2] = m[0][0]*s3[5] + m[0][1]*s3[4] + m[0][2]*s3[2]
	out[2][0] = s3[0]*m[2][0] + s3[3]*m[2][1] + s3[5]*m[2][2]
	return out
}

// ReduceSymProd33To66 accumulates into sout the 6x6 matrix A equivalent to
// the 3x3 matrix s such that A*R_6 = R*s^t + s*R for symmetric R.
func ReduceSymProd33To66(s [3][3]float64, sout *[6][6]float64) {
	tens2vect := [3][3]int{{0, 3, 5}, {3, 1, 4}, {5, 4, 2}}
	iindex := [6]int{0, 1, 2, 0, 1, 0}
	jindex := [6]int{0, 1, 2, 1, 2, 2}

	for i := 0; i < 6; i++ {
		ii := iindex[i]
		jj := jindex[i]
		for k := 0; k < 3; k++ {
			ik := tens2vect[k][ii]
			jk := tens2vect[k][jj]
			sout[ik][i] += s[k][jj]
			sout[jk][i] += s[k][ii]
		}
	}
}

// SurfTri returns the area of the triangle (xv, xe, xf).
func SurfTri(xv, xe, xf [3]float64) float64 {
	u := [3]float64{xe[0] - xv[0], xe[1] - xv[1], xe[2] - xv[2]}
	v := [3]float64{xf[0] - xv[0], xf[1] - xv[1], xf[2] - xv[2]}
	return 0.5 * Norm(Cross(u, v))
}

// VolTet returns the volume of the tetrahedron (xv, xe, xf, xc).
func VolTet(xv, xe, xf, xc [3]float64) float64 {
	u := [3]float64{xe[0] - xv[0], xe[1] - xv[1], xe[2] - xv[2]}
	v := [3]float64{xf[0] - xv[0], xf[1] - xv[1], xf[2] - xv[2]}
	w := [3]float64{xc[0] - xv[0], xc[1] - xv[1], xc[2] - xv[2]}
	vol := OneSix * Dot(Cross(u, v), w)
	if vol < 0 {
		vol = -vol
	}
	return vol
}
