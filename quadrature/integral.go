package quadrature

import "fmt"

// The integrators below all add their weighted contributions into the
// results buffer, never overwriting it. Callers integrating over a
// subdivided face or cell zero the buffer once and accumulate across
// sub-shapes.

// Tria1PtScal accumulates the 1-point integral of a scalar f over a
// triangle into results[0].
func Tria1PtScal(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [3]float64
	var eval [1]float64
	w := Tria1Pt(v1, v2, v3, area, gpts[:])
	f(t, 1, nil, gpts[:], true, input, eval[:])
	results[0] += w * eval[0]
}

// Tria3PtsScal accumulates the 3-point integral of a scalar f over a
// triangle into results[0].
func Tria3PtsScal(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [9]float64
	var eval [3]float64
	w := Tria3Pts(v1, v2, v3, area, gpts[:])
	f(t, 3, nil, gpts[:], true, input, eval[:])
	results[0] += w * (eval[0] + eval[1] + eval[2])
}

// Tria4PtsScal accumulates the 4-point integral of a scalar f over a
// triangle into results[0].
func Tria4PtsScal(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [12]float64
	var w [4]float64
	var eval [4]float64
	Tria4Pts(v1, v2, v3, area, gpts[:], w[:])
	f(t, 4, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 4; p++ {
		results[0] += w[p] * eval[p]
	}
}

// Tria1PtVect accumulates the 1-point integral of a vector-valued f over a
// triangle into results[0:3].
func Tria1PtVect(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [3]float64
	var eval [3]float64
	w := Tria1Pt(v1, v2, v3, area, gpts[:])
	f(t, 1, nil, gpts[:], true, input, eval[:])
	for k := 0; k < 3; k++ {
		results[k] += w * eval[k]
	}
}

// Tria3PtsVect accumulates the 3-point integral of a vector-valued f over a
// triangle into results[0:3].
func Tria3PtsVect(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [9]float64
	var eval [9]float64
	w := Tria3Pts(v1, v2, v3, area, gpts[:])
	f(t, 3, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 3; p++ {
		for k := 0; k < 3; k++ {
			results[k] += w * eval[3*p+k]
		}
	}
}

// Tria4PtsVect accumulates the 4-point integral of a vector-valued f over a
// triangle into results[0:3].
func Tria4PtsVect(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [12]float64
	var w [4]float64
	var eval [12]float64
	Tria4Pts(v1, v2, v3, area, gpts[:], w[:])
	f(t, 4, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 4; p++ {
		for k := 0; k < 3; k++ {
			results[k] += w[p] * eval[3*p+k]
		}
	}
}

// Tria1PtTens accumulates the 1-point integral of a tensor-valued f over a
// triangle into results[0:9].
func Tria1PtTens(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [3]float64
	var eval [9]float64
	w := Tria1Pt(v1, v2, v3, area, gpts[:])
	f(t, 1, nil, gpts[:], true, input, eval[:])
	for k := 0; k < 9; k++ {
		results[k] += w * eval[k]
	}
}

// Tria3PtsTens accumulates the 3-point integral of a tensor-valued f over a
// triangle into results[0:9].
func Tria3PtsTens(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [9]float64
	var eval [27]float64
	w := Tria3Pts(v1, v2, v3, area, gpts[:])
	f(t, 3, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 3; p++ {
		for k := 0; k < 9; k++ {
			results[k] += w * eval[9*p+k]
		}
	}
}

// Tria4PtsTens accumulates the 4-point integral of a tensor-valued f over a
// triangle into results[0:9].
func Tria4PtsTens(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [12]float64
	var w [4]float64
	var eval [36]float64
	Tria4Pts(v1, v2, v3, area, gpts[:], w[:])
	f(t, 4, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 4; p++ {
		for k := 0; k < 9; k++ {
			results[k] += w[p] * eval[9*p+k]
		}
	}
}

// Tet1PtScal accumulates the 1-point integral of a scalar f over a
// tetrahedron into results[0].
func Tet1PtScal(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [3]float64
	var eval [1]float64
	w := Tet1Pt(v1, v2, v3, v4, vol, gpts[:])
	f(t, 1, nil, gpts[:], true, input, eval[:])
	results[0] += w * eval[0]
}

// Tet4PtsScal accumulates the 4-point integral of a scalar f over a
// tetrahedron into results[0].
func Tet4PtsScal(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [12]float64
	var eval [4]float64
	w := Tet4Pts(v1, v2, v3, v4, vol, gpts[:])
	f(t, 4, nil, gpts[:], true, input, eval[:])
	results[0] += w * (eval[0] + eval[1] + eval[2] + eval[3])
}

// Tet5PtsScal accumulates the 5-point integral of a scalar f over a
// tetrahedron into results[0].
func Tet5PtsScal(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [15]float64
	var w [5]float64
	var eval [5]float64
	Tet5Pts(v1, v2, v3, v4, vol, gpts[:], w[:])
	f(t, 5, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 5; p++ {
		results[0] += w[p] * eval[p]
	}
}

// Tet1PtVect accumulates the 1-point integral of a vector-valued f over a
// tetrahedron into results[0:3].
func Tet1PtVect(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [3]float64
	var eval [3]float64
	w := Tet1Pt(v1, v2, v3, v4, vol, gpts[:])
	f(t, 1, nil, gpts[:], true, input, eval[:])
	for k := 0; k < 3; k++ {
		results[k] += w * eval[k]
	}
}

// Tet4PtsVect accumulates the 4-point integral of a vector-valued f over a
// tetrahedron into results[0:3].
func Tet4PtsVect(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [12]float64
	var eval [12]float64
	w := Tet4Pts(v1, v2, v3, v4, vol, gpts[:])
	f(t, 4, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 4; p++ {
		for k := 0; k < 3; k++ {
			results[k] += w * eval[3*p+k]
		}
	}
}

// Tet5PtsVect accumulates the 5-point integral of a vector-valued f over a
// tetrahedron into results[0:3].
func Tet5PtsVect(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [15]float64
	var w [5]float64
	var eval [15]float64
	Tet5Pts(v1, v2, v3, v4, vol, gpts[:], w[:])
	f(t, 5, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 5; p++ {
		for k := 0; k < 3; k++ {
			results[k] += w[p] * eval[3*p+k]
		}
	}
}

// Tet1PtTens accumulates the 1-point integral of a tensor-valued f over a
// tetrahedron into results[0:9].
func Tet1PtTens(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [3]float64
	var eval [9]float64
	w := Tet1Pt(v1, v2, v3, v4, vol, gpts[:])
	f(t, 1, nil, gpts[:], true, input, eval[:])
	for k := 0; k < 9; k++ {
		results[k] += w * eval[k]
	}
}

// Tet4PtsTens accumulates the 4-point integral of a tensor-valued f over a
// tetrahedron into results[0:9].
func Tet4PtsTens(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [12]float64
	var eval [36]float64
	w := Tet4Pts(v1, v2, v3, v4, vol, gpts[:])
	f(t, 4, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 4; p++ {
		for k := 0; k < 9; k++ {
			results[k] += w * eval[9*p+k]
		}
	}
}

// Tet5PtsTens accumulates the 5-point integral of a tensor-valued f over a
// tetrahedron into results[0:9].
func Tet5PtsTens(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64) {

	var gpts [15]float64
	var w [5]float64
	var eval [45]float64
	Tet5Pts(v1, v2, v3, v4, vol, gpts[:], w[:])
	f(t, 5, nil, gpts[:], true, input, eval[:])
	for p := 0; p < 5; p++ {
		for k := 0; k < 9; k++ {
			results[k] += w[p] * eval[9*p+k]
		}
	}
}

// TriaIntegralFor selects the triangle integrator for a quantity of
// dimension dim (1, 3 or 9) at quadrature level qtype. An unknown type or
// dimension is a configuration error.
func TriaIntegralFor(dim int, qtype Type) (TriaIntegral, error) {
	switch dim {
	case 1:
		switch qtype {
		case Bary, BarySubdiv:
			return Tria1PtScal, nil
		case Higher:
			return Tria3PtsScal, nil
		case Highest:
			return Tria4PtsScal, nil
		}
	case 3:
		switch qtype {
		case Bary, BarySubdiv:
			return Tria1PtVect, nil
		case Higher:
			return Tria3PtsVect, nil
		case Highest:
			return Tria4PtsVect, nil
		}
	case 9:
		switch qtype {
		case Bary, BarySubdiv:
			return Tria1PtTens, nil
		case Higher:
			return Tria3PtsTens, nil
		case Highest:
			return Tria4PtsTens, nil
		}
	default:
		return nil, fmt.Errorf("%w: no triangle rule for dimension %d", ErrType, dim)
	}
	return nil, fmt.Errorf("%w: %s (dim %d)", ErrType, qtype, dim)
}

// TetIntegralFor selects the tetrahedron integrator for a quantity of
// dimension dim (1, 3 or 9) at quadrature level qtype.
func TetIntegralFor(dim int, qtype Type) (TetIntegral, error) {
	switch dim {
	case 1:
		switch qtype {
		case Bary, BarySubdiv:
			return Tet1PtScal, nil
		case Higher:
			return Tet4PtsScal, nil
		case Highest:
			return Tet5PtsScal, nil
		}
	case 3:
		switch qtype {
		case Bary, BarySubdiv:
			return Tet1PtVect, nil
		case Higher:
			return Tet4PtsVect, nil
		case Highest:
			return Tet5PtsVect, nil
		}
	case 9:
		switch qtype {
		case Bary, BarySubdiv:
			return Tet1PtTens, nil
		case Higher:
			return Tet4PtsTens, nil
		case Highest:
			return Tet5PtsTens, nil
		}
	default:
		return nil, fmt.Errorf("%w: no tetrahedron rule for dimension %d", ErrType, dim)
	}
	return nil, fmt.Errorf("%w: %s (dim %d)", ErrType, qtype, dim)
}
