// Package quadrature provides point/weight rules for triangles and
// tetrahedra and the accumulating integrators used by the extended
// definition evaluator: a rule evaluates a user function at its quadrature
// points, weights the results, and adds them into the output buffer, so a
// face or cell can be integrated as a sum over its sub-shapes without
// intermediate storage.
package quadrature

import (
	"errors"
	"fmt"

	"github.com/notargets/fvkernel/geom"
)

// AnalyticFunc is the callback contract for analytically defined fields.
// It evaluates the field at time t for n points. When ids is nil, the
// coordinates are xyz[3*i:3*i+3] for i in [0,n) and results are written in
// the same order. When ids is non-nil, point i lives at xyz[3*ids[i]:...]
// and the output lands at position ids[i] (compact=false) or i
// (compact=true). The function must tolerate n up to the full mesh size.
type AnalyticFunc func(t float64, n int, ids []int, xyz []float64,
	compact bool, input any, res []float64)

// Type selects the quadrature accuracy level.
type Type int

const (
	None       Type = iota // no quadrature, single evaluation
	Bary                   // one point at the barycenter
	BarySubdiv             // barycentric subdivision for non-triangular faces
	Higher                 // fixed higher-order rule
	Highest                // most accurate rule available
)

func (qt Type) String() string {
	switch qt {
	case None:
		return "none"
	case Bary:
		return "barycentric"
	case BarySubdiv:
		return "barycentric subdivision"
	case Higher:
		return "higher"
	case Highest:
		return "highest"
	}
	return fmt.Sprintf("quadrature.Type(%d)", int(qt))
}

// ErrType reports the selection of an unknown or unimplemented quadrature
// type. It is a configuration error: the caller's setup is wrong and the
// computation cannot proceed.
var ErrType = errors.New("invalid quadrature type")

// TriaIntegral accumulates the integral of f over the triangle (v1,v2,v3)
// of area area into results (length dim of the integrated quantity).
type TriaIntegral func(t float64, v1, v2, v3 [3]float64, area float64,
	f AnalyticFunc, input any, results []float64)

// TetIntegral accumulates the integral of f over the tetrahedron
// (v1,v2,v3,v4) of volume vol into results.
type TetIntegral func(t float64, v1, v2, v3, v4 [3]float64, vol float64,
	f AnalyticFunc, input any, results []float64)

// Tria1Pt computes the 1-point rule (barycenter, exact for P1): gpts
// receives the single point (len >= 3), and the returned weight equals the
// triangle area.
func Tria1Pt(v1, v2, v3 [3]float64, area float64, gpts []float64) (w float64) {
	for k := 0; k < 3; k++ {
		gpts[k] = geom.OneThird * (v1[k] + v2[k] + v3[k])
	}
	return area
}

// Tria3Pts computes the 3-point rule (edge midpoints, exact for P2): gpts
// receives the three points (len >= 9), and the returned weight (shared by
// the three points) equals area/3.
func Tria3Pts(v1, v2, v3 [3]float64, area float64, gpts []float64) (w float64) {
	for k := 0; k < 3; k++ {
		gpts[k] = 0.5 * (v1[k] + v2[k])
		gpts[3+k] = 0.5 * (v1[k] + v3[k])
		gpts[6+k] = 0.5 * (v2[k] + v3[k])
	}
	return area * geom.OneThird
}

// Tria4Pts computes the 4-point rule (exact for P3): gpts receives four
// points (len >= 12) and w the four weights (len >= 4). The barycenter
// carries a negative weight.
func Tria4Pts(v1, v2, v3 [3]float64, area float64, gpts, w []float64) {
	const (
		wb = -27.0 / 48.0
		wp = 25.0 / 48.0
		a  = 0.2
		b  = 0.6
	)
	for k := 0; k < 3; k++ {
		gpts[k] = geom.OneThird * (v1[k] + v2[k] + v3[k])
		gpts[3+k] = b*v1[k] + a*v2[k] + a*v3[k]
		gpts[6+k] = a*v1[k] + b*v2[k] + a*v3[k]
		gpts[9+k] = a*v1[k] + a*v2[k] + b*v3[k]
	}
	w[0] = wb * area
	w[1], w[2], w[3] = wp*area, wp*area, wp*area
}

// Tet1Pt computes the 1-point rule on a tetrahedron (barycenter, exact for
// P1); the returned weight equals the volume.
func Tet1Pt(v1, v2, v3, v4 [3]float64, vol float64, gpts []float64) (w float64) {
	for k := 0; k < 3; k++ {
		gpts[k] = 0.25 * (v1[k] + v2[k] + v3[k] + v4[k])
	}
	return vol
}

// Tet4Pts computes the 4-point rule (exact for P2): gpts receives four
// points (len >= 12), and the returned weight (shared) equals vol/4.
func Tet4Pts(v1, v2, v3, v4 [3]float64, vol float64, gpts []float64) (w float64) {
	const (
		a = 0.1381966011250105 // (5 - sqrt(5)) / 20
		b = 0.5854101966249685 // 1 - 3a
	)
	for k := 0; k < 3; k++ {
		gpts[k] = b*v1[k] + a*v2[k] + a*v3[k] + a*v4[k]
		gpts[3+k] = a*v1[k] + b*v2[k] + a*v3[k] + a*v4[k]
		gpts[6+k] = a*v1[k] + a*v2[k] + b*v3[k] + a*v4[k]
		gpts[9+k] = a*v1[k] + a*v2[k] + a*v3[k] + b*v4[k]
	}
	return 0.25 * vol
}

// Tet5Pts computes the 5-point rule (exact for P3): gpts receives five
// points (len >= 15) and w the five weights (len >= 5). The barycenter
// carries a negative weight.
func Tet5Pts(v1, v2, v3, v4 [3]float64, vol float64, gpts, w []float64) {
	const (
		wb = -0.8  // barycenter
		wp = 0.45  // 9/20 at the four off-center points
		a  = 1.0 / 6.0
		b  = 0.5
	)
	for k := 0; k < 3; k++ {
		gpts[k] = 0.25 * (v1[k] + v2[k] + v3[k] + v4[k])
		gpts[3+k] = b*v1[k] + a*v2[k] + a*v3[k] + a*v4[k]
		gpts[6+k] = a*v1[k] + b*v2[k] + a*v3[k] + a*v4[k]
		gpts[9+k] = a*v1[k] + a*v2[k] + b*v3[k] + a*v4[k]
		gpts[12+k] = a*v1[k] + a*v2[k] + a*v3[k] + b*v4[k]
	}
	w[0] = wb * vol
	w[1], w[2], w[3], w[4] = wp*vol, wp*vol, wp*vol, wp*vol
}
