package xdef

import (
	"github.com/notargets/fvkernel/geom"
	"github.com/notargets/fvkernel/quadrature"
)

// IntOnFace accumulates the integral of an analytic function over local
// face f into eval using the given triangle rule. A triangular face is a
// single triangle; other shapes are fanned around the face center.
func IntOnFace(cm *CellMesh, t float64, f int, fn AnalyticFunc, input any,
	qfunc quadrature.TriaIntegral, eval []float64) {

	intOnFaceTriangles(cm, f, t, fn, input, qfunc, eval)
}

// IntOnCell accumulates the integral of an analytic function over the
// whole cell into eval using the given tetrahedron rule. A tetrahedral
// cell is integrated directly; a general cell is subdivided into
// tetrahedra joining each face triangle to the cell center, with the
// pyramid height HFC fixing the sub-volumes.
func IntOnCell(cm *CellMesh, t float64, fn AnalyticFunc, input any,
	qfunc quadrature.TetIntegral, eval []float64) {

	if cm.Type == CellTetra {
		qfunc(t, cm.VtxCoord(0), cm.VtxCoord(1), cm.VtxCoord(2),
			cm.VtxCoord(3), cm.VolC, fn, input, eval)
		return
	}

	for f := 0; f < cm.NFc; f++ {
		hfCoef := geom.OneThird * cm.HFC[f]
		fq := cm.Face[f]
		s, e := cm.FaceEdges(f)
		if e-s == 3 {
			v1, v2, v3 := cm.FaceVertices(f)
			qfunc(t, cm.VtxCoord(v1), cm.VtxCoord(v2), cm.VtxCoord(v3),
				cm.XC, hfCoef*fq.Meas, fn, input, eval)
			continue
		}
		for j := s; j < e; j++ {
			eid := cm.F2EIds[j]
			qfunc(t, cm.VtxCoord(cm.E2V[2*eid]), cm.VtxCoord(cm.E2V[2*eid+1]),
				fq.Center, cm.XC, hfCoef*cm.Tef[j], fn, input, eval)
		}
	}
}

// IntOnCellFaces accumulates the integral of an analytic function over
// every face of the cell: eval holds dim values per local face.
func IntOnCellFaces(cm *CellMesh, t float64, fn AnalyticFunc, input any,
	dim int, qfunc quadrature.TriaIntegral, eval []float64) {

	for f := 0; f < cm.NFc; f++ {
		intOnFaceTriangles(cm, f, t, fn, input, qfunc, eval[dim*f:dim*f+dim])
	}
}

// EvalCwFaceAvgScalarByAnalytic computes the average of an analytic scalar
// over local face f.
func EvalCwFaceAvgScalarByAnalytic(cm *CellMesh, f int, t float64,
	a *ByAnalytic, qtype quadrature.Type, eval []float64) error {

	return cwFaceAvgByAnalytic(cm, f, t, a, qtype, 1, eval)
}

// EvalCwFaceAvgVectorByAnalytic computes the componentwise average of an
// analytic vector over local face f.
func EvalCwFaceAvgVectorByAnalytic(cm *CellMesh, f int, t float64,
	a *ByAnalytic, qtype quadrature.Type, eval []float64) error {

	return cwFaceAvgByAnalytic(cm, f, t, a, qtype, 3, eval)
}

// EvalCwFaceAvgTensorByAnalytic computes the componentwise average of an
// analytic tensor over local face f.
func EvalCwFaceAvgTensorByAnalytic(cm *CellMesh, f int, t float64,
	a *ByAnalytic, qtype quadrature.Type, eval []float64) error {

	return cwFaceAvgByAnalytic(cm, f, t, a, qtype, 9, eval)
}

func cwFaceAvgByAnalytic(cm *CellMesh, f int, t float64, a *ByAnalytic,
	qtype quadrature.Type, dim int, eval []float64) error {

	qfunc, err := quadrature.TriaIntegralFor(dim, qtype)
	if err != nil {
		return err
	}
	for k := 0; k < dim; k++ {
		eval[k] = 0
	}
	IntOnFace(cm, t, f, a.Func, a.Input, qfunc, eval[:dim])

	inv := 1.0 / cm.Face[f].Meas
	for k := 0; k < dim; k++ {
		eval[k] *= inv
	}
	return nil
}

// EvalCwAvgScalarByAnalytic computes the cell average of an analytic
// scalar.
func EvalCwAvgScalarByAnalytic(cm *CellMesh, t float64, a *ByAnalytic,
	qtype quadrature.Type, eval []float64) error {

	return cwAvgByAnalytic(cm, t, a, qtype, 1, eval)
}

// EvalCwAvgVectorByAnalytic computes the componentwise cell average of an
// analytic vector.
func EvalCwAvgVectorByAnalytic(cm *CellMesh, t float64, a *ByAnalytic,
	qtype quadrature.Type, eval []float64) error {

	return cwAvgByAnalytic(cm, t, a, qtype, 3, eval)
}

// EvalCwAvgTensorByAnalytic computes the componentwise cell average of an
// analytic tensor.
func EvalCwAvgTensorByAnalytic(cm *CellMesh, t float64, a *ByAnalytic,
	qtype quadrature.Type, eval []float64) error {

	return cwAvgByAnalytic(cm, t, a, qtype, 9, eval)
}

func cwAvgByAnalytic(cm *CellMesh, t float64, a *ByAnalytic,
	qtype quadrature.Type, dim int, eval []float64) error {

	qfunc, err := quadrature.TetIntegralFor(dim, qtype)
	if err != nil {
		return err
	}
	for k := 0; k < dim; k++ {
		eval[k] = 0
	}
	IntOnCell(cm, t, a.Func, a.Input, qfunc, eval[:dim])

	inv := 1.0 / cm.VolC
	for k := 0; k < dim; k++ {
		eval[k] *= inv
	}
	return nil
}

// EvalCwAvgVectorReductionByAnalytic computes the face averages of an
// analytic vector over every local face followed by its cell average:
// eval holds 3 values per local face, then 3 values for the cell, so its
// length is 3*(NFc+1).
func EvalCwAvgVectorReductionByAnalytic(cm *CellMesh, t float64,
	a *ByAnalytic, qtype quadrature.Type, eval []float64) error {

	qtri, err := quadrature.TriaIntegralFor(3, qtype)
	if err != nil {
		return err
	}
	qtet, err := quadrature.TetIntegralFor(3, qtype)
	if err != nil {
		return err
	}

	n := 3 * (cm.NFc + 1)
	for k := 0; k < n; k++ {
		eval[k] = 0
	}

	IntOnCellFaces(cm, t, a.Func, a.Input, 3, qtri, eval[:3*cm.NFc])
	for f := 0; f < cm.NFc; f++ {
		inv := 1.0 / cm.Face[f].Meas
		for k := 0; k < 3; k++ {
			eval[3*f+k] *= inv
		}
	}

	cell := eval[3*cm.NFc : 3*cm.NFc+3]
	IntOnCell(cm, t, a.Func, a.Input, qtet, cell)
	inv := 1.0 / cm.VolC
	for k := 0; k < 3; k++ {
		cell[k] *= inv
	}
	return nil
}
