package xdef

import (
	"fmt"

	"github.com/notargets/fvkernel/geom"
	"github.com/notargets/fvkernel/quadrature"
)

// EvalCwVtxFluxByValue splits the flux of a constant vector across local
// face f between the face's vertices: each edge triangle (edge, face
// center) contributes half its flux to each of the edge's two vertices.
// Contributions are added into eval, one slot per local vertex; the
// caller zeroes the buffer.
func EvalCwVtxFluxByValue(cm *CellMesh, f int, flux [3]float64,
	eval []float64) {

	nflux := geom.Dot(flux, cm.Face[f].UnitV)
	s, e := cm.FaceEdges(f)
	for j := s; j < e; j++ {
		eid := cm.F2EIds[j]
		wflux := 0.5 * cm.Tef[j] * nflux
		eval[cm.E2V[2*eid]] += wflux
		eval[cm.E2V[2*eid+1]] += wflux
	}
}

// EvalCwVtxFluxByAnalytic is the analytic counterpart of
// EvalCwVtxFluxByValue. The quadrature type picks where the flux vector is
// sampled on each edge triangle; the Highest level has no vertex-splitting
// rule and is rejected.
func EvalCwVtxFluxByAnalytic(cm *CellMesh, f int, t float64, a *ByAnalytic,
	qtype quadrature.Type, eval []float64) error {

	fq := cm.Face[f]
	s, e := cm.FaceEdges(f)

	switch qtype {
	case quadrature.None, quadrature.Bary:
		var flux [3]float64
		a.Func(t, 1, nil, fq.Center[:], true, a.Input, flux[:])
		nflux := geom.Dot(flux, fq.UnitV)
		for j := s; j < e; j++ {
			eid := cm.F2EIds[j]
			wflux := 0.5 * cm.Tef[j] * nflux
			eval[cm.E2V[2*eid]] += wflux
			eval[cm.E2V[2*eid+1]] += wflux
		}
		return nil

	case quadrature.BarySubdiv:
		// one sample per edge triangle, at its barycenter
		var xg [3]float64
		var flux [3]float64
		for j := s; j < e; j++ {
			eid := cm.F2EIds[j]
			v1, v2 := cm.E2V[2*eid], cm.E2V[2*eid+1]
			x1, x2 := cm.VtxCoord(v1), cm.VtxCoord(v2)
			for k := 0; k < 3; k++ {
				xg[k] = geom.OneThird * (x1[k] + x2[k] + fq.Center[k])
			}
			a.Func(t, 1, nil, xg[:], true, a.Input, flux[:])
			wflux := 0.5 * cm.Tef[j] * geom.Dot(flux, fq.UnitV)
			eval[v1] += wflux
			eval[v2] += wflux
		}
		return nil

	case quadrature.Higher:
		// 3-point rule per edge triangle, flux split half-half
		var gpts [9]float64
		var flux [9]float64
		for j := s; j < e; j++ {
			eid := cm.F2EIds[j]
			v1, v2 := cm.E2V[2*eid], cm.E2V[2*eid+1]
			w := quadrature.Tria3Pts(cm.VtxCoord(v1), cm.VtxCoord(v2),
				fq.Center, cm.Tef[j], gpts[:])
			a.Func(t, 3, nil, gpts[:], true, a.Input, flux[:])
			integral := 0.0
			for p := 0; p < 3; p++ {
				integral += w * (flux[3*p]*fq.UnitV[0] +
					flux[3*p+1]*fq.UnitV[1] + flux[3*p+2]*fq.UnitV[2])
			}
			eval[v1] += 0.5 * integral
			eval[v2] += 0.5 * integral
		}
		return nil
	}

	return fmt.Errorf("%w: %s for a vertex flux", quadrature.ErrType, qtype)
}

// EvalCwFluxByValue computes the flux of a constant vector across local
// face f.
func EvalCwFluxByValue(cm *CellMesh, f int, flux [3]float64, eval []float64) {
	eval[0] = cm.Face[f].Meas * geom.Dot(flux, cm.Face[f].UnitV)
}

// EvalCwTensorFluxByValue computes the flux of a constant tensor across
// local face f: eval receives tensor times normal, scaled by the face
// area.
func EvalCwTensorFluxByValue(cm *CellMesh, f int, tens [3][3]float64,
	eval []float64) {

	fq := cm.Face[f]
	mn := geom.MatVec(tens, fq.UnitV)
	for k := 0; k < 3; k++ {
		eval[k] = fq.Meas * mn[k]
	}
}

// EvalCwFluxByAnalytic computes the flux of an analytic vector field
// across local face f at the requested quadrature level.
func EvalCwFluxByAnalytic(cm *CellMesh, f int, t float64, a *ByAnalytic,
	qtype quadrature.Type, eval []float64) error {

	fq := cm.Face[f]

	switch qtype {
	case quadrature.None, quadrature.Bary:
		var flux [3]float64
		a.Func(t, 1, nil, fq.Center[:], true, a.Input, flux[:])
		eval[0] = fq.Meas * geom.Dot(flux, fq.UnitV)
		return nil

	case quadrature.BarySubdiv:
		var xg [3]float64
		var flux [3]float64
		eval[0] = 0
		s, e := cm.FaceEdges(f)
		for j := s; j < e; j++ {
			eid := cm.F2EIds[j]
			x1 := cm.VtxCoord(cm.E2V[2*eid])
			x2 := cm.VtxCoord(cm.E2V[2*eid+1])
			for k := 0; k < 3; k++ {
				xg[k] = geom.OneThird * (x1[k] + x2[k] + fq.Center[k])
			}
			a.Func(t, 1, nil, xg[:], true, a.Input, flux[:])
			eval[0] += cm.Tef[j] * geom.Dot(flux, fq.UnitV)
		}
		return nil

	case quadrature.Higher, quadrature.Highest:
		eval[0] = 0
		normalFlux := func(tt float64, n int, ids []int, xyz []float64,
			compact bool, input any, res []float64) {
			buf := make([]float64, 3*n)
			a.Func(tt, n, ids, xyz, compact, input, buf)
			for i := 0; i < n; i++ {
				res[i] = buf[3*i]*fq.UnitV[0] + buf[3*i+1]*fq.UnitV[1] +
					buf[3*i+2]*fq.UnitV[2]
			}
		}
		qfunc := quadrature.TriaIntegral(quadrature.Tria3PtsScal)
		if qtype == quadrature.Highest {
			qfunc = quadrature.Tria4PtsScal
		}
		intOnFaceTriangles(cm, f, t, normalFlux, a.Input, qfunc, eval[:1])
		return nil
	}

	return fmt.Errorf("%w: %s for a face flux", quadrature.ErrType, qtype)
}

// EvalCwTensorFluxByAnalytic computes the flux of an analytic tensor field
// across local face f: the integral of tensor times normal over the face.
func EvalCwTensorFluxByAnalytic(cm *CellMesh, f int, t float64,
	a *ByAnalytic, qtype quadrature.Type, eval []float64) error {

	fq := cm.Face[f]

	switch qtype {
	case quadrature.None, quadrature.Bary:
		var tens [9]float64
		a.Func(t, 1, nil, fq.Center[:], true, a.Input, tens[:])
		for i := 0; i < 3; i++ {
			eval[i] = fq.Meas * (tens[3*i]*fq.UnitV[0] +
				tens[3*i+1]*fq.UnitV[1] + tens[3*i+2]*fq.UnitV[2])
		}
		return nil

	case quadrature.BarySubdiv, quadrature.Higher, quadrature.Highest:
		for k := 0; k < 3; k++ {
			eval[k] = 0
		}
		tensNormal := func(tt float64, n int, ids []int, xyz []float64,
			compact bool, input any, res []float64) {
			buf := make([]float64, 9*n)
			a.Func(tt, n, ids, xyz, compact, input, buf)
			for i := 0; i < n; i++ {
				for r := 0; r < 3; r++ {
					res[3*i+r] = buf[9*i+3*r]*fq.UnitV[0] +
						buf[9*i+3*r+1]*fq.UnitV[1] + buf[9*i+3*r+2]*fq.UnitV[2]
				}
			}
		}
		qfunc := quadrature.TriaIntegral(quadrature.Tria1PtVect)
		switch qtype {
		case quadrature.Higher:
			qfunc = quadrature.Tria3PtsVect
		case quadrature.Highest:
			qfunc = quadrature.Tria4PtsVect
		}
		intOnFaceTriangles(cm, f, t, tensNormal, a.Input, qfunc, eval[:3])
		return nil
	}

	return fmt.Errorf("%w: %s for a tensor flux", quadrature.ErrType, qtype)
}

// intOnFaceTriangles accumulates a triangle rule over local face f: a
// triangular face is integrated directly, other shapes as a fan of edge
// triangles around the face center weighted by Tef.
func intOnFaceTriangles(cm *CellMesh, f int, t float64, fn AnalyticFunc,
	input any, qfunc quadrature.TriaIntegral, eval []float64) {

	fq := cm.Face[f]
	s, e := cm.FaceEdges(f)
	if e-s == 3 {
		v1, v2, v3 := cm.FaceVertices(f)
		qfunc(t, cm.VtxCoord(v1), cm.VtxCoord(v2), cm.VtxCoord(v3),
			fq.Meas, fn, input, eval)
		return
	}
	for j := s; j < e; j++ {
		eid := cm.F2EIds[j]
		qfunc(t, cm.VtxCoord(cm.E2V[2*eid]), cm.VtxCoord(cm.E2V[2*eid+1]),
			fq.Center, cm.Tef[j], fn, input, eval)
	}
}
