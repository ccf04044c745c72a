package xdef

import (
	"fmt"

	"github.com/notargets/fvkernel/quadrature"
)

// EvalScalarByValue broadcasts a constant scalar over the selected
// entities. With ids nil the first n slots are written; otherwise the
// destination slot is i (compact) or ids[i] (scattered).
func EvalScalarByValue(n int, ids []int, compact bool, v float64,
	eval []float64) {

	switch {
	case ids != nil && !compact:
		for i := 0; i < n; i++ {
			eval[ids[i]] = v
		}
	default:
		for i := 0; i < n; i++ {
			eval[i] = v
		}
	}
}

// EvalVectorByValue broadcasts a constant vector over the selected
// entities.
func EvalVectorByValue(n int, ids []int, compact bool, v [3]float64,
	eval []float64) {

	switch {
	case ids != nil && !compact:
		for i := 0; i < n; i++ {
			copy(eval[3*ids[i]:3*ids[i]+3], v[:])
		}
	default:
		for i := 0; i < n; i++ {
			copy(eval[3*i:3*i+3], v[:])
		}
	}
}

// EvalTensorByValue broadcasts a constant 3x3 tensor (row major in the
// output) over the selected entities.
func EvalTensorByValue(n int, ids []int, compact bool, v [3][3]float64,
	eval []float64) {

	put := func(at int) {
		for ki := 0; ki < 3; ki++ {
			for kj := 0; kj < 3; kj++ {
				eval[at+3*ki+kj] = v[ki][kj]
			}
		}
	}
	switch {
	case ids != nil && !compact:
		for i := 0; i < n; i++ {
			put(9 * ids[i])
		}
	default:
		for i := 0; i < n; i++ {
			put(9 * i)
		}
	}
}

// EvalAtCellsByAnalytic evaluates an analytic definition at cell centers.
// The addressing convention is delegated to the analytic function itself.
func EvalAtCellsByAnalytic(n int, ids []int, compact bool, q *Quantities,
	t float64, a *ByAnalytic, eval []float64) {

	a.Func(t, n, ids, q.CellCenters, compact, a.Input, eval)
}

// EvalAtVerticesByAnalytic evaluates an analytic definition at vertex
// coordinates.
func EvalAtVerticesByAnalytic(n int, ids []int, compact bool, q *Quantities,
	t float64, a *ByAnalytic, eval []float64) {

	a.Func(t, n, ids, q.VtxCoord, compact, a.Input, eval)
}

// EvalAtBFacesByAnalytic evaluates an analytic definition at boundary face
// centers.
func EvalAtBFacesByAnalytic(n int, ids []int, compact bool, q *Quantities,
	t float64, a *ByAnalytic, eval []float64) {

	a.Func(t, n, ids, q.FaceCenters, compact, a.Input, eval)
}

// EvalScalarAtCellsByArray evaluates a scalar at cell centers from a
// discrete array: a straight copy when the array lives on cells, a dual
// volume weighted reconstruction when it lives on vertices.
func EvalScalarAtCellsByArray(n int, ids []int, compact bool, cn *Connect,
	q *Quantities, a *ByArray, eval []float64) error {

	switch {
	case a.Loc.Has(PrimalCell):
		switch {
		case ids != nil && !compact:
			for i := 0; i < n; i++ {
				eval[ids[i]] = a.Vals[ids[i]]
			}
		case ids != nil:
			for i := 0; i < n; i++ {
				eval[i] = a.Vals[ids[i]]
			}
		default:
			copy(eval[:n], a.Vals[:n])
		}
		return nil

	case a.Loc.Has(PrimalVtx):
		switch {
		case ids != nil && !compact:
			for i := 0; i < n; i++ {
				eval[ids[i]] = RecoVtxAtCellCenter(ids[i], cn.C2V, q, a.Vals)
			}
		case ids != nil:
			for i := 0; i < n; i++ {
				eval[i] = RecoVtxAtCellCenter(ids[i], cn.C2V, q, a.Vals)
			}
		default:
			for c := 0; c < n; c++ {
				eval[c] = RecoVtxAtCellCenter(c, cn.C2V, q, a.Vals)
			}
		}
		return nil
	}

	return fmt.Errorf("%w: scalar at cells from location %#x", ErrSupport, a.Loc)
}

// EvalNdAtCellsByArray evaluates a multi-dimensional quantity at cell
// centers from a discrete array: a strided copy for cell arrays, a dual
// face flux reconstruction for arrays attached to dual faces.
func EvalNdAtCellsByArray(n int, ids []int, compact bool, cn *Connect,
	q *Quantities, a *ByArray, eval []float64) error {

	s := a.Stride
	switch {
	case a.Loc.Has(PrimalCell):
		switch {
		case ids != nil && !compact:
			for i := 0; i < n; i++ {
				c := ids[i]
				copy(eval[s*c:s*c+s], a.Vals[s*c:s*c+s])
			}
		case ids != nil:
			for i := 0; i < n; i++ {
				copy(eval[s*i:s*i+s], a.Vals[s*ids[i]:s*ids[i]+s])
			}
		default:
			copy(eval[:s*n], a.Vals[:s*n])
		}
		return nil

	case a.Loc.Has(DualFaceByCell):
		if s != 3 {
			return fmt.Errorf("%w: dual face reconstruction needs stride 3, got %d",
				ErrSupport, s)
		}
		at := func(c, dst int) {
			r := RecoDualFaceByCellAtCenter(c, cn.C2E, q, a.Vals)
			copy(eval[3*dst:3*dst+3], r[:])
		}
		switch {
		case ids != nil && !compact:
			for i := 0; i < n; i++ {
				at(ids[i], ids[i])
			}
		case ids != nil:
			for i := 0; i < n; i++ {
				at(ids[i], i)
			}
		default:
			for c := 0; c < n; c++ {
				at(c, c)
			}
		}
		return nil
	}

	return fmt.Errorf("%w: %d components at cells from location %#x",
		ErrSupport, s, a.Loc)
}

// EvalAtVerticesByArray evaluates a quantity at vertices from an array
// already attached to vertices.
func EvalAtVerticesByArray(n int, ids []int, compact bool, a *ByArray,
	eval []float64) error {

	if !a.Loc.Has(PrimalVtx) {
		return fmt.Errorf("%w: at vertices from location %#x", ErrSupport, a.Loc)
	}
	s := a.Stride
	switch {
	case ids != nil && !compact:
		for i := 0; i < n; i++ {
			v := ids[i]
			copy(eval[s*v:s*v+s], a.Vals[s*v:s*v+s])
		}
	case ids != nil:
		for i := 0; i < n; i++ {
			copy(eval[s*i:s*i+s], a.Vals[s*ids[i]:s*ids[i]+s])
		}
	default:
		copy(eval[:s*n], a.Vals[:s*n])
	}
	return nil
}

// Eval3AtAllVerticesByArray evaluates a vector at every vertex from a
// cell-based array, scattering each cell value to its vertices with dual
// volume weights. A partial selection is not supported.
func Eval3AtAllVerticesByArray(n int, ids []int, cn *Connect, q *Quantities,
	a *ByArray, eval []float64) error {

	if ids != nil {
		return fmt.Errorf("%w: vertex scatter requires the full vertex set",
			ErrSupport)
	}
	if !a.Loc.Has(PrimalCell) || a.Stride != 3 {
		return fmt.Errorf("%w: vertex scatter needs a cell vector array",
			ErrSupport)
	}

	dualVol := make([]float64, q.NVertices)
	for i := range eval[:3*q.NVertices] {
		eval[i] = 0
	}

	for c := 0; c < q.NCells; c++ {
		for j := cn.C2V.Idx[c]; j < cn.C2V.Idx[c+1]; j++ {
			v := cn.C2V.IDs[j]
			vol := q.DCellVol[j]
			dualVol[v] += vol
			for k := 0; k < 3; k++ {
				eval[3*v+k] += vol * a.Vals[3*c+k]
			}
		}
	}

	for v := 0; v < q.NVertices; v++ {
		inv := 1.0 / dualVol[v]
		for k := 0; k < 3; k++ {
			eval[3*v+k] *= inv
		}
	}
	return nil
}

// EvalCellByField evaluates a field at cell centers. A vertex-based field
// is reconstructed with dual volume weights; the field dimension must be 1
// in that case.
func EvalCellByField(n int, ids []int, compact bool, cn *Connect,
	q *Quantities, f *Field, eval []float64) error {

	switch f.LocationID {
	case LocationIDByName("cells"):
		arr := ByArray{Loc: PrimalCell, Stride: f.Dim, Vals: f.Vals}
		if f.Dim == 1 {
			return EvalScalarAtCellsByArray(n, ids, compact, cn, q, &arr, eval)
		}
		return EvalNdAtCellsByArray(n, ids, compact, cn, q, &arr, eval)

	case LocationIDByName("vertices"):
		if f.Dim != 1 {
			return fmt.Errorf("%w: vertex field %q must be scalar",
				ErrSupport, f.Name)
		}
		arr := ByArray{Loc: PrimalVtx, Stride: 1, Vals: f.Vals}
		return EvalScalarAtCellsByArray(n, ids, compact, cn, q, &arr, eval)
	}

	return fmt.Errorf("%w: field %q on location %d", ErrSupport,
		f.Name, f.LocationID)
}

// EvalAvgAtBFacesByAnalytic computes the average of an analytic definition
// over each selected boundary face: the integral is accumulated per face
// (triangle directly, other shapes as a fan of edge triangles around the
// face center) and divided by the face measure afterwards.
func EvalAvgAtBFacesByAnalytic(n int, ids []int, compact bool, cn *Connect,
	q *Quantities, t float64, dim int, a *ByAnalytic,
	qtype quadrature.Type, eval []float64) error {

	qfunc, err := quadrature.TriaIntegralFor(dim, qtype)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		f := i
		if ids != nil {
			f = ids[i]
		}
		dst := f
		if ids != nil && compact {
			dst = i
		}

		val := eval[dim*dst : dim*dst+dim]
		for k := range val {
			val[k] = 0
		}

		fq := q.Face(f)
		s, e := cn.F2E.Idx[f], cn.F2E.Idx[f+1]
		if e-s == 3 {
			v1, v2, v3 := GetNext3Vertices(cn.F2E.IDs[s:], cn.E2V)
			qfunc(t, q.Vtx(v1), q.Vtx(v2), q.Vtx(v3), fq.Meas,
				a.Func, a.Input, val)
		} else {
			for j := s; j < e; j++ {
				eid := cn.F2E.IDs[j]
				v1, v2 := cn.E2V[2*eid], cn.E2V[2*eid+1]
				x1, x2 := q.Vtx(v1), q.Vtx(v2)
				area := AreaFromQuant(q.Edge(eid), fq.Center)
				qfunc(t, x1, x2, fq.Center, area, a.Func, a.Input, val)
			}
		}

		inv := 1.0 / fq.Meas
		for k := range val {
			val[k] *= inv
		}
	}
	return nil
}
