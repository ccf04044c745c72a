package xdef

import (
	"fmt"
)

// EvalCwScalarByValue evaluates a constant scalar for one cell.
func EvalCwScalarByValue(cm *CellMesh, v float64, eval []float64) {
	eval[0] = v
}

// EvalCwVectorByValue evaluates a constant vector for one cell.
func EvalCwVectorByValue(cm *CellMesh, v [3]float64, eval []float64) {
	copy(eval[:3], v[:])
}

// EvalCwTensorByValue evaluates a constant tensor for one cell, row major.
func EvalCwTensorByValue(cm *CellMesh, v [3][3]float64, eval []float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			eval[3*i+j] = v[i][j]
		}
	}
}

// EvalCwCellByAnalytic evaluates an analytic definition at the cell center.
func EvalCwCellByAnalytic(cm *CellMesh, t float64, a *ByAnalytic,
	eval []float64) {

	a.Func(t, 1, nil, cm.XC[:], true, a.Input, eval)
}

// EvalCwAtXYZByAnalytic evaluates an analytic definition at n arbitrary
// points inside the cell.
func EvalCwAtXYZByAnalytic(cm *CellMesh, n int, xyz []float64, t float64,
	a *ByAnalytic, eval []float64) {

	a.Func(t, n, nil, xyz, true, a.Input, eval)
}

// EvalCwVectorAtXYZByValue broadcasts a constant vector at n points.
func EvalCwVectorAtXYZByValue(cm *CellMesh, n int, xyz []float64,
	v [3]float64, eval []float64) {

	for i := 0; i < n; i++ {
		copy(eval[3*i:3*i+3], v[:])
	}
}

// EvalCwCellByArray evaluates a discrete array for one cell: a strided
// copy for a cell array, a dual-volume weighted vertex average for a
// vertex array (eval must be zeroed by the caller in that case), or a
// dual face flux reconstruction. cn carries the cell-to-entry indexes the
// array refers to.
func EvalCwCellByArray(cm *CellMesh, cn *Connect, q *Quantities, a *ByArray,
	eval []float64) error {

	s := a.Stride
	switch {
	case a.Loc.Has(PrimalCell):
		copy(eval[:s], a.Vals[s*cm.CID:s*cm.CID+s])
		return nil

	case a.Loc.Has(PrimalVtx):
		if !cm.HasFlags(CMVtxQuant) {
			return fmt.Errorf("%w: vertex quantities missing in the cell mesh",
				ErrSupport)
		}
		for v := 0; v < cm.NVc; v++ {
			w := cm.Wvc[v]
			vid := cm.VIDs[v]
			for k := 0; k < s; k++ {
				eval[k] += w * a.Vals[s*vid+k]
			}
		}
		return nil

	case a.Loc.Has(DualFaceByCell):
		if s != 3 {
			return fmt.Errorf("%w: dual face reconstruction needs stride 3, got %d",
				ErrSupport, s)
		}
		r := RecoDualFaceByCellAtCenter(cm.CID, cn.C2E, q, a.Vals)
		copy(eval[:3], r[:])
		return nil
	}

	return fmt.Errorf("%w: cellwise array on location %#x", ErrSupport, a.Loc)
}

// EvalCwCellByField evaluates a field for one cell. A vertex field uses
// the dual volume weights of the cell mesh.
func EvalCwCellByField(cm *CellMesh, f *Field, eval []float64) error {
	switch f.LocationID {
	case LocationCells:
		copy(eval[:f.Dim], f.Vals[f.Dim*cm.CID:f.Dim*cm.CID+f.Dim])
		return nil

	case LocationVertices:
		if f.Dim != 1 {
			return fmt.Errorf("%w: vertex field %q must be scalar",
				ErrSupport, f.Name)
		}
		if !cm.HasFlags(CMVtxQuant) {
			return fmt.Errorf("%w: vertex quantities missing in the cell mesh",
				ErrSupport)
		}
		reco := 0.0
		for v := 0; v < cm.NVc; v++ {
			reco += cm.Wvc[v] * f.Vals[cm.VIDs[v]]
		}
		eval[0] = reco
		return nil
	}

	return fmt.Errorf("%w: field %q on location %d", ErrSupport,
		f.Name, f.LocationID)
}

// EvalCw3AtXYZByArray evaluates a vector at n points of the cell from a
// discrete array. The value is constant within the cell (cell array or
// dual face reconstruction) and replicated at each point.
func EvalCw3AtXYZByArray(cm *CellMesh, cn *Connect, q *Quantities, n int,
	xyz []float64, a *ByArray, eval []float64) error {

	var cellVal [3]float64
	switch {
	case a.Loc.Has(PrimalCell):
		copy(cellVal[:], a.Vals[3*cm.CID:3*cm.CID+3])

	case a.Loc.Has(DualFaceByCell):
		cellVal = RecoDualFaceByCellAtCenter(cm.CID, cn.C2E, q, a.Vals)

	default:
		return fmt.Errorf("%w: pointwise vector from location %#x",
			ErrSupport, a.Loc)
	}

	for i := 0; i < n; i++ {
		copy(eval[3*i:3*i+3], cellVal[:])
	}
	return nil
}

// EvalCw3AtXYZByField evaluates a vector field at n points of the cell;
// only cell-based vector fields are supported.
func EvalCw3AtXYZByField(cm *CellMesh, n int, xyz []float64, f *Field,
	eval []float64) error {

	if f.LocationID != LocationCells || f.Dim != 3 {
		return fmt.Errorf("%w: pointwise vector from field %q", ErrSupport,
			f.Name)
	}
	for i := 0; i < n; i++ {
		copy(eval[3*i:3*i+3], f.Vals[3*cm.CID:3*cm.CID+3])
	}
	return nil
}
