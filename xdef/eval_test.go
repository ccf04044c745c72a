package xdef

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/fvkernel/quadrature"
)

// linX evaluates f(x,y,z) = x with the list addressing convention.
func linX(t float64, n int, ids []int, xyz []float64, compact bool,
	input any, res []float64) {

	for i := 0; i < n; i++ {
		p, at := i, i
		if ids != nil {
			p = ids[i]
			if !compact {
				at = ids[i]
			}
		}
		res[at] = xyz[3*p]
	}
}

func TestEvalScalarByValueAddressing(t *testing.T) {
	ids := []int{1, 3}

	// scattered output lands at the entity's own id and leaves the
	// other slots untouched
	eval := []float64{-1, -1, -1, -1, -1}
	EvalScalarByValue(2, ids, false, 7.5, eval)
	assert.Equal(t, []float64{-1, 7.5, -1, 7.5, -1}, eval)

	// compact output is contiguous
	eval = []float64{-1, -1, -1, -1, -1}
	EvalScalarByValue(2, ids, true, 7.5, eval)
	assert.Equal(t, []float64{7.5, 7.5, -1, -1, -1}, eval)

	// nil ids walks the first n entities
	eval = []float64{-1, -1, -1}
	EvalScalarByValue(3, nil, true, 2, eval)
	assert.Equal(t, []float64{2, 2, 2}, eval)
}

func TestEvalVectorTensorByValue(t *testing.T) {
	// sentinel-filled output: a sparse selection must leave the slots of
	// unselected entities untouched
	v := [3]float64{1, 2, 3}
	eval := []float64{-9, -9, -9, -9, -9, -9, -9, -9, -9}
	EvalVectorByValue(2, []int{0, 2}, false, v, eval)
	assert.Equal(t, []float64{1, 2, 3, -9, -9, -9, 1, 2, 3}, eval)

	var tens [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			tens[i][j] = float64(3*i + j)
		}
	}
	teval := make([]float64, 18)
	EvalTensorByValue(1, []int{1}, false, tens, teval)
	for k := 0; k < 9; k++ {
		assert.Equal(t, float64(k), teval[9+k])
		assert.Equal(t, 0.0, teval[k])
	}
}

func TestEvalAtCellsByAnalytic(t *testing.T) {
	q := &Quantities{
		NCells:      4,
		CellCenters: []float64{0, 0, 0, 1, 0, 0, 2, 0, 0, 3, 0, 0},
	}
	a := &ByAnalytic{Func: linX}

	eval := make([]float64, 4)
	EvalAtCellsByAnalytic(4, nil, true, q, 0, a, eval)
	assert.Equal(t, []float64{0, 1, 2, 3}, eval)

	// sparse selection writes at the cell ids
	eval = []float64{-1, -1, -1, -1}
	EvalAtCellsByAnalytic(2, []int{1, 3}, false, q, 0, a, eval)
	assert.Equal(t, []float64{-1, 1, -1, 3}, eval)
}

func TestEvalScalarAtCellsByArray(t *testing.T) {
	q, cn := UnitHexMesh()

	// cell array: plain copy
	arr := &ByArray{Loc: PrimalCell, Stride: 1, Vals: []float64{42}}
	eval := make([]float64, 1)
	err := EvalScalarAtCellsByArray(1, nil, true, cn, q, arr, eval)
	assert.NoError(t, err)
	assert.Equal(t, 42.0, eval[0])

	// vertex array: dual volume weighted reconstruction; a linear field
	// sampled at the cube corners reconstructs its cell center value
	vvals := make([]float64, 8)
	for v := 0; v < 8; v++ {
		vvals[v] = q.VtxCoord[3*v] // f = x
	}
	arr = &ByArray{Loc: PrimalVtx, Stride: 1, Vals: vvals}
	err = EvalScalarAtCellsByArray(1, nil, true, cn, q, arr, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, eval[0], 1e-14)

	// unsupported location is a configuration error
	arr = &ByArray{Loc: BoundaryFace, Stride: 1, Vals: vvals}
	err = EvalScalarAtCellsByArray(1, nil, true, cn, q, arr, eval)
	assert.True(t, errors.Is(err, ErrSupport))
}

func TestEvalNdAtCellsByArrayDualFace(t *testing.T) {
	q, cn := UnitHexMesh()

	// only the flux across the dual face of edge 0 (the x-directed edge
	// from the origin) is nonzero
	fluxes := make([]float64, 12)
	fluxes[0] = 3
	arr := &ByArray{Loc: DualFaceByCell, Stride: 3, Vals: fluxes,
		Index: cn.C2E.Idx}

	eval := make([]float64, 3)
	err := EvalNdAtCellsByArray(1, nil, true, cn, q, arr, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, eval[0], 1e-14)
	assert.InDelta(t, 0.0, eval[1], 1e-14)
	assert.InDelta(t, 0.0, eval[2], 1e-14)

	// a stride other than 3 cannot be reconstructed
	arr.Stride = 2
	err = EvalNdAtCellsByArray(1, nil, true, cn, q, arr, eval)
	assert.True(t, errors.Is(err, ErrSupport))
}

func TestEvalAtVerticesByArray(t *testing.T) {
	vals := []float64{10, 11, 12, 13}
	arr := &ByArray{Loc: PrimalVtx, Stride: 1, Vals: vals}

	eval := make([]float64, 4)
	err := EvalAtVerticesByArray(2, []int{1, 3}, true, arr, eval)
	assert.NoError(t, err)
	assert.Equal(t, []float64{11, 13, 0, 0}, eval)

	err = EvalAtVerticesByArray(2, []int{1, 3}, false, arr, eval)
	assert.NoError(t, err)
	assert.Equal(t, 11.0, eval[1])
	assert.Equal(t, 13.0, eval[3])

	arr.Loc = PrimalCell
	err = EvalAtVerticesByArray(2, []int{1, 3}, false, arr, eval)
	assert.True(t, errors.Is(err, ErrSupport))
}

func TestEval3AtAllVerticesByArray(t *testing.T) {
	q, cn := UnitHexMesh()
	arr := &ByArray{Loc: PrimalCell, Stride: 3, Vals: []float64{1, 2, 3}}

	// a single cell scatters its value to all its vertices
	eval := make([]float64, 24)
	err := Eval3AtAllVerticesByArray(8, nil, cn, q, arr, eval)
	assert.NoError(t, err)
	for v := 0; v < 8; v++ {
		assert.InDelta(t, 1.0, eval[3*v], 1e-14)
		assert.InDelta(t, 2.0, eval[3*v+1], 1e-14)
		assert.InDelta(t, 3.0, eval[3*v+2], 1e-14)
	}

	// partial selections are rejected
	err = Eval3AtAllVerticesByArray(2, []int{0, 1}, cn, q, arr, eval)
	assert.True(t, errors.Is(err, ErrSupport))
}

func TestEvalCellByField(t *testing.T) {
	q, cn := UnitHexMesh()

	f := &Field{Name: "pressure", Dim: 1, LocationID: LocationCells,
		Vals: []float64{3.5}}
	eval := make([]float64, 1)
	err := EvalCellByField(1, nil, true, cn, q, f, eval)
	assert.NoError(t, err)
	assert.Equal(t, 3.5, eval[0])

	// vertex field reconstructed at the cell center
	vvals := make([]float64, 8)
	for v := 0; v < 8; v++ {
		vvals[v] = q.VtxCoord[3*v+1] // f = y
	}
	f = &Field{Name: "phi", Dim: 1, LocationID: LocationVertices, Vals: vvals}
	err = EvalCellByField(1, nil, true, cn, q, f, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, eval[0], 1e-14)

	f = &Field{Name: "bad", Dim: 1, LocationID: 99}
	err = EvalCellByField(1, nil, true, cn, q, f, eval)
	assert.True(t, errors.Is(err, ErrSupport))
}

func TestEvalAvgAtBFacesByAnalytic(t *testing.T) {
	q, cn := UnitHexMesh()
	a := &ByAnalytic{Func: linX}

	// the average of f = x over each cube face is the x-coordinate of
	// the face center; the quad faces exercise the edge-fan path
	eval := make([]float64, 6)
	err := EvalAvgAtBFacesByAnalytic(6, nil, true, cn, q, 0, 1, a,
		quadrature.Bary, eval)
	assert.NoError(t, err)
	want := []float64{0.5, 0.5, 0, 1, 0.5, 0.5}
	for f := 0; f < 6; f++ {
		assert.InDelta(t, want[f], eval[f], 1e-14, "face %d", f)
	}

	// higher order rules agree on a linear integrand
	err = EvalAvgAtBFacesByAnalytic(6, nil, true, cn, q, 0, 1, a,
		quadrature.Highest, eval)
	assert.NoError(t, err)
	for f := 0; f < 6; f++ {
		assert.InDelta(t, want[f], eval[f], 1e-14, "face %d", f)
	}

	// sparse selection writes at the face id
	eval = []float64{-1, -1, -1, -1, -1, -1}
	err = EvalAvgAtBFacesByAnalytic(1, []int{3}, false, cn, q, 0, 1, a,
		quadrature.Bary, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, eval[3], 1e-14)
	assert.Equal(t, -1.0, eval[0])

	// unknown quadrature type propagates the configuration error
	err = EvalAvgAtBFacesByAnalytic(6, nil, true, cn, q, 0, 1, a,
		quadrature.Type(42), eval)
	assert.True(t, errors.Is(err, quadrature.ErrType))
}

func TestDefEvalDispatch(t *testing.T) {
	q, cn := UnitHexMesh()

	d := &Def{Dim: 1, Support: PrimalCell,
		Rep: &ByValue{Vals: []float64{4}}}
	eval := make([]float64, 1)
	assert.NoError(t, d.Eval(1, nil, true, cn, q, 0, eval))
	assert.Equal(t, 4.0, eval[0])

	d = &Def{Dim: 2, Support: PrimalCell, Rep: &ByValue{Vals: []float64{1, 2}}}
	assert.True(t, errors.Is(d.Eval(1, nil, true, cn, q, 0, eval), ErrDim))

	d = &Def{Dim: 1, Support: PrimalCell, Rep: &ByAnalytic{Func: linX}}
	assert.NoError(t, d.Eval(1, nil, true, cn, q, 0, eval))
	assert.InDelta(t, 0.5, eval[0], 1e-14)

	d = &Def{Dim: 1, Support: DualFaceByCell,
		Rep: &ByArray{Loc: DualFaceByCell, Stride: 1}}
	assert.True(t, errors.Is(d.Eval(1, nil, true, cn, q, 0, eval), ErrSupport))
}
