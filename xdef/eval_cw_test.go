package xdef

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/fvkernel/quadrature"
)

// linVec evaluates f(x,y,z) = (x, y, z) at contiguous points.
func linVec(t float64, n int, ids []int, xyz []float64, compact bool,
	input any, res []float64) {

	copy(res[:3*n], xyz[:3*n])
}

// sqY evaluates f(x,y,z) = y^2 at contiguous points.
func sqY(t float64, n int, ids []int, xyz []float64, compact bool,
	input any, res []float64) {

	for i := 0; i < n; i++ {
		res[i] = xyz[3*i+1] * xyz[3*i+1]
	}
}

func TestEvalCwByValue(t *testing.T) {
	cm := UnitHexCellMesh()

	eval := make([]float64, 9)
	EvalCwScalarByValue(cm, 3.5, eval)
	assert.Equal(t, 3.5, eval[0])

	EvalCwVectorByValue(cm, [3]float64{1, 2, 3}, eval)
	assert.Equal(t, []float64{1, 2, 3}, eval[:3])

	var tens [3][3]float64
	tens[0][1] = 5
	tens[2][2] = -1
	EvalCwTensorByValue(cm, tens, eval)
	assert.Equal(t, 5.0, eval[1])
	assert.Equal(t, -1.0, eval[8])
}

func TestEvalCwCellByAnalytic(t *testing.T) {
	cm := UnitHexCellMesh()
	eval := make([]float64, 3)
	EvalCwCellByAnalytic(cm, 0, &ByAnalytic{Func: linVec}, eval)
	assert.InDelta(t, 0.5, eval[0], 1e-14)
	assert.InDelta(t, 0.5, eval[1], 1e-14)
	assert.InDelta(t, 0.5, eval[2], 1e-14)
}

func TestEvalCwCellByArray(t *testing.T) {
	cm := UnitHexCellMesh()
	q, cn := UnitHexMesh()

	// cell array copy
	arr := &ByArray{Loc: PrimalCell, Stride: 2, Vals: []float64{1.5, 2.5}}
	eval := make([]float64, 3)
	assert.NoError(t, EvalCwCellByArray(cm, cn, q, arr, eval))
	assert.Equal(t, []float64{1.5, 2.5}, eval[:2])

	// vertex array: weighted average with the dual volume fractions;
	// the buffer must be zeroed beforehand since contributions add up
	vvals := make([]float64, 8)
	for v := 0; v < 8; v++ {
		vvals[v] = cm.XV[3*v+2] // f = z
	}
	arr = &ByArray{Loc: PrimalVtx, Stride: 1, Vals: vvals}
	eval[0] = 0
	assert.NoError(t, EvalCwCellByArray(cm, cn, q, arr, eval))
	assert.InDelta(t, 0.5, eval[0], 1e-14)

	arr = &ByArray{Loc: BoundaryFace, Stride: 1, Vals: vvals}
	assert.True(t, errors.Is(EvalCwCellByArray(cm, cn, q, arr, eval),
		ErrSupport))
}

func TestEvalCwCellByField(t *testing.T) {
	cm := UnitHexCellMesh()

	f := &Field{Name: "u", Dim: 3, LocationID: LocationCells,
		Vals: []float64{1, 2, 3}}
	eval := make([]float64, 3)
	assert.NoError(t, EvalCwCellByField(cm, f, eval))
	assert.Equal(t, []float64{1, 2, 3}, eval)

	f = &Field{Name: "phi", Dim: 3, LocationID: LocationVertices}
	assert.True(t, errors.Is(EvalCwCellByField(cm, f, eval), ErrSupport))
}

func TestEvalCwAtXYZ(t *testing.T) {
	cm := UnitHexCellMesh()
	xyz := []float64{0.1, 0.2, 0.3, 0.9, 0.8, 0.7}

	eval := make([]float64, 6)
	EvalCwAtXYZByAnalytic(cm, 2, xyz, 0, &ByAnalytic{Func: linVec}, eval)
	assert.InDelta(t, 0.1, eval[0], 1e-15)
	assert.InDelta(t, 0.7, eval[5], 1e-15)

	EvalCwVectorAtXYZByValue(cm, 2, xyz, [3]float64{4, 5, 6}, eval)
	assert.Equal(t, []float64{4, 5, 6, 4, 5, 6}, eval)

	q, cn := UnitHexMesh()
	arr := &ByArray{Loc: PrimalCell, Stride: 3, Vals: []float64{7, 8, 9}}
	assert.NoError(t, EvalCw3AtXYZByArray(cm, cn, q, 2, xyz, arr, eval))
	assert.Equal(t, []float64{7, 8, 9, 7, 8, 9}, eval)

	f := &Field{Name: "u", Dim: 3, LocationID: LocationCells,
		Vals: []float64{7, 8, 9}}
	assert.NoError(t, EvalCw3AtXYZByField(cm, 2, xyz, f, eval))
	assert.Equal(t, []float64{7, 8, 9, 7, 8, 9}, eval)

	f = &Field{Name: "phi", Dim: 1, LocationID: LocationVertices}
	assert.True(t, errors.Is(EvalCw3AtXYZByField(cm, 2, xyz, f, eval),
		ErrSupport))
}

func TestEvalCwFluxByValue(t *testing.T) {
	cm := UnitHexCellMesh()

	// face 3 is x = 1 with outward normal +x
	eval := make([]float64, 3)
	EvalCwFluxByValue(cm, 3, [3]float64{2, 5, -1}, eval)
	assert.InDelta(t, 2.0, eval[0], 1e-14)

	var tens [3][3]float64
	tens[0][0], tens[1][0], tens[2][0] = 1, 2, 3
	EvalCwTensorFluxByValue(cm, 3, tens, eval)
	assert.InDelta(t, 1.0, eval[0], 1e-14)
	assert.InDelta(t, 2.0, eval[1], 1e-14)
	assert.InDelta(t, 3.0, eval[2], 1e-14)
}

func TestEvalCwVtxFluxDistribution(t *testing.T) {
	cm := UnitHexCellMesh()
	flux := [3]float64{3, 0, 0}

	// the per-vertex split conserves the total face flux
	eval := make([]float64, cm.NVc)
	EvalCwVtxFluxByValue(cm, 3, flux, eval)
	total := 0.0
	for _, v := range eval {
		total += v
	}
	assert.InDelta(t, 3.0, total, 1e-14)

	// only the vertices of face 3 (x = 1) receive a share
	for v := 0; v < cm.NVc; v++ {
		onFace := cm.XV[3*v] == 1
		if onFace {
			assert.InDelta(t, 0.75, eval[v], 1e-14, "vertex %d", v)
		} else {
			assert.Equal(t, 0.0, eval[v], "vertex %d", v)
		}
	}

	// a constant analytic flux reproduces the by-value split at every
	// quadrature level that supports the distribution
	constFlux := func(t float64, n int, ids []int, xyz []float64,
		compact bool, input any, res []float64) {
		for i := 0; i < n; i++ {
			res[3*i], res[3*i+1], res[3*i+2] = 3, 0, 0
		}
	}
	for _, qt := range []quadrature.Type{quadrature.Bary,
		quadrature.BarySubdiv, quadrature.Higher} {
		aeval := make([]float64, cm.NVc)
		err := EvalCwVtxFluxByAnalytic(cm, 3, 0, &ByAnalytic{Func: constFlux},
			qt, aeval)
		assert.NoError(t, err)
		for v := 0; v < cm.NVc; v++ {
			assert.InDelta(t, eval[v], aeval[v], 1e-13, "%s vertex %d", qt, v)
		}
	}

	err := EvalCwVtxFluxByAnalytic(cm, 3, 0, &ByAnalytic{Func: constFlux},
		quadrature.Highest, eval)
	assert.True(t, errors.Is(err, quadrature.ErrType))
}

func TestEvalCwFluxByAnalytic(t *testing.T) {
	tet := UnitTetCellMesh()
	a := &ByAnalytic{Func: linVec}

	// flux of (x,y,z) across the oblique face x+y+z = 1 equals the face
	// area divided by sqrt(3), which is exactly one half
	eval := make([]float64, 1)
	for _, qt := range []quadrature.Type{quadrature.Bary,
		quadrature.BarySubdiv, quadrature.Higher, quadrature.Highest} {
		err := EvalCwFluxByAnalytic(tet, 3, 0, a, qt, eval)
		assert.NoError(t, err)
		assert.InDelta(t, 0.5, eval[0], 1e-14, "%s", qt)
	}

	// quad face of the hex exercises the edge-fan subdivision
	hex := UnitHexCellMesh()
	err := EvalCwFluxByAnalytic(hex, 3, 0, a, quadrature.Higher, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, eval[0], 1e-14)
}

func TestEvalCwTensorFluxByAnalytic(t *testing.T) {
	hex := UnitHexCellMesh()

	// T(x,y,z) with first row (x,0,0): across face x = 1 the first
	// component is the face area, the others vanish
	tensField := func(t float64, n int, ids []int, xyz []float64,
		compact bool, input any, res []float64) {
		for i := 0; i < n; i++ {
			for k := 0; k < 9; k++ {
				res[9*i+k] = 0
			}
			res[9*i] = xyz[3*i]
		}
	}
	eval := make([]float64, 3)
	for _, qt := range []quadrature.Type{quadrature.Bary,
		quadrature.BarySubdiv, quadrature.Higher, quadrature.Highest} {
		err := EvalCwTensorFluxByAnalytic(hex, 3, 0,
			&ByAnalytic{Func: tensField}, qt, eval)
		assert.NoError(t, err)
		assert.InDelta(t, 1.0, eval[0], 1e-14, "%s", qt)
		assert.InDelta(t, 0.0, eval[1], 1e-14, "%s", qt)
		assert.InDelta(t, 0.0, eval[2], 1e-14, "%s", qt)
	}
}

func TestEvalCwAvgByAnalytic(t *testing.T) {
	tet := UnitTetCellMesh()
	hex := UnitHexCellMesh()

	// linear scalar: the cell average is the value at the centroid
	linx := func(t float64, n int, ids []int, xyz []float64,
		compact bool, input any, res []float64) {
		for i := 0; i < n; i++ {
			res[i] = xyz[3*i]
		}
	}
	eval := make([]float64, 12)
	err := EvalCwAvgScalarByAnalytic(tet, 0, &ByAnalytic{Func: linx},
		quadrature.Bary, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 0.25, eval[0], 1e-14)

	// the hex goes through the face subdivision path
	err = EvalCwAvgScalarByAnalytic(hex, 0, &ByAnalytic{Func: linx},
		quadrature.Bary, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, eval[0], 1e-14)

	// y^2 over the unit tet averages to 1/10, needing a P2-exact rule
	err = EvalCwAvgScalarByAnalytic(tet, 0, &ByAnalytic{Func: sqY},
		quadrature.Higher, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 0.1, eval[0], 1e-14)

	// face average of y^2 over the x = 1 hex face is 1/3
	err = EvalCwFaceAvgScalarByAnalytic(hex, 3, 0, &ByAnalytic{Func: sqY},
		quadrature.Higher, eval)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, eval[0], 1e-14)

	// vector averages componentwise
	err = EvalCwAvgVectorByAnalytic(tet, 0, &ByAnalytic{Func: linVec},
		quadrature.Bary, eval)
	assert.NoError(t, err)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, 0.25, eval[k], 1e-14)
	}

	// unknown quadrature type is a configuration error
	err = EvalCwAvgScalarByAnalytic(tet, 0, &ByAnalytic{Func: linx},
		quadrature.Type(42), eval)
	assert.True(t, errors.Is(err, quadrature.ErrType))
}

func TestEvalCwAvgVectorReduction(t *testing.T) {
	tet := UnitTetCellMesh()

	// linear vector field: the face averages are the face centers and
	// the cell average is the centroid
	eval := make([]float64, 3*(tet.NFc+1))
	err := EvalCwAvgVectorReductionByAnalytic(tet, 0,
		&ByAnalytic{Func: linVec}, quadrature.Bary, eval)
	assert.NoError(t, err)

	for f := 0; f < tet.NFc; f++ {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, tet.Face[f].Center[k], eval[3*f+k], 1e-14,
				"face %d comp %d", f, k)
		}
	}
	for k := 0; k < 3; k++ {
		assert.InDelta(t, 0.25, eval[3*tet.NFc+k], 1e-14)
	}
}

func TestRecoDualFaceConsistency(t *testing.T) {
	cm := UnitHexCellMesh()
	q, cn := UnitHexMesh()

	fluxes := []float64{1, -2, 0.5, 3, 0, 1.5, -1, 2, 0.25, -0.75, 1, 0}
	inCell := RecoDualFaceByCellInCell(cm, fluxes)
	atCenter := RecoDualFaceByCellAtCenter(0, cn.C2E, q, fluxes)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, atCenter[k], inCell[k], 1e-14)
	}
}
