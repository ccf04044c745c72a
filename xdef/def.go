// Package xdef implements extended definitions: a description of how a
// field's value is determined (constant value, analytic function, discrete
// array, or stored field) together with the evaluators producing that value
// at cells, faces, vertices, or arbitrary points.
//
// Evaluators come in two families. List evaluators walk an explicit set of
// entity ids (nil meaning "all entities in order"), with a compact flag
// choosing between contiguous output (indexed by position in the list) and
// scattered output (indexed by the entity's own global id). Cellwise
// evaluators work on a transient CellMesh snapshot built for one cell.
package xdef

import (
	"errors"

	"github.com/notargets/fvkernel/quadrature"
)

// AnalyticFunc is the analytic callback contract shared with the
// quadrature integrators.
type AnalyticFunc = quadrature.AnalyticFunc

// Flag identifies the mesh support an array or definition is attached to.
type Flag uint16

const (
	PrimalCell Flag = 1 << iota
	PrimalVtx
	BoundaryFace
	DualFaceByCell
)

// Has reports whether every bit of ref is set in fl.
func (fl Flag) Has(ref Flag) bool { return fl&ref == ref }

// ErrSupport reports an unsupported support location for an array or field
// definition. It is a configuration error.
var ErrSupport = errors.New("invalid support for the input array")

// ByValue defines a quantity by a constant value. Vals holds dim entries
// (1, 3 or 9 for scalar, vector, tensor).
type ByValue struct {
	Vals []float64
}

// ByAnalytic defines a quantity by an analytic function of space and time.
// Input is handed back to the function on every call.
type ByAnalytic struct {
	Func  AnalyticFunc
	Input any
}

// ByArray defines a quantity by a discrete array attached to a mesh
// support. Vals is interlaced with the given stride. For DualFaceByCell
// support, Index is the cell-to-entry index (one scalar flux per dual
// face) and Stride refers to the reconstructed quantity.
type ByArray struct {
	Loc    Flag
	Stride int
	Vals   []float64
	Index  []int
}

// ByField defines a quantity by a live field reference; the source support
// is resolved through the field's mesh-location id.
type ByField struct {
	F *Field
}

// Representation is the closed set of ways a definition determines values.
type Representation interface {
	representation()
}

func (*ByValue) representation()    {}
func (*ByAnalytic) representation() {}
func (*ByArray) representation()    {}
func (*ByField) representation()    {}

// Def is an extended definition: a dimension (1, 3 or 9), a support
// location, a quadrature level for the integral-based evaluators, and one
// representation. The stride/dimension of the representation must match
// the consuming evaluator's expectation; a mismatch is a caller
// programming error, not a recoverable condition.
type Def struct {
	Dim     int
	Support Flag
	QType   quadrature.Type
	Rep     Representation
}

// ErrDim reports a definition dimension no evaluator handles.
var ErrDim = errors.New("invalid dimension for the definition")

// Eval evaluates the definition at n entities of its support location,
// dispatching on the representation. See the package comment for the
// ids/compact addressing convention.
func (d *Def) Eval(n int, ids []int, compact bool, cn *Connect,
	q *Quantities, t float64, eval []float64) error {

	switch rep := d.Rep.(type) {

	case *ByValue:
		switch d.Dim {
		case 1:
			EvalScalarByValue(n, ids, compact, rep.Vals[0], eval)
		case 3:
			EvalVectorByValue(n, ids, compact,
				[3]float64{rep.Vals[0], rep.Vals[1], rep.Vals[2]}, eval)
		case 9:
			var v [3][3]float64
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					v[i][j] = rep.Vals[3*i+j]
				}
			}
			EvalTensorByValue(n, ids, compact, v, eval)
		default:
			return ErrDim
		}
		return nil

	case *ByAnalytic:
		switch {
		case d.Support.Has(PrimalCell):
			EvalAtCellsByAnalytic(n, ids, compact, q, t, rep, eval)
		case d.Support.Has(PrimalVtx):
			EvalAtVerticesByAnalytic(n, ids, compact, q, t, rep, eval)
		case d.Support.Has(BoundaryFace):
			EvalAtBFacesByAnalytic(n, ids, compact, q, t, rep, eval)
		default:
			return ErrSupport
		}
		return nil

	case *ByArray:
		switch {
		case d.Support.Has(PrimalCell):
			if d.Dim == 1 {
				return EvalScalarAtCellsByArray(n, ids, compact, cn, q, rep, eval)
			}
			return EvalNdAtCellsByArray(n, ids, compact, cn, q, rep, eval)
		case d.Support.Has(PrimalVtx):
			return EvalAtVerticesByArray(n, ids, compact, rep, eval)
		default:
			return ErrSupport
		}

	case *ByField:
		return EvalCellByField(n, ids, compact, cn, q, rep.F, eval)
	}

	return errors.New("unknown representation for the definition")
}
