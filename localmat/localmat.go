// Package localmat provides small dense matrices indexed by global entity
// ids, the building block of element-by-element assembly: a local system
// is built on the handful of cells or vertices an element couples, then
// scattered into the global operator.
package localmat

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// LocalMat is a square dense matrix whose rows and columns are labelled
// with global entity ids.
type LocalMat struct {
	IDs []int
	A   *mat.Dense
}

// New allocates a local matrix for size entities.
func New(size int) *LocalMat {
	return &LocalMat{
		IDs: make([]int, size),
		A:   mat.NewDense(size, size, nil),
	}
}

// Size returns the local dimension.
func (lm *LocalMat) Size() int { return len(lm.IDs) }

// Reset relabels the local matrix with the given ids and zeroes the
// coefficients, growing the storage if needed.
func (lm *LocalMat) Reset(ids []int) {
	if len(ids) != len(lm.IDs) {
		lm.IDs = make([]int, len(ids))
		lm.A = mat.NewDense(len(ids), len(ids), nil)
	} else {
		lm.A.Zero()
	}
	copy(lm.IDs, ids)
}

// Add accumulates v at local position (i, j).
func (lm *LocalMat) Add(i, j int, v float64) {
	lm.A.Set(i, j, lm.A.At(i, j)+v)
}

// MulVec computes y = A*x on the local numbering.
func (lm *LocalMat) MulVec(x, y []float64) {
	n := lm.Size()
	for i := 0; i < n; i++ {
		s := 0.0
		for j := 0; j < n; j++ {
			s += lm.A.At(i, j) * x[j]
		}
		y[i] = s
	}
}

// ScatterAdd accumulates the local coefficients into a global dense
// operator through the id labels.
func (lm *LocalMat) ScatterAdd(g *mat.Dense) {
	n := lm.Size()
	for i := 0; i < n; i++ {
		gi := lm.IDs[i]
		for j := 0; j < n; j++ {
			gj := lm.IDs[j]
			g.Set(gi, gj, g.At(gi, gj)+lm.A.At(i, j))
		}
	}
}

// String dumps the local system with its id labels, for debugging.
func (lm *LocalMat) String() string {
	var sb strings.Builder
	sb.WriteString("local matrix, ids:")
	for _, id := range lm.IDs {
		fmt.Fprintf(&sb, " %d", id)
	}
	sb.WriteByte('\n')
	n := lm.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fmt.Fprintf(&sb, " % .5e", lm.A.At(i, j))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
