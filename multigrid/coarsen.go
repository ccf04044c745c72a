// Package multigrid builds algebraic multigrid hierarchies on the
// face-based sparse systems of the solver package and drives V-cycles over
// them. Coarse levels are produced by aggregating cells along faces and
// projecting the operator in the Galerkin sense; the hierarchy is rebuilt
// for each solve.
package multigrid

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/fvkernel/solver"
)

// Coarsener maps the cells of a fine system onto coarse aggregates. The
// returned slice assigns a coarse cell id in [0,nCoarse) to every fine
// cell.
type Coarsener interface {
	Name() string
	Coarsen(sys *solver.System) (cToC []int, nCoarse int, err error)
}

// PairwiseAggregation merges cells two by two across their strongest face
// coupling: faces are visited by decreasing coefficient magnitude and a
// face merges its two cells when neither is aggregated yet. Cells left
// alone become singleton aggregates.
type PairwiseAggregation struct{}

func (PairwiseAggregation) Name() string { return "pairwise aggregation" }

func (PairwiseAggregation) Coarsen(sys *solver.System) ([]int, int, error) {
	n := sys.NCells
	cToC := make([]int, n)
	for c := range cToC {
		cToC[c] = -1
	}

	order := make([]int, sys.NFaces)
	for f := range order {
		order[f] = f
	}
	strength := func(f int) float64 {
		if sys.Symmetric {
			return math.Abs(sys.XA[f])
		}
		return math.Max(math.Abs(sys.XA[2*f]), math.Abs(sys.XA[2*f+1]))
	}
	sort.Slice(order, func(a, b int) bool {
		return strength(order[a]) > strength(order[b])
	})

	next := 0
	for _, f := range order {
		i, j := sys.FaceCell[2*f], sys.FaceCell[2*f+1]
		if cToC[i] < 0 && cToC[j] < 0 && i != j {
			cToC[i], cToC[j] = next, next
			next++
		}
	}
	for c := 0; c < n; c++ {
		if cToC[c] < 0 {
			cToC[c] = next
			next++
		}
	}
	return cToC, next, nil
}

// BlockAggregation groups BlockSize consecutive cells, relying on a
// locality-preserving cell numbering. It mainly serves structured meshes
// and tests.
type BlockAggregation struct {
	BlockSize int
}

func (b BlockAggregation) Name() string { return "block aggregation" }

func (b BlockAggregation) Coarsen(sys *solver.System) ([]int, int, error) {
	if b.BlockSize < 2 {
		return nil, 0, fmt.Errorf("block aggregation: block size %d below 2",
			b.BlockSize)
	}
	n := sys.NCells
	cToC := make([]int, n)
	for c := 0; c < n; c++ {
		cToC[c] = c / b.BlockSize
	}
	return cToC, (n + b.BlockSize - 1) / b.BlockSize, nil
}

// galerkin projects the fine operator onto the aggregates: coarse
// coefficients are the sums of the fine coefficients they cover, faces
// interior to an aggregate folding into the coarse diagonal.
func galerkin(fine *solver.System, cToC []int, nCoarse int) (*solver.System, error) {
	diag := make([]float64, nCoarse)
	for c := 0; c < fine.NCells; c++ {
		diag[cToC[c]] += fine.Diag[c]
	}

	type coarseFace struct{ i, j int }
	faceID := make(map[coarseFace]int)
	var faceCell []int
	var xa []float64

	stride := 1
	if !fine.Symmetric {
		stride = 2
	}

	for f := 0; f < fine.NFaces; f++ {
		ci := cToC[fine.FaceCell[2*f]]
		cj := cToC[fine.FaceCell[2*f+1]]
		if ci == cj {
			// interior to an aggregate
			if fine.Symmetric {
				diag[ci] += 2 * fine.XA[f]
			} else {
				diag[ci] += fine.XA[2*f] + fine.XA[2*f+1]
			}
			continue
		}

		key := coarseFace{ci, cj}
		flip := false
		if cj < ci {
			key = coarseFace{cj, ci}
			flip = true
		}
		cf, ok := faceID[key]
		if !ok {
			cf = len(faceCell) / 2
			faceID[key] = cf
			faceCell = append(faceCell, key.i, key.j)
			xa = append(xa, make([]float64, stride)...)
		}
		if fine.Symmetric {
			xa[cf] += fine.XA[f]
		} else if !flip {
			xa[2*cf] += fine.XA[2*f]
			xa[2*cf+1] += fine.XA[2*f+1]
		} else {
			xa[2*cf] += fine.XA[2*f+1]
			xa[2*cf+1] += fine.XA[2*f]
		}
	}

	return solver.NewSystem(nCoarse, len(faceCell)/2, fine.Symmetric,
		diag, xa, faceCell)
}
