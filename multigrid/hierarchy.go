package multigrid

import (
	"fmt"

	"github.com/notargets/fvkernel/solver"
)

// Builder assembles a grid hierarchy from a fine system. Coarsening stops
// when the coarse grid falls at or below MinCoarseCells, when MaxLevels is
// reached, or when a level shrinks by less than the minimum ratio (a stall
// guard against aggregation making no progress).
type Builder struct {
	Coarsener      Coarsener
	MaxLevels      int
	MinCoarseCells int
	Verbosity      int
}

// DefaultBuilder returns a Builder with pairwise aggregation and the usual
// stopping parameters.
func DefaultBuilder() *Builder {
	return &Builder{
		Coarsener:      PairwiseAggregation{},
		MaxLevels:      25,
		MinCoarseCells: 30,
	}
}

// minShrink is the minimal cells(fine)/cells(coarse) ratio below which
// coarsening is considered stalled.
const minShrink = 1.02

// Level is one grid of the hierarchy: its operator, the map onto the next
// coarser level (nil on the coarsest), and the solution/right-hand side
// work vectors. On the finest level the work vectors alias the caller's
// arrays so no copy separates the cycle from the outer iteration.
type Level struct {
	Sys  *solver.System
	CToC []int
	X    []float64
	RHS  []float64
}

// Hierarchy is the ordered list of levels, finest first.
type Hierarchy struct {
	Levels []*Level
}

// Depth returns the number of levels.
func (h *Hierarchy) Depth() int { return len(h.Levels) }

// Build creates the hierarchy for sys. The finest level wraps sys itself.
func (b *Builder) Build(sys *solver.System) (*Hierarchy, error) {
	if b.Coarsener == nil {
		return nil, fmt.Errorf("multigrid: no coarsener configured")
	}
	if b.MaxLevels < 2 {
		return nil, fmt.Errorf("multigrid: need at least 2 levels, got %d",
			b.MaxLevels)
	}

	h := &Hierarchy{Levels: []*Level{{Sys: sys}}}
	for h.Depth() < b.MaxLevels {
		fine := h.Levels[h.Depth()-1]
		if fine.Sys.NCells <= b.MinCoarseCells {
			break
		}

		cToC, nCoarse, err := b.Coarsener.Coarsen(fine.Sys)
		if err != nil {
			return nil, fmt.Errorf("multigrid: level %d: %w", h.Depth(), err)
		}
		if float64(fine.Sys.NCells)/float64(nCoarse) < minShrink {
			break
		}

		coarse, err := galerkin(fine.Sys, cToC, nCoarse)
		if err != nil {
			return nil, fmt.Errorf("multigrid: level %d: %w", h.Depth(), err)
		}
		fine.CToC = cToC
		h.Levels = append(h.Levels, &Level{
			Sys: coarse,
			X:   make([]float64, nCoarse),
			RHS: make([]float64, nCoarse),
		})

		if b.Verbosity > 0 {
			fmt.Printf("   multigrid: level %d: %d cells, %d faces (%s)\n",
				h.Depth()-1, nCoarse, coarse.NFaces, b.Coarsener.Name())
		}
	}
	return h, nil
}

// restrict sums the fine residual into the coarse right-hand side.
func restrict(fine *Level, coarse *Level, r []float64) {
	for c := range coarse.RHS {
		coarse.RHS[c] = 0
	}
	for i, ri := range r {
		coarse.RHS[fine.CToC[i]] += ri
	}
}

// prolong adds the coarse correction back onto the fine solution.
func prolong(fine *Level, coarse *Level, x []float64) {
	for i := range x {
		x[i] += coarse.X[fine.CToC[i]]
	}
}
