package multigrid

import (
	"github.com/notargets/fvkernel/solver"
)

// InvertOptions selects how a system is inverted: a plain iterative solve,
// or V-cycles on a freshly built hierarchy with the selected method as
// smoother. SmootherIters fixes the per-level budget spent on both legs of
// each cycle.
type InvertOptions struct {
	Kind        solver.Kind
	PolyDegree  int
	Periodicity solver.Periodicity
	Conv        solver.Convergence

	Multigrid     bool
	Builder       *Builder
	SmootherIters int
	CoarseMaxIter int
}

// Invert resolves sys*x = rhs according to the options, warm-starting from
// the caller's x. With multigrid enabled the hierarchy is built here and
// discarded afterwards, so the operator may change freely between calls.
func Invert(sys *solver.System, opts *InvertOptions, rhs, x []float64) (
	*solver.Result, error) {

	if !opts.Multigrid {
		return solver.Solve(sys, &solver.Options{
			Kind:        opts.Kind,
			PolyDegree:  opts.PolyDegree,
			Periodicity: opts.Periodicity,
			Conv:        opts.Conv,
		}, rhs, x)
	}

	// with canceled periodicity the whole hierarchy is coarsened from
	// the stripped operator, keeping the levels mutually consistent
	if opts.Periodicity == solver.PeriodicityCancel {
		sys = sys.StripPeriodic()
	}

	b := opts.Builder
	if b == nil {
		b = DefaultBuilder()
	}
	h, err := b.Build(sys)
	if err != nil {
		return nil, err
	}

	smootherIters := opts.SmootherIters
	if smootherIters < 1 {
		smootherIters = 2
	}
	coarseMaxIter := opts.CoarseMaxIter
	if coarseMaxIter < 1 {
		coarseMaxIter = 100
	}

	return VCycle(h, &CycleOptions{
		Smoother:      opts.Kind,
		SmootherIters: smootherIters,
		PolyDegree:    opts.PolyDegree,
		CoarseKind:    opts.Kind,
		CoarseMaxIter: coarseMaxIter,
		Conv:          opts.Conv,
	}, rhs, x)
}
