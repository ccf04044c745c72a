package multigrid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/fvkernel/solver"
)

// CycleOptions drives the V-cycle. The same smoother iteration budget is
// spent on the way down and on the way up of every level. The coarsest
// system is solved iteratively with its own bounded budget.
type CycleOptions struct {
	Smoother      solver.Kind
	SmootherIters int
	PolyDegree    int
	CoarseKind    solver.Kind
	CoarseMaxIter int
	Conv          solver.Convergence
}

// VCycle iterates V-cycles on the hierarchy until the finest residual
// meets the convergence test, using x as warm start and solution. One
// Result iteration is one full cycle.
func VCycle(h *Hierarchy, opts *CycleOptions, rhs, x []float64) (
	*solver.Result, error) {

	if opts.SmootherIters < 1 {
		return nil, fmt.Errorf("multigrid: smoother budget %d below 1",
			opts.SmootherIters)
	}
	// reject unknown solver kinds before entering the cycle
	for _, k := range []solver.Kind{opts.Smoother, opts.CoarseKind} {
		switch k {
		case solver.PCG, solver.JacobiKind, solver.BiCGStab:
		default:
			return nil, fmt.Errorf("%w: %d", solver.ErrKind, int(k))
		}
	}

	fine := h.Levels[0]
	cv := &opts.Conv
	rn := cv.RNorm
	if rn <= 0 {
		rn = floats.Norm(rhs, 2)
		if rn <= 0 {
			rn = 1
		}
	}

	// residual scratch per level, reused across cycles
	r := make([][]float64, h.Depth())
	for l, lev := range h.Levels {
		r[l] = make([]float64, lev.Sys.NCells)
	}

	res := fine.Sys.Residual(rhs, x, r[0]) / rn
	result := &solver.Result{Residual: res, History: []float64{res}}
	if cv.Verbosity > 0 {
		fmt.Printf("   multigrid: cycle %4d residual %12.5e\n", 0, res)
	}
	if res < cv.Epsilon {
		result.Status = solver.Converged
		return result, nil
	}

	for cycle := 1; cycle <= cv.MaxIter; cycle++ {
		if err := descend(h, opts, 0, rhs, x, r); err != nil {
			return nil, err
		}

		res = fine.Sys.Residual(rhs, x, r[0]) / rn
		result.Iterations = cycle
		result.Residual = res
		result.History = append(result.History, res)
		if cv.Verbosity > 0 {
			fmt.Printf("   multigrid: cycle %4d residual %12.5e\n", cycle, res)
		}
		if res < cv.Epsilon {
			result.Status = solver.Converged
			return result, nil
		}
	}
	result.Status = solver.MaxIterReached
	return result, nil
}

// descend runs one V-cycle leg rooted at level lev with the given
// right-hand side and iterate.
func descend(h *Hierarchy, opts *CycleOptions, lev int, rhs, x []float64,
	r [][]float64) error {

	level := h.Levels[lev]

	if lev == h.Depth()-1 {
		coarseOpts := &solver.Options{
			Kind:       opts.CoarseKind,
			PolyDegree: opts.PolyDegree,
			Conv: solver.Convergence{
				Epsilon: opts.Conv.Epsilon,
				MaxIter: opts.CoarseMaxIter,
			},
		}
		_, err := solver.Solve(level.Sys, coarseOpts, rhs, x)
		return err
	}

	smooth := &solver.Options{
		Kind:       opts.Smoother,
		PolyDegree: opts.PolyDegree,
		Conv:       solver.Convergence{MaxIter: opts.SmootherIters},
	}

	// descent smoothing, then project the residual down
	if _, err := solver.Solve(level.Sys, smooth, rhs, x); err != nil {
		return err
	}
	level.Sys.Residual(rhs, x, r[lev])

	coarse := h.Levels[lev+1]
	restrict(level, coarse, r[lev])
	for c := range coarse.X {
		coarse.X[c] = 0
	}
	if err := descend(h, opts, lev+1, coarse.RHS, coarse.X, r); err != nil {
		return err
	}
	prolong(level, coarse, x)

	// ascent smoothing with the same budget
	_, err := solver.Solve(level.Sys, smooth, rhs, x)
	return err
}
