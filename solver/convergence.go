package solver

// Status reports how an iterative solve ended.
type Status int

const (
	Converged Status = iota
	MaxIterReached
	Breakdown
	Diverged
)

func (st Status) String() string {
	switch st {
	case Converged:
		return "converged"
	case MaxIterReached:
		return "max iterations reached"
	case Breakdown:
		return "breakdown"
	case Diverged:
		return "diverged"
	}
	return "unknown"
}

// Convergence gathers the stopping parameters of an iterative solve. The
// test is ||rhs - A*x|| / RNorm < Epsilon; with RNorm zero the norm of the
// right-hand side is used (or 1 when that vanishes too). Verbosity above
// zero prints the residual at each iteration.
type Convergence struct {
	Epsilon   float64
	MaxIter   int
	RNorm     float64
	Verbosity int
}

// rnorm resolves the residual normalization against a right-hand side
// norm.
func (cv *Convergence) rnorm(rhsNorm float64) float64 {
	if cv.RNorm > 0 {
		return cv.RNorm
	}
	if rhsNorm > 0 {
		return rhsNorm
	}
	return 1
}

// Result reports the outcome of an iterative solve. Residual is the final
// normalized residual; History records it per iteration, starting with the
// initial one.
type Result struct {
	Iterations int
	Residual   float64
	Status     Status
	History    []float64
}
