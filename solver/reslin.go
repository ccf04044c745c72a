package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Kind selects the iterative method.
type Kind int

const (
	PCG Kind = iota
	JacobiKind
	BiCGStab
)

func (k Kind) String() string {
	switch k {
	case PCG:
		return "conjugate gradient"
	case JacobiKind:
		return "jacobi"
	case BiCGStab:
		return "bi-cgstab"
	}
	return fmt.Sprintf("solver.Kind(%d)", int(k))
}

// ErrKind reports the selection of an unknown solver kind. It is a
// configuration error.
var ErrKind = errors.New("invalid solver kind")

// Periodicity selects how solution increments behave across the periodic
// face couples of the system: propagated like any other coupling, or
// canceled, which removes those couplings from the operator for the
// duration of the solve.
type Periodicity int

const (
	PeriodicityPropagate Periodicity = iota
	PeriodicityCancel
)

// Options bundles the method selection with its parameters. PolyDegree
// picks the degree of the Neumann polynomial preconditioner built on the
// diagonal; degree zero is plain diagonal scaling.
type Options struct {
	Kind        Kind
	PolyDegree  int
	Periodicity Periodicity
	Conv        Convergence
}

// ErrDiverged reports an iteration whose residual exploded instead of
// shrinking. Unlike a stagnation breakdown the iterate is unusable, so the
// condition surfaces as an error.
var ErrDiverged = errors.New("solver diverged")

// breakdownEps bounds the pivots of the Krylov recurrences away from zero.
const breakdownEps = 1e-30

// divergeFactor flags divergence when the residual outgrows its starting
// point by this factor.
const divergeFactor = 1e10

// diverged checks the current residual against the initial one.
func diverged(result *Result, res float64) bool {
	return math.IsNaN(res) || res > divergeFactor*(result.History[0]+1)
}

// Solve runs the selected method on sys, using x both as the initial guess
// and as the solution on return. The caller's x is never reset, so a
// previous solution serves as a warm start. A numerical breakdown of the
// recurrence stops the iteration early with the true residual at that
// point; it is reported through the Status, not as an error.
func Solve(sys *System, opts *Options, rhs, x []float64) (*Result, error) {
	if opts.Periodicity == PeriodicityCancel {
		sys = sys.StripPeriodic()
	}
	switch opts.Kind {
	case PCG:
		return solvePCG(sys, opts, rhs, x)
	case JacobiKind:
		return solveJacobi(sys, opts, rhs, x)
	case BiCGStab:
		return solveBiCGStab(sys, opts, rhs, x)
	}
	return nil, fmt.Errorf("%w: %d", ErrKind, int(opts.Kind))
}

// precond applies the Neumann polynomial preconditioner of the given
// degree: z approximates A^-1 r through the splitting A = D + E, with
// z_0 = D^-1 r and z_{k+1} = D^-1 (r - E z_k). wk is scratch of size
// NCells.
func precond(sys *System, degree int, r, z, wk []float64) {
	n := sys.NCells
	for c := 0; c < n; c++ {
		z[c] = r[c] / sys.Diag[c]
	}
	for k := 0; k < degree; k++ {
		sys.OffDiagVec(z, wk)
		for c := 0; c < n; c++ {
			z[c] = (r[c] - wk[c]) / sys.Diag[c]
		}
	}
}

func logIter(cv *Convergence, kind Kind, it int, res float64) {
	if cv.Verbosity > 0 {
		fmt.Printf("   %s: iter %4d residual %12.5e\n", kind, it, res)
	}
}

func solvePCG(sys *System, opts *Options, rhs, x []float64) (*Result, error) {
	n := sys.NCells
	cv := &opts.Conv
	rn := cv.rnorm(floats.Norm(rhs, 2))

	r := make([]float64, n)
	z := make([]float64, n)
	p := make([]float64, n)
	q := make([]float64, n)
	wk := make([]float64, n)

	res := sys.Residual(rhs, x, r) / rn
	result := &Result{Residual: res, History: []float64{res}}
	logIter(cv, PCG, 0, res)
	if res < cv.Epsilon {
		result.Status = Converged
		return result, nil
	}

	precond(sys, opts.PolyDegree, r, z, wk)
	copy(p, z)
	rz := floats.Dot(r, z)

	for it := 1; it <= cv.MaxIter; it++ {
		sys.MatVec(p, q)
		pq := floats.Dot(p, q)
		if math.Abs(pq) < breakdownEps || math.Abs(rz) < breakdownEps {
			result.Residual = sys.Residual(rhs, x, r) / rn
			result.Status = Breakdown
			return result, nil
		}
		alpha := rz / pq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)

		res = floats.Norm(r, 2) / rn
		result.Iterations = it
		result.Residual = res
		result.History = append(result.History, res)
		logIter(cv, PCG, it, res)
		if res < cv.Epsilon {
			result.Status = Converged
			return result, nil
		}
		if diverged(result, res) {
			result.Status = Diverged
			return result, fmt.Errorf("%w: residual %.3e at iteration %d",
				ErrDiverged, res, it)
		}

		precond(sys, opts.PolyDegree, r, z, wk)
		rzNew := floats.Dot(r, z)
		beta := rzNew / rz
		rz = rzNew
		for c := 0; c < n; c++ {
			p[c] = z[c] + beta*p[c]
		}
	}
	result.Status = MaxIterReached
	return result, nil
}

func solveJacobi(sys *System, opts *Options, rhs, x []float64) (*Result, error) {
	n := sys.NCells
	cv := &opts.Conv
	rn := cv.rnorm(floats.Norm(rhs, 2))

	r := make([]float64, n)
	ex := make([]float64, n)

	res := sys.Residual(rhs, x, r) / rn
	result := &Result{Residual: res, History: []float64{res}}
	logIter(cv, JacobiKind, 0, res)
	if res < cv.Epsilon {
		result.Status = Converged
		return result, nil
	}

	for it := 1; it <= cv.MaxIter; it++ {
		sys.OffDiagVec(x, ex)
		for c := 0; c < n; c++ {
			x[c] = (rhs[c] - ex[c]) / sys.Diag[c]
		}

		res = sys.Residual(rhs, x, r) / rn
		result.Iterations = it
		result.Residual = res
		result.History = append(result.History, res)
		logIter(cv, JacobiKind, it, res)
		if res < cv.Epsilon {
			result.Status = Converged
			return result, nil
		}
		if diverged(result, res) {
			result.Status = Diverged
			return result, fmt.Errorf("%w: residual %.3e at iteration %d",
				ErrDiverged, res, it)
		}
	}
	result.Status = MaxIterReached
	return result, nil
}

func solveBiCGStab(sys *System, opts *Options, rhs, x []float64) (*Result, error) {
	n := sys.NCells
	cv := &opts.Conv
	rn := cv.rnorm(floats.Norm(rhs, 2))

	r := make([]float64, n)
	rt := make([]float64, n)
	p := make([]float64, n)
	ph := make([]float64, n)
	sv := make([]float64, n)
	sh := make([]float64, n)
	v := make([]float64, n)
	tv := make([]float64, n)
	wk := make([]float64, n)

	res := sys.Residual(rhs, x, r) / rn
	result := &Result{Residual: res, History: []float64{res}}
	logIter(cv, BiCGStab, 0, res)
	if res < cv.Epsilon {
		result.Status = Converged
		return result, nil
	}

	copy(rt, r)
	rho := 1.0
	alpha := 1.0
	omega := 1.0

	breakdown := func() (*Result, error) {
		result.Residual = sys.Residual(rhs, x, r) / rn
		result.Status = Breakdown
		return result, nil
	}

	for it := 1; it <= cv.MaxIter; it++ {
		rhoNew := floats.Dot(rt, r)
		if math.Abs(rhoNew) < breakdownEps || math.Abs(omega) < breakdownEps {
			return breakdown()
		}
		if it == 1 {
			copy(p, r)
		} else {
			beta := (rhoNew / rho) * (alpha / omega)
			for c := 0; c < n; c++ {
				p[c] = r[c] + beta*(p[c]-omega*v[c])
			}
		}
		rho = rhoNew

		precond(sys, opts.PolyDegree, p, ph, wk)
		sys.MatVec(ph, v)
		rtv := floats.Dot(rt, v)
		if math.Abs(rtv) < breakdownEps {
			return breakdown()
		}
		alpha = rho / rtv

		for c := 0; c < n; c++ {
			sv[c] = r[c] - alpha*v[c]
		}
		precond(sys, opts.PolyDegree, sv, sh, wk)
		sys.MatVec(sh, tv)
		tt := floats.Dot(tv, tv)
		stalled := tt < breakdownEps
		if stalled {
			// s is already (numerically) zero, take the half step
			floats.AddScaled(x, alpha, ph)
			copy(r, sv)
		} else {
			omega = floats.Dot(tv, sv) / tt
			floats.AddScaled(x, alpha, ph)
			floats.AddScaled(x, omega, sh)
			for c := 0; c < n; c++ {
				r[c] = sv[c] - omega*tv[c]
			}
		}

		res = floats.Norm(r, 2) / rn
		result.Iterations = it
		result.Residual = res
		result.History = append(result.History, res)
		logIter(cv, BiCGStab, it, res)
		if res < cv.Epsilon {
			result.Status = Converged
			return result, nil
		}
		if diverged(result, res) {
			result.Status = Diverged
			return result, fmt.Errorf("%w: residual %.3e at iteration %d",
				ErrDiverged, res, it)
		}
		if stalled {
			return breakdown()
		}
	}
	result.Status = MaxIterReached
	return result, nil
}
