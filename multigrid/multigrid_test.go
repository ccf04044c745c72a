package multigrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/fvkernel/solver"
)

func laplacian1D(n int) *solver.System {
	diag := make([]float64, n)
	xa := make([]float64, n-1)
	fc := make([]int, 2*(n-1))
	for c := range diag {
		diag[c] = 2
	}
	for f := 0; f < n-1; f++ {
		xa[f] = -1
		fc[2*f], fc[2*f+1] = f, f+1
	}
	sys, err := solver.NewSystem(n, n-1, true, diag, xa, fc)
	if err != nil {
		panic(err)
	}
	return sys
}

func toDense(s *solver.System) *mat.Dense {
	d := mat.NewDense(s.NCells, s.NCells, nil)
	for c := 0; c < s.NCells; c++ {
		d.Set(c, c, s.Diag[c])
	}
	for f := 0; f < s.NFaces; f++ {
		i, j := s.FaceCell[2*f], s.FaceCell[2*f+1]
		if s.Symmetric {
			d.Set(i, j, d.At(i, j)+s.XA[f])
			d.Set(j, i, d.At(j, i)+s.XA[f])
		} else {
			d.Set(i, j, d.At(i, j)+s.XA[2*f])
			d.Set(j, i, d.At(j, i)+s.XA[2*f+1])
		}
	}
	return d
}

func TestPairwiseAggregation(t *testing.T) {
	sys := laplacian1D(6)
	cToC, nCoarse, err := PairwiseAggregation{}.Coarsen(sys)
	assert.NoError(t, err)
	assert.Equal(t, 3, nCoarse)

	// every cell is assigned and no aggregate exceeds two cells
	count := make([]int, nCoarse)
	for _, c := range cToC {
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, nCoarse)
		count[c]++
	}
	for agg, n := range count {
		assert.LessOrEqual(t, n, 2, "aggregate %d", agg)
		assert.GreaterOrEqual(t, n, 1, "aggregate %d", agg)
	}
}

func TestBlockAggregation(t *testing.T) {
	sys := laplacian1D(7)
	cToC, nCoarse, err := BlockAggregation{BlockSize: 3}.Coarsen(sys)
	assert.NoError(t, err)
	assert.Equal(t, 3, nCoarse)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2}, cToC)

	_, _, err = BlockAggregation{BlockSize: 1}.Coarsen(sys)
	assert.Error(t, err)
}

func TestGalerkinProjection(t *testing.T) {
	// the coarse operator must equal P^T A P for the piecewise-constant
	// prolongation P induced by the aggregates
	check := func(t *testing.T, sys *solver.System) {
		t.Helper()
		cToC, nCoarse, err := PairwiseAggregation{}.Coarsen(sys)
		assert.NoError(t, err)
		coarse, err := galerkin(sys, cToC, nCoarse)
		assert.NoError(t, err)

		p := mat.NewDense(sys.NCells, nCoarse, nil)
		for c, agg := range cToC {
			p.Set(c, agg, 1)
		}
		var tmp, want mat.Dense
		tmp.Mul(toDense(sys), p)
		want.Mul(p.T(), &tmp)

		got := toDense(coarse)
		for i := 0; i < nCoarse; i++ {
			for j := 0; j < nCoarse; j++ {
				assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-12,
					"(%d,%d)", i, j)
			}
		}
	}

	t.Run("symmetric", func(t *testing.T) { check(t, laplacian1D(9)) })

	t.Run("nonsymmetric", func(t *testing.T) {
		n := 8
		diag := make([]float64, n)
		xa := make([]float64, 2*(n-1))
		fc := make([]int, 2*(n-1))
		for c := range diag {
			diag[c] = 3
		}
		for f := 0; f < n-1; f++ {
			xa[2*f] = -0.5
			xa[2*f+1] = -2
			fc[2*f], fc[2*f+1] = f, f+1
		}
		sys, err := solver.NewSystem(n, n-1, false, diag, xa, fc)
		assert.NoError(t, err)
		check(t, sys)
	})
}

func TestBuilderHierarchy(t *testing.T) {
	sys := laplacian1D(128)
	b := &Builder{
		Coarsener:      PairwiseAggregation{},
		MaxLevels:      10,
		MinCoarseCells: 8,
	}
	h, err := b.Build(sys)
	assert.NoError(t, err)
	assert.Greater(t, h.Depth(), 2)

	// the finest level aliases the caller's system, sizes shrink level
	// by level, and every non-coarsest level carries its map
	assert.Same(t, sys, h.Levels[0].Sys)
	for l := 1; l < h.Depth(); l++ {
		assert.Less(t, h.Levels[l].Sys.NCells, h.Levels[l-1].Sys.NCells,
			"level %d", l)
		assert.Len(t, h.Levels[l-1].CToC, h.Levels[l-1].Sys.NCells)
	}
	assert.Nil(t, h.Levels[h.Depth()-1].CToC)
	assert.LessOrEqual(t, h.Levels[h.Depth()-1].Sys.NCells, 16)
}

func TestBuilderValidation(t *testing.T) {
	sys := laplacian1D(8)

	_, err := (&Builder{MaxLevels: 5, MinCoarseCells: 2}).Build(sys)
	assert.Error(t, err, "missing coarsener")

	_, err = (&Builder{Coarsener: PairwiseAggregation{}, MaxLevels: 1,
		MinCoarseCells: 2}).Build(sys)
	assert.Error(t, err, "degenerate level budget")
}

func TestVCycleSolvesLaplacian(t *testing.T) {
	n := 64
	sys := laplacian1D(n)
	rhs := make([]float64, n)
	for c := range rhs {
		rhs[c] = 1
	}

	b := &Builder{
		Coarsener:      PairwiseAggregation{},
		MaxLevels:      10,
		MinCoarseCells: 4,
	}
	h, err := b.Build(sys)
	assert.NoError(t, err)

	x := make([]float64, n)
	res, err := VCycle(h, &CycleOptions{
		Smoother:      solver.PCG,
		SmootherIters: 2,
		CoarseKind:    solver.PCG,
		CoarseMaxIter: 50,
		Conv:          solver.Convergence{Epsilon: 1e-10, MaxIter: 100},
	}, rhs, x)
	assert.NoError(t, err)
	assert.Equal(t, solver.Converged, res.Status)

	var want mat.VecDense
	err = want.SolveVec(toDense(sys), mat.NewVecDense(n, rhs))
	assert.NoError(t, err)
	for c := 0; c < n; c++ {
		assert.InDelta(t, want.AtVec(c), x[c], 1e-7, "cell %d", c)
	}
}

func TestOneLevelMultigridMatchesPCG(t *testing.T) {
	// the 5-cell Laplacian with a single coarsening level must reach the
	// same solution as a direct PCG solve
	sys := laplacian1D(5)
	rhs := []float64{1, 0, 0, 0, 1}

	xref := make([]float64, 5)
	res, err := Invert(sys, &InvertOptions{
		Kind: solver.PCG,
		Conv: solver.Convergence{Epsilon: 1e-10, MaxIter: 100},
	}, rhs, xref)
	assert.NoError(t, err)
	assert.Equal(t, solver.Converged, res.Status)

	b := &Builder{Coarsener: PairwiseAggregation{}, MaxLevels: 2,
		MinCoarseCells: 1}
	h, err := b.Build(sys)
	assert.NoError(t, err)
	assert.Equal(t, 2, h.Depth())

	x := make([]float64, 5)
	res, err = VCycle(h, &CycleOptions{
		Smoother:      solver.PCG,
		SmootherIters: 2,
		CoarseKind:    solver.PCG,
		CoarseMaxIter: 50,
		Conv:          solver.Convergence{Epsilon: 1e-10, MaxIter: 50},
	}, rhs, x)
	assert.NoError(t, err)
	assert.Equal(t, solver.Converged, res.Status)
	for c := 0; c < 5; c++ {
		assert.InDelta(t, xref[c], x[c], 1e-8, "cell %d", c)
		assert.InDelta(t, 1.0, x[c], 1e-8, "cell %d", c)
	}
}

func TestVCycleValidation(t *testing.T) {
	sys := laplacian1D(16)
	h, err := DefaultBuilder().Build(sys)
	assert.NoError(t, err)

	rhs := make([]float64, 16)
	x := make([]float64, 16)

	_, err = VCycle(h, &CycleOptions{Smoother: solver.JacobiKind,
		SmootherIters: 0, CoarseKind: solver.PCG,
		Conv: solver.Convergence{Epsilon: 1e-8, MaxIter: 10}}, rhs, x)
	assert.Error(t, err)

	_, err = VCycle(h, &CycleOptions{Smoother: solver.Kind(9),
		SmootherIters: 2, CoarseKind: solver.PCG, CoarseMaxIter: 10,
		Conv: solver.Convergence{Epsilon: 1e-8, MaxIter: 10}}, rhs, x)
	assert.True(t, errors.Is(err, solver.ErrKind))
}

func TestInvertDispatch(t *testing.T) {
	n := 32
	sys := laplacian1D(n)
	rhs := make([]float64, n)
	rhs[0], rhs[n-1] = 1, 1

	// plain solve path
	x := make([]float64, n)
	res, err := Invert(sys, &InvertOptions{
		Kind: solver.PCG,
		Conv: solver.Convergence{Epsilon: 1e-10, MaxIter: 200},
	}, rhs, x)
	assert.NoError(t, err)
	assert.Equal(t, solver.Converged, res.Status)
	for c := 0; c < n; c++ {
		assert.InDelta(t, 1.0, x[c], 1e-7, "cell %d", c)
	}

	// multigrid path reaches the same solution
	xm := make([]float64, n)
	res, err = Invert(sys, &InvertOptions{
		Kind:      solver.PCG,
		Conv:      solver.Convergence{Epsilon: 1e-10, MaxIter: 100},
		Multigrid: true,
		Builder: &Builder{Coarsener: PairwiseAggregation{}, MaxLevels: 8,
			MinCoarseCells: 4},
		SmootherIters: 2,
		CoarseMaxIter: 50,
	}, rhs, xm)
	assert.NoError(t, err)
	assert.Equal(t, solver.Converged, res.Status)
	for c := 0; c < n; c++ {
		assert.InDelta(t, x[c], xm[c], 1e-6, "cell %d", c)
	}

	// configuration errors surface unchanged
	_, err = Invert(sys, &InvertOptions{Kind: solver.Kind(7),
		Conv: solver.Convergence{Epsilon: 1e-10, MaxIter: 10}}, rhs, x)
	assert.True(t, errors.Is(err, solver.ErrKind))
}
