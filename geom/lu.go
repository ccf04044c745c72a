package geom

// FactLU computes the in-place-style LU factorization of nBlocks dense
// matrices of identical size bSize, stored contiguously row-major in a.
// The factorizations are written to aLU (same layout, len(a)). No pivoting
// is performed: blocks are expected to be diagonally dominant, as produced
// by the block-Jacobi setup.
func FactLU(nBlocks, bSize int, a, aLU []float64) {
	stride := bSize * bSize

	for b := 0; b < nBlocks; b++ {
		src := a[b*stride : (b+1)*stride]
		dst := aLU[b*stride : (b+1)*stride]
		copy(dst, src)

		for k := 0; k < bSize-1; k++ {
			pivot := 1.0 / dst[k*bSize+k]
			for i := k + 1; i < bSize; i++ {
				f := dst[i*bSize+k] * pivot
				dst[i*bSize+k] = f
				for j := k + 1; j < bSize; j++ {
					dst[i*bSize+j] -= f * dst[k*bSize+j]
				}
			}
		}
	}
}

// FwBwLU solves the n x n system given its LU factorization aLU (as
// produced by FactLU), performing the forward then backward substitution.
// The solution is written to x; b is left untouched.
func FwBwLU(aLU []float64, n int, x, b []float64) {
	// Forward: L y = b (unit lower-triangular L)
	for i := 0; i < n; i++ {
		s := b[i]
		for j := 0; j < i; j++ {
			s -= aLU[i*n+j] * x[j]
		}
		x[i] = s
	}

	// Backward: U x = y
	for i := n - 1; i >= 0; i-- {
		s := x[i]
		for j := i + 1; j < n; j++ {
			s -= aLU[i*n+j] * x[j]
		}
		x[i] = s / aLU[i*n+i]
	}
}
