// Package solver implements iterative resolution of the sparse linear
// systems arising from a cell-centered finite volume discretization. The
// matrix is stored face-based: one diagonal coefficient per cell and one
// (symmetric) or two (general) extra-diagonal coefficients per interior
// face, the face's two adjacent cells giving the row/column positions.
package solver

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// System is the face-based sparse operator. Diag holds the NCells diagonal
// coefficients. For a symmetric matrix XA holds one coefficient per face;
// otherwise two interlaced per face, XA[2*f] acting from cell j on the row
// of cell i and XA[2*f+1] the other way. FaceCell stores the two adjacent
// cell ids of each face, interlaced.
type System struct {
	NCells    int
	NFaces    int
	Symmetric bool

	Diag     []float64
	XA       []float64
	FaceCell []int

	// PerFace marks faces crossing a periodic boundary; nil when the
	// mesh has none. See Periodicity in Options.
	PerFace []bool
}

// NewSystem validates the array lengths against the mesh sizes and the
// symmetry flag.
func NewSystem(nCells, nFaces int, symmetric bool, diag, xa []float64,
	faceCell []int) (*System, error) {

	if nCells <= 0 {
		return nil, fmt.Errorf("system: need at least one cell, got %d", nCells)
	}
	if len(diag) != nCells {
		return nil, fmt.Errorf("system: %d diagonal coefficients for %d cells",
			len(diag), nCells)
	}
	wantXA := nFaces
	if !symmetric {
		wantXA = 2 * nFaces
	}
	if len(xa) != wantXA {
		return nil, fmt.Errorf("system: %d extra-diagonal coefficients, want %d",
			len(xa), wantXA)
	}
	if len(faceCell) != 2*nFaces {
		return nil, fmt.Errorf("system: %d face-cell entries, want %d",
			len(faceCell), 2*nFaces)
	}
	for f := 0; f < nFaces; f++ {
		i, j := faceCell[2*f], faceCell[2*f+1]
		if i < 0 || i >= nCells || j < 0 || j >= nCells {
			return nil, fmt.Errorf("system: face %d joins cells (%d,%d) outside [0,%d)",
				f, i, j, nCells)
		}
	}
	return &System{
		NCells:    nCells,
		NFaces:    nFaces,
		Symmetric: symmetric,
		Diag:      diag,
		XA:        xa,
		FaceCell:  faceCell,
	}, nil
}

// SetPeriodicFaces marks the given faces as crossing a periodic boundary.
func (s *System) SetPeriodicFaces(faces []int) error {
	if s.PerFace == nil {
		s.PerFace = make([]bool, s.NFaces)
	}
	for _, f := range faces {
		if f < 0 || f >= s.NFaces {
			return fmt.Errorf("system: periodic face %d outside [0,%d)",
				f, s.NFaces)
		}
		s.PerFace[f] = true
	}
	return nil
}

// StripPeriodic returns a view of the system with the periodic face
// couplings removed, implementing the increment-cancel mode. The system
// itself is returned when no face is periodic.
func (s *System) StripPeriodic() *System {
	if s.PerFace == nil {
		return s
	}
	stride := 1
	if !s.Symmetric {
		stride = 2
	}
	out := &System{
		NCells:    s.NCells,
		Symmetric: s.Symmetric,
		Diag:      s.Diag,
	}
	for f := 0; f < s.NFaces; f++ {
		if s.PerFace[f] {
			continue
		}
		out.FaceCell = append(out.FaceCell, s.FaceCell[2*f], s.FaceCell[2*f+1])
		out.XA = append(out.XA, s.XA[stride*f:stride*f+stride]...)
	}
	out.NFaces = len(out.FaceCell) / 2
	return out
}

// MatVec computes y = A*x.
func (s *System) MatVec(x, y []float64) {
	for c := 0; c < s.NCells; c++ {
		y[c] = s.Diag[c] * x[c]
	}
	if s.Symmetric {
		for f := 0; f < s.NFaces; f++ {
			i, j := s.FaceCell[2*f], s.FaceCell[2*f+1]
			y[i] += s.XA[f] * x[j]
			y[j] += s.XA[f] * x[i]
		}
		return
	}
	for f := 0; f < s.NFaces; f++ {
		i, j := s.FaceCell[2*f], s.FaceCell[2*f+1]
		y[i] += s.XA[2*f] * x[j]
		y[j] += s.XA[2*f+1] * x[i]
	}
}

// OffDiagVec computes y = E*x where E holds only the extra-diagonal part.
func (s *System) OffDiagVec(x, y []float64) {
	for c := 0; c < s.NCells; c++ {
		y[c] = 0
	}
	if s.Symmetric {
		for f := 0; f < s.NFaces; f++ {
			i, j := s.FaceCell[2*f], s.FaceCell[2*f+1]
			y[i] += s.XA[f] * x[j]
			y[j] += s.XA[f] * x[i]
		}
		return
	}
	for f := 0; f < s.NFaces; f++ {
		i, j := s.FaceCell[2*f], s.FaceCell[2*f+1]
		y[i] += s.XA[2*f] * x[j]
		y[j] += s.XA[2*f+1] * x[i]
	}
}

// Residual computes r = rhs - A*x and returns its Euclidean norm.
func (s *System) Residual(rhs, x, r []float64) float64 {
	s.MatVec(x, r)
	for c := 0; c < s.NCells; c++ {
		r[c] = rhs[c] - r[c]
	}
	return floats.Norm(r, 2)
}
