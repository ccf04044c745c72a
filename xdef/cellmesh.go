package xdef

// CMFlag records which optional blocks of a CellMesh have been filled.
type CMFlag uint16

const (
	CMVtxQuant  CMFlag = 1 << iota // XV, Wvc
	CMEdgeQuant                    // Edge
	CMFaceQuant                    // Face, HFC
	CMEdgeVtx                      // E2V
	CMFaceEdge                     // F2EIdx, F2EIds
	CMFaceEdgeQuant                // Tef
)

// CellType classifies the cell shape; Tetra enables the fast paths that
// skip face and cell subdivision.
type CellType int

const (
	CellTetra CellType = iota
	CellPyramid
	CellPrism
	CellHexa
	CellPoly
)

// CellMesh is a transient, cell-local view of the mesh: local vertex,
// edge and face numbering with the geometric quantities attached. It is
// rebuilt (or rewritten in place) for each cell a cellwise evaluator
// visits. Local entities index the per-cell slices; VIDs maps local
// vertices back to mesh vertex ids.
type CellMesh struct {
	CID  int
	Type CellType
	Flag CMFlag

	// vertices
	NVc  int
	VIDs []int
	XV   []float64 // 3 * NVc
	Wvc  []float64 // dual volume fraction per vertex, sums to 1

	// cell
	XC   [3]float64
	VolC float64

	// edges
	NEc  int
	Edge []Quant
	E2V  []int // 2 local vertex ids per local edge

	// faces
	NFc    int
	Face   []Quant
	HFC    []float64 // pyramid height from XC over each face
	F2EIdx []int     // NFc+1
	F2EIds []int     // local edge ids, face-ordered
	Tef    []float64 // area of (edge, face center) triangle, per F2E entry
}

// HasFlags reports whether every requested block is available.
func (cm *CellMesh) HasFlags(ref CMFlag) bool { return cm.Flag&ref == ref }

// FaceEdges returns the local edge id range of local face f in F2EIds.
func (cm *CellMesh) FaceEdges(f int) (start, end int) {
	return cm.F2EIdx[f], cm.F2EIdx[f+1]
}

// FaceVertices returns the three local vertices of triangular face f.
func (cm *CellMesh) FaceVertices(f int) (v1, v2, v3 int) {
	s, _ := cm.FaceEdges(f)
	return GetNext3Vertices(cm.F2EIds[s:], cm.E2V)
}

// VtxCoord returns the coordinates of local vertex v.
func (cm *CellMesh) VtxCoord(v int) [3]float64 {
	return [3]float64{cm.XV[3*v], cm.XV[3*v+1], cm.XV[3*v+2]}
}
