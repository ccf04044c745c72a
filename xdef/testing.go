package xdef

import (
	"github.com/notargets/fvkernel/geom"
)

// Unit cube connectivity shared by the fixtures below. Vertices are the
// corners of [0,1]^3, edges and faces follow the listed order.
var (
	hexXV = []float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
		0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1,
	}
	hexE2V = []int{
		0, 1, 1, 2, 2, 3, 3, 0, // bottom ring
		4, 5, 5, 6, 6, 7, 7, 4, // top ring
		0, 4, 1, 5, 2, 6, 3, 7, // verticals
	}
	hexF2EIdx = []int{0, 4, 8, 12, 16, 20, 24}
	hexF2EIds = []int{
		0, 1, 2, 3, // z = 0
		4, 5, 6, 7, // z = 1
		3, 11, 7, 8, // x = 0
		1, 10, 5, 9, // x = 1
		0, 9, 4, 8, // y = 0
		2, 10, 6, 11, // y = 1
	}
	hexFaceNormal = [][3]float64{
		{0, 0, -1}, {0, 0, 1}, {-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0},
	}
	hexFaceCenter = [][3]float64{
		{0.5, 0.5, 0}, {0.5, 0.5, 1}, {0, 0.5, 0.5},
		{1, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 1, 0.5},
	}
)

func edgeQuant(xv []float64, v1, v2 int) Quant {
	a := [3]float64{xv[3*v1], xv[3*v1+1], xv[3*v1+2]}
	b := [3]float64{xv[3*v2], xv[3*v2+1], xv[3*v2+2]}
	meas, unit := geom.LengthUnitVector(a, b)
	var c [3]float64
	for k := 0; k < 3; k++ {
		c[k] = 0.5 * (a[k] + b[k])
	}
	return Quant{Meas: meas, UnitV: unit, Center: c}
}

// UnitHexCellMesh builds the cell-local view of a single unit cube cell
// with every optional block filled. Intended for tests and examples.
func UnitHexCellMesh() *CellMesh {
	cm := &CellMesh{
		CID:  0,
		Type: CellHexa,
		Flag: CMVtxQuant | CMEdgeQuant | CMFaceQuant | CMEdgeVtx |
			CMFaceEdge | CMFaceEdgeQuant,
		NVc:  8,
		VIDs: []int{0, 1, 2, 3, 4, 5, 6, 7},
		XV:   append([]float64{}, hexXV...),
		Wvc:  []float64{.125, .125, .125, .125, .125, .125, .125, .125},
		XC:   [3]float64{0.5, 0.5, 0.5},
		VolC: 1,
		NEc:  12,
		E2V:  append([]int{}, hexE2V...),
		NFc:  6,
		F2EIdx: append([]int{}, hexF2EIdx...),
		F2EIds: append([]int{}, hexF2EIds...),
	}
	cm.Edge = make([]Quant, 12)
	for e := 0; e < 12; e++ {
		cm.Edge[e] = edgeQuant(cm.XV, hexE2V[2*e], hexE2V[2*e+1])
	}
	cm.Face = make([]Quant, 6)
	cm.HFC = make([]float64, 6)
	for f := 0; f < 6; f++ {
		cm.Face[f] = Quant{
			Meas: 1, UnitV: hexFaceNormal[f], Center: hexFaceCenter[f]}
		cm.HFC[f] = 0.5
	}
	cm.Tef = make([]float64, 24)
	for j := range cm.Tef {
		cm.Tef[j] = 0.25
	}
	return cm
}

// UnitTetCellMesh builds the cell-local view of the unit right tetrahedron
// with vertices at the origin and the three axis unit points.
func UnitTetCellMesh() *CellMesh {
	xv := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	e2v := []int{0, 1, 0, 2, 0, 3, 1, 2, 1, 3, 2, 3}
	sqrt3 := 1.7320508075688772

	cm := &CellMesh{
		CID:  0,
		Type: CellTetra,
		Flag: CMVtxQuant | CMEdgeQuant | CMFaceQuant | CMEdgeVtx |
			CMFaceEdge | CMFaceEdgeQuant,
		NVc:  4,
		VIDs: []int{0, 1, 2, 3},
		XV:   xv,
		Wvc:  []float64{0.25, 0.25, 0.25, 0.25},
		XC:   [3]float64{0.25, 0.25, 0.25},
		VolC: 1.0 / 6.0,
		NEc:  6,
		E2V:  e2v,
		NFc:  4,
		F2EIdx: []int{0, 3, 6, 9, 12},
		F2EIds: []int{
			0, 3, 1, // z = 0 face (0,1,2)
			0, 4, 2, // y = 0 face (0,1,3)
			1, 5, 2, // x = 0 face (0,2,3)
			3, 5, 4, // oblique face (1,2,3)
		},
	}
	cm.Edge = make([]Quant, 6)
	for e := 0; e < 6; e++ {
		cm.Edge[e] = edgeQuant(xv, e2v[2*e], e2v[2*e+1])
	}
	third := geom.OneThird
	cm.Face = []Quant{
		{Meas: 0.5, UnitV: [3]float64{0, 0, -1},
			Center: [3]float64{third, third, 0}},
		{Meas: 0.5, UnitV: [3]float64{0, -1, 0},
			Center: [3]float64{third, 0, third}},
		{Meas: 0.5, UnitV: [3]float64{-1, 0, 0},
			Center: [3]float64{0, third, third}},
		{Meas: 0.5 * sqrt3, UnitV: [3]float64{1 / sqrt3, 1 / sqrt3, 1 / sqrt3},
			Center: [3]float64{third, third, third}},
	}
	cm.HFC = []float64{0.25, 0.25, 0.25, 0.25 / sqrt3}
	cm.Tef = make([]float64, 12)
	for f := 0; f < 4; f++ {
		for j := cm.F2EIdx[f]; j < cm.F2EIdx[f+1]; j++ {
			cm.Tef[j] = cm.Face[f].Meas * third
		}
	}
	return cm
}

// UnitHexMesh builds the global quantities and connectivities of a mesh
// made of the single unit cube cell, for the list evaluators.
func UnitHexMesh() (*Quantities, *Connect) {
	q := &Quantities{
		NCells:      1,
		NFaces:      6,
		NEdges:      12,
		NVertices:   8,
		CellCenters: []float64{0.5, 0.5, 0.5},
		CellVol:     []float64{1},
		VtxCoord:    append([]float64{}, hexXV...),
		DCellVol:    []float64{.125, .125, .125, .125, .125, .125, .125, .125},
	}
	q.FaceCenters = make([]float64, 18)
	q.FaceMeas = make([]float64, 6)
	q.FaceNormal = make([]float64, 18)
	for f := 0; f < 6; f++ {
		q.FaceMeas[f] = 1
		copy(q.FaceCenters[3*f:3*f+3], hexFaceCenter[f][:])
		copy(q.FaceNormal[3*f:3*f+3], hexFaceNormal[f][:])
	}
	q.EdgeCenters = make([]float64, 36)
	q.EdgeMeas = make([]float64, 12)
	q.EdgeUnit = make([]float64, 36)
	for e := 0; e < 12; e++ {
		eq := edgeQuant(hexXV, hexE2V[2*e], hexE2V[2*e+1])
		q.EdgeMeas[e] = eq.Meas
		copy(q.EdgeCenters[3*e:3*e+3], eq.Center[:])
		copy(q.EdgeUnit[3*e:3*e+3], eq.UnitV[:])
	}

	cn := &Connect{
		C2V: &Adjacency{Idx: []int{0, 8}, IDs: []int{0, 1, 2, 3, 4, 5, 6, 7}},
		C2E: &Adjacency{
			Idx: []int{0, 12},
			IDs: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		F2E: &Adjacency{
			Idx: append([]int{}, hexF2EIdx...),
			IDs: append([]int{}, hexF2EIds...)},
		E2V: append([]int{}, hexE2V...),
	}
	return q, cn
}
