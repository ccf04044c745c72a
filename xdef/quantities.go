package xdef

import (
	"github.com/notargets/fvkernel/geom"
)

// Adjacency is an index/ids pair in compressed row storage: the entries
// related to entity i are IDs[Idx[i]:Idx[i+1]].
type Adjacency struct {
	Idx []int
	IDs []int
}

// Range returns the half-open entry range for entity i.
func (a *Adjacency) Range(i int) (start, end int) {
	return a.Idx[i], a.Idx[i+1]
}

// Connect gathers the mesh connectivities the evaluators rely on.
// E2V stores two vertex ids per edge, interlaced.
type Connect struct {
	C2V *Adjacency
	C2E *Adjacency
	F2E *Adjacency
	E2V []int
}

// GetNext3Vertices returns the three vertices of a triangular face from
// its first two edges: the first edge carries v1 and v2, the second edge
// contributes the remaining vertex.
func GetNext3Vertices(f2eIDs, e2v []int) (v1, v2, v3 int) {
	e0, e1 := f2eIDs[0], f2eIDs[1]
	v1, v2 = e2v[2*e0], e2v[2*e0+1]
	v3 = e2v[2*e1]
	if v3 == v1 || v3 == v2 {
		v3 = e2v[2*e1+1]
	}
	return v1, v2, v3
}

// Quant bundles the measure, unit vector and center of a face or edge.
// For a face the unit vector is the normal, for an edge the tangent.
type Quant struct {
	Meas   float64
	UnitV  [3]float64
	Center [3]float64
}

// Quantities holds the geometric quantities of the mesh in the flat,
// interlaced layout the evaluators expect. Coordinate arrays store
// (x,y,z) triples; DCellVol follows the C2V adjacency (one dual volume
// per cell-vertex pair, summing to the cell volume within each cell).
type Quantities struct {
	NCells    int
	NFaces    int
	NEdges    int
	NVertices int

	CellCenters []float64 // 3 * NCells
	CellVol     []float64 // NCells

	FaceCenters []float64 // 3 * NFaces
	FaceMeas    []float64 // NFaces
	FaceNormal  []float64 // 3 * NFaces, unit

	EdgeCenters []float64 // 3 * NEdges
	EdgeMeas    []float64 // NEdges
	EdgeUnit    []float64 // 3 * NEdges

	VtxCoord []float64 // 3 * NVertices
	DCellVol []float64 // len(C2V.IDs)
}

// Face assembles the quantity view of face f.
func (q *Quantities) Face(f int) Quant {
	return Quant{
		Meas: q.FaceMeas[f],
		UnitV: [3]float64{
			q.FaceNormal[3*f], q.FaceNormal[3*f+1], q.FaceNormal[3*f+2]},
		Center: [3]float64{
			q.FaceCenters[3*f], q.FaceCenters[3*f+1], q.FaceCenters[3*f+2]},
	}
}

// Edge assembles the quantity view of edge e.
func (q *Quantities) Edge(e int) Quant {
	return Quant{
		Meas: q.EdgeMeas[e],
		UnitV: [3]float64{
			q.EdgeUnit[3*e], q.EdgeUnit[3*e+1], q.EdgeUnit[3*e+2]},
		Center: [3]float64{
			q.EdgeCenters[3*e], q.EdgeCenters[3*e+1], q.EdgeCenters[3*e+2]},
	}
}

// Vtx returns the coordinates of vertex v.
func (q *Quantities) Vtx(v int) [3]float64 {
	return [3]float64{q.VtxCoord[3*v], q.VtxCoord[3*v+1], q.VtxCoord[3*v+2]}
}

// CellCenter returns the center of cell c.
func (q *Quantities) CellCenter(c int) [3]float64 {
	return [3]float64{
		q.CellCenters[3*c], q.CellCenters[3*c+1], q.CellCenters[3*c+2]}
}

// Mesh locations a field can be attached to.
const (
	LocationCells    = 0
	LocationVertices = 1
)

// LocationIDByName maps a mesh-location name to its id, returning -1 for
// an unknown name.
func LocationIDByName(name string) int {
	switch name {
	case "cells":
		return LocationCells
	case "vertices":
		return LocationVertices
	}
	return -1
}

// Field is a discrete variable attached to a mesh location. Vals is
// interlaced with stride Dim.
type Field struct {
	Name       string
	Dim        int
	LocationID int
	Vals       []float64
}

// RecoVtxAtCellCenter reconstructs a vertex-based scalar at the center of
// cell c as the dual-volume weighted average of its vertex values.
func RecoVtxAtCellCenter(c int, c2v *Adjacency, q *Quantities,
	vals []float64) float64 {

	reco := 0.0
	for j := c2v.Idx[c]; j < c2v.Idx[c+1]; j++ {
		reco += q.DCellVol[j] * vals[c2v.IDs[j]]
	}
	return reco / q.CellVol[c]
}

// RecoDualFaceByCellAtCenter reconstructs a vector at the center of cell c
// from scalar fluxes across the dual faces crossed by the cell's edges.
// fluxes follows the C2E adjacency.
func RecoDualFaceByCellAtCenter(c int, c2e *Adjacency, q *Quantities,
	fluxes []float64) [3]float64 {

	var reco [3]float64
	for j := c2e.Idx[c]; j < c2e.Idx[c+1]; j++ {
		e := c2e.IDs[j]
		coef := fluxes[j] * q.EdgeMeas[e]
		for k := 0; k < 3; k++ {
			reco[k] += coef * q.EdgeUnit[3*e+k]
		}
	}
	inv := 1.0 / q.CellVol[c]
	for k := 0; k < 3; k++ {
		reco[k] *= inv
	}
	return reco
}

// RecoDualFaceByCellInCell is the cellwise variant of
// RecoDualFaceByCellAtCenter; fluxes holds one value per local edge.
func RecoDualFaceByCellInCell(cm *CellMesh, fluxes []float64) [3]float64 {
	var reco [3]float64
	for e := 0; e < cm.NEc; e++ {
		coef := fluxes[e] * cm.Edge[e].Meas
		for k := 0; k < 3; k++ {
			reco[k] += coef * cm.Edge[e].UnitV[k]
		}
	}
	inv := 1.0 / cm.VolC
	for k := 0; k < 3; k++ {
		reco[k] *= inv
	}
	return reco
}

// AreaFromQuant returns the area of the triangle formed by the endpoints
// of edge eq and the point xf.
func AreaFromQuant(eq Quant, xf [3]float64) float64 {
	var ev, xef [3]float64
	for k := 0; k < 3; k++ {
		ev[k] = eq.Meas * eq.UnitV[k]
		xef[k] = xf[k] - eq.Center[k]
	}
	return 0.5 * geom.Norm(geom.Cross(ev, xef))
}
