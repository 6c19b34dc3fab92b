// Package grid provides the structured hypercube triangulation used to
// exercise DoF and constraint handling: a subdivided unit square or cube
// with one-level local refinement and geometric hanging-vertex detection.
// Mesh-file import/export is deliberately not here; external readers only
// consume the refcell numbering translation tables.
package grid

import (
	"fmt"
	"math"

	"github.com/notargets/FEMKernel/refcell"
)

// quantization scale for vertex deduplication; refinement coordinates are
// dyadic so rounding at 2^20 is exact for any practical refinement depth.
const coordScale = 1 << 20

// Mesh is an active-cell view of a unit hypercube triangulation. Cells
// store vertex ids in lexicographic corner order, matching the reference
// cell vertex numbering.
type Mesh struct {
	Cell     refcell.Type
	Dim      int
	Vertices [][3]float64
	Cells    [][]int

	vertexIndex map[[3]int64]int
}

// HangingVertex describes one hanging vertex and the interpolation of the
// coarse neighbor values that preserves continuity across the refined
// interface.
type HangingVertex struct {
	Vertex  int
	Targets []int
	Weights []float64
}

// HyperCube builds the unit hypercube subdivided into subdivisions cells
// per axis. dim must be 2 or 3.
func HyperCube(dim, subdivisions int) (*Mesh, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("grid: unsupported dimension %d", dim)
	}
	if subdivisions < 1 {
		return nil, fmt.Errorf("grid: need at least one subdivision, got %d", subdivisions)
	}

	cell := refcell.Quadrilateral
	if dim == 3 {
		cell = refcell.Hexahedron
	}
	m := &Mesh{
		Cell:        cell,
		Dim:         dim,
		vertexIndex: make(map[[3]int64]int),
	}

	h := 1.0 / float64(subdivisions)
	nz := subdivisions
	if dim == 2 {
		nz = 1
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < subdivisions; j++ {
			for i := 0; i < subdivisions; i++ {
				min := [3]float64{float64(i) * h, float64(j) * h, float64(k) * h}
				if dim == 2 {
					min[2] = 0
				}
				m.Cells = append(m.Cells, m.boxVertices(min, h))
			}
		}
	}
	return m, nil
}

// boxVertices registers (or reuses) the corner vertices of the axis-aligned
// box with the given minimum corner and extent, in lexicographic order.
func (m *Mesh) boxVertices(min [3]float64, h float64) []int {
	nv := 1 << m.Dim
	ids := make([]int, nv)
	for v := 0; v < nv; v++ {
		p := min
		for d := 0; d < m.Dim; d++ {
			if v>>d&1 == 1 {
				p[d] += h
			}
		}
		ids[v] = m.addVertex(p)
	}
	return ids
}

func quantize(p [3]float64) [3]int64 {
	return [3]int64{
		int64(math.Round(p[0] * coordScale)),
		int64(math.Round(p[1] * coordScale)),
		int64(math.Round(p[2] * coordScale)),
	}
}

func (m *Mesh) addVertex(p [3]float64) int {
	key := quantize(p)
	if id, ok := m.vertexIndex[key]; ok {
		return id
	}
	id := len(m.Vertices)
	m.Vertices = append(m.Vertices, p)
	m.vertexIndex[key] = id
	return id
}

// VertexAt returns the id of the vertex at p, if one exists.
func (m *Mesh) VertexAt(p [3]float64) (int, bool) {
	id, ok := m.vertexIndex[quantize(p)]
	return id, ok
}

// RefineCells replaces each listed active cell with its 2^dim isotropic
// children. Indices refer to the current active cell list.
func (m *Mesh) RefineCells(cells []int) error {
	refine := make(map[int]bool, len(cells))
	for _, c := range cells {
		if c < 0 || c >= len(m.Cells) {
			return fmt.Errorf("grid: cell index %d out of range [0,%d)", c, len(m.Cells))
		}
		refine[c] = true
	}

	var next [][]int
	for c, verts := range m.Cells {
		if !refine[c] {
			next = append(next, verts)
			continue
		}
		min := m.Vertices[verts[0]]
		max := m.Vertices[verts[len(verts)-1]]
		h := (max[0] - min[0]) / 2
		nChildren := 1 << m.Dim
		for child := 0; child < nChildren; child++ {
			childMin := min
			for d := 0; d < m.Dim; d++ {
				if child>>d&1 == 1 {
					childMin[d] += h
				}
			}
			next = append(next, m.boxVertices(childMin, h))
		}
	}
	m.Cells = next
	return nil
}

// HangingVertices detects hanging vertices geometrically: a vertex sitting
// at the midpoint of an active cell's edge (or, in 3D, at the center of an
// active cell's face) hangs off that coarse entity and must interpolate
// its endpoint (corner) values.
func (m *Mesh) HangingVertices() []HangingVertex {
	seen := make(map[int]bool)
	var hanging []HangingVertex

	for _, verts := range m.Cells {
		onCell := make(map[int]bool, len(verts))
		for _, v := range verts {
			onCell[v] = true
		}

		for e := 0; e < m.Cell.NEdges(); e++ {
			ev := m.Cell.EdgeVertices(e)
			a, b := verts[ev[0]], verts[ev[1]]
			mid := midpoint(m.Vertices[a], m.Vertices[b])
			if id, ok := m.VertexAt(mid); ok && !onCell[id] && !seen[id] {
				seen[id] = true
				hanging = append(hanging, HangingVertex{
					Vertex:  id,
					Targets: []int{a, b},
					Weights: []float64{0.5, 0.5},
				})
			}
		}

		if m.Dim < 3 {
			continue
		}
		for f := 0; f < m.Cell.NFaces(); f++ {
			fv := m.Cell.FaceVertices(f)
			targets := make([]int, len(fv))
			var center [3]float64
			for n, lv := range fv {
				targets[n] = verts[lv]
				for d := 0; d < 3; d++ {
					center[d] += m.Vertices[verts[lv]][d] / float64(len(fv))
				}
			}
			if id, ok := m.VertexAt(center); ok && !onCell[id] && !seen[id] {
				seen[id] = true
				weights := make([]float64, len(fv))
				for n := range weights {
					weights[n] = 1.0 / float64(len(fv))
				}
				hanging = append(hanging, HangingVertex{
					Vertex:  id,
					Targets: targets,
					Weights: weights,
				})
			}
		}
	}
	return hanging
}

// IsBoundaryVertex reports whether vertex v lies on the unit hypercube
// boundary.
func (m *Mesh) IsBoundaryVertex(v int) bool {
	const tol = 1e-12
	p := m.Vertices[v]
	for d := 0; d < m.Dim; d++ {
		if math.Abs(p[d]) < tol || math.Abs(p[d]-1) < tol {
			return true
		}
	}
	return false
}

// BoundaryID returns the boundary indicator of a boundary vertex. The
// whole hypercube boundary carries id 0.
func (m *Mesh) BoundaryID(v int) int {
	if !m.IsBoundaryVertex(v) {
		panic(fmt.Sprintf("grid: vertex %d is not on the boundary", v))
	}
	return 0
}

// NActiveCells returns the number of active cells.
func (m *Mesh) NActiveCells() int { return len(m.Cells) }

// Verify checks index validity and conservation properties: every cell
// references existing vertices with the right corner count, and every
// hanging vertex interpolates existing, non-hanging targets.
func (m *Mesh) Verify() error {
	nv := 1 << m.Dim
	for c, verts := range m.Cells {
		if len(verts) != nv {
			return fmt.Errorf("grid: cell %d has %d vertices, want %d", c, len(verts), nv)
		}
		for _, v := range verts {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("grid: cell %d references invalid vertex %d", c, v)
			}
		}
	}

	hanging := m.HangingVertices()
	isHanging := make(map[int]bool, len(hanging))
	for _, h := range hanging {
		isHanging[h.Vertex] = true
	}
	for _, h := range hanging {
		sum := 0.0
		for n, t := range h.Targets {
			if t < 0 || t >= len(m.Vertices) {
				return fmt.Errorf("grid: hanging vertex %d has invalid target %d", h.Vertex, t)
			}
			if isHanging[t] {
				return fmt.Errorf("grid: hanging vertex %d targets hanging vertex %d", h.Vertex, t)
			}
			sum += h.Weights[n]
		}
		if math.Abs(sum-1) > 1e-12 {
			return fmt.Errorf("grid: hanging vertex %d weights sum to %g, want 1", h.Vertex, sum)
		}
	}
	return nil
}

func midpoint(a, b [3]float64) [3]float64 {
	return [3]float64{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2, (a[2] + b[2]) / 2}
}
