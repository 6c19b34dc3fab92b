// Package dofs manages degree-of-freedom numbering for a vector-valued
// multilinear field on a grid mesh, and builds the hanging-node and
// boundary-value constraint data the assembly loop consumes.
package dofs

import (
	"fmt"

	"github.com/notargets/FEMKernel/constraints"
	"github.com/notargets/FEMKernel/grid"
)

// Numbering selects how vertex and component indices combine into a
// global DoF index.
type Numbering uint8

const (
	// VertexMajor interleaves components: dof = vertex*nComp + comp.
	VertexMajor Numbering = iota
	// ComponentMajor groups each component contiguously:
	// dof = comp*nVertices + vertex. This yields block-aligned systems.
	ComponentMajor
)

// Handler assigns one DoF per (vertex, component) pair of a mesh.
type Handler struct {
	Mesh        *grid.Mesh
	NComponents int
	Ordering    Numbering
}

// NewHandler distributes DoFs for an nComponents field over the mesh.
func NewHandler(mesh *grid.Mesh, nComponents int, ordering Numbering) (*Handler, error) {
	if nComponents < 1 {
		return nil, fmt.Errorf("dofs: need at least one component, got %d", nComponents)
	}
	return &Handler{Mesh: mesh, NComponents: nComponents, Ordering: ordering}, nil
}

// NDoFs returns the total number of degrees of freedom.
func (h *Handler) NDoFs() int { return len(h.Mesh.Vertices) * h.NComponents }

// DoFIndex returns the global DoF of (vertex, component).
func (h *Handler) DoFIndex(vertex, comp int) int {
	if h.Ordering == ComponentMajor {
		return comp*len(h.Mesh.Vertices) + vertex
	}
	return vertex*h.NComponents + comp
}

// DoFComponent returns the field component a global DoF belongs to.
func (h *Handler) DoFComponent(dof int) int {
	if h.Ordering == ComponentMajor {
		return dof / len(h.Mesh.Vertices)
	}
	return dof % h.NComponents
}

// CellDoFs returns the global DoF indices of cell c, ordered vertex-outer,
// component-inner. The local ordering is fixed regardless of the global
// numbering scheme.
func (h *Handler) CellDoFs(c int) []int {
	verts := h.Mesh.Cells[c]
	indices := make([]int, 0, len(verts)*h.NComponents)
	for _, v := range verts {
		for comp := 0; comp < h.NComponents; comp++ {
			indices = append(indices, h.DoFIndex(v, comp))
		}
	}
	return indices
}

// MakeHangingNodeConstraints adds one constraint line per hanging vertex
// and component, coupling it to the coarse neighbor DoFs. DoFs already
// constrained (e.g. by boundary values) keep their existing line.
func (h *Handler) MakeHangingNodeConstraints(ac *constraints.AffineConstraints) {
	for _, hv := range h.Mesh.HangingVertices() {
		for comp := 0; comp < h.NComponents; comp++ {
			dof := h.DoFIndex(hv.Vertex, comp)
			if ac.IsConstrained(dof) {
				continue
			}
			ac.AddLine(dof)
			for n, target := range hv.Targets {
				ac.AddEntry(dof, h.DoFIndex(target, comp), hv.Weights[n])
			}
		}
	}
}

// InterpolateBoundaryValues collects the Dirichlet values of all DoFs
// sitting on boundary vertices with the given boundary id. value receives
// the vertex location and component.
func (h *Handler) InterpolateBoundaryValues(
	boundaryID int, value func(p [3]float64, comp int) float64,
) map[int]float64 {
	values := make(map[int]float64)
	for v := range h.Mesh.Vertices {
		if !h.Mesh.IsBoundaryVertex(v) || h.Mesh.BoundaryID(v) != boundaryID {
			continue
		}
		for comp := 0; comp < h.NComponents; comp++ {
			values[h.DoFIndex(v, comp)] = value(h.Mesh.Vertices[v], comp)
		}
	}
	return values
}
