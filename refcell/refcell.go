// Package refcell describes the canonical reference shapes a physical mesh
// cell is mapped from, together with their topology, their orientation
// permutation tables, and the numbering translation tables for external
// mesh and visualization formats (VTK, Exodus II, UNV, Gmsh).
package refcell

import "fmt"

// Type identifies a reference cell shape. It is a tagged value, not a class
// hierarchy: assembly inner loops query shape topology through dense table
// lookups keyed by the tag, which keeps the hot path free of indirect calls.
type Type uint8

const (
	Vertex        Type = iota // 0D point
	Line                      // 1D segment [0,1]
	Triangle                  // 2D simplex
	Quadrilateral             // 2D hypercube [0,1]^2
	Tetrahedron               // 3D simplex
	Pyramid                   // square-based pyramid
	Wedge                     // triangular prism
	Hexahedron                // 3D hypercube [0,1]^3
	Invalid                   // explicit invalid marker
)

// InvalidIndex is the numeric sentinel returned by the one documented
// unreachable-in-practice default branch (the VTK code of Invalid).
const InvalidIndex = -1

// All enumerates the valid shapes, Invalid included.
var All = []Type{
	Vertex, Line, Triangle, Quadrilateral,
	Tetrahedron, Pyramid, Wedge, Hexahedron, Invalid,
}

// String returns the canonical short name of the shape.
func (t Type) String() string {
	switch t {
	case Vertex:
		return "Vertex"
	case Line:
		return "Line"
	case Triangle:
		return "Tri"
	case Quadrilateral:
		return "Quad"
	case Tetrahedron:
		return "Tet"
	case Pyramid:
		return "Pyramid"
	case Wedge:
		return "Wedge"
	case Hexahedron:
		return "Hex"
	case Invalid:
		return "Invalid"
	default:
		panic(notImplemented(t, "String"))
	}
}

// Dim returns the spatial dimension of the shape.
func (t Type) Dim() int {
	switch t {
	case Vertex:
		return 0
	case Line:
		return 1
	case Triangle, Quadrilateral:
		return 2
	case Tetrahedron, Pyramid, Wedge, Hexahedron:
		return 3
	default:
		panic(notImplemented(t, "Dim"))
	}
}

// NVertices returns the number of vertices of the shape.
func (t Type) NVertices() int {
	switch t {
	case Vertex:
		return 1
	case Line:
		return 2
	case Triangle:
		return 3
	case Quadrilateral, Tetrahedron:
		return 4
	case Pyramid:
		return 5
	case Wedge:
		return 6
	case Hexahedron:
		return 8
	default:
		panic(notImplemented(t, "NVertices"))
	}
}

// NFaces returns the number of (dim-1)-dimensional faces of the shape.
func (t Type) NFaces() int {
	switch t {
	case Vertex:
		return 0
	case Line:
		return 2
	case Triangle:
		return 3
	case Quadrilateral, Tetrahedron:
		return 4
	case Pyramid, Wedge:
		return 5
	case Hexahedron:
		return 6
	default:
		panic(notImplemented(t, "NFaces"))
	}
}

// NEdges returns the number of 1-dimensional edges. For 2D shapes edges and
// faces coincide; for Line the single edge is the cell itself.
func (t Type) NEdges() int {
	switch t {
	case Vertex:
		return 0
	case Line:
		return 1
	case Triangle:
		return 3
	case Quadrilateral:
		return 4
	case Tetrahedron:
		return 6
	case Pyramid:
		return 8
	case Wedge:
		return 9
	case Hexahedron:
		return 12
	default:
		panic(notImplemented(t, "NEdges"))
	}
}

// IsHyperCube reports whether the shape is a tensor-product cell.
func (t Type) IsHyperCube() bool {
	return t == Vertex || t == Line || t == Quadrilateral || t == Hexahedron
}

// IsSimplex reports whether the shape is a simplex.
func (t Type) IsSimplex() bool {
	return t == Vertex || t == Line || t == Triangle || t == Tetrahedron
}

// Measure returns the volume (area, length) of the reference shape.
func (t Type) Measure() float64 {
	switch t {
	case Vertex:
		return 0
	case Line, Quadrilateral, Hexahedron:
		return 1
	case Triangle, Wedge:
		return 0.5
	case Tetrahedron:
		return 1.0 / 6.0
	case Pyramid:
		return 4.0 / 3.0
	default:
		panic(notImplemented(t, "Measure"))
	}
}

// referenceVertices holds the reference-space coordinates per shape. The
// hypercube shapes use the unit cube with lexicographic vertex numbering;
// the pyramid base spans [-1,1]^2 at height 0 with the apex at (0,0,1).
var referenceVertices = map[Type][][3]float64{
	Vertex: {{0, 0, 0}},
	Line:   {{0, 0, 0}, {1, 0, 0}},
	Triangle: {
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
	},
	Quadrilateral: {
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	},
	Tetrahedron: {
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	},
	Pyramid: {
		{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}, {1, 1, 0}, {0, 0, 1},
	},
	Wedge: {
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
	},
	Hexahedron: {
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	},
}

// Vertex returns the reference coordinates of vertex v. The third
// coordinate is zero for shapes of dimension below three.
func (t Type) Vertex(v int) [3]float64 {
	verts, ok := referenceVertices[t]
	if !ok {
		panic(notImplemented(t, "Vertex"))
	}
	assertIndexRange(v, len(verts), "vertex")
	return verts[v]
}

// faceVertices lists, per shape, the cell-local vertex numbers of each face.
var faceVertices = map[Type][][]int{
	Line:          {{0}, {1}},
	Triangle:      {{0, 1}, {1, 2}, {2, 0}},
	Quadrilateral: {{0, 2}, {1, 3}, {0, 1}, {2, 3}},
	Tetrahedron:   {{0, 1, 2}, {1, 0, 3}, {0, 2, 3}, {2, 1, 3}},
	Pyramid: {
		{0, 1, 2, 3}, {0, 2, 4}, {3, 1, 4}, {1, 0, 4}, {2, 3, 4},
	},
	Wedge: {
		{1, 0, 2}, {3, 4, 5}, {0, 1, 3, 4}, {1, 2, 4, 5}, {2, 0, 5, 3},
	},
	Hexahedron: {
		{0, 2, 4, 6}, {1, 3, 5, 7}, {0, 1, 4, 5},
		{2, 3, 6, 7}, {0, 1, 2, 3}, {4, 5, 6, 7},
	},
}

// FaceVertices returns the cell-local vertex numbers of face f.
func (t Type) FaceVertices(f int) []int {
	faces, ok := faceVertices[t]
	if !ok {
		panic(notImplemented(t, "FaceVertices"))
	}
	assertIndexRange(f, len(faces), "face")
	return faces[f]
}

// edgeVertices lists, per shape, the endpoint vertex numbers of each edge.
var edgeVertices = map[Type][][2]int{
	Line:          {{0, 1}},
	Triangle:      {{0, 1}, {1, 2}, {2, 0}},
	Quadrilateral: {{0, 2}, {1, 3}, {0, 1}, {2, 3}},
	Tetrahedron:   {{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}},
	Pyramid: {
		{0, 1}, {1, 3}, {3, 2}, {2, 0},
		{0, 4}, {1, 4}, {2, 4}, {3, 4},
	},
	Wedge: {
		{0, 1}, {1, 2}, {2, 0},
		{3, 4}, {4, 5}, {5, 3},
		{0, 3}, {1, 4}, {2, 5},
	},
	Hexahedron: {
		{0, 1}, {2, 3}, {4, 5}, {6, 7},
		{0, 2}, {1, 3}, {4, 6}, {5, 7},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	},
}

// EdgeVertices returns the endpoint vertex numbers of edge e.
func (t Type) EdgeVertices(e int) [2]int {
	edges, ok := edgeVertices[t]
	if !ok {
		panic(notImplemented(t, "EdgeVertices"))
	}
	assertIndexRange(e, len(edges), "edge")
	return edges[e]
}

// Vertex permutation tables for face orientation logic. Index o encodes the
// combined orientation: o>>1 is the rotation count and o&1 set means the
// non-reflected copy, so index 1 is the identity.
var (
	LineVertexPermutations = [2][2]int{
		{1, 0},
		{0, 1},
	}
	TriangleVertexPermutations = [6][3]int{
		{0, 2, 1},
		{0, 1, 2},
		{2, 1, 0},
		{1, 2, 0},
		{1, 0, 2},
		{2, 0, 1},
	}
	QuadrilateralVertexPermutations = [8][4]int{
		{0, 2, 1, 3},
		{0, 1, 2, 3},
		{2, 3, 0, 1},
		{1, 3, 0, 2},
		{3, 1, 2, 0},
		{3, 2, 1, 0},
		{1, 0, 3, 2},
		{2, 0, 3, 1},
	}
)

// NVertexPermutations returns how many orientations a face of this shape
// admits, i.e. the number of rows of its vertex permutation table.
func (t Type) NVertexPermutations() int {
	switch t {
	case Line:
		return 2
	case Triangle:
		return 6
	case Quadrilateral:
		return 8
	default:
		panic(notImplemented(t, "NVertexPermutations"))
	}
}

// VertexPermutation returns the vertex permutation for orientation o.
func (t Type) VertexPermutation(o int) []int {
	switch t {
	case Line:
		assertIndexRange(o, len(LineVertexPermutations), "orientation")
		p := LineVertexPermutations[o]
		return p[:]
	case Triangle:
		assertIndexRange(o, len(TriangleVertexPermutations), "orientation")
		p := TriangleVertexPermutations[o]
		return p[:]
	case Quadrilateral:
		assertIndexRange(o, len(QuadrilateralVertexPermutations), "orientation")
		p := QuadrilateralVertexPermutations[o]
		return p[:]
	default:
		panic(notImplemented(t, "VertexPermutation"))
	}
}

// notImplemented builds the panic value for a declared (shape, operation)
// gap. These are caller bugs, not recoverable conditions.
func notImplemented(t Type, op string) string {
	return fmt.Sprintf("refcell: %s not implemented for cell type %d", op, uint8(t))
}

// assertIndexRange panics when idx is outside [0, n).
func assertIndexRange(idx, n int, what string) {
	if idx < 0 || idx >= n {
		panic(fmt.Sprintf("refcell: %s index %d out of range [0,%d)", what, idx, n))
	}
}
