package refcell

// Translation tables between this library's vertex/face numbering and the
// conventions of external mesh and visualization formats. Each table is a
// fixed permutation; indices are range-checked against the shape's vertex
// or face count, and unsupported (shape, format) pairs are declared gaps
// that panic at the point of misuse.

// VTK cell-type integer codes for linear, quadratic and arbitrary-order
// Lagrange geometries, bit-exact to the VTK specification.
const (
	vtkVertex = 1
	// Linear cells
	vtkLine       = 3
	vtkTriangle   = 5
	vtkQuad       = 9
	vtkTetra      = 10
	vtkHexahedron = 12
	vtkWedge      = 13
	vtkPyramid    = 14
	// Quadratic cells
	vtkQuadraticEdge       = 21
	vtkQuadraticTriangle   = 22
	vtkQuadraticQuad       = 23
	vtkQuadraticTetra      = 24
	vtkQuadraticHexahedron = 25
	vtkQuadraticWedge      = 26
	vtkQuadraticPyramid    = 27
	// Lagrange cells
	vtkLagrangeCurve         = 68
	vtkLagrangeTriangle      = 69
	vtkLagrangeQuadrilateral = 70
	vtkLagrangeTetrahedron   = 71
	vtkLagrangeHexahedron    = 72
	vtkLagrangeWedge         = 73
	vtkLagrangePyramid       = 74
)

// ExodusIIVertexToDealVertex translates an Exodus II vertex number into
// this library's vertex number for the shape.
func (t Type) ExodusIIVertexToDealVertex(vertexN int) int {
	assertIndexRange(vertexN, t.NVertices(), "vertex")

	switch t {
	case Line, Triangle, Tetrahedron:
		return vertexN
	case Quadrilateral:
		return [4]int{0, 1, 3, 2}[vertexN]
	case Hexahedron:
		return [8]int{0, 1, 3, 2, 4, 5, 7, 6}[vertexN]
	case Wedge:
		return [6]int{2, 1, 0, 5, 4, 3}[vertexN]
	case Pyramid:
		return [5]int{0, 1, 3, 2, 4}[vertexN]
	default:
		panic(notImplemented(t, "ExodusIIVertexToDealVertex"))
	}
}

// ExodusIIFaceToDealFace translates an Exodus II face number into this
// library's face number for the shape.
func (t Type) ExodusIIFaceToDealFace(faceN int) int {
	if t == Vertex {
		return 0
	}
	assertIndexRange(faceN, t.NFaces(), "face")

	switch t {
	case Line, Triangle:
		return faceN
	case Quadrilateral:
		return [4]int{2, 1, 3, 0}[faceN]
	case Tetrahedron:
		return [4]int{1, 3, 2, 0}[faceN]
	case Hexahedron:
		return [6]int{2, 1, 3, 0, 4, 5}[faceN]
	case Wedge:
		return [5]int{3, 4, 2, 0, 1}[faceN]
	case Pyramid:
		return [5]int{3, 2, 4, 1, 0}[faceN]
	default:
		panic(notImplemented(t, "ExodusIIFaceToDealFace"))
	}
}

// UNVVertexToDealVertex translates a UNV (section 2412) vertex number into
// this library's vertex number. The format documentation does not spell the
// numbering out; these tables reproduce the clockwise scheme observed in
// real UNV files. Only line, quadrilateral and hexahedron are supported.
func (t Type) UNVVertexToDealVertex(vertexN int) int {
	assertIndexRange(vertexN, t.NVertices(), "vertex")

	switch t {
	case Line:
		return vertexN
	case Quadrilateral:
		return [4]int{1, 0, 2, 3}[vertexN]
	case Hexahedron:
		return [8]int{6, 7, 5, 4, 2, 3, 1, 0}[vertexN]
	default:
		panic(notImplemented(t, "UNVVertexToDealVertex"))
	}
}

// VTKVertexToDealVertex translates a VTK vertex number into this library's
// vertex number. Several shapes share VTK's ordering and map by identity.
func (t Type) VTKVertexToDealVertex(vertexIndex int) int {
	assertIndexRange(vertexIndex, t.NVertices(), "vertex")

	switch t {
	case Vertex, Line, Triangle, Tetrahedron, Wedge:
		return vertexIndex
	case Quadrilateral:
		return [4]int{0, 1, 3, 2}[vertexIndex]
	case Pyramid:
		return [5]int{0, 1, 3, 2, 4}[vertexIndex]
	case Hexahedron:
		return [8]int{0, 1, 3, 2, 4, 5, 7, 6}[vertexIndex]
	default:
		panic(notImplemented(t, "VTKVertexToDealVertex"))
	}
}

// VTKLinearType returns the VTK cell-type code of the linear version of
// the shape. Invalid deliberately maps to InvalidIndex instead of failing.
func (t Type) VTKLinearType() int {
	switch t {
	case Vertex:
		return vtkVertex
	case Line:
		return vtkLine
	case Triangle:
		return vtkTriangle
	case Quadrilateral:
		return vtkQuad
	case Tetrahedron:
		return vtkTetra
	case Pyramid:
		return vtkPyramid
	case Wedge:
		return vtkWedge
	case Hexahedron:
		return vtkHexahedron
	case Invalid:
		return InvalidIndex
	default:
		panic(notImplemented(t, "VTKLinearType"))
	}
}

// VTKQuadraticType returns the VTK cell-type code of the quadratic version
// of the shape.
func (t Type) VTKQuadraticType() int {
	switch t {
	case Vertex:
		return vtkVertex
	case Line:
		return vtkQuadraticEdge
	case Triangle:
		return vtkQuadraticTriangle
	case Quadrilateral:
		return vtkQuadraticQuad
	case Tetrahedron:
		return vtkQuadraticTetra
	case Pyramid:
		return vtkQuadraticPyramid
	case Wedge:
		return vtkQuadraticWedge
	case Hexahedron:
		return vtkQuadraticHexahedron
	case Invalid:
		return InvalidIndex
	default:
		panic(notImplemented(t, "VTKQuadraticType"))
	}
}

// VTKLagrangeType returns the VTK cell-type code of the arbitrary-order
// Lagrange version of the shape.
func (t Type) VTKLagrangeType() int {
	switch t {
	case Vertex:
		return vtkVertex
	case Line:
		return vtkLagrangeCurve
	case Triangle:
		return vtkLagrangeTriangle
	case Quadrilateral:
		return vtkLagrangeQuadrilateral
	case Tetrahedron:
		return vtkLagrangeTetrahedron
	case Pyramid:
		return vtkLagrangePyramid
	case Wedge:
		return vtkLagrangeWedge
	case Hexahedron:
		return vtkLagrangeHexahedron
	case Invalid:
		return InvalidIndex
	default:
		panic(notImplemented(t, "VTKLagrangeType"))
	}
}

// GmshElementType returns the Gmsh legacy-format element type code.
func (t Type) GmshElementType() int {
	switch t {
	case Vertex:
		return 15
	case Line:
		return 1
	case Triangle:
		return 2
	case Quadrilateral:
		return 3
	case Tetrahedron:
		return 4
	case Hexahedron:
		return 5
	case Wedge:
		return 6
	case Pyramid:
		return 7
	default:
		panic(notImplemented(t, "GmshElementType"))
	}
}
