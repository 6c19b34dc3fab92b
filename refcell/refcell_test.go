package refcell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	expected := map[Type]string{
		Vertex:        "Vertex",
		Line:          "Line",
		Triangle:      "Tri",
		Quadrilateral: "Quad",
		Tetrahedron:   "Tet",
		Pyramid:       "Pyramid",
		Wedge:         "Wedge",
		Hexahedron:    "Hex",
		Invalid:       "Invalid",
	}
	for cell, name := range expected {
		assert.Equal(t, name, cell.String())
	}
}

func TestCounts(t *testing.T) {
	cases := []struct {
		cell                       Type
		dim, nVerts, nFaces, nEdge int
	}{
		{Vertex, 0, 1, 0, 0},
		{Line, 1, 2, 2, 1},
		{Triangle, 2, 3, 3, 3},
		{Quadrilateral, 2, 4, 4, 4},
		{Tetrahedron, 3, 4, 4, 6},
		{Pyramid, 3, 5, 5, 8},
		{Wedge, 3, 6, 5, 9},
		{Hexahedron, 3, 8, 6, 12},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.dim, tc.cell.Dim(), "%s dim", tc.cell)
		assert.Equal(t, tc.nVerts, tc.cell.NVertices(), "%s vertices", tc.cell)
		assert.Equal(t, tc.nFaces, tc.cell.NFaces(), "%s faces", tc.cell)
		assert.Equal(t, tc.nEdge, tc.cell.NEdges(), "%s edges", tc.cell)
	}
}

func TestCategories(t *testing.T) {
	for _, cell := range []Type{Vertex, Line, Quadrilateral, Hexahedron} {
		assert.True(t, cell.IsHyperCube(), "%s", cell)
	}
	for _, cell := range []Type{Vertex, Line, Triangle, Tetrahedron} {
		assert.True(t, cell.IsSimplex(), "%s", cell)
	}
	assert.False(t, Pyramid.IsHyperCube())
	assert.False(t, Pyramid.IsSimplex())
	assert.False(t, Wedge.IsHyperCube())
	assert.False(t, Wedge.IsSimplex())
}

// isPermutation checks that perm is a bijection of [0, n).
func isPermutation(perm []int, n int) bool {
	if len(perm) != n {
		return false
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

func TestVertexPermutationTables(t *testing.T) {
	for _, cell := range []Type{Line, Triangle, Quadrilateral} {
		n := cell.NVertices()
		for o := 0; o < cell.NVertexPermutations(); o++ {
			perm := cell.VertexPermutation(o)
			assert.True(t, isPermutation(perm, n), "%s orientation %d", cell, o)
		}
		// orientation 1 is the default (identity) orientation
		identity := cell.VertexPermutation(1)
		for v := 0; v < n; v++ {
			assert.Equal(t, v, identity[v], "%s identity", cell)
		}
	}
}

func TestFaceAndEdgeTables(t *testing.T) {
	for _, cell := range []Type{Line, Triangle, Quadrilateral, Tetrahedron, Pyramid, Wedge, Hexahedron} {
		for f := 0; f < cell.NFaces(); f++ {
			for _, v := range cell.FaceVertices(f) {
				assert.Less(t, v, cell.NVertices(), "%s face %d", cell, f)
			}
		}
		for e := 0; e < cell.NEdges(); e++ {
			ev := cell.EdgeVertices(e)
			assert.Less(t, ev[0], cell.NVertices())
			assert.Less(t, ev[1], cell.NVertices())
			assert.NotEqual(t, ev[0], ev[1], "%s edge %d is degenerate", cell, e)
		}
	}
}

func TestVertexCoordinates(t *testing.T) {
	// hypercube vertices are lexicographic on the unit cube
	for v := 0; v < 8; v++ {
		p := Hexahedron.Vertex(v)
		for d := 0; d < 3; d++ {
			want := 0.0
			if v>>d&1 == 1 {
				want = 1.0
			}
			assert.Equal(t, want, p[d])
		}
	}
	assert.Panics(t, func() { Hexahedron.Vertex(8) })
	assert.Panics(t, func() { Triangle.Vertex(-1) })
}

func TestNodalTypeQuadrature(t *testing.T) {
	for _, cell := range []Type{Line, Triangle, Quadrilateral, Tetrahedron, Pyramid, Wedge, Hexahedron} {
		rule := cell.NodalTypeQuadrature()
		require.Equal(t, cell.NVertices(), rule.Len(), "%s", cell)
		for v := 0; v < cell.NVertices(); v++ {
			assert.Equal(t, cell.Vertex(v), rule.Points[v], "%s vertex %d", cell, v)
			assert.Equal(t, 1.0, rule.Weights[v])
		}
	}
	// cached once per shape
	first := Hexahedron.NodalTypeQuadrature()
	second := Hexahedron.NodalTypeQuadrature()
	assert.Same(t, &first.Points[0], &second.Points[0])

	assert.Panics(t, func() { Invalid.NodalTypeQuadrature() })
}

func TestGaussTypeQuadrature(t *testing.T) {
	for _, cell := range []Type{Line, Triangle, Quadrilateral, Tetrahedron, Pyramid, Wedge, Hexahedron} {
		rule := cell.GaussTypeQuadrature(3)
		sum := 0.0
		for _, w := range rule.Weights {
			sum += w
		}
		assert.InDelta(t, cell.Measure(), sum, 1e-12, "%s weight sum", cell)
	}
	assert.Panics(t, func() { Invalid.GaussTypeQuadrature(2) })
}

func TestDefaultMapping(t *testing.T) {
	for _, cell := range []Type{Line, Triangle, Quadrilateral, Tetrahedron, Pyramid, Wedge, Hexahedron} {
		m := cell.DefaultMapping(cell.Dim(), 1)
		require.NotNil(t, m)
		assert.Equal(t, 1, m.Degree())

		// mapping the reference cell onto itself reproduces every vertex
		vertices := make([][3]float64, cell.NVertices())
		for v := range vertices {
			vertices[v] = cell.Vertex(v)
		}
		for v := range vertices {
			got := m.TransformUnitToReal(vertices, cell.Vertex(v))
			for d := 0; d < 3; d++ {
				assert.InDelta(t, vertices[v][d], got[d], 1e-13,
					"%s vertex %d coordinate %d", cell, v, d)
			}
		}
	}

	assert.Panics(t, func() { Hexahedron.DefaultMapping(2, 1) })
	assert.Panics(t, func() { Triangle.DefaultMapping(2, 0) })
}

func TestDefaultLinearMapping(t *testing.T) {
	m1 := Quadrilateral.DefaultLinearMapping(2)
	m2 := Quadrilateral.DefaultLinearMapping(2)
	assert.Equal(t, m1, m2)
	assert.Equal(t, 1, m1.Degree())

	assert.Panics(t, func() { Quadrilateral.DefaultLinearMapping(3) })
	assert.Panics(t, func() { Invalid.DefaultLinearMapping(3) })
}

func TestMappingInteriorPoint(t *testing.T) {
	// a scaled and shifted box maps affinely
	m := Quadrilateral.DefaultMapping(2, 1)
	vertices := [][3]float64{{1, 1, 0}, {3, 1, 0}, {1, 2, 0}, {3, 2, 0}}
	got := m.TransformUnitToReal(vertices, [3]float64{0.5, 0.5, 0})
	assert.InDelta(t, 2.0, got[0], 1e-14)
	assert.InDelta(t, 1.5, got[1], 1e-14)
}

func TestPyramidMappingApex(t *testing.T) {
	m := Pyramid.DefaultMapping(3, 1)
	vertices := make([][3]float64, 5)
	for v := range vertices {
		vertices[v] = Pyramid.Vertex(v)
	}
	apex := m.TransformUnitToReal(vertices, [3]float64{0, 0, 1})
	assert.InDelta(t, 0.0, apex[0], 1e-14)
	assert.InDelta(t, 0.0, apex[1], 1e-14)
	assert.InDelta(t, 1.0, apex[2], 1e-14)

	// the rational base functions stay a partition of unity midway up
	mid := m.TransformUnitToReal(vertices, [3]float64{0, 0, 0.5})
	assert.False(t, math.IsNaN(mid[0]))
	assert.InDelta(t, 0.5, mid[2], 1e-14)
}
