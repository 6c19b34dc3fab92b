package grid

import (
	"testing"

	"github.com/notargets/FEMKernel/refcell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHyperCube2D(t *testing.T) {
	m, err := HyperCube(2, 4)
	require.NoError(t, err)
	assert.Equal(t, refcell.Quadrilateral, m.Cell)
	assert.Equal(t, 2, m.Dim)
	assert.Equal(t, 16, m.NActiveCells())
	assert.Len(t, m.Vertices, 25)
	require.NoError(t, m.Verify())

	// corner order is lexicographic
	first := m.Cells[0]
	assert.Equal(t, [3]float64{0, 0, 0}, m.Vertices[first[0]])
	assert.Equal(t, [3]float64{0.25, 0, 0}, m.Vertices[first[1]])
	assert.Equal(t, [3]float64{0, 0.25, 0}, m.Vertices[first[2]])
	assert.Equal(t, [3]float64{0.25, 0.25, 0}, m.Vertices[first[3]])

	// shared vertices are deduplicated
	id, ok := m.VertexAt([3]float64{0.25, 0, 0})
	require.True(t, ok)
	assert.Equal(t, first[1], id)
	_, ok = m.VertexAt([3]float64{0.1, 0, 0})
	assert.False(t, ok)
}

func TestHyperCube3D(t *testing.T) {
	m, err := HyperCube(3, 2)
	require.NoError(t, err)
	assert.Equal(t, refcell.Hexahedron, m.Cell)
	assert.Equal(t, 8, m.NActiveCells())
	assert.Len(t, m.Vertices, 27)
	require.NoError(t, m.Verify())
}

func TestHyperCubeValidation(t *testing.T) {
	_, err := HyperCube(1, 2)
	assert.Error(t, err)
	_, err = HyperCube(4, 2)
	assert.Error(t, err)
	_, err = HyperCube(2, 0)
	assert.Error(t, err)
}

func TestRefineCells(t *testing.T) {
	m, err := HyperCube(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.RefineCells([]int{0}))

	// one cell replaced by four children
	assert.Equal(t, 7, m.NActiveCells())
	// children add the interior lattice of the refined cell
	assert.Len(t, m.Vertices, 14)
	require.NoError(t, m.Verify())

	// children cover the refined cell's quadrants
	id, ok := m.VertexAt([3]float64{0.25, 0.25, 0})
	require.True(t, ok)
	assert.Contains(t, m.Cells[0], id)

	assert.Error(t, m.RefineCells([]int{99}))
	assert.Error(t, m.RefineCells([]int{-1}))
}

func TestHangingVertices2D(t *testing.T) {
	m, err := HyperCube(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.RefineCells([]int{0}))

	hanging := m.HangingVertices()
	require.Len(t, hanging, 2)

	byCoord := map[[3]float64]HangingVertex{}
	for _, h := range hanging {
		byCoord[m.Vertices[h.Vertex]] = h
	}
	for _, want := range [][3]float64{{0.5, 0.25, 0}, {0.25, 0.5, 0}} {
		h, ok := byCoord[want]
		require.True(t, ok, "expected hanging vertex at %v", want)
		require.Len(t, h.Targets, 2)
		assert.Equal(t, []float64{0.5, 0.5}, h.Weights)

		// targets are the coarse edge endpoints
		a := m.Vertices[h.Targets[0]]
		b := m.Vertices[h.Targets[1]]
		for d := 0; d < 3; d++ {
			assert.InDelta(t, want[d], (a[d]+b[d])/2, 1e-15)
		}
	}
	require.NoError(t, m.Verify())
}

func TestHangingVertices3D(t *testing.T) {
	m, err := HyperCube(3, 2)
	require.NoError(t, err)
	require.NoError(t, m.RefineCells([]int{0}))

	hanging := m.HangingVertices()
	// per refined corner cell: 9 edge midpoints and 3 face centers
	require.Len(t, hanging, 12)

	edges, faces := 0, 0
	for _, h := range hanging {
		switch len(h.Targets) {
		case 2:
			edges++
			assert.Equal(t, []float64{0.5, 0.5}, h.Weights)
		case 4:
			faces++
			assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, h.Weights)
		default:
			t.Fatalf("hanging vertex with %d targets", len(h.Targets))
		}
	}
	assert.Equal(t, 9, edges)
	assert.Equal(t, 3, faces)
	require.NoError(t, m.Verify())

	// the three face centers sit on the interior faces of the refined cell
	for _, want := range [][3]float64{
		{0.5, 0.25, 0.25}, {0.25, 0.5, 0.25}, {0.25, 0.25, 0.5},
	} {
		id, ok := m.VertexAt(want)
		require.True(t, ok)
		found := false
		for _, h := range hanging {
			if h.Vertex == id {
				found = true
				assert.Len(t, h.Targets, 4)
			}
		}
		assert.True(t, found, "face center %v not detected", want)
	}
}

func TestHangingVerticesConformingMesh(t *testing.T) {
	m, err := HyperCube(2, 3)
	require.NoError(t, err)
	assert.Empty(t, m.HangingVertices())

	// refining everything uniformly keeps the mesh conforming
	all := make([]int, m.NActiveCells())
	for i := range all {
		all[i] = i
	}
	require.NoError(t, m.RefineCells(all))
	assert.Empty(t, m.HangingVertices())
}

func TestBoundaryQueries(t *testing.T) {
	m, err := HyperCube(2, 2)
	require.NoError(t, err)

	origin, ok := m.VertexAt([3]float64{0, 0, 0})
	require.True(t, ok)
	center, ok := m.VertexAt([3]float64{0.5, 0.5, 0})
	require.True(t, ok)
	edge, ok := m.VertexAt([3]float64{0.5, 1, 0})
	require.True(t, ok)

	assert.True(t, m.IsBoundaryVertex(origin))
	assert.True(t, m.IsBoundaryVertex(edge))
	assert.False(t, m.IsBoundaryVertex(center))

	assert.Equal(t, 0, m.BoundaryID(origin))
	assert.Panics(t, func() { m.BoundaryID(center) })
}
