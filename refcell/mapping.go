package refcell

import (
	"fmt"
	"math"
	"sync"
)

// Mapping transforms reference coordinates to real space for a cell given
// its vertex locations. All mappings here are point transformations; shape
// derivatives live with the finite element, not with the mapping.
type Mapping interface {
	// Degree is the polynomial degree of the transformation.
	Degree() int
	// TransformUnitToReal maps the reference point p onto the physical
	// cell spanned by vertices (one coordinate triple per cell vertex, in
	// the cell's vertex order).
	TransformUnitToReal(vertices [][3]float64, p [3]float64) [3]float64
}

// MappingQ is the tensor-product Lagrange mapping of hypercube cells. For
// straight-sided cells every degree reproduces the multilinear map, so the
// support points are placed multilinearly from the vertices.
type MappingQ struct {
	cell   Type
	degree int
}

func (m MappingQ) Degree() int { return m.degree }

func (m MappingQ) TransformUnitToReal(vertices [][3]float64, p [3]float64) [3]float64 {
	if len(vertices) != m.cell.NVertices() {
		panic(fmt.Sprintf("refcell: mapping got %d vertices, cell %s has %d",
			len(vertices), m.cell, m.cell.NVertices()))
	}
	dim := m.cell.Dim()
	var out [3]float64
	for v, coords := range vertices {
		w := 1.0
		for d := 0; d < dim; d++ {
			// lexicographic vertex numbering: bit d of v selects the axis-d end
			if v>>d&1 == 1 {
				w *= p[d]
			} else {
				w *= 1 - p[d]
			}
		}
		for d := 0; d < 3; d++ {
			out[d] += w * coords[d]
		}
	}
	return out
}

// MappingFE is the vertex-basis mapping of simplex, pyramid and wedge
// cells, the analogue of wrapping the degree-1 nodal element of the shape.
type MappingFE struct {
	cell   Type
	degree int
}

func (m MappingFE) Degree() int { return m.degree }

func (m MappingFE) TransformUnitToReal(vertices [][3]float64, p [3]float64) [3]float64 {
	if len(vertices) != m.cell.NVertices() {
		panic(fmt.Sprintf("refcell: mapping got %d vertices, cell %s has %d",
			len(vertices), m.cell, m.cell.NVertices()))
	}
	weights := m.cell.linearShapeValues(p)
	var out [3]float64
	for v, coords := range vertices {
		for d := 0; d < 3; d++ {
			out[d] += weights[v] * coords[d]
		}
	}
	return out
}

// linearShapeValues evaluates the degree-1 nodal basis of the shape at p.
func (t Type) linearShapeValues(p [3]float64) []float64 {
	switch t {
	case Line:
		return []float64{1 - p[0], p[0]}
	case Triangle:
		return []float64{1 - p[0] - p[1], p[0], p[1]}
	case Tetrahedron:
		return []float64{1 - p[0] - p[1] - p[2], p[0], p[1], p[2]}
	case Wedge:
		lambda := []float64{1 - p[0] - p[1], p[0], p[1]}
		return []float64{
			lambda[0] * (1 - p[2]), lambda[1] * (1 - p[2]), lambda[2] * (1 - p[2]),
			lambda[0] * p[2], lambda[1] * p[2], lambda[2] * p[2],
		}
	case Pyramid:
		// Rational basis on the [-1,1]^2 base; the apex column collapses
		// at z=1, where only the apex function survives.
		z := p[2]
		if math.Abs(1-z) < 1e-14 {
			return []float64{0, 0, 0, 0, 1}
		}
		r := p[0] / (1 - z)
		s := p[1] / (1 - z)
		q := (1 - z) / 4
		return []float64{
			q * (1 - r) * (1 - s),
			q * (1 + r) * (1 - s),
			q * (1 - r) * (1 + s),
			q * (1 + r) * (1 + s),
			z,
		}
	default:
		panic(notImplemented(t, "linearShapeValues"))
	}
}

// DefaultMapping returns the mapping the shape category calls for at the
// given polynomial degree. dim must equal the cell dimension; the check
// mirrors the compile-time dimension consistency the shape tables assume.
func (t Type) DefaultMapping(dim, degree int) Mapping {
	if dim != t.Dim() {
		panic(fmt.Sprintf("refcell: mapping dimension %d does not match cell %s dimension %d",
			dim, t, t.Dim()))
	}
	if degree < 1 {
		panic(fmt.Sprintf("refcell: invalid mapping degree %d", degree))
	}
	switch {
	case t.IsHyperCube():
		return MappingQ{cell: t, degree: degree}
	case t.IsSimplex():
		return MappingFE{cell: t, degree: degree}
	case t == Pyramid, t == Wedge:
		return MappingFE{cell: t, degree: degree}
	default:
		panic(notImplemented(t, "DefaultMapping"))
	}
}

// linearMappingCache holds the once-per-shape linear mapping singletons.
var linearMappingCache [Invalid]struct {
	once sync.Once
	m    Mapping
}

// DefaultLinearMapping returns the process-wide degree-1 mapping singleton
// for the shape. dim must equal the cell dimension.
func (t Type) DefaultLinearMapping(dim int) Mapping {
	if t == Invalid || int(t) >= len(linearMappingCache) {
		panic(notImplemented(t, "DefaultLinearMapping"))
	}
	if dim != t.Dim() {
		panic(fmt.Sprintf("refcell: mapping dimension %d does not match cell %s dimension %d",
			dim, t, t.Dim()))
	}
	entry := &linearMappingCache[t]
	entry.once.Do(func() {
		entry.m = t.DefaultMapping(dim, 1)
	})
	return entry.m
}
