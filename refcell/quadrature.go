package refcell

import (
	"sync"

	"github.com/notargets/FEMKernel/quadrature"
)

// GaussTypeQuadrature returns the Gauss-type rule for the shape with
// nPoints1D points per direction: tensor-product Gauss for hypercubes, a
// collapsed rule for simplices, the conical rule for the pyramid and the
// triangle-line product for the wedge.
func (t Type) GaussTypeQuadrature(nPoints1D int) quadrature.Rule {
	switch {
	case t.IsHyperCube() && t.Dim() >= 1:
		return quadrature.GaussHyperCube(t.Dim(), nPoints1D)
	case t.IsSimplex() && t.Dim() >= 1:
		return quadrature.GaussSimplex(t.Dim(), nPoints1D)
	case t == Pyramid:
		return quadrature.GaussPyramid(nPoints1D)
	case t == Wedge:
		return quadrature.GaussWedge(nPoints1D)
	default:
		panic(notImplemented(t, "GaussTypeQuadrature"))
	}
}

// nodalQuadratureCache holds the once-per-shape nodal rules. First
// construction is synchronized; later reads are lock-free through the Once.
var nodalQuadratureCache [Invalid]struct {
	once sync.Once
	rule quadrature.Rule
}

// NodalTypeQuadrature returns the rule whose points are exactly the
// shape's vertices with unit weights, built lazily once per shape for the
// process lifetime. It serves nodal interpolation, not integration.
func (t Type) NodalTypeQuadrature() quadrature.Rule {
	if t == Invalid || int(t) >= len(nodalQuadratureCache) {
		panic(notImplemented(t, "NodalTypeQuadrature"))
	}
	entry := &nodalQuadratureCache[t]
	entry.once.Do(func() {
		points := make([][3]float64, t.NVertices())
		for v := range points {
			points[v] = t.Vertex(v)
		}
		entry.rule = quadrature.Nodal(points)
	})
	return entry.rule
}
