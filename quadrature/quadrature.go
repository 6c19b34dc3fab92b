// Package quadrature provides Gauss-type integration rules on the
// reference shapes: tensor-product Gauss for hypercubes, collapsed
// (Duffy) rules for simplices, a conical rule for the pyramid and a
// triangle-line product for the wedge.
package quadrature

import "fmt"

// Rule is an immutable set of integration points and weights in reference
// coordinates. Unused trailing coordinates are zero for rules of dimension
// below three.
type Rule struct {
	Points  [][3]float64
	Weights []float64
}

// Len returns the number of quadrature points.
func (r Rule) Len() int { return len(r.Points) }

// Gauss1D returns the n-point Gauss-Legendre rule on [0,1].
func Gauss1D(n int) Rule {
	if n < 1 {
		panic(fmt.Sprintf("quadrature: need at least one point, got %d", n))
	}
	x, w := JacobiGQ(0, 0, n-1)
	rule := Rule{
		Points:  make([][3]float64, n),
		Weights: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		rule.Points[i] = [3]float64{(x[i] + 1) / 2, 0, 0}
		rule.Weights[i] = w[i] / 2
	}
	return rule
}

// GaussHyperCube returns the tensor-product Gauss rule with n points per
// direction on the unit hypercube of the given dimension.
func GaussHyperCube(dim, n int) Rule {
	line := Gauss1D(n)
	switch dim {
	case 1:
		return line
	case 2:
		return product2(line, line, 1)
	case 3:
		return product3(line, line, line)
	default:
		panic(fmt.Sprintf("quadrature: unsupported hypercube dimension %d", dim))
	}
}

// GaussSimplex returns a collapsed-coordinate Gauss rule with n points per
// direction on the unit simplex of the given dimension. The rule is built
// by the Duffy transform from the unit hypercube, so the point count is
// n^dim and the rule integrates the transformed tensor basis exactly.
func GaussSimplex(dim, n int) Rule {
	line := Gauss1D(n)
	switch dim {
	case 1:
		return line
	case 2:
		rule := Rule{}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				xi, eta := line.Points[a][0], line.Points[b][0]
				rule.Points = append(rule.Points, [3]float64{xi, eta * (1 - xi), 0})
				rule.Weights = append(rule.Weights,
					line.Weights[a]*line.Weights[b]*(1-xi))
			}
		}
		return rule
	case 3:
		rule := Rule{}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				for c := 0; c < n; c++ {
					xi, eta, zeta := line.Points[a][0], line.Points[b][0], line.Points[c][0]
					x := xi
					y := eta * (1 - xi)
					z := zeta * (1 - xi) * (1 - eta)
					jac := (1 - xi) * (1 - xi) * (1 - eta)
					rule.Points = append(rule.Points, [3]float64{x, y, z})
					rule.Weights = append(rule.Weights,
						line.Weights[a]*line.Weights[b]*line.Weights[c]*jac)
				}
			}
		}
		return rule
	default:
		panic(fmt.Sprintf("quadrature: unsupported simplex dimension %d", dim))
	}
}

// GaussPyramid returns the conical-product Gauss rule with n points per
// direction on the reference pyramid (base [-1,1]^2 at height 0, apex at
// (0,0,1)). The vertical direction uses Gauss-Jacobi points with alpha=2
// to absorb the (1-z)^2 volume factor of the collapsing cross-section.
func GaussPyramid(n int) Rule {
	if n < 1 {
		panic(fmt.Sprintf("quadrature: need at least one point, got %d", n))
	}
	gx, wx := JacobiGQ(0, 0, n-1)
	gz, wz := JacobiGQ(2, 0, n-1)

	rule := Rule{}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				z := (gz[c] + 1) / 2
				x := gx[a] * (1 - z)
				y := gx[b] * (1 - z)
				// The Jacobi weight already carries (1-gz)^2; rescaling to
				// [0,1] contributes 1/2 for dz and 1/4 for the squared factor.
				w := wx[a] * wx[b] * wz[c] / 8
				rule.Points = append(rule.Points, [3]float64{x, y, z})
				rule.Weights = append(rule.Weights, w)
			}
		}
	}
	return rule
}

// GaussWedge returns the product of a collapsed triangle rule and a 1D
// Gauss rule on the reference wedge (unit triangle times [0,1]).
func GaussWedge(n int) Rule {
	tri := GaussSimplex(2, n)
	line := Gauss1D(n)
	return product2(tri, line, 2)
}

// Nodal returns a rule whose points are exactly the given locations with
// unit weights. It is meant for nodal interpolation, not integration.
func Nodal(points [][3]float64) Rule {
	rule := Rule{
		Points:  make([][3]float64, len(points)),
		Weights: make([]float64, len(points)),
	}
	copy(rule.Points, points)
	for i := range rule.Weights {
		rule.Weights[i] = 1
	}
	return rule
}

// product2 combines rule a with 1D rule b, placing b's coordinate on
// axis axisB.
func product2(a, b Rule, axisB int) Rule {
	rule := Rule{}
	for i := range a.Points {
		for j := range b.Points {
			p := a.Points[i]
			p[axisB] = b.Points[j][0]
			rule.Points = append(rule.Points, p)
			rule.Weights = append(rule.Weights, a.Weights[i]*b.Weights[j])
		}
	}
	return rule
}

func product3(a, b, c Rule) Rule {
	plane := product2(a, b, 1)
	return product2(plane, c, 2)
}
