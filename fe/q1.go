// Package fe evaluates the multilinear (Q1) nodal basis on the hypercube
// reference cells. It is the minimal shape-function service the assembly
// scenario consumes; richer element families live outside this library.
package fe

import (
	"fmt"

	"github.com/notargets/FEMKernel/refcell"
)

// NDoFsPerCell returns the number of scalar Q1 basis functions of the
// shape, one per vertex.
func NDoFsPerCell(cell refcell.Type) int {
	if !cell.IsHyperCube() || cell.Dim() < 1 {
		panic(fmt.Sprintf("fe: Q1 basis not implemented for cell type %s", cell))
	}
	return cell.NVertices()
}

// Value evaluates basis function i at the reference point p. Basis i is
// the tensor-product hat function of vertex i in lexicographic numbering:
// bit d of i selects p[d] over 1-p[d] on axis d.
func Value(cell refcell.Type, i int, p [3]float64) float64 {
	n := NDoFsPerCell(cell)
	if i < 0 || i >= n {
		panic(fmt.Sprintf("fe: basis index %d out of range [0,%d)", i, n))
	}
	v := 1.0
	for d := 0; d < cell.Dim(); d++ {
		if i>>d&1 == 1 {
			v *= p[d]
		} else {
			v *= 1 - p[d]
		}
	}
	return v
}

// Grad evaluates the reference-space gradient of basis function i at p.
func Grad(cell refcell.Type, i int, p [3]float64) [3]float64 {
	n := NDoFsPerCell(cell)
	if i < 0 || i >= n {
		panic(fmt.Sprintf("fe: basis index %d out of range [0,%d)", i, n))
	}
	dim := cell.Dim()
	var grad [3]float64
	for g := 0; g < dim; g++ {
		v := 1.0
		for d := 0; d < dim; d++ {
			switch {
			case d == g && i>>d&1 == 1:
				// d/dp of p is 1
			case d == g:
				v = -v
			case i>>d&1 == 1:
				v *= p[d]
			default:
				v *= 1 - p[d]
			}
		}
		grad[g] = v
	}
	return grad
}
