package constraints

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SparseMatrix is the substrate the constraint application operations need
// from a global system matrix: random access reads and writes plus
// iteration over stored entries. The DOK type of
// github.com/james-bowman/sparse satisfies it directly, as does the block
// matrix in this package.
type SparseMatrix interface {
	Dims() (r, c int)
	At(i, j int) float64
	Set(i, j int, v float64)
	DoNonZero(fn func(i, j int, v float64))
}

// selfTarget is the single-entry resolution of an unconstrained DoF.
func selfTarget(dof int) []Entry {
	return []Entry{{Index: dof, Coefficient: 1}}
}

// resolve returns the target list of dof: its own index with unit weight
// when unconstrained, its constraint entries otherwise.
func (ac *AffineConstraints) resolve(dof int) []Entry {
	if ln, ok := ac.lines[dof]; ok {
		return ln.entries
	}
	return selfTarget(dof)
}

// Condense eliminates the constrained rows and columns of a fully
// assembled system that ignored constraints during assembly. Every entry
// A(i,j) is redistributed onto the constraint targets of i and j weighted
// by the constraint coefficients, and the right-hand side absorbs both the
// redistributed loads and the inhomogeneity corrections, so that the
// result equals C^T A C and C^T (b - A g) on the unconstrained rows.
//
// Constrained rows are cleared to the convention (diagonal 1, right-hand
// side equal to the inhomogeneity), so a direct solve returns the Dirichlet
// values and Distribute finishes the hanging nodes.
func (ac *AffineConstraints) Condense(a SparseMatrix, b []float64) {
	ac.assertClosed("Condense")
	rows, cols := a.Dims()
	if rows != cols {
		panic(fmt.Sprintf("constraints: cannot condense non-square %dx%d matrix", rows, cols))
	}
	if len(b) != rows {
		panic(fmt.Sprintf("constraints: vector length %d does not match matrix size %d", len(b), rows))
	}
	if len(ac.lines) == 0 {
		return
	}

	// Snapshot the constrained entries so redistribution reads original
	// values while writing into the same storage.
	type triplet struct {
		i, j int
		v    float64
	}
	var touched []triplet
	a.DoNonZero(func(i, j int, v float64) {
		if ac.IsConstrained(i) || ac.IsConstrained(j) {
			touched = append(touched, triplet{i, j, v})
		}
	})

	// Redistribute the right-hand side of constrained rows first, using
	// the pre-condensation loads.
	for dof, ln := range ac.lines {
		for _, e := range ln.entries {
			b[e.Index] += e.Coefficient * b[dof]
		}
	}

	for _, t := range touched {
		a.Set(t.i, t.j, 0)
	}
	for _, t := range touched {
		rowTargets := ac.resolve(t.i)
		colTargets := ac.resolve(t.j)
		for _, rt := range rowTargets {
			for _, ct := range colTargets {
				a.Set(rt.Index, ct.Index,
					a.At(rt.Index, ct.Index)+rt.Coefficient*t.v*ct.Coefficient)
			}
			// Inhomogeneity of a constrained column moves to the load.
			if ln, ok := ac.lines[t.j]; ok && ln.inhomogeneity != 0 {
				b[rt.Index] -= rt.Coefficient * t.v * ln.inhomogeneity
			}
		}
	}

	// Constrained-row convention.
	for dof, ln := range ac.lines {
		a.Set(dof, dof, 1)
		b[dof] = ln.inhomogeneity
	}
}

// DistributeLocalToGlobal scatters a cell's local matrix and load vector
// into the global system while applying constraint redistribution inline,
// so constrained rows and columns never receive un-redistributed entries.
// On unconstrained rows the result is numerically equivalent to raw
// assembly followed by Condense, up to floating-point summation order.
//
// Constrained diagonal positions accumulate the local diagonal to keep the
// global matrix regular; their right-hand-side entries receive nothing.
func (ac *AffineConstraints) DistributeLocalToGlobal(
	localMatrix *mat.Dense, localRHS []float64, dofIndices []int,
	globalMatrix SparseMatrix, globalRHS []float64,
) {
	ac.assertClosed("DistributeLocalToGlobal")
	n := len(dofIndices)
	lr, lc := localMatrix.Dims()
	if lr != n || lc != n {
		panic(fmt.Sprintf("constraints: local matrix %dx%d does not match %d cell DoFs", lr, lc, n))
	}
	if len(localRHS) != n {
		panic(fmt.Sprintf("constraints: local vector length %d does not match %d cell DoFs", len(localRHS), n))
	}
	rows, _ := globalMatrix.Dims()
	for _, dof := range dofIndices {
		if dof < 0 || dof >= rows {
			panic(fmt.Sprintf("constraints: cell DoF %d outside global system of size %d", dof, rows))
		}
	}

	for i := 0; i < n; i++ {
		gi := dofIndices[i]
		rowTargets := ac.resolve(gi)

		// Right-hand side with inhomogeneity correction: the constrained
		// columns contribute -M(i,j)*g_j before scattering.
		load := localRHS[i]
		for j := 0; j < n; j++ {
			if ln, ok := ac.lines[dofIndices[j]]; ok && ln.inhomogeneity != 0 {
				load -= localMatrix.At(i, j) * ln.inhomogeneity
			}
		}
		for _, rt := range rowTargets {
			globalRHS[rt.Index] += rt.Coefficient * load
		}

		for j := 0; j < n; j++ {
			v := localMatrix.At(i, j)
			if v == 0 {
				continue
			}
			gj := dofIndices[j]
			for _, rt := range rowTargets {
				for _, ct := range ac.resolve(gj) {
					globalMatrix.Set(rt.Index, ct.Index,
						globalMatrix.At(rt.Index, ct.Index)+rt.Coefficient*v*ct.Coefficient)
				}
			}
		}

		if ac.IsConstrained(gi) {
			globalMatrix.Set(gi, gi, globalMatrix.At(gi, gi)+localMatrix.At(i, i))
		}
	}
}
