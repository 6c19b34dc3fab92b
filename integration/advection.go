// Package integration assembles a vector-valued advection operator on a
// locally refined hypercube and verifies that post-assembly condensation
// and constraint-aware distribution produce the same constrained system.
// It is the end-to-end exercise of the constraint machinery and doubles as
// the femcheck CLI backend.
package integration

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/FEMKernel/constraints"
	"github.com/notargets/FEMKernel/dofs"
	"github.com/notargets/FEMKernel/fe"
	"github.com/notargets/FEMKernel/grid"
	"github.com/notargets/FEMKernel/quadrature"
)

// AdvectionProblem is the scenario fixture: a unit square or cube with two
// locally refined cells, a 2-component multilinear field, hanging-node
// constraints, and Dirichlet value 1 on boundary id 0.
type AdvectionProblem struct {
	Dim     int
	Mesh    *grid.Mesh
	Handler *dofs.Handler

	// HangingOnly carries the hanging-node couplings alone; All adds the
	// inhomogeneous boundary constraints on top.
	HangingOnly *constraints.AffineConstraints
	All         *constraints.AffineConstraints

	rule quadrature.Rule
}

// NewAdvectionProblem builds the scenario in the given dimension (2 or 3),
// with nPoints1D quadrature points per direction.
func NewAdvectionProblem(dim, nPoints1D int, ordering dofs.Numbering) (*AdvectionProblem, error) {
	subdivisions := 4
	if dim == 3 {
		subdivisions = 2
	}
	mesh, err := grid.HyperCube(dim, subdivisions)
	if err != nil {
		return nil, err
	}
	// Refine the first cell, then the last cell of the refined mesh, to
	// create hanging nodes at two separate interfaces.
	if err := mesh.RefineCells([]int{0}); err != nil {
		return nil, err
	}
	if err := mesh.RefineCells([]int{mesh.NActiveCells() - 1}); err != nil {
		return nil, err
	}
	if err := mesh.Verify(); err != nil {
		return nil, err
	}

	handler, err := dofs.NewHandler(mesh, 2, ordering)
	if err != nil {
		return nil, err
	}

	hangingOnly := constraints.New()
	all := constraints.New()

	// Boundary values go in first; hanging couplings skip DoFs that are
	// already Dirichlet-constrained.
	boundary := handler.InterpolateBoundaryValues(0, func([3]float64, int) float64 {
		return 1
	})
	for dof, value := range boundary {
		all.AddLine(dof)
		all.SetInhomogeneity(dof, value)
	}
	handler.MakeHangingNodeConstraints(hangingOnly)
	handler.MakeHangingNodeConstraints(all)
	if err := hangingOnly.Close(); err != nil {
		return nil, err
	}
	if err := all.Close(); err != nil {
		return nil, err
	}

	return &AdvectionProblem{
		Dim:         dim,
		Mesh:        mesh,
		Handler:     handler,
		HangingOnly: hangingOnly,
		All:         all,
		rule:        mesh.Cell.GaussTypeQuadrature(nPoints1D),
	}, nil
}

// NDoFs returns the size of the global system.
func (p *AdvectionProblem) NDoFs() int { return p.Handler.NDoFs() }

// NewMatrix allocates a zero global matrix: a flat DOK, or a 2x2 block
// matrix split by field component when block is set (component-major DoF
// numbering aligns the split with the components).
func (p *AdvectionProblem) NewMatrix(block bool) constraints.SparseMatrix {
	n := p.NDoFs()
	if !block {
		return sparse.NewDOK(n, n)
	}
	half := n / 2
	sizes := []int{half, n - half}
	return constraints.NewBlockMatrix(sizes, sizes)
}

// advectionDirection is the transport field of the scenario: ones with the
// last component flipped so the flow is not axis-aligned.
func (p *AdvectionProblem) advectionDirection() [3]float64 {
	beta := [3]float64{1, 1, 0}
	beta[p.Dim-1] = -1
	return beta
}

// rightHandSide is f(p) = prod_d (p_d + 1).
func (p *AdvectionProblem) rightHandSide(point [3]float64) float64 {
	product := 1.0
	for d := 0; d < p.Dim; d++ {
		product *= point[d] + 1
	}
	return product
}

// localSystem computes the cell matrix, cell load vector and global DoF
// indices of cell c. The operator couples equal components only:
// M(i,j) = int phi_i (beta . grad phi_j).
func (p *AdvectionProblem) localSystem(c int) (*mat.Dense, []float64, []int) {
	cell := p.Mesh.Cell
	verts := p.Mesh.Cells[c]
	nBasis := fe.NDoFsPerCell(cell)
	nComp := p.Handler.NComponents
	n := nBasis * nComp

	min := p.Mesh.Vertices[verts[0]]
	max := p.Mesh.Vertices[verts[len(verts)-1]]
	var h [3]float64
	detJ := 1.0
	for d := 0; d < p.Dim; d++ {
		h[d] = max[d] - min[d]
		detJ *= h[d]
	}

	beta := p.advectionDirection()
	cellMatrix := mat.NewDense(n, n, nil)
	cellRHS := make([]float64, n)

	for q := range p.rule.Points {
		ref := p.rule.Points[q]
		jxw := p.rule.Weights[q] * detJ

		var phys [3]float64
		for d := 0; d < p.Dim; d++ {
			phys[d] = min[d] + h[d]*ref[d]
		}
		f := p.rightHandSide(phys)

		for bi := 0; bi < nBasis; bi++ {
			vi := fe.Value(cell, bi, ref)
			for bj := 0; bj < nBasis; bj++ {
				gradRef := fe.Grad(cell, bj, ref)
				advect := 0.0
				for d := 0; d < p.Dim; d++ {
					advect += beta[d] * gradRef[d] / h[d]
				}
				for comp := 0; comp < nComp; comp++ {
					i := bi*nComp + comp
					j := bj*nComp + comp
					cellMatrix.Set(i, j, cellMatrix.At(i, j)+vi*advect*jxw)
				}
			}
			for comp := 0; comp < nComp; comp++ {
				cellRHS[bi*nComp+comp] += vi * f * jxw
			}
		}
	}

	return cellMatrix, cellRHS, p.Handler.CellDoFs(c)
}

// AssembleRaw assembles the global system ignoring constraints.
func (p *AdvectionProblem) AssembleRaw(a constraints.SparseMatrix, b []float64) {
	for c := range p.Mesh.Cells {
		cellMatrix, cellRHS, indices := p.localSystem(c)
		for i, gi := range indices {
			for j, gj := range indices {
				if v := cellMatrix.At(i, j); v != 0 {
					a.Set(gi, gj, a.At(gi, gj)+v)
				}
			}
			b[indices[i]] += cellRHS[i]
		}
	}
}

// AssembleConstrained assembles the global system with constraint-aware
// distribution of every cell contribution.
func (p *AdvectionProblem) AssembleConstrained(
	ac *constraints.AffineConstraints, a constraints.SparseMatrix, b []float64,
) {
	for c := range p.Mesh.Cells {
		cellMatrix, cellRHS, indices := p.localSystem(c)
		ac.DistributeLocalToGlobal(cellMatrix, cellRHS, indices, a, b)
	}
}

// CompareUnconstrained returns the Frobenius norm of the matrix difference
// and the l2 norm of the vector difference, restricted to unconstrained
// rows. Constrained rows legitimately differ between the two strategies
// (diagonal and load conventions) and are excluded.
func (p *AdvectionProblem) CompareUnconstrained(
	ref, test constraints.SparseMatrix, refRHS, testRHS []float64,
) (matrixNorm, rhsNorm float64) {
	diff := make(map[[2]int]float64)
	ref.DoNonZero(func(i, j int, v float64) {
		if !p.All.IsConstrained(i) {
			diff[[2]int{i, j}] -= v
		}
	})
	test.DoNonZero(func(i, j int, v float64) {
		if !p.All.IsConstrained(i) {
			diff[[2]int{i, j}] += v
		}
	})
	sum := 0.0
	for _, v := range diff {
		sum += v * v
	}
	matrixNorm = math.Sqrt(sum)

	sum = 0.0
	for i := range refRHS {
		if p.All.IsConstrained(i) {
			continue
		}
		d := testRHS[i] - refRHS[i]
		sum += d * d
	}
	rhsNorm = math.Sqrt(sum)
	return matrixNorm, rhsNorm
}

// SystemPair runs both strategies with the full constraint set and
// returns (condensed reference, distributed test) systems.
func (p *AdvectionProblem) SystemPair(block bool) (
	ref constraints.SparseMatrix, refRHS []float64,
	test constraints.SparseMatrix, testRHS []float64,
) {
	n := p.NDoFs()

	ref = p.NewMatrix(block)
	refRHS = make([]float64, n)
	p.AssembleRaw(ref, refRHS)
	p.All.Condense(ref, refRHS)

	test = p.NewMatrix(block)
	testRHS = make([]float64, n)
	p.AssembleConstrained(p.All, test, testRHS)
	return ref, refRHS, test, testRHS
}

// Report summarizes one equivalence run.
type Report struct {
	Dim            int
	NActiveCells   int
	NDoFs          int
	NConstraints   int
	MatrixDiffNorm float64
	RHSDiffNorm    float64
}

// Check runs the full scenario in the given dimension and reports the
// difference norms between the two assembly strategies.
func Check(dim, nPoints1D int, block bool) (Report, error) {
	ordering := dofs.VertexMajor
	if block {
		ordering = dofs.ComponentMajor
	}
	problem, err := NewAdvectionProblem(dim, nPoints1D, ordering)
	if err != nil {
		return Report{}, fmt.Errorf("integration: build %dD advection problem: %w", dim, err)
	}

	ref, refRHS, test, testRHS := problem.SystemPair(block)
	matrixNorm, rhsNorm := problem.CompareUnconstrained(ref, test, refRHS, testRHS)

	return Report{
		Dim:            dim,
		NActiveCells:   problem.Mesh.NActiveCells(),
		NDoFs:          problem.NDoFs(),
		NConstraints:   problem.HangingOnly.NConstraints(),
		MatrixDiffNorm: matrixNorm,
		RHSDiffNorm:    rhsNorm,
	}, nil
}
