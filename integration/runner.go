package integration

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Tolerances are the acceptance thresholds for the difference norms
// between the condensation and distribution assembly strategies.
type Tolerances struct {
	Matrix float64
	RHS    float64
}

// DefaultTolerances are the acceptance thresholds of the equivalence runs.
func DefaultTolerances() Tolerances {
	return Tolerances{Matrix: 1e-13, RHS: 1e-14}
}

// Runner executes equivalence checks and reports through a structured
// logger.
type Runner struct {
	Log        zerolog.Logger
	NPoints1D  int
	Tolerances Tolerances
}

// NewRunner returns a runner with the default tolerances and 3
// quadrature points per direction.
func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{Log: log, NPoints1D: 3, Tolerances: DefaultTolerances()}
}

// Run checks one dimension, scalar and block variants, and returns an
// error when a difference norm exceeds the tolerances.
func (r *Runner) Run(dim int) error {
	for _, block := range []bool{false, true} {
		report, err := Check(dim, r.NPoints1D, block)
		if err != nil {
			return err
		}
		event := r.Log.Info().
			Int("dim", report.Dim).
			Bool("block", block).
			Int("active_cells", report.NActiveCells).
			Int("dofs", report.NDoFs).
			Int("hanging_constraints", report.NConstraints).
			Float64("matrix_diff_norm", report.MatrixDiffNorm).
			Float64("rhs_diff_norm", report.RHSDiffNorm)
		if report.MatrixDiffNorm > r.Tolerances.Matrix || report.RHSDiffNorm > r.Tolerances.RHS {
			event.Msg("assembly strategies disagree")
			return fmt.Errorf(
				"integration: %dD (block=%v) difference norms %.3e / %.3e exceed tolerances %.0e / %.0e",
				dim, block, report.MatrixDiffNorm, report.RHSDiffNorm,
				r.Tolerances.Matrix, r.Tolerances.RHS)
		}
		event.Msg("assembly strategies agree")
	}
	return nil
}

// RunAll checks the 2D and 3D scenarios.
func (r *Runner) RunAll() error {
	for _, dim := range []int{2, 3} {
		if err := r.Run(dim); err != nil {
			return err
		}
	}
	return nil
}
