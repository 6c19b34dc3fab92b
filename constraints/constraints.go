// Package constraints implements sparse affine constraints among degrees
// of freedom: hanging-node couplings and inhomogeneous Dirichlet values,
// applied to assembled linear systems either by post-assembly condensation
// or by constraint-aware local-to-global distribution. Both paths produce
// numerically equivalent globally-constrained systems.
package constraints

import (
	"fmt"
	"sort"
)

// Entry is one (target DoF, coefficient) pair of a constraint line.
type Entry struct {
	Index       int
	Coefficient float64
}

// line stores a single constraint: the DoF equals the weighted sum of the
// entries plus the inhomogeneity.
type line struct {
	entries       []Entry
	inhomogeneity float64
}

// AffineConstraints is the incremental store of constraint lines. Lines
// are added while the object is open, then Close finalizes the set (chain
// resolution, sorting, deduplication) and freezes it for read-only use by
// Condense, DistributeLocalToGlobal and Distribute.
//
// The global matrices and vectors passed to the application operations are
// borrowed, never owned, and are mutated in place. The object performs no
// internal locking; callers running cell-parallel assembly must serialize
// distributions that touch overlapping global rows.
type AffineConstraints struct {
	lines  map[int]*line
	closed bool
}

// New returns an empty, open constraint set.
func New() *AffineConstraints {
	return &AffineConstraints{lines: make(map[int]*line)}
}

// AddLine registers dof as constrained with an initially empty target
// list. Adding an existing line is a no-op.
func (ac *AffineConstraints) AddLine(dof int) {
	ac.assertOpen("AddLine")
	assertDoF(dof)
	if _, ok := ac.lines[dof]; ok {
		return
	}
	ac.lines[dof] = &line{}
}

// AddEntry appends the (target, coefficient) pair to the line of dof. The
// line must exist. Repeating an entry with an identical coefficient is
// tolerated; repeating it with a different coefficient is a caller bug.
func (ac *AffineConstraints) AddEntry(dof, target int, coefficient float64) {
	ac.assertOpen("AddEntry")
	assertDoF(target)
	ln, ok := ac.lines[dof]
	if !ok {
		panic(fmt.Sprintf("constraints: DoF %d has no constraint line", dof))
	}
	if dof == target {
		panic(fmt.Sprintf("constraints: DoF %d may not be constrained to itself", dof))
	}
	for _, e := range ln.entries {
		if e.Index == target {
			if e.Coefficient == coefficient {
				return
			}
			panic(fmt.Sprintf(
				"constraints: DoF %d already constrained to %d with coefficient %g, got %g",
				dof, target, e.Coefficient, coefficient))
		}
	}
	ln.entries = append(ln.entries, Entry{Index: target, Coefficient: coefficient})
}

// SetInhomogeneity sets the additive constant of the line of dof, which
// must already exist.
func (ac *AffineConstraints) SetInhomogeneity(dof int, value float64) {
	ac.assertOpen("SetInhomogeneity")
	ln, ok := ac.lines[dof]
	if !ok {
		panic(fmt.Sprintf("constraints: DoF %d has no constraint line", dof))
	}
	ln.inhomogeneity = value
}

// Close finalizes the constraint set: every constrained DoF appearing as a
// target of another line is substituted away, entries are merged and
// sorted by target, and the set becomes read-only. Close is idempotent.
// A constraint cycle cannot be resolved and is reported as an error,
// leaving the set open.
func (ac *AffineConstraints) Close() error {
	if ac.closed {
		return nil
	}

	// Iterative substitution. A closed acyclic chain shortens by at least
	// one level per sweep, so more sweeps than lines means a cycle.
	maxSweeps := len(ac.lines) + 1
	for sweep := 0; ; sweep++ {
		changed := false
		for dof, ln := range ac.lines {
			resolved := ln.entries[:0:0]
			for _, e := range ln.entries {
				target, ok := ac.lines[e.Index]
				if !ok {
					resolved = append(resolved, e)
					continue
				}
				changed = true
				for _, te := range target.entries {
					if te.Index == dof {
						return fmt.Errorf(
							"constraints: cycle detected between DoFs %d and %d", dof, e.Index)
					}
					resolved = append(resolved, Entry{
						Index:       te.Index,
						Coefficient: e.Coefficient * te.Coefficient,
					})
				}
				ln.inhomogeneity += e.Coefficient * target.inhomogeneity
			}
			ln.entries = resolved
		}
		if !changed {
			break
		}
		if sweep >= maxSweeps {
			return fmt.Errorf("constraints: constraint chains did not resolve after %d sweeps, cycle suspected", sweep)
		}
	}

	// Merge duplicate targets, drop exact zeros, sort by target index.
	for _, ln := range ac.lines {
		if len(ln.entries) == 0 {
			continue
		}
		sort.Slice(ln.entries, func(i, j int) bool {
			return ln.entries[i].Index < ln.entries[j].Index
		})
		merged := ln.entries[:0]
		for _, e := range ln.entries {
			if n := len(merged); n > 0 && merged[n-1].Index == e.Index {
				merged[n-1].Coefficient += e.Coefficient
				continue
			}
			merged = append(merged, e)
		}
		nonzero := merged[:0]
		for _, e := range merged {
			if e.Coefficient != 0 {
				nonzero = append(nonzero, e)
			}
		}
		ln.entries = nonzero
	}

	ac.closed = true
	return nil
}

// Closed reports whether Close has completed.
func (ac *AffineConstraints) Closed() bool { return ac.closed }

// IsConstrained reports whether dof carries a constraint line.
func (ac *AffineConstraints) IsConstrained(dof int) bool {
	_, ok := ac.lines[dof]
	return ok
}

// NConstraints returns the number of constraint lines.
func (ac *AffineConstraints) NConstraints() int { return len(ac.lines) }

// Entries returns the resolved target list of a constrained DoF. The set
// must be closed and the line must exist.
func (ac *AffineConstraints) Entries(dof int) []Entry {
	ac.assertClosed("Entries")
	ln, ok := ac.lines[dof]
	if !ok {
		panic(fmt.Sprintf("constraints: DoF %d is not constrained", dof))
	}
	return ln.entries
}

// Inhomogeneity returns the additive constant of a constrained DoF. The
// set must be closed and the line must exist.
func (ac *AffineConstraints) Inhomogeneity(dof int) float64 {
	ac.assertClosed("Inhomogeneity")
	ln, ok := ac.lines[dof]
	if !ok {
		panic(fmt.Sprintf("constraints: DoF %d is not constrained", dof))
	}
	return ln.inhomogeneity
}

// ConstrainedDoFs returns the constrained indices in increasing order.
func (ac *AffineConstraints) ConstrainedDoFs() []int {
	dofs := make([]int, 0, len(ac.lines))
	for dof := range ac.lines {
		dofs = append(dofs, dof)
	}
	sort.Ints(dofs)
	return dofs
}

// Distribute overwrites the constrained entries of a solution vector with
// the values their constraint lines dictate.
func (ac *AffineConstraints) Distribute(v []float64) {
	ac.assertClosed("Distribute")
	for dof, ln := range ac.lines {
		if dof >= len(v) {
			panic(fmt.Sprintf("constraints: DoF %d outside vector of length %d", dof, len(v)))
		}
		value := ln.inhomogeneity
		for _, e := range ln.entries {
			value += e.Coefficient * v[e.Index]
		}
		v[dof] = value
	}
}

func (ac *AffineConstraints) assertOpen(op string) {
	if ac.closed {
		panic("constraints: " + op + " called on a closed constraint set")
	}
}

func (ac *AffineConstraints) assertClosed(op string) {
	if !ac.closed {
		panic("constraints: " + op + " called before Close")
	}
}

func assertDoF(dof int) {
	if dof < 0 {
		panic(fmt.Sprintf("constraints: negative DoF index %d", dof))
	}
}
