package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLineIdempotent(t *testing.T) {
	ac := New()
	ac.AddLine(3)
	ac.AddEntry(3, 1, 0.5)
	ac.AddLine(3) // no-op, must not clear the entries
	require.NoError(t, ac.Close())

	assert.Equal(t, 1, ac.NConstraints())
	assert.Equal(t, []Entry{{Index: 1, Coefficient: 0.5}}, ac.Entries(3))
}

func TestAddEntryValidation(t *testing.T) {
	ac := New()
	ac.AddLine(2)

	// identical duplicate is tolerated
	ac.AddEntry(2, 0, 0.25)
	ac.AddEntry(2, 0, 0.25)

	// conflicting duplicate is a caller bug
	assert.Panics(t, func() { ac.AddEntry(2, 0, 0.5) })
	// self-constraint is a caller bug
	assert.Panics(t, func() { ac.AddEntry(2, 2, 1.0) })
	// entry without a line is a caller bug
	assert.Panics(t, func() { ac.AddEntry(7, 0, 1.0) })
	assert.Panics(t, func() { ac.SetInhomogeneity(7, 1.0) })

	require.NoError(t, ac.Close())
	assert.Equal(t, []Entry{{Index: 0, Coefficient: 0.25}}, ac.Entries(2))
}

func TestIsConstrained(t *testing.T) {
	ac := New()
	ac.AddLine(5)
	ac.AddLine(1)
	assert.True(t, ac.IsConstrained(5))
	assert.True(t, ac.IsConstrained(1))
	assert.False(t, ac.IsConstrained(0))
	assert.Equal(t, []int{1, 5}, ac.ConstrainedDoFs())
}

func TestCloseResolvesChains(t *testing.T) {
	ac := New()
	// 4 hangs on 3 and 0; 3 is itself eliminated towards 1
	ac.AddLine(4)
	ac.AddEntry(4, 3, 0.5)
	ac.AddEntry(4, 0, 0.5)
	ac.AddLine(3)
	ac.AddEntry(3, 1, 1.0)
	require.NoError(t, ac.Close())

	assert.Equal(t, []Entry{
		{Index: 1, Coefficient: 1.0},
	}, ac.Entries(3))
	assert.Equal(t, []Entry{
		{Index: 0, Coefficient: 0.5},
		{Index: 1, Coefficient: 0.5},
	}, ac.Entries(4))
}

func TestCloseResolvesInhomogeneityChains(t *testing.T) {
	ac := New()
	// 3 hangs on 2 with an offset; 2 is a fixed boundary value
	ac.AddLine(3)
	ac.AddEntry(3, 2, 1.0)
	ac.SetInhomogeneity(3, 1.0)
	ac.AddLine(2)
	ac.SetInhomogeneity(2, 5.0)
	require.NoError(t, ac.Close())

	assert.Empty(t, ac.Entries(3))
	assert.Equal(t, 6.0, ac.Inhomogeneity(3))
	assert.Equal(t, 5.0, ac.Inhomogeneity(2))
}

func TestCloseMergesDuplicateTargets(t *testing.T) {
	ac := New()
	// both intermediate lines lead to DoF 0, so the coefficients combine
	ac.AddLine(5)
	ac.AddEntry(5, 3, 0.5)
	ac.AddEntry(5, 4, 0.5)
	ac.AddLine(3)
	ac.AddEntry(3, 0, 1.0)
	ac.AddLine(4)
	ac.AddEntry(4, 0, 1.0)
	require.NoError(t, ac.Close())

	assert.Equal(t, []Entry{{Index: 0, Coefficient: 1.0}}, ac.Entries(5))
}

func TestCloseDropsCancelledTargets(t *testing.T) {
	ac := New()
	ac.AddLine(2)
	ac.AddEntry(2, 0, 0.5)
	ac.AddEntry(2, 1, -0.5)
	ac.AddLine(1)
	ac.AddEntry(1, 0, 1.0)
	require.NoError(t, ac.Close())

	// 0.5*x0 - 0.5*x0 cancels exactly and the entry disappears
	assert.Empty(t, ac.Entries(2))
}

func TestCloseDetectsTwoCycle(t *testing.T) {
	ac := New()
	ac.AddLine(0)
	ac.AddEntry(0, 1, 1.0)
	ac.AddLine(1)
	ac.AddEntry(1, 0, 1.0)

	err := ac.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
	assert.False(t, ac.Closed())
}

func TestCloseDetectsLongerCycle(t *testing.T) {
	ac := New()
	ac.AddLine(0)
	ac.AddEntry(0, 1, 1.0)
	ac.AddLine(1)
	ac.AddEntry(1, 2, 1.0)
	ac.AddLine(2)
	ac.AddEntry(2, 0, 1.0)

	err := ac.Close()
	require.Error(t, err)
	assert.False(t, ac.Closed())
}

func TestCloseIdempotent(t *testing.T) {
	ac := New()
	ac.AddLine(1)
	ac.AddEntry(1, 0, 1.0)
	require.NoError(t, ac.Close())
	require.NoError(t, ac.Close())
	assert.True(t, ac.Closed())
}

func TestOpenClosedDiscipline(t *testing.T) {
	ac := New()
	ac.AddLine(1)

	// reads that need resolved lines refuse to run before Close
	assert.Panics(t, func() { ac.Entries(1) })
	assert.Panics(t, func() { ac.Inhomogeneity(1) })
	assert.Panics(t, func() { ac.Distribute(make([]float64, 2)) })

	require.NoError(t, ac.Close())

	// mutations refuse to run after Close
	assert.Panics(t, func() { ac.AddLine(2) })
	assert.Panics(t, func() { ac.AddEntry(1, 0, 1.0) })
	assert.Panics(t, func() { ac.SetInhomogeneity(1, 1.0) })

	// unknown DoF reads are caller bugs
	assert.Panics(t, func() { ac.Entries(9) })
	assert.Panics(t, func() { ac.Inhomogeneity(9) })

	assert.Panics(t, func() { New().AddLine(-1) })
}

func TestDistribute(t *testing.T) {
	ac := New()
	ac.AddLine(2)
	ac.AddEntry(2, 0, 0.5)
	ac.AddEntry(2, 1, 0.5)
	ac.SetInhomogeneity(2, 1.0)
	require.NoError(t, ac.Close())

	v := []float64{3, 5, 999}
	ac.Distribute(v)
	assert.Equal(t, []float64{3, 5, 5}, v)

	assert.Panics(t, func() { ac.Distribute(make([]float64, 2)) })
}
