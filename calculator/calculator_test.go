package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruckigo/params"
)

func singleDofInput(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) *params.InputParameter {
	inp := params.NewInputParameter(1)
	inp.CurrentPosition[0] = p0
	inp.CurrentVelocity[0] = v0
	inp.CurrentAcceleration[0] = a0
	inp.TargetPosition[0] = pf
	inp.TargetVelocity[0] = vf
	inp.TargetAcceleration[0] = af
	inp.MaxVelocity[0] = vMax
	inp.MinVelocity[0] = -vMax
	inp.MaxAcceleration[0] = aMax
	inp.MinAcceleration[0] = -aMax
	inp.MaxJerk[0] = jMax
	return inp
}

func TestCalculateSingleDofRestToRest(t *testing.T) {
	tc := New(0.005)
	inp := singleDofInput(0, 0, 0, 1, 0, 0, 1, 1, 1)

	traj, err := tc.Calculate(inp)
	require.NoError(t, err)
	require.Len(t, traj.Dofs, 1)
	assert.Greater(t, traj.IndependentMinDurations[0], 0.0)

	p, v, a, _, _ := traj.AtTime(traj.Duration)
	assert.InDelta(t, 1.0, p[0], 1e-6)
	assert.InDelta(t, 0.0, v[0], 1e-6)
	assert.InDelta(t, 0.0, a[0], 1e-6)
}

// TestCalculateSingleDofNonzeroBoundaryAccelerations exercises a DoF that
// starts and ends mid-acceleration, the shape the Acc0Acc1Vel-only Step-1/
// Step-2 fallback construction used to silently fail on.
func TestCalculateSingleDofNonzeroBoundaryAccelerations(t *testing.T) {
	tc := New(0.005)
	inp := singleDofInput(0, 0, 1, 10, 0, -1, 5, 2, 2)

	traj, err := tc.Calculate(inp)
	require.NoError(t, err)
	require.Len(t, traj.Dofs, 1)

	p, v, a, _, _ := traj.AtTime(traj.Duration)
	assert.InDelta(t, 10.0, p[0], 1e-6)
	assert.InDelta(t, 0.0, v[0], 1e-6)
	assert.InDelta(t, -1.0, a[0], 1e-6)
}

// TestCalculateTimeSynchronizesMultipleDofs exercises the D>1 synchronize
// path: every enabled DoF's profile must finish at the same overall
// duration when using the default Time synchronization policy.
func TestCalculateTimeSynchronizesMultipleDofs(t *testing.T) {
	tc := New(0.005)
	inp := params.NewInputParameter(2)
	inp.TargetPosition = []float64{1, 4}
	inp.MaxVelocity = []float64{1, 1}
	inp.MinVelocity = []float64{-1, -1}
	inp.MaxAcceleration = []float64{1, 1}
	inp.MinAcceleration = []float64{-1, -1}
	inp.MaxJerk = []float64{1, 1}

	traj, err := tc.Calculate(inp)
	require.NoError(t, err)

	durations := make([]float64, len(traj.Dofs))
	for i := range traj.Dofs {
		d := &traj.Dofs[i]
		durations[i] = d.TBrake + d.Main.Duration()
	}
	assert.InDelta(t, durations[0], durations[1], 1e-6, "dof durations not synchronized")
	// The second DoF travels further, so it should be the one dictating the
	// synchronized duration (its own unsynchronized minimum is the largest).
	assert.GreaterOrEqual(t, traj.IndependentMinDurations[1], traj.IndependentMinDurations[0])
}

func TestCalculateNoneSyncUsesMinimumProfile(t *testing.T) {
	tc := New(0.005)
	inp := params.NewInputParameter(2)
	inp.TargetPosition = []float64{1, 4}
	inp.MaxVelocity = []float64{1, 1}
	inp.MinVelocity = []float64{-1, -1}
	inp.MaxAcceleration = []float64{1, 1}
	inp.MinAcceleration = []float64{-1, -1}
	inp.MaxJerk = []float64{1, 1}
	none := params.SyncNone
	inp.PerDofSynchronization = []*params.Synchronization{&none, nil}

	traj, err := tc.Calculate(inp)
	require.NoError(t, err)

	d0 := &traj.Dofs[0]
	assert.InDelta(t, traj.IndependentMinDurations[0], d0.Main.Duration(), 1e-9,
		"None-synced dof duration should equal its own independent minimum")
}

// TestZeroAccelerationLimitWithNonzeroTargetAccelIsInfeasible: a zero
// acceleration limit forces the degenerate first-order solver, which
// requires every boundary acceleration/velocity to already be zero; a
// nonzero target acceleration makes that infeasible.
func TestZeroAccelerationLimitWithNonzeroTargetAccelIsInfeasible(t *testing.T) {
	tc := New(0.005)
	inp := singleDofInput(0, 0, 0, 1, 0, 0.5, 1, 0, 1)

	_, err := tc.Calculate(inp)
	require.Error(t, err)
	assert.IsType(t, &ZeroLimitsError{}, err)
}
