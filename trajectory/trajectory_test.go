package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruckigo/brake"
	"ruckigo/profile"
)

func straightLineProfile(p0, v float64, duration float64) *profile.Profile {
	p := &profile.Profile{Limits: profile.LimitsVel}
	p.SetBoundary(p0, 0, 0, p0+v*duration, 0, 0)
	p.V[0] = v
	p.T[3] = duration
	p.Check(math.Abs(v)+1, -math.Abs(v)-1, 1, -1, 1)
	return p
}

func TestAtTimeWithoutBrake(t *testing.T) {
	main := straightLineProfile(0, 2, 1.0)
	tr := &Trajectory{
		Dofs:     []DofState{{Enabled: true, Main: main}},
		Duration: 1.0,
	}

	p, v, a, _, section := tr.AtTime(0.5)
	assert.Equal(t, 0, section)
	assert.InDelta(t, 1.0, p[0], 1e-9)
	assert.InDelta(t, 2.0, v[0], 1e-9)
	assert.Equal(t, 0.0, a[0])
}

func TestAtTimePastDurationHoldsTerminalState(t *testing.T) {
	main := straightLineProfile(0, 2, 1.0)
	tr := &Trajectory{
		Dofs:     []DofState{{Enabled: true, Main: main}},
		Duration: 1.0,
	}

	p, v, a, j, _ := tr.AtTime(5.0)
	assert.InDelta(t, 2.0, p[0], 1e-9, "want terminal position")
	assert.Equal(t, 2.0, v[0], "want terminal velocity")
	assert.Equal(t, 0.0, a[0])
	assert.Equal(t, 0.0, j[0])
}

func TestAtTimeSamplesBrakeThenMain(t *testing.T) {
	// Brake: one segment at constant jerk -1 for 1s from (p0,v0,a0)=(0,5,1).
	bp := brake.Profile{Duration: [2]float64{1.0, 0}, J: [2]float64{-1, 0}}
	tBrake, p1, v1, a1 := bp.Finalize(0, 5, 1)

	main := &profile.Profile{Limits: profile.LimitsVel}
	main.SetBoundary(p1, v1, a1, p1+v1*1.0, v1, a1)
	main.V[0] = v1
	main.T[3] = 1.0
	require.True(t, main.Check(10, -10, 10, -10, 10), "main profile failed to validate")

	tr := &Trajectory{
		Dofs: []DofState{{
			Enabled: true,
			Brake:   bp,
			TBrake:  tBrake,
			P0:      0, V0: 5, A0: 1,
			Main: main,
		}},
		Duration: tBrake + 1.0,
	}

	// Inside the brake segment: sample halfway through braking directly.
	p, v, a, _, _ := tr.AtTime(tBrake / 2)
	wantP, wantV, wantA, _ := bp.At(tBrake/2, 0, 5, 1)
	assert.Equal(t, wantP, p[0])
	assert.Equal(t, wantV, v[0])
	assert.Equal(t, wantA, a[0])

	// Just after the brake ends, state must match the main profile's start.
	p, v, a, _, _ = tr.AtTime(tBrake)
	assert.InDelta(t, p1, p[0], 1e-9)
	assert.InDelta(t, v1, v[0], 1e-9)
	assert.InDelta(t, a1, a[0], 1e-9)
}

func TestGetPositionExtrema(t *testing.T) {
	main := straightLineProfile(-1, 2, 1.0)
	tr := &Trajectory{Dofs: []DofState{{Enabled: true, Main: main}}, Duration: 1.0}
	extrema := tr.GetPositionExtrema()
	require.Len(t, extrema, 1)
	assert.InDelta(t, -1.0, extrema[0].Min, 1e-9)
	assert.InDelta(t, 1.0, extrema[0].Max, 1e-9)
}

func TestGetFirstTimeAtPosition(t *testing.T) {
	main := straightLineProfile(0, 2, 1.0)
	tr := &Trajectory{Dofs: []DofState{{Enabled: true, Main: main}}, Duration: 1.0}

	tm, ok := tr.GetFirstTimeAtPosition(0, 1.0)
	require.True(t, ok, "expected a crossing at position 1.0")
	assert.InDelta(t, 0.5, tm, 1e-6)

	_, ok = tr.GetFirstTimeAtPosition(0, 100.0)
	assert.False(t, ok, "expected no crossing at position 100.0")
}
