package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangularProfile builds a two-segment constant-jerk S-curve: acceleration
// ramps up for t then back down to 0 over t, taking velocity from 0 to
// jMax*t^2 and position to jMax*t^3 (both derived analytically, not solved
// for, so the expected boundary is exact).
func triangularProfile(t, jMax float64) *Profile {
	p := &Profile{Limits: LimitsNone}
	p.SetBoundary(0, 0, 0, jMax*t*t*t, jMax*t*t, 0)
	p.J[0] = jMax
	p.T[0] = t
	p.J[2] = -jMax
	p.T[2] = t
	return p
}

func TestCheckAcceptsValidProfile(t *testing.T) {
	p := triangularProfile(1.0, 1.0)
	require.True(t, p.Check(10, -10, 10, -10, 10), "expected a valid S-curve profile to pass Check")
	assert.InDelta(t, 1.0, p.P[7], 1e-9)
	assert.InDelta(t, 1.0, p.V[7], 1e-9)
	assert.InDelta(t, 0.0, p.A[7], 1e-9)
}

func TestCheckRejectsNegativeDuration(t *testing.T) {
	p := triangularProfile(1.0, 1.0)
	p.T[0] = -1e-6
	assert.False(t, p.Check(10, -10, 10, -10, 10), "expected Check to reject a negative segment duration")
}

func TestCheckRejectsExceededVelocityLimit(t *testing.T) {
	p := triangularProfile(10.0, 1.0)
	assert.False(t, p.Check(1, -1, 10, -10, 10), "expected Check to reject a profile whose peak velocity exceeds vMax")
}

func TestCheckWithTimingRequiresExactDuration(t *testing.T) {
	p := triangularProfile(1.0, 1.0)
	require.True(t, p.Check(10, -10, 10, -10, 10))
	dur := p.Duration()
	assert.True(t, p.CheckWithTiming(dur, 10, -10, 10, -10, 10), "CheckWithTiming should accept the profile's own duration")
	assert.False(t, p.CheckWithTiming(dur+1.0, 10, -10, 10, -10, 10), "CheckWithTiming should reject a mismatched duration")
}

func TestAtMatchesBoundaries(t *testing.T) {
	p := triangularProfile(1.0, 1.0)
	p.Check(10, -10, 10, -10, 10)

	pos, vel, acc, _ := p.At(0)
	assert.Equal(t, 0.0, pos)
	assert.Equal(t, 0.0, vel)
	assert.Equal(t, 0.0, acc)

	pos, vel, acc, _ = p.At(p.Duration())
	assert.InDelta(t, 1.0, pos, 1e-9)
	assert.InDelta(t, 1.0, vel, 1e-9)
	assert.InDelta(t, 0.0, acc, 1e-9)
}

func TestGetPositionExtremaMonotonicProfile(t *testing.T) {
	p := triangularProfile(1.0, 1.0)
	p.Check(10, -10, 10, -10, 10)

	min, max := p.GetPositionExtrema()
	assert.InDelta(t, 0.0, min, 1e-9)
	assert.InDelta(t, 1.0, max, 1e-9)
}

func TestGetFirstStateAtPositionFindsCrossing(t *testing.T) {
	p := triangularProfile(1.0, 1.0)
	p.Check(10, -10, 10, -10, 10)

	tm, _, _, ok := p.GetFirstStateAtPosition(0.5)
	require.True(t, ok, "expected a crossing at position 0.5")
	pos, _, _, _ := p.At(tm)
	assert.InDelta(t, 0.5, pos, 1e-6)
}

func TestGetFirstStateAtPositionUnreachable(t *testing.T) {
	p := triangularProfile(1.0, 1.0)
	p.Check(10, -10, 10, -10, 10)

	_, _, _, ok := p.GetFirstStateAtPosition(100)
	assert.False(t, ok, "expected no crossing at an unreachable position")
}

// TestCheckPinsSaturatedAcc0Plateau exercises the drift-cancellation step:
// when Limits says the profile saturates at Acc0, the plateau boundary must
// read back exactly aMax/aMin, not whatever forward integration's rounding
// happened to leave there.
func TestCheckPinsSaturatedAcc0Plateau(t *testing.T) {
	p := &Profile{Limits: LimitsAcc0}
	p.SetBoundary(0, 0, 0, 2, 1, 0)
	// Ramp up to aMax=1 over t=1 (ends at exactly 1, as if floating-point
	// drift had nudged it to 1-epsilon), hold, then ramp back down.
	p.J[0] = 1
	p.T[0] = 1 - 1e-13
	p.T[1] = 0.3
	p.J[2] = -1
	p.T[2] = 1 - 1e-13

	p.integrate()
	require.InDelta(t, 1.0, p.A[1], 1e-9, "setup: up-ramp should reach ~aMax before pinning")

	p.pinSaturatedAccelerations(1, -1)
	assert.Equal(t, 1.0, p.A[1], "Acc0 plateau start should be pinned exactly to aMax")
	assert.Equal(t, 1.0, p.A[2], "Acc0 plateau end should be pinned exactly to aMax")
}

func TestCheckPinSkipsUnsaturatedProfile(t *testing.T) {
	p := triangularProfile(1.0, 1.0)
	p.integrate()
	before := p.A[1]
	p.pinSaturatedAccelerations(10, -10)
	assert.Equal(t, before, p.A[1], "LimitsNone profile should be left untouched by pinning")
}
