package step2

import (
	"math"
	"testing"
)

func TestPositionFirstOrderStep2FitsExactDuration(t *testing.T) {
	p, ok := PositionFirstOrderStep2(0, 10, 5, 3, -3)
	if !ok {
		t.Fatalf("expected a feasible constant-velocity fit")
	}
	if math.Abs(p.TSum[7]-5) > 1e-9 {
		t.Fatalf("duration = %v, want 5", p.TSum[7])
	}
	if math.Abs(p.P[7]-10) > 1e-9 {
		t.Fatalf("final position = %v, want 10", p.P[7])
	}
	pos, vel, _, _ := p.At(2.5)
	if math.Abs(pos-5) > 1e-9 || math.Abs(vel-2) > 1e-9 {
		t.Fatalf("mid-profile sample = (%v, %v), want (5, 2)", pos, vel)
	}
}

func TestPositionFirstOrderStep2RejectsExceededVelocity(t *testing.T) {
	if _, ok := PositionFirstOrderStep2(0, 100, 1, 3, -3); ok {
		t.Fatalf("expected failure when the required velocity exceeds vMax")
	}
}

func TestVelocitySecondOrderStep2FitsExactDuration(t *testing.T) {
	p, ok := VelocitySecondOrderStep2(0, 0, 4, 0, 2, 5, -5)
	if !ok {
		t.Fatalf("expected a feasible constant-acceleration fit")
	}
	if math.Abs(p.V[7]-4) > 1e-6 {
		t.Fatalf("final velocity = %v, want 4", p.V[7])
	}
	if math.Abs(p.TSum[7]-2) > 1e-9 {
		t.Fatalf("duration = %v, want 2", p.TSum[7])
	}
}

func TestPositionSecondOrderStep2FitsExactDurationAndPosition(t *testing.T) {
	// Same boundary as the Step-1 triangular case, but fit to a generous tf
	// so the bisection has slack to find a feasible cruise velocity.
	p, ok := PositionSecondOrderStep2(0, 0, 20, 0, 6.5, 5, -5, 2, -2)
	if !ok {
		t.Fatalf("expected a feasible trapezoidal fit")
	}
	if !p.CheckForSecondOrderWithTiming(6.5, 5, -5, 2, -2) {
		t.Fatalf("profile failed CheckForSecondOrderWithTiming")
	}
	if math.Abs(p.P[7]-20) > 1e-6 {
		t.Fatalf("final position = %v, want 20", p.P[7])
	}
}

func TestPositionSecondOrderStep2RejectsNonPositiveDuration(t *testing.T) {
	if _, ok := PositionSecondOrderStep2(0, 0, 10, 0, 0, 5, -5, 2, -2); ok {
		t.Fatalf("expected failure for tf <= 0")
	}
}

func TestPositionThirdOrderStep2RestToRestFitsExactDuration(t *testing.T) {
	p, ok := PositionThirdOrderStep2(0, 0, 0, 1, 0, 0, 5, 1, -1, 1, -1, 1)
	if !ok {
		t.Fatalf("expected a feasible jerk-limited fit")
	}
	if !p.CheckWithTiming(5, 1, -1, 1, -1, 1) {
		t.Fatalf("profile failed CheckWithTiming")
	}
	if math.Abs(p.P[7]-1) > 1e-6 {
		t.Fatalf("final position = %v, want 1", p.P[7])
	}
}

// TestPositionThirdOrderStep2NonzeroBoundaryAccelerations fits a DoF that
// starts and ends mid-acceleration (a0=1, af=-1) to a prescribed duration —
// the family that isn't Acc0Acc1Vel and so falls to bisectCruisePlateau or
// residualFallback, both of which must thread a0/af through the up- and
// down-ramps rather than assuming they end at zero.
func TestPositionThirdOrderStep2NonzeroBoundaryAccelerations(t *testing.T) {
	p, ok := PositionThirdOrderStep2(0, 0, 1, 10, 0, -1, 6, 5, -5, 2, -2, 2)
	if !ok {
		t.Fatalf("expected a feasible jerk-limited fit with nonzero a0/af")
	}
	if !p.CheckWithTiming(6, 5, -5, 2, -2, 2) {
		t.Fatalf("profile failed CheckWithTiming")
	}
	if math.Abs(p.P[7]-10) > 1e-6 {
		t.Fatalf("final position = %v, want 10", p.P[7])
	}
	if math.Abs(p.A[0]-1) > 1e-9 {
		t.Fatalf("initial acceleration = %v, want 1", p.A[0])
	}
	if math.Abs(p.A[7]-(-1)) > 1e-9 {
		t.Fatalf("final acceleration = %v, want -1", p.A[7])
	}
}

func TestVelocityThirdOrderStep2FitsExactDuration(t *testing.T) {
	p, ok := VelocityThirdOrderStep2(0, 0, 3, 0, 3, 4, -4, 10)
	if !ok {
		t.Fatalf("expected a feasible jerk-limited velocity fit")
	}
	if math.Abs(p.V[7]-3) > 1e-6 {
		t.Fatalf("final velocity = %v, want 3", p.V[7])
	}
	if math.Abs(p.TSum[7]-3) > 1e-9 {
		t.Fatalf("duration = %v, want 3", p.TSum[7])
	}
}
