package step1

import (
	"math"
	"testing"
)

func TestPositionSecondOrderStep1RestToRest(t *testing.T) {
	p, ok := PositionSecondOrderStep1(0, 0, 10, 0, 5, -5, 2, -2)
	if !ok {
		t.Fatalf("expected a feasible trapezoidal profile")
	}
	if !p.CheckForSecondOrder(5, -5, 2, -2) {
		t.Fatalf("profile failed CheckForSecondOrder against its own limits")
	}
	if math.Abs(p.P[7]-10) > 1e-6 {
		t.Fatalf("final position = %v, want 10", p.P[7])
	}
	if math.Abs(p.V[7]) > 1e-6 {
		t.Fatalf("final velocity = %v, want 0", p.V[7])
	}
}

func TestPositionSecondOrderStep1RejectsZeroAccelerationLimit(t *testing.T) {
	if _, ok := PositionSecondOrderStep1(0, 0, 10, 0, 5, -5, 0, -2); ok {
		t.Fatalf("expected failure with a zero acceleration limit")
	}
}

func TestPositionFirstOrderStep1ConstantVelocityTransport(t *testing.T) {
	p, ok := PositionFirstOrderStep1(0, 0, 0, 2, 0, 0, 0.5, -0.5)
	if !ok {
		t.Fatalf("expected a feasible constant-velocity profile")
	}
	if math.Abs(p.Duration()-4) > 1e-9 {
		t.Fatalf("duration = %v, want 4", p.Duration())
	}
	pos, vel, _, _ := p.At(2)
	if math.Abs(pos-1) > 1e-9 || math.Abs(vel-0.5) > 1e-9 {
		t.Fatalf("mid-profile sample = (%v, %v), want (1, 0.5)", pos, vel)
	}
	if math.Abs(p.P[7]-2) > 1e-9 {
		t.Fatalf("final position = %v, want 2", p.P[7])
	}
}

func TestPositionFirstOrderStep1RejectsNonzeroBoundary(t *testing.T) {
	if _, ok := PositionFirstOrderStep1(0, 1, 0, 2, 0, 0, 0.5, -0.5); ok {
		t.Fatalf("expected rejection of a nonzero boundary velocity")
	}
}

func TestVelocitySecondOrderStep1RestToTarget(t *testing.T) {
	p, ok := VelocitySecondOrderStep1(0, 0, 3, 0, 2, -2)
	if !ok {
		t.Fatalf("expected a feasible velocity profile")
	}
	if math.Abs(p.V[7]-3) > 1e-6 {
		t.Fatalf("final velocity = %v, want 3", p.V[7])
	}
}

func TestPositionThirdOrderStep1RestToRest(t *testing.T) {
	p, ok := PositionThirdOrderStep1(0, 0, 0, 1, 0, 0, 1, -1, 1, -1, 1)
	if !ok {
		t.Fatalf("expected a feasible jerk-limited profile")
	}
	if !p.Check(1, -1, 1, -1, 1) {
		t.Fatalf("profile failed Check against its own limits")
	}
	if math.Abs(p.P[7]-1) > 1e-6 {
		t.Fatalf("final position = %v, want 1", p.P[7])
	}
}

// TestPositionThirdOrderStep1NonzeroBoundaryAccelerations exercises a DoF
// that starts already accelerating and must arrive still accelerating in
// the opposite direction — the down-ramp has to terminate at af, not at 0.
func TestPositionThirdOrderStep1NonzeroBoundaryAccelerations(t *testing.T) {
	p, ok := PositionThirdOrderStep1(0, 0, 1, 10, 0, -1, 5, -5, 2, -2, 2)
	if !ok {
		t.Fatalf("expected a feasible jerk-limited profile with nonzero a0/af")
	}
	if !p.Check(5, -5, 2, -2, 2) {
		t.Fatalf("profile failed Check against its own limits")
	}
	if math.Abs(p.P[7]-10) > 1e-6 {
		t.Fatalf("final position = %v, want 10", p.P[7])
	}
	if math.Abs(p.A[7]-(-1)) > 1e-9 {
		t.Fatalf("final acceleration = %v, want -1", p.A[7])
	}
}
