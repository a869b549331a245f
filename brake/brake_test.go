package brake

import (
	"math"
	"testing"
)

func TestGetPositionBrakeTrajectoryNoOpWithinLimits(t *testing.T) {
	p := GetPositionBrakeTrajectory(1, 0, 10, -10, 10, -10, 10)
	if p.Duration[0] != 0 || p.Duration[1] != 0 {
		t.Fatalf("expected no brake segments when already within limits, got %+v", p)
	}
}

func TestGetPositionBrakeTrajectoryCorrectsOverAcceleration(t *testing.T) {
	// a0 = 15 exceeds aMax = 10; vMax is loose enough that phase 0 alone
	// settles velocity back within range, so no phase-1 segment is needed.
	p := GetPositionBrakeTrajectory(0, 15, 20, -20, 10, -10, 5)
	if p.Duration[0] <= 0 {
		t.Fatalf("expected a nonzero phase-0 segment to correct over-acceleration")
	}
	if p.Duration[1] != 0 {
		t.Fatalf("expected no phase-1 segment, got %+v", p)
	}
	_, _, a1, _ := p.At(p.Duration[0], 0, 0, 15)
	if math.Abs(a1-10) > 1e-6 {
		t.Fatalf("acceleration after phase 0 = %v, want 10 (aMax)", a1)
	}
}

func TestGetPositionBrakeTrajectoryCorrectsOverVelocity(t *testing.T) {
	// v0 = 20 exceeds vMax = 10, with acceleration already in bounds.
	p := GetPositionBrakeTrajectory(20, 0, 10, -10, 10, -10, 5)
	if p.Duration[1] <= 0 {
		t.Fatalf("expected a nonzero phase-1 segment to correct over-velocity, got %+v", p)
	}
}

func TestFinalizeAccumulatesDuration(t *testing.T) {
	p := GetPositionBrakeTrajectory(0, 15, 20, -20, 10, -10, 5)
	tBrake, _, _, a := p.Finalize(0, 0, 15)
	if tBrake != p.Duration[0]+p.Duration[1] {
		t.Fatalf("tBrake = %v, want sum of segment durations %v", tBrake, p.Duration[0]+p.Duration[1])
	}
	if math.Abs(a-10) > 1e-6 {
		t.Fatalf("final acceleration = %v, want 10 (aMax)", a)
	}
}

func TestAtMatchesFinalizeAtFullDuration(t *testing.T) {
	p := GetPositionBrakeTrajectory(20, 15, 10, -10, 10, -10, 5)
	tBrake, wantP, wantV, wantA := p.Finalize(2, 20, 15)

	gotP, gotV, gotA, _ := p.At(tBrake, 2, 20, 15)
	if math.Abs(gotP-wantP) > 1e-9 || math.Abs(gotV-wantV) > 1e-9 || math.Abs(gotA-wantA) > 1e-9 {
		t.Fatalf("At(tBrake) = (%v,%v,%v), want (%v,%v,%v)", gotP, gotV, gotA, wantP, wantV, wantA)
	}
}

func TestGetVelocityBrakeTrajectoryNoOpWithinLimits(t *testing.T) {
	p := GetVelocityBrakeTrajectory(0, 10, -10, 5)
	if p.Duration[0] != 0 {
		t.Fatalf("expected no brake segment when acceleration is already within limits")
	}
}

func TestGetSecondOrderVelocityBrakeTrajectoryAlwaysEmpty(t *testing.T) {
	p := GetSecondOrderVelocityBrakeTrajectory()
	if p.Duration[0] != 0 || p.Duration[1] != 0 {
		t.Fatalf("expected an always-empty brake profile for second-order velocity control")
	}
}
