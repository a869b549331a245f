package step1

import (
	"math"

	"ruckigo/profile"
)

// PositionSecondOrderStep1 computes the time-optimal trapezoidal (bang-bang
// acceleration, no jerk limit) profile for a position-controlled DoF.
// Acceleration is free to switch instantaneously between phases — there is
// no jerk limit to obey — so the initial/final acceleration state is not
// tracked across phase boundaries; only position and velocity continuity
// matter. af is required to be 0 (a moving target acceleration needs the
// third-order solver).
func PositionSecondOrderStep1(p0, v0, pf, vf, vMax, vMin, aMax, aMin float64) (*profile.Profile, bool) {
	delta := pf - p0

	// Candidate ramp accelerations toward increasing vs. decreasing position.
	aUp, aDown := aMax, aMin
	if aUp <= 0 || aDown >= 0 {
		return nil, false
	}

	// Try a trapezoidal profile bounded by vMax first, then vMin, keeping
	// whichever is feasible (non-negative coast time) and shorter.
	var best *profile.Profile
	for _, vp := range []float64{vMax, vMin} {
		if vp == 0 {
			continue
		}
		t1 := (vp - v0) / aUp
		t3 := (vf - vp) / aDown
		if t1 < -1e-12 || t3 < -1e-12 {
			continue
		}
		if t1 < 0 {
			t1 = 0
		}
		if t3 < 0 {
			t3 = 0
		}
		distAccel := v0*t1 + 0.5*aUp*t1*t1
		distDecel := vp*t3 + 0.5*aDown*t3*t3
		t2 := (delta - distAccel - distDecel) / vp
		if t2 < -1e-9 {
			continue
		}
		if t2 < 0 {
			t2 = 0
		}

		p := &profile.Profile{Limits: profile.LimitsAcc0Acc1Vel}
		p.SetBoundary(p0, v0, 0, pf, vf, 0)
		p.BuildSecondOrder(
			[7]float64{t1, 0, 0, t2, t3, 0, 0},
			[7]float64{aUp, 0, 0, 0, aDown, 0, 0},
		)

		if best == nil || p.TSum[7] < best.TSum[7] {
			best = p
		}
	}
	if best != nil {
		return best, true
	}

	// Triangular fallback: no coast phase, solve for the peak velocity that
	// exactly covers delta with the two ramps back to back:
	// (vp^2 - v0^2)/(2 aUp) + (vf^2 - vp^2)/(2 aDown) = delta
	coeffA := 1.0/(2*aUp) - 1.0/(2*aDown)
	coeffC := -v0*v0/(2*aUp) + vf*vf/(2*aDown) - delta
	if math.Abs(coeffA) < 1e-14 {
		return nil, false
	}
	vp2 := -coeffC / coeffA
	if vp2 < 0 {
		return nil, false
	}
	vp := math.Sqrt(vp2)
	if delta < 0 {
		vp = -vp
	}
	if vp > vMax || vp < vMin {
		return nil, false
	}

	t1 := (vp - v0) / aUp
	t3 := (vf - vp) / aDown
	if t1 < 0 || t3 < 0 {
		return nil, false
	}

	p := &profile.Profile{Limits: profile.LimitsAcc0Acc1}
	p.SetBoundary(p0, v0, 0, pf, vf, 0)
	p.BuildSecondOrder(
		[7]float64{t1, t3, 0, 0, 0, 0, 0},
		[7]float64{aUp, aDown, 0, 0, 0, 0, 0},
	)
	return p, true
}
