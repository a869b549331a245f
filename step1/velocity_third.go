package step1

import (
	"math"

	"ruckigo/profile"
)

// VelocityThirdOrderStep1 computes the time-optimal jerk-limited profile for
// a velocity-controlled DoF: at most three segments (ramp off a0, optional
// acceleration plateau, ramp onto af), position is unconstrained.
func VelocityThirdOrderStep1(v0, a0, vf, af, aMax, aMin, jMax float64) (*profile.Profile, bool) {
	vd := vf - v0

	if jMax <= 0 {
		return nil, false
	}

	// time_acc0: direct two-segment ramp through a plateau acceleration,
	// closed form via the area under the a(t) trapezoid equalling vd.
	tryAcc0 := func(aPlateau float64) (*profile.Profile, bool) {
		if aPlateau == 0 {
			return nil, false
		}
		t0 := (aPlateau - a0) / jMax
		t2 := (aPlateau - af) / jMax
		if t0 < -1e-12 || t2 < -1e-12 {
			return nil, false
		}
		if t0 < 0 {
			t0 = 0
		}
		if t2 < 0 {
			t2 = 0
		}
		// Velocity covered by the two ramps, from the closed-form
		// area-under-acceleration integral; the remainder runs at the
		// plateau for t1.
		t1 := (vd - (aPlateau*aPlateau-a0*a0)/(2*jMaxSigned(aPlateau-a0, jMax)) - (af*af-aPlateau*aPlateau)/(2*jMaxSigned(af-aPlateau, jMax))) / aPlateau
		if math.IsNaN(t1) || t1 < -1e-9 {
			return nil, false
		}
		if t1 < 0 {
			t1 = 0
		}

		p := &profile.Profile{Limits: profile.LimitsAcc0}
		p.SetBoundary(0, v0, a0, 0, vf, af)
		p.J[0] = jMaxSigned(aPlateau-a0, jMax)
		p.T[0] = t0
		p.A[1] = aPlateau
		p.T[3] = t1
		p.J[4] = jMaxSigned(af-aPlateau, jMax)
		p.T[4] = t2
		return p, true
	}

	if p, ok := tryAcc0(aMax); ok {
		return p, true
	}
	if p, ok := tryAcc0(aMin); ok {
		return p, true
	}

	// time_none: no plateau, a symmetric two-segment jerk profile solved via
	// h1 = sqrt((a0^2+af^2)/2 + jMax*vd).
	h1 := (a0*a0+af*af)/2.0 + jMax*vd
	if h1 >= 0 {
		h1 = math.Sqrt(h1)
		for _, sign := range []float64{1, -1} {
			j := sign * jMax
			t0 := (h1 - a0) / j
			t2 := (h1 - af) / j
			if t0 >= -1e-9 && t2 >= -1e-9 {
				if t0 < 0 {
					t0 = 0
				}
				if t2 < 0 {
					t2 = 0
				}
				p := &profile.Profile{Limits: profile.LimitsNone}
				p.SetBoundary(0, v0, a0, 0, vf, af)
				p.J[0] = j
				p.T[0] = t0
				p.J[4] = -j
				p.T[4] = t2
				return p, true
			}
		}
	}

	return nil, false
}

func jMaxSigned(delta, jMax float64) float64 {
	if delta < 0 {
		return -jMax
	}
	return jMax
}
