package step2

import (
	"math"

	"ruckigo/profile"
	"ruckigo/roots"
)

// VelocityThirdOrderStep2 fits a jerk-limited velocity profile (ramp off a0,
// optional acceleration plateau, ramp onto af) to exactly tf: the plateau
// takes whatever of tf the two ramps leave, and the plateau acceleration is
// bisected until the final velocity matches vf.
// Grounded in the shape of velocity_third_step2.rs's time_acc0/time_none
// split (tried in that order below), consolidated into one bisection rather
// than the source's separate closed-form branches per direction.
func VelocityThirdOrderStep2(v0, a0, vf, af, tf, aMax, aMin, jMax float64) (*profile.Profile, bool) {
	if tf <= 0 || jMax <= 0 {
		return nil, false
	}

	build := func(aPlateau float64) *profile.Profile {
		j0 := jSigned(aPlateau-a0, jMax)
		j2 := jSigned(af-aPlateau, jMax)
		t0 := (aPlateau - a0) / j0
		t2 := (af - aPlateau) / j2
		if t0 < -1e-9 || t2 < -1e-9 {
			return nil
		}
		if t0 < 0 {
			t0 = 0
		}
		if t2 < 0 {
			t2 = 0
		}
		t1 := tf - t0 - t2
		if t1 < -1e-9 {
			return nil
		}
		if t1 < 0 {
			t1 = 0
		}
		p := &profile.Profile{Limits: profile.LimitsAcc0}
		p.SetBoundary(0, v0, a0, 0, vf, af)
		p.J[0] = j0
		p.T[0] = t0
		p.T[3] = t1
		p.J[4] = j2
		p.T[4] = t2
		return p
	}

	residual := func(aPlateau float64) float64 {
		p := build(aPlateau)
		if p == nil {
			return math.NaN()
		}
		p.CheckForVelocity(math.Inf(1), math.Inf(-1), aMax, aMin, jMax) // integrates V
		return p.V[7] - vf
	}

	lo, hi := aMin, aMax
	flo, fhi := residual(lo), residual(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || flo*fhi > 0 {
		// Direct single-ramp (no plateau) fallback.
		if p := build(af); p != nil && p.CheckForVelocityWithTiming(tf, math.Inf(1), math.Inf(-1), aMax, aMin, jMax) {
			return p, true
		}
		return nil, false
	}

	var best *profile.Profile
	for i := 0; i < roots.MaxIterations; i++ {
		mid := (lo + hi) / 2.0
		p := build(mid)
		if p == nil {
			break
		}
		best = p
		p.CheckForVelocity(math.Inf(1), math.Inf(-1), aMax, aMin, jMax) // integrates V
		res := p.V[7] - vf
		if math.Abs(res) < profile.VPrecision {
			break
		}
		if (res > 0) == (flo > 0) {
			lo = mid
			flo = res
		} else {
			hi = mid
		}
	}

	if best != nil && best.CheckForVelocityWithTiming(tf, math.Inf(1), math.Inf(-1), aMax, aMin, jMax) {
		return best, true
	}
	return nil, false
}

func jSigned(delta, jMax float64) float64 {
	if delta < 0 {
		return -jMax
	}
	return jMax
}
