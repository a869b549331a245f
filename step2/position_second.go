package step2

import (
	"math"

	"ruckigo/profile"
	"ruckigo/roots"
)

// PositionSecondOrderStep2 fits a trapezoidal (bang-bang acceleration, no
// jerk limit) position profile to exactly tf, by bisecting the cruise
// velocity. Grounded in the shape of position_second_step2.rs's
// time_acc0/time_none split, consolidated into one bisection per the same
// rationale as step1.PositionSecondOrderStep1.
func PositionSecondOrderStep2(p0, v0, pf, vf, tf, vMax, vMin, aMax, aMin float64) (*profile.Profile, bool) {
	if tf <= 0 {
		return nil, false
	}

	build := func(vPeak float64) *profile.Profile {
		aUp, aDown := aMax, aMin
		if vPeak < v0 {
			aUp = aMin
		}
		if vf > vPeak {
			aDown = aMax
		}
		if aUp == 0 || aDown == 0 {
			return nil
		}
		t0 := (vPeak - v0) / aUp
		t2 := (vf - vPeak) / aDown
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
		p := &profile.Profile{Limits: profile.LimitsAcc0Acc1Vel}
		p.SetBoundary(p0, v0, 0, pf, vf, 0)
		p.BuildSecondOrder(
			[7]float64{t0, 0, 0, t1, t2, 0, 0},
			[7]float64{aUp, 0, 0, 0, aDown, 0, 0},
		)
		return p
	}

	residual := func(vPeak float64) float64 {
		p := build(vPeak)
		if p == nil {
			return math.NaN()
		}
		return p.P[7] - pf
	}

	lo, hi := vMin, vMax
	flo, fhi := residual(lo), residual(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || flo*fhi > 0 {
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
		res := p.P[7] - pf
		if math.Abs(res) < profile.PPrecision {
			break
		}
		if (res > 0) == (flo > 0) {
			lo = mid
			flo = res
		} else {
			hi = mid
		}
	}

	if best != nil && best.CheckForSecondOrderWithTiming(tf, vMax, vMin, aMax, aMin) {
		return best, true
	}
	return nil, false
}
