package step1

import (
	"ruckigo/profile"
)

// VelocitySecondOrderStep1 is the time-optimal profile for a
// velocity-controlled DoF with no jerk limit: a single ramp at aMax (aMin
// when vf is below v0) from v0 to the target velocity vf. It reports
// ok=false only when that acceleration limit is zero.
func VelocitySecondOrderStep1(v0, a0, vf, af, aMax, aMin float64) (*profile.Profile, bool) {
	dv := vf - v0
	if dv == 0 && a0 == af {
		p := &profile.Profile{Limits: profile.LimitsNone}
		p.SetBoundary(0, v0, a0, 0, vf, af)
		p.BuildSecondOrder([7]float64{}, [7]float64{a0, a0, a0, a0, a0, a0, a0})
		return p, true
	}

	a := aMax
	if dv < 0 {
		a = aMin
	}
	if a == 0 {
		return nil, false
	}

	t := dv / a
	if t < 0 {
		return nil, false
	}

	p := &profile.Profile{Limits: profile.LimitsAcc0}
	p.SetBoundary(0, v0, a0, 0, vf, af)
	p.BuildSecondOrder(
		[7]float64{t, 0, 0, 0, 0, 0, 0},
		[7]float64{a, 0, 0, 0, 0, 0, 0},
	)
	return p, true
}
