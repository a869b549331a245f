package step2

import "ruckigo/profile"

// VelocitySecondOrderStep2 fits a single constant-acceleration ramp from a0
// to vf, af to exactly tf.
func VelocitySecondOrderStep2(v0, a0, vf, af, tf, aMax, aMin float64) (*profile.Profile, bool) {
	if tf <= 0 {
		return nil, false
	}
	a := (vf - v0) / tf
	if a > aMax+profile.AEps || a < aMin-profile.AEps {
		return nil, false
	}
	p := &profile.Profile{Limits: profile.LimitsAcc0}
	p.SetBoundary(0, v0, a0, 0, vf, af)
	p.BuildSecondOrder(
		[7]float64{tf, 0, 0, 0, 0, 0, 0},
		[7]float64{a, 0, 0, 0, 0, 0, 0},
	)
	return p, true
}
