// Package step2 implements the duration-fitting ("Step-2") profile search:
// given a common synchronized duration tf, fit one DoF's boundary state into
// a profile that takes exactly tf, one function per control-interface/limit
// order combination.
package step2

import "ruckigo/profile"

// PositionFirstOrderStep1 naming intentionally omitted: the first-order case
// has no free parameter to fit a duration to (the single segment's velocity
// is whatever covers the distance in tf), so the fit is direct division.

// PositionFirstOrderStep2 fits a single constant-velocity segment to exactly
// tf.
func PositionFirstOrderStep2(p0, pf, tf, vMax, vMin float64) (*profile.Profile, bool) {
	if tf <= 0 {
		return nil, false
	}
	var t, v [7]float64
	t[3] = tf
	v[3] = (pf - p0) / tf
	p := &profile.Profile{Limits: profile.LimitsVel}
	p.SetBoundary(p0, 0, 0, pf, 0, 0)
	p.BuildFirstOrder(t, v)
	if !p.CheckForFirstOrderWithTiming(tf, vMax, vMin) {
		return nil, false
	}
	return p, true
}
