// Package step1 implements the time-optimal ("Step-1") profile search: for
// one DoF's boundary state and limits, find the profile(s) that reach the
// target state in minimum time, one function per control-interface/limit
// order combination.
package step1

import "ruckigo/profile"

// PositionFirstOrderStep1 is the degenerate case where neither acceleration
// nor jerk is constrained: the DoF jumps directly to +/- the velocity limit
// (whichever matches the direction of travel) and holds it for exactly the
// time needed to cover the remaining distance. Valid only when the boundary
// velocity and acceleration are already zero; any DoF with an out-of-zero
// boundary state must run a brake segment first.
func PositionFirstOrderStep1(p0, v0, a0, pf, vf, af, vMax, vMin float64) (*profile.Profile, bool) {
	if v0 != 0 || a0 != 0 || vf != 0 || af != 0 {
		return nil, false
	}

	delta := pf - p0
	var t, v [7]float64
	limits := profile.LimitsNone
	if delta != 0 {
		cruise := vMax
		if delta < 0 {
			cruise = vMin
		}
		if cruise == 0 {
			return nil, false
		}
		t[3] = delta / cruise
		v[3] = cruise
		limits = profile.LimitsVel
	}

	p := &profile.Profile{Limits: limits}
	p.SetBoundary(p0, 0, 0, pf, 0, 0)
	p.BuildFirstOrder(t, v)
	if !p.CheckForFirstOrder(vMax, vMin) {
		return nil, false
	}
	return p, true
}
