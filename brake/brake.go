// Package brake computes a pre-trajectory correction profile for a
// degree-of-freedom whose current state already violates its velocity or
// acceleration limits. A main jerk-limited profile can only be built from a
// state that respects those limits, so the calculator runs a brake segment
// first whenever the input is out of range, then continues the main profile
// from wherever the brake segment leaves off.
package brake

import (
	"math"

	"ruckigo/kinematics"
)

// EPS is the safety margin applied when deciding whether a state is already
// within limits, matching the source's tolerance for floating point noise at
// the limit boundary.
const EPS = 2.2e-14

// Profile holds up to two braking segments: duration[i], jerk j[i] and
// elapsed time t[i] for each. A segment with duration 0 is a no-op.
type Profile struct {
	Duration [2]float64
	J        [2]float64
	T        [2]float64
}

// GetPositionBrakeTrajectory builds the (up to two segment) brake profile for
// a third-order (position-controlled) DoF whose current velocity and/or
// acceleration are outside [vMin,vMax] / [aMin,aMax]. jMax must be positive.
func GetPositionBrakeTrajectory(v0, a0, vMax, vMin, aMax, aMin, jMax float64) Profile {
	var p Profile

	// Phase 0: bring acceleration within [aMin, aMax] if it is not already.
	switch {
	case a0 > aMax+EPS:
		p.J[0] = -jMax
		p.Duration[0] = (a0 - aMax) / jMax
	case a0 < aMin-EPS:
		p.J[0] = jMax
		p.Duration[0] = (aMin - a0) / jMax
	}

	// Project velocity forward through phase 0 to see whether it is still
	// out of bounds once acceleration has been corrected.
	v1 := v0 + p.Duration[0]*(a0+p.Duration[0]*p.J[0]/2.0)
	a1 := a0 + p.Duration[0]*p.J[0]

	// Phase 1: bring velocity within [vMin, vMax] using a symmetric
	// accelerate/decelerate-to-zero-acceleration segment, if still violated.
	switch {
	case v1 > vMax+EPS:
		p.J[1] = -jMax
		p.Duration[1] = (a1 + math.Sqrt(a1*a1/2.0+jMax*(v1-vMax))) / jMax
	case v1 < vMin-EPS:
		p.J[1] = jMax
		p.Duration[1] = (-a1 + math.Sqrt(a1*a1/2.0+jMax*(vMin-v1))) / jMax
	}
	if p.Duration[1] < 0 || math.IsNaN(p.Duration[1]) {
		p.Duration[1] = 0
		p.J[1] = 0
	}

	return p
}

// GetSecondOrderPositionBrakeTrajectory is the second-order (no jerk limit on
// the position profile's own acceleration term) analogue: only the velocity
// bound needs correcting, via a single constant-acceleration phase.
func GetSecondOrderPositionBrakeTrajectory(v0, vMax, vMin, aMax, aMin float64) Profile {
	var p Profile
	switch {
	case v0 > vMax+EPS:
		p.J[0] = -aMax
		p.Duration[0] = (v0 - vMax) / aMax
	case v0 < vMin-EPS:
		p.J[0] = -aMin
		p.Duration[0] = (vMin - v0) / (-aMin)
	}
	if p.Duration[0] < 0 || math.IsNaN(p.Duration[0]) {
		p.Duration[0] = 0
		p.J[0] = 0
	}
	return p
}

// GetVelocityBrakeTrajectory corrects a velocity-controlled DoF whose
// acceleration is out of bounds; position plays no role.
func GetVelocityBrakeTrajectory(a0, aMax, aMin, jMax float64) Profile {
	var p Profile
	switch {
	case a0 > aMax+EPS:
		p.J[0] = -jMax
		p.Duration[0] = (a0 - aMax) / jMax
	case a0 < aMin-EPS:
		p.J[0] = jMax
		p.Duration[0] = (aMin - a0) / jMax
	}
	return p
}

// GetSecondOrderVelocityBrakeTrajectory: a velocity-controlled, second-order
// DoF has no acceleration state to correct, so the brake profile is always
// empty; kept as an explicit function to mirror the source's four-variant
// interface/order split rather than special-casing the caller.
func GetSecondOrderVelocityBrakeTrajectory() Profile {
	return Profile{}
}

// Finalize advances a third-order state (p, v, a) through the brake profile's
// segments and returns the resulting state, along with the total brake
// duration.
func (p Profile) Finalize(p0, v0, a0 float64) (tBrake, ps, vs, as float64) {
	ps, vs, as = p0, v0, a0
	for i := 0; i < 2; i++ {
		if p.Duration[i] <= 0 {
			continue
		}
		t := p.Duration[i]
		j := p.J[i]
		ps = ps + t*(vs+t*(as/2.0+t*j/6.0))
		vs = vs + t*(as+t*j/2.0)
		as = as + t*j
		tBrake += t
	}
	return
}

// At samples the brake trajectory at local offset t (0 <= t <= total brake
// duration), starting from boundary state (p0, v0, a0), for the trajectory
// sampler's section-0 lookup.
func (p Profile) At(t, p0, v0, a0 float64) (pos, vel, acc, jerk float64) {
	pos, vel, acc = p0, v0, a0
	remaining := t
	for i := 0; i < 2; i++ {
		d := p.Duration[i]
		if d <= 0 {
			continue
		}
		if remaining <= d {
			pos, vel, acc = kinematics.Integrate(remaining, pos, vel, acc, p.J[i])
			return pos, vel, acc, p.J[i]
		}
		pos, vel, acc = kinematics.Integrate(d, pos, vel, acc, p.J[i])
		remaining -= d
	}
	return pos, vel, acc, 0
}

// FinalizeSecondOrder is Finalize's second-order counterpart: no jerk term,
// acceleration held constant across each segment.
func (p Profile) FinalizeSecondOrder(p0, v0 float64) (tBrake, ps, vs float64) {
	ps, vs = p0, v0
	for i := 0; i < 2; i++ {
		if p.Duration[i] <= 0 {
			continue
		}
		t := p.Duration[i]
		a := p.J[i] // acceleration held for this segment is stored in J[i] for the second-order variant
		ps = ps + t*(vs+t*a/2.0)
		vs = vs + t*a
		tBrake += t
	}
	return
}
