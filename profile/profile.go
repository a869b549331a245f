// Package profile defines the seven-segment jerk-limited trajectory record
// shared by every Step-1/Step-2 solver and the calculator: the per-segment
// durations, jerks, and the integrated position/velocity/acceleration state
// at each segment boundary, plus the family of feasibility checks solvers use
// to accept or reject a candidate profile.
package profile

import (
	"math"

	"ruckigo/kinematics"
	"ruckigo/roots"
)

// ReachedLimits classifies which kinematic limits a profile actually
// saturates, mirroring the source's tag enum used to pick the closed-form
// family a Step-1/Step-2 solver should try.
type ReachedLimits int

const (
	LimitsAcc0Acc1Vel ReachedLimits = iota
	LimitsVel
	LimitsAcc0
	LimitsAcc1
	LimitsAcc0Acc1
	LimitsAcc0Vel
	LimitsAcc1Vel
	LimitsNone
)

// Direction selects which of the two jerk-sign control patterns (up-down
// down-up vs. up-down up-down) a profile follows.
type Direction int

const (
	DirectionUDDU Direction = iota
	DirectionUDUD
)

// ControlSigns records whether a profile was derived directly or by flipping
// the sign of the whole problem (negating position/velocity/acceleration and
// swapping min/max limits) before solving.
type ControlSigns int

const (
	ControlOriginal ControlSigns = iota
	ControlFlipped
)

// Public numerical tolerances, matching the documented contract.
const (
	PPrecision = 1e-8
	VPrecision = 1e-8
	APrecision = 1e-10
	VEps       = 2e-14
	AEps       = 2e-14
	JEps       = 2e-14
)

// durationEps is the slack allowed on an individual segment duration before
// it is rejected as meaningfully negative (vs. floating point noise at 0).
const durationEps = 1e-12

// Profile is a seven-segment, jerk-limited motion: T holds each segment's
// duration, J its (constant) jerk, and TSum/A/V/P the cumulative time and
// integrated state at each of the eight segment boundaries (index 0 is the
// initial state, index 7 the final one).
type Profile struct {
	T    [7]float64
	TSum [8]float64
	J    [7]float64
	A    [8]float64
	V    [8]float64
	P    [8]float64

	Pf, Vf, Af float64

	Limits       ReachedLimits
	Direction    Direction
	ControlSigns ControlSigns
}

// SetBoundary sets the profile's initial and target state. Must be called
// before a solver populates T/J and Check validates the result.
func (p *Profile) SetBoundary(p0, v0, a0, pf, vf, af float64) {
	p.P[0], p.V[0], p.A[0] = p0, v0, a0
	p.Pf, p.Vf, p.Af = pf, vf, af
}

// integrate fills TSum/A/V/P from T/J and the already-set initial state.
func (p *Profile) integrate() {
	p.TSum[0] = 0
	for i := 0; i < 7; i++ {
		t := p.T[i]
		p.TSum[i+1] = p.TSum[i] + t
		np, nv, na := kinematics.Integrate(t, p.P[i], p.V[i], p.A[i], p.J[i])
		p.P[i+1], p.V[i+1], p.A[i+1] = np, nv, na
	}
}

// BuildSecondOrder is the second-order analogue of integrate(): it fills
// TSum/P/V/A from explicit per-segment durations and accelerations, with J
// left at zero throughout. A bang-bang (no jerk limit) profile's
// acceleration can jump between segments, which integrate()'s continuous
// A[i+1] = A[i] + J[i]*T[i] recurrence cannot express, so second-order
// solvers call this directly instead of relying on Check's integrate().
func (p *Profile) BuildSecondOrder(t, a [7]float64) {
	p.T = t
	p.TSum[0] = 0
	for i := 0; i < 7; i++ {
		p.A[i] = a[i]
		p.TSum[i+1] = p.TSum[i] + t[i]
		p.P[i+1] = p.P[i] + p.V[i]*t[i] + 0.5*a[i]*t[i]*t[i]
		p.V[i+1] = p.V[i] + a[i]*t[i]
	}
	p.A[7] = a[6]
}

// BuildFirstOrder is the first-order analogue of BuildSecondOrder: it fills
// TSum/P/V from explicit per-segment durations and velocities, with A and J
// left at zero throughout. A constant-velocity (no acceleration limit)
// profile's velocity jumps between segments, which neither integrate() nor
// BuildSecondOrder's recurrences can express, so first-order solvers call
// this directly.
func (p *Profile) BuildFirstOrder(t, v [7]float64) {
	p.T = t
	p.TSum[0] = 0
	for i := 0; i < 7; i++ {
		p.V[i] = v[i]
		p.TSum[i+1] = p.TSum[i] + t[i]
		p.P[i+1] = p.P[i] + v[i]*t[i]
	}
	p.V[7] = v[6]
}

// Duration returns the profile's total duration once populated.
func (p *Profile) Duration() float64 {
	return p.TSum[7]
}

func (p *Profile) durationsValid() bool {
	for _, t := range p.T {
		if t < -durationEps {
			return false
		}
	}
	return true
}

// pinSaturatedAccelerations overwrites the acceleration at a saturated
// plateau boundary with the exact commanded limit: when Limits says a ramp
// reached aMax or aMin, that boundary's acceleration is aMax/aMin by
// definition, not whatever forward integration's accumulated
// floating-point error happens to land on. The ramp's own jerk sign says
// which limit it drove toward.
func (p *Profile) pinSaturatedAccelerations(aMax, aMin float64) {
	if hasAcc0(p.Limits) {
		pinPlateau(&p.A[1], &p.A[2], p.J[0], aMax, aMin)
	}
	if hasAcc1(p.Limits) {
		pinPlateau(&p.A[5], &p.A[6], p.J[4], aMax, aMin)
	}
}

func hasAcc0(l ReachedLimits) bool {
	switch l {
	case LimitsAcc0Acc1Vel, LimitsAcc0, LimitsAcc0Acc1, LimitsAcc0Vel:
		return true
	}
	return false
}

func hasAcc1(l ReachedLimits) bool {
	switch l {
	case LimitsAcc0Acc1Vel, LimitsAcc1, LimitsAcc0Acc1, LimitsAcc1Vel:
		return true
	}
	return false
}

func pinPlateau(a1, a2 *float64, j, aMax, aMin float64) {
	if j > 0 {
		*a1, *a2 = aMax, aMax
	} else if j < 0 {
		*a1, *a2 = aMin, aMin
	}
}

// Check integrates the profile and validates: non-negative segment
// durations, the final state matches the target within the public
// tolerances, and every segment boundary's velocity/acceleration and every
// segment's jerk stay within the given limits.
func (p *Profile) Check(vMax, vMin, aMax, aMin, jMax float64) bool {
	if !p.durationsValid() {
		return false
	}
	p.integrate()
	p.pinSaturatedAccelerations(aMax, aMin)

	if math.Abs(p.P[7]-p.Pf) > PPrecision {
		return false
	}
	if math.Abs(p.V[7]-p.Vf) > VPrecision {
		return false
	}
	if math.Abs(p.A[7]-p.Af) > APrecision {
		return false
	}

	for i := 0; i <= 7; i++ {
		if p.V[i] > vMax+VEps || p.V[i] < vMin-VEps {
			return false
		}
		if p.A[i] > aMax+AEps || p.A[i] < aMin-AEps {
			return false
		}
	}
	for _, j := range p.J {
		if math.Abs(j) > jMax+JEps {
			return false
		}
	}
	return true
}

// CheckWithTiming is Check plus an exact-duration requirement, used by
// Step-2 solvers that must fit a profile to a synchronized common duration.
func (p *Profile) CheckWithTiming(tf, vMax, vMin, aMax, aMin, jMax float64) bool {
	if !p.Check(vMax, vMin, aMax, aMin, jMax) {
		return false
	}
	return math.Abs(p.TSum[7]-tf) < 1e-8
}

// CheckForSecondOrder validates a second-order (acceleration-bang, no jerk
// limit on this DoF's own profile) position or velocity profile. Unlike
// Check, it does not call integrate(): a bang-bang profile's per-segment
// acceleration can jump between segments, which integrate()'s continuous
// A[i+1] = A[i] + J[i]*T[i] recurrence cannot reproduce, so the solver fills
// P/V/A/TSum directly and this only validates the result against the
// boundary and the velocity/acceleration limits.
func (p *Profile) CheckForSecondOrder(vMax, vMin, aMax, aMin float64) bool {
	if !p.durationsValid() {
		return false
	}

	if math.Abs(p.P[7]-p.Pf) > PPrecision {
		return false
	}
	if math.Abs(p.V[7]-p.Vf) > VPrecision {
		return false
	}
	for i := 0; i <= 7; i++ {
		if p.V[i] > vMax+VEps || p.V[i] < vMin-VEps {
			return false
		}
		if p.A[i] > aMax+AEps || p.A[i] < aMin-AEps {
			return false
		}
	}
	return true
}

// CheckForSecondOrderWithTiming is CheckForSecondOrder plus the exact-duration
// requirement.
func (p *Profile) CheckForSecondOrderWithTiming(tf, vMax, vMin, aMax, aMin float64) bool {
	if !p.CheckForSecondOrder(vMax, vMin, aMax, aMin) {
		return false
	}
	return math.Abs(p.TSum[7]-tf) < 1e-8
}

// CheckForFirstOrder validates a first-order (constant-velocity transport,
// neither acceleration nor jerk constrained on this DoF) position profile:
// the final position must match and every segment's velocity must stay
// within limits. The solver fills P/V/TSum via BuildFirstOrder, so like
// CheckForSecondOrder this only validates the already-populated arrays.
func (p *Profile) CheckForFirstOrder(vMax, vMin float64) bool {
	if !p.durationsValid() {
		return false
	}

	if math.Abs(p.P[7]-p.Pf) > PPrecision {
		return false
	}
	for i := 0; i <= 7; i++ {
		if p.V[i] > vMax+VEps || p.V[i] < vMin-VEps {
			return false
		}
	}
	return true
}

// CheckForFirstOrderWithTiming is CheckForFirstOrder plus the exact-duration
// requirement.
func (p *Profile) CheckForFirstOrderWithTiming(tf, vMax, vMin float64) bool {
	if !p.CheckForFirstOrder(vMax, vMin) {
		return false
	}
	return math.Abs(p.TSum[7]-tf) < 1e-8
}

// CheckForVelocity validates a velocity-controlled, third-order profile:
// position is not constrained (there is no target position to match), only
// the final velocity/acceleration and the running velocity/acceleration/jerk
// bounds.
func (p *Profile) CheckForVelocity(vMax, vMin, aMax, aMin, jMax float64) bool {
	if !p.durationsValid() {
		return false
	}
	p.integrate()
	p.pinSaturatedAccelerations(aMax, aMin)

	if math.Abs(p.V[7]-p.Vf) > VPrecision {
		return false
	}
	if math.Abs(p.A[7]-p.Af) > APrecision {
		return false
	}
	for i := 0; i <= 7; i++ {
		if p.V[i] > vMax+VEps || p.V[i] < vMin-VEps {
			return false
		}
		if p.A[i] > aMax+AEps || p.A[i] < aMin-AEps {
			return false
		}
	}
	for _, j := range p.J {
		if math.Abs(j) > jMax+JEps {
			return false
		}
	}
	return true
}

// CheckForVelocityWithTiming is CheckForVelocity plus the exact-duration
// requirement.
func (p *Profile) CheckForVelocityWithTiming(tf, vMax, vMin, aMax, aMin, jMax float64) bool {
	if !p.CheckForVelocity(vMax, vMin, aMax, aMin, jMax) {
		return false
	}
	return math.Abs(p.TSum[7]-tf) < 1e-8
}

// CheckForSecondOrderVelocity is the second-order counterpart of
// CheckForVelocity: no position target, no jerk limit, and like
// CheckForSecondOrder it trusts the solver's directly-populated P/V/A/TSum
// rather than recomputing them through integrate().
func (p *Profile) CheckForSecondOrderVelocity(vMax, vMin, aMax, aMin float64) bool {
	if !p.durationsValid() {
		return false
	}

	if math.Abs(p.V[7]-p.Vf) > VPrecision {
		return false
	}
	for i := 0; i <= 7; i++ {
		if p.V[i] > vMax+VEps || p.V[i] < vMin-VEps {
			return false
		}
		if p.A[i] > aMax+AEps || p.A[i] < aMin-AEps {
			return false
		}
	}
	return true
}

// CheckForSecondOrderVelocityWithTiming adds the exact-duration requirement.
func (p *Profile) CheckForSecondOrderVelocityWithTiming(tf, vMax, vMin, aMax, aMin float64) bool {
	if !p.CheckForSecondOrderVelocity(vMax, vMin, aMax, aMin) {
		return false
	}
	return math.Abs(p.TSum[7]-tf) < 1e-8
}

// At evaluates the profile's position/velocity/acceleration/jerk at time t
// (0 <= t <= Duration()), locating the containing segment by a linear scan
// over TSum — the degree-of-freedom count and segment count are both small,
// matching the source's own choice of a linear scan over a binary search.
func (p *Profile) At(t float64) (pos, vel, acc, jerk float64) {
	if t <= 0 {
		return p.P[0], p.V[0], p.A[0], p.J[0]
	}
	for i := 0; i < 7; i++ {
		if t <= p.TSum[i+1] || i == 6 {
			dt := t - p.TSum[i]
			pos, vel, acc = kinematics.Integrate(dt, p.P[i], p.V[i], p.A[i], p.J[i])
			jerk = p.J[i]
			return
		}
	}
	return p.P[7], p.V[7], p.A[7], 0
}

// GetPositionExtrema returns the minimum and maximum position attained over
// the whole profile, by evaluating each segment's endpoints plus any
// interior time where velocity crosses zero (the only place a cubic segment
// can have a local position extremum).
func (p *Profile) GetPositionExtrema() (min, max float64) {
	min, max = p.P[0], p.P[0]
	consider := func(x float64) {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	for i := 0; i < 7; i++ {
		t0, t1 := p.TSum[i], p.TSum[i+1]
		dt := t1 - t0
		consider(p.P[i])
		consider(p.P[i+1])
		if dt <= 0 {
			continue
		}
		// v(tau) = V[i] + A[i]*tau + J[i]*tau^2/2, tau in [0, dt]
		for _, tau := range roots.SolveQuadratic(p.J[i]/2.0, p.A[i], p.V[i]) {
			if tau > 0 && tau < dt {
				pos, _, _ := kinematics.Integrate(tau, p.P[i], p.V[i], p.A[i], p.J[i])
				consider(pos)
			}
		}
	}
	return
}

// GetFirstStateAtPosition finds the first time t at which the profile
// crosses the given position, along with velocity/acceleration at that time,
// by solving the per-segment cubic p(tau) - position = 0 for tau in [0,
// segment duration] and returning the earliest valid crossing. ok is false
// if the profile never reaches the given position.
func (p *Profile) GetFirstStateAtPosition(position float64) (t, vel, acc float64, ok bool) {
	for i := 0; i < 7; i++ {
		dt := p.TSum[i+1] - p.TSum[i]
		if dt <= 0 {
			continue
		}
		// P[i] + V[i]*tau + A[i]*tau^2/2 + J[i]*tau^3/6 - position = 0
		a := p.J[i] / 6.0
		b := p.A[i] / 2.0
		c := p.V[i]
		d := p.P[i] - position

		var cands []float64
		if math.Abs(a) < 1e-300 {
			cands = roots.SolveQuadratic(b, c, d)
		} else {
			cands = roots.SolveCubic(a, b, c, d)
		}

		best := math.Inf(1)
		found := false
		for _, tau := range cands {
			if tau >= -1e-9 && tau <= dt+1e-9 && tau < best {
				best = tau
				found = true
			}
		}
		if found {
			tau := math.Max(0, best)
			pos, v, ac := kinematics.Integrate(tau, p.P[i], p.V[i], p.A[i], p.J[i])
			_ = pos
			return p.TSum[i] + tau, v, ac, true
		}
	}
	return 0, 0, 0, false
}
