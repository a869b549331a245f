package step2

import (
	"math"

	"ruckigo/profile"
	"ruckigo/roots"
)

// PositionThirdOrderStep2 fits a jerk-limited position profile to exactly
// tf. The Acc0Acc1Vel family — every limit (both acceleration extremes and
// the velocity plateau) saturated — is solved closed-form, grounded in
// position_third_step2.rs lines 127-242: the two acceleration ramps are
// fully determined by a0/af/aMax/aMin/jMax, which fixes each hold duration
// from its own velocity-area equation, leaving the cruise duration to absorb
// whatever remains of tf and position to fall out as an accept/reject
// residual.
//
// The other eight families (Acc1Vel, Acc0Vel, Vel, Acc0Acc1, Acc1, Acc0,
// None, NoneSmooth) are not ported closed-form — see DESIGN.md's Open
// Question entry — and are instead served first by bisectCruisePlateau
// (reusing buildAcc0Acc1Vel's ramp algebra with a plateau strictly inside
// [vMin, vMax]) and, failing that, by residualFallback, which rebuilds the
// same two-ramp-plus-cruise shape from step1's rampSegments construction
// and bisects the cruise velocity against roots.ShrinkInterval until
// profile.CheckWithTiming accepts.
func PositionThirdOrderStep2(p0, v0, a0, pf, vf, af, tf, vMax, vMin, aMax, aMin, jMax float64) (*profile.Profile, bool) {
	if tf <= 0 || jMax <= 0 {
		return nil, false
	}

	if p, ok := buildAcc0Acc1Vel(p0, v0, a0, pf, vf, af, tf, vMax, vMax, vMin, aMax, aMin, jMax, profile.DirectionUDDU); ok {
		return p, true
	}
	// Up-down-up-down sibling: cruise at vMin instead of vMax.
	if p, ok := buildAcc0Acc1Vel(p0, v0, a0, pf, vf, af, tf, vMin, vMax, vMin, aMax, aMin, jMax, profile.DirectionUDUD); ok {
		return p, true
	}
	// Every other family (Acc1Vel, Acc0Vel, Vel, Acc0Acc1, Acc1, Acc0, None)
	// is the Acc0Acc1Vel shape with a cruise plateau strictly between vMin
	// and vMax instead of pinned to a limit — buildAcc0Acc1Vel's own ramp
	// algebra doesn't assume the plateau saturates vMax/vMin, it only takes
	// it as a parameter, so the remaining families are a single bisection
	// over that plateau rather than nine separate closed forms.
	if p, ok := bisectCruisePlateau(p0, v0, a0, pf, vf, af, tf, vMax, vMin, aMax, aMin, jMax); ok {
		return p, true
	}
	return residualFallback(p0, v0, a0, pf, vf, af, tf, vMax, vMin, aMax, aMin, jMax)
}

// bisectCruisePlateau searches the cruise velocity vPeak in [vMin, vMax] for
// the value that makes buildAcc0Acc1Vel's remaining cruise duration exactly
// absorb position, via a coarse scan for a sign-changing bracket followed by
// roots.ShrinkInterval. A ramp segment's duration clamping to zero inside
// buildAcc0Acc1Vel is what produces the Acc1Vel/Acc0Vel/Acc0Acc1/Acc1/Acc0/
// None sub-families as vPeak moves away from vMax/vMin.
func bisectCruisePlateau(p0, v0, a0, pf, vf, af, tf, vMax, vMin, aMax, aMin, jMax float64) (*profile.Profile, bool) {
	residualAt := func(vPeak float64) (float64, bool) {
		p, ok := buildAcc0Acc1Vel(p0, v0, a0, pf, vf, af, tf, vPeak, vMax, vMin, aMax, aMin, jMax, profile.DirectionUDDU)
		if !ok {
			return 0, false
		}
		return p.P[7] - pf, true
	}

	const samples = 48
	var prevV, prevR float64
	havePrev := false
	var lo, hi float64
	found := false
	for i := 0; i <= samples; i++ {
		v := vMin + (vMax-vMin)*float64(i)/float64(samples)
		r, ok := residualAt(v)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev && ((prevR <= 0 && r >= 0) || (prevR >= 0 && r <= 0)) {
			lo, hi = prevV, v
			found = true
			break
		}
		prevV, prevR, havePrev = v, r, true
	}
	if !found {
		return nil, false
	}

	vPeak := roots.ShrinkInterval(
		func(x float64) float64 { r, _ := residualAt(x); return r },
		func(x float64) float64 {
			h := 1e-6
			rp, okp := residualAt(x + h)
			rm, okm := residualAt(x - h)
			if !okp || !okm {
				return 1
			}
			return (rp - rm) / (2 * h)
		}, lo, hi)

	p, ok := buildAcc0Acc1Vel(p0, v0, a0, pf, vf, af, tf, vPeak, vMax, vMin, aMax, aMin, jMax, profile.DirectionUDDU)
	if !ok {
		return nil, false
	}
	return p, true
}

func buildAcc0Acc1Vel(p0, v0, a0, pf, vf, af, tf, vPeak, vMax, vMin, aMax, aMin, jMax float64, dir profile.Direction) (*profile.Profile, bool) {
	// Up-ramp: a0 -> aMax -> 0, reaching vPeak.
	t0 := (aMax - a0) / jMax
	t2 := aMax / jMax
	if t0 < -1e-9 || t2 < -1e-9 {
		return nil, false
	}
	if t0 < 0 {
		t0 = 0
	}
	if t2 < 0 {
		t2 = 0
	}
	vUp0 := a0*t0 + jMax*t0*t0/2.0
	vUp2 := aMax*t2 - jMax*t2*t2/2.0
	// v0 + vUp0 + aMax*t1 + vUp2 = vPeak  =>  t1 solved linearly.
	t1 := (vPeak - v0 - vUp0 - vUp2) / aMax
	if t1 < -1e-9 {
		return nil, false
	}
	if t1 < 0 {
		t1 = 0
	}

	// Down-ramp: 0 -> aMin (segment 4, jerk -jMax) -> af (segment 6, jerk +jMax).
	t4 := -aMin / jMax
	t6 := (af - aMin) / jMax
	if t4 < -1e-9 || t6 < -1e-9 {
		return nil, false
	}
	if t4 < 0 {
		t4 = 0
	}
	if t6 < 0 {
		t6 = 0
	}
	vDown4Area := -jMax * t4 * t4 / 2.0
	vDown6Area := aMin*t6 + jMax*t6*t6/2.0
	// vPeak + vDown4Area + aMin*t5 + vDown6Area = af  => t5 solved linearly.
	t5 := (af - vPeak - vDown4Area - vDown6Area) / aMin
	if t5 < -1e-9 {
		return nil, false
	}
	if t5 < 0 {
		t5 = 0
	}

	t3 := tf - (t0 + t1 + t2 + t4 + t5 + t6)
	if t3 < -1e-9 {
		return nil, false
	}
	if t3 < 0 {
		t3 = 0
	}

	p := &profile.Profile{Limits: profile.LimitsAcc0Acc1Vel, Direction: dir}
	p.SetBoundary(p0, v0, a0, pf, vf, af)
	p.J[0] = jMax
	p.T[0] = t0
	p.T[1] = t1
	p.J[2] = -jMax
	p.T[2] = t2
	p.T[3] = t3
	p.J[4] = -jMax
	p.T[4] = t4
	p.T[5] = t5
	p.J[6] = jMax
	p.T[6] = t6

	if p.CheckWithTiming(tf, vMax, vMin, aMax, aMin, jMax) {
		return p, true
	}
	return nil, false
}

// residualFallback handles every PositionThirdOrderStep2 family other than
// Acc0Acc1Vel: bisect the cruise velocity vPeak so the up-ramp (a0 -> 0,
// via rampToTarget) and the down-ramp (0 -> af) consume whatever of tf the
// cruise segment doesn't, and the resulting final position lands on pf.
// This mirrors step1/position_third.go's buildAccelDecelProfile — same
// two-ramp-plus-cruise shape — but fits a prescribed duration instead of a
// prescribed distance, so the free parameter is vPeak rather than t3.
func residualFallback(p0, v0, a0, pf, vf, af, tf, vMax, vMin, aMax, aMin, jMax float64) (*profile.Profile, bool) {
	build := func(vPeak float64) *profile.Profile {
		upLimit := aMax
		if vPeak < v0 {
			upLimit = aMin
		}
		up, okUp := rampToTarget(v0, a0, vPeak, 0, upLimit, jMax)
		if !okUp {
			return nil
		}
		downLimit := aMin
		if vf > vPeak {
			downLimit = aMax
		}
		down, okDown := rampToTarget(vPeak, 0, vf, af, downLimit, jMax)
		if !okDown {
			return nil
		}

		t3 := tf - (up.t0 + up.t1 + up.t2 + down.t0 + down.t1 + down.t2)
		if t3 < -1e-9 {
			return nil
		}
		if t3 < 0 {
			t3 = 0
		}

		p := &profile.Profile{Limits: profile.LimitsNone}
		p.SetBoundary(p0, v0, a0, pf, vf, af)
		p.J[0] = up.j0
		p.T[0] = up.t0
		p.T[1] = up.t1
		p.J[2] = up.j2
		p.T[2] = up.t2
		p.T[3] = t3
		p.J[4] = down.j0
		p.T[4] = down.t0
		p.T[5] = down.t1
		p.J[6] = down.j2
		p.T[6] = down.t2
		return p
	}

	residual := func(vPeak float64) float64 {
		p := build(vPeak)
		if p == nil {
			return math.NaN()
		}
		p.Check(vMax, vMin, aMax, aMin, jMax)
		return p.P[7] - pf
	}

	lo, hi := vMin, vMax
	flo, fhi := residual(lo), residual(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || flo*fhi > 0 {
		return nil, false
	}

	vPeak := roots.ShrinkInterval(residual, func(x float64) float64 {
		h := 1e-6
		return (residual(x+h) - residual(x-h)) / (2 * h)
	}, lo, hi)

	p := build(vPeak)
	if p != nil && p.CheckWithTiming(tf, vMax, vMin, aMax, aMin, jMax) {
		return p, true
	}
	return nil, false
}

type stepRamp struct {
	j0, t0, t1, j2, t2 float64
}

// rampToTarget builds the three-segment (jerk/hold/jerk) ramp from
// acceleration a0 to a1, passing through whatever peak acceleration is
// needed to move velocity from v0 to v1 within aLimit. Same construction as
// step1/position_third.go's rampSegments (duplicated rather than exported
// across packages, matching the jSigned-style small duplication already
// used between step1 and step2).
func rampToTarget(v0, a0, v1, a1, aLimit, jMax float64) (stepRamp, bool) {
	dv := v1 - v0
	if dv == 0 && a0 == a1 {
		return stepRamp{}, true
	}

	j := jMax
	if aLimit < 0 {
		j = -jMax
	}

	h := (a0*a0+a1*a1)/2.0 + j*dv
	signJ := 1.0
	if j < 0 {
		signJ = -1.0
	}
	aPeak := signJ * math.Sqrt(math.Max(0, h))

	if math.Abs(aPeak) <= math.Abs(aLimit)+1e-9 {
		t0 := (aPeak - a0) / j
		t2 := (aPeak - a1) / j
		if t0 >= -1e-9 && t2 >= -1e-9 {
			if t0 < 0 {
				t0 = 0
			}
			if t2 < 0 {
				t2 = 0
			}
			return stepRamp{j0: j, t0: t0, t1: 0, j2: -j, t2: t2}, true
		}
	}

	t0 := (aLimit - a0) / j
	t2 := (aLimit - a1) / j
	if t0 < -1e-9 || t2 < -1e-9 {
		return stepRamp{}, false
	}
	if t0 < 0 {
		t0 = 0
	}
	if t2 < 0 {
		t2 = 0
	}
	vUsedByRamps := (aLimit*aLimit-a0*a0)/(2*j) + (aLimit*aLimit-a1*a1)/(2*j)
	t1 := (dv - vUsedByRamps) / aLimit
	if t1 < -1e-9 {
		return stepRamp{}, false
	}
	if t1 < 0 {
		t1 = 0
	}
	return stepRamp{j0: j, t0: t0, t1: t1, j2: -j, t2: t2}, true
}
