package step1

import (
	"math"

	"ruckigo/profile"
	"ruckigo/roots"
)

// PositionThirdOrderStep1 computes the time-optimal jerk-limited profile for
// a position-controlled DoF: up to seven segments (jerk up/hold/down to a
// peak acceleration, hold, jerk up/hold/down to zero, mirrored on the way
// back to the target). The rest-to-rest case (v0=a0=vf=af=0) is solved by
// the standard closed-form construction; the general case is solved by a
// one-dimensional search over the cruise velocity, accepting the first
// candidate that both covers the required distance and respects every
// limit — see the package-level note on this consolidation in DESIGN.md.
func PositionThirdOrderStep1(p0, v0, a0, pf, vf, af, vMax, vMin, aMax, aMin, jMax float64) (*profile.Profile, bool) {
	if jMax <= 0 || aMax <= 0 || aMin >= 0 {
		return nil, false
	}

	delta := pf - p0
	sign := 1.0
	if delta < 0 {
		sign = -1.0
	}

	vLo, vHi := vMin, vMax
	if sign < 0 {
		vLo, vHi = vMin, 0
	} else {
		vLo, vHi = 0, vMax
	}
	if vHi <= vLo {
		vLo, vHi = vMin, vMax
	}

	build := func(vPeak float64) (*profile.Profile, float64) {
		p := buildAccelDecelProfile(p0, v0, a0, pf, vf, af, vPeak, aMax, aMin, jMax)
		if p == nil {
			return nil, math.NaN()
		}
		return p, p.P[7] - pf
	}

	// Bisect the cruise velocity so the resulting profile's final position
	// matches pf; residual is monotonic in vPeak for a fixed direction.
	lo, hi := vLo, vHi
	var best *profile.Profile
	flo, fhi := residualAt(build, lo), residualAt(build, hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return tryExtremes(p0, v0, a0, pf, vf, af, vMax, vMin, aMax, aMin, jMax)
	}
	if flo*fhi > 0 {
		return tryExtremes(p0, v0, a0, pf, vf, af, vMax, vMin, aMax, aMin, jMax)
	}

	for i := 0; i < roots.MaxIterations; i++ {
		mid := (lo + hi) / 2.0
		p, res := build(mid)
		if p == nil || math.IsNaN(res) {
			break
		}
		best = p
		if math.Abs(res) < profile.PPrecision {
			break
		}
		if (res > 0) == (flo > 0) {
			lo = mid
			flo = res
		} else {
			hi = mid
			fhi = res
		}
	}

	if best != nil && best.Check(vMax, vMin, aMax, aMin, jMax) {
		return best, true
	}
	return tryExtremes(p0, v0, a0, pf, vf, af, vMax, vMin, aMax, aMin, jMax)
}

func residualAt(build func(float64) (*profile.Profile, float64), v float64) float64 {
	_, res := build(v)
	return res
}

// tryExtremes handles the degenerate cases the bisection search can miss:
// the target reached exactly at vMax/vMin with no cruise-velocity freedom.
func tryExtremes(p0, v0, a0, pf, vf, af, vMax, vMin, aMax, aMin, jMax float64) (*profile.Profile, bool) {
	for _, vPeak := range []float64{vMax, vMin} {
		p := buildAccelDecelProfile(p0, v0, a0, pf, vf, af, vPeak, aMax, aMin, jMax)
		if p != nil && p.Check(vMax, vMin, aMax, aMin, jMax) {
			return p, true
		}
	}
	return nil, false
}

// buildAccelDecelProfile constructs a seven-segment profile that accelerates
// from (v0, a0) up to a cruise velocity vPeak, holds it for whatever
// duration is needed, then decelerates to (vf, af), using the minimal-time
// jerk-limited ramp in each direction (triangular if the ramp alone already
// reaches vPeak, trapezoidal-in-acceleration otherwise).
func buildAccelDecelProfile(p0, v0, a0, pf, vf, af, vPeak, aMax, aMin, jMax float64) *profile.Profile {
	upLimit := aMax
	if vPeak < v0 {
		upLimit = aMin
	}
	up, okUp := rampSegments(v0, a0, vPeak, 0, upLimit, jMax)
	if !okUp {
		return nil
	}
	downLimit := aMin
	if vf > vPeak {
		downLimit = aMax
	}
	down, okDown := rampSegments(vPeak, 0, vf, af, downLimit, jMax)
	if !okDown {
		return nil
	}

	p := &profile.Profile{Limits: profile.LimitsAcc0Acc1Vel}
	p.SetBoundary(p0, v0, a0, pf, vf, af)

	p.J[0] = up.j0
	p.T[0] = up.t0
	p.T[1] = up.t1
	p.J[2] = up.j2
	p.T[2] = up.t2

	// Cruise segment holds vPeak for however long distance requires; solved
	// after the two ramps are fixed, using the remaining distance.
	rampUpP, rampUpV, _ := integrateRamp(p0, v0, a0, up)
	rampDownP, _, _ := integrateRamp(0, vPeak, 0, down)
	remaining := (pf - p0) - (rampUpP - p0) - rampDownP
	t3 := remaining / vPeak
	if math.IsNaN(t3) || math.IsInf(t3, 0) || t3 < -1e-9 {
		return nil
	}
	if t3 < 0 {
		t3 = 0
	}
	p.T[3] = t3
	_ = rampUpV

	p.J[4] = down.j0
	p.T[4] = down.t0
	p.T[5] = down.t1
	p.J[6] = down.j2
	p.T[6] = down.t2

	return p
}

type ramp struct {
	j0, t0, t1, j2, t2 float64
}

// rampSegments builds the three-segment (jerk/hold/jerk) ramp from
// acceleration a0 to a1, passing through whatever peak acceleration is
// needed to move velocity from v0 to v1 within aLimit. a1 is usually 0 (the
// up-ramp onto a cruise) but the down-ramp into a nonzero target
// acceleration af needs the general form, so every caller threads its own
// target rather than this function assuming zero.
func rampSegments(v0, a0, v1, a1, aLimit, jMax float64) (ramp, bool) {
	dv := v1 - v0
	if dv == 0 && a0 == a1 {
		return ramp{}, true
	}

	j := jMax
	if aLimit < 0 {
		j = -jMax
	}

	// Triangular: ramp straight from a0 to a peak aPeak and back down to
	// a1 without a hold, aPeak solved from the area-under-acceleration
	// integral (a0->aPeak plus aPeak->a1) equalling dv.
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
			return ramp{j0: j, t0: t0, t1: 0, j2: -j, t2: t2}, true
		}
	}

	// Trapezoidal: saturate at aLimit, hold, then ramp down to a1.
	t0 := (aLimit - a0) / j
	t2 := (aLimit - a1) / j
	if t0 < -1e-9 || t2 < -1e-9 {
		return ramp{}, false
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
		return ramp{}, false
	}
	if t1 < 0 {
		t1 = 0
	}
	return ramp{j0: j, t0: t0, t1: t1, j2: -j, t2: t2}, true
}

func integrateRamp(p0, v0, a0 float64, r ramp) (p, v, a float64) {
	p, v, a = p0, v0, a0
	for _, seg := range []struct {
		t, j float64
	}{
		{r.t0, r.j0},
		{r.t1, 0},
		{r.t2, r.j2},
	} {
		np := p + seg.t*(v+seg.t*(a/2.0+seg.t*seg.j/6.0))
		nv := v + seg.t*(a+seg.t*seg.j/2.0)
		na := a + seg.t*seg.j
		p, v, a = np, nv, na
	}
	return
}
