// Package trajectory reconstructs per-DoF state at an arbitrary time from
// the profiles the calculator produced: an optional brake prefix followed by
// a single seven-segment main profile. Waypoint splines are out of scope, so
// this core always produces exactly one section, and section indexing is a
// constant 0 here rather than a real lookup.
package trajectory

import (
	"ruckigo/brake"
	"ruckigo/profile"
)

// PositionExtrema is the minimum/maximum position attained by one DoF over
// the whole trajectory.
type PositionExtrema struct {
	Min, Max float64
}

// DofState holds one DoF's brake prefix, main profile and the position
// offset needed to translate a velocity-interface profile's internal
// zero-based position bookkeeping back to the DoF's real position axis.
// P0 is the position the brake profile was computed from: the real current
// position for a position-interface DoF, or 0 for a velocity-interface one
// (velocity/acceleration interfaces have no position target to bookkeep
// from). PosOffset (0 in the position-interface case) is what shifts a
// brake/main sample taken relative to P0 back onto the real axis.
type DofState struct {
	Enabled    bool
	Brake      brake.Profile
	TBrake     float64
	P0, V0, A0 float64
	PosOffset  float64
	Main       *profile.Profile
}

// Trajectory is the synchronized, multi-DoF result of a single calculation:
// one DofState per degree of freedom plus the overall duration and the
// per-DoF unsynchronized minimum durations the calculator found in Step-1.
type Trajectory struct {
	Dofs                    []DofState
	Duration                float64
	IndependentMinDurations []float64
}

func (d *DofState) totalDuration() float64 {
	if !d.Enabled {
		return 0
	}
	dur := d.TBrake
	if d.Main != nil {
		dur += d.Main.Duration()
	}
	return dur
}

// GetDuration returns the trajectory's overall duration in seconds.
func (t *Trajectory) GetDuration() float64 {
	return t.Duration
}

// AtTime reconstructs position/velocity/acceleration/jerk for every DoF at
// time t (t < 0 is clamped to 0). The returned section index is always 0:
// this core never produces more than one section.
func (t *Trajectory) AtTime(tm float64) (p, v, a, j []float64, section int) {
	n := len(t.Dofs)
	p = make([]float64, n)
	v = make([]float64, n)
	a = make([]float64, n)
	j = make([]float64, n)

	local := tm
	if local < 0 {
		local = 0
	}

	for i := range t.Dofs {
		d := &t.Dofs[i]
		if !d.Enabled {
			p[i], v[i], a[i] = d.P0, d.V0, d.A0
			continue
		}

		dur := d.totalDuration()
		switch {
		case local >= dur:
			if d.Main != nil {
				p[i] = d.Main.P[7] + d.PosOffset
				v[i] = d.Main.V[7]
				a[i] = d.Main.A[7]
			} else {
				p[i], v[i], a[i] = d.P0, d.V0, d.A0
			}
		case local < d.TBrake:
			pos, vel, acc, jerk := d.Brake.At(local, d.P0, d.V0, d.A0)
			p[i], v[i], a[i], j[i] = pos+d.PosOffset, vel, acc, jerk
		case d.Main != nil:
			pos, vel, acc, jerk := d.Main.At(local - d.TBrake)
			p[i], v[i], a[i], j[i] = pos+d.PosOffset, vel, acc, jerk
		}
	}
	return p, v, a, j, 0
}

// GetPositionExtrema returns the minimum/maximum position reached by each
// DoF over the whole trajectory.
func (t *Trajectory) GetPositionExtrema() []PositionExtrema {
	out := make([]PositionExtrema, len(t.Dofs))
	for i := range t.Dofs {
		d := &t.Dofs[i]
		if !d.Enabled || d.Main == nil {
			out[i] = PositionExtrema{Min: d.P0, Max: d.P0}
			continue
		}
		mn, mx := d.Main.GetPositionExtrema()
		out[i] = PositionExtrema{Min: mn + d.PosOffset, Max: mx + d.PosOffset}
	}
	return out
}

// GetFirstTimeAtPosition returns the earliest time at which the given DoF
// crosses position, or ok=false if it never does.
func (t *Trajectory) GetFirstTimeAtPosition(dof int, position float64) (tm float64, ok bool) {
	if dof < 0 || dof >= len(t.Dofs) {
		return 0, false
	}
	d := &t.Dofs[dof]
	if !d.Enabled || d.Main == nil {
		return 0, false
	}
	local, _, _, found := d.Main.GetFirstStateAtPosition(position - d.PosOffset)
	if !found {
		return 0, false
	}
	return d.TBrake + local, true
}
