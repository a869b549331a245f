// Package block collapses the handful of feasible per-duration profile
// candidates a Step-1 solver finds for one DoF into a single minimum
// duration plus the duration intervals that are provably unreachable by any
// profile for that DoF, used by the calculator to pick (and validate) a
// common synchronized duration across every DoF.
package block

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"

	"ruckigo/profile"
)

const epsilon = 2.220446049250313e-16

// Interval is a duration range (Left, Right) that no profile for this DoF
// can realize; Profile is the candidate whose own duration is Right (the
// profile the calculator should reuse if it needs a duration >= Right but
// less than the next interval).
type Interval struct {
	Left, Right float64
	Profile     *profile.Profile
}

// Block is the result of collapsing a DoF's valid-profile candidates: a
// minimum feasible duration (TMin, MinProfile) and up to two blocked
// intervals beyond it.
type Block struct {
	TMin       float64
	MinProfile *profile.Profile
	A, B       *Interval
}

// CalculateBlock sorts candidates by duration, drops each candidate whose
// duration is near-equal to the last one kept, using a band that widens as
// more distinct durations are kept (8*epsilon until a second one is kept,
// 32*epsilon once two are kept, 256*epsilon once three or more are), and
// collapses what remains into TMin plus zero, one or two blocked intervals.
func CalculateBlock(candidates []*profile.Profile) (*Block, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	sorted := append([]*profile.Profile(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Duration() < sorted[j].Duration() })

	dedup := make([]*profile.Profile, 0, len(sorted))
	band := 8 * epsilon
	for _, c := range sorted {
		if len(dedup) > 0 {
			last := dedup[len(dedup)-1].Duration()
			if scalar.EqualWithinAbs(last, c.Duration(), band*math.Max(1, c.Duration())) {
				continue
			}
		}
		dedup = append(dedup, c)
		switch {
		case len(dedup) >= 3:
			band = 256 * epsilon
		case len(dedup) == 2:
			band = 32 * epsilon
		}
	}

	b := &Block{TMin: dedup[0].Duration(), MinProfile: dedup[0]}

	switch len(dedup) {
	case 1:
		// No blocked interval: every duration >= TMin is reachable, the
		// synchronization step only needs to re-fit Step-2 at the chosen tf.
	case 2:
		b.A = &Interval{Left: dedup[0].Duration(), Right: dedup[1].Duration(), Profile: dedup[1]}
	case 3:
		b.A = &Interval{Left: dedup[0].Duration(), Right: dedup[1].Duration(), Profile: dedup[1]}
		b.B = &Interval{Left: dedup[1].Duration(), Right: dedup[2].Duration(), Profile: dedup[2]}
	default:
		// Four or five surviving candidates collapse to exactly two blocked
		// intervals spanning the full candidate range; any candidates
		// strictly between the second and second-to-last are dominated (a
		// feasible profile exists at their duration via the boundary
		// profiles already kept) and are dropped from the block structure.
		b.A = &Interval{Left: dedup[0].Duration(), Right: dedup[1].Duration(), Profile: dedup[1]}
		b.B = &Interval{Left: dedup[len(dedup)-2].Duration(), Right: dedup[len(dedup)-1].Duration(), Profile: dedup[len(dedup)-1]}
	}

	return b, true
}

// IsBlocked reports whether duration t falls strictly inside one of the
// block's forbidden intervals.
func (b *Block) IsBlocked(t float64) bool {
	in := func(iv *Interval) bool {
		return iv != nil && t > iv.Left && t < iv.Right
	}
	return in(b.A) || in(b.B)
}
