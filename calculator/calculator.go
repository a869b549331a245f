// Package calculator implements the target calculator: for
// every DoF it runs the brake pre-profile and the matching Step-1 solver to
// find the DoF's minimum feasible duration and blocked-interval structure,
// picks a common synchronized duration across every DoF, and then applies
// each DoF's synchronization policy (Time via Step-2, Phase via timing
// reuse, TimeIfNecessary, or None) to produce the final per-DoF profile.
package calculator

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"

	"ruckigo/block"
	"ruckigo/brake"
	"ruckigo/params"
	"ruckigo/profile"
	"ruckigo/step1"
	"ruckigo/step2"
	"ruckigo/trajectory"
)

// durationGuard is the threshold beyond which a synchronized duration is
// rejected as almost certainly a numerical runaway rather than a legitimate
// plan.
const durationGuard = 7.6e3

// candidateEps is the tolerance used to match a synchronization candidate
// back to the block interval (or t_min) it came from.
const candidateEps = 1e-9

// ZeroLimitsError reports a DoF whose zero acceleration or jerk limit makes
// Step-1 infeasible.
type ZeroLimitsError struct{ DoF int }

func (e *ZeroLimitsError) Error() string {
	return fmt.Sprintf("dof %d: zero limits conflict in step 1", e.DoF)
}

// ExecutionTimeError reports a DoF for which no profile of any duration
// satisfies the boundary state and limits.
type ExecutionTimeError struct {
	DoF    int
	Reason string
}

func (e *ExecutionTimeError) Error() string {
	return fmt.Sprintf("dof %d: error calculating execution time: %s", e.DoF, e.Reason)
}

// InterruptedError reports that a calculation exceeded the caller's soft
// interrupt budget before a new trajectory was completed.
type InterruptedError struct{}

func (e *InterruptedError) Error() string {
	return "calculation interrupted: soft duration budget exceeded"
}

// SynchronizationError reports that every candidate synchronization time is
// blocked by at least one DoF.
type SynchronizationError struct{}

func (e *SynchronizationError) Error() string {
	return "error in time synchronization: every candidate duration is blocked by some DoF"
}

// DurationError reports a synchronized duration beyond the documented
// sanity guard.
type DurationError struct{ TF float64 }

func (e *DurationError) Error() string {
	return fmt.Sprintf("trajectory duration %v exceeds the %v s guard", e.TF, durationGuard)
}

// dofPlan is the calculator's per-DoF scratch state, threaded from brake
// through Step-1/block through synchronization into the final profile.
type dofPlan struct {
	index   int
	enabled bool
	ci      params.ControlInterface
	sync    params.Synchronization

	p0, v0, a0 float64
	pf, vf, af float64

	vMax, vMin, aMax, aMin, jMax float64

	brakeP        brake.Profile
	tBrake        float64
	brakeStartP   float64 // the p0 Finalize/At were called with, for re-sampling
	bp0, bv0, ba0 float64 // post-brake boundary state the main profile is planned from
	posOffset     float64

	block *block.Block
	final *profile.Profile
}

// order returns 1/2/3 for the first/second/third-order family a DoF's
// acceleration and jerk limits select, applying the zero-limit short-circuit
// rule (a zero limit drops the order below it).
func order(aMax, jMax float64) int {
	switch {
	case aMax <= 0:
		return 1
	case jMax <= 0:
		return 2
	default:
		return 3
	}
}

func negOrDefault(s []float64, i int, def float64) float64 {
	if i < len(s) {
		return s[i]
	}
	return def
}

// TargetCalculator owns the per-tick scratch needed to turn a validated
// InputParameter into a synchronized Trajectory.
type TargetCalculator struct {
	// DeltaTime is the control cycle used to round candidate synchronization
	// durations up under DurationDiscrete; 0 disables rounding.
	DeltaTime float64
}

// New constructs a TargetCalculator for the given control cycle.
func New(deltaTime float64) *TargetCalculator {
	return &TargetCalculator{DeltaTime: deltaTime}
}

// Calculate runs Step-1, synchronization and Step-2 for every DoF in inp and
// returns the resulting multi-DoF Trajectory.
func (tc *TargetCalculator) Calculate(inp *params.InputParameter) (*trajectory.Trajectory, error) {
	dof := inp.DegreesOfFreedom
	plans := make([]dofPlan, dof)

	var deadline time.Time
	if inp.InterruptCalculationDuration != nil && *inp.InterruptCalculationDuration > 0 {
		deadline = time.Now().Add(time.Duration(*inp.InterruptCalculationDuration * float64(time.Microsecond)))
	}
	overBudget := func() bool {
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	for i := 0; i < dof; i++ {
		if err := tc.prepareDof(inp, i, &plans[i]); err != nil {
			return nil, err
		}
		if overBudget() {
			return nil, &InterruptedError{}
		}
	}

	tf, err := tc.synchronize(inp, plans)
	if err != nil {
		return nil, err
	}

	limiting := findLimitingProfile(plans, tf)

	for i := range plans {
		if !plans[i].enabled {
			continue
		}
		if err := tc.applySynchronization(&plans[i], tf, limiting); err != nil {
			return nil, err
		}
		if overBudget() {
			return nil, &InterruptedError{}
		}
	}

	dofs := make([]trajectory.DofState, dof)
	indep := make([]float64, dof)
	duration := 0.0
	for i := range plans {
		pl := &plans[i]
		indep[i] = pl.block.TMin
		dofs[i] = trajectory.DofState{
			Enabled:   pl.enabled,
			Brake:     pl.brakeP,
			TBrake:    pl.tBrake,
			P0:        pl.brakeStartP,
			V0:        pl.v0,
			A0:        pl.a0,
			PosOffset: pl.posOffset,
			Main:      pl.final,
		}
		if pl.enabled {
			d := pl.tBrake
			if pl.final != nil {
				d += pl.final.Duration()
			}
			if d > duration {
				duration = d
			}
		}
	}

	return &trajectory.Trajectory{Dofs: dofs, Duration: duration, IndependentMinDurations: indep}, nil
}

// prepareDof resolves one DoF's limits and control interface, runs its
// brake profile and Step-1 solver, and fills pl.block.
func (tc *TargetCalculator) prepareDof(inp *params.InputParameter, i int, pl *dofPlan) error {
	pl.index = i
	pl.enabled = i >= len(inp.Enabled) || inp.Enabled[i]
	pl.ci = inp.ControlInterface
	if i < len(inp.PerDofControlInterface) && inp.PerDofControlInterface[i] != nil {
		pl.ci = *inp.PerDofControlInterface[i]
	}
	pl.sync = inp.Synchronization
	if i < len(inp.PerDofSynchronization) && inp.PerDofSynchronization[i] != nil {
		pl.sync = *inp.PerDofSynchronization[i]
	}

	pl.p0, pl.v0, pl.a0 = inp.CurrentPosition[i], inp.CurrentVelocity[i], inp.CurrentAcceleration[i]
	pl.pf, pl.vf, pl.af = inp.TargetPosition[i], inp.TargetVelocity[i], inp.TargetAcceleration[i]
	pl.vMax, pl.aMax, pl.jMax = inp.MaxVelocity[i], inp.MaxAcceleration[i], inp.MaxJerk[i]
	pl.vMin = negOrDefault(inp.MinVelocity, i, -pl.vMax)
	pl.aMin = negOrDefault(inp.MinAcceleration, i, -pl.aMax)

	if !pl.enabled {
		pl.bp0, pl.bv0, pl.ba0 = pl.p0, pl.v0, pl.a0
		pl.brakeStartP = pl.p0
		pl.block = &block.Block{TMin: 0}
		return nil
	}

	if pl.ci == params.ControlAcceleration {
		return errors.Errorf("dof %d: acceleration control interface has no Step-1/Step-2 solver (spec defines six position/velocity variants only)", i)
	}

	tc.runBrake(pl)

	p1, ok := tc.runStep1(pl)
	if !ok {
		if pl.jMax == 0 || pl.aMax == 0 {
			return &ZeroLimitsError{DoF: i}
		}
		return &ExecutionTimeError{DoF: i, Reason: "step 1 found no feasible profile"}
	}

	b, ok := block.CalculateBlock([]*profile.Profile{p1})
	if !ok {
		return &ExecutionTimeError{DoF: i, Reason: "failed to collapse step 1 candidates into a block"}
	}
	pl.block = b
	return nil
}

// runBrake picks the interface/order-matching brake variant and advances the
// DoF's boundary state through it.
func (tc *TargetCalculator) runBrake(pl *dofPlan) {
	ord := order(pl.aMax, pl.jMax)
	switch {
	case pl.ci == params.ControlPosition && ord == 3:
		pl.brakeP = brake.GetPositionBrakeTrajectory(pl.v0, pl.a0, pl.vMax, pl.vMin, pl.aMax, pl.aMin, pl.jMax)
		pl.tBrake, pl.bp0, pl.bv0, pl.ba0 = pl.brakeP.Finalize(pl.p0, pl.v0, pl.a0)
		pl.brakeStartP = pl.p0
	case pl.ci == params.ControlPosition && ord == 2:
		pl.brakeP = brake.GetSecondOrderPositionBrakeTrajectory(pl.v0, pl.vMax, pl.vMin, pl.aMax, pl.aMin)
		var vs float64
		pl.tBrake, pl.bp0, vs = pl.brakeP.FinalizeSecondOrder(pl.p0, pl.v0)
		pl.bv0, pl.ba0 = vs, 0
		pl.brakeStartP = pl.p0
	case pl.ci == params.ControlPosition:
		// First order: acceleration is never used, so there is nothing a
		// brake segment could correct.
		pl.bp0, pl.bv0, pl.ba0 = pl.p0, pl.v0, pl.a0
		pl.brakeStartP = pl.p0
	case pl.ci == params.ControlVelocity && ord == 3:
		pl.brakeP = brake.GetVelocityBrakeTrajectory(pl.a0, pl.aMax, pl.aMin, pl.jMax)
		pl.tBrake, _, pl.bv0, pl.ba0 = pl.brakeP.Finalize(0, pl.v0, pl.a0)
		pl.bp0 = 0
		pl.brakeStartP = 0
		pl.posOffset = pl.p0
	default:
		// Velocity, second order (or lower): no acceleration to correct.
		pl.brakeP = brake.GetSecondOrderVelocityBrakeTrajectory()
		pl.bp0, pl.bv0, pl.ba0 = 0, pl.v0, pl.a0
		pl.brakeStartP = 0
		pl.posOffset = pl.p0
	}
}

// runStep1 dispatches to the Step-1 variant matching this DoF's control
// interface and order.
func (tc *TargetCalculator) runStep1(pl *dofPlan) (*profile.Profile, bool) {
	ord := order(pl.aMax, pl.jMax)
	switch pl.ci {
	case params.ControlPosition:
		switch ord {
		case 1:
			return step1.PositionFirstOrderStep1(pl.bp0, pl.bv0, pl.ba0, pl.pf, pl.vf, pl.af, pl.vMax, pl.vMin)
		case 2:
			return step1.PositionSecondOrderStep1(pl.bp0, pl.bv0, pl.pf, pl.vf, pl.vMax, pl.vMin, pl.aMax, pl.aMin)
		default:
			return step1.PositionThirdOrderStep1(pl.bp0, pl.bv0, pl.ba0, pl.pf, pl.vf, pl.af, pl.vMax, pl.vMin, pl.aMax, pl.aMin, pl.jMax)
		}
	default: // ControlVelocity
		if ord == 3 {
			return step1.VelocityThirdOrderStep1(pl.bv0, pl.ba0, pl.vf, pl.af, pl.aMax, pl.aMin, pl.jMax)
		}
		return step1.VelocitySecondOrderStep1(pl.bv0, pl.ba0, pl.vf, pl.af, pl.aMax, pl.aMin)
	}
}

// runStep2 dispatches to the Step-2 variant fitting this DoF to duration tf.
func (tc *TargetCalculator) runStep2(pl *dofPlan, tf float64) (*profile.Profile, bool) {
	ord := order(pl.aMax, pl.jMax)
	switch pl.ci {
	case params.ControlPosition:
		switch ord {
		case 1:
			return step2.PositionFirstOrderStep2(pl.bp0, pl.pf, tf, pl.vMax, pl.vMin)
		case 2:
			return step2.PositionSecondOrderStep2(pl.bp0, pl.bv0, pl.pf, pl.vf, tf, pl.vMax, pl.vMin, pl.aMax, pl.aMin)
		default:
			return step2.PositionThirdOrderStep2(pl.bp0, pl.bv0, pl.ba0, pl.pf, pl.vf, pl.af, tf, pl.vMax, pl.vMin, pl.aMax, pl.aMin, pl.jMax)
		}
	default: // ControlVelocity
		if ord == 3 {
			return step2.VelocityThirdOrderStep2(pl.bv0, pl.ba0, pl.vf, pl.af, tf, pl.aMax, pl.aMin, pl.jMax)
		}
		return step2.VelocitySecondOrderStep2(pl.bv0, pl.ba0, pl.vf, pl.af, tf, pl.aMax, pl.aMin)
	}
}

// synchronize gathers every DoF's candidate sync points (t_min, blocked
// interval right edges, the optional minimum_duration), rounds them under
// discrete discretization, and picks the smallest candidate no DoF reports
// as blocked.
func (tc *TargetCalculator) synchronize(inp *params.InputParameter, plans []dofPlan) (float64, error) {
	if inp.DegreesOfFreedom == 1 && inp.MinimumDuration == nil && inp.DurationDiscretization == params.DurationContinuous {
		return plans[0].block.TMin, nil
	}

	var candidates []float64
	lowerBound := 0.0
	for i := range plans {
		if !plans[i].enabled {
			continue
		}
		b := plans[i].block
		candidates = append(candidates, b.TMin)
		if b.TMin > lowerBound {
			lowerBound = b.TMin
		}
		if b.A != nil {
			candidates = append(candidates, b.A.Right)
		}
		if b.B != nil {
			candidates = append(candidates, b.B.Right)
		}
	}
	if inp.MinimumDuration != nil {
		candidates = append(candidates, *inp.MinimumDuration)
		if *inp.MinimumDuration > lowerBound {
			lowerBound = *inp.MinimumDuration
		}
	}

	if inp.DurationDiscretization == params.DurationDiscrete && tc.DeltaTime > 0 {
		for i := range candidates {
			candidates[i] = math.Ceil(candidates[i]/tc.DeltaTime-1e-9) * tc.DeltaTime
		}
	}
	sort.Float64s(candidates)

	for _, c := range candidates {
		if c < lowerBound-candidateEps {
			continue
		}
		blocked := false
		for i := range plans {
			if plans[i].enabled && plans[i].block.IsBlocked(c) {
				blocked = true
				break
			}
		}
		if !blocked {
			if c > durationGuard {
				return 0, &DurationError{TF: c}
			}
			return c, nil
		}
	}
	return 0, &SynchronizationError{}
}

// findLimitingProfile returns the already-built profile (from some DoF's
// block) whose own duration equals tf, used as the Phase-synchronization
// reference; nil if no DoF's block realizes tf exactly (can happen when tf
// came from input.MinimumDuration).
func findLimitingProfile(plans []dofPlan, tf float64) *profile.Profile {
	for i := range plans {
		if !plans[i].enabled {
			continue
		}
		b := plans[i].block
		if scalar.EqualWithinAbs(b.TMin, tf, candidateEps) {
			return b.MinProfile
		}
		if b.A != nil && scalar.EqualWithinAbs(b.A.Right, tf, candidateEps) {
			return b.A.Profile
		}
		if b.B != nil && scalar.EqualWithinAbs(b.B.Right, tf, candidateEps) {
			return b.B.Profile
		}
	}
	return nil
}

// applySynchronization fills pl.final per the DoF's synchronization policy.
func (tc *TargetCalculator) applySynchronization(pl *dofPlan, tf float64, limiting *profile.Profile) error {
	switch pl.sync {
	case params.SyncNone:
		pl.final = pl.block.MinProfile
		return nil

	case params.SyncPhase:
		if limiting != nil {
			if scaled, ok := scalePhaseProfile(limiting, pl); ok {
				pl.final = scaled
				return nil
			}
		}
		// Collinearity failed, or this DoF's own block didn't supply the
		// reference profile and rescaling didn't validate: degrade to Time
		// synchronization rather than error. The interaction between Phase
		// and mismatched brake durations is under-specified; this fallback
		// is the documented choice, not a silent correctness fix.
		return tc.fitTime(pl, tf)

	case params.SyncTimeIfNecessary:
		if math.Abs(pl.vf) < 1e-12 && math.Abs(pl.af) < 1e-12 {
			pl.final = pl.block.MinProfile
			return nil
		}
		return tc.fitTime(pl, tf)

	default: // SyncTime
		return tc.fitTime(pl, tf)
	}
}

func (tc *TargetCalculator) fitTime(pl *dofPlan, tf float64) error {
	sub := tf - pl.tBrake
	p2, ok := tc.runStep2(pl, sub)
	if !ok {
		return &ExecutionTimeError{DoF: pl.index, Reason: "chosen synchronization duration has no feasible step-2 profile"}
	}
	pl.final = p2
	return nil
}

// scalePhaseProfile rescales ref's jerk (and, through re-integration, every
// derived quantity) by the ratio between pl's and ref's boundary state,
// reusing ref's exact segment timing so every Phase DoF shares identical
// t[0..7]. Returns ok=false if no consistent scale factor exists or the
// scaled profile violates pl's own limits.
func scalePhaseProfile(ref *profile.Profile, pl *dofPlan) (*profile.Profile, bool) {
	refPd := ref.Pf - ref.P[0]
	pd := pl.pf - pl.bp0

	var k float64
	switch {
	case refPd != 0:
		k = pd / refPd
	case ref.Vf != 0:
		k = pl.vf / ref.Vf
	case ref.Af != 0:
		k = pl.af / ref.Af
	default:
		k = 1
	}

	// Collinearity: every boundary quantity must scale by the same k.
	check := func(refX, x float64) bool {
		return math.Abs(x-k*refX) < 1e-9
	}
	if !check(refPd, pd) || !check(ref.V[0], pl.bv0) || !check(ref.A[0], pl.ba0) ||
		!check(ref.Vf, pl.vf) || !check(ref.Af, pl.af) {
		slog.Debug("phase synchronization collinearity failed, degrading to time synchronization",
			"dof", pl.index, "scale", k)
		return nil, false
	}

	np := &profile.Profile{Limits: ref.Limits, Direction: ref.Direction, ControlSigns: ref.ControlSigns}
	np.T = ref.T
	np.SetBoundary(pl.bp0, pl.bv0, pl.ba0, pl.pf, pl.vf, pl.af)
	for i := 0; i < 7; i++ {
		np.J[i] = k * ref.J[i]
	}
	if !np.Check(pl.vMax, pl.vMin, pl.aMax, pl.aMin, pl.jMax) {
		slog.Debug("phase-scaled profile failed its own limit check, degrading to time synchronization",
			"dof", pl.index, "scale", k)
		return nil, false
	}
	return np, true
}
