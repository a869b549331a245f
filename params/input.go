package params

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ControlInterface selects which derivative of position a DoF's target state
// describes.
type ControlInterface int

const (
	ControlPosition ControlInterface = iota
	ControlVelocity
	ControlAcceleration
)

// Synchronization selects how multiple DoFs are brought to a common
// duration.
type Synchronization int

const (
	SyncTime Synchronization = iota
	SyncTimeIfNecessary
	SyncPhase
	SyncNone
)

// DurationDiscretization selects whether the output duration may be any
// positive real (Continuous) or must be a multiple of the driver's delta
// time (Discrete).
type DurationDiscretization int

const (
	DurationContinuous DurationDiscretization = iota
	DurationDiscrete
)

// InputParameter is the full boundary-state-plus-limits record for one
// planning call, across every DoF.
type InputParameter struct {
	DegreesOfFreedom int

	CurrentPosition     []float64
	CurrentVelocity     []float64
	CurrentAcceleration []float64
	TargetPosition      []float64
	TargetVelocity      []float64
	TargetAcceleration  []float64

	MaxVelocity     []float64
	MinVelocity     []float64 // a DoF past the end of this slice uses -MaxVelocity
	MaxAcceleration []float64
	MinAcceleration []float64 // a DoF past the end of this slice uses -MaxAcceleration
	MaxJerk         []float64

	Enabled []bool

	ControlInterface       ControlInterface
	Synchronization        Synchronization
	DurationDiscretization DurationDiscretization

	PerDofControlInterface []*ControlInterface
	PerDofSynchronization  []*Synchronization

	MinimumDuration              *float64
	InterruptCalculationDuration *float64 // soft calculation budget in microseconds
}

// NewInputParameter allocates an InputParameter for the given DoF count with
// every slice sized and every limit defaulted to +/-Inf (unconstrained) and
// every DoF enabled, matching the source's InputParameter::new defaults.
func NewInputParameter(dof int) *InputParameter {
	inp := &InputParameter{DegreesOfFreedom: dof}
	inp.CurrentPosition = make([]float64, dof)
	inp.CurrentVelocity = make([]float64, dof)
	inp.CurrentAcceleration = make([]float64, dof)
	inp.TargetPosition = make([]float64, dof)
	inp.TargetVelocity = make([]float64, dof)
	inp.TargetAcceleration = make([]float64, dof)
	inp.MaxVelocity = make([]float64, dof)
	inp.MinVelocity = make([]float64, dof)
	inp.MaxAcceleration = make([]float64, dof)
	inp.MinAcceleration = make([]float64, dof)
	inp.MaxJerk = make([]float64, dof)
	inp.Enabled = make([]bool, dof)
	for i := 0; i < dof; i++ {
		inp.MaxVelocity[i] = math.Inf(1)
		inp.MinVelocity[i] = math.Inf(-1)
		inp.MaxAcceleration[i] = math.Inf(1)
		inp.MinAcceleration[i] = math.Inf(-1)
		inp.MaxJerk[i] = math.Inf(1)
		inp.Enabled[i] = true
	}
	return inp
}

// vAtAZero returns the velocity this DoF will inevitably reach once its
// current acceleration has been entirely removed at constant jerk j,
// starting from velocity v0 and acceleration a0: v0 + a0^2/(2*j).
func vAtAZero(v0, a0, j float64) float64 {
	return v0 + a0*a0/(2*j)
}

// Validate checks all 22 per-DoF conditions from the source's
// InputParameter::validate and aggregates every failure (rather than
// stopping at the first) via multierr, so a caller can fix every problem in
// one pass instead of iterating one error at a time.
func (inp *InputParameter) Validate(checkCurrentState, checkTargetState bool) error {
	var errs error

	for dof := 0; dof < inp.DegreesOfFreedom; dof++ {
		ci := inp.ControlInterface
		if dof < len(inp.PerDofControlInterface) && inp.PerDofControlInterface[dof] != nil {
			ci = *inp.PerDofControlInterface[dof]
		}

		jMax := inp.MaxJerk[dof]
		if math.IsNaN(jMax) || jMax < 0 {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: invalid max jerk %v", dof, jMax))
		}

		aMax := inp.MaxAcceleration[dof]
		if math.IsNaN(aMax) || aMax < 0 {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: invalid max acceleration %v", dof, aMax))
		}
		aMin := inp.MinAcceleration[dof]
		if math.IsNaN(aMin) {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: invalid min acceleration %v", dof, aMin))
		} else if aMin > 0 {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: min acceleration %v must not be positive", dof, aMin))
		}

		a0 := inp.CurrentAcceleration[dof]
		af := inp.TargetAcceleration[dof]
		if math.IsNaN(a0) {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: current acceleration is NaN", dof))
		}
		if math.IsNaN(af) {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: target acceleration is NaN", dof))
		}
		if checkCurrentState && (a0 > aMax+1e-12 || a0 < aMin-1e-12) {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: current acceleration %v out of [%v, %v]", dof, a0, aMin, aMax))
		}
		if checkTargetState && (af > aMax+1e-12 || af < aMin-1e-12) {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: target acceleration %v out of [%v, %v]", dof, af, aMin, aMax))
		}

		v0 := inp.CurrentVelocity[dof]
		vf := inp.TargetVelocity[dof]
		if math.IsNaN(v0) {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: current velocity is NaN", dof))
		}
		if math.IsNaN(vf) {
			errs = multierr.Append(errs, fmt.Errorf("dof %d: target velocity is NaN", dof))
		}

		if ci == ControlPosition {
			p0 := inp.CurrentPosition[dof]
			pf := inp.TargetPosition[dof]
			if math.IsNaN(p0) {
				errs = multierr.Append(errs, fmt.Errorf("dof %d: current position is NaN", dof))
			}
			if math.IsNaN(pf) {
				errs = multierr.Append(errs, fmt.Errorf("dof %d: target position is NaN", dof))
			}

			vMax := inp.MaxVelocity[dof]
			vMin := inp.MinVelocity[dof]
			if math.IsNaN(vMax) || vMax < 0 {
				errs = multierr.Append(errs, fmt.Errorf("dof %d: invalid max velocity %v", dof, vMax))
			}
			if math.IsNaN(vMin) {
				errs = multierr.Append(errs, fmt.Errorf("dof %d: invalid min velocity %v", dof, vMin))
			} else if vMin > 0 {
				errs = multierr.Append(errs, fmt.Errorf("dof %d: min velocity %v must not be positive", dof, vMin))
			}

			if checkCurrentState && (v0 > vMax+1e-12 || v0 < vMin-1e-12) {
				errs = multierr.Append(errs, fmt.Errorf("dof %d: current velocity %v out of [%v, %v]", dof, v0, vMin, vMax))
			}
			if checkTargetState && (vf > vMax+1e-12 || vf < vMin-1e-12) {
				errs = multierr.Append(errs, fmt.Errorf("dof %d: target velocity %v out of [%v, %v]", dof, vf, vMin, vMax))
			}

			if jMax > 0 {
				if a0 > 0 && vAtAZero(v0, a0, jMax) > vMax+1e-12 {
					errs = multierr.Append(errs, fmt.Errorf("dof %d: current state inevitably exceeds max velocity", dof))
				}
				if a0 < 0 && vAtAZero(v0, a0, -jMax) < vMin-1e-12 {
					errs = multierr.Append(errs, fmt.Errorf("dof %d: current state inevitably exceeds min velocity", dof))
				}
				if af > 0 && vAtAZero(vf, af, -jMax) > vMax+1e-12 {
					errs = multierr.Append(errs, fmt.Errorf("dof %d: target state inevitably exceeds max velocity", dof))
				}
				if af < 0 && vAtAZero(vf, af, jMax) < vMin-1e-12 {
					errs = multierr.Append(errs, fmt.Errorf("dof %d: target state inevitably exceeds min velocity", dof))
				}
			}
		}
	}

	return errs
}
