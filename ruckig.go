// Package ruckigo is the root package: it wires the calculator and
// trajectory sampler into the single-instance driver a control loop calls
// once per cycle. It holds the previous input, so repeated identical calls
// only resample the existing trajectory instead of recomputing it, and
// reports timing and completion back to the caller.
package ruckigo

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"ruckigo/calculator"
	"ruckigo/params"
	"ruckigo/trajectory"
)

// Option configures a Ruckig instance, mirroring the functional-options
// pattern pid.Option/feedforward.Option already use in this module.
type Option func(*Ruckig)

// WithErrorHandler overrides the default ThrowErrorHandler used to turn a
// failed Validate into a Result/error pair.
func WithErrorHandler(h params.ErrorHandler) Option {
	return func(r *Ruckig) { r.errorHandler = h }
}

// Ruckig is a single-DoF-count, single-cycle-time planner instance: one
// TargetCalculator, one previous-input cache, one delta time. Re-entrancy is
// not supported — call Update from a single control loop.
type Ruckig struct {
	dof          int
	deltaTime    float64
	calc         *calculator.TargetCalculator
	errorHandler params.ErrorHandler

	lastInput      *params.InputParameter
	lastInputValid bool
	trajectory     *trajectory.Trajectory
}

// New constructs a Ruckig instance for dof degrees of freedom, sampled every
// deltaTime seconds.
func New(dof int, deltaTime float64, opts ...Option) *Ruckig {
	r := &Ruckig{
		dof:          dof,
		deltaTime:    deltaTime,
		calc:         calculator.New(deltaTime),
		errorHandler: params.ThrowErrorHandler{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reset discards the cached previous input, forcing the next Update or
// Calculate call to recompute the trajectory from scratch.
func (r *Ruckig) Reset() {
	r.lastInput = nil
	r.lastInputValid = false
	r.trajectory = nil
}

// ValidateInput runs InputParameter.Validate, adds the instance-level
// check that discrete duration discretization has a positive delta time to
// round to, and converts the result through the instance's ErrorHandler.
func (r *Ruckig) ValidateInput(inp *params.InputParameter, checkCurrentState, checkTargetState bool) (bool, error) {
	errs := inp.Validate(checkCurrentState, checkTargetState)
	if r.deltaTime <= 0 && inp.DurationDiscretization != params.DurationContinuous {
		errs = multierr.Append(errs, fmt.Errorf("delta time %v must be positive under discrete duration discretization", r.deltaTime))
	}
	return r.errorHandler.Handle(errs)
}

// Calculate validates inp and computes its trajectory offline (no time
// advance, no output sampling) — for planning/plotting callers that don't
// drive a control loop.
func (r *Ruckig) Calculate(inp *params.InputParameter) (*trajectory.Trajectory, params.Result, error) {
	if inp.DegreesOfFreedom != r.dof {
		return nil, params.ErrorInvalidInput, dofMismatchError(r.dof, inp.DegreesOfFreedom)
	}
	valid, err := r.ValidateInput(inp, true, true)
	if !valid {
		return nil, params.ErrorInvalidInput, err
	}

	traj, err := r.calc.Calculate(inp)
	if err != nil {
		return nil, resultForCalculatorError(err), err
	}
	return traj, params.Working, nil
}

// Update is the per-tick entry point: if inp differs from
// the last call it recomputes the trajectory, then always advances
// output.Time by the instance's delta time, samples the trajectory into
// output, records calculation_duration and did_section_change, and copies
// the new state into the current state of the driver's cached last input
// for the next call.
func (r *Ruckig) Update(inp *params.InputParameter, out *params.OutputParameter) params.Result {
	start := time.Now()

	if inp.DegreesOfFreedom != r.dof || len(out.NewPosition) != r.dof {
		out.CalculationDuration = time.Since(start)
		return params.ErrorInvalidInput
	}

	newCalculation := false
	if !r.lastInputValid || !inputsEqual(r.lastInput, inp) {
		valid, _ := r.ValidateInput(inp, true, true)
		if !valid {
			out.CalculationDuration = time.Since(start)
			return params.ErrorInvalidInput
		}

		traj, err := r.calc.Calculate(inp)
		if _, interrupted := err.(*calculator.InterruptedError); interrupted && r.trajectory != nil {
			// Soft budget exceeded: the last trajectory stays current and
			// keeps being sampled; the caller sees the interrupt flag.
			out.WasCalculationInterrupted = true
		} else if err != nil {
			out.CalculationDuration = time.Since(start)
			return resultForCalculatorError(err)
		} else {
			r.trajectory = traj
			r.lastInput = cloneInput(inp)
			r.lastInputValid = true
			out.Time = 0
			out.WasCalculationInterrupted = false
			newCalculation = true
		}
	}

	out.Time += r.deltaTime
	p, v, a, j, section := r.trajectory.AtTime(out.Time)
	copy(out.NewPosition, p)
	copy(out.NewVelocity, v)
	copy(out.NewAcceleration, a)
	copy(out.NewJerk, j)

	out.DidSectionChange = section != out.NewSection
	out.NewSection = section
	out.NewCalculation = newCalculation
	out.CalculationDuration = time.Since(start)

	out.PassToInput(r.lastInput)

	if out.Time > r.trajectory.GetDuration() {
		return params.Finished
	}
	return params.Working
}

func dofMismatchError(want, got int) error {
	return &dofError{want: want, got: got}
}

type dofError struct{ want, got int }

func (e *dofError) Error() string {
	return fmt.Sprintf("ruckig: degrees-of-freedom mismatch: instance has %d, input parameter has %d", e.want, e.got)
}

// resultForCalculatorError maps a typed calculator error to its Result code.
func resultForCalculatorError(err error) params.Result {
	switch err.(type) {
	case *calculator.ZeroLimitsError:
		return params.ErrorZeroLimits
	case *calculator.ExecutionTimeError:
		return params.ErrorExecutionTimeCalculation
	case *calculator.SynchronizationError:
		return params.ErrorSynchronizationCalculation
	case *calculator.DurationError:
		return params.ErrorTrajectoryDuration
	default:
		return params.Error
	}
}

// cloneInput copies inp so the driver's cached "last input" is unaffected by
// the caller mutating its own InputParameter between ticks.
func cloneInput(inp *params.InputParameter) *params.InputParameter {
	clone := *inp
	clone.CurrentPosition = append([]float64(nil), inp.CurrentPosition...)
	clone.CurrentVelocity = append([]float64(nil), inp.CurrentVelocity...)
	clone.CurrentAcceleration = append([]float64(nil), inp.CurrentAcceleration...)
	clone.TargetPosition = append([]float64(nil), inp.TargetPosition...)
	clone.TargetVelocity = append([]float64(nil), inp.TargetVelocity...)
	clone.TargetAcceleration = append([]float64(nil), inp.TargetAcceleration...)
	clone.MaxVelocity = append([]float64(nil), inp.MaxVelocity...)
	clone.MinVelocity = append([]float64(nil), inp.MinVelocity...)
	clone.MaxAcceleration = append([]float64(nil), inp.MaxAcceleration...)
	clone.MinAcceleration = append([]float64(nil), inp.MinAcceleration...)
	clone.MaxJerk = append([]float64(nil), inp.MaxJerk...)
	clone.Enabled = append([]bool(nil), inp.Enabled...)
	return &clone
}

// inputsEqual reports whether two InputParameters carry the same boundary
// state and limits, the condition the driver uses to decide whether a new
// calculation is needed.
func inputsEqual(a, b *params.InputParameter) bool {
	if a == nil || b == nil {
		return false
	}
	if a.DegreesOfFreedom != b.DegreesOfFreedom {
		return false
	}
	eq := func(x, y []float64) bool {
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	}
	return eq(a.CurrentPosition, b.CurrentPosition) &&
		eq(a.CurrentVelocity, b.CurrentVelocity) &&
		eq(a.CurrentAcceleration, b.CurrentAcceleration) &&
		eq(a.TargetPosition, b.TargetPosition) &&
		eq(a.TargetVelocity, b.TargetVelocity) &&
		eq(a.TargetAcceleration, b.TargetAcceleration) &&
		eq(a.MaxVelocity, b.MaxVelocity) &&
		eq(a.MinVelocity, b.MinVelocity) &&
		eq(a.MaxAcceleration, b.MaxAcceleration) &&
		eq(a.MinAcceleration, b.MinAcceleration) &&
		eq(a.MaxJerk, b.MaxJerk) &&
		a.ControlInterface == b.ControlInterface &&
		a.Synchronization == b.Synchronization &&
		a.DurationDiscretization == b.DurationDiscretization &&
		floatPtrEqual(a.MinimumDuration, b.MinimumDuration)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
