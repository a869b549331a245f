package params

import "time"

// OutputParameter is the per-tick result of a calculation or update: the new
// state for every DoF, bookkeeping about which trajectory section is active,
// and timing diagnostics.
type OutputParameter struct {
	NewPosition     []float64
	NewVelocity     []float64
	NewAcceleration []float64
	NewJerk         []float64

	Time float64

	NewSection          int
	DidSectionChange    bool
	NewCalculation      bool
	WasCalculationInterrupted bool

	CalculationDuration time.Duration
}

// NewOutputParameter allocates an OutputParameter sized for dof DoFs.
func NewOutputParameter(dof int) *OutputParameter {
	return &OutputParameter{
		NewPosition:     make([]float64, dof),
		NewVelocity:     make([]float64, dof),
		NewAcceleration: make([]float64, dof),
		NewJerk:         make([]float64, dof),
	}
}

// PassToInput copies this output's new state back into an InputParameter's
// current state, for the next Update call in an online control loop.
func (o *OutputParameter) PassToInput(inp *InputParameter) {
	copy(inp.CurrentPosition, o.NewPosition)
	copy(inp.CurrentVelocity, o.NewVelocity)
	copy(inp.CurrentAcceleration, o.NewAcceleration)
}
