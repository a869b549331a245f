package feedback

import "errors"

// Feedback is an interface for feedback controllers
type Feedback interface {
	Calculate(setpoint, measurement float64) float64
}

// ErrSlicessMustBeSameLength is returned by FullStateFeedback.Calculate when
// the setpoint and measurement vectors don't have one entry per state.
var ErrSlicessMustBeSameLength = errors.New("vectors must be of same length")
