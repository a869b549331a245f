// Package params holds the foundational, dependency-free types shared by the
// calculator and the driver: input/output parameter records, the
// control-interface and synchronization-policy enums, the result taxonomy,
// and the pluggable error-handling strategy. Kept separate from the root
// driver package so the calculator can depend on it without creating an
// import cycle back to the driver.
package params

// Result mirrors the outcome taxonomy a calculation can produce.
type Result int

const (
	Working                       Result = 0
	Finished                      Result = 1
	Error                         Result = -1
	ErrorInvalidInput             Result = -100
	ErrorTrajectoryDuration       Result = -101
	ErrorPositionalLimits         Result = -102
	ErrorZeroLimits               Result = -104
	ErrorExecutionTimeCalculation Result = -110
	ErrorSynchronizationCalculation Result = -111
)

func (r Result) String() string {
	switch r {
	case Working:
		return "Working"
	case Finished:
		return "Finished"
	case Error:
		return "Error"
	case ErrorInvalidInput:
		return "ErrorInvalidInput"
	case ErrorTrajectoryDuration:
		return "ErrorTrajectoryDuration"
	case ErrorPositionalLimits:
		return "ErrorPositionalLimits"
	case ErrorZeroLimits:
		return "ErrorZeroLimits"
	case ErrorExecutionTimeCalculation:
		return "ErrorExecutionTimeCalculation"
	case ErrorSynchronizationCalculation:
		return "ErrorSynchronizationCalculation"
	default:
		return "Unknown"
	}
}
