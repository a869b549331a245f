package params

import "github.com/pkg/errors"

// ErrorHandler decides what a validation failure turns into: an error the
// caller must handle, or a silently-accepted "not valid, try anyway"
// signal. Mirrors the source's trait-as-type-parameter split
// (ThrowErrorHandler/IgnoreErrorHandler) as a runtime-selected interface,
// since Go has no const-generic type-parameter dispatch.
type ErrorHandler interface {
	// Handle is called with the aggregated validation error (nil if
	// validation passed). It returns whether the caller should treat the
	// input as valid, and an error to surface if not.
	Handle(validationErr error) (valid bool, err error)
}

// ThrowErrorHandler surfaces every validation failure as a wrapped error.
type ThrowErrorHandler struct{}

func (ThrowErrorHandler) Handle(validationErr error) (bool, error) {
	if validationErr == nil {
		return true, nil
	}
	return false, errors.Wrap(validationErr, "invalid input parameter")
}

// IgnoreErrorHandler swallows validation failures, returning valid=false
// with no error — the caller decides separately how to react.
type IgnoreErrorHandler struct{}

func (IgnoreErrorHandler) Handle(validationErr error) (bool, error) {
	return validationErr == nil, nil
}
