package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for kinematics operations.
var (
	// ErrInvalidParameter indicates a non-positive mass, frame rate, frequency
	// or a negative step count.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrNumericDomain indicates the inspiral frequency law left its real
	// domain near coalescence.
	ErrNumericDomain = errors.New("dynamo: numeric domain exceeded near coalescence")

	// ErrMerged indicates a step was requested after the merger boundary.
	ErrMerged = errors.New("dynamo: binary has already merged")
)

// ParameterError names the parameter that failed validation.
type ParameterError struct {
	Name  string
	Value float64
	Rule  string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %g (%s)", ErrInvalidParameter, e.Name, e.Value, e.Rule)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Positive returns a *ParameterError when v is not strictly positive.
func Positive(name string, v float64) error {
	if !(v > 0) {
		return &ParameterError{Name: name, Value: v, Rule: "must be > 0"}
	}
	return nil
}

// StepError wraps an error with the frame and model time it happened at.
type StepError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("frame %d (t=%.6g): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
