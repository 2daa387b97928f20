package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for prediction runs.
var (
	// ErrNonFiniteState indicates a state component went NaN or infinite.
	ErrNonFiniteState = errors.New("dynamo: non-finite state component")

	// ErrBadTimeStep indicates a non-positive or non-finite dt.
	ErrBadTimeStep = errors.New("dynamo: dt must be finite and > 0")

	// ErrBadHorizon indicates an invalid prediction horizon (zero steps,
	// or a non-positive or non-finite final time).
	ErrBadHorizon = errors.New("dynamo: horizon must have steps > 0 and finite t_final > 0")

	// ErrDimensionMismatch indicates a Jacobian whose shape does not match
	// the state it linearizes.
	ErrDimensionMismatch = errors.New("dynamo: jacobian dimension does not match state")

	// ErrSingularJacobian indicates the implicit solve hit a Jacobian with
	// no usable factorization.
	ErrSingularJacobian = errors.New("dynamo: singular jacobian")

	// ErrTooFewStates indicates a trajectory with fewer than two recorded
	// states was handed to a consumer that needs a line to draw.
	ErrTooFewStates = errors.New("dynamo: need at least two states")
)

// StepError wraps a failure with the step index and simulation time at
// which it occurred.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
