package dynamo

import "gonum.org/v1/gonum/mat"

// PilotInput is the stick position held constant over a prediction horizon.
// Angles are radians, YawRate is radians per second.
type PilotInput struct {
	Roll    float64
	Pitch   float64
	YawRate float64
}

// State constrains the state/derivative shape of a dynamics model. A state
// and its derivative share one type; AddScaled returns s + scale*deriv
// without mutating the receiver. Every explicit and implicit scheme is
// built from this single affine update.
type State[S any] interface {
	AddScaled(deriv S, scale float64) S
}

// VecState is the narrower contract for states that round-trip through a
// dense vector. Only steppers and analyses doing matrix algebra (backward
// Euler, Jacobian consumers) require it.
type VecState[S any] interface {
	State[S]

	// Vector copies the state into a fresh dense vector.
	Vector() *mat.VecDense

	// FromVector builds a state from v. The vector length must match the
	// model's state dimension; anything else is a programmer error.
	FromVector(v *mat.VecDense) S
}

// Positioned is implemented by states with a 2D ground position, for
// trajectory plotting.
type Positioned interface {
	Position() (x, y float64)
}

// Dynamics is a continuous-time motion model. S is the state shape, U the
// control shape; both are fixed by the concrete model.
type Dynamics[S State[S], U any] interface {
	// InputToControl derives the constant control vector from a pilot
	// input. Pure and deterministic.
	InputToControl(in PilotInput) U

	// Derivative evaluates dx/dt at (t, x, u).
	Derivative(t float64, x S, u U) S

	// ValidateState is invoked by the prediction driver before each step.
	// Models return ErrNonFiniteState (wrapped) when a component has gone
	// NaN or infinite.
	ValidateState(x S) error
}

// Linearizable is the optional capability extension for models with an
// analytic Jacobian. Consumers that need it (backward Euler, eigenvalue
// analysis) take a Linearizable at construction rather than probing at
// run time.
type Linearizable[S VecState[S], U any] interface {
	Dynamics[S, U]

	// Jacobian returns the exact partial-derivative matrix of Derivative
	// with respect to the state, evaluated at (t, x, u). The matrix is
	// square with dimension equal to the state's vector length.
	Jacobian(t float64, x S, u U) *mat.Dense
}

// Stepper advances a state by one time increment using the dynamics bound
// at construction.
type Stepper[S State[S], U any] interface {
	// Step returns the state at t+dt. dt must be finite and positive.
	Step(t float64, x S, u U, dt float64) (S, error)
}
