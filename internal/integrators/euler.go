package integrators

import (
	"math"

	"github.com/remi-v/intentsim/internal/dynamo"
)

// Euler is the explicit first-order scheme x' = x + dt·f(t, x, u).
type Euler[S dynamo.State[S], U any] struct {
	model dynamo.Dynamics[S, U]
}

func NewEuler[S dynamo.State[S], U any](model dynamo.Dynamics[S, U]) *Euler[S, U] {
	return &Euler[S, U]{model: model}
}

func (e *Euler[S, U]) Step(t float64, x S, u U, dt float64) (S, error) {
	if err := checkDt(dt); err != nil {
		var zero S
		return zero, err
	}
	dx := e.model.Derivative(t, x, u)
	return x.AddScaled(dx, dt), nil
}

func checkDt(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return dynamo.ErrBadTimeStep
	}
	return nil
}
