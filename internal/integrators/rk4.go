package integrators

import "github.com/remi-v/intentsim/internal/dynamo"

// RK4 is the classic fixed-step 4-stage Runge-Kutta scheme.
type RK4[S dynamo.State[S], U any] struct {
	model dynamo.Dynamics[S, U]
}

func NewRK4[S dynamo.State[S], U any](model dynamo.Dynamics[S, U]) *RK4[S, U] {
	return &RK4[S, U]{model: model}
}

func (r *RK4[S, U]) Step(t float64, x S, u U, dt float64) (S, error) {
	if err := checkDt(dt); err != nil {
		var zero S
		return zero, err
	}

	halfDt := 0.5 * dt

	k1 := r.model.Derivative(t, x, u)
	k2 := r.model.Derivative(t+halfDt, x.AddScaled(k1, halfDt), u)
	k3 := r.model.Derivative(t+halfDt, x.AddScaled(k2, halfDt), u)
	k4 := r.model.Derivative(t+dt, x.AddScaled(k3, dt), u)

	// x' = x + dt/6 · (k1 + 2k2 + 2k3 + k4)
	incr := k1.AddScaled(k2, 2).AddScaled(k3, 2).AddScaled(k4, 1)
	return x.AddScaled(incr, dt/6), nil
}
