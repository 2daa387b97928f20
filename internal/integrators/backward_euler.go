package integrators

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/remi-v/intentsim/internal/dynamo"
	"github.com/remi-v/intentsim/internal/newton"
)

// BackwardEuler is the implicit first-order scheme. Each step solves
//
//	F(x) = x − x₀ − dt·f(t+dt, x, u) = 0
//
// with Newton-Raphson, using the residual Jacobian I − dt·J(t+dt, x, u).
// A-stable: for the drag family here any dt decays, at the cost of one
// nonlinear solve per step.
type BackwardEuler[S dynamo.VecState[S], U any] struct {
	model dynamo.Linearizable[S, U]
	opts  newton.Opts
	last  newton.Result
}

// NewBackwardEuler binds the stepper to a linearizable model. A zero Opts
// selects the Newton defaults.
func NewBackwardEuler[S dynamo.VecState[S], U any](model dynamo.Linearizable[S, U], opts newton.Opts) *BackwardEuler[S, U] {
	if opts.IterMax <= 0 || opts.MinError <= 0 {
		opts = newton.DefaultOpts()
	}
	return &BackwardEuler[S, U]{model: model, opts: opts}
}

func (b *BackwardEuler[S, U]) Step(t float64, x S, u U, dt float64) (S, error) {
	var zero S
	if err := checkDt(dt); err != nil {
		return zero, err
	}

	prev := x.Vector()
	n := prev.Len()

	residual := func(v *mat.VecDense) *mat.VecDense {
		fx := b.model.Derivative(t+dt, x.FromVector(v), u)
		r := mat.NewVecDense(n, nil)
		r.SubVec(v, prev)
		r.AddScaledVec(r, -dt, fx.Vector())
		return r
	}

	jacobian := func(v *mat.VecDense) (*mat.Dense, error) {
		j := b.model.Jacobian(t+dt, x.FromVector(v), u)
		if r, c := j.Dims(); r != n || c != n {
			return nil, fmt.Errorf("integrators: %dx%d jacobian for %d-state: %w",
				r, c, n, dynamo.ErrDimensionMismatch)
		}
		out := mat.NewDense(n, n, nil)
		out.Scale(-dt, j)
		for i := 0; i < n; i++ {
			out.Set(i, i, 1+out.At(i, i))
		}
		return out, nil
	}

	res, err := newton.Solve(residual, jacobian, prev, b.opts)
	b.last = res
	if err != nil {
		return zero, err
	}
	return x.FromVector(res.Root), nil
}

// LastSolve returns the Newton diagnostics of the most recent step, so a
// caller can check convergence quality after the fact.
func (b *BackwardEuler[S, U]) LastSolve() newton.Result {
	return b.last
}
