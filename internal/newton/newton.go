// Package newton implements a dense Newton-Raphson root finder, the engine
// behind the implicit integrator.
package newton

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/remi-v/intentsim/internal/dynamo"
)

// Opts configures a solve.
type Opts struct {
	// IterMax is the hard cap on iterations.
	IterMax int

	// MinError is the convergence threshold on the max-abs residual
	// component.
	MinError float64
}

// DefaultOpts returns the options used by the implicit integrator when
// none are supplied.
func DefaultOpts() Opts {
	return Opts{IterMax: 15, MinError: 1e-10}
}

// Func evaluates the residual F(x).
type Func func(x *mat.VecDense) *mat.VecDense

// JacobianFunc evaluates dF/dx.
type JacobianFunc func(x *mat.VecDense) (*mat.Dense, error)

// Result carries the solution and its convergence diagnostics. Hitting the
// iteration cap is not an error here: the caller inspects Converged and
// Residual and decides whether the best iterate is good enough.
type Result struct {
	// Root is the final iterate.
	Root *mat.VecDense

	// Iterates is the full history, starting with the initial guess.
	Iterates []*mat.VecDense

	// Residual is the max-abs component of F(Root).
	Residual float64

	// Converged reports whether Residual dropped below MinError within
	// the iteration cap.
	Converged bool
}

// Solve runs Newton-Raphson on F(x) = 0 from x0. At each iteration the
// Jacobian is LU-factored and J·δ = F(x) solved for the update x ← x − δ.
// A Jacobian with no usable factorization yields ErrSingularJacobian.
func Solve(f Func, dfdx JacobianFunc, x0 *mat.VecDense, opts Opts) (Result, error) {
	if opts.IterMax <= 0 || opts.MinError <= 0 {
		opts = DefaultOpts()
	}

	x := mat.VecDenseCopyOf(x0)
	res := Result{Iterates: make([]*mat.VecDense, 0, opts.IterMax+1)}
	res.Iterates = append(res.Iterates, mat.VecDenseCopyOf(x))

	var delta mat.VecDense
	for iter := 0; iter < opts.IterMax; iter++ {
		fx := f(x)
		res.Residual = maxAbs(fx)
		if res.Residual < opts.MinError {
			res.Converged = true
			break
		}

		jx, err := dfdx(x)
		if err != nil {
			res.Root = x
			return res, err
		}

		var lu mat.LU
		lu.Factorize(jx)
		if err := lu.SolveVecTo(&delta, false, fx); err != nil {
			res.Root = x
			return res, fmt.Errorf("newton: %w: %v", dynamo.ErrSingularJacobian, err)
		}

		x.SubVec(x, &delta)
		res.Iterates = append(res.Iterates, mat.VecDenseCopyOf(x))
	}

	if !res.Converged {
		res.Residual = maxAbs(f(x))
		res.Converged = res.Residual < opts.MinError
	}
	res.Root = x
	return res, nil
}

func maxAbs(v *mat.VecDense) float64 {
	m := 0.0
	for i := 0; i < v.Len(); i++ {
		m = math.Max(m, math.Abs(v.AtVec(i)))
	}
	return m
}
