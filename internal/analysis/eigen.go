package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/remi-v/intentsim/internal/dynamo"
	"github.com/remi-v/intentsim/internal/predict"
)

// TrajectoryEigenvalues evaluates the model's Jacobian at every recorded
// state, scales it by the run's dt and returns the eigenvalues of each
// J·dt. Plotted against a stepper's stability region these trace how close
// the local linearized dynamics come to the stability boundary.
func TrajectoryEigenvalues[S dynamo.VecState[S], U any](
	model dynamo.Linearizable[S, U],
	p *predict.Prediction[S, U],
) ([][]complex128, error) {
	if len(p.States) < 2 {
		return nil, fmt.Errorf("analysis: %w", dynamo.ErrTooFewStates)
	}

	dt := p.Dt()
	out := make([][]complex128, len(p.States))

	scaled := &mat.Dense{}
	for i, s := range p.States {
		n := s.Vector().Len()
		j := model.Jacobian(p.TimeAt(i), s, p.Control)
		if r, c := j.Dims(); r != n || c != n {
			return nil, fmt.Errorf("analysis: %dx%d jacobian for %d-state at step %d: %w",
				r, c, n, i, dynamo.ErrDimensionMismatch)
		}

		scaled.Scale(dt, j)
		var eig mat.Eigen
		if ok := eig.Factorize(scaled, mat.EigenNone); !ok {
			return nil, errors.New("analysis: eigendecomposition failed")
		}
		out[i] = eig.Values(nil)
	}
	return out, nil
}

// SpectralRadii reduces per-step eigenvalue sets to their largest modulus,
// one value per recorded state.
func SpectralRadii(eigs [][]complex128) []float64 {
	radii := make([]float64, len(eigs))
	for i, vals := range eigs {
		r := 0.0
		for _, v := range vals {
			if m := cmplx.Abs(v); m > r {
				r = m
			}
		}
		radii[i] = r
	}
	return radii
}
