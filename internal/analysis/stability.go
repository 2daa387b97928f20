package analysis

import (
	"fmt"
	"math/cmplx"
)

// StabilityFn is the one-step amplification factor R(z) of a scheme
// applied to the scalar test equation, z = λ·dt.
type StabilityFn func(z complex128) complex128

// ForwardEulerStability is R(z) = 1 + z. Stable on the open unit disk
// centered at -1.
func ForwardEulerStability(z complex128) complex128 {
	return 1 + z
}

// BackwardEulerStability is R(z) = 1 / (1 − z). Stable on the whole left
// half-plane (A-stable).
func BackwardEulerStability(z complex128) complex128 {
	return 1 / (1 - z)
}

// Region is a grid classification of the complex plane by |R(z)| ≤ 1.
type Region struct {
	ReMin, ReMax float64
	ImMin, ImMax float64
	Cols, Rows   int

	// Stable is indexed [row][col]; row 0 holds ImMax, col 0 holds ReMin.
	Stable [][]bool
}

// NewRegion classifies a Cols×Rows grid over the given rectangle. Cells
// are sampled at their centers.
func NewRegion(fn StabilityFn, reMin, reMax, imMin, imMax float64, cols, rows int) (*Region, error) {
	if cols <= 0 || rows <= 0 || reMax <= reMin || imMax <= imMin {
		return nil, fmt.Errorf("analysis: invalid region grid %dx%d over [%g,%g]x[%g,%g]",
			cols, rows, reMin, reMax, imMin, imMax)
	}

	r := &Region{
		ReMin: reMin, ReMax: reMax,
		ImMin: imMin, ImMax: imMax,
		Cols: cols, Rows: rows,
		Stable: make([][]bool, rows),
	}

	dRe := (reMax - reMin) / float64(cols)
	dIm := (imMax - imMin) / float64(rows)

	for row := 0; row < rows; row++ {
		r.Stable[row] = make([]bool, cols)
		im := imMax - (float64(row)+0.5)*dIm
		for col := 0; col < cols; col++ {
			re := reMin + (float64(col)+0.5)*dRe
			r.Stable[row][col] = cmplx.Abs(fn(complex(re, im))) <= 1
		}
	}
	return r, nil
}

// Cell maps a point in the complex plane to its grid cell. ok is false
// when z falls outside the region bounds.
func (r *Region) Cell(z complex128) (row, col int, ok bool) {
	re, im := real(z), imag(z)
	if re < r.ReMin || re > r.ReMax || im < r.ImMin || im > r.ImMax {
		return 0, 0, false
	}
	col = int((re - r.ReMin) / (r.ReMax - r.ReMin) * float64(r.Cols))
	row = int((r.ImMax - im) / (r.ImMax - r.ImMin) * float64(r.Rows))
	if col >= r.Cols {
		col = r.Cols - 1
	}
	if row >= r.Rows {
		row = r.Rows - 1
	}
	return row, col, true
}
