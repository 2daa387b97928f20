package viz

import (
	"fmt"
	"strings"

	"github.com/remi-v/intentsim/internal/analysis"
)

// RenderRegion prints a stability-region grid, one character per cell:
// '█' stable, '·' unstable, '×' a cell holding at least one overlay
// eigenvalue. Rows run from ImMax down to ImMin.
func RenderRegion(r *analysis.Region, overlay []complex128) string {
	marks := make(map[[2]int]bool, len(overlay))
	for _, z := range overlay {
		if row, col, ok := r.Cell(z); ok {
			marks[[2]int{row, col}] = true
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Re %g..%g, Im %g..%g (|R(z)| <= 1 shaded)\n",
		r.ReMin, r.ReMax, r.ImMin, r.ImMax)
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			switch {
			case marks[[2]int{row, col}]:
				sb.WriteRune('×')
			case r.Stable[row][col]:
				sb.WriteRune('█')
			default:
				sb.WriteRune('·')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
