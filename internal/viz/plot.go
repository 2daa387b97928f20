package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/remi-v/intentsim/internal/dynamo"
)

// TrajectoryXY draws the ground track of a recorded trajectory on a
// Braille canvas, east on the horizontal axis and north on the vertical.
// The start cell is marked 'o', the end cell 'x'.
func TrajectoryXY[S dynamo.Positioned](states []S, width, height int) (string, error) {
	if len(states) < 2 {
		return "", fmt.Errorf("viz: %w", dynamo.ErrTooFewStates)
	}

	nMin, nMax := math.Inf(1), math.Inf(-1)
	eMin, eMax := math.Inf(1), math.Inf(-1)
	for _, s := range states {
		n, e := s.Position()
		nMin, nMax = math.Min(nMin, n), math.Max(nMax, n)
		eMin, eMax = math.Min(eMin, e), math.Max(eMax, e)
	}

	// Pad so the track is not glued to the border.
	padN := math.Max((nMax-nMin)*0.05, 1e-3)
	padE := math.Max((eMax-eMin)*0.05, 1e-3)
	nMin, nMax = nMin-padN, nMax+padN
	eMin, eMax = eMin-padE, eMax+padE

	c := NewCanvas(width, height)
	pxW, pxH := width*2-1, height*4-1
	toPx := func(s S) (int, int) {
		n, e := s.Position()
		x := int((e - eMin) / (eMax - eMin) * float64(pxW))
		y := int((nMax - n) / (nMax - nMin) * float64(pxH))
		return x, y
	}

	x0, y0 := toPx(states[0])
	for _, s := range states[1:] {
		x1, y1 := toPx(s)
		c.Line(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}

	sx, sy := toPx(states[0])
	ex, ey := toPx(states[len(states)-1])
	c.Mark(sx, sy, 'o')
	c.Mark(ex, ey, 'x')

	header := fmt.Sprintf("east %.2f..%.2f m, north %.2f..%.2f m\n", eMin, eMax, nMin, nMax)
	return header + c.String(), nil
}

// SeriesPlot renders one scalar series against time as an ASCII line
// chart.
func SeriesPlot(values []float64, caption string, height int) string {
	if len(values) < 2 {
		return ""
	}
	// asciigraph chokes on very long series; downsample to a terminal
	// width's worth of points.
	const maxPoints = 120
	if len(values) > maxPoints {
		step := len(values) / maxPoints
		sampled := make([]float64, 0, maxPoints+1)
		for i := 0; i < len(values); i += step {
			sampled = append(sampled, values[i])
		}
		sampled = append(sampled, values[len(values)-1])
		values = sampled
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
