package viz

import (
	"errors"
	"strings"
	"testing"

	"github.com/remi-v/intentsim/internal/analysis"
	"github.com/remi-v/intentsim/internal/dynamo"
	"github.com/remi-v/intentsim/internal/models"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 row, got %d", len(lines))
	}
	cells := []rune(lines[0])
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0] == 0x2800 {
		t.Error("top-left cell should be lit")
	}
	if cells[1] != 0x2800 {
		t.Error("second cell should stay empty")
	}

	// Out-of-range coordinates must be dropped, not wrap.
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestTrajectoryXY(t *testing.T) {
	states := []models.QuadState{
		{North: 0, East: 0},
		{North: 1, East: 0.5},
		{North: 2, East: 2},
	}

	out, err := TrajectoryXY(states, 30, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "o") || !strings.Contains(out, "x") {
		t.Error("plot should mark start and end points")
	}
	if !strings.Contains(out, "east") || !strings.Contains(out, "north") {
		t.Error("plot should label its axis ranges")
	}
}

func TestTrajectoryXYTooFewStates(t *testing.T) {
	_, err := TrajectoryXY([]models.QuadState{{}}, 30, 10)
	if !errors.Is(err, dynamo.ErrTooFewStates) {
		t.Errorf("expected ErrTooFewStates, got %v", err)
	}
}

func TestSeriesPlotDownsamples(t *testing.T) {
	values := make([]float64, 30001)
	for i := range values {
		values[i] = float64(i)
	}

	out := SeriesPlot(values, "ramp", 10)
	if out == "" {
		t.Fatal("expected a chart")
	}
	if !strings.Contains(out, "ramp") {
		t.Error("caption missing")
	}
}

func TestRenderRegion(t *testing.T) {
	r, err := analysis.NewRegion(analysis.ForwardEulerStability, -3, 1, -2, 2, 20, 10)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderRegion(r, []complex128{complex(-1, 0)})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header plus 10 rows, got %d lines", len(lines))
	}
	for _, line := range lines[1:] {
		if len([]rune(line)) != 20 {
			t.Fatalf("expected 20 cells per row, got %d", len([]rune(line)))
		}
	}
	if !strings.Contains(out, "×") {
		t.Error("overlay eigenvalue should be marked")
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "·") {
		t.Error("grid should contain both stable and unstable cells")
	}
}
