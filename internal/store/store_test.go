package store

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/remi-v/intentsim/internal/dynamo"
	"github.com/remi-v/intentsim/internal/integrators"
	"github.com/remi-v/intentsim/internal/models"
	"github.com/remi-v/intentsim/internal/predict"
)

func smallRun(t *testing.T) *predict.Prediction[models.QuadState, models.QuadControl] {
	t.Helper()
	m := models.NewQuadcopter(0.1)
	st := integrators.NewEuler[models.QuadState, models.QuadControl](m)
	p, err := predict.Predict(dynamo.PilotInput{Pitch: 0.1}, models.QuadState{}, m, st, 0, 1.0, 10)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFromPrediction(t *testing.T) {
	p := smallRun(t)
	d := FromPrediction(p, "quadcopter", "euler", p.Control.Components())

	if d.Steps != 10 {
		t.Errorf("steps: got %d, want 10", d.Steps)
	}
	if math.Abs(d.Dt-0.1) > 1e-15 {
		t.Errorf("dt: got %f, want 0.1", d.Dt)
	}
	if len(d.States) != 11 || len(d.Times) != 11 {
		t.Fatalf("expected 11 states and times, got %d/%d", len(d.States), len(d.Times))
	}
	if len(d.States[0]) != 5 {
		t.Errorf("quadcopter states flatten to 5 components, got %d", len(d.States[0]))
	}
	if len(d.Control) != 3 {
		t.Errorf("quadcopter control flattens to 3 components, got %d", len(d.Control))
	}
	if d.Times[10] != 1.0 {
		t.Errorf("last time: got %f, want 1.0", d.Times[10])
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	p := smallRun(t)
	d := FromPrediction(p, "quadcopter", "euler", p.Control.Components())

	path := filepath.Join(t.TempDir(), "run.json")
	if err := WriteJSON(path, d); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var back RunData
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}

	if back.Model != d.Model || back.Stepper != d.Stepper || back.Steps != d.Steps {
		t.Errorf("metadata changed in round trip: %+v", back)
	}
	if len(back.States) != len(d.States) {
		t.Fatalf("state count changed: %d vs %d", len(back.States), len(d.States))
	}
	for i := range d.States {
		for j := range d.States[i] {
			if back.States[i][j] != d.States[i][j] {
				t.Fatalf("state[%d][%d] changed: %g vs %g", i, j, back.States[i][j], d.States[i][j])
			}
		}
	}
}
