// Package store serializes finished prediction runs for external tooling.
package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/remi-v/intentsim/internal/dynamo"
	"github.com/remi-v/intentsim/internal/predict"
)

// RunData is the flat JSON form of one prediction run.
type RunData struct {
	Model      string      `json:"model"`
	Stepper    string      `json:"stepper"`
	T0         float64     `json:"t0"`
	TFinal     float64     `json:"t_final"`
	Dt         float64     `json:"dt"`
	Steps      int         `json:"steps"`
	CPUSeconds float64     `json:"cpu_seconds"`
	Control    []float64   `json:"control"`
	Times      []float64   `json:"times"`
	States     [][]float64 `json:"states"`
}

// FromPrediction flattens a prediction. The control's flat form is passed
// in by the caller since its shape is model-specific.
func FromPrediction[S dynamo.VecState[S], U any](p *predict.Prediction[S, U], model, stepper string, control []float64) RunData {
	d := RunData{
		Model:      model,
		Stepper:    stepper,
		T0:         p.T0,
		TFinal:     p.TFinal,
		Dt:         p.Dt(),
		Steps:      p.Steps(),
		CPUSeconds: p.CPUTime.Seconds(),
		Control:    control,
		Times:      make([]float64, len(p.States)),
		States:     make([][]float64, len(p.States)),
	}
	for i, s := range p.States {
		d.Times[i] = p.TimeAt(i)
		d.States[i] = s.Vector().RawVector().Data
	}
	return d
}

// EncodeJSON writes the run as indented JSON.
func EncodeJSON(w io.Writer, d RunData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteJSON writes the run to a file.
func WriteJSON(path string, d RunData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeJSON(f, d)
}
