// Package predict orchestrates fixed-step prediction runs: derive the
// control once, march a stepper over the horizon, record the trajectory.
package predict

import (
	"fmt"
	"math"
	"time"

	"github.com/remi-v/intentsim/internal/dynamo"
)

// Prediction is the recorded trajectory of one run. It is immutable once
// returned; consumers read, never write.
type Prediction[S dynamo.State[S], U any] struct {
	// States holds steps+1 entries; index 0 is the caller's initial state
	// and index i the state at T0 + i·Dt().
	States []S

	// Control is the constant control vector the whole horizon used.
	Control U

	T0     float64
	TFinal float64

	// CPUTime is the wall-clock cost of the stepping loop. Diagnostic
	// only.
	CPUTime time.Duration
}

// Steps returns the number of increments taken.
func (p *Prediction[S, U]) Steps() int {
	if len(p.States) == 0 {
		return 0
	}
	return len(p.States) - 1
}

// Dt returns the fixed step size.
func (p *Prediction[S, U]) Dt() float64 {
	n := p.Steps()
	if n == 0 {
		return 0
	}
	return p.TFinal / float64(n)
}

// TimeAt returns the simulation time of recorded state i.
func (p *Prediction[S, U]) TimeAt(i int) float64 {
	return p.T0 + float64(i)*p.Dt()
}

// Predict integrates the model forward under a constant pilot input.
//
// The control is derived exactly once from the input; it never varies
// across steps — a pilot holding the stick fixed over the horizon. Before
// each step the model's validation hook runs; a failure there or in the
// stepper aborts the run with a [dynamo.StepError].
func Predict[S dynamo.State[S], U any](
	in dynamo.PilotInput,
	initial S,
	model dynamo.Dynamics[S, U],
	stepper dynamo.Stepper[S, U],
	t0, tFinal float64,
	steps int,
) (*Prediction[S, U], error) {
	if steps <= 0 || math.IsNaN(tFinal) || math.IsInf(tFinal, 0) || tFinal <= 0 {
		return nil, fmt.Errorf("predict: steps=%d t_final=%v: %w", steps, tFinal, dynamo.ErrBadHorizon)
	}

	dt := tFinal / float64(steps)
	start := time.Now()

	control := model.InputToControl(in)

	states := make([]S, 0, steps+1)
	state := initial
	states = append(states, state)

	for i := 0; i < steps; i++ {
		t := t0 + float64(i)*dt
		if err := model.ValidateState(state); err != nil {
			return nil, &dynamo.StepError{Step: i, Time: t, Err: err}
		}
		next, err := stepper.Step(t, state, control, dt)
		if err != nil {
			return nil, &dynamo.StepError{Step: i, Time: t, Err: err}
		}
		state = next
		states = append(states, state)
	}

	return &Prediction[S, U]{
		States:  states,
		Control: control,
		T0:      t0,
		TFinal:  tFinal,
		CPUTime: time.Since(start),
	}, nil
}
