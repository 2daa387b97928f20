package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/remi-v/intentsim/internal/dynamo"
)

// PlanarState is the minimal drone state: NED ground-plane position and
// velocity, no heading.
type PlanarState struct {
	North  float64 // m
	East   float64 // m
	VNorth float64 // m/s
	VEast  float64 // m/s
}

// AddScaled returns s + scale*d.
func (s PlanarState) AddScaled(d PlanarState, scale float64) PlanarState {
	return PlanarState{
		North:  s.North + scale*d.North,
		East:   s.East + scale*d.East,
		VNorth: s.VNorth + scale*d.VNorth,
		VEast:  s.VEast + scale*d.VEast,
	}
}

// Position returns the (north, east) ground position.
func (s PlanarState) Position() (float64, float64) {
	return s.North, s.East
}

func (s PlanarState) Vector() *mat.VecDense {
	return mat.NewVecDense(4, []float64{s.North, s.East, s.VNorth, s.VEast})
}

func (s PlanarState) FromVector(v *mat.VecDense) PlanarState {
	if v.Len() != 4 {
		panic(fmt.Sprintf("models: PlanarState expects 4 components, got %d", v.Len()))
	}
	return PlanarState{
		North:  v.AtVec(0),
		East:   v.AtVec(1),
		VNorth: v.AtVec(2),
		VEast:  v.AtVec(3),
	}
}

// PlanarControl holds the commanded NED accelerations. Without yaw
// dynamics the body frame never rotates away from the navigation frame.
type PlanarControl struct {
	ANorth float64 // m/s²
	AEast  float64 // m/s²
}

// Components returns the control as a flat slice for export.
func (c PlanarControl) Components() []float64 {
	return []float64{c.ANorth, c.AEast}
}

// Planar is the yaw-less drone model. The dynamics are linear: constant
// forcing minus velocity-proportional drag.
type Planar struct {
	Drag float64 // 1/s
}

func NewPlanar(drag float64) *Planar {
	return &Planar{Drag: drag}
}

// InputToControl applies the same clamped hover-tangent mapping as the
// quadcopter; yaw rate has no channel to land in and is ignored.
func (p *Planar) InputToControl(in dynamo.PilotInput) PlanarControl {
	pitch := clamp(in.Pitch, -maxTilt, maxTilt)
	roll := clamp(in.Roll, -maxTilt, maxTilt)

	return PlanarControl{
		ANorth: Gravity * math.Tan(pitch),
		AEast:  -Gravity * math.Tan(roll),
	}
}

func (p *Planar) Derivative(t float64, x PlanarState, u PlanarControl) PlanarState {
	return PlanarState{
		North:  x.VNorth,
		East:   x.VEast,
		VNorth: u.ANorth - p.Drag*x.VNorth,
		VEast:  u.AEast - p.Drag*x.VEast,
	}
}

// ValidateState reports a non-finite state component.
func (p *Planar) ValidateState(x PlanarState) error {
	for _, v := range []float64{x.North, x.East, x.VNorth, x.VEast} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("models: planar state %+v: %w", x, dynamo.ErrNonFiniteState)
		}
	}
	return nil
}

// Jacobian is constant for this model: position couples to velocity and
// velocity decays with drag.
func (p *Planar) Jacobian(t float64, x PlanarState, u PlanarControl) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		0, 0, 1, 0,
		0, 0, 0, 1,
		0, 0, -p.Drag, 0,
		0, 0, 0, -p.Drag,
	})
}
