package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/remi-v/intentsim/internal/dynamo"
)

// Gravity is the gravitational acceleration used by the hover-thrust
// control mapping, in m/s².
const Gravity = 9.81

// maxTilt keeps tan() bounded: tilt commands are clamped to 95% of a right
// angle before the hover approximation is applied.
const maxTilt = math.Pi / 2 * 0.95

// QuadState is the quadcopter state: position and velocity in the NED
// ground plane plus heading.
type QuadState struct {
	North  float64 // m
	East   float64 // m
	VNorth float64 // m/s
	VEast  float64 // m/s
	Yaw    float64 // rad, 0 = North, positive clockwise
}

// AddScaled returns s + scale*d.
func (s QuadState) AddScaled(d QuadState, scale float64) QuadState {
	return QuadState{
		North:  s.North + scale*d.North,
		East:   s.East + scale*d.East,
		VNorth: s.VNorth + scale*d.VNorth,
		VEast:  s.VEast + scale*d.VEast,
		Yaw:    s.Yaw + scale*d.Yaw,
	}
}

// Position returns the (north, east) ground position.
func (s QuadState) Position() (float64, float64) {
	return s.North, s.East
}

func (s QuadState) Vector() *mat.VecDense {
	return mat.NewVecDense(5, []float64{s.North, s.East, s.VNorth, s.VEast, s.Yaw})
}

func (s QuadState) FromVector(v *mat.VecDense) QuadState {
	if v.Len() != 5 {
		panic(fmt.Sprintf("models: QuadState expects 5 components, got %d", v.Len()))
	}
	return QuadState{
		North:  v.AtVec(0),
		East:   v.AtVec(1),
		VNorth: v.AtVec(2),
		VEast:  v.AtVec(3),
		Yaw:    v.AtVec(4),
	}
}

// QuadControl is the quadcopter control vector: body-frame accelerations
// plus a yaw rate, held constant over a prediction.
type QuadControl struct {
	AXBody  float64 // m/s², body x (forward)
	AYBody  float64 // m/s², body y (right)
	YawRate float64 // rad/s
}

// Components returns the control as a flat slice for export.
func (c QuadControl) Components() []float64 {
	return []float64{c.AXBody, c.AYBody, c.YawRate}
}

// Quadcopter is a planar NED quadcopter model using hover small-angle
// thrust and linear drag. Body frame: x-forward, y-right, z-down.
type Quadcopter struct {
	Drag float64 // 1/s, linear drag coefficient
}

func NewQuadcopter(drag float64) *Quadcopter {
	return &Quadcopter{Drag: drag}
}

// InputToControl maps a held stick position to body accelerations.
// Pitch > 0 tilts forward (body x), roll > 0 tilts right (body y).
func (q *Quadcopter) InputToControl(in dynamo.PilotInput) QuadControl {
	pitch := clamp(in.Pitch, -maxTilt, maxTilt)
	roll := clamp(in.Roll, -maxTilt, maxTilt)

	// Hover approximation: horizontal accel ≈ g·tan(tilt).
	return QuadControl{
		AXBody:  Gravity * math.Tan(pitch),
		AYBody:  -Gravity * math.Tan(roll),
		YawRate: in.YawRate,
	}
}

// Derivative rotates the body accelerations through the current yaw into
// the NED frame and subtracts linear drag from the velocities.
func (q *Quadcopter) Derivative(t float64, x QuadState, u QuadControl) QuadState {
	sin, cos := math.Sincos(x.Yaw)

	aNorth := u.AXBody*cos - u.AYBody*sin
	aEast := u.AXBody*sin + u.AYBody*cos

	return QuadState{
		North:  x.VNorth,
		East:   x.VEast,
		VNorth: aNorth - q.Drag*x.VNorth,
		VEast:  aEast - q.Drag*x.VEast,
		Yaw:    u.YawRate,
	}
}

// ValidateState reports a non-finite state component.
func (q *Quadcopter) ValidateState(x QuadState) error {
	for _, v := range []float64{x.North, x.East, x.VNorth, x.VEast, x.Yaw} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("models: quadcopter state %+v: %w", x, dynamo.ErrNonFiniteState)
		}
	}
	return nil
}

// Jacobian returns the exact 5×5 partial-derivative matrix of Derivative
// with respect to the state. Nonzero entries: the velocity/position
// coupling block, the -drag velocity diagonal, and the partials of the
// rotated accelerations with respect to yaw.
func (q *Quadcopter) Jacobian(t float64, x QuadState, u QuadControl) *mat.Dense {
	sin, cos := math.Sincos(x.Yaw)

	dANorthDYaw := -u.AXBody*sin - u.AYBody*cos
	dAEastDYaw := u.AXBody*cos - u.AYBody*sin

	return mat.NewDense(5, 5, []float64{
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, -q.Drag, 0, dANorthDYaw,
		0, 0, 0, -q.Drag, dAEastDYaw,
		0, 0, 0, 0, 0,
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
