package models

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/remi-v/intentsim/internal/dynamo"
)

func TestPitchForwardPushesNorthWhenYawZero(t *testing.T) {
	m := NewQuadcopter(0.1)
	u := m.InputToControl(dynamo.PilotInput{Pitch: 10 * math.Pi / 180})

	dx := m.Derivative(0, QuadState{}, u)

	if dx.VNorth <= 0 {
		t.Errorf("expected positive v_north derivative, got %f", dx.VNorth)
	}
	if math.Abs(dx.VEast) > 1e-9 {
		t.Errorf("expected near-zero v_east derivative, got %f", dx.VEast)
	}
}

func TestRollRightPushesEastWhenYawZero(t *testing.T) {
	m := NewQuadcopter(0.1)
	u := m.InputToControl(dynamo.PilotInput{Roll: 5 * math.Pi / 180})

	dx := m.Derivative(0, QuadState{}, u)

	if dx.VEast <= 0 {
		t.Errorf("expected positive v_east derivative, got %f", dx.VEast)
	}
	if math.Abs(dx.VNorth) > 1e-9 {
		t.Errorf("expected near-zero v_north derivative, got %f", dx.VNorth)
	}
}

func TestYawRotatesBodyFrame(t *testing.T) {
	m := NewQuadcopter(0.1)
	u := m.InputToControl(dynamo.PilotInput{Pitch: 10 * math.Pi / 180})

	// 90 degrees of yaw turns forward tilt into east acceleration.
	dx := m.Derivative(0, QuadState{Yaw: math.Pi / 2}, u)

	if dx.VEast <= 0 {
		t.Errorf("expected positive v_east derivative, got %f", dx.VEast)
	}
	if math.Abs(dx.VNorth) > 1e-9 {
		t.Errorf("expected near-zero v_north derivative, got %f", dx.VNorth)
	}
}

func TestYawRatePropagatesHeading(t *testing.T) {
	m := NewQuadcopter(0.1)
	u := m.InputToControl(dynamo.PilotInput{YawRate: 1.0})

	dx := m.Derivative(0, QuadState{}, u)

	if dx.Yaw != 1.0 {
		t.Errorf("expected yaw derivative 1.0, got %f", dx.Yaw)
	}
}

func TestZeroInputEquilibrium(t *testing.T) {
	m := NewQuadcopter(0.1)
	u := m.InputToControl(dynamo.PilotInput{})

	dx := m.Derivative(0, QuadState{}, u)

	zero := QuadState{}
	if dx != zero {
		t.Errorf("expected exactly zero derivative at rest, got %+v", dx)
	}
}

func TestTiltClamp(t *testing.T) {
	m := NewQuadcopter(0.1)

	// Right at the singularity the clamp must keep tan() bounded.
	u := m.InputToControl(dynamo.PilotInput{Pitch: math.Pi / 2, Roll: -math.Pi / 2})
	if math.IsInf(u.AXBody, 0) || math.IsNaN(u.AXBody) {
		t.Fatalf("clamp failed, ax = %f", u.AXBody)
	}

	// Anything past the clamp maps to the same control.
	beyond := m.InputToControl(dynamo.PilotInput{Pitch: 3, Roll: -3})
	if beyond != u {
		t.Errorf("expected clamped controls to match: %+v vs %+v", beyond, u)
	}
}

func TestInputToControlDeterministic(t *testing.T) {
	m := NewQuadcopter(0.1)
	in := dynamo.PilotInput{Roll: 0.1, Pitch: 0.2, YawRate: 0.3}

	a := m.InputToControl(in)
	b := m.InputToControl(in)

	if a != b {
		t.Errorf("control mapping not deterministic: %+v vs %+v", a, b)
	}
}

func TestValidateState(t *testing.T) {
	m := NewQuadcopter(0.1)

	if err := m.ValidateState(QuadState{North: 1, VEast: -2}); err != nil {
		t.Errorf("unexpected error for finite state: %v", err)
	}

	err := m.ValidateState(QuadState{VNorth: math.NaN()})
	if !errors.Is(err, dynamo.ErrNonFiniteState) {
		t.Errorf("expected ErrNonFiniteState, got %v", err)
	}

	err = m.ValidateState(QuadState{Yaw: math.Inf(1)})
	if !errors.Is(err, dynamo.ErrNonFiniteState) {
		t.Errorf("expected ErrNonFiniteState for Inf, got %v", err)
	}
}

// TestJacobianMatchesFiniteDifference cross-checks every analytic entry
// against a central difference of Derivative.
func TestJacobianMatchesFiniteDifference(t *testing.T) {
	m := NewQuadcopter(0.3)
	u := m.InputToControl(dynamo.PilotInput{Roll: 0.2, Pitch: 0.3, YawRate: 0.5})
	x := QuadState{North: 1, East: -2, VNorth: 3, VEast: -1, Yaw: 0.7}

	jac := m.Jacobian(0, x, u)

	const h = 1e-6
	v := x.Vector()
	for col := 0; col < 5; col++ {
		plus := mutate(v, col, h)
		minus := mutate(v, col, -h)
		dPlus := m.Derivative(0, x.FromVector(plus), u).Vector()
		dMinus := m.Derivative(0, x.FromVector(minus), u).Vector()
		for row := 0; row < 5; row++ {
			numeric := (dPlus.AtVec(row) - dMinus.AtVec(row)) / (2 * h)
			analytic := jac.At(row, col)
			if math.Abs(numeric-analytic) > 1e-5 {
				t.Errorf("jacobian[%d][%d]: analytic %f, numeric %f", row, col, analytic, numeric)
			}
		}
	}
}

func mutate(v *mat.VecDense, i int, delta float64) *mat.VecDense {
	out := mat.VecDenseCopyOf(v)
	out.SetVec(i, out.AtVec(i)+delta)
	return out
}

func TestVectorRoundTrip(t *testing.T) {
	x := QuadState{North: 1, East: 2, VNorth: 3, VEast: 4, Yaw: 5}
	got := x.FromVector(x.Vector())
	if got != x {
		t.Errorf("round trip changed state: %+v vs %+v", got, x)
	}
}
