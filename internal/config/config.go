// Package config loads and saves prediction scenarios as YAML.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/remi-v/intentsim/internal/dynamo"
)

const (
	DefaultDrag     = 0.1
	DefaultTFinal   = 10.0
	DefaultSteps    = 30000
	DefaultIterMax  = 15
	DefaultMinError = 1e-10
)

// Config is one prediction scenario. Angles in the file are degrees; they
// convert to radians at this boundary.
type Config struct {
	Model   string  `yaml:"model"`   // quadcopter | planar
	Stepper string  `yaml:"stepper"` // euler | rk4 | backward-euler
	Drag    float64 `yaml:"drag"`

	T0     float64 `yaml:"t0"`
	TFinal float64 `yaml:"t_final"`
	Steps  int     `yaml:"steps"`

	Input     InputConfig  `yaml:"input"`
	InitState StateConfig  `yaml:"init_state"`
	Newton    NewtonConfig `yaml:"newton"`
}

// InputConfig is the held stick position, in degrees and degrees/second.
type InputConfig struct {
	RollDeg    float64 `yaml:"roll_deg"`
	PitchDeg   float64 `yaml:"pitch_deg"`
	YawRateDps float64 `yaml:"yaw_rate_dps"`
}

// StateConfig is the initial state. Yaw applies to the quadcopter model
// only.
type StateConfig struct {
	North  float64 `yaml:"north"`
	East   float64 `yaml:"east"`
	VNorth float64 `yaml:"v_north"`
	VEast  float64 `yaml:"v_east"`
	YawDeg float64 `yaml:"yaw_deg"`
}

// NewtonConfig tunes the implicit stepper's nonlinear solves.
type NewtonConfig struct {
	IterMax  int     `yaml:"iter_max"`
	MinError float64 `yaml:"min_error"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   "quadcopter",
		Stepper: "euler",
		Drag:    DefaultDrag,
		TFinal:  DefaultTFinal,
		Steps:   DefaultSteps,
		Input: InputConfig{
			PitchDeg: 10.0,
		},
		Newton: NewtonConfig{
			IterMax:  DefaultIterMax,
			MinError: DefaultMinError,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PilotInput converts the degree-valued input into the engine's radian
// convention.
func (c *Config) PilotInput() dynamo.PilotInput {
	return dynamo.PilotInput{
		Roll:    c.Input.RollDeg * math.Pi / 180,
		Pitch:   c.Input.PitchDeg * math.Pi / 180,
		YawRate: c.Input.YawRateDps * math.Pi / 180,
	}
}

// YawRad returns the initial yaw in radians.
func (c *Config) YawRad() float64 {
	return c.InitState.YawDeg * math.Pi / 180
}
