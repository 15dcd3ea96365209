// Package parameter holds the tunable simulation coefficients. Values are
// validated at this boundary; the physics core trusts what it receives.
// Live updates are whole-struct swaps observed at the start of a step, so a
// step never sees a torn mix of old and new coefficients.
package parameter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params is one immutable snapshot of every simulation coefficient.
type Params struct {
	// Gravity is the downward acceleration in m/s², scaled into pixel space
	// by GravityScale
	Gravity      float64 `yaml:"gravity" json:"gravity"`
	GravityScale float64 `yaml:"gravity_scale" json:"gravity_scale"`

	// FrictionCoefficient is the per-step velocity retention from contact
	// friction, 1 = frictionless
	FrictionCoefficient float64 `yaml:"friction_coefficient" json:"friction_coefficient"`

	// Restitution is the fraction of normal speed kept after a bounce,
	// 1 = elastic, 0 = inelastic
	Restitution float64 `yaml:"restitution" json:"restitution"`

	// TimeScale stretches or compresses simulated time per wall-clock step
	TimeScale float64 `yaml:"time_scale" json:"time_scale"`

	// MinVelocityThreshold is the speed below which the ball is stopped dead
	MinVelocityThreshold float64 `yaml:"min_velocity_threshold" json:"min_velocity_threshold"`

	// MaxVelocity bounds the ball's speed after every step
	MaxVelocity float64 `yaml:"max_velocity" json:"max_velocity"`

	// AirResistance is the per-step velocity retention from drag, 1 = vacuum
	AirResistance float64 `yaml:"air_resistance" json:"air_resistance"`

	// RotationalFriction dampens the tangential component when bouncing off
	// a spinning wall
	RotationalFriction float64 `yaml:"rotational_friction" json:"rotational_friction"`

	// SurfaceDragEffect is the extra tangential momentum a spinning wall
	// injects into the ball, as a fraction of the surface velocity
	SurfaceDragEffect float64 `yaml:"surface_drag_effect" json:"surface_drag_effect"`

	// World geometry used on construction and reset
	HexagonRadius       float64 `yaml:"hexagon_radius" json:"hexagon_radius"`
	HexagonAngularSpeed float64 `yaml:"hexagon_angular_speed" json:"hexagon_angular_speed"`
	BallRadius          float64 `yaml:"ball_radius" json:"ball_radius"`
	BallMass            float64 `yaml:"ball_mass" json:"ball_mass"`
}

// Default returns the stock tuning: a gently spinning hexagon with a
// moderately bouncy ball.
func Default() Params {
	return Params{
		Gravity:              9.81,
		GravityScale:         40,
		FrictionCoefficient:  0.998,
		Restitution:          0.85,
		TimeScale:            1.0,
		MinVelocityThreshold: 2.0,
		MaxVelocity:          1200,
		AirResistance:        0.999,
		RotationalFriction:   0.12,
		SurfaceDragEffect:    0.15,
		HexagonRadius:        100,
		HexagonAngularSpeed:  0.6,
		BallRadius:           8,
		BallMass:             1.0,
	}
}

// Load reads a yaml file over the defaults, then validates.
func Load(path string) (Params, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read params: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks every coefficient against its documented range. Out-of-range
// values are rejected here so they never reach the physics core.
func (p Params) Validate() error {
	checks := []struct {
		name   string
		value  float64
		lo, hi float64
		exclLo bool
	}{
		{"gravity", p.Gravity, -1e6, 1e6, false},
		{"gravity_scale", p.GravityScale, 0, 1e6, true},
		{"friction_coefficient", p.FrictionCoefficient, 0, 1, false},
		{"restitution", p.Restitution, 0, 1, false},
		{"time_scale", p.TimeScale, 0, 10, true},
		{"min_velocity_threshold", p.MinVelocityThreshold, 0, 1e6, false},
		{"max_velocity", p.MaxVelocity, 0, 1e9, true},
		{"air_resistance", p.AirResistance, 0, 1, false},
		{"rotational_friction", p.RotationalFriction, 0, 1, false},
		{"surface_drag_effect", p.SurfaceDragEffect, 0, 1, false},
		{"hexagon_radius", p.HexagonRadius, 0, 1e9, true},
		{"hexagon_angular_speed", p.HexagonAngularSpeed, -100, 100, false},
		{"ball_radius", p.BallRadius, 0, 1e9, true},
		{"ball_mass", p.BallMass, 0, 1e9, true},
	}
	for _, c := range checks {
		if c.value != c.value { // NaN
			return fmt.Errorf("parameter %s: not a number", c.name)
		}
		if c.value < c.lo || (c.exclLo && c.value == c.lo) || c.value > c.hi {
			return fmt.Errorf("parameter %s: %v outside [%v, %v]", c.name, c.value, c.lo, c.hi)
		}
	}
	if p.BallRadius >= p.HexagonRadius {
		return fmt.Errorf("parameter ball_radius: %v must be smaller than hexagon_radius %v",
			p.BallRadius, p.HexagonRadius)
	}
	return nil
}
