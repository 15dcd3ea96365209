package parameter

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative restitution", func(p *Params) { p.Restitution = -0.1 }},
		{"restitution above one", func(p *Params) { p.Restitution = 1.1 }},
		{"zero gravity scale", func(p *Params) { p.GravityScale = 0 }},
		{"negative friction", func(p *Params) { p.FrictionCoefficient = -1 }},
		{"friction above one", func(p *Params) { p.FrictionCoefficient = 2 }},
		{"zero time scale", func(p *Params) { p.TimeScale = 0 }},
		{"excessive time scale", func(p *Params) { p.TimeScale = 11 }},
		{"zero max velocity", func(p *Params) { p.MaxVelocity = 0 }},
		{"air resistance above one", func(p *Params) { p.AirResistance = 1.5 }},
		{"negative rotational friction", func(p *Params) { p.RotationalFriction = -0.2 }},
		{"drag above one", func(p *Params) { p.SurfaceDragEffect = 1.2 }},
		{"zero hexagon radius", func(p *Params) { p.HexagonRadius = 0 }},
		{"zero ball radius", func(p *Params) { p.BallRadius = 0 }},
		{"zero ball mass", func(p *Params) { p.BallMass = 0 }},
		{"nan restitution", func(p *Params) { p.Restitution = math.NaN() }},
		{"infinite gravity", func(p *Params) { p.Gravity = math.Inf(1) }},
		{"nan angular speed", func(p *Params) { p.HexagonAngularSpeed = math.NaN() }},
		{"ball larger than hexagon", func(p *Params) {
			p.BallRadius = 100
			p.HexagonRadius = 100
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			require.Error(t, p.Validate())
		})
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	p := Default()
	p.Restitution = 1.0
	p.FrictionCoefficient = 0
	p.AirResistance = 1.0
	p.RotationalFriction = 0
	p.MinVelocityThreshold = 0
	require.NoError(t, p.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	data := []byte("restitution: 0.5\nhexagon_angular_speed: -1.25\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.5, p.Restitution)
	require.Equal(t, -1.25, p.HexagonAngularSpeed)

	// Untouched fields keep their defaults
	require.Equal(t, Default().Gravity, p.Gravity)
	require.Equal(t, Default().BallRadius, p.BallRadius)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("restitution: [not a number"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)

	outOfRange := filepath.Join(dir, "range.yaml")
	require.NoError(t, os.WriteFile(outOfRange, []byte("restitution: 3.0\n"), 0o644))
	_, err = Load(outOfRange)
	require.Error(t, err)
}
