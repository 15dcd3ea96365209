package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexbounce/hexbounce/vmath"
)

func TestNewBall(t *testing.T) {
	b := NewBall(vmath.Vec2{X: 3, Y: -4}, 8, 2)
	require.Equal(t, vmath.Vec2{X: 3, Y: -4}, b.Position)
	require.Equal(t, vmath.Vec2{}, b.Velocity)
	require.Equal(t, vmath.Vec2{}, b.Acceleration)
	require.Equal(t, 8.0, b.Radius)
	require.Equal(t, 2.0, b.Mass)
}

func TestApplyForce(t *testing.T) {
	b := NewBall(vmath.Vec2{}, 8, 2)

	require.True(t, b.ApplyForce(vmath.Vec2{X: 10, Y: -4}))
	require.InDelta(t, 5.0, b.Acceleration.X, 1e-12)
	require.InDelta(t, -2.0, b.Acceleration.Y, 1e-12)

	// Forces accumulate until integration
	require.True(t, b.ApplyForce(vmath.Vec2{X: 2}))
	require.InDelta(t, 6.0, b.Acceleration.X, 1e-12)
}

func TestApplyForceRejectsBadInput(t *testing.T) {
	b := NewBall(vmath.Vec2{}, 8, 1)

	require.False(t, b.ApplyForce(vmath.Vec2{X: math.NaN()}))
	require.False(t, b.ApplyForce(vmath.Vec2{Y: math.Inf(1)}))
	require.Equal(t, vmath.Vec2{}, b.Acceleration)

	massless := NewBall(vmath.Vec2{}, 8, 0)
	require.False(t, massless.ApplyForce(vmath.Vec2{X: 1}))
}

func TestIntegrate(t *testing.T) {
	b := NewBall(vmath.Vec2{X: 10}, 8, 1)
	b.Velocity = vmath.Vec2{X: 2}
	b.ApplyForce(vmath.Vec2{Y: 4})

	repaired := b.Integrate(0.5, 0)
	require.False(t, repaired)
	require.InDelta(t, 2.0, b.Velocity.X, 1e-12)
	require.InDelta(t, 2.0, b.Velocity.Y, 1e-12)
	require.InDelta(t, 11.0, b.Position.X, 1e-12)
	require.InDelta(t, 1.0, b.Position.Y, 1e-12)

	// Acceleration drains into velocity and resets
	require.Equal(t, vmath.Vec2{}, b.Acceleration)
}

func TestIntegrateClampsVelocity(t *testing.T) {
	b := NewBall(vmath.Vec2{}, 8, 1)
	b.Velocity = vmath.Vec2{X: 300, Y: 400}

	b.Integrate(0.01, 100)
	require.InDelta(t, 100.0, b.Speed(), 1e-9)

	// Non-positive limit means unlimited
	b.Velocity = vmath.Vec2{X: 300, Y: 400}
	b.Integrate(0.01, 0)
	require.InDelta(t, 500.0, b.Speed(), 1e-9)
}

func TestIntegrateRepairsCorruption(t *testing.T) {
	b := NewBall(vmath.Vec2{X: 5}, 8, 1)
	b.Velocity = vmath.Vec2{X: math.NaN()}

	require.True(t, b.Integrate(0.1, 0))
	require.Equal(t, vmath.Vec2{}, b.Position)
	require.Equal(t, vmath.Vec2{}, b.Velocity)
	require.True(t, b.Position.IsFinite())

	b = NewBall(vmath.Vec2{X: math.Inf(1)}, 8, 1)
	require.True(t, b.Integrate(0.1, 0))
	require.Equal(t, vmath.Vec2{}, b.Position)
}

func TestSetPositionAndVelocity(t *testing.T) {
	b := NewBall(vmath.Vec2{}, 8, 1)

	require.True(t, b.SetPosition(vmath.Vec2{X: 1, Y: 2}))
	require.Equal(t, vmath.Vec2{X: 1, Y: 2}, b.Position)
	require.False(t, b.SetPosition(vmath.Vec2{X: math.NaN()}))
	require.Equal(t, vmath.Vec2{X: 1, Y: 2}, b.Position)

	require.True(t, b.SetVelocity(vmath.Vec2{X: -3}))
	require.Equal(t, vmath.Vec2{X: -3}, b.Velocity)
	require.False(t, b.SetVelocity(vmath.Vec2{Y: math.Inf(-1)}))
	require.Equal(t, vmath.Vec2{X: -3}, b.Velocity)
}

func TestDerivedQuantities(t *testing.T) {
	b := NewBall(vmath.Vec2{}, 8, 2)
	b.Velocity = vmath.Vec2{X: 3, Y: 4}

	require.InDelta(t, 5.0, b.Speed(), 1e-12)
	require.InDelta(t, 25.0, b.KineticEnergy(), 1e-12) // 0.5 * 2 * 25
	require.Equal(t, vmath.Vec2{X: 6, Y: 8}, b.Momentum())
}
