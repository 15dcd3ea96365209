package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexbounce/hexbounce/parameter"
	"github.com/hexbounce/hexbounce/vmath"
)

// frictionless returns params with every damping channel disabled so tests
// can observe collision behavior in isolation
func frictionless() parameter.Params {
	p := parameter.Default()
	p.Gravity = 0
	p.FrictionCoefficient = 1
	p.AirResistance = 1
	p.MinVelocityThreshold = 0
	p.TimeScale = 1
	p.HexagonAngularSpeed = 0
	return p
}

func TestStepRequiresWorld(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{}, 8, 1)

	require.ErrorIs(t, eng.Step(nil, hex, 0.016, parameter.Default()), ErrNoBall)
	require.ErrorIs(t, eng.Step(ball, nil, 0.016, parameter.Default()), ErrNoBoundary)
}

func TestStepRejectsInvalidDt(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{X: 10, Y: 5}, 8, 1)
	ball.Velocity = vmath.Vec2{X: 3}

	before := *ball
	for _, dt := range []float64{0, -0.016, math.NaN(), math.Inf(1), 1.0, 5.0} {
		require.NoError(t, eng.Step(ball, hex, dt, parameter.Default()))
	}

	require.Equal(t, before, *ball, "invalid dt must not mutate the ball")
	require.Equal(t, uint64(6), eng.Stats().SkippedSteps)
	require.Equal(t, uint64(0), eng.Stats().Steps)
}

func TestStepAppliesGravity(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{}, 8, 1)

	p := parameter.Default()
	p.HexagonAngularSpeed = 0
	require.NoError(t, eng.Step(ball, hex, 1.0/60, p))

	// Gravity pulls toward +y regardless of mass
	require.Greater(t, ball.Velocity.Y, 0.0)
	require.Greater(t, ball.Position.Y, 0.0)
	require.InDelta(t, 0.0, ball.Velocity.X, 1e-12)

	heavy := NewBall(vmath.Vec2{}, 8, 10)
	eng2 := NewEngine(nil)
	require.NoError(t, eng2.Step(heavy, hex, 1.0/60, p))
	require.InDelta(t, ball.Velocity.Y, heavy.Velocity.Y, 1e-9)
}

func TestStepStopsSlowBall(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{}, 8, 1)
	ball.Velocity = vmath.Vec2{X: 0.5}

	p := frictionless()
	p.Gravity = 0
	p.MinVelocityThreshold = 2.0
	require.NoError(t, eng.Step(ball, hex, 1.0/60, p))
	require.Equal(t, vmath.Vec2{}, ball.Velocity)
}

func TestStepBounceOffWall(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{X: 90}, 15, 1)
	ball.Velocity = vmath.Vec2{X: -50}

	p := frictionless()
	p.Restitution = 0.8
	p.BallRadius = 15

	speedBefore := ball.Speed()
	require.NoError(t, eng.Step(ball, hex, 0.001, p))

	// The bounce reverses the motion along the wall normal and restitution
	// bleeds energy
	require.Greater(t, ball.Velocity.X, 0.0)
	require.Less(t, ball.Speed(), speedBefore)
	require.True(t, hex.ContainsPoint(ball.Position))
	require.Equal(t, uint64(1), eng.Stats().Collisions)
}

func TestStepElasticBouncePreservesSpeed(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{}, 8, 1)
	ball.Velocity = vmath.Vec2{X: 60, Y: 37}

	p := frictionless()
	p.Restitution = 1.0

	speed := ball.Speed()
	for i := 0; i < 2000; i++ {
		require.NoError(t, eng.Step(ball, hex, 1.0/120, p))
	}

	require.InDelta(t, speed, ball.Speed(), 1e-6)
	require.Greater(t, eng.Stats().Collisions, uint64(0))
	require.True(t, ball.Position.IsFinite())
}

func TestStepEnergyNeverIncreases(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{X: 20, Y: -30}, 8, 1)
	ball.Velocity = vmath.Vec2{X: 85, Y: -40}

	p := frictionless()
	p.Restitution = 0.9

	energy := ball.KineticEnergy()
	for i := 0; i < 3000; i++ {
		require.NoError(t, eng.Step(ball, hex, 1.0/120, p))
		post := ball.KineticEnergy()
		require.LessOrEqual(t, post, energy+1e-6, "step %d gained energy", i)
		energy = post
	}
}

func TestStepRotatingBoundary(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 2.0)
	ball := NewBall(vmath.Vec2{X: 70}, 8, 1)
	ball.Velocity = vmath.Vec2{X: 55}

	p := frictionless()
	p.HexagonAngularSpeed = 2.0

	for i := 0; i < 1000; i++ {
		require.NoError(t, eng.Step(ball, hex, 1.0/120, p))
		require.True(t, ball.Position.IsFinite(), "step %d", i)
		require.LessOrEqual(t, ball.Speed(), p.MaxVelocity+1e-9, "step %d", i)
	}

	// A spinning boundary keeps feeding momentum into the ball
	require.Greater(t, eng.Stats().Collisions, uint64(0))
	require.Greater(t, ball.Speed(), 0.0)
	// Bounded orbit: the ball never escapes the boundary region
	require.Less(t, ball.Position.Magnitude(), hex.Radius*1.5)
}

func TestStepSweepsFastBall(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{}, 4, 1)
	// Fast enough to cross the wall region in a single discrete step
	ball.Velocity = vmath.Vec2{X: 1100}

	p := frictionless()
	p.MaxVelocity = 2000
	p.BallRadius = 4

	speedBefore := ball.Speed()
	require.NoError(t, eng.Step(ball, hex, 0.1, p))

	// A discrete endpoint check alone would also see this overlap, but the
	// sweep must catch it at the earliest crossing, not just at the endpoint
	require.Equal(t, uint64(1), eng.Stats().Collisions)
	require.Less(t, ball.Speed(), speedBefore, "restitution must bleed energy")
	require.True(t, ball.Position.IsFinite())
}

func TestStepRepairsCorruptBall(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{}, 8, 1)
	ball.Velocity = vmath.Vec2{X: math.NaN()}

	require.NoError(t, eng.Step(ball, hex, 1.0/60, frictionless()))
	require.True(t, ball.Position.IsFinite())
	require.True(t, ball.Velocity.IsFinite())
	require.Greater(t, eng.Stats().Anomalies, uint64(0))
}

func TestStepRejectsNonFiniteGravity(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{}, 8, 1)

	p := frictionless()
	p.Gravity = math.Inf(1)
	require.NoError(t, eng.Step(ball, hex, 1.0/60, p))

	// The bad force is dropped, not integrated
	require.True(t, ball.Velocity.IsFinite())
	require.Equal(t, vmath.Vec2{}, ball.Velocity)
	require.Greater(t, eng.Stats().Anomalies, uint64(0))
}

func TestStatsAccumulateAndReset(t *testing.T) {
	eng := NewEngine(nil)
	hex := NewHexagon(vmath.Vec2{}, 100, 0)
	ball := NewBall(vmath.Vec2{}, 8, 1)

	for i := 0; i < 10; i++ {
		require.NoError(t, eng.Step(ball, hex, 1.0/60, frictionless()))
	}
	stats := eng.Stats()
	require.Equal(t, uint64(10), stats.Steps)
	require.GreaterOrEqual(t, stats.MaxStepTime, stats.AvgStepTime)
	require.LessOrEqual(t, stats.MinStepTime, stats.MaxStepTime)

	eng.ResetStats()
	require.Equal(t, Stats{}, eng.Stats())
}
