// Package engine owns the simulation loop: it advances the physics core at a
// fixed cadence, applies parameter swaps at step boundaries, and publishes
// frame snapshots for rendering and streaming.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hexbounce/hexbounce/parameter"
	"github.com/hexbounce/hexbounce/physics"
	"github.com/hexbounce/hexbounce/vmath"
)

// spawnClearanceFactor is the minimum edge clearance, in ball radii, required
// of a spawn point
const spawnClearanceFactor = 2.0

// Runner orchestrates one ball inside one hexagon. All stepping happens on
// the caller's goroutine; parameter updates may arrive from anywhere and are
// observed as whole-value swaps at the start of the next step.
type Runner struct {
	log   *zap.Logger
	clock TimeProvider

	params atomic.Pointer[parameter.Params]
	paused atomic.Bool

	ball *physics.Ball
	hex  *physics.Hexagon
	eng  *physics.Engine

	tick     uint64
	lastStep time.Time
	fps      float64

	listeners []func(Snapshot)
}

// NewRunner builds a runner with a fresh ball and hexagon from the given
// parameters. A nil logger disables logging; a nil clock uses real time.
func NewRunner(p parameter.Params, clock TimeProvider, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	r := &Runner{
		log:   log,
		clock: clock,
		eng:   physics.NewEngine(log),
	}
	r.params.Store(&p)
	r.rebuildWorld(p)
	return r
}

// rebuildWorld constructs ball and hexagon from parameters. The spawn point
// starts above center and is accepted only with adequate edge clearance.
func (r *Runner) rebuildWorld(p parameter.Params) {
	r.hex = physics.NewHexagon(vmath.Vec2{}, p.HexagonRadius, p.HexagonAngularSpeed)

	spawn := vmath.Vec2{Y: -p.HexagonRadius * 0.3}
	if r.hex.NearestEdgeDistance(spawn) < p.BallRadius*spawnClearanceFactor {
		spawn = vmath.Vec2{}
	}
	r.ball = physics.NewBall(spawn, p.BallRadius, p.BallMass)
}

// Subscribe registers a listener invoked with every frame snapshot, on the
// stepping goroutine. Must be called before stepping starts.
func (r *Runner) Subscribe(fn func(Snapshot)) {
	r.listeners = append(r.listeners, fn)
}

// Params returns the current parameter snapshot
func (r *Runner) Params() parameter.Params {
	return *r.params.Load()
}

// SetParams swaps in a new parameter snapshot after validating it. The swap
// is atomic: a step sees either all old or all new coefficients.
func (r *Runner) SetParams(p parameter.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.params.Store(&p)
	return nil
}

// Paused reports whether stepping is suspended
func (r *Runner) Paused() bool {
	return r.paused.Load()
}

// TogglePause flips the pause state and returns the new value
func (r *Runner) TogglePause() bool {
	paused := !r.paused.Load()
	r.paused.Store(paused)
	return paused
}

// Reset reconstructs the ball and hexagon from the current parameters and
// clears the engine counters
func (r *Runner) Reset() {
	p := *r.params.Load()
	r.rebuildWorld(p)
	r.eng.ResetStats()
	r.tick = 0
	r.log.Info("simulation reset",
		zap.Float64("hexagon_radius", p.HexagonRadius),
		zap.Float64("ball_radius", p.BallRadius))
}

// NudgeBall adds a velocity impulse, the only inbound kinematic control
// besides explicit overrides
func (r *Runner) NudgeBall(dv vmath.Vec2) {
	r.ball.SetVelocity(r.ball.Velocity.Add(dv))
}

// SetBallPosition is the explicit position override surface
func (r *Runner) SetBallPosition(p vmath.Vec2) bool {
	return r.ball.SetPosition(p)
}

// SetBallVelocity is the explicit velocity override surface
func (r *Runner) SetBallVelocity(v vmath.Vec2) bool {
	return r.ball.SetVelocity(v)
}

// Step advances the simulation by dt and publishes a snapshot. When paused it
// still publishes so renderers keep drawing the frozen state.
func (r *Runner) Step(dt float64) error {
	now := r.clock.Now()
	if !r.lastStep.IsZero() {
		if frame := now.Sub(r.lastStep).Seconds(); frame > 0 {
			r.fps = 1.0 / frame
		}
	}
	r.lastStep = now

	if !r.paused.Load() {
		p := *r.params.Load()
		// Live angular speed changes land here, at the step boundary
		r.hex.AngularSpeed = p.HexagonAngularSpeed
		if err := r.eng.Step(r.ball, r.hex, dt, p); err != nil {
			return err
		}
		r.tick++
	}

	r.publish()
	return nil
}

// Snapshot captures the current frame state
func (r *Runner) Snapshot() Snapshot {
	return Snapshot{
		Tick:   r.tick,
		Paused: r.paused.Load(),
		FPS:    r.fps,
		Ball: BallState{
			Position:      r.ball.Position,
			Velocity:      r.ball.Velocity,
			Radius:        r.ball.Radius,
			Speed:         r.ball.Speed(),
			KineticEnergy: r.ball.KineticEnergy(),
		},
		Hexagon: HexagonState{
			Center:       r.hex.Center,
			Radius:       r.hex.Radius,
			Rotation:     r.hex.Rotation,
			AngularSpeed: r.hex.AngularSpeed,
			Vertices:     r.hex.Vertices(),
		},
		Params: *r.params.Load(),
		Stats:  r.eng.Stats(),
	}
}

func (r *Runner) publish() {
	if len(r.listeners) == 0 {
		return
	}
	snap := r.Snapshot()
	for _, fn := range r.listeners {
		fn(snap)
	}
}

// Run drives the runner from a ticker until the context is done. Used by
// headless mode; the TUI drives Step from its own event loop instead.
func (r *Runner) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Step(dt); err != nil {
				return err
			}
		}
	}
}
