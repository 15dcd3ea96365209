package physics

import (
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/hexbounce/hexbounce/parameter"
	"github.com/hexbounce/hexbounce/vmath"
)

var (
	// ErrNoBall is returned when a step is attempted without a body
	ErrNoBall = errors.New("physics: step requires a ball")
	// ErrNoBoundary is returned when a step is attempted without a boundary
	ErrNoBoundary = errors.New("physics: step requires a hexagon")
)

const (
	// pushEpsilon is the separation slack added beyond the penetration depth
	pushEpsilon = 1e-3
	// normalEpsilon is the tolerated inward residual after a bounce
	normalEpsilon = 1e-6
	// energyEpsilon is the tolerated kinetic energy gain through a bounce
	energyEpsilon = 1e-6
	// rotatingSpeedCap is the fraction of MaxVelocity allowed off a spinning wall
	rotatingSpeedCap = 0.8
	// maxStepDt rejects pathological time steps instead of processing them
	maxStepDt = 1.0
)

// Stats are the engine's performance and anomaly counters. They are
// observability only and never influence the simulation.
type Stats struct {
	Steps        uint64        `json:"steps"`
	SkippedSteps uint64        `json:"skipped_steps"`
	Collisions   uint64        `json:"collisions"`
	Anomalies    uint64        `json:"anomalies"`
	AvgStepTime  time.Duration `json:"avg_step_time"`
	MinStepTime  time.Duration `json:"min_step_time"`
	MaxStepTime  time.Duration `json:"max_step_time"`

	totalStepTime time.Duration
}

// Engine advances one ball inside one hexagon per step: force accumulation,
// integration, collision query, and bounce resolution. A step runs to
// completion on a single goroutine; the parameter snapshot it receives is
// never observed mid-change.
type Engine struct {
	log   *zap.Logger
	stats Stats
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Stats returns a copy of the current counters
func (e *Engine) Stats() Stats {
	return e.stats
}

// ResetStats clears the counters, used when the simulation is reset
func (e *Engine) ResetStats() {
	e.stats = Stats{}
}

// Step advances the simulation by dt seconds of wall time. An invalid dt
// skips the step without mutating anything; a missing ball or hexagon is an
// error and also leaves state untouched. Numerical corruption discovered
// mid-step is repaired in place and counted, never propagated: the step
// always completes with finite, bounded state.
func (e *Engine) Step(ball *Ball, hex *Hexagon, dt float64, p parameter.Params) error {
	if ball == nil {
		return ErrNoBall
	}
	if hex == nil {
		return ErrNoBoundary
	}
	if !vmath.IsFinite(dt) || dt <= 0 || dt >= maxStepDt {
		e.stats.SkippedSteps++
		e.log.Warn("skipping step with invalid dt", zap.Float64("dt", dt))
		return nil
	}

	start := time.Now()

	// Gravity accumulates as a force; friction and drag act on velocity
	// directly, matching the per-frame damping model.
	gravity := vmath.Vec2{Y: p.Gravity * p.GravityScale}.Scale(ball.Mass)
	if !ball.ApplyForce(gravity) {
		e.stats.Anomalies++
		e.log.Warn("rejected non-finite gravity force",
			zap.Float64("gravity", p.Gravity), zap.Float64("scale", p.GravityScale))
	}

	if ball.Speed() < p.MinVelocityThreshold {
		ball.Velocity = vmath.Vec2{}
	} else {
		ball.Velocity = ball.Velocity.Scale(p.FrictionCoefficient)
	}
	ball.Velocity = ball.Velocity.Scale(p.AirResistance)

	scaled := dt * p.TimeScale
	prevPosition := ball.Position

	if ball.Integrate(scaled, p.MaxVelocity) {
		e.stats.Anomalies++
		e.log.Warn("repaired non-finite ball state after integration")
	}

	// A spinning boundary or a displacement beyond the ball's own radius can
	// tunnel between discrete samples, so those cases get the swept query
	// over the window the ball just traversed.
	var contact *Contact
	if hex.Spinning() || ball.Speed()*scaled > ball.Radius {
		probe := Ball{
			Position: prevPosition,
			Velocity: ball.Velocity,
			Radius:   ball.Radius,
			Mass:     ball.Mass,
		}
		contact = hex.CheckContinuousCollision(&probe, scaled)
		hex.Update(scaled)
	} else {
		hex.Update(scaled)
		contact = hex.CheckCollision(ball)
	}

	if contact != nil {
		e.stats.Collisions++
		if contact.RotatingSurface {
			e.resolveRotating(ball, contact, p)
		} else {
			e.resolveStatic(ball, contact, p)
		}
	}

	ball.Velocity = vmath.ClampMagnitude(ball.Velocity, p.MaxVelocity)

	elapsed := time.Since(start)
	e.stats.Steps++
	e.stats.totalStepTime += elapsed
	e.stats.AvgStepTime = e.stats.totalStepTime / time.Duration(e.stats.Steps)
	if elapsed > e.stats.MaxStepTime {
		e.stats.MaxStepTime = elapsed
	}
	if e.stats.Steps == 1 || elapsed < e.stats.MinStepTime {
		e.stats.MinStepTime = elapsed
	}
	return nil
}

// resolveStatic handles a bounce off a non-rotating wall: separate, reflect
// the velocity when its normal component points against the face normal,
// apply restitution, and stop dead below the velocity threshold.
func (e *Engine) resolveStatic(ball *Ball, c *Contact, p parameter.Params) {
	// Separate by moving the ball back toward the interior
	ball.Position = ball.Position.Sub(c.Normal.Scale(c.Penetration + pushEpsilon))

	preEnergy := ball.KineticEnergy()

	if ball.Velocity.Dot(c.Normal) < 0 {
		ball.Velocity = vmath.Reflect(ball.Velocity, c.Normal)
	}
	ball.Velocity = ball.Velocity.Scale(p.Restitution)

	if ball.Speed() < p.MinVelocityThreshold {
		ball.Velocity = vmath.Vec2{}
	}

	e.correctInwardResidual(ball, c)

	// Restitution at or below 1 must never add energy; rescale if the
	// numerics disagree.
	if p.Restitution <= 1 {
		if post := ball.KineticEnergy(); post > preEnergy+energyEpsilon {
			// kinetic energy is quadratic in speed
			ball.Velocity = ball.Velocity.Scale(math.Sqrt(preEnergy / post))
			e.stats.Anomalies++
			e.log.Warn("corrected energy gain in static bounce",
				zap.Float64("pre", preEnergy), zap.Float64("post", post))
		}
	}
}

// resolveRotating handles a bounce off a spinning wall: work in the frame of
// the moving surface, reflect the normal component with restitution, dampen
// the tangential component, then hand back the surface velocity plus the
// drag injection. The result is capped below MaxVelocity so a fast wall
// cannot sling the ball unbounded.
func (e *Engine) resolveRotating(ball *Ball, c *Contact, p parameter.Params) {
	ball.Position = ball.Position.Sub(c.Normal.Scale(c.Penetration + pushEpsilon))

	rel := ball.Velocity.Sub(c.SurfaceVelocity)
	relNormal := rel.Dot(c.Normal)

	bounced := c.Normal.Scale(-relNormal * p.Restitution)
	tangential := rel.Sub(c.Normal.Scale(relNormal)).Scale(1 - p.RotationalFriction)
	drag := c.SurfaceVelocity.Scale(p.SurfaceDragEffect)

	v := bounced.Add(tangential).Add(c.SurfaceVelocity).Add(drag)
	v = vmath.ClampMagnitude(v, rotatingSpeedCap*p.MaxVelocity)
	ball.Velocity = v

	e.correctInwardResidual(ball, c)
}

// correctInwardResidual removes any leftover velocity component that still
// points into the wall after resolution, counting it as an anomaly.
func (e *Engine) correctInwardResidual(ball *Ball, c *Contact) {
	vn := ball.Velocity.Dot(c.Normal)
	if vn < -normalEpsilon {
		ball.Velocity = ball.Velocity.Sub(c.Normal.Scale(vn))
		e.stats.Anomalies++
		e.log.Warn("corrected inward residual velocity after bounce",
			zap.Float64("residual", vn), zap.Int("edge", c.EdgeIndex))
	}
}
