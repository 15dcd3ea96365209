package physics

import "github.com/hexbounce/hexbounce/vmath"

// Ball is a point-mass body with a collision radius and no spin of its own.
// Acceleration is transient: it accumulates applied forces within one step
// and is reset to zero by Integrate.
type Ball struct {
	Position     vmath.Vec2
	Velocity     vmath.Vec2
	Acceleration vmath.Vec2
	Mass         float64
	Radius       float64
}

// NewBall creates a body at rest at the given position
func NewBall(position vmath.Vec2, radius, mass float64) *Ball {
	return &Ball{
		Position: position,
		Mass:     mass,
		Radius:   radius,
	}
}

// ApplyForce accumulates f/mass into the acceleration. A non-finite force is
// rejected as a no-op and reported to the caller for logging.
func (b *Ball) ApplyForce(f vmath.Vec2) bool {
	if !f.IsFinite() || b.Mass <= 0 {
		return false
	}
	b.Acceleration = b.Acceleration.Add(f.Scale(1.0 / b.Mass))
	return true
}

// Integrate advances velocity and position by dt, clamping speed to
// maxVelocity when positive. Non-finite kinematic state is repaired to the
// origin at rest rather than propagated; the return value reports whether a
// repair happened so the caller can log it.
func (b *Ball) Integrate(dt, maxVelocity float64) (repaired bool) {
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	if maxVelocity > 0 {
		b.Velocity = vmath.ClampMagnitude(b.Velocity, maxVelocity)
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
		b.Position = vmath.Vec2{}
		b.Velocity = vmath.Vec2{}
		repaired = true
	}

	b.Acceleration = vmath.Vec2{}
	return repaired
}

// SetPosition overrides the position, rejecting non-finite input
func (b *Ball) SetPosition(p vmath.Vec2) bool {
	if !p.IsFinite() {
		return false
	}
	b.Position = p
	return true
}

// SetVelocity overrides the velocity, rejecting non-finite input
func (b *Ball) SetVelocity(v vmath.Vec2) bool {
	if !v.IsFinite() {
		return false
	}
	b.Velocity = v
	return true
}

// Speed returns the current velocity magnitude
func (b *Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}

// KineticEnergy returns 0.5 * mass * |velocity|²
func (b *Ball) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.MagnitudeSq()
}

// Momentum returns velocity * mass
func (b *Ball) Momentum() vmath.Vec2 {
	return b.Velocity.Scale(b.Mass)
}
