package physics

import (
	"math"

	"github.com/hexbounce/hexbounce/vmath"
)

// EdgeCount is fixed: the boundary is always a regular hexagon
const EdgeCount = 6

// minAngularSpeed is the spin below which the boundary is treated as static
const minAngularSpeed = 1e-6

// ccdSubSteps is the number of swept-test samples per time window
const ccdSubSteps = 8

// apothemFactor converts circumradius to apothem for a regular hexagon, cos(30°)
var apothemFactor = math.Cos(math.Pi / 6)

// Hexagon is the rotating boundary. Vertices and edges are derived from the
// current rotation on every query, never cached across a rotation update.
type Hexagon struct {
	Center       vmath.Vec2
	Radius       float64
	Rotation     float64 // wrapped into [0, 2π)
	AngularSpeed float64 // rad/s, positive is counter-clockwise
}

// NewHexagon creates a boundary centered at center with the given
// circumradius and angular speed
func NewHexagon(center vmath.Vec2, radius, angularSpeed float64) *Hexagon {
	return &Hexagon{
		Center:       center,
		Radius:       radius,
		AngularSpeed: angularSpeed,
	}
}

// Vertices returns the six corners in counter-clockwise order, 60° apart,
// offset by the current rotation
func (h *Hexagon) Vertices() [EdgeCount]vmath.Vec2 {
	var verts [EdgeCount]vmath.Vec2
	for k := 0; k < EdgeCount; k++ {
		angle := h.Rotation + float64(k)*math.Pi/3
		verts[k] = h.Center.Add(vmath.Vec2{
			X: math.Cos(angle),
			Y: math.Sin(angle),
		}.Scale(h.Radius))
	}
	return verts
}

// Edges returns the six edges, edge i connecting vertex i and vertex (i+1) mod 6
func (h *Hexagon) Edges() [EdgeCount][2]vmath.Vec2 {
	verts := h.Vertices()
	var edges [EdgeCount][2]vmath.Vec2
	for i := 0; i < EdgeCount; i++ {
		edges[i] = [2]vmath.Vec2{verts[i], verts[(i+1)%EdgeCount]}
	}
	return edges
}

// Rotate advances the rotation by delta radians, keeping it in [0, 2π)
func (h *Hexagon) Rotate(delta float64) {
	h.Rotation = vmath.WrapAngle(h.Rotation + delta)
}

// Update advances the rotation by AngularSpeed * dt
func (h *Hexagon) Update(dt float64) {
	h.Rotate(h.AngularSpeed * dt)
}

// Spinning reports whether the boundary rotates fast enough to matter
func (h *Hexagon) Spinning() bool {
	return math.Abs(h.AngularSpeed) > minAngularSpeed
}

// ContainsPoint reports whether p lies inside the hexagon. A convex polygon
// with counter-clockwise vertices contains p iff p is on the left of every
// edge; points exactly on an edge count as inside.
func (h *Hexagon) ContainsPoint(p vmath.Vec2) bool {
	verts := h.Vertices()
	for i := 0; i < EdgeCount; i++ {
		a := verts[i]
		b := verts[(i+1)%EdgeCount]
		if b.Sub(a).Cross(p.Sub(a)) < 0 {
			return false
		}
	}
	return true
}

// NearestEdgeDistance returns the minimum distance from p to any of the six
// edge segments. Used by spawn placement to pick points with clearance.
func (h *Hexagon) NearestEdgeDistance(p vmath.Vec2) float64 {
	verts := h.Vertices()
	nearest := math.Inf(1)
	for i := 0; i < EdgeCount; i++ {
		res := vmath.DistanceToSegment(p, verts[i], verts[(i+1)%EdgeCount])
		if res.Distance < nearest {
			nearest = res.Distance
		}
	}
	return nearest
}

// faceNormal returns the outward face normal of edge i: the unit direction
// from the center through the edge midpoint. Unlike a position-relative
// normal it never flips sign when a body sits near a corner.
func (h *Hexagon) faceNormal(a, b vmath.Vec2) vmath.Vec2 {
	mid := a.Add(b).Scale(0.5)
	return mid.Sub(h.Center).Normalize()
}

// CheckCollision tests the ball's circle against all six edges and returns
// the contact for the edge with the smallest clearance, or nil when the
// circle does not cross the boundary. Clearance is measured from the ball
// center along the edge's outward face normal; a center past an edge plane
// by more than the ball's radius has left the boundary entirely and reports
// no contact, while a ball larger than the hexagon still collides with the
// nearest edge at large penetration.
func (h *Hexagon) CheckCollision(ball *Ball) *Contact {
	if ball == nil || ball.Radius <= 0 || h.Radius <= 0 {
		return nil
	}

	verts := h.Vertices()
	apothem := h.Radius * apothemFactor
	rel := ball.Position.Sub(h.Center)

	minClearance := math.Inf(1)
	var normal vmath.Vec2
	edgeIndex := -1

	for i := 0; i < EdgeCount; i++ {
		n := h.faceNormal(verts[i], verts[(i+1)%EdgeCount])
		clearance := apothem - rel.Dot(n)
		if clearance < minClearance {
			minClearance = clearance
			normal = n
			edgeIndex = i
		}
	}

	if minClearance >= ball.Radius || minClearance <= -ball.Radius {
		return nil
	}

	point := ball.Position.Add(normal.Scale(minClearance))
	contact := &Contact{
		Normal:      normal,
		Penetration: ball.Radius - minClearance,
		Point:       point,
		EdgeIndex:   edgeIndex,
		TOI:         NoTOI,
	}
	if h.Spinning() {
		contact.RotatingSurface = true
		contact.SurfaceVelocity = h.SurfaceVelocityAt(point)
	}
	return contact
}

// CheckContinuousCollision sweeps the window [0, dt], sampling the rotating
// edges and the ball's linear motion at sub-steps, and returns the earliest
// contact found. Sample 0 is the static query at the window start; the last
// sample lands exactly on the window end, so a caller needs no separate
// static fallback. Returns nil when the ball never crosses an edge.
func (h *Hexagon) CheckContinuousCollision(ball *Ball, dt float64) *Contact {
	if ball == nil || ball.Radius <= 0 {
		return nil
	}
	if dt <= 0 {
		return h.CheckCollision(ball)
	}

	probe := Ball{Radius: ball.Radius, Mass: ball.Mass}
	for i := 0; i <= ccdSubSteps; i++ {
		t := dt * float64(i) / ccdSubSteps
		swept := Hexagon{
			Center:       h.Center,
			Radius:       h.Radius,
			Rotation:     vmath.WrapAngle(h.Rotation + h.AngularSpeed*t),
			AngularSpeed: h.AngularSpeed,
		}
		probe.Position = ball.Position.Add(ball.Velocity.Scale(t))
		if c := swept.CheckCollision(&probe); c != nil {
			c.TOI = t
			return c
		}
	}
	return nil
}

// SurfaceVelocityAt returns the rigid-body velocity of the boundary material
// at point: magnitude |AngularSpeed| * |point - center|, perpendicular to the
// radius vector, oriented with the sign of the spin. Zero for a static
// boundary.
func (h *Hexagon) SurfaceVelocityAt(point vmath.Vec2) vmath.Vec2 {
	if h.AngularSpeed == 0 {
		return vmath.Vec2{}
	}
	return point.Sub(h.Center).Perpendicular().Scale(h.AngularSpeed)
}
