package physics

import "github.com/hexbounce/hexbounce/vmath"

// Contact describes a single boundary collision. It is produced fresh by
// every query and discarded after resolution; nothing retains or mutates it.
type Contact struct {
	// Normal is the colliding edge's fixed outward face normal: the unit
	// direction from the hexagon center through the edge midpoint. It does
	// not depend on the body's exact position, so it stays stable when the
	// body sits on a vertex.
	Normal vmath.Vec2

	// Penetration is the depth by which the body's circle overlaps the edge
	Penetration float64

	// Point is the contact point on the edge plane
	Point vmath.Vec2

	// EdgeIndex identifies the colliding edge, 0..5
	EdgeIndex int

	// RotatingSurface is set when the boundary spins fast enough to
	// transfer tangential momentum
	RotatingSurface bool

	// SurfaceVelocity is the boundary material's velocity at Point,
	// zero for a static boundary
	SurfaceVelocity vmath.Vec2

	// TOI is the earliest collision time within the queried window for
	// continuous queries, or NoTOI for static ones
	TOI float64
}

// NoTOI marks a contact that came from a static query rather than a swept one
const NoTOI = -1.0
