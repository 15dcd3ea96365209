package vmath

import "math"

// Vec2 is an immutable 2D vector. Every operation returns a new value.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// New creates a vector from components
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * factor
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

// Dot returns v · o
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D cross product (z component of v × o)
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Magnitude returns vector length
func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MagnitudeSq returns squared magnitude without sqrt
func (v Vec2) MagnitudeSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{X: v.X * inv, Y: v.Y * inv}
}

// Distance returns |v - o|
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Magnitude()
}

// DistanceSq returns |v - o|² without sqrt
func (v Vec2) DistanceSq(o Vec2) float64 {
	return v.Sub(o).MagnitudeSq()
}

// Rotate returns v rotated by angle radians counter-clockwise
func (v Vec2) Rotate(angle float64) Vec2 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perpendicular returns v rotated 90° counter-clockwise
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Neg returns -v
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// IsFinite reports whether both components are finite (no NaN, no Inf)
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Reflect returns v reflected off a surface with unit normal n
// v' = v - 2 * dot(v, n) * n
func Reflect(v, n Vec2) Vec2 {
	dot2 := 2 * v.Dot(n)
	return Vec2{
		X: v.X - dot2*n.X,
		Y: v.Y - dot2*n.Y,
	}
}

// ClampMagnitude limits v to maxMag while preserving direction.
// Returns v unchanged if magnitude <= maxMag.
func ClampMagnitude(v Vec2, maxMag float64) Vec2 {
	magSq := v.MagnitudeSq()
	if magSq <= maxMag*maxMag || magSq == 0 {
		return v
	}
	return v.Scale(maxMag / math.Sqrt(magSq))
}
