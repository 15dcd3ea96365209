// Package vmath provides float64 vector and scalar math for 2D physics.
package vmath

import "math"

// TwoPi is a full rotation in radians
const TwoPi = 2 * math.Pi

// Epsilon is the tolerance used for geometric degeneracy checks
const Epsilon = 1e-9

// WrapAngle wraps an angle into [0, 2π), non-negative for any input
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// A tiny negative input can round a+2π up to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Clamp restricts x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// IsFinite reports whether x is neither NaN nor infinite
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
