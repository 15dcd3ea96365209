package vmath

// SegmentResult is the answer to a point-to-segment distance query.
type SegmentResult struct {
	Distance float64 // perpendicular distance from the point to the segment
	Normal   Vec2    // unit vector from the closest point toward the query point
	Closest  Vec2    // closest point on the segment
}

// DistanceToSegment projects p onto the segment a-b, clamping the projection
// parameter to [0,1]. The returned normal points from the segment toward p;
// when p lies exactly on the segment line the normal falls back to the
// segment's counter-clockwise perpendicular.
func DistanceToSegment(p, a, b Vec2) SegmentResult {
	ab := b.Sub(a)
	lenSq := ab.MagnitudeSq()

	var closest Vec2
	if lenSq < Epsilon {
		// Degenerate segment, treat as a point
		closest = a
	} else {
		t := Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
		closest = a.Add(ab.Scale(t))
	}

	delta := p.Sub(closest)
	dist := delta.Magnitude()

	var normal Vec2
	if dist > Epsilon {
		normal = delta.Scale(1.0 / dist)
	} else {
		normal = ab.Perpendicular().Normalize()
	}

	return SegmentResult{
		Distance: dist,
		Normal:   normal,
		Closest:  closest,
	}
}
