package game

import "math"

// sweptCircle returns the distance a circle at a must travel along move before
// it touches a circle at b, where sumRadii is the sum of both radii. move is the
// relative movement for the tick. The distance is negative when the circles
// already overlap; the mover then has to back off along move to reach contact.
func sweptCircle(a, b, move Vec2, sumRadii float64) (float64, bool) {
	moveLen := move.Magnitude()
	if moveLen == 0 {
		return 0, false
	}

	// Early escape: the movement is shorter than the gap between the surfaces.
	dist := a.Distance(b) - sumRadii
	if moveLen < dist {
		return 0, false
	}

	n := move.Normalize()
	c := b.Minus(a)

	// D is the projection of the centre line onto the movement; a must be closing on b.
	d := n.Dot(c)
	if d <= 0 {
		return 0, false
	}

	lengthC := c.Magnitude()
	f := lengthC*lengthC - d*d

	// Closest approach is wider than the sum of the radii: a clean miss.
	sumRadiiSquared := sumRadii * sumRadii
	if f >= sumRadiiSquared {
		return 0, false
	}

	t := sumRadiiSquared - f
	if t < 0 {
		return 0, false
	}

	distance := d - math.Sqrt(t)
	if moveLen < distance {
		return 0, false
	}
	return distance, true
}

// railFraction solves a = offset / (component * power) for the fraction of the
// tick's travel at which the ball's surface reaches a rail. A zero component or
// power has no solution on this axis.
func railFraction(offset, component, power float64) (float64, bool) {
	denom := component * power
	if denom == 0 {
		return 0, false
	}
	a := offset / denom
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, false
	}
	return clamp01(a), true
}

// splitRatio returns the share of the mover's power each ball keeps after a
// ball-ball contact: lenA/(lenA+lenB) and lenB/(lenA+lenB).
func splitRatio(angleA, angleN Vec2) (percentA, percentB float64) {
	lenA := angleA.Magnitude()
	lenB := angleN.Magnitude()
	if lenA+lenB == 0 {
		return 0, 1
	}
	return lenA / (lenA + lenB), lenB / (lenA + lenB)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
