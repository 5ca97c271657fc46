// Package physics provides distance checks and wall reflection for
// objects moving inside a closed rectangle.
package physics

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// WithinRadius reports whether a point lies strictly closer than radius
// to a target position.
func WithinRadius(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ReflectAxis advances a coordinate by vel*dt inside [0, limit].
// Reaching or crossing either wall negates the velocity and clamps the
// coordinate onto the wall; speed is preserved.
func ReflectAxis(pos, vel, limit, dt float64) (newPos, newVel float64) {
	newPos = pos + vel*dt
	newVel = vel
	if newPos <= 0 || newPos >= limit {
		newVel = -vel
		newPos = Clamp(newPos, 0, limit)
	}
	return newPos, newVel
}
