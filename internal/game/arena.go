package game

// Point is a position in arena coordinates (origin top-left, y down).
type Point struct {
	X, Y float64
}

// Arena holds the measured play-field size. A zero Arena means the
// presentation layer has not reported its bounds yet.
type Arena struct {
	Width  float64
	Height float64
}

// Measured reports whether both dimensions are usable.
func (a Arena) Measured() bool {
	return a.Width > 0 && a.Height > 0
}

// Resolve substitutes the default bounds for an unmeasured arena.
func (a Arena) Resolve(p Params) Arena {
	if a.Measured() {
		return a
	}
	return Arena{Width: p.DefaultWidth, Height: p.DefaultHeight}
}

// Limits returns the largest legal mouse position on each axis.
// Mice are anchored at their top-left corner, so the sprite size is
// subtracted. Never negative.
func (a Arena) Limits(size float64) (maxX, maxY float64) {
	maxX = a.Width - size
	maxY = a.Height - size
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return maxX, maxY
}

// Contains reports whether p lies inside the legal mouse area.
func (a Arena) Contains(p Point, size float64) bool {
	maxX, maxY := a.Limits(size)
	return p.X >= 0 && p.X <= maxX && p.Y >= 0 && p.Y <= maxY
}
