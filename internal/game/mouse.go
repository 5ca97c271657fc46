package game

// Mouse is a moving catch target.
type Mouse struct {
	ID     int
	X, Y   float64 // Top-left anchored position
	VX, VY float64 // Velocity in units per motion tick
	Symbol string
}

// Position returns the mouse position as a Point.
func (m Mouse) Position() Point {
	return Point{X: m.X, Y: m.Y}
}

// Cat is the pointer-controlled catcher. It has no motion model of its
// own; every pointer event warps it.
type Cat struct {
	X, Y float64
}

// Position returns the cat position as a Point.
func (c Cat) Position() Point {
	return Point{X: c.X, Y: c.Y}
}

// CatAt places the cat for a pointer at (px, py), applying the sprite
// hot-spot offset.
func CatAt(p Params, px, py float64) Cat {
	return Cat{X: px - p.CatOffsetX, Y: py - p.CatOffsetY}
}
