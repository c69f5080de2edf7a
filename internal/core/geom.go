// Package core holds the platform-pure types shared by games and shells:
// world vectors, cell rectangles, input frames, the colored screen buffer,
// runtime config and game events. It imports nothing outside the standard
// library so game logic stays testable without a terminal.
package core

// Vec2 is a point or displacement in world space (pixels, y grows downward).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y, W, H int
}

// NewRect returns the box with top-left (x, y) and size w by h.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the box.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the box.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the box covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether cell (x, y) lies inside the box.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and o, which may be empty.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
