// Package core holds the types shared by games and front ends: screen
// buffers, input frames and runtime settings. It imports no UI packages.
package core

import "cmp"

// Rect is a box in screen cells; X and Y are its top-left corner.
type Rect struct {
	X, Y, W, H int
}

// NewRect returns the w×h box at (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the box.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the box.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether (x, y) lies in the box.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.Right() && r.Y <= y && y < r.Bottom()
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
