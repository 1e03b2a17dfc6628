// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// RectF is an axis-aligned box in logical playfield units.
// Edges are exclusive: two boxes that only touch do not overlap.
type RectF struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRectF creates a new logical rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Overlaps reports whether r and other share any interior area.
func (r RectF) Overlaps(other RectF) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// cellEpsilon absorbs float error when a scaled edge lands on a cell boundary.
const cellEpsilon = 1e-9

// Cells converts the box to the screen cells it covers, given the
// horizontal and vertical scale from logical units to cells.
func (r RectF) Cells(sx, sy float64) Rect {
	x0 := int(math.Floor(r.X*sx + cellEpsilon))
	y0 := int(math.Floor(r.Y*sy + cellEpsilon))
	x1 := int(math.Ceil(r.Right()*sx - cellEpsilon))
	y1 := int(math.Ceil(r.Bottom()*sy - cellEpsilon))
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
