package steering

import "gonum.org/v1/gonum/spatial/r2"

// Bounds is an axis-aligned arena rectangle.
type Bounds struct {
	Min, Max r2.Vec
}

// NewBounds returns the arena [0, width] x [0, height].
func NewBounds(width, height float64) Bounds {
	return Bounds{Max: r2.Vec{X: width, Y: height}}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the arena center, the point wanderers are pulled toward.
func (b Bounds) Center() r2.Vec {
	return r2.Scale(0.5, r2.Add(b.Min, b.Max))
}

// MaxRadius returns half the shorter arena side.
func (b Bounds) MaxRadius() float64 {
	return min(b.Width(), b.Height()) / 2
}

// Clamp restricts p to the arena, per axis.
func (b Bounds) Clamp(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: clamp(p.X, b.Min.X, b.Max.X),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y),
	}
}

// Contains reports whether p lies inside the arena, edges included.
func (b Bounds) Contains(p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
