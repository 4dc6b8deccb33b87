// Package camera provides a 2D follow camera for viewport control.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Camera controls the viewport into the arena.
// It trails a target, keeping it inside a centered safe area of the screen.
type Camera struct {
	// Center is the camera center in world coordinates
	Center r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// SafeArea is the fraction of the half viewport the target may roam
	// before the camera scrolls. 0 locks the camera on the target.
	SafeArea float64

	// SpriteHalfSize keeps the whole sprite, not just its center, in the safe area.
	SpriteHalfSize float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on center with 1:1 zoom.
func New(viewportW, viewportH float64, center r2.Vec, safeArea, spriteHalfSize float64) *Camera {
	return &Camera{
		Center:         center,
		Zoom:           1.0,
		ViewportW:      viewportW,
		ViewportH:      viewportH,
		SafeArea:       safeArea,
		SpriteHalfSize: spriteHalfSize,
		MinZoom:        0.25,
		MaxZoom:        4.0,
	}
}

// MaxScroll returns how far, in world units, the target may sit from the
// camera center on each axis. Never negative.
func (c *Camera) MaxScroll() r2.Vec {
	return r2.Vec{
		X: math.Max(0, c.ViewportW/(2*c.Zoom)*c.SafeArea-c.SpriteHalfSize),
		Y: math.Max(0, c.ViewportH/(2*c.Zoom)*c.SafeArea-c.SpriteHalfSize),
	}
}

// Follow scrolls the minimum amount needed to keep target within MaxScroll
// of the center.
func (c *Camera) Follow(target r2.Vec) {
	m := c.MaxScroll()
	c.Center.X = clamp(c.Center.X, target.X-m.X, target.X+m.X)
	c.Center.Y = clamp(c.Center.Y, target.Y-m.Y, target.Y+m.Y)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(w r2.Vec) r2.Vec {
	return r2.Vec{
		X: c.ViewportW/2 + (w.X-c.Center.X)*c.Zoom,
		Y: c.ViewportH/2 + (w.Y-c.Center.Y)*c.Zoom,
	}
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	return r2.Vec{
		X: c.Center.X + (s.X-c.ViewportW/2)/c.Zoom,
		Y: c.Center.Y + (s.Y-c.ViewportH/2)/c.Zoom,
	}
}

// IsVisible returns true if a circle at w with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(w r2.Vec, radius float64) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(w.X-c.Center.X) <= halfW && math.Abs(w.Y-c.Center.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X += dx / c.Zoom
	c.Center.Y += dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (min, max r2.Vec) {
	half := r2.Vec{X: c.ViewportW / (2 * c.Zoom), Y: c.ViewportH / (2 * c.Zoom)}
	return r2.Sub(c.Center, half), r2.Add(c.Center, half)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
