package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/camera"
	"github.com/pthm-cable/chase/steering"
)

// ArenaRenderer draws the arena floor, its grid, and its border.
type ArenaRenderer struct {
	GridSpacing float64 // world units, 0 = no grid
	Floor       rl.Color
	Grid        rl.Color
	Border      rl.Color
}

// NewArenaRenderer creates an arena renderer with the default palette.
func NewArenaRenderer() *ArenaRenderer {
	return &ArenaRenderer{
		GridSpacing: 120,
		Floor:       rl.Color{R: 24, G: 28, B: 34, A: 255},
		Grid:        rl.Color{R: 40, G: 46, B: 56, A: 255},
		Border:      rl.Color{R: 90, G: 100, B: 120, A: 255},
	}
}

// Draw renders the arena through cam.
func (a *ArenaRenderer) Draw(cam *camera.Camera, arena steering.Bounds) {
	lo := cam.WorldToScreen(arena.Min)
	hi := cam.WorldToScreen(arena.Max)
	rect := rl.Rectangle{X: float32(lo.X), Y: float32(lo.Y), Width: float32(hi.X - lo.X), Height: float32(hi.Y - lo.Y)}
	rl.DrawRectangleRec(rect, a.Floor)

	for _, x := range GridLines(arena.Min.X, arena.Max.X, a.GridSpacing) {
		p0 := cam.WorldToScreen(r2.Vec{X: x, Y: arena.Min.Y})
		p1 := cam.WorldToScreen(r2.Vec{X: x, Y: arena.Max.Y})
		rl.DrawLineV(toRL(p0), toRL(p1), a.Grid)
	}
	for _, y := range GridLines(arena.Min.Y, arena.Max.Y, a.GridSpacing) {
		p0 := cam.WorldToScreen(r2.Vec{X: arena.Min.X, Y: y})
		p1 := cam.WorldToScreen(r2.Vec{X: arena.Max.X, Y: y})
		rl.DrawLineV(toRL(p0), toRL(p1), a.Grid)
	}

	rl.DrawRectangleLinesEx(rect, 2, a.Border)
}

// DrawSafeArea outlines the region the camera lets the target roam in.
func DrawSafeArea(cam *camera.Camera) {
	m := cam.MaxScroll()
	lo := cam.WorldToScreen(r2.Sub(cam.Center, m))
	hi := cam.WorldToScreen(r2.Add(cam.Center, m))
	rl.DrawRectangleLines(int32(lo.X), int32(lo.Y), int32(hi.X-lo.X), int32(hi.Y-lo.Y), rl.Color{R: 255, G: 255, B: 255, A: 40})
}

// GridLines returns the interior multiples of spacing in (lo, hi).
func GridLines(lo, hi, spacing float64) []float64 {
	if spacing <= 0 || hi <= lo {
		return nil
	}
	var lines []float64
	for v := math.Floor(lo/spacing)*spacing + spacing; v < hi; v += spacing {
		if v > lo {
			lines = append(lines, v)
		}
	}
	return lines
}
