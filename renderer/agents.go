// Package renderer draws the arena and its agents with raylib primitives.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/camera"
	"github.com/pthm-cable/chase/components"
)

// Sprite is one agent as the renderer sees it.
type Sprite struct {
	Kind        components.Kind
	State       string
	Position    r2.Vec
	Orientation float64
	Engaged     bool // chasing or evading; draws a line to the target
}

// AgentRenderer draws agents as oriented triangles.
type AgentRenderer struct {
	Radius      float64
	ShowTargets bool
	ShowLabels  bool
	colors      map[components.Kind]rl.Color
}

// NewAgentRenderer creates an agent renderer. radius is in world units.
func NewAgentRenderer(radius float64) *AgentRenderer {
	return &AgentRenderer{
		Radius:      radius,
		ShowTargets: true,
		colors: map[components.Kind]rl.Color{
			components.KindCat:   rl.Orange,
			components.KindTank:  rl.Red,
			components.KindMouse: rl.Green,
		},
	}
}

// Color returns the fill color for kind.
func (r *AgentRenderer) Color(kind components.Kind) rl.Color {
	if c, ok := r.colors[kind]; ok {
		return c
	}
	return rl.Gray
}

// Draw renders sprites through cam. target is the point engaged agents react to.
func (r *AgentRenderer) Draw(cam *camera.Camera, sprites []Sprite, target r2.Vec) {
	t := cam.WorldToScreen(target)

	for _, s := range sprites {
		if !cam.IsVisible(s.Position, r.Radius*1.5) {
			continue
		}
		p := cam.WorldToScreen(s.Position)
		color := r.Color(s.Kind)

		if r.ShowTargets && s.Engaged {
			line := color
			line.A = 120
			rl.DrawLineV(toRL(p), toRL(t), line)
		}

		pts := TrianglePoints(p, s.Orientation, r.Radius*cam.Zoom)
		// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
		rl.DrawTriangle(toRL(pts[0]), toRL(pts[2]), toRL(pts[1]), color)
		rl.DrawTriangleLines(toRL(pts[0]), toRL(pts[1]), toRL(pts[2]), rl.White)

		if r.ShowLabels && s.State != "" {
			rl.DrawText(s.State, int32(p.X+r.Radius*cam.Zoom), int32(p.Y-r.Radius*cam.Zoom), 12, rl.LightGray)
		}
	}
}

// TrianglePoints returns the front, back-left and back-right corners of a
// triangle centered on center and pointing along heading.
func TrianglePoints(center r2.Vec, heading, radius float64) [3]r2.Vec {
	at := func(angle, dist float64) r2.Vec {
		return r2.Vec{X: center.X + math.Cos(angle)*dist, Y: center.Y + math.Sin(angle)*dist}
	}
	return [3]r2.Vec{
		at(heading, radius*1.5),
		at(heading+math.Pi*0.8, radius),
		at(heading-math.Pi*0.8, radius),
	}
}

func toRL(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
