// Package inspector shows the components of a selected agent, both as an
// on-screen panel and as a plain-text report.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 28
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Candidate is an entity that can be picked.
type Candidate struct {
	Entity   ecs.Entity
	Position r2.Vec
}

// Inspector manages agent selection and panel rendering.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates a new inspector whose panel hugs the right edge.
func NewInspector(screenWidth int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth)
	return ins
}

// Resize repositions the panel for a new screen width.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// Pick selects the candidate nearest to point within radius. Returns false
// and keeps the current selection when nothing is close enough.
func (ins *Inspector) Pick(point r2.Vec, candidates []Candidate, radius float64) bool {
	best := radius * radius
	found := false
	for _, c := range candidates {
		d := r2.Sub(c.Position, point)
		if dist := r2.Dot(d, d); dist <= best {
			best = dist
			ins.selected = c.Entity
			found = true
		}
	}
	if found {
		ins.hasSelected = true
	}
	return found
}

// Select selects e directly.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Selected returns the selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// InPanel reports whether a screen point lies over the panel.
func (ins *Inspector) InPanel(x, y float32) bool {
	return ins.hasSelected && int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth && int32(y) >= ins.panelY
}

// Draw renders the panel for the selected entity.
func (ins *Inspector) Draw(e Entry) {
	if !ins.hasSelected {
		return
	}

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	// Measure first so the background can be drawn underneath
	height := int32(HeaderHeight + PanelPadding*2)
	sections := make([][]Field, len(e.Components))
	for i, c := range e.Components {
		sections[i] = ExtractFields(c)
		height += 18
		for _, f := range sections[i] {
			if f.Widget == WidgetAngle {
				height += 28
			} else {
				height += 18
			}
		}
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawRectangleLines(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBorder)
	rl.DrawText(e.Title, x, ins.panelY+7, 16, rl.White)

	for i, c := range e.Components {
		rl.DrawText(ComponentName(c), x, y, 14, ColorSectionText)
		y += 18
		for _, f := range sections[i] {
			y += DrawField(x+8, y, f)
		}
	}
}
