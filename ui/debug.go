package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DebugActions is what the user asked for on the debug panel this frame.
type DebugActions struct {
	TogglePause    bool
	Step           bool // advance one tick while paused
	CopyReport     bool
	StepsPerUpdate int
}

// DebugPanel renders pause/step/copy buttons and a speed slider.
type DebugPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewDebugPanel creates a new debug panel.
func NewDebugPanel(x, y, width int32) *DebugPanel {
	return &DebugPanel{renderer: NewRenderer(), x: x, y: y, width: width, visible: true}
}

// SetPosition updates the panel position.
func (d *DebugPanel) SetPosition(x, y int32) {
	d.x, d.y = x, y
}

// Toggle switches panel visibility.
func (d *DebugPanel) Toggle() bool {
	d.visible = !d.visible
	return d.visible
}

// Draw renders the panel and returns the actions taken.
func (d *DebugPanel) Draw(paused bool, stepsPerUpdate int) DebugActions {
	actions := DebugActions{StepsPerUpdate: stepsPerUpdate}
	if !d.visible {
		return actions
	}

	r := d.renderer
	pad := float32(r.Theme.Padding)
	bh := float32(r.Theme.ButtonHeight)
	x, y, w := float32(d.x), float32(d.y), float32(d.width)
	half := (w - pad*3) / 2

	r.DrawPanel(d.x, d.y, d.width, int32(bh*3+pad*5+float32(r.Theme.LineHeight)))
	y += pad

	pauseText := "Pause"
	if paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x + pad, Y: y, Width: half, Height: bh}, pauseText) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + pad*2 + half, Y: y, Width: half, Height: bh}, "Step") {
		actions.Step = true
	}
	y += bh + pad

	if gui.Button(rl.Rectangle{X: x + pad, Y: y, Width: w - pad*2, Height: bh}, "Copy Report") {
		actions.CopyReport = true
	}
	y += bh + pad

	rl.DrawText(fmt.Sprintf("Steps per update: %d", stepsPerUpdate), int32(x+pad), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(r.Theme.LineHeight)
	v := gui.SliderBar(rl.Rectangle{X: x + pad + 10, Y: y, Width: w - pad*2 - 30, Height: bh * 0.8}, "1", "10", float32(stepsPerUpdate), 1, 10)
	actions.StepsPerUpdate = clampSteps(int(v + 0.5))

	return actions
}

func clampSteps(n int) int {
	return min(max(n, 1), 10)
}
