package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/systems"
	"github.com/pthm-cable/chase/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           int32
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	StateLabels    []string // e.g. "Tank State: Chasing"
}

// StateLabel formats an agent's behavior state for display.
func StateLabel(kind fmt.Stringer, state string) string {
	return fmt.Sprintf("%s State: %s", kind, state)
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Lines returns the HUD text, top to bottom.
func (h *HUD) Lines(data HUDData) []string {
	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	lines := []string{
		data.Title,
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | %s", data.Tick, data.StepsPerUpdate, data.FPS, status),
	}
	return append(lines, data.StateLabels...)
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	y := int32(10)
	for i, line := range h.Lines(data) {
		size, color := int32(16), rl.LightGray
		if i == 0 {
			size, color = 20, rl.White
		}
		rl.DrawText(line, 10, y, size, color)
		y += size + 4
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase step timings.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), registry: registry, x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg tick: %s | %.0f ticks/s",
		stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, info := range p.registry.All() {
		pct := stats.PhasePct[info.ID]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-14s %8s %5.1f%%",
			info.Name, stats.PhaseAvg[info.ID].Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
