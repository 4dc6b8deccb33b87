package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/telemetry"
)

// ControlsPanel renders the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	rows := len(categories) + len(overlays.All())
	panelHeight := int32(rows)*lineHeight + padding*3 + lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
	}

	return c.y + panelHeight
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// StatsPanel renders the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x, s.y = x, y
}

// Draw renders stats. Nothing is drawn before the first window closes.
func (s *StatsPanel) Draw(stats *telemetry.WindowStats) int32 {
	if stats == nil {
		return s.y
	}
	r := s.renderer
	padding := r.Theme.Padding
	inner := s.width - padding*2

	panelHeight := r.Theme.LineHeight*9 + padding*2
	r.DrawPanel(s.x, s.y, s.width, panelHeight)

	y := r.DrawSectionHeader(s.x+padding, s.y+padding, fmt.Sprintf("Window @ %d", stats.WindowEndTick))
	y = r.DrawLabelValue(s.x+padding, y, "Transitions", fmt.Sprintf("%d", stats.Transitions))
	y = r.DrawLabelValue(s.x+padding, y, "Flaps/1000", fmt.Sprintf("%.1f", stats.FlapsPer1000))
	y = r.DrawLabelValue(s.x+padding, y, "Catches", fmt.Sprintf("%d", stats.Catches))
	y = r.DrawBar(s.x+padding, y, "Tank chasing", stats.TankChaseFrac, 0.9, inner)
	y = r.DrawBar(s.x+padding, y, "Tank caught", stats.TankCaughtFrac, 0.9, inner)
	y = r.DrawBar(s.x+padding, y, "Mouse evading", stats.MouseEvadeFrac, 0.9, inner)
	y = r.DrawLabelValue(s.x+padding, y, "Tank dist p50", fmt.Sprintf("%.0f", stats.TankDistP50))
	y = r.DrawLabelValue(s.x+padding, y, "Mouse dist p50", fmt.Sprintf("%.0f", stats.MouseDistP50))

	return y
}
