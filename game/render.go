package game

import (
	"errors"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/camera"
	"github.com/pthm-cable/chase/inspector"
	"github.com/pthm-cable/chase/input"
	"github.com/pthm-cable/chase/renderer"
	"github.com/pthm-cable/chase/steering"
	"github.com/pthm-cable/chase/systems"
	"github.com/pthm-cable/chase/ui"
)

const controlsLegend = "[WASD/Arrows] Move  [Mouse] Steer  [RMB] Inspect  [Space] Pause  [N] Step  [</>] Speed  [Tab] Overlays  [F1] Debug  [F3] Copy  [F11] Fullscreen"

// agentRadius is the drawn size of an agent in world units.
const agentRadius = 18

// graphics holds everything that needs a raylib window.
type graphics struct {
	camera        *camera.Camera
	agentRenderer *renderer.AgentRenderer
	arenaRenderer *renderer.ArenaRenderer
	inspector     *inspector.Inspector

	hud        *ui.HUD
	overlays   *ui.OverlayRegistry
	controls   *ui.ControlsPanel
	statsPanel *ui.StatsPanel
	perfPanel  *ui.PerfPanel
	debugPanel *ui.DebugPanel

	sprites []renderer.Sprite

	screenWidth, screenHeight float64
}

// initGraphics sets up the camera, renderers and panels. The default
// provider reads raylib input through the camera.
func (g *Game) initGraphics() {
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())

	cam := camera.New(w, h, g.catPos, g.cfg.Camera.SafeArea, g.cfg.Cat.SpriteHalfSize)
	gfx := &graphics{
		camera:        cam,
		agentRenderer: renderer.NewAgentRenderer(agentRadius),
		arenaRenderer: renderer.NewArenaRenderer(),
		inspector:     inspector.NewInspector(int32(w)),
		hud:           ui.NewHUD(),
		overlays:      ui.NewOverlayRegistry(),
		controls:      ui.NewControlsPanel(10, 140, 240),
		statsPanel:    ui.NewStatsPanel(10, int32(h)-260, 260),
		perfPanel:     ui.NewPerfPanel(int32(w)-330, int32(h)-160, systems.NewSystemRegistry()),
		debugPanel:    ui.NewDebugPanel(int32(w)-330, int32(h)-300, 220),
		screenWidth:   w,
		screenHeight:  h,
	}
	gfx.overlays.SetEnabled(ui.OverlayStateLabels, true)
	gfx.overlays.SetEnabled(ui.OverlayTargetLines, true)
	g.gfx = gfx

	if g.provider == nil {
		g.provider = input.NewRaylibProvider(cam.ScreenToWorld)
	}
}

func (gfx *graphics) unload() {
	gfx.sprites = nil
}

// HandleInput processes window, camera, and UI keys. Movement keys are read
// by the input provider during Update.
func (g *Game) HandleInput() {
	gfx := g.gfx
	if gfx == nil {
		return
	}

	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.SetPaused(!g.paused)
	}
	if rl.IsKeyPressed(rl.KeyN) && g.paused {
		g.StepOnce()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetStepsPerUpdate(g.stepsPerUpdate - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetStepsPerUpdate(g.stepsPerUpdate + 1)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		gfx.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		gfx.debugPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.copyReport()
	}
	gfx.overlays.PollKeys()

	// Zoom with the mouse wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		gfx.camera.ZoomBy(1 + float64(wheel)*0.1)
	}

	// Inspector selection
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		m := rl.GetMousePosition()
		world := gfx.camera.ScreenToWorld(r2.Vec{X: float64(m.X), Y: float64(m.Y)})
		if !gfx.inspector.Pick(world, g.inspectCandidates(), agentRadius*2) {
			gfx.inspector.Deselect()
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	gfx := g.gfx
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == gfx.screenWidth && h == gfx.screenHeight {
		return
	}
	gfx.screenWidth, gfx.screenHeight = w, h

	gfx.camera.Resize(w, h)
	gfx.inspector.Resize(int32(w))
	gfx.statsPanel.SetPosition(10, int32(h)-260)
	gfx.perfPanel.SetPosition(int32(w)-330, int32(h)-160)
	gfx.debugPanel.SetPosition(int32(w)-330, int32(h)-300)
}

func (g *Game) inspectCandidates() []inspector.Candidate {
	var out []inspector.Candidate
	query := g.agentFilter.Query()
	for query.Next() {
		_, pos, _, _ := query.Get()
		out = append(out, inspector.Candidate{Entity: query.Entity(), Position: pos.Vec()})
	}
	return out
}

// copyReport puts the agent report on the clipboard.
func (g *Game) copyReport() {
	err := ui.CopyReport(g.Report())
	switch {
	case errors.Is(err, ui.ErrNoClipboard):
		slog.Warn("no clipboard available")
	case err != nil:
		slog.Error("failed to copy report", "error", err)
	default:
		slog.Info("report copied", "tick", g.tick)
	}
}

// Draw renders the arena, the agents, and the UI.
func (g *Game) Draw() {
	gfx := g.gfx
	if gfx == nil {
		return
	}
	g.perfCollector.RecordFrame()

	gfx.camera.Follow(g.catPos)

	snap := g.Snapshot()
	gfx.sprites = gfx.sprites[:0]
	var labels []string
	for _, a := range snap.Agents {
		gfx.sprites = append(gfx.sprites, renderer.Sprite{
			Kind:        a.Kind,
			State:       a.State,
			Position:    a.Position,
			Orientation: a.Orientation,
			Engaged:     a.State == steering.PursuerChasing.String() || a.State == steering.EvaderEvading.String(),
		})
		if a.State != "" {
			labels = append(labels, ui.StateLabel(a.Kind, a.State))
		}
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	gfx.arenaRenderer.Draw(gfx.camera, g.arena)
	if gfx.overlays.IsEnabled(ui.OverlaySafeArea) {
		renderer.DrawSafeArea(gfx.camera)
	}
	if gfx.overlays.IsEnabled(ui.OverlayThresholdRings) {
		g.drawThresholdRings()
	}

	gfx.agentRenderer.ShowLabels = gfx.overlays.IsEnabled(ui.OverlayStateLabels)
	gfx.agentRenderer.ShowTargets = gfx.overlays.IsEnabled(ui.OverlayTargetLines)
	gfx.agentRenderer.Draw(gfx.camera, gfx.sprites, snap.Cat)

	gfx.hud.Draw(ui.HUDData{
		Title:          "Chase",
		Tick:           g.tick,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		StateLabels:    labels,
	})
	gfx.controls.Draw(gfx.overlays)
	gfx.statsPanel.Draw(g.lastStats)
	if gfx.overlays.IsEnabled(ui.OverlayPerf) {
		gfx.perfPanel.Draw(g.perfCollector.Stats())
	}

	actions := gfx.debugPanel.Draw(g.paused, g.stepsPerUpdate)
	if actions.TogglePause {
		g.SetPaused(!g.paused)
	}
	if actions.Step && g.paused {
		g.StepOnce()
	}
	if actions.CopyReport {
		g.copyReport()
	}
	g.SetStepsPerUpdate(actions.StepsPerUpdate)

	if e, ok := gfx.inspector.Selected(); ok {
		if g.world.Alive(e) {
			gfx.inspector.Draw(g.inspectEntry(e))
		} else {
			gfx.inspector.Deselect()
		}
	}

	gfx.hud.DrawControls(int32(gfx.screenHeight), controlsLegend)

	rl.EndDrawing()
}

// drawThresholdRings outlines each agent's effective thresholds for its
// current state around the cat.
func (g *Game) drawThresholdRings() {
	cam := g.gfx.camera
	c := cam.WorldToScreen(g.catPos)
	cx, cy := int32(c.X), int32(c.Y)

	query := g.agentFilter.Query()
	for query.Next() {
		e := query.Entity()
		switch {
		case g.purMap.Has(e):
			pur := g.purMap.Get(e)
			chase, caught := pur.Thresholds.Effective(pur.State)
			rl.DrawCircleLines(cx, cy, float32(chase*cam.Zoom), rl.Color{R: 230, G: 41, B: 55, A: 90})
			rl.DrawCircleLines(cx, cy, float32(caught*cam.Zoom), rl.Color{R: 230, G: 41, B: 55, A: 160})
		case g.evaMap.Has(e):
			eva := g.evaMap.Get(e)
			t := eva.Thresholds
			rl.DrawCircleLines(cx, cy, float32((t.EvadeDistance+t.Hysteresis)*cam.Zoom), rl.Color{R: 0, G: 228, B: 48, A: 70})
			rl.DrawCircleLines(cx, cy, float32((t.EvadeDistance-t.Hysteresis)*cam.Zoom), rl.Color{R: 0, G: 228, B: 48, A: 140})
		}
	}
}
