package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/chase/input"
	"github.com/pthm-cable/chase/telemetry"
)

// Step runs one simulation tick with frame. A frame that fails validation
// is logged and rejected before anything moves; the tick does not advance.
//
// Speeds are per tick, so frame.Elapsed is only checked, not integrated.
func (g *Game) Step(frame input.Frame) error {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	if err := input.Validate(frame); err != nil {
		// The unfinished perf sample is discarded by the next StartTick
		slog.Warn("rejected input frame", "tick", g.tick, "error", err)
		return fmt.Errorf("tick %d: %w", g.tick, err)
	}
	g.transitions = g.transitions[:0]

	// 1. Player intent
	g.perfCollector.StartPhase(telemetry.PhasePlayer)
	if pos, ok := g.playerSystem.Update(frame.Move); ok {
		g.catPos = g.arena.Clamp(pos)
	}

	// 2-3. State machines and integration, all reading last tick's agents
	g.stepAgents(g.catPos)

	// 4. Clamp to the arena
	g.perfCollector.StartPhase(telemetry.PhaseBounds)
	g.boundsSystem.Update()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTransitions()
	g.recordDistances()

	g.perfCollector.EndTick(g.numTanks + g.numMice)
	g.tick++

	g.flushTelemetry()
	return nil
}

// frame resolves raw controller state for the next tick.
func (g *Game) frame(raw input.Raw) input.Frame {
	return input.Resolve(raw, g.cfg.Physics.DT, g.catPos, g.cfg.Cat.Deadzone, g.cfg.Cat.MaxSpeed)
}

// Update advances the simulation by elapsed wall-clock seconds using a
// fixed tick of physics.dt, scaled by the speed multiplier. The provider is
// polled once per call. Returns the number of ticks run.
func (g *Game) Update(elapsed float64) (int, error) {
	if err := input.Validate(input.Frame{Elapsed: elapsed}); err != nil {
		slog.Warn("rejected frame time", "tick", g.tick, "error", err)
		return 0, fmt.Errorf("tick %d: %w", g.tick, err)
	}

	raw := g.provider.Poll()
	if err := input.ValidateRaw(raw); err != nil {
		slog.Warn("rejected controller state", "tick", g.tick, "error", err)
		return 0, fmt.Errorf("tick %d: %w", g.tick, err)
	}

	if g.paused {
		if !g.stepOnce {
			return 0, nil
		}
		g.stepOnce = false
		if err := g.Step(g.frame(raw)); err != nil {
			return 0, err
		}
		return 1, nil
	}

	dt := g.cfg.Physics.DT
	limit := maxCatchUpTicks * g.stepsPerUpdate
	g.accumulator += elapsed * float64(g.stepsPerUpdate)

	ticks := 0
	for g.accumulator >= dt {
		if ticks == limit {
			// Drop the backlog rather than spiral
			g.accumulator = 0
			break
		}
		if err := g.Step(g.frame(raw)); err != nil {
			return ticks, err
		}
		g.accumulator -= dt
		ticks++
	}
	return ticks, nil
}

// UpdateHeadless runs StepsPerUpdate ticks, polling the provider before
// each one.
func (g *Game) UpdateHeadless() error {
	for i := 0; i < g.stepsPerUpdate; i++ {
		raw := g.provider.Poll()
		if err := input.ValidateRaw(raw); err != nil {
			slog.Warn("rejected controller state", "tick", g.tick, "error", err)
			return fmt.Errorf("tick %d: %w", g.tick, err)
		}
		if err := g.Step(g.frame(raw)); err != nil {
			return err
		}
	}
	return nil
}
