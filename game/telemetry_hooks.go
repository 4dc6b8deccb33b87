package game

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/inspector"
	"github.com/pthm-cable/chase/telemetry"
)

// recordTransitions feeds this tick's state changes to the collector and
// the transitions log.
func (g *Game) recordTransitions() {
	for _, tr := range g.transitions {
		ev := telemetry.NewTransitionEvent(g.tick, tr.ID, tr.Kind, tr.From, tr.To, tr.Distance)
		ev = g.collector.RecordTransition(ev)

		slog.Debug("state transition", "event", ev)

		if err := g.outputManager.WriteTransition(ev); err != nil {
			slog.Error("failed to write transition", "error", err)
		}
	}
}

// recordDistances samples each AI agent's end-of-tick distance to the cat,
// and writes the trace rows when tracing.
func (g *Game) recordDistances() {
	tracing := g.outputManager.Tracing()
	g.trace = g.trace[:0]

	query := g.agentFilter.Query()
	for query.Next() {
		agent, pos, rot, mot := query.Get()
		e := query.Entity()

		state := g.stateLabel(e)
		distance := r2.Norm(r2.Sub(g.catPos, pos.Vec()))
		if agent.Kind != components.KindCat {
			g.collector.RecordDistance(agent.Kind, state, distance)
		}

		if tracing {
			g.trace = append(g.trace, telemetry.TraceRecord{
				Tick:        g.tick,
				AgentID:     agent.ID,
				Kind:        agent.Kind.String(),
				State:       state,
				X:           pos.X,
				Y:           pos.Y,
				Orientation: rot.Angle,
				Speed:       mot.Speed,
				Distance:    distance,
			})
		}
	}

	if err := g.outputManager.WriteTrace(g.trace); err != nil {
		slog.Error("failed to write trace", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.numTanks, g.numMice)
	perfStats := g.perfCollector.Stats()
	g.lastStats = &stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// LastStats returns the most recent window stats, or nil before the first flush.
func (g *Game) LastStats() *telemetry.WindowStats {
	return g.lastStats
}

// TotalFlaps returns the number of flaps over the whole run.
func (g *Game) TotalFlaps() int {
	return g.collector.TotalFlaps()
}

// TotalTransitions returns the number of state changes over the whole run.
func (g *Game) TotalTransitions() int {
	return g.collector.TotalTransitions()
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snap := g.Snapshot()
	out := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		Seed:        g.seed,
		WorldWidth:  g.arena.Width(),
		WorldHeight: g.arena.Height(),
		Tick:        snap.Tick,
		Bookmark:    bookmark,
		Agents:      make([]telemetry.AgentState, 0, len(snap.Agents)),
	}

	for _, a := range snap.Agents {
		out.Agents = append(out.Agents, telemetry.AgentState{
			ID:          a.ID,
			Kind:        a.Kind.String(),
			State:       a.State,
			X:           a.Position.X,
			Y:           a.Position.Y,
			Orientation: a.Orientation,
			Speed:       a.Speed,
			WanderX:     a.Wander.X,
			WanderY:     a.Wander.Y,
		})
	}

	return out
}

// inspectEntry gathers the inspectable components of e.
func (g *Game) inspectEntry(e ecs.Entity) inspector.Entry {
	agent := g.agentMap.Get(e)
	entry := inspector.Entry{
		Title: fmt.Sprintf("%s #%d", agent.Kind, agent.ID),
		Components: []any{
			agent,
			g.posMap.Get(e),
			g.rotMap.Get(e),
			g.motMap.Get(e),
		},
	}
	if g.purMap.Has(e) {
		entry.Components = append(entry.Components, g.purMap.Get(e))
	}
	if g.evaMap.Has(e) {
		entry.Components = append(entry.Components, g.evaMap.Get(e))
	}
	return entry
}

// Report renders every agent's components as plain text.
func (g *Game) Report() string {
	var entities []ecs.Entity
	query := g.agentFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	slices.SortFunc(entities, func(a, b ecs.Entity) int {
		return cmp.Compare(g.agentMap.Get(a).ID, g.agentMap.Get(b).ID)
	})

	entries := make([]inspector.Entry, 0, len(entities))
	for _, e := range entities {
		entries = append(entries, g.inspectEntry(e))
	}

	header := fmt.Sprintf("tick %d seed %d", g.tick, g.seed)
	return inspector.Report(header, entries)
}
