// Package game owns the simulation: the ECS world, the tick loop, telemetry
// hooks, and (when windowed) the camera and UI around it.
package game

import (
	"cmp"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/config"
	"github.com/pthm-cable/chase/input"
	"github.com/pthm-cable/chase/steering"
	"github.com/pthm-cable/chase/systems"
	"github.com/pthm-cable/chase/telemetry"
)

// maxCatchUpTicks bounds how many ticks one Update may run per step of
// speed, so a long stall does not turn into a burst of simulation.
const maxCatchUpTicks = 5

// Options configures game behavior.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64
	LogStats       bool
	SnapshotDir    string // empty disables bookmark snapshots
	OutputDir      string // empty disables CSV output
	Headless       bool
	StepsPerUpdate int            // ticks per UpdateHeadless call, speed multiplier when windowed
	Provider       input.Provider // nil uses the raylib provider when windowed, input.Idle when headless
	StatsCallback  func(telemetry.WindowStats)
}

// AgentView is a read-only copy of one agent for renderers and tests.
type AgentView struct {
	ID          uint32
	Kind        components.Kind
	State       string // empty for the cat
	Position    r2.Vec
	Orientation float64
	Speed       float64
	Wander      r2.Vec
}

// Snapshot is the committed state after the last completed tick.
type Snapshot struct {
	Tick   int32
	Cat    r2.Vec
	Arena  steering.Bounds
	Agents []AgentView // ordered by ID
}

// Game holds the complete game state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	seed  int64

	// Entity mappers
	catMapper   *ecs.Map5[components.Agent, components.Position, components.Orientation, components.Motion, components.Player]
	tankMapper  *ecs.Map6[components.Agent, components.Position, components.Orientation, components.Motion, components.Wander, components.Pursuer]
	mouseMapper *ecs.Map6[components.Agent, components.Position, components.Orientation, components.Motion, components.Wander, components.Evader]
	agentFilter *ecs.Filter4[components.Agent, components.Position, components.Orientation, components.Motion]

	// Component lookups
	agentMap *ecs.Map[components.Agent]
	posMap   *ecs.Map[components.Position]
	rotMap   *ecs.Map[components.Orientation]
	motMap   *ecs.Map[components.Motion]
	wanMap   *ecs.Map[components.Wander]
	purMap   *ecs.Map[components.Pursuer]
	evaMap   *ecs.Map[components.Evader]

	// Systems
	playerSystem  *systems.PlayerSystem
	pursuerSystem *systems.PursuerSystem
	evaderSystem  *systems.EvaderSystem
	boundsSystem  *systems.BoundsSystem

	arena    steering.Bounds
	cat      ecs.Entity
	catPos   r2.Vec
	provider input.Provider

	// Per-tick scratch
	parallel    *parallelState
	transitions []systems.Transition
	trace       []telemetry.TraceRecord

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string
	lastStats        *telemetry.WindowStats

	// State
	tick           int32
	nextID         uint32
	numTanks       int
	numMice        int
	paused         bool
	stepOnce       bool
	stepsPerUpdate int
	accumulator    float64

	headless bool
	gfx      *graphics // nil when headless
}

// New creates a game, spawns the initial layout, and opens the output
// directory when one is given. Graphics are set up unless opts.Headless,
// which requires an open raylib window.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = cfg.Physics.StepsPerUpdate
	}
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	world := ecs.NewWorld()
	arena := steering.NewBounds(cfg.Derived.WorldWidth, cfg.Derived.WorldHeight)
	params := systems.AgentParams{
		Wander: steering.WanderParams{
			Jitter:       cfg.Wander.Jitter,
			FollowFactor: cfg.Wander.FollowFactor,
			CenterPull:   cfg.Wander.CenterPull,
		},
		Arena: arena,
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		seed:  opts.Seed,

		catMapper:   ecs.NewMap5[components.Agent, components.Position, components.Orientation, components.Motion, components.Player](world),
		tankMapper:  ecs.NewMap6[components.Agent, components.Position, components.Orientation, components.Motion, components.Wander, components.Pursuer](world),
		mouseMapper: ecs.NewMap6[components.Agent, components.Position, components.Orientation, components.Motion, components.Wander, components.Evader](world),
		agentFilter: ecs.NewFilter4[components.Agent, components.Position, components.Orientation, components.Motion](world),

		agentMap: ecs.NewMap[components.Agent](world),
		posMap:   ecs.NewMap[components.Position](world),
		rotMap:   ecs.NewMap[components.Orientation](world),
		motMap:   ecs.NewMap[components.Motion](world),
		wanMap:   ecs.NewMap[components.Wander](world),
		purMap:   ecs.NewMap[components.Pursuer](world),
		evaMap:   ecs.NewMap[components.Evader](world),

		playerSystem:  systems.NewPlayerSystem(world),
		pursuerSystem: systems.NewPursuerSystem(world, params),
		evaderSystem:  systems.NewEvaderSystem(world, params),
		boundsSystem:  systems.NewBoundsSystem(world, arena),

		arena:    arena,
		provider: opts.Provider,
		parallel: newParallelState(cfg.Parallel.Threshold),

		collector:        telemetry.NewCollector(cfg.Derived.StatsTicks, int32(cfg.Telemetry.FlapWindow), cfg.Physics.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,

		stepsPerUpdate: stepsPerUpdate,
		headless:       opts.Headless,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.Trace)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	g.spawnInitialLayout()

	if !g.headless {
		g.initGraphics()
	}
	if g.provider == nil {
		g.provider = input.Idle
	}

	slog.Debug("game created",
		"seed", opts.Seed,
		"tanks", g.numTanks,
		"mice", g.numMice,
		"world_width", arena.Width(),
		"world_height", arena.Height(),
	)

	return g, nil
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// Arena returns the arena bounds.
func (g *Game) Arena() steering.Bounds {
	return g.arena
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
	g.accumulator = 0
}

// StepOnce runs exactly one tick on the next Update while paused.
func (g *Game) StepOnce() {
	g.stepOnce = true
}

// StepsPerUpdate returns the speed multiplier.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets the speed multiplier, clamped to [1, 10].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, 10))
}

// Snapshot returns a copy of every agent's state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  g.tick,
		Cat:   g.catPos,
		Arena: g.arena,
	}

	query := g.agentFilter.Query()
	for query.Next() {
		agent, pos, rot, mot := query.Get()
		e := query.Entity()

		view := AgentView{
			ID:          agent.ID,
			Kind:        agent.Kind,
			Position:    pos.Vec(),
			Orientation: rot.Angle,
			Speed:       mot.Speed,
		}
		if g.wanMap.Has(e) {
			view.Wander = g.wanMap.Get(e).Direction
		}
		view.State = g.stateLabel(e)
		snap.Agents = append(snap.Agents, view)
	}

	slices.SortFunc(snap.Agents, func(a, b AgentView) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return snap
}

// stateLabel returns the behavior state of e, or "" for the cat.
func (g *Game) stateLabel(e ecs.Entity) string {
	if g.purMap.Has(e) {
		return g.purMap.Get(e).State.String()
	}
	if g.evaMap.Has(e) {
		return g.evaMap.Get(e).State.String()
	}
	return ""
}

// Unload stops workers, removes all agents, closes output files, and
// releases graphics.
func (g *Game) Unload() {
	g.stopParallelWorkers()
	g.teardown()

	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil

	if g.gfx != nil {
		g.gfx.unload()
	}
}
