package game

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/steering"
)

// spawnInitialLayout places the cat in the middle, the first tank left of it
// and the first mouse right of it, facing right. Any further agents go to
// random spots with random headings.
func (g *Game) spawnInitialLayout() {
	w, h := g.arena.Width(), g.arena.Height()

	g.cat = g.spawnCat(r2.Vec{X: w / 2, Y: h / 2})

	for i := 0; i < g.cfg.Population.Tanks; i++ {
		pos, angle := r2.Vec{X: w / 4, Y: h / 2}, 0.0
		if i > 0 {
			pos, angle = g.randomPlacement()
		}
		g.spawnTank(pos, angle)
	}

	for i := 0; i < g.cfg.Population.Mice; i++ {
		pos, angle := r2.Vec{X: 3 * w / 4, Y: h / 2}, 0.0
		if i > 0 {
			pos, angle = g.randomPlacement()
		}
		g.spawnMouse(pos, angle)
	}
}

func (g *Game) randomPlacement() (r2.Vec, float64) {
	pos := r2.Vec{
		X: g.arena.Min.X + g.rng.Float64()*g.arena.Width(),
		Y: g.arena.Min.Y + g.rng.Float64()*g.arena.Height(),
	}
	angle := steering.WrapAngle(g.rng.Float64() * 2 * math.Pi)
	return pos, angle
}

// allocID returns the next agent ID.
func (g *Game) allocID() uint32 {
	id := g.nextID
	g.nextID++
	return id
}

// agentRng gives each agent its own stream so results do not depend on
// update order.
func (g *Game) agentRng(id uint32) *rand.Rand {
	return rand.New(rand.NewSource(g.seed + int64(id)))
}

// spawnCat creates the player-controlled agent.
func (g *Game) spawnCat(pos r2.Vec) ecs.Entity {
	agent := components.Agent{ID: g.allocID(), Kind: components.KindCat}
	p := components.Position{X: pos.X, Y: pos.Y}
	rot := components.Orientation{}
	mot := components.Motion{MaxSpeed: g.cfg.Cat.MaxSpeed}
	g.catPos = pos

	return g.catMapper.NewEntity(&agent, &p, &rot, &mot, &components.Player{})
}

// spawnTank creates a pursuer in the Wandering state.
func (g *Game) spawnTank(pos r2.Vec, angle float64) ecs.Entity {
	tc := g.cfg.Tank
	agent := components.Agent{ID: g.allocID(), Kind: components.KindTank}
	p := components.Position{X: pos.X, Y: pos.Y}
	rot := components.Orientation{Angle: angle}
	mot := components.Motion{
		MaxSpeed:          tc.MaxSpeed,
		TurnSpeed:         tc.TurnSpeed,
		WanderSpeedFactor: tc.WanderSpeedFactor,
	}
	wan := components.Wander{Rng: g.agentRng(agent.ID)}
	pur := components.Pursuer{
		State: steering.PursuerWandering,
		Thresholds: steering.PursuerThresholds{
			ChaseDistance:  tc.ChaseDistance,
			CaughtDistance: tc.CaughtDistance,
			Hysteresis:     tc.Hysteresis,
		},
	}

	g.numTanks++
	return g.tankMapper.NewEntity(&agent, &p, &rot, &mot, &wan, &pur)
}

// spawnMouse creates an evader in the Wandering state.
func (g *Game) spawnMouse(pos r2.Vec, angle float64) ecs.Entity {
	mc := g.cfg.Mouse
	agent := components.Agent{ID: g.allocID(), Kind: components.KindMouse}
	p := components.Position{X: pos.X, Y: pos.Y}
	rot := components.Orientation{Angle: angle}
	mot := components.Motion{
		MaxSpeed:          mc.MaxSpeed,
		TurnSpeed:         mc.TurnSpeed,
		WanderSpeedFactor: mc.WanderSpeedFactor,
	}
	wan := components.Wander{Rng: g.agentRng(agent.ID)}
	eva := components.Evader{
		State: steering.EvaderWandering,
		Thresholds: steering.EvaderThresholds{
			EvadeDistance: mc.EvadeDistance,
			Hysteresis:    mc.Hysteresis,
		},
	}

	g.numMice++
	return g.mouseMapper.NewEntity(&agent, &p, &rot, &mot, &wan, &eva)
}

// removeAgent destroys an agent and drops its telemetry history.
func (g *Game) removeAgent(e ecs.Entity) {
	if !g.world.Alive(e) {
		return
	}
	agent := g.agentMap.Get(e)
	switch agent.Kind {
	case components.KindTank:
		g.numTanks--
	case components.KindMouse:
		g.numMice--
	}
	g.collector.Forget(agent.ID)
	g.world.RemoveEntity(e)
}

// teardown removes every agent. Entities are gathered first since the world
// cannot change while a query is open.
func (g *Game) teardown() {
	var entities []ecs.Entity
	query := g.agentFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.removeAgent(e)
	}
}
