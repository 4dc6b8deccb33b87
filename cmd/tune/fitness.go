package main

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/config"
	"github.com/pthm-cable/chase/game"
	"github.com/pthm-cable/chase/input"
)

// legTicks is how long the scripted cat keeps one heading.
const legTicks = 15

// Evaluator runs headless scenarios and scores parameter vectors.
type Evaluator struct {
	params     *ParamVector
	ticks      int32
	seeds      []int64
	baseConfig *config.Config
	lambda     float64 // weight of the band width term
}

// Result is the outcome of one evaluation.
type Result struct {
	Objective    float64
	FlapsPer1000 float64 // mean over seeds
	Width        float64
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(params *ParamVector, ticks int32, seeds []int64, baseCfg *config.Config, lambda float64) *Evaluator {
	return &Evaluator{
		params:     params,
		ticks:      ticks,
		seeds:      seeds,
		baseConfig: baseCfg,
		lambda:     lambda,
	}
}

// Config returns a copy of the base config with x applied.
func (e *Evaluator) Config(x []float64) *config.Config {
	cfg := *e.baseConfig
	e.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// Evaluate scores raw parameter values (lower = better):
// flaps per 1000 ticks plus lambda times the normalized band width.
func (e *Evaluator) Evaluate(x []float64) (Result, error) {
	cfg := e.Config(x)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	flaps := make([]float64, len(e.seeds))
	errs := make([]error, len(e.seeds))
	var wg sync.WaitGroup

	for i, seed := range e.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			flaps[idx], errs[idx] = e.run(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for i := range flaps {
		if errs[i] != nil {
			return Result{}, fmt.Errorf("seed %d: %w", e.seeds[i], errs[i])
		}
		total += flaps[i]
	}

	r := Result{Width: e.params.Width(x)}
	if len(flaps) > 0 {
		r.FlapsPer1000 = total / float64(len(flaps))
	}
	r.Objective = r.FlapsPer1000 + e.lambda*r.Width
	return r, nil
}

// run plays one seeded scenario and returns its flaps per 1000 ticks.
func (e *Evaluator) run(cfg *config.Config, seed int64) (float64, error) {
	g, err := game.New(game.Options{
		Config:   cfg,
		Seed:     seed,
		Headless: true,
		Provider: scenario(seed),
	})
	if err != nil {
		return 0, err
	}
	defer g.Unload()

	for g.Tick() < e.ticks {
		if err := g.UpdateHeadless(); err != nil {
			return 0, err
		}
	}
	if g.Tick() == 0 {
		return 0, nil
	}
	return float64(g.TotalFlaps()) * 1000 / float64(g.Tick()), nil
}

// scenario drives the cat along a random walk, picking a new heading every
// legTicks ticks, so agents keep crossing their thresholds.
func scenario(seed int64) input.Provider {
	rng := rand.New(rand.NewSource(seed))
	var stick r2.Vec
	n := 0
	return input.ProviderFunc(func() input.Raw {
		if n%legTicks == 0 {
			a := rng.Float64() * 2 * math.Pi
			stick = r2.Vec{X: math.Cos(a), Y: math.Sin(a)}
		}
		n++
		return input.Raw{Stick: stick}
	})
}

// penalty is the objective for candidates that fail validation.
var penalty = math.Inf(1)
