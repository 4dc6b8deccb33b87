package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/config"
	"github.com/pthm-cable/chase/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation ticks per update call (0 = use config)")
	debug := flag.Bool("debug", false, "Log every state transition")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Chase")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.HandleInput()
		if _, err := g.Update(float64(rl.GetFrameTime())); err != nil {
			slog.Warn("update skipped", "error", err)
		}
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless runs the simulation without raylib until maxTicks (0 = forever).
func runHeadless(opts game.Options, maxTicks int) {
	g, err := game.New(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", g.StepsPerUpdate(),
	)

	start := time.Now()
	for maxTicks <= 0 || int(g.Tick()) < maxTicks {
		if err := g.UpdateHeadless(); err != nil {
			slog.Warn("update skipped", "error", err)
		}
	}

	slog.Info("max ticks reached",
		"tick", g.Tick(),
		"transitions", g.TotalTransitions(),
		"flaps", g.TotalFlaps(),
		"elapsed", time.Since(start).String(),
	)
}
