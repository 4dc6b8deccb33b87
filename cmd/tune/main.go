package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/chase/config"
)

// evalRecord is one row of tune_log.csv.
type evalRecord struct {
	Eval            int     `csv:"eval"`
	Objective       float64 `csv:"objective"`
	FlapsPer1000    float64 `csv:"flaps_per_1000"`
	Width           float64 `csv:"width"`
	TankHysteresis  float64 `csv:"tank_hysteresis"`
	MouseHysteresis float64 `csv:"mouse_hysteresis"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 3000, "Ticks per scenario run")
	seeds := flag.Int("seeds", 4, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	lambda := flag.Float64("lambda", 2, "Weight of the hysteresis width term")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewEvaluator(params, int32(*ticks), evalSeeds, baseCfg, *lambda)

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestObjective := penalty
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Search runs in normalized space; clamp so the log shows the values used
			raw := params.Clamp(params.Denormalize(x))
			evalCount++

			res, err := evaluator.Evaluate(raw)
			if err != nil {
				log.Printf("eval %d rejected: %v", evalCount, err)
				return penalty
			}

			if res.Objective < bestObjective {
				bestObjective = res.Objective
				bestParams = raw
			}

			rec := []evalRecord{{
				Eval:            evalCount,
				Objective:       res.Objective,
				FlapsPer1000:    res.FlapsPer1000,
				Width:           res.Width,
				TankHysteresis:  raw[0],
				MouseHysteresis: raw[1],
			}}
			if evalCount == 1 {
				err = gocsv.Marshal(rec, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rec, logFile)
			}
			if err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(max(*maxEvals-evalCount, 0)) * avgPerEval

			fmt.Printf("Eval %d/%d: flaps=%.2f/1k width=%.2f objective=%.3f (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, res.FlapsPer1000, res.Width, res.Objective, bestObjective,
				formatDuration(elapsed), formatDuration(remaining))

			return res.Objective
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}

	fmt.Printf("Starting Nelder-Mead search over %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *ticks)

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if err != nil {
		log.Printf("search ended: %v", err)
	}

	// Prefer the best logged evaluation over the final simplex point
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no valid evaluation")
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best objective: %.3f\n", bestObjective)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.3f (default %.3f)\n", spec.Path, bestParams[i], spec.Default)
	}

	bestCfg := evaluator.Config(bestParams)
	configOutPath := filepath.Join(*outputDir, "best.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
