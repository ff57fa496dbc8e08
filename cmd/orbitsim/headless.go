package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/automation"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/optim"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

const (
	svgWidth  = 800
	svgHeight = 600
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// headless loads the configuration and logger shared by every batch
// command, plus the burn schedule from --burn.
func headless(cmd *cobra.Command) (*config.Config, sim.RunConfig, *logging.Logger, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, sim.RunConfig{}, nil, nil, err
	}
	schedule, err := parseBurns(burns)
	if err != nil {
		return nil, sim.RunConfig{}, nil, nil, err
	}
	log, closeLog, err := newLogger(false)
	if err != nil {
		return nil, sim.RunConfig{}, nil, nil, err
	}
	return cfg, sim.RunConfig{Ticks: ticks, Burns: schedule}, log, closeLog, nil
}

func simulate(ctx context.Context, cfg *config.Config, rc sim.RunConfig, log *logging.Logger) (*sim.World, *sim.Result, error) {
	w, err := sim.New(cfg, sim.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	for _, m := range metrics.Default(bound) {
		w.AddMetric(m)
	}
	result, err := w.Run(ctx, rc)
	return w, result, err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, rc, log, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if planFile != "" {
		plan, err := automation.LoadPlan(planFile)
		if err != nil {
			return err
		}
		if cfg, err = plan.Config(cfg); err != nil {
			return err
		}
		rc = plan.RunConfig()
		log.Info("loaded plan", "name", plan.Name, "description", plan.Description)
	}

	ctx, stop := interruptible()
	defer stop()

	if numRuns > 1 {
		seedStart := cfg.Seed
		if seedStart == 0 {
			seedStart = time.Now().UnixNano()
		}
		ens := sim.NewEnsemble(cfg, numRuns, seedStart, func() []sim.Metric { return metrics.Default(bound) }, log)
		results, err := ens.Run(ctx, rc)
		if err != nil {
			return err
		}
		return writeEnsemble(results)
	}

	start := time.Now()
	w, result, err := simulate(ctx, cfg, rc, log)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, result)
	case "json":
		return export.WriteJSON(os.Stdout, result)
	case "svg":
		svg := export.TrajectoryToSVG(export.SamplePath(result.Samples), w.Bodies(), svgWidth, svgHeight, cfg.Display.Colors.Trail)
		if svg == "" {
			return fmt.Errorf("not enough samples for a trajectory")
		}
		fmt.Println(svg)
		return nil
	case "table":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", result.RunID)
	fmt.Printf("scenario: %s (seed %d)\n", result.Scenario, result.Seed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func writeEnsemble(results []*sim.Result) error {
	switch format {
	case "csv":
		return export.WriteEnsembleCSV(os.Stdout, results)
	case "json":
		return export.WriteEnsembleJSON(os.Stdout, results)
	case "table":
	default:
		return fmt.Errorf("format %s not supported for ensembles", format)
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, name := range names {
		s := automation.Summarize(results, name)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", s.Metric, s.Mean, s.StdDev, s.Min, s.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stayed, escaped := automation.Escaped(results)
	fmt.Printf("\n%d runs: %d stayed bound, %d escaped\n", len(results), stayed, escaped)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, rc, log, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := interruptible()
	defer stop()

	_, result, err := simulate(ctx, cfg, rc, log)
	if err != nil {
		return err
	}

	speed := make([]float64, len(result.Samples))
	distance := make([]float64, len(result.Samples))
	for i, s := range result.Samples {
		speed[i] = s.Speed
		distance[i] = s.Distance
	}

	fmt.Printf("run: %s\n", result.RunID)
	fmt.Printf("scenario: %s (seed %d)\n", result.Scenario, result.Seed)
	fmt.Printf("samples: %d\n\n", len(result.Samples))

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{speed, "station speed"},
		{distance, "distance to primary"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, rc, log, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if rc.Ticks < 8 {
		return fmt.Errorf("analysis needs at least 8 ticks, got %d", rc.Ticks)
	}

	ctx, stop := interruptible()
	defer stop()

	_, result, err := simulate(ctx, cfg, rc, log)
	if err != nil {
		return err
	}

	distance := make([]float64, len(result.Samples))
	bearings := make([]float64, len(result.Samples))
	for i, s := range result.Samples {
		distance[i] = s.Distance
		bearings[i] = s.Bearing
	}

	fmt.Printf("frequency analysis: %s\n", result.RunID)
	fmt.Printf("scenario: %s (seed %d)\n\n", result.Scenario, result.Seed)

	ps := analysis.PowerSpectrum(analysis.Pad(distance))
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (distance)"),
	)
	fmt.Println(graph)
	fmt.Println()

	if period, ok := analysis.DominantPeriod(distance); ok {
		fmt.Printf("dominant period: %.1f ticks (%.2f s at %d fps)\n", period, period/float64(cfg.Display.FPS), cfg.Display.FPS)
	} else {
		fmt.Println("dominant period: none")
	}
	fmt.Printf("revolutions: %.2f\n", analysis.Revolutions(bearings))

	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, rc, log, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	w, err := sim.New(cfg, sim.WithLogger(log))
	if err != nil {
		return err
	}
	if rc.Ticks > 0 {
		ctx, stop := interruptible()
		defer stop()
		if _, err := w.Run(ctx, rc); err != nil {
			return err
		}
	}

	r := viz.NewRenderer(cfg, cols, rows)
	r.Draw(w, viz.Layers{Grid: showGrid, Vectors: showVecs, Compass: true})
	fmt.Println(export.CanvasToSVG(r.Canvas(), dotScale, cfg.Display.Colors.Background))
	return nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	cfg, rc, log, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ctx, stop := interruptible()
	defer stop()

	results, err := automation.RunSweep(ctx, cfg, &automation.ParameterSweep{
		Param:    paramName,
		ParamMin: paramMin,
		ParamMax: paramMax,
		NumSteps: numSteps,
		Run:      rc,
	}, log)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return export.WriteSweepCSV(os.Stdout, paramName, results)
	case "table":
	default:
		return fmt.Errorf("format %s not supported for sweeps", format)
	}

	var names []string
	for _, r := range results {
		if r.Err == nil {
			names = sortedKeys(r.Metrics)
			break
		}
	}

	fmt.Printf("sweep %s over seed %d\n\n", paramName, cfg.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "VALUE")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.ParamValue)
		if r.Err != nil {
			fmt.Fprintf(w, "\t%v\n", r.Err)
			continue
		}
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func tuneBurn(cmd *cobra.Command, args []string) error {
	cfg, rc, log, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if tickMin < 1 || tickMax < tickMin || tickMax > rc.Ticks {
		return fmt.Errorf("burn ticks must satisfy 1 <= tick-min <= tick-max <= ticks")
	}
	if tickSteps < 1 || dirSteps < 1 {
		return fmt.Errorf("tick-steps and dir-steps must be positive")
	}

	var g optim.Goal
	switch goal {
	case "min":
		g = optim.Minimize
	case "max":
		g = optim.Maximize
	default:
		return fmt.Errorf("unknown goal: %s", goal)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	directions := optim.Linspace(0, 2*math.Pi, dirSteps+1)[:dirSteps]
	if dirSteps == 1 {
		directions = []float64{0}
	}
	search := optim.NewGridSearch(
		[]string{"tick", "direction"},
		[][]float64{optim.Linspace(float64(tickMin), float64(tickMax), tickSteps), directions},
		g,
	)

	build := func(p map[string]float64) (*sim.World, sim.RunConfig, error) {
		c := *cfg
		w, err := sim.New(&c, sim.WithLogger(log))
		if err != nil {
			return nil, sim.RunConfig{}, err
		}
		for _, m := range metrics.Default(bound) {
			w.AddMetric(m)
		}
		burn := sim.Burn{Tick: int(math.Round(p["tick"])), Direction: p["direction"]}
		return w, sim.RunConfig{Ticks: rc.Ticks, Burns: []sim.Burn{burn}}, nil
	}

	ctx, stop := interruptible()
	defer stop()

	best, value, err := search.Search(ctx, build, metric)
	if err != nil {
		return err
	}

	dir := best["direction"]
	fmt.Printf("seed: %d\n", cfg.Seed)
	fmt.Printf("best burn: tick %d, direction %.3f rad (%.0f deg)\n", int(math.Round(best["tick"])), dir, dir*180/math.Pi)
	fmt.Printf("%s: %.6f\n", metric, value)
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s\n\n", cfg.Scenario)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKS\tBURNS\tTIME\tTICKS/SEC")

	for _, n := range []int{1000, 10000, 100000} {
		for _, withBurns := range []bool{false, true} {
			world, err := sim.New(cfg)
			if err != nil {
				return err
			}
			rc := sim.RunConfig{Ticks: n}
			if withBurns {
				for t := 1; t <= n; t += 20 {
					rc.Burns = append(rc.Burns, sim.Burn{Tick: t, Direction: float64(t)})
				}
			}

			start := time.Now()
			if _, err := world.Run(context.Background(), rc); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, len(rc.Burns), elapsed, float64(n)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
