package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configFile string
	preset     string
	scenarioID string
	seed       int64
	logFile    string
	logFormat  string
	// live view
	theme     string
	frameRate int
	// headless runs
	ticks    int
	format   string
	burns    []string
	planFile string
	numRuns  int
	bound    float64
	// snapshot
	cols     int
	rows     int
	dotScale float64
	showGrid bool
	showVecs bool
	// sweep and tune
	paramName string
	paramMin  float64
	paramMax  float64
	numSteps  int
	metric    string
	goal      string
	tickMin   int
	tickMax   int
	tickSteps int
	dirSteps  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orbitsim",
		Short:         "2-D orbital sandbox with a steerable station",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&scenarioID, "scenario", "", "initial body set")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text or json")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive view (default)",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().StringVar(&theme, "theme", "", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
		c.Flags().IntVar(&frameRate, "fps", 0, "frame rate")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run, results to stdout",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 1000, "ticks to simulate")
	runCmd.Flags().StringVar(&format, "format", "table", "output: table, csv, json or svg")
	runCmd.Flags().StringSliceVar(&burns, "burn", nil, "burn as tick:direction (radians), repeatable")
	runCmd.Flags().StringVar(&planFile, "plan", "", "flight plan file (yaml)")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "run an ensemble over consecutive seeds")
	runCmd.Flags().Float64Var(&bound, "bound", 600, "escape radius for the bound metric")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "chart speed and distance of a headless run",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&ticks, "ticks", 1000, "ticks to simulate")
	plotCmd.Flags().StringSliceVar(&burns, "burn", nil, "burn as tick:direction (radians), repeatable")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "orbital period and revolutions of a headless run",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&ticks, "ticks", 2048, "ticks to simulate")
	analyzeCmd.Flags().StringSliceVar(&burns, "burn", nil, "burn as tick:direction (radians), repeatable")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame as SVG to stdout",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to simulate before rendering")
	snapshotCmd.Flags().StringSliceVar(&burns, "burn", nil, "burn as tick:direction (radians), repeatable")
	snapshotCmd.Flags().IntVar(&cols, "cols", 100, "canvas width in cells")
	snapshotCmd.Flags().IntVar(&rows, "rows", 40, "canvas height in cells")
	snapshotCmd.Flags().Float64Var(&dotScale, "scale", 4, "svg units per dot")
	snapshotCmd.Flags().BoolVar(&showGrid, "grid", true, "draw the gravity grid")
	snapshotCmd.Flags().BoolVar(&showVecs, "vectors", false, "draw force vectors")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run across a range of one parameter",
		Args:  cobra.NoArgs,
		RunE:  sweepParam,
	}
	sweepCmd.Flags().StringVar(&paramName, "param", "physics.initial_speed", "parameter to vary")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 4, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 7, "number of values")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 1000, "ticks per run")
	sweepCmd.Flags().StringSliceVar(&burns, "burn", nil, "burn as tick:direction (radians), repeatable")
	sweepCmd.Flags().StringVar(&format, "format", "table", "output: table or csv")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search a single burn for the best metric",
		Args:  cobra.NoArgs,
		RunE:  tuneBurn,
	}
	tuneCmd.Flags().IntVar(&ticks, "ticks", 1000, "ticks per run")
	tuneCmd.Flags().StringVar(&metric, "metric", "energy", "metric to optimise")
	tuneCmd.Flags().StringVar(&goal, "goal", "min", "min or max")
	tuneCmd.Flags().IntVar(&tickMin, "tick-min", 1, "earliest burn tick")
	tuneCmd.Flags().IntVar(&tickMax, "tick-max", 200, "latest burn tick")
	tuneCmd.Flags().IntVar(&tickSteps, "tick-steps", 5, "burn ticks to try")
	tuneCmd.Flags().IntVar(&dirSteps, "dir-steps", 8, "burn directions to try")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the tick loop",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println("scenarios:")
			for _, s := range scenario.NewRegistry().List() {
				fmt.Printf("  %s\n", s)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "orbitsim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, runCmd, plotCmd, analyzeCmd, snapshotCmd, sweepCmd, tuneCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// applyDefaults restores this command's unset flags to its own defaults,
// since several commands bind the same variables.
func applyDefaults(cmd *cobra.Command) {
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && f.Value.Type() != "stringSlice" {
			_ = f.Value.Set(f.DefValue)
		}
	})
}

// loadConfig resolves the configuration: preset, else config file, else
// defaults. Flags override it only when set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	applyDefaults(cmd)

	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("scenario") {
		cfg.Scenario = scenarioID
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Display.Theme = theme
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.Display.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger logs to --log-file when given. Otherwise headless commands log
// to stderr and the live view discards.
func newLogger(interactive bool) (*logging.Logger, func() error, error) {
	if logFile != "" {
		return logging.OpenFile(logFile, logFormat)
	}
	if interactive {
		return logging.Discard(), func() error { return nil }, nil
	}
	return logging.New(os.Stderr, logFormat), func() error { return nil }, nil
}

// parseBurns reads tick:direction pairs.
func parseBurns(specs []string) ([]sim.Burn, error) {
	out := make([]sim.Burn, 0, len(specs))
	for _, s := range specs {
		tickStr, dirStr, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("burn %q: want tick:direction", s)
		}
		t, err := strconv.Atoi(strings.TrimSpace(tickStr))
		if err != nil || t < 1 {
			return nil, fmt.Errorf("burn %q: tick must be a positive integer", s)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(dirStr), 64)
		if err != nil {
			return nil, fmt.Errorf("burn %q: %w", s, err)
		}
		out = append(out, sim.Burn{Tick: t, Direction: d})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	w, err := sim.New(cfg, sim.WithLogger(log), sim.WithPaused(true))
	if err != nil {
		return err
	}
	return viz.Run(w, log)
}
