package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/tilechain/internal/analysis"
	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/config"
	"github.com/san-kum/tilechain/internal/experiment"
	"github.com/san-kum/tilechain/internal/export"
	"github.com/san-kum/tilechain/internal/markov"
	"github.com/san-kum/tilechain/internal/metrics"
	"github.com/san-kum/tilechain/internal/sim"
	"github.com/san-kum/tilechain/internal/tui"
	"github.com/san-kum/tilechain/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	verbose    bool

	turns   int
	start   int
	delay   int
	noLimit bool

	watch  bool
	stopAt float64
	top    int
	tol    float64
)

// main registers the commands and runs the live animation when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "tilechain",
		Short: "probability of landing on each Monopoly tile",
		Long: "tilechain models a token going around the Monopoly board as a Markov chain.\n" +
			"It evolves the distribution turn by turn and finds its stationary limit.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().IntVar(&turns, "turns", config.DefaultTurns, "number of turns")
	rootCmd.PersistentFlags().IntVar(&start, "start", board.Go, "starting tile")
	rootCmd.Flags().IntVar(&delay, "delay", config.DefaultDelay, "milliseconds between frames")
	rootCmd.Flags().BoolVar(&noLimit, "no-limit", false, "do not overlay the stationary distribution")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the distribution one turn per frame",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&delay, "delay", config.DefaultDelay, "milliseconds between frames")
	liveCmd.Flags().BoolVar(&noLimit, "no-limit", false, "do not overlay the stationary distribution")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "evolve the distribution and plot the last turn",
		Args:  cobra.NoArgs,
		RunE:  runEvolve,
	}
	runCmd.Flags().BoolVar(&watch, "watch", false, "print every turn as a bar chart")
	runCmd.Flags().Float64Var(&stopAt, "stop-at", 0, "with --watch, stop once the distance to the stationary distribution is below this")
	runCmd.Flags().IntVar(&delay, "delay", config.DefaultDelay, "milliseconds between frames with --watch")
	runCmd.Flags().BoolVar(&noLimit, "no-limit", false, "do not overlay the stationary distribution")

	stationaryCmd := &cobra.Command{
		Use:   "stationary",
		Short: "print the stationary distribution",
		Args:  cobra.NoArgs,
		RunE:  runStationary,
	}

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "rank tiles by stationary probability",
		Args:  cobra.NoArgs,
		RunE:  runRank,
	}
	rankCmd.Flags().IntVar(&top, "top", board.Size, "number of tiles to list")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "verify the chain's invariants",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [start] [start] ...",
		Short: "compare how fast different starts forget where they began",
		Long: "compare runs the chain from each start and prints the largest distance between them.\n" +
			"A start is a tile number or one of: " + fmt.Sprint(experiment.NewRegistry().List()),
		Args: cobra.MinimumNArgs(2),
		RunE: runCompare,
	}
	compareCmd.Flags().Float64Var(&tol, "tol", 1e-3, "distance below which the starts count as mixed")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "write the turn sequence as CSV to stdout",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "write the turn sequence as JSON to stdout",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTURNS\tSTART\tDELAY\tLIMIT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\t%dms\t%t\n", name, p.Turns, board.Name(p.Start), p.Delay, p.Limit)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, stationaryCmd, rankCmd, checkCmd, compareCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig layers defaults, preset, config file, environment and the flags
// set on the command line, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("turns") {
		cfg.Turns = turns
	}
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Lookup("delay") != nil && flags.Changed("delay") {
		cfg.Delay = delay
	}
	if flags.Lookup("no-limit") != nil && flags.Changed("no-limit") {
		cfg.Limit = !noLimit
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log.Debug().Int("turns", cfg.Turns).Int("start", cfg.Start).Int("delay_ms", cfg.Delay).Bool("limit", cfg.Limit).Msg("config loaded")

	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(board.TransitionMatrix(), *cfg)
}

// simulate runs cfg on the board chain with the default metrics. The
// stationary distribution is returned as well and is nil if it could not be
// computed.
func simulate(cfg *config.Config, observers ...sim.Observer) (*sim.Result, markov.Vector, error) {
	chain := board.TransitionMatrix()

	limit, err := markov.Stationary(chain)
	if err != nil {
		log.Warn().Err(err).Msg("stationary distribution unavailable")
		limit = nil
	}

	s := sim.New(chain)
	for _, m := range metrics.Defaults(limit) {
		s.AddMetric(m)
	}
	for _, o := range observers {
		s.AddObserver(o)
	}

	result, err := s.Run(context.Background(), cfg.InitialDistribution(), cfg.SimConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("simulation failed: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, nil, fmt.Errorf("simulation failed: %w", result.Errors[0])
	}
	return result, limit, nil
}

func runEvolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if watch {
		r := tui.NewRenderer(os.Stdout, cfg.DelayDuration(), cfg.Plot.Max)
		r.Start()
		last, err := playback(context.Background(), cfg, stopAt, r)
		r.Stop()
		if err != nil {
			return err
		}
		if last < cfg.Turns {
			log.Info().Int("turn", last).Float64("stop_at", stopAt).Msg("distribution settled, playback stopped")
		}
	}

	result, limit, err := simulate(cfg)
	if err != nil {
		return err
	}

	overlay := limit
	if !cfg.Limit {
		overlay = nil
	}
	final := result.Final()

	fmt.Println(viz.Plot(final, overlay, cfg.Plot, fmt.Sprintf("Rolls: %d", result.TurnsTaken)))
	fmt.Println()
	fmt.Printf("Sum of probabilities: %.8f\n", final.Sum())
	fmt.Printf("Most likely tile: %s (%.4f)\n", board.Name(final.Argmax()), final[final.Argmax()])
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, values[name])
	}
}

func runStationary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	a := board.TransitionMatrix()
	pi, err := markov.Stationary(a)
	if err != nil {
		return fmt.Errorf("stationary distribution: %w", err)
	}

	fmt.Println(viz.Plot(pi, nil, cfg.Plot, "Stationary distribution"))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TILE\tNAME\tPROBABILITY")
	for i, x := range pi {
		fmt.Fprintf(w, "%d\t%s\t%.6f\n", i, board.Name(i), x)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nSum of probabilities: %.8f\n", pi.Sum())

	gap, err := analysis.SpectralGap(a)
	if err != nil {
		return fmt.Errorf("spectral gap: %w", err)
	}
	mixing, err := analysis.MixingTime(a, cfg.Tolerance)
	if err != nil {
		return fmt.Errorf("mixing time: %w", err)
	}
	fmt.Printf("Spectral gap: %.4f (about %d turns to within %g)\n", gap, mixing, cfg.Tolerance)

	settled, _, err := markov.Converge(a, cfg.InitialDistribution(), cfg.Tolerance, maxSettleTurns)
	switch {
	case errors.Is(err, markov.ErrNotConverged):
		fmt.Printf("Measured: not settled within %g after %d turns from %s\n", cfg.Tolerance, maxSettleTurns, board.Name(cfg.Start))
	case err != nil:
		return err
	default:
		fmt.Printf("Measured: settles within %g after %d turns from %s\n", cfg.Tolerance, settled, board.Name(cfg.Start))
	}
	return nil
}

func runRank(cmd *cobra.Command, args []string) error {
	pi, err := markov.Stationary(board.TransitionMatrix())
	if err != nil {
		return fmt.Errorf("stationary distribution: %w", err)
	}

	order := make([]int, len(pi))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return pi[order[a]] > pi[order[b]] })

	n := min(max(top, 0), len(order))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTILE\tNAME\tKIND\tPROBABILITY\tVS UNIFORM")
	for r, i := range order[:n] {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%.6f\t%.3fx\n", r+1, i, board.Name(i), board.Tiles[i].Kind, pi[i], pi[i]*board.Size)
	}
	return w.Flush()
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	cfgs := make([]experiment.Config, 0, len(args))
	for _, name := range args {
		p0, err := registry.Get(name)
		if err != nil {
			return err
		}
		cfgs = append(cfgs, experiment.Config{
			Name:      name,
			Start:     p0,
			Turns:     cfg.Turns,
			Tolerance: cfg.Tolerance,
		})
	}

	a := board.TransitionMatrix()
	c, err := experiment.Compare(context.Background(), a, cfgs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TURN\tMAX DISTANCE")
	for _, n := range checkpoints(len(c.Spread) - 1) {
		fmt.Fprintf(w, "%d\t%.3e\n", n, c.Spread[n])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if n := c.MixedAt(tol); n >= 0 {
		fmt.Printf("\nstarts agree within %g after %d turns\n", tol, n)
	} else {
		fmt.Printf("\nstarts still differ by more than %g after %d turns\n", tol, len(c.Spread)-1)
	}

	line, err := contraction(a, cfgs[0], cfgs[1])
	if err != nil {
		return err
	}
	fmt.Println(line)
	return nil
}

// contraction compares the per-turn factor measured between two starts with
// the spectral one. Starts that coincide only get the spectral factor.
func contraction(a *markov.Matrix, x, y experiment.Config) (string, error) {
	second, err := analysis.SecondModulus(a)
	if err != nil {
		return "", fmt.Errorf("spectrum: %w", err)
	}
	rate, err := analysis.ContractionRate(a, x.Start, y.Start, x.Turns)
	switch {
	case errors.Is(err, analysis.ErrCoincident):
		return fmt.Sprintf("per-turn contraction: |λ2| %.4f (%s and %s coincide, nothing to measure)", second, x.Name, y.Name), nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("per-turn contraction: measured %.4f, |λ2| %.4f", math.Exp(rate), second), nil
}

// checkpoints lists 0, 1, 2, 5, 10, 20, 50, ... up to last, and last itself.
func checkpoints(last int) []int {
	var out []int
	for scale := 1; scale <= last; scale *= 10 {
		for _, k := range []int{1, 2, 5} {
			if n := k * scale; n < last {
				out = append(out, n)
			}
		}
	}
	out = append([]int{0}, out...)
	if last > 0 {
		out = append(out, last)
	}
	return out
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, _, err := simulate(cfg)
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, limit, err := simulate(cfg)
	if err != nil {
		return err
	}

	names := make([]string, board.Size)
	for i := range names {
		names[i] = board.Name(i)
	}
	return export.WriteJSON(os.Stdout, export.NewExportData(cfg.Start, names, result, limit))
}
