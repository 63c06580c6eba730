package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlebox/internal/analysis"
	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/metrics"
	"github.com/san-kum/particlebox/internal/physics"
	"github.com/san-kum/particlebox/internal/sim"
	"github.com/san-kum/particlebox/internal/storage"
	"github.com/san-kum/particlebox/internal/tui"
	"github.com/san-kum/particlebox/internal/viz"
)

var (
	dataDir    string
	timestep   float64
	iterations int
	particles  int
	dimensions int
	boundary   float64
	gravity    float64
	noGravity  bool
	noBounce   bool
	interval   int
	seed       int64
	configFile string
	preset     string
	watch      bool
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "particlebox",
		Short: "particle simulation sandbox",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".particlebox", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "render particles while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with interactive visualization",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "render the final particle snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run statistics to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run statistics to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the speed series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping throughput",
		RunE:  benchSimulation,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARTICLES\tDIMS\tITERS\tGRAVITY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
					name, p.ParticleCount, p.Dimensions, p.MaxIterations, gravityLabel(p))
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Println(cfg.Describe())
			return nil
		},
	}
	addConfigFlags(configCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, showCmd, exportCmd,
		exportJSONCmd, exportCSVCmd, analyzeCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&timestep, "dt", config.DefaultTimestep, "timestep")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultMaxIterations, "iteration limit")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticleCount, "particle count")
	cmd.Flags().IntVar(&dimensions, "dims", config.DefaultDimensions, "dimensions (2 or 3)")
	cmd.Flags().Float64Var(&boundary, "boundary", config.DefaultBoundarySize, "boundary size")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity constant")
	cmd.Flags().BoolVar(&noGravity, "no-gravity", false, "disable gravity")
	cmd.Flags().BoolVar(&noBounce, "no-bounce", false, "disable elastic wall collisions")
	cmd.Flags().IntVar(&interval, "interval", 0, "statistics interval (0 = iterations/5)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the effective configuration: defaults, then preset,
// then config file, then explicitly set CLI flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	overrides := map[string]any{}
	if cmd.Flags().Changed("dt") {
		overrides["timestep"] = timestep
	}
	if cmd.Flags().Changed("iterations") {
		overrides["max_iterations"] = iterations
	}
	if cmd.Flags().Changed("particles") {
		overrides["particle_count"] = particles
	}
	if cmd.Flags().Changed("dims") {
		overrides["dimensions"] = dimensions
	}
	if cmd.Flags().Changed("boundary") {
		overrides["boundary_size"] = boundary
	}
	if cmd.Flags().Changed("gravity") {
		overrides["gravity_constant"] = gravity
	}
	if noGravity {
		overrides["enable_gravity"] = false
	}
	if noBounce {
		overrides["enable_collisions"] = false
	}
	if cmd.Flags().Changed("interval") {
		overrides["stats_interval"] = interval
	}
	if cmd.Flags().Changed("seed") {
		overrides["seed"] = seed
	}

	if err := cfg.Update(overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRunner(cfg *config.Config) *sim.Runner {
	state := sim.NewState(cfg)
	runner := sim.NewRunner(cfg, state, physics.New(cfg))
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewBoundaryContacts(cfg.BoundarySize))
	runner.AddMetric(metrics.NewSpread())
	return runner
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := newRunner(cfg)

	var renderer *tui.LiveRenderer
	if watch {
		renderer = tui.NewLiveRenderer(cfg, frameRate)
		runner.AddObserver(renderer)
		runner.SetLogWriter(io.Discard)
		renderer.Start()
		defer renderer.Stop()
	}

	fmt.Printf("running %d particles for %d iterations...\n", cfg.ParticleCount, cfg.MaxIterations)

	result, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("iterations: %d\n", result.Iterations)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(cfg))
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tDIMS\tITERS\tDT\tGRAVITY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.4fs\t%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ParticleCount,
			run.Dimensions,
			run.Iterations,
			run.Timestep,
			run.Gravity,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d, dimensions: %d\n", meta.ParticleCount, meta.Dimensions)
	fmt.Printf("samples: %d\n\n", len(series.Rows))

	columns := []struct {
		name    string
		caption string
	}{
		{"avg_speed", "average speed"},
		{fmt.Sprintf("avg_x%d", meta.Dimensions-1), "average height (vertical axis)"},
	}

	for _, col := range columns {
		data := series.Column(col.name)
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	particles, err := st.LoadParticles(runID, meta.Dimensions)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s  particles: %d  boundary: %.1f\n\n", meta.ID, len(particles), meta.BoundarySize)
	fmt.Println(viz.RenderCloud(particles, meta.BoundarySize, meta.Dimensions, 60, 22))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	return writeJSON(os.Stdout, meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	frames := storage.FramesFromSeries(series, meta.Dimensions)
	return storage.ExportJSON(os.Stdout, meta, frames)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(series.Columns); err != nil {
		return err
	}
	for _, row := range series.Rows {
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = strconv.FormatFloat(val, 'f', 6, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	data := series.Column("avg_speed")
	if len(data) < 4 {
		return fmt.Errorf("not enough samples (%d); rerun with --interval 1", len(data))
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(plotData) > 4 {
		plotData = ps[:len(ps)/2]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (avg speed)"),
	)
	fmt.Println(graph)
	fmt.Println()

	times := series.Column("time")
	sampleInterval := meta.Timestep
	if len(times) >= 2 {
		sampleInterval = (times[len(times)-1] - times[0]) / float64(len(times)-1)
	}

	maxIdx := analysis.DominantFrequency(plotData)
	freq := analysis.BinFrequency(maxIdx, len(data), sampleInterval)
	if maxIdx > 0 && freq > 0 {
		fmt.Printf("dominant frequency: %.3f hz\n", freq)
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	} else {
		fmt.Println("no dominant frequency")
	}

	return nil
}

func benchSimulation(cmd *cobra.Command, args []string) error {
	counts := []int{100, 1000, 10000}
	iters := []int{100, 1000}

	fmt.Println("benchmarking particle stepping")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tITERS\tTIME\tSTEPS/SEC")

	for _, count := range counts {
		for _, n := range iters {
			cfg := config.Default()
			cfg.ParticleCount = count
			cfg.MaxIterations = n
			cfg.Seed = 42

			runner := sim.NewRunner(cfg, sim.NewState(cfg), physics.New(cfg))
			runner.SetLogWriter(io.Discard)

			start := time.Now()
			result, err := runner.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.Iterations) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", count, n, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func gravityLabel(cfg *config.Config) string {
	if !cfg.EnableGravity {
		return "off"
	}
	return fmt.Sprintf("%.2f", cfg.GravityConstant)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
