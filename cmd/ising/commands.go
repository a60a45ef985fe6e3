package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/isingsim/internal/batch"
	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/export"
	"github.com/san-kum/isingsim/internal/ising"
	"github.com/san-kum/isingsim/internal/storage"
	"github.com/san-kum/isingsim/internal/viz"
	"github.com/spf13/cobra"
)

const svgScale = 8.0

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	if replicas < 1 {
		return fmt.Errorf("replicas must be at least 1, got %d", replicas)
	}

	registry := experiment.NewRegistry()
	ecfg := experimentConfig(cfg)

	if replicas > 1 {
		return runReplicas(cmd, ecfg, registry)
	}

	exp := experiment.New(ecfg, logger)
	if err := exp.Setup(registry); err != nil {
		return err
	}
	initRows := exp.Ensemble().Rows()

	var movie *export.Movie
	if moviePath != "" {
		movie, err = export.NewMovie(moviePath, ecfg.Dim, movieScale(ecfg.Dim), movieFPS)
		if err != nil {
			return err
		}
		if err := movie.AddFrame(initRows); err != nil {
			movie.Close()
			return err
		}
		exp.AddObserver(movie)
	}
	if verbose {
		exp.AddObserver(experiment.ObserverFunc(func(sweep int, e *ising.Ensemble, elapsed time.Duration) {
			logger.Debug("sweep done", "sweep", sweep, "elapsed", elapsed)
		}))
	}

	result, err := exp.Run(cmd.Context())
	if movie != nil {
		if cerr := movie.Close(); cerr != nil && err == nil {
			err = cerr
		}
		logger.Info("movie written", "path", moviePath, "frames", movie.Frames())
	}
	if err != nil {
		logger.Error("run aborted", "err", err)
		return err
	}

	fmt.Printf("Total Duration: %d us for %d steps\n", result.Elapsed.Microseconds(), result.Steps)
	logger.Debug("final state", "energy", exp.Ensemble().StateEnergy())

	finalRows := exp.Ensemble().Rows()
	if dumpDir != "" {
		if err := writeSnapshots(dumpDir, initRows, finalRows); err != nil {
			return err
		}
		logger.Info("snapshots written", "dir", dumpDir)
	}

	if save {
		runID, err := saveRun(exp.Config(), result.Sweeps, result.Steps, 0, result.Elapsed)
		if err != nil {
			return err
		}
		st := storage.New(dataDir)
		if err := writeSnapshots(st.RunDir(runID), initRows, finalRows); err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println(summary(exp.Config(), result))
	return nil
}

func runReplicas(cmd *cobra.Command, cfg experiment.Config, registry *experiment.Registry) error {
	logger.Debug("running replicas", "n", replicas, "dim", cfg.Dim, "seed", cfg.Seed)
	if moviePath != "" {
		logger.Warn("--movie is ignored with --replicas")
	}

	ensembles, elapsed, err := experiment.RunReplicas(cmd.Context(), cfg, registry, replicas)
	if err != nil {
		logger.Error("replicas aborted", "err", err)
		return err
	}

	steps := len(ensembles) * cfg.Sweeps * cfg.Dim * cfg.Dim
	fmt.Printf("Total Duration: %d us for %d steps\n", elapsed.Microseconds(), steps)

	if dumpDir != "" {
		if err := writeReplicaSnapshots(dumpDir, ensembles); err != nil {
			return err
		}
		logger.Info("snapshots written", "dir", dumpDir, "replicas", len(ensembles))
	}

	if save {
		runID, err := saveRun(cfg, cfg.Sweeps, steps, len(ensembles), elapsed)
		if err != nil {
			return err
		}
		if err := writeReplicaSnapshots(storage.New(dataDir).RunDir(runID), ensembles); err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

// writeReplicaSnapshots writes final_<k>.txt for replica k.
func writeReplicaSnapshots(dir string, ensembles []*ising.Ensemble) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for k, e := range ensembles {
		path := filepath.Join(dir, fmt.Sprintf("final_%d.txt", k))
		if err := export.WriteStateFile(path, e.Rows()); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshots(dir string, initRows, finalRows [][]ising.Spin) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := export.WriteStateFile(filepath.Join(dir, "init.txt"), initRows); err != nil {
		return err
	}
	if err := export.WriteStateFile(filepath.Join(dir, "final.txt"), finalRows); err != nil {
		return err
	}
	return export.WriteSVGFile(filepath.Join(dir, "final.svg"), finalRows, svgScale)
}

// movieScale keeps frames around 512 pixels wide.
func movieScale(dim int) int {
	if dim >= 512 {
		return 1
	}
	return 512 / dim
}

func saveRun(cfg experiment.Config, sweeps, steps, n int, elapsed time.Duration) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.RunMetadata{
		Dim:           cfg.Dim,
		Seed:          cfg.Seed,
		Source:        cfg.Source,
		CouplingConst: cfg.Params.CouplingConst,
		Beta:          cfg.Params.Beta,
		MagField:      cfg.Params.MagField,
		Sweeps:        sweeps,
		Steps:         steps,
		Replicas:      n,
		ElapsedMicros: elapsed.Microseconds(),
	})
}

func summary(cfg experiment.Config, result *experiment.Result) string {
	lines := []string{
		viz.GradientText(fmt.Sprintf("ISING %dx%d", cfg.Dim, cfg.Dim), viz.CurrentTheme.Up, viz.CurrentTheme.Accent),
		"",
		viz.Metric("coupling J", fmt.Sprintf("%.4f", cfg.Params.CouplingConst)),
		viz.Metric("beta", fmt.Sprintf("%.4f", cfg.Params.Beta)),
		viz.Metric("field h", fmt.Sprintf("%.4f", cfg.Params.MagField)),
		viz.Metric("source", fmt.Sprintf("%s (seed %d)", cfg.Source, cfg.Seed)),
		viz.Metric("sweeps", fmt.Sprintf("%d", result.Sweeps)),
		viz.Metric("steps/sec", fmt.Sprintf("%.0f", result.StepsPerSecond())),
	}
	return viz.GlassPanel.Render(strings.Join(lines, "\n"))
}

func benchSizesCmd(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	fmt.Printf("benchmarking %d sizes, %d sweeps each\n\n", len(benchSizes), benchSweeps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIM\tSTEPS\tTIME\tUS/STEP\tSTEPS/SEC\tSWEEP MEAN\tSWEEP SD")

	perStep := make([]float64, 0, len(benchSizes))
	for _, dim := range benchSizes {
		cfg := experiment.Config{
			Dim:    dim,
			Params: ising.Params{CouplingConst: config.DefaultCoupling, Beta: beta, MagField: config.DefaultField},
			Seed:   42,
			Source: source,
			Sweeps: benchSweeps,
		}

		exp := experiment.New(cfg, logger)
		if err := exp.Setup(registry); err != nil {
			return err
		}
		result, err := exp.Run(cmd.Context())
		if err != nil {
			return err
		}

		us := 0.0
		if result.Steps > 0 {
			us = float64(result.Elapsed.Microseconds()) / float64(result.Steps)
		}
		perStep = append(perStep, us)

		mean, sd := result.SweepStats()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.4f\t%.0f\t%v\t%v\n",
			dim,
			result.Steps,
			result.Elapsed.Round(time.Microsecond),
			us,
			result.StepsPerSecond(),
			mean.Round(time.Microsecond),
			sd.Round(time.Microsecond),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(perStep) >= 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(perStep,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("us/step by size"),
		))
	}

	if chartPath != "" {
		if err := writeChartFile(chartPath, benchSizes, perStep); err != nil {
			return err
		}
		logger.Info("chart written", "path", chartPath)
	}
	return nil
}

func writeChartFile(path string, dims []int, usPerStep []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteBenchChart(f, dims, usPerStep); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	model, err := newLiveModel(cfg)
	if err != nil {
		return err
	}
	logger.Debug("starting live view", "dim", cfg.Dim, "beta", cfg.Params.Beta, "seed", cfg.Seed)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.LiveModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// newLiveModel builds the live view for a resolved configuration. Reset
// rebuilds from the same seed.
func newLiveModel(cfg *config.Config) (viz.LiveModel, error) {
	build, err := experiment.NewRegistry().Builder(cfg.Source, cfg.Dim, cfg.IsingParams())
	if err != nil {
		return viz.LiveModel{}, err
	}
	return viz.NewLiveModel(func() *ising.Ensemble { return build(cfg.Seed) }, frameRate), nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := batch.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%d runs)\n", scenario.Name, len(scenario.Runs))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	outcomes, runErr := batch.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(), logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tJ\tBETA\tSWEEPS\tSTEPS\tTIME")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.4f\t%d\t%d\t%dus\n",
			o.Run.Name,
			o.Config.Dim,
			o.Config.Params.CouplingConst,
			o.Config.Params.Beta,
			o.Result.Sweeps,
			o.Result.Steps,
			o.Result.Elapsed.Microseconds(),
		)
		if save {
			runID, err := saveRun(o.Config, o.Result.Sweeps, o.Result.Steps, 0, o.Result.Elapsed)
			if err != nil {
				return err
			}
			logger.Info("run saved", "name", o.Run.Name, "id", runID)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if runErr != nil {
		logger.Error("scenario stopped", "err", runErr)
	}
	return runErr
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
	fmt.Fprintln(w, "ID\tTIME\tDIM\tJ\tBETA\tSWEEPS\tSTEPS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.4f\t%d\t%d\t%dus\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dim,
			run.CouplingConst,
			run.Beta,
			run.Sweeps,
			run.Steps,
			run.ElapsedMicros,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("load run %s: %w", args[0], err)
	}
	return storage.ExportJSON(os.Stdout, meta)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDIM\tJ\tBETA\tSWEEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.4f\t%d\n", name, p.Dim, p.Params.CouplingConst, p.Params.Beta, p.Sweeps)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
