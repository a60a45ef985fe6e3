package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/isingsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	dimArg     string
	beta       float64
	coupling   float64
	field      float64
	seed       int64
	sweeps     int
	source     string
	configFile string
	preset     string
	dumpDir    string
	save       bool
	replicas   int
	moviePath  string
	movieFPS   int
	// live view
	frameRate int
	theme     string
	// bench
	benchSizes  []int
	benchSweeps int
	chartPath   string

	logOutput io.Writer = os.Stderr
	logger              = log.New(logOutput)
)

// main registers the commands and exits with status 1 when a command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ising",
		Short: "2D Ising model Metropolis simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isingsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [dim]",
		Short: "sweep a lattice and report the stepping time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addParamFlags(runCmd)
	runCmd.Flags().IntVar(&sweeps, "sweeps", config.DefaultSweeps, "number of sweeps (dim*dim steps each)")
	runCmd.Flags().StringVar(&dumpDir, "dump", "", "write init/final snapshots to this directory")
	runCmd.Flags().BoolVar(&save, "save", false, "record the run under the data directory")
	runCmd.Flags().IntVar(&replicas, "replicas", 1, "independent lattices to sweep in parallel")
	runCmd.Flags().StringVar(&moviePath, "movie", "", "record one frame per sweep to this AVI file")
	runCmd.Flags().IntVar(&movieFPS, "movie-fps", 10, "movie frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time sweeps across lattice sizes",
		Args:  cobra.NoArgs,
		RunE:  benchSizesCmd,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{8, 16, 32, 64, 128}, "lattice dimensions")
	benchCmd.Flags().IntVar(&benchSweeps, "sweeps", 10, "sweeps per size")
	benchCmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "inverse temperature")
	benchCmd.Flags().StringVar(&source, "source", config.DefaultSource, "random source")
	benchCmd.Flags().StringVar(&chartPath, "chart", "", "write a PNG chart of us/step to this file")

	liveCmd := &cobra.Command{
		Use:   "live [dim]",
		Short: "watch the lattice evolve in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every entry of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&save, "save", false, "record each run under the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, benchCmd, liveCmd, batchCmd, listCmd, exportCmd, presetsCmd, configCmd)
	return rootCmd
}

// addParamFlags binds the lattice flags shared by run and live.
func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dimArg, "dim", fmt.Sprint(config.DefaultDim), "lattice dimension")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "inverse temperature")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling constant J")
	cmd.Flags().Float64Var(&field, "field", config.DefaultField, "magnetic field (stored, not used by the energy)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&source, "source", config.DefaultSource, "random source (pcg, chacha8)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func newLogger(debug bool) *log.Logger {
	l := log.NewWithOptions(logOutput, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "ising",
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}
