package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/ehrenfest/internal/ehrenfest"
	"github.com/lukaszgryglicki/ehrenfest/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if os.Getenv("PROFILE") != "" {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := ehrenfest.DefaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "ehrenfest",
		Short: "Energy quanta hopping on a 2D lattice, fitted to a Boltzmann distribution",
		Long: `ehrenfest moves single energy quanta between random sites of a square
lattice, then compares the initial and final occupation histograms and
fits C*exp(-E/T) to the final one.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configPath, flags)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "JSON or YAML config file; flags given explicitly override it")
	f.IntVar(&flags.LatticeSize, "lattice_size", flags.LatticeSize, "The size of the square 2D lattice.")
	f.StringVar(&flags.InitialDistribution, "initial_distribution", flags.InitialDistribution,
		"'random' populates every site with 0 or 1 at random, 'uniform' puts 1 on every site.")
	f.IntVar(&flags.Timesteps, "timesteps", flags.Timesteps, "The number of timesteps to run the simulation for.")
	f.Int64Var(&flags.Seed, "seed", flags.Seed, "Random seed (0 = time based).")
	f.StringVar(&flags.PlotOut, "plot", flags.PlotOut, "Summary figure PNG path (empty disables).")
	f.StringVar(&flags.GIFOut, "gif", flags.GIFOut, "Animated GIF of the lattice (empty disables).")
	f.StringVar(&flags.VideoOut, "video", flags.VideoOut, "MJPEG AVI of the lattice (empty disables).")
	f.IntVar(&flags.FrameEvery, "frame_every", flags.FrameEvery, "Hops between animation frames.")
	f.StringVar(&flags.PNGPrefix, "png", flags.PNGPrefix, "Prefix for 16-bit PNGs of the initial and final lattice.")
	f.StringVar(&flags.RawOut, "raw", flags.RawOut, "Raw int32 dump of the final lattice.")
	f.StringVar(&flags.LogLevel, "log_level", flags.LogLevel, "Log level: info, debug or trace.")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ehrenfest version %s\n", version)
		},
	}
}

// resolveConfig starts from the config file (or the defaults) and applies
// only the flags that were set on the command line.
func resolveConfig(cmd *cobra.Command, path string, flags *ehrenfest.Config) (*ehrenfest.Config, error) {
	if path == "" {
		cfg := *flags
		return &cfg, nil
	}
	cfg, err := ehrenfest.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	overrides := map[string]func(){
		"lattice_size":         func() { cfg.LatticeSize = flags.LatticeSize },
		"initial_distribution": func() { cfg.InitialDistribution = flags.InitialDistribution },
		"timesteps":            func() { cfg.Timesteps = flags.Timesteps },
		"seed":                 func() { cfg.Seed = flags.Seed },
		"plot":                 func() { cfg.PlotOut = flags.PlotOut },
		"gif":                  func() { cfg.GIFOut = flags.GIFOut },
		"video":                func() { cfg.VideoOut = flags.VideoOut },
		"frame_every":          func() { cfg.FrameEvery = flags.FrameEvery },
		"png":                  func() { cfg.PNGPrefix = flags.PNGPrefix },
		"raw":                  func() { cfg.RawOut = flags.RawOut },
		"log_level":            func() { cfg.LogLevel = flags.LogLevel },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return cfg, nil
}

func run(stdout, stderr io.Writer, cfg *ehrenfest.Config) error {
	logger := logging.NewLogger(cfg.LogLevel, stderr)
	ehrenfest.SetLogger(logger)
	ehrenfest.Debug = logging.ParseLevel(cfg.LogLevel) <= slog.LevelDebug

	if err := cfg.Validate(); err != nil {
		return err
	}
	rng, seed := ehrenfest.NewRand(cfg.Seed)
	logger.Info("starting simulation",
		"lattice_size", cfg.LatticeSize,
		"initial_distribution", cfg.InitialDistribution,
		"timesteps", cfg.Timesteps,
		"seed", seed)

	res, runErr := ehrenfest.Run(cfg, rng)
	if res == nil {
		return runErr
	}
	logger.Info("simulation finished",
		"quanta", res.Final.Total(),
		"hops", res.Stats.Hops,
		"self_hops", res.Stats.SelfHops,
		"rejected_draws", res.Stats.Rejected)
	logger.Info("histograms", "initial", fmt.Sprint(res.InitialHist), "final", fmt.Sprint(res.FinalHist))

	if err := ehrenfest.WriteOutputs(cfg, res); err != nil {
		logger.Error("writing outputs", "error", err)
		if runErr == nil {
			runErr = err
		}
	}
	if res.Fit != nil {
		printFit(stdout, res.Fit)
	}
	return runErr
}

func printFit(w io.Writer, fit *ehrenfest.FitResult) {
	fmt.Fprintf(w, "C = %.6g\n", fit.C)
	fmt.Fprintf(w, "T = %.6g\n", fit.T)
	fmt.Fprintf(w, "covariance:\n  [%.6g %.6g]\n  [%.6g %.6g]\n",
		fit.Cov.At(0, 0), fit.Cov.At(0, 1), fit.Cov.At(1, 0), fit.Cov.At(1, 1))
}
