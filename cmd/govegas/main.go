package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"govegas/adapters/rng"
	"govegas/adapters/vegas"
	"govegas/app"
	"govegas/domain/montecarlo"
	"govegas/internal/config"
	"govegas/internal/testkit"
	"govegas/ports"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env if present; environment variables win over defaults.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		samples int
		workers int
		seed    int64
		p, q    float64
		lower   []float64
		upper   []float64
	)

	cmd := &cobra.Command{
		Use:   "govegas",
		Short: "Parallel adaptive Monte Carlo integration",
		Long: `Estimate the integral of (x1+...+xd)*p + (x1^2+...+xd^2)*q over an
axis-aligned box using VEGAS-style importance sampling, with the sample
budget split across parallel workers.

Example: govegas --samples 10000000 --p 0.1 --q 0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Flags override environment configuration.
			if cmd.Flags().Changed("samples") {
				cfg.Run.Samples = samples
			}
			if cmd.Flags().Changed("workers") {
				cfg.Run.Workers = workers
			}
			if cmd.Flags().Changed("seed") {
				cfg.Run.Seed = seed
			}
			if cmd.Flags().Changed("p") {
				cfg.Run.P = p
			}
			if cmd.Flags().Changed("q") {
				cfg.Run.Q = q
			}
			return run(cmd, cfg, lower, upper)
		},
	}

	cmd.Flags().IntVar(&samples, "samples", 10_000_000, "Total sample budget across all workers")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count (0 = one per execution unit)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Base seed for reproducible runs (0 = time-derived)")
	cmd.Flags().Float64Var(&p, "p", 0.1, "Linear coefficient of the demo integrand")
	cmd.Flags().Float64Var(&q, "q", 0.1, "Quadratic coefficient of the demo integrand")
	cmd.Flags().Float64SliceVar(&lower, "lower", []float64{0, 0, 0}, "Lower bounds, one per dimension")
	cmd.Flags().Float64SliceVar(&upper, "upper", []float64{1, 1, 1}, "Upper bounds, one per dimension")

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, lower, upper []float64) error {
	logger := newLogger(cfg.Log.Level)

	dom := montecarlo.Domain{Lower: lower, Upper: upper}
	dim := len(lower)
	par := montecarlo.Params{P: cfg.Run.P, Q: cfg.Run.Q}

	var seeds ports.SeedSource = rng.NewTimeSeeder()
	if cfg.Run.Seed != 0 {
		seeds = rng.NewFixedSeeder(cfg.Run.Seed)
	}
	sampler := vegas.New(vegas.Options{
		Bins:       cfg.Sampler.Bins,
		Iterations: cfg.Sampler.Iterations,
		Alpha:      cfg.Sampler.Alpha,
	})
	workers := cfg.Run.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	it := app.NewIntegrator(workers, sampler, seeds, logger)

	logger.Info("starting integration",
		"dim", dim, "samples", cfg.Run.Samples, "workers", workers,
		"p", par.P, "q", par.Q)

	start := time.Now()
	result, err := it.Integrate(cmd.Context(), app.Request{
		Domain:       dom,
		Dim:          dim,
		Integrand:    testkit.Poly,
		Params:       par,
		TotalSamples: cfg.Run.Samples,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Expected: %.9f\n", testkit.PolyExpected(dom, par))
	fmt.Printf("Result:   %.9f\n", result.Mean)
	fmt.Printf("Error:    %.3e\n", result.Err)
	fmt.Printf("Time:     %s\n", elapsed)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
}
