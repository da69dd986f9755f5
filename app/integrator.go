// Package app wires the adaptive sampler and seed source into the parallel
// integration service.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"govegas/adapters/rng"
	"govegas/adapters/vegas"
	"govegas/domain/core"
	"govegas/domain/montecarlo"
	"govegas/ports"
)

// Request describes one integration call.
type Request struct {
	Domain       montecarlo.Domain
	Dim          int
	Integrand    montecarlo.Integrand
	Params       montecarlo.Params
	TotalSamples int
}

// Integrator fans one integration call out over independent workers and
// combines their estimates. It holds no per-call state: every Integrate is a
// one-shot fork-join whose streams and grids are released at the join.
type Integrator struct {
	workers int
	sampler ports.Sampler
	seeds   ports.SeedSource
	log     *slog.Logger
}

// NewIntegrator creates the service. workers must be at least 1; Integrate
// reports ErrNoWorkers otherwise. A nil logger disables logging.
func NewIntegrator(workers int, sampler ports.Sampler, seeds ports.SeedSource, log *slog.Logger) *Integrator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Integrator{
		workers: workers,
		sampler: sampler,
		seeds:   seeds,
		log:     log,
	}
}

// Integrate estimates the integral described by req.
//
// Each worker receives TotalSamples/workers evaluations (the remainder is a
// documented rounding loss, not an error) and an independent random stream.
// Workers given a zero budget contribute no information. Any worker failure,
// including a panicking integrand, cancels the remaining workers and fails
// the whole call; there is no partial result.
func (it *Integrator) Integrate(ctx context.Context, req Request) (montecarlo.Estimate, error) {
	if it.workers < 1 {
		return montecarlo.Estimate{}, core.ErrNoWorkers
	}
	if req.Integrand == nil {
		return montecarlo.Estimate{}, fmt.Errorf("integrand must not be nil")
	}
	// Contract checks surface before any sampling happens.
	if err := req.Domain.Validate(req.Dim); err != nil {
		return montecarlo.Estimate{}, err
	}
	if req.TotalSamples < 1 {
		return montecarlo.Estimate{}, core.NewBudgetError(req.TotalSamples, 1)
	}

	runID := core.NewRunID()
	start := time.Now()
	perWorker := req.TotalSamples / it.workers

	results := make([]montecarlo.Estimate, it.workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < it.workers; w++ {
		w := w
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = core.NewWorkerError(w, fmt.Errorf("integrand panicked: %v", r))
				}
			}()
			if perWorker == 0 {
				// Degenerate sub-budget; the slot stays a zero-sample
				// estimate and is excluded from combination.
				return nil
			}
			est, serr := it.sampler.Integrate(gctx, req.Integrand, req.Domain, req.Dim, req.Params, perWorker, it.seeds.Stream(w))
			if serr != nil {
				return core.NewWorkerError(w, serr)
			}
			results[w] = est
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return montecarlo.Estimate{}, err
	}

	combined := montecarlo.Combine(results)
	it.log.Info("integration complete",
		"run_id", runID,
		"workers", it.workers,
		"samples", combined.Samples,
		"mean", combined.Mean,
		"stderr", combined.Err,
		"elapsed", time.Since(start),
	)
	return combined, nil
}

// Integrate runs one integration with the default stack: one worker per
// available execution unit, the VEGAS sampler, and time-derived seeds.
func Integrate(ctx context.Context, dom montecarlo.Domain, dim int, f montecarlo.Integrand, par montecarlo.Params, totalSamples int) (montecarlo.Estimate, error) {
	it := NewIntegrator(runtime.NumCPU(), vegas.New(vegas.Options{}), rng.NewTimeSeeder(), nil)
	return it.Integrate(ctx, Request{
		Domain:       dom,
		Dim:          dim,
		Integrand:    f,
		Params:       par,
		TotalSamples: totalSamples,
	})
}
