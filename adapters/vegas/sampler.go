// Package vegas implements adaptive importance-sampling Monte Carlo
// integration over an axis-aligned box.
//
// The sampler stratifies each dimension into bins and draws points with
// probability proportional to the current bin widths. After every pass the
// bin edges are re-partitioned so each bin captures roughly the same share
// of the estimated variance, concentrating samples where the integrand
// contributes most without the caller knowing its shape in advance. Pass
// estimates are pooled by inverse-variance weighting, so the standard error
// shrinks roughly as 1/sqrt(n) for bounded integrands.
package vegas

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"govegas/domain/core"
	"govegas/domain/montecarlo"
)

// Variance floor for a pass whose samples all agree (constant integrand).
// Keeps the inverse-variance pooling finite while driving the reported
// error toward zero.
const minVariance = 1e-300

// Options control the stratification grid and refinement schedule.
type Options struct {
	Bins       int     // bins per dimension
	Iterations int     // refinement passes over the budget
	Alpha      float64 // refinement damping; higher follows tallies harder
}

// DefaultOptions returns the grid configuration used when options are zero.
func DefaultOptions() Options {
	return Options{Bins: 50, Iterations: 5, Alpha: 1.5}
}

// Sampler is an adaptive stratified Monte Carlo integrator. It is stateless
// between calls; all grid and accumulator state is created per Integrate
// call and released when it returns, so one Sampler may serve many workers.
type Sampler struct {
	opts Options
}

// New creates a sampler, filling zero option fields with defaults.
func New(opts Options) *Sampler {
	def := DefaultOptions()
	if opts.Bins <= 0 {
		opts.Bins = def.Bins
	}
	if opts.Iterations <= 0 {
		opts.Iterations = def.Iterations
	}
	if opts.Alpha <= 0 {
		opts.Alpha = def.Alpha
	}
	return &Sampler{opts: opts}
}

// MinCalls returns the practical minimum budget for the given dimension:
// enough samples for the grid to see every bin twice, and for every pass to
// estimate a variance.
func (s *Sampler) MinCalls(dim int) int {
	m := 2 * s.opts.Bins * dim
	if p := 2 * s.opts.Iterations; p > m {
		m = p
	}
	return m
}

// Integrate estimates the integral of f over dom with the given evaluation
// budget. calls is split evenly across refinement passes; the remainder is
// not spent. The domain and params are never mutated and randomness is
// consumed only from rng.
func (s *Sampler) Integrate(ctx context.Context, f montecarlo.Integrand, dom montecarlo.Domain, dim int, par montecarlo.Params, calls int, rng *rand.Rand) (montecarlo.Estimate, error) {
	if err := dom.Validate(dim); err != nil {
		return montecarlo.Estimate{}, err
	}
	if min := s.MinCalls(dim); calls < min {
		return montecarlo.Estimate{}, core.NewBudgetError(calls, min)
	}

	span := make([]float64, dim)
	volume := 1.0
	for d := 0; d < dim; d++ {
		span[d] = dom.Upper[d] - dom.Lower[d]
		volume *= span[d]
	}

	g := newGrid(dim, s.opts.Bins)
	perPass := calls / s.opts.Iterations

	x := make([]float64, dim)
	y := make([]float64, dim)
	idx := make([]int, dim)

	wSum := 0.0 // sum of inverse pass variances
	mSum := 0.0 // sum of pass means over pass variances
	samples := 0

	for pass := 0; pass < s.opts.Iterations; pass++ {
		// Fail fast when the surrounding fan-out has already been
		// cancelled by a sibling worker.
		if err := ctx.Err(); err != nil {
			return montecarlo.Estimate{}, err
		}

		sum := 0.0
		sumSq := 0.0
		for i := 0; i < perPass; i++ {
			jac := g.point(rng, y, idx)
			for d := 0; d < dim; d++ {
				x[d] = dom.Lower[d] + span[d]*y[d]
			}
			v := f(x, par) * jac * volume
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return montecarlo.Estimate{}, fmt.Errorf("integrand produced non-finite value at %v", x)
			}
			sq := v * v
			sum += v
			sumSq += sq
			g.accumulate(idx, sq)
		}

		m := float64(perPass)
		mean := sum / m
		variance := (sumSq/m - mean*mean) / (m - 1)
		if variance < minVariance {
			variance = minVariance
		}
		wSum += 1 / variance
		mSum += mean / variance
		samples += perPass

		if pass < s.opts.Iterations-1 {
			g.refine(s.opts.Alpha)
		}
	}

	return montecarlo.Estimate{
		Mean:    mSum / wSum,
		Err:     math.Sqrt(1 / wSum),
		Samples: samples,
	}, nil
}
