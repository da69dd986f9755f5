package ports

import (
	"context"
	"math/rand"

	"govegas/domain/montecarlo"
)

// Sampler estimates the integral of f over dom using a fixed evaluation
// budget, returning the point estimate and its standard error.
//
// Implementations must validate the domain against dim before drawing any
// sample, must not mutate dom or par, and must consume randomness only from
// rng so that runs are reproducible for a fixed seed.
type Sampler interface {
	Integrate(ctx context.Context, f montecarlo.Integrand, dom montecarlo.Domain, dim int, par montecarlo.Params, calls int, rng *rand.Rand) (montecarlo.Estimate, error)
}
