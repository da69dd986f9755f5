package montecarlo

import (
	"govegas/domain/core"
)

// Params is the fixed coefficient record consumed by an Integrand. It is
// passed by value into every call and never mutated during integration.
type Params struct {
	P float64
	Q float64
}

// Integrand is a pure scalar function over a point in R^d. Implementations
// must be safe for concurrent use: every worker calls the same function.
type Integrand func(x []float64, par Params) float64

// Domain is an axis-aligned integration box: one (lower, upper) pair per
// dimension.
type Domain struct {
	Lower []float64
	Upper []float64
}

// NewUnitCube returns the [0,1]^dim domain.
func NewUnitCube(dim int) Domain {
	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := range upper {
		upper[i] = 1
	}
	return Domain{Lower: lower, Upper: upper}
}

// Validate checks the caller contract: both bound vectors must have exactly
// dim components, and no lower bound may exceed its paired upper bound.
// INVARIANTS:
// - len(Lower) == len(Upper) == dim
// - Lower[i] <= Upper[i] for every i
func (d Domain) Validate(dim int) error {
	if dim < 1 {
		return core.NewInvalidDimensionError(dim, len(d.Lower))
	}
	if len(d.Lower) != dim {
		return core.NewInvalidDimensionError(dim, len(d.Lower))
	}
	if len(d.Upper) != dim {
		return core.NewInvalidDimensionError(dim, len(d.Upper))
	}
	for i := range d.Lower {
		if d.Lower[i] > d.Upper[i] {
			return core.NewInvalidDomainError(i, d.Lower[i], d.Upper[i])
		}
	}
	return nil
}

// Volume returns the product of the side lengths.
func (d Domain) Volume() float64 {
	v := 1.0
	for i := range d.Lower {
		v *= d.Upper[i] - d.Lower[i]
	}
	return v
}

// Estimate is an immutable (mean, standard error) pair produced by one
// worker's completed run, or by combining several of them. Samples records
// how many integrand evaluations backed the estimate; a zero-sample estimate
// carries no information.
type Estimate struct {
	Mean    float64
	Err     float64
	Samples int
}
