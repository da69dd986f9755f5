// Package testkit provides integrand fixtures with known closed forms, used
// by the CLI demo and by convergence tests as oracles.
package testkit

import (
	"govegas/domain/montecarlo"
)

// Poly is the reference integrand (x1+...+xd)*p + (x1^2+...+xd^2)*q.
// Over the unit cube in three dimensions its integral is (3/2)p + q,
// which is 1/4 for p = q = 0.1.
func Poly(x []float64, par montecarlo.Params) float64 {
	sum := 0.0
	sumSq := 0.0
	for _, v := range x {
		sum += v
		sumSq += v * v
	}
	return sum*par.P + sumSq*par.Q
}

// PolyExpected returns the analytic value of Poly's integral over dom:
// per dimension, the integral of x over [l,u] is (u^2-l^2)/2 and of x^2 is
// (u^3-l^3)/3, each multiplied by the volume of the remaining dimensions.
func PolyExpected(dom montecarlo.Domain, par montecarlo.Params) float64 {
	volume := dom.Volume()
	linear := 0.0
	square := 0.0
	for d := range dom.Lower {
		l, u := dom.Lower[d], dom.Upper[d]
		if u == l {
			return 0
		}
		side := u - l
		linear += volume / side * (u*u - l*l) / 2
		square += volume / side * (u*u*u - l*l*l) / 3
	}
	return linear*par.P + square*par.Q
}

// Constant returns an integrand fixed at c, whose integral is c times the
// domain volume and whose estimator variance is exactly zero.
func Constant(c float64) montecarlo.Integrand {
	return func(x []float64, par montecarlo.Params) float64 {
		return c
	}
}
