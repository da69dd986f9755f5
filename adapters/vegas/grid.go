package vegas

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// grid is the per-dimension stratification of the unit cube. Bin edges live
// in normalized [0,1] coordinates; mapping to the real domain happens in the
// sampler. tally accumulates squared weighted contributions per bin, which
// refine redistributes into new edges.
type grid struct {
	bins  int
	edges [][]float64 // per dimension, bins+1 monotone edges in [0,1]
	tally [][]float64 // per dimension, bins accumulators
}

func newGrid(dim, bins int) *grid {
	g := &grid{
		bins:  bins,
		edges: make([][]float64, dim),
		tally: make([][]float64, dim),
	}
	for d := 0; d < dim; d++ {
		g.edges[d] = make([]float64, bins+1)
		g.tally[d] = make([]float64, bins)
		for j := 0; j <= bins; j++ {
			g.edges[d][j] = float64(j) / float64(bins)
		}
	}
	return g
}

// point draws one stratified sample into y (normalized coordinates) and
// records the chosen bin per dimension in idx. The returned jacobian is the
// importance weight of the draw relative to uniform sampling of the cube.
func (g *grid) point(rng *rand.Rand, y []float64, idx []int) float64 {
	jac := 1.0
	for d := range g.edges {
		u := rng.Float64() * float64(g.bins)
		j := int(u)
		if j >= g.bins {
			j = g.bins - 1
		}
		lo := g.edges[d][j]
		width := g.edges[d][j+1] - lo
		y[d] = lo + (u-float64(j))*width
		jac *= width * float64(g.bins)
		idx[d] = j
	}
	return jac
}

// accumulate records the squared weighted sample value into the bin each
// dimension drew from.
func (g *grid) accumulate(idx []int, sq float64) {
	for d, j := range idx {
		g.tally[d][j] += sq
	}
}

// refine moves bin edges so each bin holds an equal share of the damped,
// smoothed variance contribution, then clears the tallies for the next pass.
// alpha controls how aggressively the grid follows the tallies.
func (g *grid) refine(alpha float64) {
	smoothed := make([]float64, g.bins)
	weights := make([]float64, g.bins)
	newEdges := make([]float64, g.bins+1)

	for d := range g.edges {
		t := g.tally[d]

		// Neighbor smoothing keeps one noisy bin from distorting the grid.
		if g.bins > 1 {
			smoothed[0] = (t[0] + t[1]) / 2
			for j := 1; j < g.bins-1; j++ {
				smoothed[j] = (t[j-1] + t[j] + t[j+1]) / 3
			}
			smoothed[g.bins-1] = (t[g.bins-2] + t[g.bins-1]) / 2
		} else {
			smoothed[0] = t[0]
		}

		total := floats.Sum(smoothed)
		if total <= 0 {
			// Nothing accumulated in this dimension; keep the current edges.
			clear(t)
			continue
		}

		sumW := 0.0
		for j := range smoothed {
			frac := smoothed[j] / total
			switch {
			case frac <= 0:
				weights[j] = 0
			case frac >= 1:
				weights[j] = 1
			default:
				weights[j] = math.Pow((frac-1)/math.Log(frac), alpha)
			}
			sumW += weights[j]
		}
		if sumW <= 0 {
			clear(t)
			continue
		}

		// Walk the old bins, cutting a new edge every sumW/bins of weight.
		per := sumW / float64(g.bins)
		newEdges[0] = 0
		newEdges[g.bins] = 1
		k := 0
		acc := 0.0
		for j := 1; j < g.bins; j++ {
			target := per * float64(j)
			for acc+weights[k] < target {
				acc += weights[k]
				k++
			}
			delta := 0.0
			if weights[k] > 0 {
				delta = (target - acc) / weights[k]
			}
			newEdges[j] = g.edges[d][k] + delta*(g.edges[d][k+1]-g.edges[d][k])
		}
		copy(g.edges[d], newEdges)
		clear(t)
	}
}
