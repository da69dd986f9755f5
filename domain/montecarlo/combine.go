package montecarlo

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Combine merges independent equal-budget worker estimates into one.
//
// The combined mean is the plain arithmetic mean of the worker means, and the
// combined error is sqrt(sum of squared worker errors) / W. Equal-budget
// workers are assumed to have comparable precision, so no inverse-variance
// weighting is applied. Zero-sample estimates contribute no information and
// are excluded from both W and the sums.
func Combine(estimates []Estimate) Estimate {
	means := make([]float64, 0, len(estimates))
	sumSq := 0.0
	samples := 0
	for _, e := range estimates {
		if e.Samples == 0 {
			continue
		}
		means = append(means, e.Mean)
		sumSq += e.Err * e.Err
		samples += e.Samples
	}
	if len(means) == 0 {
		return Estimate{}
	}

	mean, _ := stats.Mean(means)
	w := float64(len(means))
	return Estimate{
		Mean:    mean,
		Err:     math.Sqrt(sumSq) / w,
		Samples: samples,
	}
}
