package fundamentals

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Cagr returns the compound annual growth rate as a percentage. Non
// positive endpoints have no defined growth rate and yield NaN.
func Cagr(start, end float64, periods int) float64 {
	if start <= 0 || end <= 0 || periods <= 0 {
		return math.NaN()
	}
	return (math.Pow(end/start, 1/float64(periods)) - 1) * 100
}

// MeanOfValid averages the non-NaN entries, requiring at least minN of
// them. Sparse or degenerate windows return -1 so downstream consumers
// can tell "not enough data" apart from a genuine value.
func MeanOfValid(values []float64, minN int) float64 {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	mean, err := stats.Mean(valid)
	if err != nil || math.IsNaN(mean) || len(valid) < minN {
		return -1
	}
	return mean
}
