package core

import (
	"math"
	"sort"

	"github.com/arjaygg/teampulse/schema"
)

// calcStats summarizes a sample. The median is the sorted sample's element
// at index n/2, which for even counts is the upper of the two middle
// values. Downstream comparisons depend on this exact rule; do not swap in
// an averaging median.
func calcStats(values []float64) schema.SampleStats {
	if len(values) == 0 {
		return schema.SampleStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return schema.SampleStats{
		Count:  len(sorted),
		Mean:   sum / float64(len(sorted)),
		Median: sorted[len(sorted)/2],
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// roundTo rounds a value to the given number of decimal places for output.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// pct converts a ratio to a percentage, guarding the zero denominator.
func pct(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}
