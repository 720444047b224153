package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Summary is the distributional summary shared by the statistics and
// sentiment records.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// summarize computes count, mean, population std, min, quartiles and max.
// An empty input yields Count 0 and NaN everywhere else.
func summarize(vals []float64) Summary {
	if len(vals) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Std: nan, Min: nan, P25: nan, Median: nan, P75: nan, Max: nan}
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s := Summary{Count: len(vals)}
	s.Mean, _ = stats.Mean(sorted)
	s.Std, _ = stats.StandardDeviationPopulation(sorted)
	s.Min, _ = stats.Min(sorted)
	s.Max, _ = stats.Max(sorted)
	s.P25 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.P75 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks of an already
// sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
