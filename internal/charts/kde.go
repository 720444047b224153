package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// kde is a Gaussian kernel density estimate with Scott's bandwidth.
type kde struct {
	points    []float64
	bandwidth float64
}

// newKDE returns nil when the sample cannot support a density (fewer than two
// points or zero spread).
func newKDE(vals []float64) *kde {
	if len(vals) < 2 {
		return nil
	}
	sd := stat.StdDev(vals, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	bw := sd * math.Pow(float64(len(vals)), -0.2)
	return &kde{points: vals, bandwidth: bw}
}

// Density evaluates the estimate at x.
func (k *kde) Density(x float64) float64 {
	var sum float64
	for _, p := range k.points {
		sum += distuv.UnitNormal.Prob((x - p) / k.bandwidth)
	}
	return sum / (float64(len(k.points)) * k.bandwidth)
}

// sturges picks a histogram bin count for n observations.
func sturges(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}
