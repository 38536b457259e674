package aggregate

import (
	"math"
	"sort"

	"flightdash/domain/core"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PriceBins is the bin count of the dashboard price histogram
const PriceBins = 50

// Bin is one equal-width histogram bucket [Lower, Upper). The last bin
// also holds the maximum.
type Bin struct {
	Lower core.Float `json:"lower"`
	Upper core.Float `json:"upper"`
	Count int        `json:"count"`
	// Height is Count relative to the tallest bin, in percent
	Height    float64 `json:"height"`
	HasMean   bool    `json:"has_mean"`
	HasMedian bool    `json:"has_median"`
}

// Distribution is a histogram with the mean and median marked
type Distribution struct {
	Bins   []Bin      `json:"bins"`
	Mean   core.Float `json:"mean"`
	Median core.Float `json:"median"`
	N      int        `json:"n"`
}

// Histogram splits values into bins equal-width buckets spanning
// [min, max]. A constant series gets one unit-wide range around its value.
func Histogram(values []float64, bins int) Distribution {
	d := Distribution{Mean: core.Undefined(), Median: core.Undefined(), N: len(values)}
	if len(values) == 0 || bins < 1 {
		return d
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram treats the last divider as exclusive
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	if mean, err := stats.Mean(sorted); err == nil {
		d.Mean = core.Float(mean)
	}
	if median, err := stats.Median(sorted); err == nil {
		d.Median = core.Float(median)
	}

	tallest := floats.Max(counts)
	d.Bins = make([]Bin, bins)
	for i, c := range counts {
		upper := dividers[i+1]
		if i == bins-1 {
			upper = hi
		}
		b := Bin{Lower: core.Float(dividers[i]), Upper: core.Float(upper), Count: int(c)}
		if tallest > 0 {
			b.Height = c / tallest * 100
		}
		b.HasMean = binHolds(dividers, i, float64(d.Mean))
		b.HasMedian = binHolds(dividers, i, float64(d.Median))
		d.Bins[i] = b
	}
	return d
}

func binHolds(dividers []float64, i int, v float64) bool {
	return v >= dividers[i] && v < dividers[i+1]
}
