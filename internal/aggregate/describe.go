package aggregate

import (
	"math"
	"sort"

	"flightdash/domain/core"
	"flightdash/domain/flight"

	"github.com/montanaflynn/stats"
)

// Quantile returns the p-quantile (0 ≤ p ≤ 1) using linear interpolation
// between closest ranks: h = (n-1)p, x[⌊h⌋] + (h-⌊h⌋)(x[⌊h⌋+1]-x[⌊h⌋]).
// values need not be sorted. NaN for an empty input.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 || p < 0 || p > 1 {
		return nan()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return quantileSorted(sorted, p)
}

func quantileSorted(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Description mirrors a spreadsheet-style describe() of one numeric column
// plus dispersion and shape measures.
type Description struct {
	Field    flight.Field `json:"field"`
	Count    int          `json:"count"`
	Mean     core.Float   `json:"mean"`
	Std      core.Float   `json:"std"`
	Min      core.Float   `json:"min"`
	Q1       core.Float   `json:"q1"`
	Median   core.Float   `json:"median"`
	Q3       core.Float   `json:"q3"`
	Max      core.Float   `json:"max"`
	Variance core.Float   `json:"variance"`
	// CV is the coefficient of variation in percent
	CV       core.Float `json:"cv"`
	Mode     core.Float `json:"mode"`
	Skewness core.Float `json:"skewness"`
	Kurtosis core.Float `json:"kurtosis"`
}

// Describe computes the description of values
func Describe(field flight.Field, values []float64) Description {
	d := Description{
		Field: field, Count: len(values),
		Mean: core.Undefined(), Std: core.Undefined(), Min: core.Undefined(),
		Q1: core.Undefined(), Median: core.Undefined(), Q3: core.Undefined(),
		Max: core.Undefined(), Variance: core.Undefined(), CV: core.Undefined(),
		Mode: core.Undefined(), Skewness: core.Undefined(), Kurtosis: core.Undefined(),
	}
	if len(values) == 0 {
		return d
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean, _ := stats.Mean(sorted)
	d.Mean = core.Float(mean)
	d.Min = core.Float(sorted[0])
	d.Max = core.Float(sorted[len(sorted)-1])
	d.Q1 = core.Float(quantileSorted(sorted, 0.25))
	d.Median = core.Float(quantileSorted(sorted, 0.5))
	d.Q3 = core.Float(quantileSorted(sorted, 0.75))

	if len(sorted) > 1 {
		variance, _ := stats.SampleVariance(sorted)
		d.Variance = core.Float(variance)
		d.Std = core.Float(math.Sqrt(variance))
		if mean != 0 {
			d.CV = core.Float(math.Sqrt(variance) / mean * 100)
		}
	}

	if modes, err := stats.Mode(sorted); err == nil && len(modes) > 0 {
		d.Mode = core.Float(modes[0])
	}

	skew, kurt := shape(sorted, mean)
	d.Skewness = core.Float(skew)
	d.Kurtosis = core.Float(kurt)
	return d
}

// shape returns the biased sample skewness g1 = m3/m2^1.5 and excess
// kurtosis g2 = m4/m2² - 3 from central moments.
func shape(values []float64, mean float64) (float64, float64) {
	var m2, m3, m4 float64
	for _, v := range values {
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	n := float64(len(values))
	m2, m3, m4 = m2/n, m3/n, m4/n
	if m2 == 0 {
		return nan(), nan()
	}
	return m3 / math.Pow(m2, 1.5), m4/(m2*m2) - 3
}

// SkewLabel interprets a skewness value
func SkewLabel(skew core.Float) string {
	switch {
	case !skew.Defined():
		return "undefined"
	case skew > 0.5:
		return "right-skewed"
	case skew < -0.5:
		return "left-skewed"
	}
	return "approximately symmetric"
}

// KurtosisLabel interprets an excess kurtosis value
func KurtosisLabel(kurt core.Float) string {
	switch {
	case !kurt.Defined():
		return "undefined"
	case kurt > 0:
		return "more peaked than normal"
	}
	return "flatter than normal"
}

// VariabilityLabel interprets a coefficient of variation in percent
func VariabilityLabel(cv core.Float) string {
	switch {
	case !cv.Defined():
		return "undefined"
	case cv > 30:
		return "high variability"
	case cv > 15:
		return "moderate variability"
	}
	return "low variability"
}

// DescribeTable describes each numeric field of the table
func DescribeTable(table *flight.Table, fields []flight.Field) []Description {
	out := make([]Description, 0, len(fields))
	for _, f := range fields {
		out = append(out, Describe(f, table.Values(f)))
	}
	return out
}
