package inference

import (
	"math"
	"sort"

	"flightdash/domain/flight"
	"flightdash/internal/aggregate"

	"github.com/montanaflynn/stats"
)

// FOneWay computes the one-way ANOVA F statistic (between-group mean square
// over within-group mean square) and its degrees of freedom. It returns NaN
// when there are fewer than two groups or no within-group freedom left.
func FOneWay(groups [][]float64) (f, dfBetween, dfWithin float64) {
	var all []float64
	k := 0
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		k++
		all = append(all, g...)
	}
	n := len(all)
	if k < 2 || n-k < 1 {
		return math.NaN(), math.NaN(), math.NaN()
	}

	grand, _ := stats.Mean(all)
	var ssb, ssw float64
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		m, _ := stats.Mean(g)
		ssb += float64(len(g)) * (m - grand) * (m - grand)
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}

	dfBetween = float64(k - 1)
	dfWithin = float64(n - k)
	msb := ssb / dfBetween
	msw := ssw / dfWithin
	switch {
	case msw == 0 && msb == 0:
		f = math.NaN()
	case msw == 0:
		f = math.Inf(1)
	default:
		f = msb / msw
	}
	return f, dfBetween, dfWithin
}

// OneWayANOVA runs the F test for equality of group means
func OneWayANOVA(test, hypothesis string, groups [][]float64) Result {
	f, d1, d2 := FOneWay(groups)
	if math.IsNaN(d1) {
		return undefinedResult(test, hypothesis)
	}
	return newResult(test, hypothesis, f, FPValue(f, d1, d2), d1, d2)
}

// Levene runs the Brown–Forsythe variant of Levene's test: a one-way ANOVA
// on absolute deviations from each group's median.
func Levene(groups [][]float64) Result {
	deviations := make([][]float64, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		median, _ := stats.Median(g)
		d := make([]float64, len(g))
		for i, v := range g {
			d[i] = math.Abs(v - median)
		}
		deviations = append(deviations, d)
	}
	return OneWayANOVA("levene", "H0: all group variances are equal", deviations)
}

// ANOVAResult is the airline price comparison
type ANOVAResult struct {
	Result
	Groups []aggregate.GroupSummary `json:"groups"`
}

// AirlineANOVA tests whether mean price differs across airlines
func AirlineANOVA(table *flight.Table) ANOVAResult {
	keys, partition := table.PartitionBy(flight.FieldAirline, flight.FieldPrice)
	sort.Strings(keys)
	groups := make([][]float64, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, partition[k])
	}
	summaries, _ := aggregate.GroupStats(table, []flight.Field{flight.FieldAirline}, flight.FieldPrice)
	return ANOVAResult{
		Result: OneWayANOVA("anova_airline_price", "H0: every airline has the same mean price", groups),
		Groups: summaries,
	}
}
