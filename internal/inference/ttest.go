package inference

import (
	"math"

	"flightdash/domain/flight"
	"flightdash/internal/aggregate"

	"github.com/montanaflynn/stats"
)

// Variant names which two-sample t-test ran
type Variant string

const (
	Pooled Variant = "pooled"
	Welch  Variant = "welch"
)

func moments(x []float64) (n, mean, variance float64) {
	n = float64(len(x))
	mean, _ = stats.Mean(x)
	if len(x) > 1 {
		variance, _ = stats.SampleVariance(x)
	} else {
		variance = math.NaN()
	}
	return n, mean, variance
}

func tStatistic(diff, se float64) float64 {
	switch {
	case math.IsNaN(se) || math.IsNaN(diff):
		return math.NaN()
	case se == 0 && diff == 0:
		return math.NaN()
	case se == 0:
		return math.Copysign(math.Inf(1), diff)
	}
	return diff / se
}

// PooledTTest assumes equal population variances; df = n1 + n2 - 2
func PooledTTest(x, y []float64) (t, df float64) {
	n1, m1, v1 := moments(x)
	n2, m2, v2 := moments(y)
	df = n1 + n2 - 2
	if n1 < 1 || n2 < 1 || df < 1 {
		return math.NaN(), math.NaN()
	}
	// a single-observation group contributes no variance term
	var ss float64
	if n1 > 1 {
		ss += (n1 - 1) * v1
	}
	if n2 > 1 {
		ss += (n2 - 1) * v2
	}
	sp2 := ss / df
	se := math.Sqrt(sp2 * (1/n1 + 1/n2))
	return tStatistic(m1-m2, se), df
}

// WelchTTest does not assume equal variances; df by Welch–Satterthwaite
func WelchTTest(x, y []float64) (t, df float64) {
	n1, m1, v1 := moments(x)
	n2, m2, v2 := moments(y)
	if n1 < 2 || n2 < 2 {
		return math.NaN(), math.NaN()
	}
	a, b := v1/n1, v2/n2
	se := math.Sqrt(a + b)
	df = (a + b) * (a + b) / (a*a/(n1-1) + b*b/(n2-1))
	return tStatistic(m1-m2, se), df
}

// TwoSampleResult is the direct vs connecting flights comparison
type TwoSampleResult struct {
	Result
	Levene        Result            `json:"levene"`
	EqualVariance bool              `json:"equal_variance"`
	Variant       Variant           `json:"variant"`
	First         aggregate.Summary `json:"first"`
	Second        aggregate.Summary `json:"second"`
}

// CompareMeans runs Levene first and picks the t-test from its outcome:
// Levene p > Alpha selects the pooled test, anything else selects Welch.
func CompareMeans(test, hypothesis string, x, y []float64) TwoSampleResult {
	levene := Levene([][]float64{x, y})
	equal := levene.PValue.Defined() && float64(levene.PValue) > Alpha

	var t, df float64
	variant := Welch
	if equal {
		variant = Pooled
		t, df = PooledTTest(x, y)
	} else {
		t, df = WelchTTest(x, y)
	}

	res := undefinedResult(test, hypothesis)
	if !math.IsNaN(df) {
		res = newResult(test, hypothesis, t, TwoTailedTPValue(t, df), df, math.NaN())
	}
	return TwoSampleResult{
		Result:        res,
		Levene:        levene,
		EqualVariance: equal,
		Variant:       variant,
		First:         aggregate.Summarize(x),
		Second:        aggregate.Summarize(y),
	}
}

// DirectVsConnecting compares price of stops == "zero" against every other flight
func DirectVsConnecting(table *flight.Table) TwoSampleResult {
	var direct, connecting []float64
	for i := range table.Records {
		rec := &table.Records[i]
		if rec.IsDirect() {
			direct = append(direct, rec.Price)
		} else {
			connecting = append(connecting, rec.Price)
		}
	}
	return CompareMeans("ttest_direct_vs_connecting",
		"H0: direct and connecting flights have the same mean price", direct, connecting)
}
