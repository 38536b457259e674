package inference

import (
	"math"

	"flightdash/domain/core"
	"flightdash/domain/flight"
	"flightdash/internal/aggregate"
)

// CorrelationResult is the significance test of a Pearson coefficient
type CorrelationResult struct {
	Result
	R              core.Float `json:"r"`
	N              int        `json:"n"`
	Strength       string     `json:"strength"`
	Direction      string     `json:"direction"`
	Interpretation string     `json:"interpretation"`
}

// CorrelationTest tests H0: ρ = 0 with t = r·√((n−2)/(1−r²)) on n−2 df
func CorrelationTest(test, hypothesis string, x, y []float64) CorrelationResult {
	r := aggregate.Pearson(x, y)
	n := len(x)
	out := CorrelationResult{
		R:         r,
		N:         n,
		Strength:  aggregate.StrengthLabel(r),
		Direction: aggregate.DirectionLabel(r),
	}
	if !r.Defined() || n < 3 {
		out.Result = undefinedResult(test, hypothesis)
		out.Interpretation = "correlation is undefined for this data"
		return out
	}

	rv := float64(r)
	df := float64(n - 2)
	var t float64
	// a perfect fit can land a few ulps short of one
	if math.Abs(rv) >= 1-1e-12 {
		t = math.Copysign(math.Inf(1), rv)
	} else {
		t = rv * math.Sqrt(df/(1-rv*rv))
	}
	out.Result = newResult(test, hypothesis, t, TwoTailedTPValue(t, df), df, math.NaN())
	out.Interpretation = interpretCorrelation(out)
	return out
}

func interpretCorrelation(c CorrelationResult) string {
	if c.Decision != Reject {
		return "no significant linear relationship"
	}
	if c.R > 0 {
		return "significant positive relationship: longer flights cost more"
	}
	return "significant negative relationship: longer flights cost less"
}

// DurationPriceCorrelation tests whether flight duration and price are correlated
func DurationPriceCorrelation(table *flight.Table) CorrelationResult {
	return CorrelationTest("pearson_duration_price",
		"H0: duration and price are uncorrelated",
		table.Values(flight.FieldDuration), table.Values(flight.FieldPrice))
}
