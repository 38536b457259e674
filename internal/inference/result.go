// Package inference runs the fixed hypothesis tests of the statistics
// dashboard. Every test takes the full, unfiltered table so conclusions do
// not move with the interactive filters.
package inference

import (
	"fmt"
	"math"

	"flightdash/domain/core"
)

// Alpha is the significance level used by every test
const Alpha = 0.05

// Decision is the outcome of a test at Alpha
type Decision string

const (
	Reject       Decision = "reject"
	FailToReject Decision = "fail_to_reject"
	Undefined    Decision = "undefined"
)

// Decide compares a p-value against Alpha
func Decide(p core.Float) Decision {
	switch {
	case !p.Defined():
		return Undefined
	case float64(p) < Alpha:
		return Reject
	}
	return FailToReject
}

// Result is the common part of every hypothesis test outcome
type Result struct {
	Test       string     `json:"test"`
	Hypothesis string     `json:"hypothesis"`
	Statistic  core.Float `json:"statistic"`
	PValue     core.Float `json:"p_value"`
	// DF is the degrees of freedom, or the numerator df of an F test
	DF core.Float `json:"df"`
	// DF2 is the denominator df of an F test, undefined otherwise
	DF2      core.Float `json:"df2"`
	Alpha    float64    `json:"alpha"`
	Decision Decision   `json:"decision"`
}

// Err is core.ErrInsufficientData when the test could not be computed
func (r Result) Err() error {
	if r.Decision == Undefined {
		return fmt.Errorf("%s: %w", r.Test, core.ErrInsufficientData)
	}
	return nil
}

func newResult(test, hypothesis string, statistic, p, df, df2 float64) Result {
	pv := core.Float(p)
	return Result{
		Test:       test,
		Hypothesis: hypothesis,
		Statistic:  core.Float(statistic),
		PValue:     pv,
		DF:         core.Float(df),
		DF2:        core.Float(df2),
		Alpha:      Alpha,
		Decision:   Decide(pv),
	}
}

func undefinedResult(test, hypothesis string) Result {
	nan := math.NaN()
	return newResult(test, hypothesis, nan, nan, nan, nan)
}
