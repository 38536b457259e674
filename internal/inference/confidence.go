package inference

import (
	"fmt"
	"math"

	"flightdash/domain/core"

	"github.com/montanaflynn/stats"
)

// Confidence level bounds accepted by the dashboard
const (
	MinConfidence     = 0.90
	MaxConfidence     = 0.99
	DefaultConfidence = 0.95
)

// ValidConfidence reports whether level lies in [MinConfidence, MaxConfidence]
func ValidConfidence(level float64) bool {
	return level >= MinConfidence && level <= MaxConfidence
}

// Interval is a two-sided confidence interval around an estimate
type Interval struct {
	Level    float64    `json:"level"`
	Estimate core.Float `json:"estimate"`
	Lower    core.Float `json:"lower"`
	Upper    core.Float `json:"upper"`
	Margin   core.Float `json:"margin"`
	N        int        `json:"n"`
}

// Width is Upper - Lower
func (iv Interval) Width() core.Float {
	return iv.Upper - iv.Lower
}

func (iv Interval) String() string {
	if !iv.Margin.Defined() {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%% CI [%.2f, %.2f]", iv.Level*100, float64(iv.Lower), float64(iv.Upper))
}

func interval(level, estimate, margin float64, n int) Interval {
	return Interval{
		Level:    level,
		Estimate: core.Float(estimate),
		Lower:    core.Float(estimate - margin),
		Upper:    core.Float(estimate + margin),
		Margin:   core.Float(margin),
		N:        n,
	}
}

// MeanConfidenceInterval is the z-interval mean ± z·s/√n
func MeanConfidenceInterval(values []float64, level float64) Interval {
	n := len(values)
	if n < 2 || !ValidConfidence(level) {
		nan := math.NaN()
		if n > 0 {
			m, _ := stats.Mean(values)
			return interval(level, m, nan, n)
		}
		return interval(level, nan, nan, n)
	}
	mean, _ := stats.Mean(values)
	sd, _ := stats.StandardDeviationSample(values)
	margin := NormalCritical(level) * sd / math.Sqrt(float64(n))
	return interval(level, mean, margin, n)
}

// ProportionConfidenceInterval is the Wald interval p ± z·√(p(1−p)/n)
func ProportionConfidenceInterval(successes, n int, level float64) Interval {
	if n <= 0 || successes < 0 || successes > n || !ValidConfidence(level) {
		nan := math.NaN()
		return interval(level, nan, nan, n)
	}
	p := float64(successes) / float64(n)
	margin := NormalCritical(level) * math.Sqrt(p*(1-p)/float64(n))
	return interval(level, p, margin, n)
}
