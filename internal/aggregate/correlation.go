package aggregate

import (
	"math"

	"flightdash/domain/core"
	"flightdash/domain/flight"

	"github.com/montanaflynn/stats"
)

// Pearson returns the correlation coefficient of x and y. It is undefined
// when either series is constant, shorter than two, or the lengths differ.
func Pearson(x, y []float64) core.Float {
	if len(x) != len(y) || len(x) < 2 {
		return core.Undefined()
	}
	sx, _ := stats.StandardDeviationPopulation(x)
	sy, _ := stats.StandardDeviationPopulation(y)
	if sx == 0 || sy == 0 || math.IsNaN(sx) || math.IsNaN(sy) {
		return core.Undefined()
	}
	r, err := stats.Correlation(x, y)
	if err != nil {
		return core.Undefined()
	}
	// rounding can push |r| a hair past one
	return core.Float(math.Max(-1, math.Min(1, r)))
}

// StrengthLabel buckets |r| into weak / moderate / strong
func StrengthLabel(r core.Float) string {
	if !r.Defined() {
		return "undefined"
	}
	abs := math.Abs(float64(r))
	switch {
	case abs > 0.7:
		return "strong"
	case abs > 0.3:
		return "moderate"
	}
	return "weak"
}

// DirectionLabel reports the sign of r
func DirectionLabel(r core.Float) string {
	switch {
	case !r.Defined():
		return "undefined"
	case r > 0:
		return "positive"
	case r < 0:
		return "negative"
	}
	return "none"
}

// CorrelationPair is one off-diagonal entry of the matrix
type CorrelationPair struct {
	X         flight.Field `json:"x"`
	Y         flight.Field `json:"y"`
	R         core.Float   `json:"r"`
	Strength  string       `json:"strength"`
	Direction string       `json:"direction"`
}

// CorrelationMatrix holds pairwise Pearson coefficients
type CorrelationMatrix struct {
	Fields []flight.Field    `json:"fields"`
	Values [][]core.Float    `json:"values"`
	Pairs  []CorrelationPair `json:"pairs"`
}

// Correlations computes the matrix for the given numeric fields
func Correlations(table *flight.Table, fields []flight.Field) CorrelationMatrix {
	columns := make([][]float64, len(fields))
	for i, f := range fields {
		columns[i] = table.Values(f)
	}

	m := CorrelationMatrix{Fields: fields, Values: make([][]core.Float, len(fields))}
	for i := range fields {
		m.Values[i] = make([]core.Float, len(fields))
	}
	for i := range fields {
		for j := i; j < len(fields); j++ {
			r := Pearson(columns[i], columns[j])
			if i == j && r.Defined() {
				r = 1
			}
			m.Values[i][j], m.Values[j][i] = r, r
			if i != j {
				m.Pairs = append(m.Pairs, CorrelationPair{
					X: fields[i], Y: fields[j], R: r,
					Strength: StrengthLabel(r), Direction: DirectionLabel(r),
				})
			}
		}
	}
	return m
}
