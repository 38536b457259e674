package aggregate

import (
	"sort"

	"flightdash/domain/core"
	"flightdash/domain/flight"
)

// Fences are Tukey's outlier bounds [Q1 - 1.5·IQR, Q3 + 1.5·IQR]
type Fences struct {
	Q1    core.Float `json:"q1"`
	Q3    core.Float `json:"q3"`
	IQR   core.Float `json:"iqr"`
	Lower core.Float `json:"lower"`
	Upper core.Float `json:"upper"`
}

// Outside reports whether v falls strictly outside the fences
func (f Fences) Outside(v float64) bool {
	if !f.Lower.Defined() || !f.Upper.Defined() {
		return false
	}
	return v < float64(f.Lower) || v > float64(f.Upper)
}

// TukeyFences computes the fences with linearly interpolated quartiles
func TukeyFences(values []float64) Fences {
	if len(values) == 0 {
		u := core.Undefined()
		return Fences{Q1: u, Q3: u, IQR: u, Lower: u, Upper: u}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := quantileSorted(sorted, 0.25)
	q3 := quantileSorted(sorted, 0.75)
	iqr := q3 - q1
	return Fences{
		Q1:    core.Float(q1),
		Q3:    core.Float(q3),
		IQR:   core.Float(iqr),
		Lower: core.Float(q1 - 1.5*iqr),
		Upper: core.Float(q3 + 1.5*iqr),
	}
}

// OutlierReport lists the rows of one field outside its fences
type OutlierReport struct {
	Field   flight.Field `json:"field"`
	Fences  Fences       `json:"fences"`
	Count   int          `json:"count"`
	Percent core.Float   `json:"percent"`
	// Rows are positions in the table, not source indices
	Rows []int `json:"-"`
}

// Outliers flags the records whose field value lies outside the fences
func Outliers(table *flight.Table, field flight.Field) OutlierReport {
	values := table.Values(field)
	report := OutlierReport{Field: field, Fences: TukeyFences(values), Percent: core.Undefined()}
	for i, v := range values {
		if report.Fences.Outside(v) {
			report.Rows = append(report.Rows, i)
		}
	}
	report.Count = len(report.Rows)
	if len(values) > 0 {
		report.Percent = core.Float(float64(report.Count) / float64(len(values)) * 100)
	}
	return report
}

// OutliersByField runs Outliers for each field
func OutliersByField(table *flight.Table, fields []flight.Field) []OutlierReport {
	out := make([]OutlierReport, 0, len(fields))
	for _, f := range fields {
		out = append(out, Outliers(table, f))
	}
	return out
}
