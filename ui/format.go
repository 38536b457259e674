package ui

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"flightdash/adapters/dataset"
	"flightdash/domain/core"
	"flightdash/domain/flight"
	"flightdash/internal/aggregate"
	"flightdash/internal/filter"
	"flightdash/internal/inference"
)

// notAvailable is printed for undefined statistics
const notAvailable = "N/A"

// FormatFloat prints v with prec decimals, or N/A when undefined
func FormatFloat(v core.Float, prec int) string {
	if !v.Defined() {
		return notAvailable
	}
	return fmt.Sprintf("%.*f", prec, float64(v))
}

// FormatPValue prints p in scientific notation, or N/A when undefined
func FormatPValue(p core.Float) string {
	if !p.Defined() {
		return notAvailable
	}
	return fmt.Sprintf("%.2e", float64(p))
}

// FormatPercent prints a fraction as a percentage
func FormatPercent(v core.Float, prec int) string {
	if !v.Defined() {
		return notAvailable
	}
	return fmt.Sprintf("%.*f%%", prec, float64(v)*100)
}

// FormatStatistic is FormatFloat that also names infinities
func FormatStatistic(v core.Float) string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "+∞"
	case math.IsInf(f, -1):
		return "−∞"
	}
	return FormatFloat(v, 4)
}

// FieldLabel turns source_city into "Source city"
func FieldLabel(f flight.Field) string {
	s := strings.ReplaceAll(string(f), "_", " ")
	if s == "" {
		return "Index"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func decisionLabel(d inference.Decision) string {
	switch d {
	case inference.Reject:
		return "Reject H0"
	case inference.FailToReject:
		return "Fail to reject H0"
	}
	return notAvailable
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"num":       FormatFloat,
		"pval":      FormatPValue,
		"pct":       FormatPercent,
		"stat":      FormatStatistic,
		"field":     FieldLabel,
		"decision":  decisionLabel,
		"join":      strings.Join,
		"cell":      func(rec flight.Record, f flight.Field) string { return dataset.FormatCell(&rec, f) },
		"mul":       func(a, b float64) float64 { return a * b },
		"confPct":   func(level float64) string { return fmt.Sprintf("%.0f", level*100) },
		"isCurrent": func(a, b string) bool { return a == b },
		"bound":     rangeBound,
		"plot":      plotPoints,
	}
}

// plotPoint is a scatter point scaled into a 100x60 SVG viewBox
type plotPoint struct {
	CX, CY float64
	Title  string
}

// plotPoints scales points onto the scatter viewBox, y growing upwards
func plotPoints(points []aggregate.XY) []plotPoint {
	if len(points) == 0 {
		return nil
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	scale := func(v, lo, hi, size float64) float64 {
		if hi == lo {
			return size / 2
		}
		return (v - lo) / (hi - lo) * size
	}
	out := make([]plotPoint, len(points))
	for i, p := range points {
		out[i] = plotPoint{
			CX:    2 + scale(p.X, minX, maxX, 96),
			CY:    58 - scale(p.Y, minY, maxY, 56),
			Title: fmt.Sprintf("%s: %.2f h, %.0f", p.Label, p.X, p.Y),
		}
	}
	return out
}

// rangeBound prints the min or max of a numeric predicate for a form input
func rangeBound(p filter.Predicates, f flight.Field, which string) string {
	r, ok := p.RangeOf(f)
	if !ok {
		return ""
	}
	v := r.Min
	if which == "max" {
		v = r.Max
	}
	if math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
