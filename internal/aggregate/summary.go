// Package aggregate computes grouped and descriptive statistics over a
// (possibly filtered) flight table. Every function accepts an empty table
// and reports undefined statistics as NaN rather than failing.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"flightdash/domain/core"
	"flightdash/domain/flight"

	"github.com/montanaflynn/stats"
)

// Summary is the fixed statistics bundle reported per group
type Summary struct {
	Count  int        `json:"count"`
	Mean   core.Float `json:"mean"`
	Median core.Float `json:"median"`
	Std    core.Float `json:"std"`
}

// GroupSummary is the summary of one distinct combination of group values
type GroupSummary struct {
	Key   []string `json:"key"`
	Label string   `json:"label"`
	Summary
}

// Summarize computes count, mean, median and sample standard deviation.
// The standard deviation of fewer than two values is undefined.
func Summarize(values []float64) Summary {
	s := Summary{
		Count:  len(values),
		Mean:   core.Undefined(),
		Median: core.Undefined(),
		Std:    core.Undefined(),
	}
	if len(values) == 0 {
		return s
	}
	if mean, err := stats.Mean(values); err == nil {
		s.Mean = core.Float(mean)
	}
	if median, err := stats.Median(values); err == nil {
		s.Median = core.Float(median)
	}
	if len(values) > 1 {
		if std, err := stats.StandardDeviationSample(values); err == nil {
			s.Std = core.Float(std)
		}
	}
	return s
}

// GroupStats groups table by the given categorical fields and summarizes
// measure within each group. Output is sorted by key for stable rendering.
func GroupStats(table *flight.Table, groupBy []flight.Field, measure flight.Field) ([]GroupSummary, error) {
	if len(groupBy) == 0 {
		return nil, core.NewUnknownFieldError("(no group field)")
	}
	for _, f := range groupBy {
		if !f.IsCategorical() {
			return nil, core.NewUnknownFieldError(string(f))
		}
	}
	if !measure.IsNumeric() {
		return nil, core.NewUnknownFieldError(string(measure))
	}

	type bucket struct {
		key    []string
		values []float64
	}
	buckets := make(map[string]*bucket)
	for i := range table.Records {
		rec := &table.Records[i]
		key := make([]string, len(groupBy))
		for j, f := range groupBy {
			key[j] = rec.Category(f)
		}
		id := strings.Join(key, "\x00")
		b, ok := buckets[id]
		if !ok {
			b = &bucket{key: key}
			buckets[id] = b
		}
		b.values = append(b.values, rec.Number(measure))
	}

	out := make([]GroupSummary, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, GroupSummary{
			Key:     b.key,
			Label:   strings.Join(b.key, " → "),
			Summary: Summarize(b.values),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return lessKey(out[i].Key, out[j].Key, groupBy)
	})
	return out, nil
}

func lessKey(a, b []string, fields []flight.Field) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if fields[i].IsOrdinal() {
			ra, rb := flight.TimeOfDayRank(a[i]), flight.TimeOfDayRank(b[i])
			if ra != rb {
				return ra < rb
			}
		}
		return a[i] < b[i]
	}
	return false
}

// MeanOf returns the mean of a numeric field, NaN on an empty table
func MeanOf(table *flight.Table, f flight.Field) core.Float {
	mean, err := stats.Mean(table.Values(f))
	if err != nil {
		return core.Undefined()
	}
	return core.Float(mean)
}

func nan() float64 { return math.NaN() }
