// Package filter narrows the flight table by categorical inclusion sets and
// inclusive numeric ranges.
package filter

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"flightdash/domain/flight"
	"flightdash/internal/errors"
)

// Range is an inclusive numeric interval
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max]
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Predicates is the user's selection. A categorical field absent from
// Categories, or mapped to nil, is unrestricted; a non-nil empty set allows
// nothing. A numeric field absent from Ranges is unrestricted.
type Predicates struct {
	Categories map[flight.Field]map[string]bool `json:"-"`
	Ranges     map[flight.Field]Range           `json:"ranges"`
}

// NewPredicates returns an unrestricted predicate set
func NewPredicates() Predicates {
	return Predicates{
		Categories: make(map[flight.Field]map[string]bool),
		Ranges:     make(map[flight.Field]Range),
	}
}

// Allow restricts field to the given values
func (p Predicates) Allow(field flight.Field, values ...string) Predicates {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	p.Categories[field] = set
	return p
}

// Between restricts field to [lo, hi]
func (p Predicates) Between(field flight.Field, lo, hi float64) Predicates {
	p.Ranges[field] = Range{Min: lo, Max: hi}
	return p
}

// Selected returns the sorted allowed values of a categorical field, or nil if unrestricted
func (p Predicates) Selected(field flight.Field) []string {
	set, ok := p.Categories[field]
	if !ok || set == nil {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Permits reports whether value passes the categorical predicate of field
func (p Predicates) Permits(field flight.Field, value string) bool {
	set, ok := p.Categories[field]
	return !ok || set == nil || set[value]
}

// RangeOf returns the numeric bound of field and whether one is set
func (p Predicates) RangeOf(field flight.Field) (Range, bool) {
	r, ok := p.Ranges[field]
	return r, ok
}

// Match reports whether a record satisfies every predicate
func (p Predicates) Match(rec *flight.Record) bool {
	for field, set := range p.Categories {
		if set == nil {
			continue
		}
		if !set[rec.Category(field)] {
			return false
		}
	}
	for field, r := range p.Ranges {
		if !r.Contains(rec.Number(field)) {
			return false
		}
	}
	return true
}

// Apply returns the rows of table that satisfy p. The input is not modified
// and zero matches yields an empty table, not an error.
func Apply(table *flight.Table, p Predicates) *flight.Table {
	return table.Where(p.Match)
}

// Options describes the observed values a UI can offer for each control
type Options struct {
	Categories map[flight.Field][]string `json:"categories"`
	Ranges     map[flight.Field]Range    `json:"ranges"`
}

// ObservedOptions collects the distinct categorical values (sorted, with
// time-of-day fields in their conventional order) and numeric bounds.
func ObservedOptions(table *flight.Table) Options {
	opts := Options{
		Categories: make(map[flight.Field][]string),
		Ranges:     make(map[flight.Field]Range),
	}
	for _, f := range flight.CategoricalFields {
		values := table.Distinct(f)
		if f.IsOrdinal() {
			sortTimeOfDay(values)
		} else {
			sort.Strings(values)
		}
		opts.Categories[f] = values
	}
	for _, f := range flight.NumericFields {
		if lo, hi, ok := table.Range(f); ok {
			opts.Ranges[f] = Range{Min: lo, Max: hi}
		}
	}
	return opts
}

func sortTimeOfDay(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		ri, rj := flight.TimeOfDayRank(values[i]), flight.TimeOfDayRank(values[j])
		if ri == rj {
			return values[i] < values[j]
		}
		if ri < 0 {
			return false
		}
		if rj < 0 {
			return true
		}
		return ri < rj
	})
}

// Defaults selects every observed value and the full observed range of each
// numeric field. Applying it to the same table returns every row.
func Defaults(table *flight.Table) Predicates {
	opts := ObservedOptions(table)
	p := NewPredicates()
	for f, values := range opts.Categories {
		p.Allow(f, values...)
	}
	for f, r := range opts.Ranges {
		p.Between(f, r.Min, r.Max)
	}
	return p
}

// FromQuery builds predicates from request parameters on top of defaults.
// Repeated categorical parameters (airline=A&airline=B) replace the default
// set; a parameter given only as an empty value selects nothing. Range
// bounds use <field>_min / <field>_max.
func FromQuery(values url.Values, defaults Predicates) (Predicates, error) {
	p := NewPredicates()
	for f, set := range defaults.Categories {
		p.Categories[f] = set
	}
	for f, r := range defaults.Ranges {
		p.Ranges[f] = r
	}

	for _, f := range flight.CategoricalFields {
		raw, ok := values[string(f)]
		if !ok {
			continue
		}
		var selected []string
		for _, v := range raw {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					selected = append(selected, part)
				}
			}
		}
		p.Allow(f, selected...)
	}

	for _, f := range flight.NumericFields {
		r, hasRange := p.Ranges[f]
		if !hasRange {
			r = Range{Min: math.Inf(-1), Max: math.Inf(1)}
		}
		changed := false
		for _, bound := range []struct {
			suffix string
			target *float64
		}{{"_min", &r.Min}, {"_max", &r.Max}} {
			raw := strings.TrimSpace(values.Get(string(f) + bound.suffix))
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) {
				return Predicates{}, errors.InvalidInput(fmt.Sprintf("%s%s must be a number, got %q", f, bound.suffix, raw))
			}
			*bound.target = v
			changed = true
		}
		if changed || hasRange {
			p.Ranges[f] = r
		}
	}
	return p, nil
}

// Query encodes predicates back into request parameters, the inverse of FromQuery
func (p Predicates) Query() url.Values {
	values := url.Values{}
	for _, f := range flight.CategoricalFields {
		if sel := p.Selected(f); sel != nil {
			if len(sel) == 0 {
				values.Set(string(f), "")
				continue
			}
			values[string(f)] = sel
		}
	}
	for _, f := range flight.NumericFields {
		if r, ok := p.Ranges[f]; ok {
			values.Set(string(f)+"_min", strconv.FormatFloat(r.Min, 'f', -1, 64))
			values.Set(string(f)+"_max", strconv.FormatFloat(r.Max, 'f', -1, 64))
		}
	}
	return values
}
