package ui

import (
	"fmt"
	"strconv"
	"strings"

	"flightdash/domain/flight"
	"flightdash/internal/errors"
	"flightdash/internal/inference"
)

// ParseConfidence reads a confidence level given as a fraction (0.95) or a
// percentage (95). An empty value selects def.
func ParseConfidence(raw string, def float64) (float64, error) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.InvalidInput(fmt.Sprintf("confidence must be a number, got %q", raw))
	}
	if v > 1 {
		v /= 100
	}
	if !inference.ValidConfidence(v) {
		return 0, errors.InvalidInput(fmt.Sprintf("confidence must be between %.0f%% and %.0f%%",
			inference.MinConfidence*100, inference.MaxConfidence*100))
	}
	return v, nil
}

// parseGroupFields reads repeated or comma separated "by" values, which
// must be categorical fields, and a numeric measure
func parseGroupFields(by []string, measure string) ([]flight.Field, flight.Field, error) {
	var fields []flight.Field
	for _, raw := range by {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			f, ok := flight.ParseField(name)
			if !ok || !f.IsCategorical() {
				return nil, "", errors.InvalidInput(fmt.Sprintf("cannot group by %q", name))
			}
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil, "", errors.InvalidInput("at least one group field is required")
	}

	if measure == "" {
		measure = string(flight.FieldPrice)
	}
	m, ok := flight.ParseField(measure)
	if !ok || !m.IsNumeric() || m == flight.FieldIndex {
		return nil, "", errors.InvalidInput(fmt.Sprintf("cannot summarize %q", measure))
	}
	return fields, m, nil
}
