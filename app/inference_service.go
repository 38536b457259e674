package app

import (
	"context"
	"fmt"

	"flightdash/domain/flight"
	"flightdash/internal/aggregate"
	"flightdash/internal/inference"
	"flightdash/ports"
)

// InferenceService runs the hypothesis tests for the statistics dashboard.
// Tests always see the full table; interactive filters do not apply here.
type InferenceService struct {
	source       ports.TableSource
	defaultLevel float64
}

// DashboardView is everything the statistics dashboard renders
type DashboardView struct {
	Confidence  float64                `json:"confidence"`
	Price       aggregate.Description  `json:"price"`
	Histogram   aggregate.Distribution `json:"histogram"`
	Report      *inference.Report      `json:"report"`
	Conclusions []string               `json:"conclusions"`
}

// NewInferenceService uses defaultLevel when a request does not pick one
func NewInferenceService(source ports.TableSource, defaultLevel float64) *InferenceService {
	if !inference.ValidConfidence(defaultLevel) {
		defaultLevel = inference.DefaultConfidence
	}
	return &InferenceService{source: source, defaultLevel: defaultLevel}
}

// DefaultLevel is the confidence level used when none is requested
func (s *InferenceService) DefaultLevel() float64 {
	return s.defaultLevel
}

// Report runs every test at level; zero selects the default level
func (s *InferenceService) Report(ctx context.Context, level float64) (*inference.Report, error) {
	if level == 0 {
		level = s.defaultLevel
	}
	return inference.Run(ctx, s.source.Table(), level)
}

// Dashboard builds the dashboard view at level
func (s *InferenceService) Dashboard(ctx context.Context, level float64) (DashboardView, error) {
	report, err := s.Report(ctx, level)
	if err != nil {
		return DashboardView{}, err
	}
	table := s.source.Table()
	return DashboardView{
		Confidence:  report.Confidence,
		Price:       aggregate.Describe(flight.FieldPrice, table.Values(flight.FieldPrice)),
		Histogram:   aggregate.Histogram(table.Values(flight.FieldPrice), aggregate.PriceBins),
		Report:      report,
		Conclusions: Conclusions(report),
	}, nil
}

// Conclusions phrases each test outcome from its actual decision
func Conclusions(r *inference.Report) []string {
	pct := r.Confidence * 100
	var out []string

	if r.PriceCI.Margin.Defined() {
		out = append(out, fmt.Sprintf("With %.0f%% confidence the mean price lies between %.2f and %.2f.",
			pct, float64(r.PriceCI.Lower), float64(r.PriceCI.Upper)))
	}
	if r.DirectShareCI.Margin.Defined() {
		out = append(out, fmt.Sprintf("With %.0f%% confidence the share of direct flights lies between %.2f%% and %.2f%%.",
			pct, float64(r.DirectShareCI.Lower)*100, float64(r.DirectShareCI.Upper)*100))
	}

	out = append(out, decisionLine("ANOVA (airlines)", r.Airline.Result,
		"mean prices differ significantly between airlines",
		"no significant difference in mean price between airlines"))

	ttest := fmt.Sprintf("t-test (direct vs connecting, %s)", r.Stops.Variant)
	out = append(out, decisionLine(ttest, r.Stops.Result,
		"direct and connecting flights differ significantly in mean price",
		"no significant price difference between direct and connecting flights"))

	chi := "chi-square (class vs price bracket)"
	if r.Class.YatesCorrected {
		chi += " with Yates correction"
	}
	out = append(out, decisionLine(chi, r.Class.Result,
		"travel class and price bracket are significantly associated",
		"no significant association between class and price bracket"))

	out = append(out, decisionLine("correlation (duration vs price)", r.Duration.Result,
		r.Duration.Interpretation, r.Duration.Interpretation))
	return out
}

func decisionLine(name string, res inference.Result, rejected, retained string) string {
	switch res.Decision {
	case inference.Reject:
		return fmt.Sprintf("%s: p = %.2e < %.2f, %s.", name, float64(res.PValue), res.Alpha, rejected)
	case inference.FailToReject:
		return fmt.Sprintf("%s: p = %.2e ≥ %.2f, %s.", name, float64(res.PValue), res.Alpha, retained)
	}
	return fmt.Sprintf("%s: not enough data to test.", name)
}
