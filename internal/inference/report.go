package inference

import (
	"context"
	"fmt"
	"log"
	"time"

	"flightdash/domain/core"
	"flightdash/domain/flight"
	"flightdash/internal/errors"

	"golang.org/x/sync/errgroup"
)

// Report bundles every test the dashboard shows
type Report struct {
	Confidence float64           `json:"confidence"`
	Rows       int               `json:"rows"`
	Airline    ANOVAResult       `json:"airline_anova"`
	Stops      TwoSampleResult   `json:"stops_ttest"`
	Class      ChiSquareResult   `json:"class_chi_square"`
	CramersV   core.Float        `json:"cramers_v"`
	Duration   CorrelationResult `json:"duration_correlation"`
	// PriceCI is the interval for mean price
	PriceCI Interval `json:"price_ci"`
	// DirectShareCI is the interval for the share of direct flights
	DirectShareCI Interval `json:"direct_share_ci"`
}

// Run computes the report for table at the given confidence level. The four
// tests share nothing but the read-only table and run concurrently.
func Run(ctx context.Context, table *flight.Table, level float64) (*Report, error) {
	if !ValidConfidence(level) {
		return nil, errors.InvalidInput(fmt.Sprintf("confidence %.4f outside [%.2f, %.2f]",
			level, MinConfidence, MaxConfidence))
	}
	start := time.Now()
	r := &Report{Confidence: level, Rows: table.Len()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Airline = AirlineANOVA(table)
		return ctx.Err()
	})
	g.Go(func() error {
		r.Stops = DirectVsConnecting(table)
		return ctx.Err()
	})
	g.Go(func() error {
		r.Class = ClassVsPriceBracket(table)
		r.CramersV = CramersV(r.Class)
		return ctx.Err()
	})
	g.Go(func() error {
		r.Duration = DurationPriceCorrelation(table)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.PriceCI = MeanConfidenceInterval(table.Values(flight.FieldPrice), level)
	direct := 0
	for i := range table.Records {
		if table.Records[i].IsDirect() {
			direct++
		}
	}
	r.DirectShareCI = ProportionConfidenceInterval(direct, table.Len(), level)

	log.Printf("[Inference] report over %d rows at %.0f%% in %v", r.Rows, level*100, time.Since(start))
	return r, nil
}
