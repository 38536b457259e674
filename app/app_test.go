package app

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"flightdash/adapters/dataset"
	"flightdash/domain/flight"
	"flightdash/internal/inference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *dataset.Store {
	airlines := []string{"Indigo", "Vistara", "SpiceJet"}
	stops := []string{flight.StopsZero, flight.StopsOne, flight.StopsTwoOrMore}
	times := []string{"Morning", "Evening", "Night"}
	var records []flight.Record
	for i := 0; i < 90; i++ {
		class := "Economy"
		price := float64(2500 + (i%9)*700)
		if i%2 == 0 {
			class = "Business"
			price += 45000
		}
		records = append(records, flight.Record{
			Index: i, Airline: airlines[i%3], Flight: "XX-1",
			SourceCity: "Delhi", DestinationCity: "Mumbai",
			DepartureTime: times[(i/3)%3], ArrivalTime: "Night",
			Stops: stops[(i/9)%3], Class: class,
			Duration: float64(2 + i%13), DaysLeft: 1 + i%49, Price: price,
		})
	}
	return dataset.NewStoreFromTable(flight.NewTable(flight.RequiredFields, records))
}

func TestAnalysisOverviewAndStatistics(t *testing.T) {
	svc := NewAnalysisService(testStore())

	ov := svc.Overview()
	assert.Equal(t, 90, ov.Rows)
	assert.Equal(t, len(flight.RequiredFields), ov.Columns)
	assert.Len(t, ov.Variables, len(flight.RequiredFields))

	st := svc.Statistics()
	assert.Len(t, st.Descriptions, len(flight.NumericFields))
	assert.Len(t, st.Correlations.Fields, len(flight.NumericFields))
}

func TestAnalysisCategories(t *testing.T) {
	view := NewAnalysisService(testStore()).Categories()
	require.Len(t, view.Breakdowns, 3)

	airline := view.Breakdowns[0]
	assert.Equal(t, flight.FieldAirline, airline.Field)
	require.Len(t, airline.Rows, 3)
	total := 0
	for _, row := range airline.Rows {
		total += row.Price.Count
		assert.Equal(t, row.Price.Count, row.Duration.Count)
	}
	assert.Equal(t, 90, total)
	assert.Len(t, view.Outliers, len(flight.NumericFields))
}

func TestAnalysisExploreDefaultsCoverEveryRow(t *testing.T) {
	svc := NewAnalysisService(testStore())
	p, err := svc.ParseFilters(url.Values{})
	require.NoError(t, err)

	view := svc.Explore(p)
	assert.Equal(t, 90, view.Rows)
	assert.Equal(t, 90, view.TotalRows)
	assert.False(t, view.Exploration.Empty)
	assert.Len(t, view.Preview, 90)
}

func TestAnalysisExploreFiltered(t *testing.T) {
	svc := NewAnalysisService(testStore())

	p, err := svc.ParseFilters(url.Values{"airline": {"Vistara"}, "class": {"Economy"}})
	require.NoError(t, err)
	view := svc.Explore(p)
	assert.Equal(t, 15, view.Rows)
	assert.Equal(t, []string{"Vistara"}, view.Query["airline"])

	none, err := svc.ParseFilters(url.Values{"price_min": {"1e9"}})
	require.NoError(t, err)
	empty := svc.Explore(none)
	assert.Zero(t, empty.Rows)
	assert.True(t, empty.Exploration.Empty)
	assert.Equal(t, 90, svc.Table().Len())

	_, err = svc.ParseFilters(url.Values{"duration_max": {"abc"}})
	assert.Error(t, err)
}

func TestAnalysisGroupStats(t *testing.T) {
	svc := NewAnalysisService(testStore())
	groups, err := svc.GroupStats([]flight.Field{flight.FieldAirline, flight.FieldClass}, flight.FieldPrice)
	require.NoError(t, err)
	assert.Len(t, groups, 6)
}

func TestInferenceDashboard(t *testing.T) {
	svc := NewInferenceService(testStore(), 0.95)

	view, err := svc.Dashboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0.95, view.Confidence)
	assert.Equal(t, 90, view.Price.Count)
	require.Len(t, view.Histogram.Bins, 50)
	total := 0
	for _, b := range view.Histogram.Bins {
		total += b.Count
	}
	assert.Equal(t, 90, total)
	require.NotNil(t, view.Report)
	assert.Equal(t, inference.Reject, view.Report.Class.Decision)

	require.Len(t, view.Conclusions, 6)
	assert.True(t, strings.HasPrefix(view.Conclusions[0], "With 95% confidence"))
	assert.Contains(t, view.Conclusions[4], "significantly associated")

	wider, err := svc.Dashboard(context.Background(), 0.99)
	require.NoError(t, err)
	assert.Greater(t, float64(wider.Report.PriceCI.Width()), float64(view.Report.PriceCI.Width()))

	_, err = svc.Dashboard(context.Background(), 0.5)
	assert.Error(t, err)
}

func TestInferenceServiceDefaultLevel(t *testing.T) {
	assert.Equal(t, inference.DefaultConfidence, NewInferenceService(testStore(), 2).DefaultLevel())
	assert.Equal(t, 0.9, NewInferenceService(testStore(), 0.9).DefaultLevel())
}
