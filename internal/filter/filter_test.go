package filter

import (
	"math/rand"
	"net/url"
	"testing"

	"flightdash/domain/flight"
	"flightdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	airlines = []string{"AirAsia", "Air_India", "GO_FIRST", "Indigo", "SpiceJet", "Vistara"}
	cities   = []string{"Bangalore", "Chennai", "Delhi", "Hyderabad", "Kolkata", "Mumbai"}
	stops    = []string{flight.StopsZero, flight.StopsOne, flight.StopsTwoOrMore}
	classes  = []string{"Economy", "Business"}
)

func syntheticTable(n int, seed int64) *flight.Table {
	rng := rand.New(rand.NewSource(seed))
	records := make([]flight.Record, n)
	for i := range records {
		records[i] = flight.Record{
			Index:           i,
			Airline:         airlines[rng.Intn(len(airlines))],
			SourceCity:      cities[rng.Intn(len(cities))],
			DestinationCity: cities[rng.Intn(len(cities))],
			DepartureTime:   flight.TimeOfDayOrder[rng.Intn(len(flight.TimeOfDayOrder))],
			Stops:           stops[rng.Intn(len(stops))],
			Class:           classes[rng.Intn(len(classes))],
			Duration:        0.5 + rng.Float64()*40,
			DaysLeft:        1 + rng.Intn(49),
			Price:           1000 + rng.Float64()*100000,
		}
	}
	return flight.NewTable(append(append([]flight.Field{}, flight.RequiredFields...), flight.FieldIndex), records)
}

func TestApplyDefaultsReturnsFullTable(t *testing.T) {
	table := syntheticTable(500, 1)
	out := Apply(table, Defaults(table))
	assert.Equal(t, table.Records, out.Records)
}

func TestApplyUnrestrictedReturnsFullTable(t *testing.T) {
	table := syntheticTable(50, 2)
	assert.Equal(t, table.Len(), Apply(table, NewPredicates()).Len())
}

func TestApplyOnlyReturnsMatchingRows(t *testing.T) {
	table := syntheticTable(2000, 3)

	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		p := NewPredicates().
			Allow(flight.FieldAirline, airlines[rng.Intn(3)], airlines[3+rng.Intn(3)]).
			Allow(flight.FieldClass, classes[rng.Intn(2)]).
			Between(flight.FieldPrice, 1000+rng.Float64()*30000, 40000+rng.Float64()*60000).
			Between(flight.FieldDaysLeft, float64(1+rng.Intn(10)), float64(20+rng.Intn(30)))

		out := Apply(table, p)

		expected := 0
		for i := range table.Records {
			if p.Match(&table.Records[i]) {
				expected++
			}
		}
		require.Equal(t, expected, out.Len())

		allowedAirlines := p.Categories[flight.FieldAirline]
		for i := range out.Records {
			rec := out.Records[i]
			assert.True(t, allowedAirlines[rec.Airline])
			assert.True(t, p.Categories[flight.FieldClass][rec.Class])
			assert.True(t, p.Ranges[flight.FieldPrice].Contains(rec.Price))
			assert.True(t, p.Ranges[flight.FieldDaysLeft].Contains(float64(rec.DaysLeft)))
		}
	}
}

func TestApplyRangesAreInclusive(t *testing.T) {
	table := flight.NewTable(flight.RequiredFields, []flight.Record{
		{Airline: "A", Price: 100, Duration: 1, DaysLeft: 1},
		{Airline: "A", Price: 200, Duration: 2, DaysLeft: 2},
		{Airline: "A", Price: 300, Duration: 3, DaysLeft: 3},
	})
	out := Apply(table, NewPredicates().Between(flight.FieldPrice, 100, 200))
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 100.0, out.Records[0].Price)
	assert.Equal(t, 200.0, out.Records[1].Price)
}

func TestApplyZeroMatches(t *testing.T) {
	table := syntheticTable(100, 4)
	original := append([]flight.Record(nil), table.Records...)

	out := Apply(table, NewPredicates().Allow(flight.FieldAirline, "Nonexistent"))
	assert.True(t, out.Empty())
	assert.Equal(t, table.Columns, out.Columns)
	assert.Equal(t, original, table.Records, "input must not be mutated")

	out = Apply(table, NewPredicates().Between(flight.FieldPrice, 10, 5))
	assert.True(t, out.Empty())
}

func TestObservedOptionsOrdersTimeOfDay(t *testing.T) {
	table := flight.NewTable(flight.RequiredFields, []flight.Record{
		{DepartureTime: "Night"},
		{DepartureTime: "Early_Morning"},
		{DepartureTime: "Evening"},
		{DepartureTime: "Morning"},
	})
	opts := ObservedOptions(table)
	assert.Equal(t, []string{"Early_Morning", "Morning", "Evening", "Night"}, opts.Categories[flight.FieldDepartureTime])
}

func TestFromQuery(t *testing.T) {
	table := syntheticTable(300, 5)
	defaults := Defaults(table)

	values := url.Values{}
	values.Add("airline", "Vistara")
	values.Add("airline", "Indigo,SpiceJet")
	values.Set("price_min", "5000")
	values.Set("duration_max", "10.5")

	p, err := FromQuery(values, defaults)
	require.NoError(t, err)

	assert.Equal(t, []string{"Indigo", "SpiceJet", "Vistara"}, p.Selected(flight.FieldAirline))
	assert.Equal(t, defaults.Selected(flight.FieldClass), p.Selected(flight.FieldClass))
	assert.Equal(t, 5000.0, p.Ranges[flight.FieldPrice].Min)
	assert.Equal(t, defaults.Ranges[flight.FieldPrice].Max, p.Ranges[flight.FieldPrice].Max)
	assert.Equal(t, 10.5, p.Ranges[flight.FieldDuration].Max)

	// defaults are left untouched
	assert.Len(t, defaults.Selected(flight.FieldAirline), len(airlines))
}

func TestFromQueryEmptySelection(t *testing.T) {
	table := syntheticTable(100, 6)
	p, err := FromQuery(url.Values{"class": {""}}, Defaults(table))
	require.NoError(t, err)
	assert.True(t, Apply(table, p).Empty())
}

func TestFromQueryRejectsMalformedNumbers(t *testing.T) {
	_, err := FromQuery(url.Values{"price_max": {"lots"}}, NewPredicates())
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestQueryRoundTrip(t *testing.T) {
	table := syntheticTable(200, 7)
	p := Defaults(table).Allow(flight.FieldStops, flight.StopsZero).Between(flight.FieldPrice, 2000, 9000)

	back, err := FromQuery(p.Query(), NewPredicates())
	require.NoError(t, err)
	assert.Equal(t, Apply(table, p).Records, Apply(table, back).Records)
}

func TestPermits(t *testing.T) {
	p := NewPredicates()
	assert.True(t, p.Permits(flight.FieldAirline, "Indigo"))

	p.Allow(flight.FieldAirline, "Vistara")
	assert.True(t, p.Permits(flight.FieldAirline, "Vistara"))
	assert.False(t, p.Permits(flight.FieldAirline, "Indigo"))
	assert.True(t, p.Permits(flight.FieldClass, "Business"))

	p.Allow(flight.FieldClass)
	assert.False(t, p.Permits(flight.FieldClass, "Business"))

	_, ok := p.RangeOf(flight.FieldPrice)
	assert.False(t, ok)
	p.Between(flight.FieldPrice, 10, 20)
	r, ok := p.RangeOf(flight.FieldPrice)
	assert.True(t, ok)
	assert.Equal(t, Range{Min: 10, Max: 20}, r)
}
