package inference

import (
	"context"
	"math"
	"testing"

	"flightdash/domain/core"
	"flightdash/domain/flight"
	"flightdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flightRec(airline, class, stops string, duration, price float64) flight.Record {
	return flight.Record{
		Airline: airline, Class: class, Stops: stops,
		SourceCity: "Delhi", DestinationCity: "Mumbai", DepartureTime: "Morning",
		Duration: duration, Price: price, DaysLeft: 10,
	}
}

func tableOf(records ...flight.Record) *flight.Table {
	return flight.NewTable(flight.RequiredFields, records)
}

func TestDecide(t *testing.T) {
	assert.Equal(t, Reject, Decide(0.01))
	assert.Equal(t, FailToReject, Decide(0.05))
	assert.Equal(t, FailToReject, Decide(0.8))
	assert.Equal(t, Undefined, Decide(core.Float(math.NaN())))
}

func TestFOneWayKnownValue(t *testing.T) {
	f, d1, d2 := FOneWay([][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.InDelta(t, 13.5, f, 1e-12)
	assert.Equal(t, 1.0, d1)
	assert.Equal(t, 4.0, d2)
}

func TestANOVAEqualMeansFailsToReject(t *testing.T) {
	var records []flight.Record
	for _, airline := range []string{"Indigo", "Vistara", "SpiceJet"} {
		for _, p := range []float64{4000, 4500, 5000, 5500, 6000} {
			records = append(records, flightRec(airline, "Economy", "one", 2, p))
		}
	}
	res := AirlineANOVA(tableOf(records...))

	assert.InDelta(t, 0, float64(res.Statistic), 1e-12)
	assert.Greater(t, float64(res.PValue), Alpha)
	assert.Equal(t, FailToReject, res.Decision)
	assert.Equal(t, 2.0, float64(res.DF))
	assert.Equal(t, 12.0, float64(res.DF2))
	assert.Len(t, res.Groups, 3)
}

func TestANOVAMeanShiftRejects(t *testing.T) {
	var records []flight.Record
	for _, p := range []float64{100, 110, 90, 105, 95} {
		records = append(records, flightRec("Indigo", "Economy", "one", 2, p))
		records = append(records, flightRec("Vistara", "Economy", "one", 2, p+1000))
	}
	res := AirlineANOVA(tableOf(records...))
	assert.Less(t, float64(res.PValue), Alpha)
	assert.Equal(t, Reject, res.Decision)
}

func TestANOVASingleGroupUndefined(t *testing.T) {
	res := AirlineANOVA(tableOf(
		flightRec("Indigo", "Economy", "one", 2, 100),
		flightRec("Indigo", "Economy", "one", 2, 200),
	))
	assert.False(t, res.Statistic.Defined())
	assert.Equal(t, Undefined, res.Decision)
}

func TestTTestKnownValues(t *testing.T) {
	x, y := []float64{1, 2, 3}, []float64{4, 5, 6}

	tp, dfp := PooledTTest(x, y)
	assert.InDelta(t, -3.6742, tp, 1e-4)
	assert.Equal(t, 4.0, dfp)

	tw, dfw := WelchTTest(x, y)
	assert.InDelta(t, -3.6742, tw, 1e-4)
	assert.InDelta(t, 4.0, dfw, 1e-12)

	tw, dfw = WelchTTest([]float64{1}, y)
	assert.True(t, math.IsNaN(tw))
	assert.True(t, math.IsNaN(dfw))
}

func TestDirectVsConnectingPooled(t *testing.T) {
	var records []flight.Record
	for _, p := range []float64{1000, 1010, 1020, 1030, 1040} {
		records = append(records, flightRec("Indigo", "Economy", flight.StopsZero, 2, p))
		records = append(records, flightRec("Indigo", "Economy", flight.StopsOne, 5, p+4000))
	}
	res := DirectVsConnecting(tableOf(records...))

	assert.True(t, res.EqualVariance)
	assert.Equal(t, Pooled, res.Variant)
	assert.Greater(t, float64(res.Levene.PValue), Alpha)
	assert.Less(t, float64(res.Statistic), 0.0)
	assert.Equal(t, Reject, res.Decision)
	assert.Equal(t, 8.0, float64(res.DF))
	assert.Equal(t, 5, res.First.Count)
	assert.InDelta(t, 1020, float64(res.First.Mean), 1e-9)
	assert.InDelta(t, 5020, float64(res.Second.Mean), 1e-9)
}

func TestDirectVsConnectingEqualMeansFailsToReject(t *testing.T) {
	var records []flight.Record
	for _, p := range []float64{1000, 1010, 1020, 1030, 1040} {
		records = append(records, flightRec("Indigo", "Economy", flight.StopsZero, 2, p))
		records = append(records, flightRec("Indigo", "Economy", flight.StopsOne, 5, p))
	}
	res := DirectVsConnecting(tableOf(records...))

	assert.Equal(t, Pooled, res.Variant)
	assert.Greater(t, float64(res.Levene.PValue), Alpha)
	assert.InDelta(t, 0, float64(res.Statistic), 1e-12)
	assert.Greater(t, float64(res.PValue), Alpha)
	assert.Equal(t, FailToReject, res.Decision)
}

func TestDirectVsConnectingWelch(t *testing.T) {
	var records []flight.Record
	for i := 0; i < 10; i++ {
		records = append(records, flightRec("Indigo", "Economy", flight.StopsZero, 2, float64(100+i%5)))
		records = append(records, flightRec("Indigo", "Economy", flight.StopsTwoOrMore, 9, float64(i*1000)))
	}
	res := DirectVsConnecting(tableOf(records...))

	assert.False(t, res.EqualVariance)
	assert.Equal(t, Welch, res.Variant)
	assert.Less(t, float64(res.Levene.PValue), Alpha)
	assert.Less(t, float64(res.DF), 18.0)
}

func TestPriceBracketBoundaries(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, BracketLow},
		{4999.99, BracketLow},
		{5000, BracketMedium},
		{14999, BracketMedium},
		{15000, BracketHigh},
		{49999, BracketHigh},
		{50000, BracketPremium},
		{123456, BracketPremium},
	}
	for _, tt := range tests {
		got, ok := PriceBracket(tt.price)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "price %v", tt.price)
	}
	_, ok := PriceBracket(-1)
	assert.False(t, ok)
}

func bracketTable(counts map[string]map[float64]int) *flight.Table {
	var records []flight.Record
	for _, class := range []string{"Economy", "Business"} {
		for price, n := range counts[class] {
			for i := 0; i < n; i++ {
				records = append(records, flightRec("Indigo", class, "one", 2, price))
			}
		}
	}
	return tableOf(records...)
}

func TestChiSquareIndependentTable(t *testing.T) {
	even := map[float64]int{1000: 5, 10000: 5, 20000: 5, 60000: 5}
	res := ClassVsPriceBracket(bracketTable(map[string]map[float64]int{
		"Economy": even, "Business": even,
	}))

	assert.Equal(t, 3.0, float64(res.DF))
	assert.False(t, res.YatesCorrected)
	assert.InDelta(t, 0, float64(res.Statistic), 1e-12)
	assert.Greater(t, float64(res.PValue), Alpha)
	assert.Equal(t, FailToReject, res.Decision)
	assert.Equal(t, PriceBrackets, res.Columns)
	assert.InDelta(t, 5, res.Expected[0][0], 1e-12)
}

func TestChiSquareAssociatedTable(t *testing.T) {
	res := ClassVsPriceBracket(bracketTable(map[string]map[float64]int{
		"Economy":  {1000: 20, 10000: 20},
		"Business": {20000: 20, 60000: 20},
	}))

	assert.Equal(t, 3.0, float64(res.DF))
	assert.Less(t, float64(res.PValue), Alpha)
	assert.Equal(t, Reject, res.Decision)
	assert.InDelta(t, 1.0, float64(CramersV(res)), 1e-12)
}

func TestChiSquareYatesOnlyForOneDF(t *testing.T) {
	res := ClassVsPriceBracket(bracketTable(map[string]map[float64]int{
		"Economy":  {1000: 10},
		"Business": {60000: 10},
	}))

	// empty Medium and High columns are dropped, leaving a 2x2 table
	assert.Equal(t, []string{BracketLow, BracketPremium}, res.Columns)
	assert.Equal(t, 1.0, float64(res.DF))
	assert.True(t, res.YatesCorrected)
	assert.InDelta(t, 16.2, float64(res.Statistic), 1e-12)
}

func TestChiSquareSingleClassUndefined(t *testing.T) {
	res := ClassVsPriceBracket(bracketTable(map[string]map[float64]int{
		"Economy": {1000: 3, 60000: 3},
	}))
	assert.Equal(t, []string{"Economy"}, res.Rows)
	assert.Equal(t, Undefined, res.Decision)
	assert.False(t, CramersV(res).Defined())
}

func TestCorrelationTest(t *testing.T) {
	res := CorrelationTest("r", "H0", []float64{1, 2, 3, 4, 5}, []float64{2, 1, 4, 3, 5})
	assert.InDelta(t, 0.8, float64(res.R), 1e-12)
	assert.InDelta(t, 2.3094, float64(res.Statistic), 1e-4)
	assert.Equal(t, 3.0, float64(res.DF))
	assert.Greater(t, float64(res.PValue), Alpha)
	assert.Equal(t, FailToReject, res.Decision)
	assert.Equal(t, "no significant linear relationship", res.Interpretation)
}

func TestCorrelationPerfectAndDegenerate(t *testing.T) {
	perfect := CorrelationTest("r", "H0", []float64{1, 2, 3, 4}, []float64{10, 20, 30, 40})
	assert.True(t, math.IsInf(float64(perfect.Statistic), 1))
	assert.Equal(t, 0.0, float64(perfect.PValue))
	assert.Equal(t, Reject, perfect.Decision)

	constant := CorrelationTest("r", "H0", []float64{1, 2, 3}, []float64{5, 5, 5})
	assert.False(t, constant.R.Defined())
	assert.Equal(t, Undefined, constant.Decision)

	short := CorrelationTest("r", "H0", []float64{1, 2}, []float64{3, 4})
	assert.Equal(t, Undefined, short.Decision)
}

func TestDurationPriceCorrelation(t *testing.T) {
	var records []flight.Record
	for i := 1; i <= 30; i++ {
		records = append(records, flightRec("Indigo", "Economy", "one", float64(i), float64(1000+i*250+(i%3)*40)))
	}
	res := DurationPriceCorrelation(tableOf(records...))
	assert.Equal(t, 30, res.N)
	assert.Greater(t, float64(res.R), 0.9)
	assert.Equal(t, Reject, res.Decision)
	assert.Contains(t, res.Interpretation, "positive")
}

func repeat(pattern []float64, times int) []float64 {
	out := make([]float64, 0, len(pattern)*times)
	for i := 0; i < times; i++ {
		out = append(out, pattern...)
	}
	return out
}

func TestMeanConfidenceIntervalShrinksWithN(t *testing.T) {
	pattern := []float64{1, 2, 3, 4, 5}
	small := MeanConfidenceInterval(repeat(pattern, 2), 0.95)
	large := MeanConfidenceInterval(repeat(pattern, 200), 0.95)

	assert.InDelta(t, 3, float64(small.Estimate), 1e-12)
	assert.InDelta(t, 3, float64(large.Estimate), 1e-12)
	assert.Less(t, float64(large.Width()), float64(small.Width()))
	assert.True(t, small.Lower < small.Estimate && small.Estimate < small.Upper)

	narrow := MeanConfidenceInterval(repeat(pattern, 10), 0.90)
	wide := MeanConfidenceInterval(repeat(pattern, 10), 0.99)
	assert.Less(t, float64(narrow.Width()), float64(wide.Width()))
}

func TestMeanConfidenceIntervalDegenerate(t *testing.T) {
	single := MeanConfidenceInterval([]float64{7}, 0.95)
	assert.Equal(t, 7.0, float64(single.Estimate))
	assert.False(t, single.Margin.Defined())
	assert.Equal(t, "N/A", single.String())

	badLevel := MeanConfidenceInterval([]float64{1, 2, 3}, 0.5)
	assert.False(t, badLevel.Margin.Defined())
}

func TestProportionConfidenceInterval(t *testing.T) {
	iv := ProportionConfidenceInterval(50, 100, 0.95)
	assert.InDelta(t, 0.5, float64(iv.Estimate), 1e-12)
	assert.InDelta(t, 1.959964*0.05, float64(iv.Margin), 1e-6)
	assert.Equal(t, "95% CI [0.40, 0.60]", iv.String())

	assert.False(t, ProportionConfidenceInterval(1, 0, 0.95).Margin.Defined())
	assert.False(t, ProportionConfidenceInterval(5, 3, 0.95).Margin.Defined())
}

func TestNormalCritical(t *testing.T) {
	assert.InDelta(t, 1.959964, NormalCritical(0.95), 1e-6)
	assert.InDelta(t, 2.575829, NormalCritical(0.99), 1e-6)
}

func reportTable() *flight.Table {
	var records []flight.Record
	airlines := []string{"Indigo", "Vistara", "Air_India"}
	stops := []string{flight.StopsZero, flight.StopsOne, flight.StopsTwoOrMore}
	classes := []string{"Economy", "Business"}
	for i := 0; i < 60; i++ {
		class := classes[i%2]
		price := float64(3000 + (i%7)*900)
		if class == "Business" {
			price += 40000
		}
		records = append(records, flightRec(airlines[i%3], class, stops[(i/2)%3], float64(2+i%11), price))
	}
	return tableOf(records...)
}

func TestRun(t *testing.T) {
	tbl := reportTable()
	r, err := Run(context.Background(), tbl, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 60, r.Rows)
	assert.Equal(t, 0.95, r.Confidence)
	assert.Equal(t, "anova_airline_price", r.Airline.Test)
	assert.Equal(t, "ttest_direct_vs_connecting", r.Stops.Test)
	assert.Equal(t, Reject, r.Class.Decision)
	assert.Equal(t, 60, r.Duration.N)
	assert.True(t, r.PriceCI.Margin.Defined())
	assert.InDelta(t, 1.0/3, float64(r.DirectShareCI.Estimate), 1e-12)

	// same input, same output
	again, err := Run(context.Background(), tbl, 0.95)
	require.NoError(t, err)
	assert.Equal(t, r.Airline.Statistic, again.Airline.Statistic)
	assert.Equal(t, r.Class.Statistic, again.Class.Statistic)
}

func TestRunRejectsConfidence(t *testing.T) {
	_, err := Run(context.Background(), reportTable(), 0.5)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, reportTable(), 0.95)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmptyTable(t *testing.T) {
	r, err := Run(context.Background(), tableOf(), 0.95)
	require.NoError(t, err)
	assert.Equal(t, Undefined, r.Airline.Decision)
	assert.Equal(t, Undefined, r.Stops.Decision)
	assert.Equal(t, Undefined, r.Class.Decision)
	assert.Equal(t, Undefined, r.Duration.Decision)
}

func TestUndefinedResultReportsInsufficientData(t *testing.T) {
	r, err := Run(context.Background(), tableOf(), 0.95)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Airline.Err(), core.ErrInsufficientData)
	assert.ErrorIs(t, r.Duration.Err(), core.ErrInsufficientData)

	r, err = Run(context.Background(), reportTable(), 0.95)
	require.NoError(t, err)
	assert.NoError(t, r.Airline.Err())
}
