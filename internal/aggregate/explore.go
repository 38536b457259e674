package aggregate

import (
	"sort"
	"strconv"

	"flightdash/domain/core"
	"flightdash/domain/flight"
)

// topRoutes is how many routes the duration chart shows
const topRoutes = 10

// ScatterLimit caps the points of the duration/price scatter
const ScatterLimit = 1000

// KPIs are the headline numbers of a filtered view
type KPIs struct {
	Flights      int        `json:"flights"`
	MeanPrice    core.Float `json:"mean_price"`
	MeanDuration core.Float `json:"mean_duration"`
	Airlines     int        `json:"airlines"`
}

// Box is a five-number summary for one category
type Box struct {
	Label  string     `json:"label"`
	Count  int        `json:"count"`
	Min    core.Float `json:"min"`
	Q1     core.Float `json:"q1"`
	Median core.Float `json:"median"`
	Q3     core.Float `json:"q3"`
	Max    core.Float `json:"max"`
}

// Point is one labelled value of a chart series
type Point struct {
	Label string     `json:"label"`
	Value core.Float `json:"value"`
	Count int        `json:"count"`
}

// XY is one scatter point
type XY struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// StopsRow summarizes one stops category
type StopsRow struct {
	Stops        string     `json:"stops"`
	MeanPrice    core.Float `json:"mean_price"`
	MeanDuration core.Float `json:"mean_duration"`
	Flights      int        `json:"flights"`
}

// Insights are the plain-language takeaways of a filtered view
type Insights struct {
	MostExpensiveAirline string     `json:"most_expensive_airline"`
	MostExpensivePrice   core.Float `json:"most_expensive_price"`
	PopularRoute         string     `json:"popular_route"`
	CheapestDeparture    string     `json:"cheapest_departure"`
	CheapestPrice        core.Float `json:"cheapest_price"`
	DaysLeftCorrelation  core.Float `json:"days_left_correlation"`
	BookingAdvice        string     `json:"booking_advice"`
	DirectCheaper        bool       `json:"direct_cheaper"`
	StopsAdvice          string     `json:"stops_advice"`
}

// Exploration is everything the interactive view renders for one predicate set
type Exploration struct {
	Empty          bool       `json:"empty"`
	KPIs           KPIs       `json:"kpis"`
	PriceByAirline []Box      `json:"price_by_airline"`
	RouteDurations []Point    `json:"route_durations"`
	Departures     []Point    `json:"departures"`
	PriceByDays    []Point    `json:"price_by_days_left"`
	DurationPrice  []XY       `json:"duration_price"`
	Stops          []StopsRow `json:"stops"`
	Insights       *Insights  `json:"insights,omitempty"`
}

// Explore recomputes every exploration aggregate over table. An empty table
// yields Empty=true with zero counts and undefined means.
func Explore(table *flight.Table) Exploration {
	e := Exploration{
		Empty: table.Empty(),
		KPIs: KPIs{
			Flights:      table.Len(),
			MeanPrice:    MeanOf(table, flight.FieldPrice),
			MeanDuration: MeanOf(table, flight.FieldDuration),
			Airlines:     len(table.Distinct(flight.FieldAirline)),
		},
	}
	if e.Empty {
		return e
	}
	e.PriceByAirline = priceBoxes(table)
	e.RouteDurations = routeDurations(table)
	e.Departures = departureCounts(table)
	e.PriceByDays = priceByDaysLeft(table)
	e.DurationPrice = DurationPriceSample(table, ScatterLimit)
	e.Stops = stopsAnalysis(table)
	insights := buildInsights(table, e.Stops)
	e.Insights = &insights
	return e
}

// DurationPriceSample returns at most limit (duration, price) points labelled
// by airline, taken at an even stride so the same table always gives the
// same sample.
func DurationPriceSample(table *flight.Table, limit int) []XY {
	n := table.Len()
	if n == 0 || limit < 1 {
		return nil
	}
	take := min(n, limit)
	out := make([]XY, 0, take)
	for i := 0; i < take; i++ {
		rec := &table.Records[i*n/take]
		out = append(out, XY{X: rec.Duration, Y: rec.Price, Label: rec.Airline})
	}
	return out
}

func priceBoxes(table *flight.Table) []Box {
	keys, groups := table.PartitionBy(flight.FieldAirline, flight.FieldPrice)
	sort.Strings(keys)
	out := make([]Box, 0, len(keys))
	for _, k := range keys {
		sorted := append([]float64(nil), groups[k]...)
		sort.Float64s(sorted)
		out = append(out, Box{
			Label:  k,
			Count:  len(sorted),
			Min:    core.Float(sorted[0]),
			Q1:     core.Float(quantileSorted(sorted, 0.25)),
			Median: core.Float(quantileSorted(sorted, 0.5)),
			Q3:     core.Float(quantileSorted(sorted, 0.75)),
			Max:    core.Float(sorted[len(sorted)-1]),
		})
	}
	return out
}

// routeDurations returns mean duration for the first routes in source/destination order
func routeDurations(table *flight.Table) []Point {
	groups, _ := GroupStats(table, []flight.Field{flight.FieldSourceCity, flight.FieldDestinationCity}, flight.FieldDuration)
	n := len(groups)
	if n > topRoutes {
		n = topRoutes
	}
	out := make([]Point, 0, n)
	for _, g := range groups[:n] {
		out = append(out, Point{Label: g.Label, Value: g.Mean, Count: g.Count})
	}
	return out
}

func departureCounts(table *flight.Table) []Point {
	groups, _ := GroupStats(table, []flight.Field{flight.FieldDepartureTime}, flight.FieldPrice)
	out := make([]Point, 0, len(groups))
	for _, g := range groups {
		out = append(out, Point{Label: g.Label, Value: core.Float(g.Count), Count: g.Count})
	}
	return out
}

func priceByDaysLeft(table *flight.Table) []Point {
	byDay := make(map[int][]float64)
	for i := range table.Records {
		rec := &table.Records[i]
		byDay[rec.DaysLeft] = append(byDay[rec.DaysLeft], rec.Price)
	}
	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)
	out := make([]Point, 0, len(days))
	for _, d := range days {
		s := Summarize(byDay[d])
		out = append(out, Point{Label: strconv.Itoa(d), Value: s.Mean, Count: s.Count})
	}
	return out
}

func stopsAnalysis(table *flight.Table) []StopsRow {
	prices, _ := GroupStats(table, []flight.Field{flight.FieldStops}, flight.FieldPrice)
	durations, _ := GroupStats(table, []flight.Field{flight.FieldStops}, flight.FieldDuration)
	out := make([]StopsRow, len(prices))
	for i := range prices {
		out[i] = StopsRow{
			Stops:        prices[i].Label,
			MeanPrice:    prices[i].Mean,
			MeanDuration: durations[i].Mean,
			Flights:      prices[i].Count,
		}
	}
	return out
}

func buildInsights(table *flight.Table, stops []StopsRow) Insights {
	in := Insights{
		MostExpensivePrice:  core.Undefined(),
		CheapestPrice:       core.Undefined(),
		DaysLeftCorrelation: Pearson(table.Values(flight.FieldDaysLeft), table.Values(flight.FieldPrice)),
	}

	byAirline, _ := GroupStats(table, []flight.Field{flight.FieldAirline}, flight.FieldPrice)
	for _, g := range byAirline {
		if !in.MostExpensivePrice.Defined() || g.Mean > in.MostExpensivePrice {
			in.MostExpensiveAirline, in.MostExpensivePrice = g.Label, g.Mean
		}
	}

	routes, _ := GroupStats(table, []flight.Field{flight.FieldSourceCity, flight.FieldDestinationCity}, flight.FieldPrice)
	best := 0
	for _, g := range routes {
		if g.Count > best {
			in.PopularRoute, best = g.Label, g.Count
		}
	}

	byDeparture, _ := GroupStats(table, []flight.Field{flight.FieldDepartureTime}, flight.FieldPrice)
	for _, g := range byDeparture {
		if !in.CheapestPrice.Defined() || g.Mean < in.CheapestPrice {
			in.CheapestDeparture, in.CheapestPrice = g.Label, g.Mean
		}
	}

	switch r := in.DaysLeftCorrelation; {
	case r.Defined() && r > 0.1:
		in.BookingAdvice = "Buy closer to the date: prices tend to fall as departure approaches"
	case r.Defined() && r < -0.1:
		in.BookingAdvice = "Buy early: prices tend to rise close to the departure date"
	default:
		in.BookingAdvice = "Prices are stable: no strong link between booking lead time and price"
	}

	var direct, oneStop core.Float = core.Undefined(), core.Undefined()
	for _, s := range stops {
		switch s.Stops {
		case flight.StopsZero:
			direct = s.MeanPrice
		case flight.StopsOne:
			oneStop = s.MeanPrice
		}
	}
	in.DirectCheaper = direct.Defined() && oneStop.Defined() && direct < oneStop
	if in.DirectCheaper {
		in.StopsAdvice = "Direct flights are cheaper on average"
	} else {
		in.StopsAdvice = "Flights with stops can be more economical"
	}
	return in
}
