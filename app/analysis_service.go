package app

import (
	"net/url"

	"flightdash/domain/flight"
	"flightdash/internal/aggregate"
	"flightdash/internal/filter"
	"flightdash/ports"
)

// previewRows caps the filtered-data table on the explore tab
const previewRows = 100

// AnalysisService serves the data analysis page and the filter-driven API.
// Every method reads the shared table and never mutates it.
type AnalysisService struct {
	source   ports.TableSource
	defaults filter.Predicates
	options  filter.Options
}

// OverviewView is the "presentation and variable types" tab
type OverviewView struct {
	Rows      int                      `json:"rows"`
	Columns   int                      `json:"columns"`
	Source    string                   `json:"source"`
	Variables []aggregate.VariableInfo `json:"variables"`
}

// StatisticsView is the "central tendency, dispersion and correlation" tab
type StatisticsView struct {
	Descriptions []aggregate.Description     `json:"descriptions"`
	Correlations aggregate.CorrelationMatrix `json:"correlations"`
}

// CategoryRow is price and duration summaries for one category value
type CategoryRow struct {
	Label    string            `json:"label"`
	Price    aggregate.Summary `json:"price"`
	Duration aggregate.Summary `json:"duration"`
	DaysLeft aggregate.Summary `json:"days_left"`
}

// CategoryBreakdown groups the table by one categorical field
type CategoryBreakdown struct {
	Field flight.Field  `json:"field"`
	Rows  []CategoryRow `json:"rows"`
}

// CategoriesView is the "analysis by category" tab
type CategoriesView struct {
	Breakdowns []CategoryBreakdown       `json:"breakdowns"`
	Outliers   []aggregate.OutlierReport `json:"outliers"`
}

// ExploreView is the filter-driven tab
type ExploreView struct {
	Predicates  filter.Predicates     `json:"-"`
	Query       url.Values            `json:"query"`
	Options     filter.Options        `json:"options"`
	Rows        int                   `json:"rows"`
	TotalRows   int                   `json:"total_rows"`
	Exploration aggregate.Exploration `json:"exploration"`
	Preview     []flight.Record       `json:"-"`
}

// categoryFields are the breakdowns shown on the categories tab
var categoryFields = []flight.Field{flight.FieldAirline, flight.FieldClass, flight.FieldStops}

// NewAnalysisService precomputes the default predicates and filter options
func NewAnalysisService(source ports.TableSource) *AnalysisService {
	table := source.Table()
	return &AnalysisService{
		source:   source,
		defaults: filter.Defaults(table),
		options:  filter.ObservedOptions(table),
	}
}

// Table returns the full table
func (s *AnalysisService) Table() *flight.Table {
	return s.source.Table()
}

// Defaults returns the predicate set that selects every row
func (s *AnalysisService) Defaults() filter.Predicates {
	return s.defaults
}

// Options returns the observed filter choices
func (s *AnalysisService) Options() filter.Options {
	return s.options
}

// ParseFilters builds predicates from request parameters over the defaults
func (s *AnalysisService) ParseFilters(query url.Values) (filter.Predicates, error) {
	return filter.FromQuery(query, s.defaults)
}

// Filtered applies p to the full table
func (s *AnalysisService) Filtered(p filter.Predicates) *flight.Table {
	return filter.Apply(s.source.Table(), p)
}

func (s *AnalysisService) Overview() OverviewView {
	table := s.source.Table()
	return OverviewView{
		Rows:      table.Len(),
		Columns:   len(table.Columns),
		Source:    s.source.Path(),
		Variables: aggregate.Overview(table),
	}
}

func (s *AnalysisService) Statistics() StatisticsView {
	table := s.source.Table()
	return StatisticsView{
		Descriptions: aggregate.DescribeTable(table, flight.NumericFields),
		Correlations: aggregate.Correlations(table, flight.NumericFields),
	}
}

func (s *AnalysisService) Categories() CategoriesView {
	table := s.source.Table()
	view := CategoriesView{Outliers: aggregate.OutliersByField(table, flight.NumericFields)}
	for _, f := range categoryFields {
		view.Breakdowns = append(view.Breakdowns, breakdown(table, f))
	}
	return view
}

func breakdown(table *flight.Table, field flight.Field) CategoryBreakdown {
	out := CategoryBreakdown{Field: field}
	groups, err := aggregate.GroupStats(table, []flight.Field{field}, flight.FieldPrice)
	if err != nil {
		return out
	}
	_, durations := table.PartitionBy(field, flight.FieldDuration)
	_, days := table.PartitionBy(field, flight.FieldDaysLeft)
	for _, g := range groups {
		out.Rows = append(out.Rows, CategoryRow{
			Label:    g.Label,
			Price:    g.Summary,
			Duration: aggregate.Summarize(durations[g.Label]),
			DaysLeft: aggregate.Summarize(days[g.Label]),
		})
	}
	return out
}

// GroupStats summarizes measure per combination of the groupBy fields
func (s *AnalysisService) GroupStats(groupBy []flight.Field, measure flight.Field) ([]aggregate.GroupSummary, error) {
	return aggregate.GroupStats(s.source.Table(), groupBy, measure)
}

// Explore filters the table and computes every exploration view
func (s *AnalysisService) Explore(p filter.Predicates) ExploreView {
	filtered := s.Filtered(p)
	preview := filtered.Records
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}
	return ExploreView{
		Predicates:  p,
		Query:       p.Query(),
		Options:     s.options,
		Rows:        filtered.Len(),
		TotalRows:   s.source.Table().Len(),
		Exploration: aggregate.Explore(filtered),
		Preview:     preview,
	}
}

// Outliers reports Tukey fences for every numeric field of the filtered table
func (s *AnalysisService) Outliers(p filter.Predicates) []aggregate.OutlierReport {
	return aggregate.OutliersByField(s.Filtered(p), flight.NumericFields)
}
