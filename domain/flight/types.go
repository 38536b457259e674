package flight

import (
	"fmt"
	"strings"
)

// Field identifies a column of the flight dataset
type Field string

const (
	FieldIndex           Field = "index"
	FieldAirline         Field = "airline"
	FieldFlight          Field = "flight"
	FieldSourceCity      Field = "source_city"
	FieldDepartureTime   Field = "departure_time"
	FieldStops           Field = "stops"
	FieldArrivalTime     Field = "arrival_time"
	FieldDestinationCity Field = "destination_city"
	FieldClass           Field = "class"
	FieldDuration        Field = "duration"
	FieldDaysLeft        Field = "days_left"
	FieldPrice           Field = "price"
)

// RequiredFields must all be present in a dataset file
var RequiredFields = []Field{
	FieldAirline,
	FieldSourceCity,
	FieldDepartureTime,
	FieldStops,
	FieldDestinationCity,
	FieldClass,
	FieldDuration,
	FieldDaysLeft,
	FieldPrice,
}

// OptionalFields are carried through load and export when the file has them
var OptionalFields = []Field{FieldIndex, FieldFlight, FieldArrivalTime}

// CategoricalFields lists the fields filtered by inclusion sets
var CategoricalFields = []Field{
	FieldAirline,
	FieldSourceCity,
	FieldDestinationCity,
	FieldDepartureTime,
	FieldStops,
	FieldClass,
}

// NumericFields lists the fields filtered by inclusive ranges
var NumericFields = []Field{FieldDuration, FieldDaysLeft, FieldPrice}

// Stops values
const (
	StopsZero      = "zero"
	StopsOne       = "one"
	StopsTwoOrMore = "two_or_more"
)

// Booking window of days_left, inclusive
const (
	MinDaysLeft = 1
	MaxDaysLeft = 49
)

// TimeOfDayOrder is the conventional ordering of departure/arrival slots
var TimeOfDayOrder = []string{
	"Early_Morning",
	"Morning",
	"Afternoon",
	"Evening",
	"Night",
	"Late_Night",
}

// TimeOfDayRank returns the ordinal position of a time-of-day label, or -1
func TimeOfDayRank(label string) int {
	for i, v := range TimeOfDayOrder {
		if strings.EqualFold(v, label) {
			return i
		}
	}
	return -1
}

// IsCategorical reports whether the field holds string values
func (f Field) IsCategorical() bool {
	switch f {
	case FieldAirline, FieldFlight, FieldSourceCity, FieldDepartureTime, FieldStops,
		FieldArrivalTime, FieldDestinationCity, FieldClass:
		return true
	}
	return false
}

// IsNumeric reports whether the field holds numeric values
func (f Field) IsNumeric() bool {
	switch f {
	case FieldIndex, FieldDuration, FieldDaysLeft, FieldPrice:
		return true
	}
	return false
}

// IsOrdinal reports whether the categorical field has a conventional ordering
func (f Field) IsOrdinal() bool {
	return f == FieldDepartureTime || f == FieldArrivalTime
}

// ParseField maps a header cell to a known field
func ParseField(header string) (Field, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" || h == "unnamed: 0" {
		return FieldIndex, true
	}
	for _, f := range append(append([]Field{}, RequiredFields...), OptionalFields...) {
		if string(f) == h {
			return f, true
		}
	}
	return "", false
}

// Record is one flight observation
type Record struct {
	Index           int
	Airline         string
	Flight          string
	SourceCity      string
	DepartureTime   string
	Stops           string
	ArrivalTime     string
	DestinationCity string
	Class           string
	Duration        float64
	DaysLeft        int
	Price           float64
}

// Category returns the string value of a categorical field
func (r *Record) Category(f Field) string {
	switch f {
	case FieldAirline:
		return r.Airline
	case FieldFlight:
		return r.Flight
	case FieldSourceCity:
		return r.SourceCity
	case FieldDepartureTime:
		return r.DepartureTime
	case FieldStops:
		return r.Stops
	case FieldArrivalTime:
		return r.ArrivalTime
	case FieldDestinationCity:
		return r.DestinationCity
	case FieldClass:
		return r.Class
	}
	return ""
}

// Number returns the value of a numeric field
func (r *Record) Number(f Field) float64 {
	switch f {
	case FieldIndex:
		return float64(r.Index)
	case FieldDuration:
		return r.Duration
	case FieldDaysLeft:
		return float64(r.DaysLeft)
	case FieldPrice:
		return r.Price
	}
	return 0
}

// IsDirect reports whether the flight has no stops
func (r *Record) IsDirect() bool {
	return r.Stops == StopsZero
}

// Check returns a description of the first domain rule r breaks, or ""
func (r *Record) Check() (Field, string) {
	switch {
	case r.Stops != StopsZero && r.Stops != StopsOne && r.Stops != StopsTwoOrMore:
		return FieldStops, "must be zero, one or two_or_more"
	case !(r.Duration > 0):
		return FieldDuration, "must be positive"
	case r.DaysLeft < MinDaysLeft || r.DaysLeft > MaxDaysLeft:
		return FieldDaysLeft, fmt.Sprintf("must be between %d and %d", MinDaysLeft, MaxDaysLeft)
	case !(r.Price > 0):
		return FieldPrice, "must be positive"
	}
	return "", ""
}

// Table is an ordered, read-only sequence of records
type Table struct {
	// Columns preserves the header order of the source file
	Columns []Field
	Records []Record
}

// NewTable creates a table with the given column layout
func NewTable(columns []Field, records []Record) *Table {
	return &Table{Columns: columns, Records: records}
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Empty reports whether the table has no rows
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// HasColumn reports whether the table carries the given column
func (t *Table) HasColumn(f Field) bool {
	for _, c := range t.Columns {
		if c == f {
			return true
		}
	}
	return false
}

// Values extracts a numeric column
func (t *Table) Values(f Field) []float64 {
	out := make([]float64, 0, t.Len())
	for i := range t.Records {
		out = append(out, t.Records[i].Number(f))
	}
	return out
}

// Distinct returns the distinct values of a categorical field in first-seen order
func (t *Table) Distinct(f Field) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range t.Records {
		v := t.Records[i].Category(f)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Range returns the observed min and max of a numeric field; ok is false on an empty table
func (t *Table) Range(f Field) (lo, hi float64, ok bool) {
	for i := range t.Records {
		v := t.Records[i].Number(f)
		if !ok || v < lo {
			lo = v
		}
		if !ok || v > hi {
			hi = v
		}
		ok = true
	}
	return lo, hi, ok
}

// Where returns a new table holding the rows that satisfy keep
func (t *Table) Where(keep func(*Record) bool) *Table {
	out := make([]Record, 0, t.Len())
	for i := range t.Records {
		if keep(&t.Records[i]) {
			out = append(out, t.Records[i])
		}
	}
	return &Table{Columns: t.Columns, Records: out}
}

// PartitionBy splits a numeric field by the values of a categorical field,
// returning groups in first-seen key order
func (t *Table) PartitionBy(key, measure Field) ([]string, map[string][]float64) {
	var keys []string
	groups := make(map[string][]float64)
	for i := range t.Records {
		k := t.Records[i].Category(key)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], t.Records[i].Number(measure))
	}
	return keys, groups
}
