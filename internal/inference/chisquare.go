package inference

import (
	"math"

	"flightdash/domain/core"
	"flightdash/domain/flight"
)

// Price brackets, lower bound inclusive
const (
	BracketLow     = "Low"
	BracketMedium  = "Medium"
	BracketHigh    = "High"
	BracketPremium = "Premium"
)

// PriceBrackets lists the bracket labels in ascending order
var PriceBrackets = []string{BracketLow, BracketMedium, BracketHigh, BracketPremium}

// PriceBracket maps a price onto [0,5000) Low, [5000,15000) Medium,
// [15000,50000) High and [50000,∞) Premium. Negative prices have no bracket.
func PriceBracket(price float64) (string, bool) {
	switch {
	case math.IsNaN(price) || price < 0:
		return "", false
	case price < 5000:
		return BracketLow, true
	case price < 15000:
		return BracketMedium, true
	case price < 50000:
		return BracketHigh, true
	}
	return BracketPremium, true
}

// Contingency is a two-way frequency table
type Contingency struct {
	Rows     []string    `json:"rows"`
	Columns  []string    `json:"columns"`
	Observed [][]float64 `json:"observed"`
}

// NewContingency builds the table from parallel row/column labels. The row
// and column orders are taken as given; labels absent from the data are
// dropped so no row or column sums to zero.
func NewContingency(rowOrder, colOrder []string, rows, cols []string) Contingency {
	counts := make(map[string]map[string]float64)
	for i := range rows {
		if counts[rows[i]] == nil {
			counts[rows[i]] = make(map[string]float64)
		}
		counts[rows[i]][cols[i]]++
	}

	colTotals := make(map[string]float64)
	for _, byCol := range counts {
		for c, n := range byCol {
			colTotals[c] += n
		}
	}

	var ct Contingency
	for _, c := range colOrder {
		if colTotals[c] > 0 {
			ct.Columns = append(ct.Columns, c)
		}
	}
	for _, r := range rowOrder {
		if len(counts[r]) == 0 {
			continue
		}
		line := make([]float64, len(ct.Columns))
		for j, c := range ct.Columns {
			line[j] = counts[r][c]
		}
		ct.Rows = append(ct.Rows, r)
		ct.Observed = append(ct.Observed, line)
	}
	return ct
}

// Expected returns row total × column total / grand total for every cell
func (c Contingency) Expected() [][]float64 {
	rowTotals := make([]float64, len(c.Rows))
	colTotals := make([]float64, len(c.Columns))
	var total float64
	for i, line := range c.Observed {
		for j, n := range line {
			rowTotals[i] += n
			colTotals[j] += n
			total += n
		}
	}
	expected := make([][]float64, len(c.Rows))
	for i := range c.Rows {
		expected[i] = make([]float64, len(c.Columns))
		for j := range c.Columns {
			expected[i][j] = rowTotals[i] * colTotals[j] / total
		}
	}
	return expected
}

// DegreesOfFreedom is (rows-1)(columns-1)
func (c Contingency) DegreesOfFreedom() int {
	if len(c.Rows) < 2 || len(c.Columns) < 2 {
		return 0
	}
	return (len(c.Rows) - 1) * (len(c.Columns) - 1)
}

// ChiSquareResult is the test of independence with its working tables
type ChiSquareResult struct {
	Result
	Contingency
	Expected       [][]float64 `json:"expected"`
	YatesCorrected bool        `json:"yates_corrected"`
}

// ChiSquareIndependence runs Pearson's chi-square test on c. Yates'
// continuity correction is applied only when df == 1.
func ChiSquareIndependence(test, hypothesis string, c Contingency) ChiSquareResult {
	res := ChiSquareResult{Contingency: c}
	df := c.DegreesOfFreedom()
	if df == 0 {
		res.Result = undefinedResult(test, hypothesis)
		return res
	}

	expected := c.Expected()
	res.Expected = expected
	res.YatesCorrected = df == 1

	var chi2 float64
	for i, line := range c.Observed {
		for j, o := range line {
			e := expected[i][j]
			diff := o - e
			if res.YatesCorrected {
				// the correction never flips the sign of a deviation
				adj := math.Min(0.5, math.Abs(diff))
				diff = math.Abs(diff) - adj
			}
			chi2 += diff * diff / e
		}
	}
	res.Result = newResult(test, hypothesis, chi2, ChiSquarePValue(chi2, float64(df)), float64(df), math.NaN())
	return res
}

// ClassVsPriceBracket tests independence of travel class and price bracket
func ClassVsPriceBracket(table *flight.Table) ChiSquareResult {
	rows := make([]string, 0, table.Len())
	cols := make([]string, 0, table.Len())
	for i := range table.Records {
		rec := &table.Records[i]
		bracket, ok := PriceBracket(rec.Price)
		if !ok {
			continue
		}
		rows = append(rows, rec.Class)
		cols = append(cols, bracket)
	}
	c := NewContingency(table.Distinct(flight.FieldClass), PriceBrackets, rows, cols)
	return ChiSquareIndependence("chi2_class_vs_bracket",
		"H0: travel class and price bracket are independent", c)
}

// CramersV is the effect size of a chi-square result, undefined when the
// test is.
func CramersV(res ChiSquareResult) core.Float {
	if !res.Statistic.Defined() {
		return core.Float(math.NaN())
	}
	var n float64
	for _, line := range res.Observed {
		for _, o := range line {
			n += o
		}
	}
	k := math.Min(float64(len(res.Rows)), float64(len(res.Columns))) - 1
	if n == 0 || k <= 0 {
		return core.Float(math.NaN())
	}
	return core.Float(math.Sqrt(float64(res.Statistic) / (n * k)))
}
