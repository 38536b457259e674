package aggregate

import (
	"flightdash/domain/flight"
)

// VariableKind classifies a column for the data overview
type VariableKind string

const (
	KindNominal    VariableKind = "categorical nominal"
	KindOrdinal    VariableKind = "categorical ordinal"
	KindDiscrete   VariableKind = "numeric discrete"
	KindContinuous VariableKind = "numeric continuous"
)

// discreteCardinality is the distinct-value count below which a numeric column counts as discrete
const discreteCardinality = 10

// VariableInfo describes one column of the loaded table
type VariableInfo struct {
	Field    flight.Field `json:"field"`
	Kind     VariableKind `json:"kind"`
	DataType string       `json:"data_type"`
	Distinct int          `json:"distinct"`
	Missing  int          `json:"missing"`
}

// Overview reports kind, storage type, distinct and missing counts for every column
func Overview(table *flight.Table) []VariableInfo {
	out := make([]VariableInfo, 0, len(table.Columns))
	for _, f := range table.Columns {
		info := VariableInfo{Field: f}
		if f.IsCategorical() {
			info.DataType = "string"
			info.Kind = KindNominal
			if f.IsOrdinal() {
				info.Kind = KindOrdinal
			}
			distinct := make(map[string]struct{})
			for i := range table.Records {
				v := table.Records[i].Category(f)
				if v == "" {
					info.Missing++
					continue
				}
				distinct[v] = struct{}{}
			}
			info.Distinct = len(distinct)
		} else {
			info.DataType = "float64"
			if f == flight.FieldIndex || f == flight.FieldDaysLeft {
				info.DataType = "int"
			}
			distinct := make(map[float64]struct{})
			for i := range table.Records {
				distinct[table.Records[i].Number(f)] = struct{}{}
			}
			info.Distinct = len(distinct)
			info.Kind = KindContinuous
			if info.Distinct < discreteCardinality {
				info.Kind = KindDiscrete
			}
		}
		out = append(out, info)
	}
	return out
}
