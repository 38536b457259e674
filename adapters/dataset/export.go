package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"flightdash/domain/flight"
	"flightdash/internal/errors"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// FormatCell renders one field of a record. Floats use the shortest
// representation that parses back to the same value.
func FormatCell(rec *flight.Record, f flight.Field) string {
	switch f {
	case flight.FieldIndex:
		return strconv.Itoa(rec.Index)
	case flight.FieldDaysLeft:
		return strconv.Itoa(rec.DaysLeft)
	case flight.FieldDuration:
		return strconv.FormatFloat(rec.Duration, 'f', -1, 64)
	case flight.FieldPrice:
		return strconv.FormatFloat(rec.Price, 'f', -1, 64)
	}
	return rec.Category(f)
}

func header(table *flight.Table) []string {
	out := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		out[i] = string(c)
	}
	return out
}

// WriteCSV serializes the table with the column order it was loaded with
func WriteCSV(w io.Writer, table *flight.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(table)); err != nil {
		return errors.ExportError("csv", err)
	}
	row := make([]string, len(table.Columns))
	for i := range table.Records {
		for j, c := range table.Columns {
			row[j] = FormatCell(&table.Records[i], c)
		}
		if err := cw.Write(row); err != nil {
			return errors.ExportError("csv", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.ExportError("csv", err)
	}
	return nil
}

// WriteXLSX serializes the table into Sheet1 of a new workbook
func WriteXLSX(w io.Writer, table *flight.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return errors.ExportError("xlsx", err)
	}

	headerCells := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		headerCells[i] = string(c)
	}
	if err := sw.SetRow("A1", headerCells); err != nil {
		return errors.ExportError("xlsx", err)
	}

	for i := range table.Records {
		rec := &table.Records[i]
		cells := make([]interface{}, len(table.Columns))
		for j, c := range table.Columns {
			switch c {
			case flight.FieldIndex:
				cells[j] = rec.Index
			case flight.FieldDaysLeft:
				cells[j] = rec.DaysLeft
			case flight.FieldDuration:
				cells[j] = rec.Duration
			case flight.FieldPrice:
				cells[j] = rec.Price
			default:
				cells[j] = rec.Category(c)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.ExportError("xlsx", err)
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return errors.ExportError("xlsx", fmt.Errorf("row %d: %w", i+2, err))
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.ExportError("xlsx", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return errors.ExportError("xlsx", err)
	}
	return nil
}
