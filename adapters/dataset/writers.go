package dataset

import (
	"io"
	"strings"

	"flightdash/domain/flight"
	"flightdash/internal/errors"
	"flightdash/ports"
)

// CSVWriter is the text/csv download format
type CSVWriter struct{}

func (CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }
func (CSVWriter) Extension() string   { return "csv" }
func (CSVWriter) Write(w io.Writer, table *flight.Table) error {
	return WriteCSV(w, table)
}

// XLSXWriter is the Excel workbook download format
type XLSXWriter struct{}

func (XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (XLSXWriter) Extension() string { return "xlsx" }
func (XLSXWriter) Write(w io.Writer, table *flight.Table) error {
	return WriteXLSX(w, table)
}

var (
	_ ports.TableWriter = CSVWriter{}
	_ ports.TableWriter = XLSXWriter{}
	_ ports.TableSource = (*Store)(nil)
)

// WriterFor picks the writer by extension (csv or xlsx)
func WriterFor(ext string) (ports.TableWriter, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return CSVWriter{}, nil
	case "xlsx":
		return XLSXWriter{}, nil
	}
	return nil, errors.InvalidInput("unsupported export format: " + ext)
}
