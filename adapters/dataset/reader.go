package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"flightdash/domain/core"
	"flightdash/domain/flight"
	"flightdash/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads the flight dataset from a CSV or Excel file
type DataReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewDataReader creates a reader; the format is chosen by file extension
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Load reads and parses the file at path. Any failure is a LoadError.
func Load(path string) (*flight.Table, error) {
	return NewDataReader(path).Read()
}

// Read parses the file into a table
func (r *DataReader) Read() (*flight.Table, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.LoadError(r.filePath, fmt.Errorf("%w: %s", core.ErrDatasetMissing, r.filePath))
	}

	var (
		rows [][]string
		err  error
	)
	readStart := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		err = fmt.Errorf("%w: %s", core.ErrUnsupported, r.fileType)
	}
	if err != nil {
		return nil, errors.LoadError(r.filePath, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", strings.ToUpper(r.fileType),
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	table, err := ParseRows(rows)
	if err != nil {
		return nil, errors.LoadError(r.filePath, err)
	}
	return table, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// readExcelRows reads Sheet1 of a workbook
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheetName, err)
	}
	return rows, nil
}

// ReadCSV reads all records from a CSV stream
func ReadCSV(in io.Reader) ([][]string, error) {
	reader := csv.NewReader(in)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedRow, err)
	}
	return rows, nil
}

// ParseRows converts a header row plus data rows into a typed table.
// Every required column must be present; unknown columns are ignored.
func ParseRows(rows [][]string) (*flight.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file has no header row", core.ErrMalformedRow)
	}

	positions := make(map[flight.Field]int)
	var columns []flight.Field
	for i, header := range rows[0] {
		field, ok := flight.ParseField(header)
		if !ok {
			log.Printf("[DataReader] Ignoring unknown column %q", header)
			continue
		}
		if _, dup := positions[field]; dup {
			continue
		}
		positions[field] = i
		columns = append(columns, field)
	}
	for _, required := range flight.RequiredFields {
		if _, ok := positions[required]; !ok {
			return nil, core.NewMissingColumnError(string(required))
		}
	}

	records := make([]flight.Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		rec, err := parseRecord(row, positions, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	log.Printf("[DataReader] Parsed %d columns, %d records", len(columns), len(records))
	return flight.NewTable(columns, records), nil
}

func parseRecord(row []string, positions map[flight.Field]int, line int) (flight.Record, error) {
	cell := func(f flight.Field) (string, bool) {
		pos, ok := positions[f]
		if !ok {
			return "", false
		}
		if pos >= len(row) {
			return "", true
		}
		return strings.TrimSpace(row[pos]), true
	}

	var rec flight.Record
	var err error

	if v, ok := cell(flight.FieldIndex); ok && v != "" {
		if rec.Index, err = strconv.Atoi(v); err != nil {
			return rec, core.NewMalformedRowError(line, string(flight.FieldIndex), v, err)
		}
	}

	for _, f := range []flight.Field{
		flight.FieldAirline, flight.FieldFlight, flight.FieldSourceCity, flight.FieldDepartureTime,
		flight.FieldStops, flight.FieldArrivalTime, flight.FieldDestinationCity, flight.FieldClass,
	} {
		v, ok := cell(f)
		if !ok {
			continue
		}
		if v == "" && isRequired(f) {
			return rec, core.NewMalformedRowError(line, string(f), v, fmt.Errorf("empty value"))
		}
		setCategory(&rec, f, v)
	}

	v, _ := cell(flight.FieldDuration)
	if rec.Duration, err = strconv.ParseFloat(v, 64); err != nil {
		return rec, core.NewMalformedRowError(line, string(flight.FieldDuration), v, err)
	}
	v, _ = cell(flight.FieldDaysLeft)
	if rec.DaysLeft, err = strconv.Atoi(v); err != nil {
		return rec, core.NewMalformedRowError(line, string(flight.FieldDaysLeft), v, err)
	}
	v, _ = cell(flight.FieldPrice)
	if rec.Price, err = strconv.ParseFloat(v, 64); err != nil {
		return rec, core.NewMalformedRowError(line, string(flight.FieldPrice), v, err)
	}
	if f, rule := rec.Check(); rule != "" {
		v, _ = cell(f)
		return rec, core.NewMalformedRowError(line, string(f), v, fmt.Errorf("%s", rule))
	}
	return rec, nil
}

func setCategory(rec *flight.Record, f flight.Field, v string) {
	switch f {
	case flight.FieldAirline:
		rec.Airline = v
	case flight.FieldFlight:
		rec.Flight = v
	case flight.FieldSourceCity:
		rec.SourceCity = v
	case flight.FieldDepartureTime:
		rec.DepartureTime = v
	case flight.FieldStops:
		rec.Stops = v
	case flight.FieldArrivalTime:
		rec.ArrivalTime = v
	case flight.FieldDestinationCity:
		rec.DestinationCity = v
	case flight.FieldClass:
		rec.Class = v
	}
}

func isRequired(f flight.Field) bool {
	for _, r := range flight.RequiredFields {
		if r == f {
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
