package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"flightdash/adapters/dataset"
	"flightdash/domain/flight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenWriter struct{ dataset.CSVWriter }

func (brokenWriter) Write(w io.Writer, _ *flight.Table) error {
	fmt.Fprint(w, "airline,price\nIndigo,")
	return fmt.Errorf("disk full")
}

func sampleTable() *flight.Table {
	return flight.NewTable(flight.RequiredFields, []flight.Record{{
		Airline: "Indigo", Flight: "6E-101", SourceCity: "Delhi", DestinationCity: "Mumbai",
		DepartureTime: "Morning", ArrivalTime: "Night", Stops: flight.StopsZero, Class: "Economy",
		Duration: 2.5, DaysLeft: 3, Price: 4500,
	}})
}

func TestWriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeTable(path, dataset.CSVWriter{}, sampleTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Indigo")
}

func TestWriteTableRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := writeTable(path, brokenWriter{}, sampleTable())
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteTableUnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := writeTable(path, dataset.CSVWriter{}, sampleTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to export csv")
}
