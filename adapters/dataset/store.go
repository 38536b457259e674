package dataset

import (
	"log"
	"time"

	"flightdash/domain/flight"
)

// Store holds the dataset for the lifetime of the process.
//
// It is built once in main before any request is served and never reloaded
// or torn down; the source file is assumed static while the process runs.
// Every caller of Table receives the same read-only table.
type Store struct {
	path     string
	table    *flight.Table
	loadedAt time.Time
}

// NewStore loads the dataset eagerly. A failure is a LoadError and should halt startup.
func NewStore(path string) (*Store, error) {
	start := time.Now()
	table, err := Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("[Store] Dataset %s loaded in %s (%d records)", path, time.Since(start).Round(time.Millisecond), table.Len())
	return &Store{path: path, table: table, loadedAt: time.Now()}, nil
}

// NewStoreFromTable wraps an already-built table, for tests and tooling
func NewStoreFromTable(table *flight.Table) *Store {
	return &Store{path: "memory", table: table, loadedAt: time.Now()}
}

// Table returns the loaded table. Callers must not mutate it.
func (s *Store) Table() *flight.Table {
	return s.table
}

// Path returns the file the store was loaded from
func (s *Store) Path() string {
	return s.path
}

// LoadedAt returns when the dataset was read
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}
