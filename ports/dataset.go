package ports

import (
	"io"
	"time"

	"flightdash/domain/flight"
)

// TableSource provides read-only access to the loaded flight table.
// Implementations load once and never mutate the returned table.
type TableSource interface {
	Table() *flight.Table
	Path() string
	LoadedAt() time.Time
}

// TableWriter serializes a table in one download format
type TableWriter interface {
	ContentType() string
	Extension() string
	Write(w io.Writer, table *flight.Table) error
}
