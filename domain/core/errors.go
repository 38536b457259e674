package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Dataset errors
	ErrDatasetMissing = errors.New("dataset file not found")
	ErrMissingColumn  = errors.New("dataset is missing a required column")
	ErrMalformedRow   = errors.New("malformed dataset row")
	ErrUnsupported    = errors.New("unsupported dataset format")

	// Analysis errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrUnknownField     = errors.New("unknown field")
)

// NewMissingColumnError names the absent column
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

// NewMalformedRowError reports a cell that could not be parsed
func NewMalformedRowError(line int, column, value string, cause error) error {
	return fmt.Errorf("%w: line %d column %s value %q: %v", ErrMalformedRow, line, column, value, cause)
}

// NewUnknownFieldError reports a field name that is not part of the schema
func NewUnknownFieldError(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}

// IsDatasetError reports whether err came from reading the dataset
func IsDatasetError(err error) bool {
	return errors.Is(err, ErrDatasetMissing) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrMalformedRow) ||
		errors.Is(err, ErrUnsupported)
}
