package readings

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownReadingType indicates a type outside the known registers.
	ErrUnknownReadingType = errors.New("readings: unknown reading type")
	// ErrUnknownSource indicates a source outside bill/manual.
	ErrUnknownSource = errors.New("readings: unknown reading source")
	// ErrBadDate indicates a date that matched no accepted layout.
	ErrBadDate = errors.New("readings: unparsable date")
	// ErrBadNumber indicates reading text that is not numeric after cleaning.
	ErrBadNumber = errors.New("readings: unparsable reading value")
	// ErrNegativeReading indicates a negative meter value.
	ErrNegativeReading = errors.New("readings: negative reading value")
	// ErrBadHeader indicates a CSV header that does not match the expected columns.
	ErrBadHeader = errors.New("readings: unexpected csv header")
	// ErrEmptyFile indicates a CSV with no data rows.
	ErrEmptyFile = errors.New("readings: no data rows")
)

// ParseError reports a malformed CSV row. The whole file is rejected;
// readings are never silently invented or dropped.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

// Error renders the row location and cause.
func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("readings: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("readings: line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is checks.
func (e *ParseError) Unwrap() error { return e.Err }
