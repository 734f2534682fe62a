// Package errs defines the error values shared by the iqrfit packages.
//
// Sentinel errors are matched with errors.Is; the typed errors carry the
// context of the failure and unwrap to their sentinel.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput reports a dataset that cannot be regressed.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrEmptyInput reports quartiles requested over zero values.
	ErrEmptyInput = errors.New("empty input")
	// ErrInsufficientData reports that outlier removal left fewer than two points.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidObservation reports a malformed input record.
	ErrInvalidObservation = errors.New("invalid observation")
	// ErrUnsupportedCompression reports an unknown compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression")
)

// DegenerateInputError is returned when a line cannot be fitted: fewer than
// two points, or zero variance in the independent variable.
type DegenerateInputError struct {
	N      int
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input (%d points): %s", e.N, e.Reason)
}

func (e *DegenerateInputError) Unwrap() error {
	return ErrDegenerateInput
}

// EmptyInputError is returned when quartiles are requested for zero values.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "empty input: quartiles need at least one value"
}

func (e *EmptyInputError) Unwrap() error {
	return ErrEmptyInput
}

// InsufficientDataError records that iteration stopped because removing the
// outliers of Round would leave only Remaining points. It is a note on a
// result, not a failure.
type InsufficientDataError struct {
	Round     int
	Remaining int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data after round %d: %d points remain", e.Round, e.Remaining)
}

func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}
