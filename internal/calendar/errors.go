package calendar

import (
	"errors"
	"fmt"
)

const (
	// Gregorian years accepted by the converters. The pre-1601 epoch branch
	// does not round-trip, so those years are rejected.
	MinGregorianYear = 1601
	MaxGregorianYear = 9999

	// Jalali years whose every day maps inside the Gregorian range.
	MinJalaliYear = 980
	MaxJalaliYear = 9377
)

var (
	// ErrInvalidDate reports (year, month, day) components that do not name a day.
	ErrInvalidDate = errors.New("invalid date components")

	// ErrOutOfRange reports a well-formed date outside the supported years.
	ErrOutOfRange = errors.New("date outside supported range")
)

// InvalidDateError carries the rejected components. Month is given exactly as
// the caller passed it (1-based for the converters).
type InvalidDateError struct {
	System System
	Year   int
	Month  int
	Day    int
	Err    error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%s date %04d-%02d-%02d: %v", e.System, e.Year, e.Month, e.Day, e.Err)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

func invalid(s System, y, m, d int, err error) error {
	return &InvalidDateError{System: s, Year: y, Month: m, Day: d, Err: err}
}
