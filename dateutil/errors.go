package dateutil

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValue is returned by Parse, Format and Add when the input cannot
	// be turned into a timestamp.
	ErrNoValue = errors.New("no value")

	// ErrNaN is returned by Distance when either side cannot be normalized
	// or the unit has no fixed length.
	ErrNaN = errors.New("not a number")

	ErrUnknownUnit = errors.New("unknown unit")
)

// ParseError reports where a pattern-driven parse stopped.
// It matches ErrNoValue with errors.Is.
type ParseError struct {
	Pattern string
	Input   string
	Pos     int // rune offset into Input
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q with pattern %q at position %d: %s", e.Input, e.Pattern, e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrNoValue
}
