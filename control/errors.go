package control

import (
	"errors"
	"fmt"
)

// Sentinel errors for command handling. These let callers distinguish
// failure modes with errors.Is.
var (
	ErrEmptyCommand   = errors.New("control: empty command")
	ErrUnknownCommand = errors.New("control: unknown command")
	ErrUnknownChannel = errors.New("control: unknown channel")
	ErrMissingArg     = errors.New("control: missing argument")
)

// ParseError indicates a failure to parse one field of a command line. It
// wraps the underlying cause and records which field was being parsed.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("control: parse %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
