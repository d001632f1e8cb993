package formstate

import "errors"

var (
	// ErrClosed is returned by mutating methods after Close.
	ErrClosed = errors.New("form state machine is closed")

	// ErrUnknownField is returned for field names the machine was not
	// constructed with.
	ErrUnknownField = errors.New("unknown field")
)
