package validate

import "errors"

var (
	// ErrEmptyFieldName is returned by New for a field without a name.
	ErrEmptyFieldName = errors.New("field name cannot be empty")

	// ErrDuplicateField is returned by New when two fields share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrUnknownField is returned when a field name is not part of the form.
	ErrUnknownField = errors.New("unknown field")
)
