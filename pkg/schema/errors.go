package schema

import "errors"

var (
	// ErrInvalidDocument is returned for documents that cannot be parsed or
	// that are missing required structure, such as a field without a name.
	ErrInvalidDocument = errors.New("invalid form document")

	// ErrUnsupportedFormat is returned by LoadFile for file extensions it
	// has no parser for.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
