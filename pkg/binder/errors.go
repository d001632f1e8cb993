package binder

import "errors"

// Binding errors
var (
	ErrInvalidTarget = errors.New("invalid bind target")
	ErrBindFailed    = errors.New("failed to bind form values")
)
