package formkit

import (
	"errors"

	"github.com/dmitrymomot/formkit/pkg/formstate"
	"github.com/dmitrymomot/formkit/pkg/validate"
)

var (
	// ErrNoFields is returned by New when the descriptor list is empty.
	ErrNoFields = errors.New("formkit: form needs at least one field")

	// ErrInvalidMode is returned for validation modes other than onChange,
	// onBlur and onSubmit.
	ErrInvalidMode = errors.New("formkit: invalid validation mode")

	// ErrClosed is returned by operations on a closed form.
	ErrClosed = formstate.ErrClosed

	// ErrUnknownField is returned for field names the form was not built
	// with.
	ErrUnknownField = formstate.ErrUnknownField

	// ErrEmptyFieldName and ErrDuplicateField surface descriptor problems
	// from New.
	ErrEmptyFieldName = validate.ErrEmptyFieldName
	ErrDuplicateField = validate.ErrDuplicateField
)
