package rules

import "errors"

var (
	// ErrUnknownKind is returned by Registry.ValidateRules for rules whose
	// kind has no registered check.
	ErrUnknownKind = errors.New("unknown rule kind")

	// ErrInvalidRule marks a rule whose configuration cannot be evaluated:
	// an uncompilable pattern, a non-integer length bound, a match rule
	// without a field. Evaluation treats such rules as passing; strict
	// construction rejects them.
	ErrInvalidRule = errors.New("invalid rule")
)
