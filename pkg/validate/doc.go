// Package validate turns field descriptors into a form validator.
//
// A Field describes one form input: its name, presentation type, default
// value and ordered rule list. The Validator built from a field set decides
// single fields (ValidateField) and whole forms (ValidateForm) against a
// sibling snapshot, so cross-field rules always see consistent data.
//
// Per field, rules run in declaration order and evaluation stops at the first
// failure; one field reports at most one message per pass. Across fields,
// ValidateForm fans out with one future per field and settles them all, so
// slow custom predicates on one field never delay the verdicts of others.
//
// Construction is lenient about rule kinds by default, matching evaluation.
// WithStrictRules makes New reject unknown kinds and misconfigured rules so
// typos in hand-written descriptors surface immediately.
package validate
