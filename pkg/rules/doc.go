// Package rules provides declarative validation rules for form fields and an
// evaluator that turns a rule plus a field value into a pass/fail result with
// a presentable message.
//
// A Rule is a small value describing one constraint: its Kind selects the
// check, Param carries the kind-specific argument (a length bound, a regular
// expression), Field names a sibling for cross-field comparison, and Predicate
// holds caller-supplied logic for custom rules. Rules are built with the
// constructor functions (Required, MinLength, Match, Custom, ...) and can
// override their message with WithMessage.
//
// Evaluation is ordered and short-circuits at the first failing rule; that
// contract lives one level up, in the validate package. This package decides a
// single rule: Evaluator.Evaluate resolves the check from its Registry, runs
// it against the value and the sibling snapshot, and renders the message from
// the rule override or the registry's locale templates.
//
// Unknown kinds evaluate as valid so documents written for a newer rule set
// degrade gracefully; Registry.ValidateRules offers the strict counterpart
// that rejects unknown kinds and misconfigured rules up front.
//
// The Registry and Evaluator are immutable after construction and safe for
// concurrent use. Two evaluators never share mutable state, so embedding
// several forms with different rule sets or locales in one process is safe.
package rules
