package rules

import "context"

// Kind identifies a validation rule type. Kinds are plain strings so
// declarative form documents can name them directly.
type Kind string

const (
	KindRequired  Kind = "required"
	KindMinLength Kind = "minLength"
	KindMaxLength Kind = "maxLength"
	KindPattern   Kind = "pattern"
	KindEmail     Kind = "email"
	KindURL       Kind = "url"
	KindPhone     Kind = "phone"
	KindNumber    Kind = "number"
	KindMatch     Kind = "match"
	KindCustom    Kind = "custom"
)

// Predicate is caller-supplied logic for custom rules. It receives the value
// under validation and a snapshot of the sibling values, and reports whether
// the value is acceptable. Slow work (lookups, remote calls) belongs here and
// is awaited in place; honor ctx cancellation in long-running predicates. A
// non-nil error fails the rule.
type Predicate func(ctx context.Context, value any, siblings Values) (bool, error)

// Check decides a single rule against a value. Built-in checks live in this
// package; additional kinds are registered with WithCheck.
type Check func(ctx context.Context, value any, rule Rule, siblings Values) (bool, error)

// Rule describes one field constraint. Kind selects the check, Param carries
// the kind-specific argument, Field names the sibling for match rules, and
// Predicate holds the logic for custom rules. Message, when non-empty,
// replaces the registry template for this rule.
//
// The JSON shape matches the rule objects in form documents. Predicates are
// code and never serialize.
type Rule struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message,omitempty"`
	Param     any       `json:"param,omitempty"`
	Field     string    `json:"field,omitempty"`
	Predicate Predicate `json:"-"`
}

// WithMessage returns a copy of the rule with its message template replaced.
// The template may reference {value} (the rule's param) and {field} (the
// sibling name for match rules).
func (r Rule) WithMessage(message string) Rule {
	r.Message = message
	return r
}

// Required fails on empty values: nil, blank strings, empty collections.
func Required() Rule {
	return Rule{Kind: KindRequired}
}

// MinLength requires a string value of at least min characters (runes, not
// bytes). Non-string values fail.
func MinLength(min int) Rule {
	return Rule{Kind: KindMinLength, Param: min}
}

// MaxLength requires a string value of at most max characters. Non-string
// values fail.
func MaxLength(max int) Rule {
	return Rule{Kind: KindMaxLength, Param: max}
}

// Pattern requires a string value matching the regular expression expr.
// Compiled patterns are memoized per source string. A pattern that does not
// compile makes the rule pass during evaluation and fail
// Registry.ValidateRules; a rule with no pattern at all always passes.
func Pattern(expr string) Rule {
	return Rule{Kind: KindPattern, Param: expr}
}

// Email requires a parseable address with a dotted domain.
func Email() Rule {
	return Rule{Kind: KindEmail}
}

// URL requires an absolute URL with a scheme and host.
func URL() Rule {
	return Rule{Kind: KindURL}
}

// Phone requires a string of exactly ten decimal digits, with no separators
// and no country code.
func Phone() Rule {
	return Rule{Kind: KindPhone}
}

// Number requires a finite numeric value or a non-empty string that parses
// as one.
func Number() Rule {
	return Rule{Kind: KindNumber}
}

// Match requires the value to equal the named sibling field's value. A
// sibling missing from the snapshot fails the rule.
func Match(field string) Rule {
	return Rule{Kind: KindMatch, Field: field}
}

// Custom runs the supplied predicate. A nil predicate always passes.
func Custom(predicate Predicate) Rule {
	return Rule{Kind: KindCustom, Predicate: predicate}
}
