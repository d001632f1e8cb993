package formkit

import (
	"github.com/dmitrymomot/formkit/pkg/rules"
	"github.com/dmitrymomot/formkit/pkg/validate"
)

// Rule is a single declarative constraint; see the rules package.
type Rule = rules.Rule

// Predicate is the check body of a custom rule.
type Predicate = rules.Predicate

// Rule constructors, re-exported so simple forms need only this package.
var (
	Required  = rules.Required
	MinLength = rules.MinLength
	MaxLength = rules.MaxLength
	Pattern   = rules.Pattern
	Email     = rules.Email
	URL       = rules.URL
	Phone     = rules.Phone
	Number    = rules.Number
	Match     = rules.Match
	Custom    = rules.Custom
)

// Presentation types for Field.Type.
const (
	TypeText     = validate.TypeText
	TypeEmail    = validate.TypeEmail
	TypePassword = validate.TypePassword
	TypeNumber   = validate.TypeNumber
	TypeCheckbox = validate.TypeCheckbox
	TypeSelect   = validate.TypeSelect
	TypeTextarea = validate.TypeTextarea
	TypeHidden   = validate.TypeHidden
)
