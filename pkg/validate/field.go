package validate

import (
	"slices"

	"github.com/dmitrymomot/formkit/pkg/rules"
)

// Common presentation types for Field.Type. The engine does not interpret
// them; they travel with the descriptor for renderers and binders.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypePassword = "password"
	TypeNumber   = "number"
	TypeCheckbox = "checkbox"
	TypeSelect   = "select"
	TypeTextarea = "textarea"
	TypeHidden   = "hidden"
)

// Field describes one form input and its constraints. Rules run in slice
// order. Required is kept in sync with the presence of a required rule during
// validator construction, so descriptors may declare either. The JSON shape
// matches the field entries in form documents.
type Field struct {
	Name     string       `json:"name"`
	Type     string       `json:"type,omitempty"`
	Required bool         `json:"required,omitempty"`
	Default  any          `json:"default,omitempty"`
	Rules    []rules.Rule `json:"rules,omitempty"`
}

// normalize reconciles the Required flag with the rule list and detaches the
// rule slice from the caller's copy.
func (f Field) normalize() Field {
	f.Rules = slices.Clone(f.Rules)
	hasRequired := slices.ContainsFunc(f.Rules, func(r rules.Rule) bool {
		return r.Kind == rules.KindRequired
	})
	switch {
	case f.Required && !hasRequired:
		f.Rules = append([]rules.Rule{rules.Required()}, f.Rules...)
	case hasRequired && !f.Required:
		f.Required = true
	}
	return f
}
