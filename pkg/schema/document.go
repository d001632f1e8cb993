package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/dmitrymomot/formkit/pkg/rules"
	"github.com/dmitrymomot/formkit/pkg/validate"
)

// Document is a parsed form document: the form's name and its field
// descriptors in declaration order, with every rule normalized to the
// canonical representation.
type Document struct {
	Name   string
	Fields []validate.Field
}

// fieldDoc mirrors one field entry as it appears on the wire. Rules stay
// untyped here because a rule is either a kind string or an object.
type fieldDoc struct {
	Name     string `yaml:"name" mapstructure:"name"`
	Type     string `yaml:"type" mapstructure:"type"`
	Required bool   `yaml:"required" mapstructure:"required"`
	Default  any    `yaml:"default" mapstructure:"default"`
	Rules    []any  `yaml:"rules" mapstructure:"rules"`
}

// ruleDoc mirrors the object form of a rule.
type ruleDoc struct {
	Kind    string `mapstructure:"kind"`
	Message string `mapstructure:"message"`
	Param   any    `mapstructure:"param"`
	Field   string `mapstructure:"field"`
}

// LoadFile reads and parses a document, choosing the parser from the file
// extension: .yaml and .yml for YAML, .json for JSON.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// buildField normalizes one wire-shape field into a descriptor.
func buildField(index int, fd fieldDoc) (validate.Field, error) {
	if fd.Name == "" {
		return validate.Field{}, fmt.Errorf("%w: field %d has no name", ErrInvalidDocument, index)
	}

	field := validate.Field{
		Name:     fd.Name,
		Type:     fd.Type,
		Required: fd.Required,
		Default:  fd.Default,
	}

	for i, raw := range fd.Rules {
		rule, err := buildRule(raw)
		if err != nil {
			return validate.Field{}, fmt.Errorf("field %q: rule %d: %w", fd.Name, i, err)
		}
		field.Rules = append(field.Rules, rule)
	}
	return field, nil
}

// buildRule maps a wire-shape rule onto the canonical Rule: a bare string is
// a parameterless kind, an object carries the full configuration.
func buildRule(raw any) (rules.Rule, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return rules.Rule{}, fmt.Errorf("%w: empty rule kind", ErrInvalidDocument)
		}
		return rules.Rule{Kind: rules.Kind(v)}, nil
	case map[string]any:
		var rd ruleDoc
		if err := mapstructure.Decode(v, &rd); err != nil {
			return rules.Rule{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		if rd.Kind == "" {
			return rules.Rule{}, fmt.Errorf("%w: rule object has no kind", ErrInvalidDocument)
		}
		return rules.Rule{
			Kind:    rules.Kind(rd.Kind),
			Message: rd.Message,
			Param:   rd.Param,
			Field:   rd.Field,
		}, nil
	default:
		return rules.Rule{}, fmt.Errorf("%w: rule must be a string or an object, got %T", ErrInvalidDocument, raw)
	}
}
