package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the top-level YAML shape.
type yamlDocument struct {
	Form   string     `yaml:"form"`
	Fields []fieldDoc `yaml:"fields"`
}

// ParseYAML parses a YAML form document.
func ParseYAML(data []byte) (*Document, error) {
	var raw yamlDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(raw.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidDocument)
	}

	doc := &Document{Name: raw.Form}
	for i, fd := range raw.Fields {
		field, err := buildField(i, fd)
		if err != nil {
			return nil, err
		}
		doc.Fields = append(doc.Fields, field)
	}
	return doc, nil
}
