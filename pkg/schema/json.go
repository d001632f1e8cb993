package schema

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseJSON parses a JSON form document. Numeric params arrive as float64,
// which the rule checks accept for integer bounds.
func ParseJSON(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}

	root := gjson.ParseBytes(data)
	fields := root.Get("fields")
	if !fields.Exists() || !fields.IsArray() {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidDocument)
	}
	entries := fields.Array()
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidDocument)
	}

	doc := &Document{Name: root.Get("form").String()}
	for i, entry := range entries {
		fd := fieldDoc{
			Name:     entry.Get("name").String(),
			Type:     entry.Get("type").String(),
			Required: entry.Get("required").Bool(),
			Default:  entry.Get("default").Value(),
		}
		for _, ruleEntry := range entry.Get("rules").Array() {
			fd.Rules = append(fd.Rules, ruleEntry.Value())
		}

		field, err := buildField(i, fd)
		if err != nil {
			return nil, err
		}
		doc.Fields = append(doc.Fields, field)
	}
	return doc, nil
}
