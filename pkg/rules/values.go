package rules

import (
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Values is a snapshot of form values keyed by field name. Checks that look at
// sibling fields receive a Values captured at validation start, so every rule
// in one pass sees the same data regardless of concurrent edits.
type Values map[string]any

// Clone returns a deep copy of v. Nested maps, []any and []string values are
// copied recursively; scalar values and unrecognized reference types are
// carried over as-is.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = cloneValue(val)
	}
	return out
}

// CloneValue deep-copies a single value with the same rules as Values.Clone.
func CloneValue(value any) any {
	return cloneValue(value)
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Values:
		return v.Clone()
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = cloneValue(val)
		}
		return out
	case map[string]string:
		return maps.Clone(v)
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		return slices.Clone(v)
	default:
		return value
	}
}

// IsEmpty reports whether value counts as absent for required-field purposes:
// nil, a blank or whitespace-only string, a zero-length slice, array or map,
// or a nil pointer. Numbers and booleans are never empty; zero and false are
// real answers.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
