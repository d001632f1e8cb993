package binder

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Bind copies values into the exported fields of the struct v points to.
// Field names come from the `form:` tag, falling back to the lowercased
// field name; `form:"-"` skips a field. Missing and nil values leave the
// field untouched.
func Bind(values map[string]any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidTarget)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidTarget)
	}

	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		name, skip := parseFieldTag(fieldType)
		if skip {
			continue
		}

		value, exists := values[name]
		if !exists || value == nil {
			continue
		}

		if err := setFieldValue(field, fieldType.Type, value); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrBindFailed, fieldType.Name, err)
		}
	}

	return nil
}

// parseFieldTag resolves the value key for a struct field and whether
// the field is excluded from binding.
func parseFieldTag(field reflect.StructField) (name string, skip bool) {
	tag := field.Tag.Get("form")
	if tag == "" {
		return strings.ToLower(field.Name), false
	}
	if tag == "-" {
		return "", true
	}

	// Drop tag options such as "name,omitempty".
	if idx := strings.Index(tag, ","); idx != -1 {
		tag = tag[:idx]
	}
	if tag == "" {
		return strings.ToLower(field.Name), false
	}
	return tag, false
}

func setFieldValue(field reflect.Value, fieldType reflect.Type, value any) error {
	if fieldType.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), value)
	}

	if fieldType.Kind() == reflect.Slice {
		return setSliceValue(field, fieldType, value)
	}

	// Identical or assignable types bind without conversion.
	if rv := reflect.ValueOf(value); rv.IsValid() && rv.Type().AssignableTo(fieldType) {
		field.Set(rv)
		return nil
	}

	switch fieldType.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot bind %T to string", value)
		}
		field.SetString(s)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(value, fieldType.Bits())
		if err != nil {
			return err
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, fieldType.Kind())
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toUint64(value, fieldType.Bits())
		if err != nil {
			return err
		}
		if field.OverflowUint(n) {
			return fmt.Errorf("value %d overflows %s", n, fieldType.Kind())
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := toFloat64(value, fieldType.Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := toBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}

// setSliceValue fills a slice field from a slice, a comma-separated
// string, or a single scalar.
func setSliceValue(field reflect.Value, fieldType reflect.Type, value any) error {
	elemType := fieldType.Elem()

	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			items = append(items, strings.TrimSpace(part))
		}
	default:
		items = []any{value}
	}

	slice := reflect.MakeSlice(fieldType, len(items), len(items))
	for i, item := range items {
		if err := setFieldValue(slice.Index(i), elemType, item); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}

func toInt64(value any, bits int) (int64, error) {
	switch v := value.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, bits)
		if err != nil {
			return 0, fmt.Errorf("invalid int value %q", v)
		}
		return n, nil
	default:
		rv := reflect.ValueOf(value)
		switch {
		case rv.CanInt():
			return rv.Int(), nil
		case rv.CanUint():
			u := rv.Uint()
			if u > math.MaxInt64 {
				return 0, fmt.Errorf("value %d overflows int64", u)
			}
			return int64(u), nil
		case rv.CanFloat():
			f := rv.Float()
			if f != math.Trunc(f) {
				return 0, fmt.Errorf("cannot bind fractional value %v to int", f)
			}
			return int64(f), nil
		}
		return 0, fmt.Errorf("cannot bind %T to int", value)
	}
}

func toUint64(value any, bits int) (uint64, error) {
	switch v := value.(type) {
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, bits)
		if err != nil {
			return 0, fmt.Errorf("invalid uint value %q", v)
		}
		return n, nil
	default:
		rv := reflect.ValueOf(value)
		switch {
		case rv.CanUint():
			return rv.Uint(), nil
		case rv.CanInt():
			n := rv.Int()
			if n < 0 {
				return 0, fmt.Errorf("cannot bind negative value %d to uint", n)
			}
			return uint64(n), nil
		case rv.CanFloat():
			f := rv.Float()
			if f < 0 || f != math.Trunc(f) {
				return 0, fmt.Errorf("cannot bind value %v to uint", f)
			}
			return uint64(f), nil
		}
		return 0, fmt.Errorf("cannot bind %T to uint", value)
	}
}

func toFloat64(value any, bits int) (float64, error) {
	switch v := value.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), bits)
		if err != nil {
			return 0, fmt.Errorf("invalid float value %q", v)
		}
		return f, nil
	default:
		rv := reflect.ValueOf(value)
		switch {
		case rv.CanFloat():
			return rv.Float(), nil
		case rv.CanInt():
			return float64(rv.Int()), nil
		case rv.CanUint():
			return float64(rv.Uint()), nil
		}
		return 0, fmt.Errorf("cannot bind %T to float", value)
	}
}

func toBool(value any) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("cannot bind %T to bool", value)
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		// Checkbox submissions use HTML-flavored values.
		switch strings.ToLower(s) {
		case "on", "yes":
			return true, nil
		case "off", "no", "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid bool value %q", s)
		}
	}
	return b, nil
}
