// Package binder copies form values into plain Go structs.
//
// A form holds its values as map[string]any. Binder gives callers typed
// access to that map: declare a struct with `form:` tags and bind the
// values into it, typically after validation has passed.
//
//	type SignupRequest struct {
//	    Email    string   `form:"email"`
//	    Password string   `form:"password"`
//	    Age      int      `form:"age"`
//	    Tags     []string `form:"tags"`
//	    Referrer *string  `form:"referrer"` // optional
//	    Internal string   `form:"-"`        // skipped
//	}
//
//	var req SignupRequest
//	if err := binder.Bind(form.State().Values, &req); err != nil {
//	    return err
//	}
//
// Fields without a tag bind by their lowercased name. Values of the exact
// field type are assigned directly; strings are converted to numeric and
// bool fields the way HTML form submissions require ("42", "on", "yes").
// Missing or nil values leave the field at its zero value, so optional
// fields are best declared as pointers.
//
// Supported field types are string, the integer and float kinds, bool,
// pointers to those, and slices of those. A slice field accepts a slice
// value, a comma-separated string, or a single scalar.
package binder
