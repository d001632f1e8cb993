package validate

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

// Validator validates field values against their descriptors. Immutable after
// construction and safe for concurrent use.
type Validator struct {
	evaluator *rules.Evaluator
	fields    []Field
	index     map[string]int
	names     []string
}

// Option configures a Validator during construction.
type Option func(*config)

type config struct {
	evaluator *rules.Evaluator
	strict    bool
}

// WithEvaluator sets the rule evaluator. Defaults to an evaluator with the
// built-in registry and English messages.
func WithEvaluator(evaluator *rules.Evaluator) Option {
	return func(c *config) {
		if evaluator != nil {
			c.evaluator = evaluator
		}
	}
}

// WithStrictRules makes New reject descriptors whose rules would be skipped
// by lenient evaluation: unknown kinds, uncompilable patterns, bad params.
func WithStrictRules() Option {
	return func(c *config) {
		c.strict = true
	}
}

// New builds a validator from field descriptors. Field order is preserved and
// becomes the form's field order. Descriptors are copied; later changes to
// the caller's slice do not affect the validator.
func New(fields []Field, opts ...Option) (*Validator, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.evaluator == nil {
		cfg.evaluator = rules.NewEvaluator()
	}

	v := &Validator{
		evaluator: cfg.evaluator,
		fields:    make([]Field, 0, len(fields)),
		index:     make(map[string]int, len(fields)),
		names:     make([]string, 0, len(fields)),
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, exists := v.index[f.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		f = f.normalize()
		if cfg.strict {
			if err := cfg.evaluator.Registry().ValidateRules(f.Rules); err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
		}
		v.index[f.Name] = len(v.fields)
		v.fields = append(v.fields, f)
		v.names = append(v.names, f.Name)
	}

	return v, nil
}

// Evaluator returns the validator's rule evaluator.
func (v *Validator) Evaluator() *rules.Evaluator {
	return v.evaluator
}

// Fields returns the normalized descriptors in declaration order.
func (v *Validator) Fields() []Field {
	out := make([]Field, len(v.fields))
	for i, f := range v.fields {
		f.Rules = slices.Clone(f.Rules)
		out[i] = f
	}
	return out
}

// Field returns the descriptor for name.
func (v *Validator) Field(name string) (Field, bool) {
	i, ok := v.index[name]
	if !ok {
		return Field{}, false
	}
	f := v.fields[i]
	f.Rules = slices.Clone(f.Rules)
	return f, true
}

// Names returns the field names in declaration order.
func (v *Validator) Names() []string {
	return slices.Clone(v.names)
}

// Defaults returns a fresh values map holding every field's default. Fields
// without a default are present with a nil value, so the map's key set always
// mirrors the form.
func (v *Validator) Defaults() rules.Values {
	defaults := make(rules.Values, len(v.fields))
	for _, f := range v.fields {
		defaults[f.Name] = f.Default
	}
	return defaults.Clone()
}

// ValidateField runs the named field's rules against value in declaration
// order and returns the first failing rule's message, or "" when all pass.
// siblings is the snapshot cross-field rules read; it must not be mutated
// while the call runs. The error return reports engine problems (unknown
// field, canceled context), never rule failures.
func (v *Validator) ValidateField(ctx context.Context, name string, value any, siblings rules.Values) (string, error) {
	i, ok := v.index[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	for _, rule := range v.fields[i].Rules {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		res := v.evaluator.Evaluate(ctx, value, rule, siblings)
		// A result produced under a canceled context is void; the attempt
		// is abandoned rather than merged.
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !res.Valid {
			return res.Message, nil
		}
	}
	return "", nil
}

type fieldOutcome struct {
	name    string
	message string
}

// ValidateForm validates every field concurrently against the values
// snapshot and returns a map holding one message per failing field. Valid
// fields are absent, so an empty map means the form is valid. All fields
// read the same snapshot; values must not be mutated while the call runs.
func (v *Validator) ValidateForm(ctx context.Context, values rules.Values) (map[string]string, error) {
	futures := make([]*async.Future[fieldOutcome], len(v.fields))
	for i, f := range v.fields {
		name := f.Name
		futures[i] = async.Run(ctx, func(ctx context.Context) (fieldOutcome, error) {
			message, err := v.ValidateField(ctx, name, values[name], values)
			if err != nil {
				return fieldOutcome{}, err
			}
			return fieldOutcome{name: name, message: message}, nil
		})
	}

	outcomes, err := async.Settle(futures...)
	if err != nil {
		return nil, err
	}

	failures := make(map[string]string)
	for _, out := range outcomes {
		if out.message != "" {
			failures[out.name] = out.message
		}
	}
	return failures, nil
}
