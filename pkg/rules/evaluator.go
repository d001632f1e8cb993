package rules

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Result is the outcome of evaluating one rule against one value.
type Result struct {
	Valid   bool
	Message string
}

// Evaluator decides single rules using a registry's checks and renders
// failure messages in its configured locale. Immutable after construction
// and safe for concurrent use.
type Evaluator struct {
	registry  *Registry
	logger    *slog.Logger
	rawLocale string
	locale    string
}

// EvaluatorOption configures an Evaluator during construction.
type EvaluatorOption func(*Evaluator)

// WithRegistry sets the check and template registry. Defaults to a registry
// with the built-in checks and English templates.
func WithRegistry(registry *Registry) EvaluatorOption {
	return func(e *Evaluator) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithLocale sets the locale for failure messages, matched against the
// registry's template locales at construction time.
func WithLocale(locale string) EvaluatorOption {
	return func(e *Evaluator) {
		e.rawLocale = locale
	}
}

// WithLogger sets the logger for skipped and failing checks. Defaults to a
// discarding logger.
func WithLogger(logger *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEvaluator builds an evaluator from opts.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{rawLocale: defaultLocale}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.locale = e.registry.ResolveLocale(e.rawLocale)
	return e
}

// Registry returns the evaluator's registry.
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// Locale returns the canonical locale failure messages are rendered in.
func (e *Evaluator) Locale() string {
	return e.locale
}

// Evaluate decides rule against value. siblings is the form snapshot taken at
// validation start; match and custom rules read it.
//
// Rules with unregistered kinds pass, so documents written for a newer rule
// vocabulary stay usable. Misconfigured rules (ErrInvalidRule) also pass and
// log a warning. A failing predicate fails the rule.
func (e *Evaluator) Evaluate(ctx context.Context, value any, rule Rule, siblings Values) Result {
	check, ok := e.registry.Lookup(rule.Kind)
	if !ok {
		e.logger.DebugContext(ctx, "skipping rule with unregistered kind", slog.String("kind", string(rule.Kind)))
		return Result{Valid: true}
	}

	passed, err := check(ctx, value, rule, siblings)
	if err != nil {
		if errors.Is(err, ErrInvalidRule) {
			e.logger.WarnContext(ctx, "skipping misconfigured rule",
				slog.String("kind", string(rule.Kind)),
				slog.String("error", err.Error()))
			return Result{Valid: true}
		}
		e.logger.WarnContext(ctx, "rule check failed",
			slog.String("kind", string(rule.Kind)),
			slog.String("error", err.Error()))
		return Result{Valid: false, Message: e.message(rule)}
	}
	if passed {
		return Result{Valid: true}
	}
	return Result{Valid: false, Message: e.message(rule)}
}

func (e *Evaluator) message(rule Rule) string {
	if rule.Message != "" {
		return renderMessage(rule.Message, rule)
	}
	return renderMessage(e.registry.Template(e.locale, rule.Kind), rule)
}
