package formkit

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

// Mode selects which operations trigger automatic validation.
type Mode string

const (
	// ModeOnChange validates a field after its value changes, debounced so
	// rapid edits coalesce into one pass over the final value.
	ModeOnChange Mode = "onChange"

	// ModeOnBlur validates a field when it is marked touched.
	ModeOnBlur Mode = "onBlur"

	// ModeOnSubmit validates only when the whole form is validated or
	// submitted.
	ModeOnSubmit Mode = "onSubmit"
)

// ParseMode maps a configuration string onto a Mode, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "onchange":
		return ModeOnChange, nil
	case "onblur":
		return ModeOnBlur, nil
	case "onsubmit":
		return ModeOnSubmit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Default coalescing windows, matching the config package defaults.
const (
	DefaultDebounceWindow = 300 * time.Millisecond
	DefaultThrottleWindow = time.Second
)

// Option configures a Form during construction.
type Option func(*formConfig)

type formConfig struct {
	mode        Mode
	debounce    time.Duration
	throttle    time.Duration
	locale      string
	strict      bool
	logger      *slog.Logger
	evaluator   *rules.Evaluator
	submit      SubmitFunc
	eventBuffer int
	errs        []error
}

func defaultFormConfig() formConfig {
	return formConfig{
		mode:        ModeOnChange,
		debounce:    DefaultDebounceWindow,
		throttle:    DefaultThrottleWindow,
		eventBuffer: 16,
	}
}

// WithMode sets the validation mode. The default is ModeOnChange.
func WithMode(mode Mode) Option {
	return func(c *formConfig) {
		c.mode = mode
	}
}

// WithDebounceWindow sets the quiet period for on-change validation. Zero
// disables coalescing and validates every change immediately.
func WithDebounceWindow(d time.Duration) Option {
	return func(c *formConfig) {
		c.debounce = d
	}
}

// WithThrottleWindow sets the cooldown between submission attempts. Zero
// disables throttling.
func WithThrottleWindow(d time.Duration) Option {
	return func(c *formConfig) {
		c.throttle = d
	}
}

// WithLocale sets the language for built-in failure messages. It applies to
// the default evaluator only; an evaluator passed with WithEvaluator keeps
// its own locale.
func WithLocale(locale string) Option {
	return func(c *formConfig) {
		c.locale = locale
	}
}

// WithStrictRules makes New reject descriptors with unknown rule kinds or
// misconfigured rules instead of skipping them at evaluation time.
func WithStrictRules() Option {
	return func(c *formConfig) {
		c.strict = true
	}
}

// WithLogger sets the logger for engine diagnostics. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *formConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEvaluator sets a custom rule evaluator, typically one with extra
// checks or message locales registered.
func WithEvaluator(evaluator *rules.Evaluator) Option {
	return func(c *formConfig) {
		if evaluator != nil {
			c.evaluator = evaluator
		}
	}
}

// WithSubmitHandler sets the callback Submit invokes with the values
// snapshot once validation passes. Forms without a handler can still be
// submitted; a valid attempt then settles with no work.
func WithSubmitHandler(fn SubmitFunc) Option {
	return func(c *formConfig) {
		c.submit = fn
	}
}

// WithEventBuffer sets the per-subscriber event buffer capacity.
func WithEventBuffer(n int) Option {
	return func(c *formConfig) {
		if n > 0 {
			c.eventBuffer = n
		}
	}
}

// WithSettings applies environment-driven settings: mode, windows, locale
// and strictness. A malformed mode string fails New.
func WithSettings(s config.Settings) Option {
	return func(c *formConfig) {
		mode, err := ParseMode(s.Mode)
		if err != nil {
			c.errs = append(c.errs, err)
		} else {
			c.mode = mode
		}
		c.debounce = s.DebounceWindow
		c.throttle = s.ThrottleWindow
		c.locale = s.Locale
		c.strict = s.StrictRules
	}
}
