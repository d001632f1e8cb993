package config

import "time"

// Settings holds the engine-wide defaults read from the environment.
// Every field carries a default, so a process with no FORMKIT_* variables
// set still gets a working configuration.
type Settings struct {
	// DebounceWindow is the quiet period after the last value change
	// before a field validates in on-change mode.
	DebounceWindow time.Duration `env:"FORMKIT_DEBOUNCE_WINDOW" envDefault:"300ms"`

	// ThrottleWindow is the minimum spacing between submission attempts.
	ThrottleWindow time.Duration `env:"FORMKIT_THROTTLE_WINDOW" envDefault:"1s"`

	// Mode selects when fields validate: onChange, onBlur, or onSubmit.
	Mode string `env:"FORMKIT_MODE" envDefault:"onChange"`

	// Locale picks the language for built-in validation messages.
	Locale string `env:"FORMKIT_LOCALE" envDefault:"en"`

	// StrictRules makes form construction fail on misconfigured rules
	// instead of evaluating them leniently.
	StrictRules bool `env:"FORMKIT_STRICT_RULES" envDefault:"false"`
}
