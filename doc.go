// Package formkit provides a client-side form state and validation engine
// for Go applications.
//
// A Form tracks values, errors and touched flags for a declared set of
// fields, validates them against declarative rules, coalesces bursts of
// value changes with a debounce window, and throttles repeated submissions
// into a single trailing attempt.
//
// Key Features:
//
//   - Declarative field rules with localized failure messages
//   - First failing rule wins; one message per field
//   - Debounced validation on change, inline validation on blur
//   - Stale validation results are discarded, never merged
//   - Throttled submissions with a single trailing retry
//   - Deep-copied state snapshots and a non-blocking event stream
//
// Basic Usage:
//
//	form, err := formkit.New([]formkit.Field{
//		{
//			Name:     "email",
//			Type:     formkit.TypeEmail,
//			Required: true,
//			Rules:    []formkit.Rule{formkit.Email()},
//		},
//		{
//			Name:  "password",
//			Rules: []formkit.Rule{formkit.Required(), formkit.MinLength(8)},
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer form.Close()
//
//	_ = form.SetValue("email", "user@example.com")
//	_ = form.SetValue("password", "hunter2!")
//
//	valid, _ := form.ValidateAll(ctx)
//	if valid {
//		_ = form.Submit(ctx)
//	}
//
// Submission:
//
// A submit handler receives a deep copy of the values once a full validation
// pass succeeds. Submissions inside the cooldown window collapse into one
// trailing attempt:
//
//	form, err := formkit.New(fields,
//		formkit.WithThrottleWindow(2*time.Second),
//		formkit.WithSubmitHandler(func(ctx context.Context, values formkit.Values) error {
//			return api.CreateAccount(ctx, values)
//		}),
//	)
//
// Observing State:
//
// Every transition publishes an Event carrying fresh snapshots. A consumer
// that stops draining its buffer is dropped rather than allowed to block
// the form:
//
//	sub := form.Subscribe(ctx)
//	defer sub.Close()
//	for event := range sub.Receive(ctx) {
//		render(event.State, event.Submission)
//	}
//
// Configuration:
//
// Debounce and throttle windows, validation mode and message locale come
// from options, or from the environment via config.Settings:
//
//	var settings config.Settings
//	config.MustLoad(&settings)
//	form, err := formkit.New(fields, formkit.WithSettings(settings))
package formkit
