package formkit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/formkit/pkg/broadcast"
	"github.com/dmitrymomot/formkit/pkg/formstate"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rules"
	"github.com/dmitrymomot/formkit/pkg/schedule"
	"github.com/dmitrymomot/formkit/pkg/validate"
)

// Field describes one form input; see the validate package for the full
// contract.
type Field = validate.Field

// Values is a snapshot of field values keyed by name.
type Values = rules.Values

// Form wires the validation engine together: it owns the state machine, the
// validator, the debounced on-change scheduling and the throttled submission
// flow. All methods are safe for concurrent use.
type Form struct {
	id        uuid.UUID
	mode      Mode
	log       *slog.Logger
	validator *validate.Validator
	machine   *formstate.Machine
	debouncer *schedule.Debouncer
	throttler *schedule.Throttler
	events    *broadcast.MemoryBroadcaster[Event]
	flight    singleflight.Group
	submitFn  SubmitFunc

	// ctx bounds background work spawned by the form (debounced validation,
	// trailing submits); cancel makes pending callbacks inert.
	ctx    context.Context
	cancel context.CancelFunc

	subMu       sync.Mutex
	submitting  bool
	submitError string

	closeOnce sync.Once
}

// New builds a form from field descriptors. Descriptor order is the form's
// field order; names must be unique and non-empty. Values start at each
// field's default.
func New(fields []Field, opts ...Option) (*Form, error) {
	cfg := defaultFormConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(cfg.errs) > 0 {
		return nil, errors.Join(cfg.errs...)
	}
	switch cfg.mode {
	case ModeOnChange, ModeOnBlur, ModeOnSubmit:
	default:
		return nil, ErrInvalidMode
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.evaluator == nil {
		cfg.evaluator = rules.NewEvaluator(
			rules.WithLocale(cfg.locale),
			rules.WithLogger(cfg.logger),
		)
	}

	vopts := []validate.Option{validate.WithEvaluator(cfg.evaluator)}
	if cfg.strict {
		vopts = append(vopts, validate.WithStrictRules())
	}
	v, err := validate.New(fields, vopts...)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	f := &Form{
		id:        id,
		mode:      cfg.mode,
		log:       cfg.logger.With(logger.Component("form"), logger.FormID(id)),
		validator: v,
		machine:   formstate.New(v.Names(), v.Defaults()),
		debouncer: schedule.NewDebouncer(cfg.debounce),
		throttler: schedule.NewThrottler(cfg.throttle),
		events:    broadcast.NewMemoryBroadcaster[Event](cfg.eventBuffer),
		submitFn:  cfg.submit,
		ctx:       ctx,
		cancel:    cancel,
	}

	f.log.Debug("form created",
		logger.Mode(string(cfg.mode)),
		slog.Int("fields", len(fields)),
		slog.Duration("debounce", cfg.debounce),
		slog.Duration("throttle", cfg.throttle),
	)
	return f, nil
}

// ID returns the form instance identifier.
func (f *Form) ID() uuid.UUID {
	return f.id
}

// Mode returns the validation mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// Fields returns the normalized field descriptors in declaration order.
func (f *Form) Fields() []Field {
	return f.validator.Fields()
}

// State returns a deep copy of the current form state.
func (f *Form) State() formstate.Snapshot {
	return f.machine.Snapshot()
}

// Subscribe delivers an Event with fresh snapshots for every state change
// until ctx is canceled, the subscriber is closed, or the form is closed.
// A subscriber that stops draining its buffer is dropped rather than
// allowed to block transitions.
func (f *Form) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return f.events.Subscribe(ctx)
}

// SetValue stores a new value for the field. In on-change mode it also
// schedules a debounced validation of that field; the validation reads the
// field's value at fire time, so only the last change of a burst is checked.
func (f *Form) SetValue(name string, value any) error {
	if err := f.machine.SetValue(name, value); err != nil {
		return err
	}
	f.publish(EventValueChanged, name)

	if f.mode == ModeOnChange {
		f.debouncer.Call(func() { f.revalidate(name) })
	}
	return nil
}

// SetValues applies a batch of values without touching errors or touched
// flags, for programmatic pre-filling. The whole batch is rejected when any
// name is unknown.
func (f *Form) SetValues(batch Values) error {
	if err := f.machine.SetValues(batch); err != nil {
		return err
	}
	f.publish(EventValuesLoaded, "")
	return nil
}

// SetTouched marks the field touched, as a blur does. In on-blur mode it
// also validates the field inline, awaiting async rules before returning.
func (f *Form) SetTouched(ctx context.Context, name string) error {
	if err := f.machine.Touch(name); err != nil {
		return err
	}
	f.publish(EventTouched, name)

	if f.mode == ModeOnBlur {
		value, _ := f.machine.Value(name)
		if _, err := f.applyFieldValidation(ctx, name, value, f.machine.Values()); err != nil {
			return err
		}
	}
	return nil
}

// ValidateField validates one field against the supplied value, with current
// values as the sibling snapshot, and merges the outcome into the form state
// exactly like an automatic validation. It returns the first failing rule's
// message, or "" when the field passes.
func (f *Form) ValidateField(ctx context.Context, name string, value any) (string, error) {
	siblings := f.machine.Values()
	if _, ok := siblings[name]; ok {
		siblings[name] = rules.CloneValue(value)
	}
	return f.applyFieldValidation(ctx, name, value, siblings)
}

// ValidateAll runs a form-wide validation pass over a consistent snapshot
// and reports whether the form is valid. The pass replaces the error map:
// fields that now pass are cleared, failing fields carry their first failing
// rule's message. Concurrent calls are coalesced into one pass sharing its
// result.
func (f *Form) ValidateAll(ctx context.Context) (bool, error) {
	valid, err, _ := f.flight.Do("validate-all", func() (any, error) {
		return f.runFormValidation(ctx)
	})
	if err != nil {
		return false, err
	}
	return valid.(bool), nil
}

// Reset restores every field to its default, clears errors and touched
// flags, and drops any pending debounced validation. Submission throttling
// is deliberately left running; resetting a form is not a way around the
// cooldown.
func (f *Form) Reset() error {
	f.debouncer.Cancel()
	if err := f.machine.Reset(); err != nil {
		return err
	}
	f.publish(EventReset, "")
	return nil
}

// Close makes the form permanently inert: pending debounced or throttled
// callbacks are dropped, in-flight validations are discarded on completion,
// mutators return ErrClosed and subscribers are closed. State reads keep
// serving the final state. Close is idempotent.
func (f *Form) Close() {
	f.closeOnce.Do(func() {
		f.debouncer.Stop()
		f.throttler.Stop()
		f.cancel()
		f.machine.Close()
		_ = f.events.Close()
		f.log.Debug("form closed")
	})
}

// Closed reports whether Close has been called.
func (f *Form) Closed() bool {
	return f.machine.Closed()
}

// revalidate is the debounced on-change validation: it re-reads the field's
// current value so the last write of a burst always wins.
func (f *Form) revalidate(name string) {
	value, ok := f.machine.Value(name)
	if !ok {
		return
	}
	if _, err := f.applyFieldValidation(f.ctx, name, value, f.machine.Values()); err != nil {
		f.log.Debug("debounced validation dropped", logger.Field(name), logger.Error(err))
	}
}

// applyFieldValidation runs one field validation attempt end to end: open
// the attempt, evaluate, merge unless superseded, publish on change.
func (f *Form) applyFieldValidation(ctx context.Context, name string, value any, siblings Values) (string, error) {
	attempt, err := f.machine.BeginFieldValidation(name)
	if err != nil {
		return "", err
	}

	message, err := f.validator.ValidateField(ctx, name, value, siblings)
	if err != nil {
		f.machine.AbandonValidation()
		return "", err
	}

	if f.machine.CompleteFieldValidation(name, attempt, message) {
		f.publish(EventFieldValidated, name)
	} else {
		f.log.Debug("stale field validation discarded",
			logger.Field(name), logger.Attempt(attempt))
	}
	return message, nil
}

// runFormValidation is the single-flight body of ValidateAll.
func (f *Form) runFormValidation(ctx context.Context) (bool, error) {
	snapshot, captured, err := f.machine.BeginFormValidation()
	if err != nil {
		return false, err
	}
	f.publish(EventValidationStarted, "")

	failures, err := f.validator.ValidateForm(ctx, snapshot)
	if err != nil {
		f.machine.AbandonValidation()
		return false, err
	}

	f.machine.CompleteFormValidation(failures, captured)
	valid := f.machine.Valid()
	f.publish(EventFormValidated, "")
	return valid, nil
}

// publish sends an event with fresh snapshots. Delivery is best effort: a
// full subscriber buffer drops the event rather than stalling a transition.
func (f *Form) publish(typ EventType, field string) {
	_ = f.events.Broadcast(f.ctx, Event{
		FormID:     f.id,
		Type:       typ,
		Field:      field,
		State:      f.machine.Snapshot(),
		Submission: f.Submission(),
	})
}
