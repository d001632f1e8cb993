package formkit

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// SubmitFunc handles a submission that passed validation. It receives a deep
// copy of the form's values; mutating the copy does not affect form state.
// A non-nil error (or a panic) is surfaced as the form's submit error.
type SubmitFunc func(ctx context.Context, values Values) error

// submitRejectedMessage is the submit error shown when a submission is
// blocked by validation failures.
const submitRejectedMessage = "please fix the errors in the form"

// Submission is the submission side of the form state.
type Submission struct {
	// Submitting is true while a submission attempt is in progress,
	// including its validation pass.
	Submitting bool `json:"submitting"`
	// Throttled is true while the cooldown window from the last accepted
	// submission is open.
	Throttled bool `json:"throttled"`
	// SubmitError carries the outcome of the last finished attempt: empty
	// on success, a message when validation or the handler rejected it.
	SubmitError string `json:"submitError,omitempty"`
}

// Submission returns a snapshot of the submission state.
func (f *Form) Submission() Submission {
	f.subMu.Lock()
	defer f.subMu.Unlock()
	return Submission{
		Submitting:  f.submitting,
		Throttled:   f.throttler.Throttled(),
		SubmitError: f.submitError,
	}
}

// Submit runs a throttled submission attempt. The first submit while the
// form is cold runs synchronously: a full validation pass, then the submit
// handler when the form is valid. Submits landing inside the cooldown
// window are collapsed into a single trailing attempt that runs when the
// window closes.
//
// An attempt blocked by validation failures records a submit error and does
// not open the cooldown window, so the next submit after fixing the form is
// not made to wait.
func (f *Form) Submit(ctx context.Context) error {
	if f.machine.Closed() {
		return ErrClosed
	}
	f.throttler.Call(func() { f.attempt(ctx) })
	return nil
}

// attempt is one admitted submission: validate everything, then hand the
// values to the submit handler.
func (f *Form) attempt(ctx context.Context) {
	started := time.Now()
	f.beginAttempt()
	defer func() { f.finishAttempt(started) }()

	valid, err := f.ValidateAll(ctx)
	if err != nil {
		f.log.Debug("submit abandoned", logger.Error(err))
		return
	}
	if !valid {
		f.setSubmitError(submitRejectedMessage)
		f.log.Debug("submit rejected by validation")
		return
	}

	// Only an accepted submission opens the cooldown window.
	f.throttler.Open()

	if f.submitFn == nil {
		return
	}
	if err := f.invokeHandler(ctx, f.machine.Values()); err != nil {
		f.setSubmitError(err.Error())
		f.log.Warn("submit handler failed", logger.Error(err))
	}
}

func (f *Form) beginAttempt() {
	f.subMu.Lock()
	f.submitting = true
	f.submitError = ""
	f.subMu.Unlock()
	f.publish(EventSubmitStarted, "")
}

func (f *Form) finishAttempt(started time.Time) {
	f.subMu.Lock()
	f.submitting = false
	f.subMu.Unlock()
	f.publish(EventSubmitFinished, "")
	f.log.Debug("submit attempt finished", logger.Duration(time.Since(started)))
}

func (f *Form) setSubmitError(message string) {
	f.subMu.Lock()
	f.submitError = message
	f.subMu.Unlock()
}

// invokeHandler shields the form from a panicking submit handler.
func (f *Form) invokeHandler(ctx context.Context, values Values) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submit handler panic: %v", r)
		}
	}()
	return f.submitFn(ctx, values)
}
