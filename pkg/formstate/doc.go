// Package formstate owns the canonical state of one form: its values, error
// messages, touched flags and validation bookkeeping. Every mutation goes
// through a Machine method under one mutex, and everything handed out is a
// deep copy, so observers can never alias live state.
//
// Validation results arrive asynchronously and can cross on the wire, so the
// machine keeps a monotonically increasing attempt counter per field. A
// single-field pass bumps the counter at start and its result is merged only
// if the counter is unchanged at completion; a form-wide pass captures every
// counter at start, merges per field while the counter is unchanged, and
// bumps applied fields so that slower stragglers from before the pass are
// discarded. Stale results are dropped, never reordered.
//
// touched follows two paths: Touch marks a field explicitly (a blur), and a
// merged failing result marks the field only when its current value is
// non-empty, so pristine forms do not light up while the user is still
// typing their first characters.
//
// A closed machine is inert: mutators return ErrClosed, late validation
// merges are dropped, and snapshots keep returning the final state.
package formstate
