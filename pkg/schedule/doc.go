// Package schedule provides the two timing primitives interactive forms lean
// on: debouncing for noisy per-keystroke work and throttling for submission
// bursts.
//
// A Debouncer holds a single pending function and one timer; every Call
// replaces the pending function and restarts the quiet window, so only the
// last call of a burst runs. A Throttler admits the first call immediately
// and coalesces the rest of the burst into one trailing invocation carrying
// the latest function. Its cooldown window opens explicitly via Open, letting
// the admitted function decide whether the invocation should count, and the
// window expires on the clock regardless of how long the function runs.
//
// Both types are safe for concurrent use. Admitted functions run
// synchronously on the calling goroutine; deferred ones run on the timer
// goroutine when their window elapses. After Stop a primitive is permanently
// inert: pending work is dropped, later calls are ignored.
package schedule
