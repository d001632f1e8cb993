// Package async provides simple, generic helpers for running computations asynchronously and
// waiting for their completion.
//
// The package is centred around the generic type Future that represents the eventual result of an
// asynchronous operation.  A Future is obtained by calling Run, which starts the supplied function
// in its own goroutine and immediately returns a *Future instance.  The caller can then wait for
// completion with Await, block with a timeout using AwaitWithTimeout, or poll the state with
// IsComplete.
//
// Settle coordinates multiple futures: it collects every result, in order, and reports the first
// error once all computations have finished.  Validation fan-out depends on this settle-all
// behaviour, since partial results are useless when each future carries one field's outcome.
//
// If the provided context is cancelled before Run is called, no goroutine starts and the Future
// completes with the context error.  Functions launched by Run receive the context and are
// expected to honor its cancellation themselves.
package async
