package schedule

import (
	"sync"
	"time"
)

// Throttler admits at most one invocation at a time and at most one per
// cooldown window. The first Call while the throttler is cold runs fn
// synchronously; calls arriving during an open window, or while an admitted
// function is still running, replace a single pending slot. The pending
// function is flushed exactly once, with the latest replacement, as soon as
// the window closes.
//
// The window opens explicitly: an admitted function calls Open when the
// invocation should count against the cooldown, typically after its
// preconditions pass. A function that never calls Open leaves the throttler
// cold and the next Call is admitted immediately. The window expires on the
// clock, independent of how long the admitted function keeps running.
type Throttler struct {
	mu        sync.Mutex
	window    time.Duration
	openUntil time.Time
	running   bool
	pending   func()
	timer     *time.Timer
	seq       uint64
	stopped   bool
}

// NewThrottler returns a throttler with the given cooldown window. A window
// of zero or less never throttles; every call is admitted once the previous
// one finishes.
func NewThrottler(window time.Duration) *Throttler {
	return &Throttler{window: window}
}

// Window returns the configured cooldown window.
func (t *Throttler) Window() time.Duration {
	return t.window
}

// Call runs fn synchronously if admitted, or parks it in the pending slot,
// replacing any previously parked function.
func (t *Throttler) Call(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.running || time.Now().Before(t.openUntil) {
		t.pending = fn
		t.armLocked()
		t.mu.Unlock()
		return
	}
	t.running = true
	t.mu.Unlock()
	t.run(fn)
}

// Open starts the cooldown window now. Meant to be called from an admitted
// function; safe to call at any time.
func (t *Throttler) Open() {
	t.mu.Lock()
	if !t.stopped {
		t.openUntil = time.Now().Add(t.window)
	}
	t.mu.Unlock()
}

// Throttled reports whether the cooldown window is open.
func (t *Throttler) Throttled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Now().Before(t.openUntil)
}

// Pending reports whether a call is parked for the trailing flush.
func (t *Throttler) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Stop drops pending work and makes the throttler permanently inert;
// subsequent calls are ignored.
func (t *Throttler) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.pending = nil
	t.seq++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

// run executes admitted functions, then drains the pending slot: immediately
// when no window is open, otherwise via the trailing timer.
func (t *Throttler) run(fn func()) {
	for fn != nil {
		fn()

		t.mu.Lock()
		t.running = false
		fn = nil
		if !t.stopped && t.pending != nil {
			if time.Now().Before(t.openUntil) {
				t.armLocked()
			} else {
				fn = t.pending
				t.pending = nil
				t.running = true
			}
		}
		t.mu.Unlock()
	}
}

// armLocked schedules the trailing flush for when the window closes. Callers
// hold t.mu. While an admitted function runs the flush is deferred to its
// completion instead.
func (t *Throttler) armLocked() {
	if t.timer != nil || t.running {
		return
	}
	delay := time.Until(t.openUntil)
	if delay < 0 {
		delay = 0
	}
	t.seq++
	seq := t.seq
	t.timer = time.AfterFunc(delay, func() { t.fire(seq) })
}

func (t *Throttler) fire(seq uint64) {
	t.mu.Lock()
	if t.stopped || seq != t.seq {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	if t.pending == nil || t.running {
		// A racing admitted call drains the slot on completion.
		t.mu.Unlock()
		return
	}
	fn := t.pending
	t.pending = nil
	t.running = true
	t.mu.Unlock()
	t.run(fn)
}
