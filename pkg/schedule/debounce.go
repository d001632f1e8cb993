package schedule

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls: the function passed to the last Call
// runs once the quiet window elapses with no further calls. Earlier functions
// of the same burst are dropped.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	pending func()
	seq     uint64
	stopped bool
}

// NewDebouncer returns a debouncer with the given quiet window. A window of
// zero or less disables coalescing; every Call runs immediately.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Window returns the configured quiet window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Call schedules fn to run after the quiet window, replacing any pending
// function and restarting the window.
func (d *Debouncer) Call(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.window <= 0 {
		d.mu.Unlock()
		fn()
		return
	}
	d.pending = fn
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(seq) })
	d.mu.Unlock()
}

// fire runs the pending function unless a newer Call superseded this timer.
func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	fn()
}

// Flush runs the pending function now instead of waiting out the window.
// No-op when nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	fn()
}

// Cancel drops the pending function without running it. The debouncer stays
// usable.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.pending = nil
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
}

// Pending reports whether a call is waiting for the quiet window.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop cancels pending work and makes the debouncer permanently inert;
// subsequent calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.pending = nil
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
}
