package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet window before a typed query runs.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs only the last function submitted within a quiet window.
// Earlier submissions are discarded, never queued.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	seq     uint64
	stopped bool
	running sync.WaitGroup
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Submit schedules fn after the quiet window, superseding any pending call.
func (d *Debouncer) Submit(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if seq != d.seq || d.stopped {
			d.mu.Unlock()
			return
		}
		run := d.pending
		d.pending = nil
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()
		run()
	})
}

// Flush runs the pending call now instead of waiting for the window, then
// waits for any call already running to return. It must not be called
// concurrently with Submit.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	run := d.pending
	d.pending = nil
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.stopped {
		run = nil
	}
	if run != nil {
		d.running.Add(1)
	}
	d.mu.Unlock()

	if run != nil {
		run()
		d.running.Done()
	}
	d.running.Wait()
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Stop cancels the pending call and rejects further submissions.
func (d *Debouncer) Stop() {
	d.Cancel()

	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}
