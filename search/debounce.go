package search

import (
	"sync"
	"time"

	"github.com/fwojciec/typeahead"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer delays a query until input has been idle for an interval.
//
// Each Push cancels the pending emission and restarts the timer, so a burst
// of input produces a single settle call carrying the last string. Blank
// input skips the timer: the pending emission is cancelled and clear is
// called synchronously.
type Debouncer struct {
	interval time.Duration
	settle   func(query string)
	clear    func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer returns a Debouncer that calls settle after interval of
// quiet and clear on blank input. A non-positive interval uses
// DefaultDebounce. clear may be nil.
//
// settle runs on its own goroutine.
func NewDebouncer(interval time.Duration, settle func(query string), clear func()) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{
		interval: interval,
		settle:   settle,
		clear:    clear,
	}
}

// Interval returns the quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Push records new input.
func (d *Debouncer) Push(text string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if typeahead.IsBlank(text) {
		d.mu.Unlock()
		if d.clear != nil {
			d.clear()
		}
		return
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.settle(text)
	})
	d.mu.Unlock()
}

// Pending reports whether an emission is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending emission and ignores all later input.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
