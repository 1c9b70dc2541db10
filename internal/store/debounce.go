package store

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of user state changes into one save. Every
// schedule call cancels the pending timer and starts a new one; the ops
// collected meanwhile are handed to fire together.
type debouncer struct {
	delay time.Duration
	fire  func(ops []*Op)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	waiting []*Op
	stopped bool
}

func newDebouncer(delay time.Duration, fire func(ops []*Op)) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

// schedule reports false if the debouncer is already stopped.
func (d *debouncer) schedule(op *Op) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}
	if op != nil {
		d.waiting = append(d.waiting, op)
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.flush(gen)
	})
	return true
}

func (d *debouncer) flush(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	ops := d.waiting
	d.waiting = nil
	d.timer = nil
	d.mu.Unlock()

	d.fire(ops)
}

// stop cancels the pending save without running it and returns the ops that
// were waiting for it.
func (d *debouncer) stop() []*Op {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	ops := d.waiting
	d.waiting = nil
	return ops
}
