package clock

import "time"

// Task is a one-shot callback that can be cancelled and rescheduled. At
// most one run is pending at a time: Schedule always cancels the previous
// run before arming a new one.
//
// A timer that was already firing when it got cancelled can still invoke
// its callback. Every run therefore carries the sequence number it was
// scheduled with, and the owner must check Current before acting on it.
//
// Task is not safe for concurrent use. The owner serialises calls to
// Schedule, Cancel and Current, including those made from the callback.
type Task struct {
	clock Clock
	timer *Timer
	seq   uint64
}

// NewTask returns an idle Task driven by c.
func NewTask(c Clock) *Task {
	return &Task{clock: c}
}

// Schedule cancels any pending run and arranges for fire to be called with
// a fresh sequence number after d.
func (t *Task) Schedule(d time.Duration, fire func(seq uint64)) {
	t.Cancel()
	t.seq++
	seq := t.seq
	t.timer = t.clock.AfterFunc(d, func() { fire(seq) })
}

// Cancel stops the pending run, if any. A run that slips through anyway
// is no longer Current.
func (t *Task) Cancel() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
}

// Current reports whether seq belongs to the latest Schedule call and that
// call has not been cancelled since. A true result also marks the run as
// consumed.
func (t *Task) Current(seq uint64) bool {
	if t.timer == nil || seq != t.seq {
		return false
	}
	t.timer = nil
	return true
}

// Pending reports whether a run is armed.
func (t *Task) Pending() bool {
	return t.timer != nil
}
