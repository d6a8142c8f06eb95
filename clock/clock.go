// Package clock provides an injectable time source so that timer-driven
// behaviour (the scrollbar fade-out in particular) can be tested without
// sleeping.
//
// Production code uses Real(); tests use Fake() and call Advance.
package clock

import "time"

// Clock is the subset of the time package that the scrollbar needs.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for d, then calls f. The returned Timer can cancel
	// the pending call.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. It returns false if the timer has
// already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}
