// Package clock abstracts one-shot timers so that polling, timeouts and
// toast expiry can be driven by a fake scheduler in tests.
package clock

import "time"

// Timer is a pending callback that can be cancelled.
// Stop reports whether the call prevented the callback from running.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

// AfterFunc runs f on its own goroutine once d has elapsed.
func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Real returns a Scheduler backed by the runtime timers.
func Real() Scheduler {
	return realScheduler{}
}

// OrReal returns s, or the real scheduler when s is nil.
func OrReal(s Scheduler) Scheduler {
	if s == nil {
		return Real()
	}
	return s
}
