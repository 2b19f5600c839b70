// Package clocktest provides a manually advanced clock.Scheduler.
package clocktest

import (
	"sort"
	"sync"
	"time"

	"github.com/plantingplanner/planner-tui/internal/clock"
)

// Fake is a clock.Scheduler whose time only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance, in due-time
// order, with ties broken by scheduling order.
type Fake struct {
	mu      sync.Mutex
	cond    *sync.Cond
	now     time.Duration
	seq     uint64
	pending []*fakeTimer
}

type fakeTimer struct {
	owner *Fake
	due   time.Duration
	seq   uint64
	fn    func()
	done  bool
}

var _ clock.Scheduler = (*Fake)(nil)

// NewFake returns a Fake positioned at elapsed time zero.
func NewFake() *Fake {
	f := &Fake{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// AfterFunc registers fn to run once the fake clock has advanced by d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) clock.Timer {
	if d < 0 {
		d = 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{owner: f, due: f.now + d, seq: f.seq, fn: fn}
	f.pending = append(f.pending, t)
	f.cond.Broadcast()
	return t
}

// Stop cancels the timer if it has not fired yet.
func (t *fakeTimer) Stop() bool {
	f := t.owner
	f.mu.Lock()
	defer f.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	f.removeLocked(t)
	f.cond.Broadcast()
	return true
}

// Advance moves the clock forward by d, firing every timer that becomes due.
// Timers armed by callbacks are fired too when they fall inside the window.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next := f.nextDueLocked(target)
		if next == nil {
			if target > f.now {
				f.now = target
			}
			f.cond.Broadcast()
			f.mu.Unlock()
			return
		}
		if next.due > f.now {
			f.now = next.due
		}
		next.done = true
		f.removeLocked(next)
		f.cond.Broadcast()
		f.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of armed timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Elapsed returns how far the clock has been advanced.
func (f *Fake) Elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// BlockUntil waits until exactly n timers are armed.
func (f *Fake) BlockUntil(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.pending) != n {
		f.cond.Wait()
	}
}

func (f *Fake) nextDueLocked(target time.Duration) *fakeTimer {
	if len(f.pending) == 0 {
		return nil
	}
	sort.SliceStable(f.pending, func(i, j int) bool {
		if f.pending[i].due != f.pending[j].due {
			return f.pending[i].due < f.pending[j].due
		}
		return f.pending[i].seq < f.pending[j].seq
	})
	if f.pending[0].due > target {
		return nil
	}
	return f.pending[0]
}

func (f *Fake) removeLocked(t *fakeTimer) {
	for i, p := range f.pending {
		if p == t {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
}
