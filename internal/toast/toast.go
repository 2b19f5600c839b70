// Package toast holds the ordered set of visible notifications, each with
// its own auto-dismiss timer.
package toast

import (
	"strconv"
	"sync"
	"time"

	"github.com/plantingplanner/planner-tui/internal/clock"
)

// DefaultDuration is how long a toast stays visible without interaction.
const DefaultDuration = 5 * time.Second

// Variant selects how a toast is presented.
type Variant string

const (
	Success Variant = "success"
	Error   Variant = "error"
	Warning Variant = "warning"
	Info    Variant = "info"
)

// Payload is a toast without its id.
type Payload struct {
	Variant Variant
	Message string
	Detail  *string
}

// Toast is an immutable notification record.
type Toast struct {
	ID      string
	Variant Variant
	Message string
	Detail  *string
}

// DetailText returns the detail or "".
func (t Toast) DetailText() string {
	if t.Detail == nil {
		return ""
	}
	return *t.Detail
}

// EnqueueOptions controls insertion.
type EnqueueOptions struct {
	// Dedupe suppresses the insert when a toast with the same variant,
	// message and detail is already visible.
	Dedupe bool
}

// Store owns the toast list and its timers.
type Store struct {
	duration  time.Duration
	scheduler clock.Scheduler

	mu       sync.Mutex
	seq      uint64
	toasts   []Toast
	timers   map[string]clock.Timer
	onChange func()
	closed   bool
}

// NewStore creates an empty store. A non-positive duration uses
// DefaultDuration; a nil scheduler uses the real clock.
func NewStore(duration time.Duration, scheduler clock.Scheduler) *Store {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Store{
		duration:  duration,
		scheduler: clock.OrReal(scheduler),
		timers:    make(map[string]clock.Timer),
	}
}

// OnChange registers fn to be called after every change to the list.
// fn runs without the store lock held.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Enqueue inserts p and returns its id. The id sequence advances on every
// call, including deduplicated ones, which return the existing toast's id.
// After Close it returns "".
func (s *Store) Enqueue(p Payload, opts EnqueueOptions) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}

	s.seq++
	id := strconv.FormatUint(s.seq, 10)

	if opts.Dedupe {
		for _, existing := range s.toasts {
			if sameContent(existing, p) {
				s.mu.Unlock()
				return existing.ID
			}
		}
	}

	s.toasts = append(s.toasts, Toast{
		ID:      id,
		Variant: p.Variant,
		Message: p.Message,
		Detail:  cloneDetail(p.Detail),
	})
	s.timers[id] = s.scheduler.AfterFunc(s.duration, func() {
		s.expire(id)
	})
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return id
}

// Dismiss removes the toast and cancels its timer. Unknown ids are ignored.
func (s *Store) Dismiss(id string) {
	s.mu.Lock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	removed := s.removeLocked(id)
	notify := s.onChange
	s.mu.Unlock()

	if removed && notify != nil {
		notify()
	}
}

// DismissAll removes every toast.
func (s *Store) DismissAll() {
	s.mu.Lock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	removed := len(s.toasts) > 0
	s.toasts = nil
	notify := s.onChange
	s.mu.Unlock()

	if removed && notify != nil {
		notify()
	}
}

// Toasts returns the visible toasts, oldest first.
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Len returns the number of visible toasts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// Close stops all outstanding timers. Visible toasts stay readable but no
// longer expire, and further Enqueue calls are ignored.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Store) expire(id string) {
	s.mu.Lock()
	if _, ok := s.timers[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	removed := s.removeLocked(id)
	notify := s.onChange
	s.mu.Unlock()

	if removed && notify != nil {
		notify()
	}
}

func (s *Store) removeLocked(id string) bool {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

func sameContent(t Toast, p Payload) bool {
	if t.Variant != p.Variant || t.Message != p.Message {
		return false
	}
	if t.Detail == nil || p.Detail == nil {
		return t.Detail == nil && p.Detail == nil
	}
	return *t.Detail == *p.Detail
}

func cloneDetail(d *string) *string {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
