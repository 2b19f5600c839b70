package polling

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plantingplanner/planner-tui/internal/planner"
)

const (
	// DefaultInterval is the default watcher interval
	DefaultInterval = 30 * time.Second
	// MinInterval is the minimum allowed watcher interval
	MinInterval = 5 * time.Second
	// fetchTimeout bounds a single background status fetch
	fetchTimeout = 20 * time.Second
)

// StatusClient defines the interface for fetching the refresh status.
type StatusClient interface {
	FetchRefreshStatus(ctx context.Context) (planner.RefreshStatus, error)
}

// Watcher periodically fetches the backend refresh status for display.
// Unlike StatusPoller it never concludes on its own; it runs until stopped.
type Watcher struct {
	client   StatusClient
	interval time.Duration
	stopped  bool
	mu       sync.RWMutex
}

// NewWatcher creates a new Watcher with the given client and interval.
// If interval is 0 or less than MinInterval, DefaultInterval or MinInterval is used.
func NewWatcher(client StatusClient, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	} else if interval < MinInterval {
		interval = MinInterval
	}

	return &Watcher{
		client:   client,
		interval: interval,
	}
}

// SetInterval updates the watcher interval.
// If interval is less than MinInterval, MinInterval is used.
func (w *Watcher) SetInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if interval < MinInterval {
		interval = MinInterval
	}
	w.interval = interval
}

// Interval returns the current interval.
func (w *Watcher) Interval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.interval
}

// Stop stops the watcher from making further API calls.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
}

// IsStopped returns true if the watcher has been stopped.
func (w *Watcher) IsStopped() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stopped
}

// FetchStatus returns a tea.Cmd that fetches the refresh status.
// Returns nil if the watcher has been stopped.
func (w *Watcher) FetchStatus() tea.Cmd {
	if w.IsStopped() {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		status, err := w.client.FetchRefreshStatus(ctx)
		return StatusUpdated{
			Status: status,
			Err:    err,
		}
	}
}

// StartPolling returns a tea.Cmd that sends a TickMsg after the interval.
func (w *Watcher) StartPolling() tea.Cmd {
	if w.IsStopped() {
		return nil
	}

	interval := w.Interval()
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// OnTick fetches the status and schedules the next tick.
func (w *Watcher) OnTick() tea.Cmd {
	if w.IsStopped() {
		return nil
	}

	return tea.Batch(
		w.FetchStatus(),
		w.StartPolling(),
	)
}
