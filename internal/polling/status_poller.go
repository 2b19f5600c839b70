package polling

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/plantingplanner/planner-tui/internal/clock"
	"github.com/plantingplanner/planner-tui/internal/planner"
)

// ErrInvalidInterval is returned for a non-positive poll interval.
var ErrInvalidInterval = errors.New("poll interval must be positive")

// StatusPollerOptions configures a StatusPoller.
type StatusPollerOptions struct {
	Interval time.Duration
	Fetch    func(ctx context.Context) (planner.RefreshStatus, error)
	// IsActive is consulted before each fetch and again once it returns.
	// When it reports false the poller stops without invoking callbacks.
	IsActive   func() bool
	OnTerminal func(planner.RefreshStatus)
	OnError    func(error)
	Scheduler  clock.Scheduler
}

// StatusPoller fetches the refresh status at a fixed interval until a
// terminal state, an error, or Stop. One poller serves one refresh attempt.
type StatusPoller struct {
	interval   time.Duration
	fetch      func(ctx context.Context) (planner.RefreshStatus, error)
	isActive   func() bool
	onTerminal func(planner.RefreshStatus)
	onError    func(error)
	scheduler  clock.Scheduler

	mu      sync.Mutex
	ctx     context.Context
	timer   clock.Timer
	stopped bool
}

// NewStatusPoller validates opts and returns an idle poller.
func NewStatusPoller(opts StatusPollerOptions) (*StatusPoller, error) {
	if opts.Interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if opts.Fetch == nil {
		return nil, errors.New("fetch function is required")
	}
	if opts.IsActive == nil {
		return nil, errors.New("isActive predicate is required")
	}

	p := &StatusPoller{
		interval:   opts.Interval,
		fetch:      opts.Fetch,
		isActive:   opts.IsActive,
		onTerminal: opts.OnTerminal,
		onError:    opts.OnError,
		scheduler:  clock.OrReal(opts.Scheduler),
	}
	if p.onTerminal == nil {
		p.onTerminal = func(planner.RefreshStatus) {}
	}
	if p.onError == nil {
		p.onError = func(error) {}
	}
	return p, nil
}

// Run performs the first fetch immediately and returns once it settles.
// Later fetches are driven by the scheduler and reuse ctx.
func (p *StatusPoller) Run(ctx context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.ctx = ctx
	p.clearTimerLocked()
	p.mu.Unlock()

	p.tick()
}

// Stop cancels the pending tick and prevents any further scheduling.
func (p *StatusPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopped = true
	p.clearTimerLocked()
}

// IsStopped reports whether Stop has been called or the poller concluded.
func (p *StatusPoller) IsStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *StatusPoller) tick() {
	p.mu.Lock()
	p.timer = nil
	ctx := p.ctx
	stopped := p.stopped
	p.mu.Unlock()

	if stopped || !p.isActive() {
		return
	}

	status, err := p.fetch(ctx)
	if err != nil {
		live := p.isActive() && !p.IsStopped()
		p.Stop()
		if live {
			p.onError(err)
		}
		return
	}

	if p.IsStopped() || !p.isActive() {
		return
	}

	if status.State.IsTerminal() {
		p.Stop()
		p.onTerminal(status)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.timer = p.scheduler.AfterFunc(p.interval, p.tick)
}

func (p *StatusPoller) clearTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
