// Package refresh orchestrates one data-refresh attempt at a time: it
// triggers the backend job, polls until the job concludes or a deadline
// passes, and reports the outcome as a toast.
package refresh

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/plantingplanner/planner-tui/internal/clock"
	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/planner"
	"github.com/plantingplanner/planner-tui/internal/polling"
	"github.com/plantingplanner/planner-tui/internal/store"
	"github.com/plantingplanner/planner-tui/internal/toast"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultTimeout      = 2 * time.Minute
)

// API is the backend surface the controller needs.
type API interface {
	PostRefresh(ctx context.Context) (planner.TriggerResponse, error)
	FetchRefreshStatus(ctx context.Context) (planner.RefreshStatus, error)
}

// SyncRecorder receives the results of concluded attempts.
type SyncRecorder interface {
	RecordSync(store.LastSync) error
	RecordAttempt(store.AttemptRecord) error
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	PollInterval  time.Duration
	Timeout       time.Duration
	ToastDuration time.Duration
	// OnSuccess is started on its own goroutine after a successful refresh,
	// just before the success toast is shown. It is not awaited. Its error or
	// panic is logged and otherwise ignored.
	OnSuccess func(ctx context.Context) error
	Scheduler clock.Scheduler
	Messages  *messages.Catalog
	Recorder  SyncRecorder
	Logger    *slog.Logger
	Now       func() time.Time
}

type state int

const (
	stateIdle state = iota
	stateActive
	stateFinishing
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateActive:
		return "active"
	case stateFinishing:
		return "finishing"
	default:
		return "unknown"
	}
}

// attempt is the bookkeeping for the in-progress refresh.
type attempt struct {
	gen          uint64
	parent       context.Context
	cancel       context.CancelFunc
	poller       *polling.StatusPoller
	timeout      clock.Timer
	startToastID string
	done         chan struct{}
}

// Controller runs refresh attempts and owns the toast store.
type Controller struct {
	api          API
	pollInterval time.Duration
	timeout      time.Duration
	onSuccess    func(ctx context.Context) error
	scheduler    clock.Scheduler
	msgs         *messages.Catalog
	recorder     SyncRecorder
	logger       *slog.Logger
	now          func() time.Time

	toasts  *toast.Store
	changes chan struct{}
	hooks   conc.WaitGroup

	mu          sync.Mutex
	state       state
	gen         uint64
	cur         *attempt
	closed      bool
	lastOutcome *toast.Payload
}

// New creates an idle controller.
func New(api API, opts Options) *Controller {
	c := &Controller{
		api:          api,
		pollInterval: opts.PollInterval,
		timeout:      opts.Timeout,
		onSuccess:    opts.OnSuccess,
		scheduler:    clock.OrReal(opts.Scheduler),
		msgs:         opts.Messages,
		recorder:     opts.Recorder,
		logger:       opts.Logger,
		now:          opts.Now,
		changes:      make(chan struct{}, 1),
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.msgs == nil {
		c.msgs = messages.For(string(messages.DefaultLanguage))
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.logger = c.logger.With("component", "refresh")
	if c.now == nil {
		c.now = time.Now
	}

	c.toasts = toast.NewStore(opts.ToastDuration, c.scheduler)
	c.toasts.OnChange(c.notify)
	return c
}

// StartRefresh runs one attempt and returns once it has concluded and its
// outcome toast is visible. It returns immediately when an attempt is
// already in progress or the controller is closed. Cancelling ctx ends the
// attempt without an outcome.
func (c *Controller) StartRefresh(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.state != stateIdle {
		c.mu.Unlock()
		return
	}

	c.gen++
	gen := c.gen
	attemptCtx, cancel := context.WithCancel(ctx)
	a := &attempt{
		gen:    gen,
		parent: ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	poller, err := polling.NewStatusPoller(polling.StatusPollerOptions{
		Interval: c.pollInterval,
		Fetch:    c.api.FetchRefreshStatus,
		IsActive: func() bool { return c.isActive(gen) },
		OnTerminal: func(status planner.RefreshStatus) {
			c.finish(gen, ptr(outcomeFromStatus(c.msgs, status)))
		},
		OnError: func(err error) {
			if ctx.Err() != nil {
				c.finish(gen, nil)
				return
			}
			c.finish(gen, ptr(errorOutcome(c.msgs.StatusFetchFailed, err)))
		},
		Scheduler: c.scheduler,
	})
	if err != nil {
		c.mu.Unlock()
		cancel()
		c.logger.Error("failed to create status poller", "error", err)
		return
	}
	a.poller = poller

	c.state = stateActive
	c.cur = a
	a.timeout = c.scheduler.AfterFunc(c.timeout, func() {
		c.logger.Warn("refresh timed out", "attempt", gen, "timeout", c.timeout)
		c.finish(gen, ptr(timeoutOutcome(c.msgs)))
	})
	c.mu.Unlock()

	c.logger.Info("refresh started", "attempt", gen)
	c.notify()

	resp, err := c.api.PostRefresh(attemptCtx)
	switch {
	case !c.isActive(gen):
		// Finished by timeout, Close or cancellation while the trigger was in flight.
	case err != nil && ctx.Err() != nil:
		c.finish(gen, nil)
	case err != nil:
		c.logger.Warn("refresh trigger failed", "attempt", gen, "error", err)
		c.finish(gen, ptr(errorOutcome(c.msgs.RequestFailed, err)))
	case resp.State.IsTerminal():
		c.finish(gen, ptr(outcomeFromStatus(c.msgs, resp.Status())))
	default:
		c.showStarted(gen)
		go poller.Run(attemptCtx)
	}

	select {
	case <-a.done:
	case <-ctx.Done():
		c.finish(gen, nil)
		<-a.done
	}
}

// DismissToast removes a toast and cancels its timer.
func (c *Controller) DismissToast(id string) {
	c.mu.Lock()
	if c.cur != nil && c.cur.startToastID == id {
		c.cur.startToastID = ""
	}
	c.mu.Unlock()

	c.toasts.Dismiss(id)
}

// DismissAllToasts removes every visible toast.
func (c *Controller) DismissAllToasts() {
	c.mu.Lock()
	if c.cur != nil {
		c.cur.startToastID = ""
	}
	c.mu.Unlock()

	c.toasts.DismissAll()
}

// IsRefreshing reports whether an attempt is in progress.
func (c *Controller) IsRefreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateActive
}

// PendingToasts returns a copy of the visible toasts, oldest first.
func (c *Controller) PendingToasts() []toast.Toast {
	return c.toasts.Toasts()
}

// LastOutcome returns the payload of the most recent concluded attempt.
func (c *Controller) LastOutcome() (toast.Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastOutcome == nil {
		return toast.Payload{}, false
	}
	return *c.lastOutcome, true
}

// Changes is signalled whenever IsRefreshing or the toast list may have
// changed. Signals coalesce; receivers should re-read state.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Close ends any attempt without an outcome and stops all toast timers.
// StartRefresh is a no-op afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	gen := c.gen
	c.mu.Unlock()

	c.finish(gen, nil)
	c.toasts.Close()
}

func (c *Controller) isActive(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateActive && c.cur != nil && c.cur.gen == gen
}

func (c *Controller) showStarted(gen uint64) {
	c.mu.Lock()
	if c.state != stateActive || c.cur == nil || c.cur.gen != gen {
		c.mu.Unlock()
		return
	}
	prev := c.cur.startToastID
	c.cur.startToastID = ""
	c.mu.Unlock()

	if prev != "" {
		c.toasts.Dismiss(prev)
	}
	id := c.toasts.Enqueue(toast.Payload{Variant: toast.Info, Message: c.msgs.RequestStarted}, toast.EnqueueOptions{})

	c.mu.Lock()
	if c.state == stateActive && c.cur != nil && c.cur.gen == gen {
		c.cur.startToastID = id
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	// The attempt concluded before the id was recorded.
	c.toasts.Dismiss(id)
}

// finish concludes attempt gen. Only the first call per attempt has effect.
// out is nil when the attempt ends without an outcome.
func (c *Controller) finish(gen uint64, out *outcome) {
	c.mu.Lock()
	if c.state != stateActive || c.cur == nil || c.cur.gen != gen {
		c.mu.Unlock()
		return
	}
	c.state = stateFinishing
	a := c.cur
	startID := a.startToastID
	a.startToastID = ""
	poller := a.poller
	a.poller = nil
	timeout := a.timeout
	a.timeout = nil
	c.mu.Unlock()
	c.notify()

	if startID != "" {
		c.toasts.Dismiss(startID)
	}
	if poller != nil {
		poller.Stop()
	}
	if timeout != nil {
		timeout.Stop()
	}
	a.cancel()

	if out != nil {
		if out.success != nil {
			c.recordSync(*out.success)
			if c.onSuccess != nil {
				parent := a.parent
				c.hooks.Go(func() { c.runOnSuccess(parent) })
			}
		}
		c.toasts.Enqueue(out.payload, toast.EnqueueOptions{Dedupe: out.dedupe()})
		c.recordAttempt(out.payload)
		c.logger.Info("refresh finished", "attempt", gen, "variant", out.payload.Variant, "message", out.payload.Message)
	} else {
		c.logger.Info("refresh abandoned", "attempt", gen)
	}

	c.mu.Lock()
	if out != nil {
		p := out.payload
		c.lastOutcome = &p
	}
	c.state = stateIdle
	c.cur = nil
	c.mu.Unlock()
	c.notify()

	close(a.done)
}

func (c *Controller) runOnSuccess(ctx context.Context) {
	var pc panics.Catcher
	pc.Try(func() {
		if err := c.onSuccess(ctx); err != nil {
			c.logger.Warn("on-success callback failed", "error", err)
		}
	})
	if r := pc.Recovered(); r != nil {
		c.logger.Warn("on-success callback panicked", "error", r.AsError())
	}
}

func (c *Controller) recordSync(status planner.RefreshStatus) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.RecordSync(store.LastSync{
		FinishedAt:     status.FinishedAt,
		UpdatedRecords: status.UpdatedRecords,
		RecordedAt:     c.now(),
	})
	if err != nil {
		c.logger.Warn("failed to record last sync", "error", err)
	}
}

func (c *Controller) recordAttempt(p toast.Payload) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.RecordAttempt(store.AttemptRecord{
		Variant:    p.Variant,
		Message:    p.Message,
		Detail:     p.Detail,
		FinishedAt: c.now(),
	})
	if err != nil {
		c.logger.Warn("failed to record attempt", "error", err)
	}
}

func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

func ptr[T any](v T) *T { return &v }
