package cli

import (
	"context"
	"time"

	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/planner"
	"github.com/plantingplanner/planner-tui/internal/refresh"
	"github.com/plantingplanner/planner-tui/internal/store"
)

// newClient builds the planner client with the stored token, if any.
func (e *env) newClient() (*planner.Client, error) {
	token, err := e.opts.Tokens.ResolveToken()
	if err != nil {
		e.logger.Warn("failed to read API token from keyring", "error", err)
	}
	return planner.NewClient(e.cfg.APIEndpoint, token)
}

// openStore opens the sync history. When the database is unavailable,
// for example locked by a running TUI, history is kept in memory only.
func (e *env) openStore() *store.SyncStore {
	s, err := store.Open(e.cfg.StateDir)
	if err == nil {
		return s
	}
	e.logger.Warn("sync history unavailable, keeping it in memory", "dir", e.cfg.StateDir, "error", err)
	s, _ = store.Open("")
	return s
}

type controllerOverrides struct {
	pollInterval time.Duration
	timeout      time.Duration
	onSuccess    func(ctx context.Context) error
}

func (e *env) newController(api refresh.API, rec refresh.SyncRecorder, o controllerOverrides) *refresh.Controller {
	opts := refresh.Options{
		PollInterval:  e.cfg.PollInterval,
		Timeout:       e.cfg.Timeout,
		ToastDuration: e.cfg.ToastDuration,
		OnSuccess:     o.onSuccess,
		Messages:      messages.For(e.cfg.Language),
		Recorder:      rec,
		Logger:        e.logger,
	}
	if o.pollInterval > 0 {
		opts.PollInterval = o.pollInterval
	}
	if o.timeout > 0 {
		opts.Timeout = o.timeout
	}
	return refresh.New(api, opts)
}
