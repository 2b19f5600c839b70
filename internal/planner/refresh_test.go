package planner

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRefresh(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		want      TriggerResponse
		wantErr   bool
		errSubstr string
	}{
		{
			name:   "running",
			status: http.StatusOK,
			body:   `{"state":"running"}`,
			want:   TriggerResponse{State: StateRunning},
		},
		{
			name:   "already succeeded",
			status: http.StatusOK,
			body:   `{"state":"success","updated_records":12}`,
			want:   TriggerResponse{State: StateSuccess, UpdatedRecords: 12},
		},
		{
			name:      "no content",
			status:    http.StatusNoContent,
			wantErr:   true,
			errSubstr: "missing refresh state",
		},
		{
			name:      "missing state",
			status:    http.StatusOK,
			body:      `{}`,
			wantErr:   true,
			errSubstr: "missing refresh state",
		},
		{
			name:      "server error",
			status:    http.StatusInternalServerError,
			body:      "etl worker unavailable",
			wantErr:   true,
			errSubstr: "etl worker unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "", func(r chi.Router) {
				r.Post("/refresh", func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(tt.body))
				})
			})

			got, err := c.PostRefresh(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostRefresh_NotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, "", func(r chi.Router) {
		r.Post("/refresh", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	})

	_, err := c.PostRefresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}

func TestFetchRefreshStatus_Decodes(t *testing.T) {
	c := newTestClient(t, "", func(r chi.Router) {
		r.Get("/refresh/status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"state":"failure","started_at":"2024-05-01T10:00:00Z","finished_at":"2024-05-01T10:02:00Z","updated_records":0,"last_error":"boom"}`))
		})
	})

	status, err := c.FetchRefreshStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFailure, status.State)
	require.NotNil(t, status.StartedAt)
	assert.Equal(t, "2024-05-01T10:00:00Z", *status.StartedAt)
	require.NotNil(t, status.LastError)
	assert.Equal(t, "boom", *status.LastError)
}

func TestFetchRefreshStatus_NoContentIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, "", func(r chi.Router) {
		r.Get("/refresh/status", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNoContent)
		})
	})

	_, err := c.FetchRefreshStatus(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyState)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRefreshStatus_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, "", func(r chi.Router) {
		r.Get("/refresh/status", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"state":"success","updated_records":4}`))
		})
	})

	status, err := c.FetchRefreshStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, status.State)
	assert.Equal(t, 4, status.UpdatedRecords)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchRefreshStatus_GivesUpAfterMaxTries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, "", func(r chi.Router) {
		r.Get("/refresh/status", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		})
	})

	_, err := c.FetchRefreshStatus(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(DefaultMaxTries), calls.Load())
	assert.Contains(t, err.Error(), "request failed with status 429")
}

func TestFetchRefreshStatus_ClientErrorsArePermanent(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, "", func(r chi.Router) {
		r.Get("/refresh/status", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})
	})

	_, err := c.FetchRefreshStatus(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, IsAuthError(err))
}

func TestFetchRefreshStatus_EmptyStateIsDecodeError(t *testing.T) {
	c := newTestClient(t, "", func(r chi.Router) {
		r.Get("/refresh/status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"updated_records":1}`))
		})
	})

	_, err := c.FetchRefreshStatus(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyState))
}

func TestRefreshState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    RefreshState
		terminal bool
		known    bool
	}{
		{StateRunning, false, true},
		{StateSuccess, true, true},
		{StateFailure, true, true},
		{StateStale, true, true},
		{RefreshState("queued"), false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
			assert.Equal(t, tt.known, tt.state.IsKnown())
		})
	}
}

func TestTriggerResponse_Status(t *testing.T) {
	msg := "boom"
	got := TriggerResponse{State: StateFailure, LastError: &msg}.Status()
	assert.Equal(t, StateFailure, got.State)
	require.NotNil(t, got.LastError)
	assert.Equal(t, "boom", *got.LastError)
	assert.Nil(t, got.FinishedAt)
}
