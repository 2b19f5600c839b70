package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v5"
)

// PostRefresh asks the backend to start the data-refresh job.
// The trigger is not idempotent, so it is sent exactly once.
func (c *Client) PostRefresh(ctx context.Context) (TriggerResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/refresh", nil)
	if err != nil {
		return TriggerResponse{}, err
	}
	if body == nil {
		return TriggerResponse{}, fmt.Errorf("failed to parse refresh response: %w", ErrEmptyState)
	}

	var resp TriggerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return TriggerResponse{}, fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if resp.State == "" {
		return TriggerResponse{}, fmt.Errorf("failed to parse refresh response: %w", ErrEmptyState)
	}
	return resp, nil
}

// FetchRefreshStatus returns the current state of the refresh job.
// Network errors and 5xx/429 responses are retried with exponential backoff.
func (c *Client) FetchRefreshStatus(ctx context.Context) (RefreshStatus, error) {
	operation := func() (RefreshStatus, error) {
		body, err := c.do(ctx, http.MethodGet, "/refresh/status", nil)
		if err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) && !httpErr.IsRetryable() {
				return RefreshStatus{}, backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return RefreshStatus{}, backoff.Permanent(err)
			}
			return RefreshStatus{}, err
		}
		if body == nil {
			return RefreshStatus{}, backoff.Permanent(fmt.Errorf("failed to parse refresh status: %w", ErrEmptyState))
		}

		var status RefreshStatus
		if err := json.Unmarshal(body, &status); err != nil {
			return RefreshStatus{}, backoff.Permanent(fmt.Errorf("failed to parse refresh status: %w", err))
		}
		if status.State == "" {
			return RefreshStatus{}, backoff.Permanent(fmt.Errorf("failed to parse refresh status: %w", ErrEmptyState))
		}
		return status, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
}
