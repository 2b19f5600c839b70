// Package planner is a small REST client for the crop planner backend's
// data-refresh endpoints.
package planner

// RefreshState is the lifecycle state of the backend refresh job.
type RefreshState string

const (
	StateRunning RefreshState = "running"
	StateSuccess RefreshState = "success"
	StateFailure RefreshState = "failure"
	StateStale   RefreshState = "stale"
)

// IsTerminal reports whether no further transition is expected from s.
// Only the known terminal states qualify; an unknown state string is not
// treated as terminal here, so pollers keep waiting on it until their
// deadline.
func (s RefreshState) IsTerminal() bool {
	switch s {
	case StateSuccess, StateFailure, StateStale:
		return true
	default:
		return false
	}
}

// IsKnown reports whether s is one of the states the backend documents.
func (s RefreshState) IsKnown() bool {
	return s == StateRunning || s.IsTerminal()
}

// RefreshStatus is the payload of GET /refresh/status.
// StartedAt and FinishedAt are passed through untouched.
type RefreshStatus struct {
	State          RefreshState `json:"state"`
	StartedAt      *string      `json:"started_at"`
	FinishedAt     *string      `json:"finished_at"`
	UpdatedRecords int          `json:"updated_records"`
	LastError      *string      `json:"last_error"`
}

// TriggerResponse is the payload of POST /refresh.
type TriggerResponse struct {
	State          RefreshState `json:"state"`
	UpdatedRecords int          `json:"updated_records,omitempty"`
	LastError      *string      `json:"last_error,omitempty"`
}

// Status converts the trigger response into the status shape so that both
// can be handled by the same outcome mapping.
func (r TriggerResponse) Status() RefreshStatus {
	return RefreshStatus{
		State:          r.State,
		UpdatedRecords: r.UpdatedRecords,
		LastError:      r.LastError,
	}
}
