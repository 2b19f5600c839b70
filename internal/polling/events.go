// Package polling drives refresh-status polling: the per-attempt
// StatusPoller used by the refresh controller, and the Bubble Tea Watcher
// that keeps the terminal UI's status panel current.
package polling

import "github.com/plantingplanner/planner-tui/internal/planner"

// StatusUpdated is a tea.Msg sent when the backend refresh status is fetched.
// It contains either the status or an error.
type StatusUpdated struct {
	Status planner.RefreshStatus
	Err    error
}

// TickMsg is a tea.Msg sent on each watcher interval tick.
type TickMsg struct{}

// ConnectionState represents the current state of the API connection.
type ConnectionState int

const (
	// StateConnected indicates successful API communication
	StateConnected ConnectionState = iota
	// StateConnecting indicates an initial connection attempt
	StateConnecting
	// StateRetrying indicates recent fetches failed but the watcher keeps trying
	StateRetrying
	// StateError indicates fetches keep failing
	StateError
)

// String returns a human-readable string for the connection state.
func (s ConnectionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateConnecting:
		return "connecting"
	case StateRetrying:
		return "retrying"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

