package polling

import (
	"sync"
	"time"

	"github.com/plantingplanner/planner-tui/internal/planner"
)

// MaxRecoverableErrors is the threshold after which errors are considered non-recoverable.
const MaxRecoverableErrors = 5

// ErrorHandler tracks watcher failures and keeps the last status that was
// fetched successfully, so the UI can keep showing it while the backend is
// unreachable.
type ErrorHandler struct {
	currentError      error
	consecutiveErrors int
	lastErrorTime     time.Time
	lastKnownGood     *planner.RefreshStatus
	now               func() time.Time
	mu                sync.RWMutex
}

// NewErrorHandler creates a new ErrorHandler.
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{now: time.Now}
}

// SetError sets the current error and increments the consecutive error count.
func (h *ErrorHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentError = err
	h.consecutiveErrors++
	h.lastErrorTime = h.now()
}

// ClearError clears the current error and resets the consecutive error count.
func (h *ErrorHandler) ClearError() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentError = nil
	h.consecutiveErrors = 0
}

// HasError returns true if there is a current error.
func (h *ErrorHandler) HasError() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.currentError != nil
}

// ConsecutiveErrors returns the number of consecutive errors.
func (h *ErrorHandler) ConsecutiveErrors() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.consecutiveErrors
}

// SetLastKnownGood stores the last successfully fetched status.
func (h *ErrorHandler) SetLastKnownGood(status planner.RefreshStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastKnownGood = &status
}

// LastKnownGood returns the last successfully fetched status, if any.
func (h *ErrorHandler) LastKnownGood() (planner.RefreshStatus, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.lastKnownGood == nil {
		return planner.RefreshStatus{}, false
	}
	return *h.lastKnownGood, true
}

// ProcessUpdate folds a StatusUpdated message into the handler.
// It returns the status to display, whether one is available, and whether
// the update was an error.
func (h *ErrorHandler) ProcessUpdate(msg StatusUpdated) (status planner.RefreshStatus, ok bool, failed bool) {
	if msg.Err != nil {
		h.SetError(msg.Err)
		status, ok = h.LastKnownGood()
		return status, ok, true
	}

	h.SetLastKnownGood(msg.Status)
	h.ClearError()
	return msg.Status, true, false
}

// ErrorMessage returns the error message if there is an error.
func (h *ErrorHandler) ErrorMessage() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.currentError == nil {
		return ""
	}
	return h.currentError.Error()
}

// LastErrorTime returns the time of the last error.
func (h *ErrorHandler) LastErrorTime() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lastErrorTime
}

// IsRecoverable returns true if the error is likely recoverable (transient).
func (h *ErrorHandler) IsRecoverable() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.recoverableLocked()
}

func (h *ErrorHandler) recoverableLocked() bool {
	return h.consecutiveErrors <= MaxRecoverableErrors
}

// ConnectionState summarises the fetch history: connecting until the first
// result, retrying while failures are recoverable, error after that.
func (h *ErrorHandler) ConnectionState() ConnectionState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch {
	case h.currentError == nil && h.lastKnownGood == nil:
		return StateConnecting
	case h.currentError == nil:
		return StateConnected
	case h.recoverableLocked():
		return StateRetrying
	default:
		return StateError
	}
}

// RecoveryMessage returns a user-friendly message about the error state.
func (h *ErrorHandler) RecoveryMessage() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.currentError == nil {
		return ""
	}

	if h.recoverableLocked() {
		return "Connection issue. Retrying..."
	}
	return "Connection failed. Check api_endpoint and your network."
}
