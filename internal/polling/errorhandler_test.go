package polling

import (
	"errors"
	"testing"
	"time"

	"github.com/plantingplanner/planner-tui/internal/planner"
)

func TestErrorHandler_New(t *testing.T) {
	eh := NewErrorHandler()

	if eh == nil {
		t.Fatal("expected non-nil ErrorHandler")
	}
	if eh.HasError() {
		t.Error("new error handler should not have an error")
	}
	if eh.ConsecutiveErrors() != 0 {
		t.Error("consecutive errors should be 0 initially")
	}
	if _, ok := eh.LastKnownGood(); ok {
		t.Error("should have no status initially")
	}
}

func TestErrorHandler_ConsecutiveErrors(t *testing.T) {
	eh := NewErrorHandler()

	eh.SetError(errors.New("error 1"))
	if eh.ConsecutiveErrors() != 1 {
		t.Errorf("expected 1 consecutive error, got %d", eh.ConsecutiveErrors())
	}

	eh.SetError(errors.New("error 2"))
	if eh.ConsecutiveErrors() != 2 {
		t.Errorf("expected 2 consecutive errors, got %d", eh.ConsecutiveErrors())
	}
	if eh.ErrorMessage() != "error 2" {
		t.Errorf("expected 'error 2', got '%s'", eh.ErrorMessage())
	}

	eh.ClearError()
	if eh.ConsecutiveErrors() != 0 {
		t.Errorf("expected 0 consecutive errors after clear, got %d", eh.ConsecutiveErrors())
	}
	if eh.HasError() || eh.ErrorMessage() != "" {
		t.Error("error should be cleared")
	}
}

func TestErrorHandler_ProcessUpdate(t *testing.T) {
	eh := NewErrorHandler()

	// Error before any success: nothing to show
	_, ok, failed := eh.ProcessUpdate(StatusUpdated{Err: errors.New("API error")})
	if ok {
		t.Error("should have no status before the first success")
	}
	if !failed {
		t.Error("should report failure")
	}

	// Success stores the status and clears the error
	good := planner.RefreshStatus{State: planner.StateSuccess, UpdatedRecords: 9}
	status, ok, failed := eh.ProcessUpdate(StatusUpdated{Status: good})
	if !ok || failed {
		t.Fatalf("expected ok success, got ok=%v failed=%v", ok, failed)
	}
	if status.UpdatedRecords != 9 {
		t.Errorf("expected 9 records, got %d", status.UpdatedRecords)
	}
	if eh.HasError() {
		t.Error("should not have stored error on success")
	}

	// A later error falls back to the last good status
	status, ok, failed = eh.ProcessUpdate(StatusUpdated{Err: errors.New("timeout")})
	if !ok || !failed {
		t.Fatalf("expected fallback with failure, got ok=%v failed=%v", ok, failed)
	}
	if status.UpdatedRecords != 9 {
		t.Errorf("should return last known good status, got %+v", status)
	}
	if eh.ConsecutiveErrors() != 1 {
		t.Errorf("should have 1 consecutive error, got %d", eh.ConsecutiveErrors())
	}
}

func TestErrorHandler_LastErrorTime(t *testing.T) {
	eh := NewErrorHandler()
	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	eh.now = func() time.Time { return fixed }

	if !eh.LastErrorTime().IsZero() {
		t.Error("should return zero time when no error")
	}

	eh.SetError(errors.New("error"))
	if !eh.LastErrorTime().Equal(fixed) {
		t.Errorf("expected %v, got %v", fixed, eh.LastErrorTime())
	}
}

func TestErrorHandler_Recovery(t *testing.T) {
	eh := NewErrorHandler()
	if eh.RecoveryMessage() != "" {
		t.Error("no recovery message without an error")
	}

	eh.SetError(errors.New("error 1"))
	if !eh.IsRecoverable() {
		t.Error("single error should be recoverable")
	}
	if eh.RecoveryMessage() != "Connection issue. Retrying..." {
		t.Errorf("unexpected message %q", eh.RecoveryMessage())
	}

	for i := 0; i < MaxRecoverableErrors; i++ {
		eh.SetError(errors.New("more errors"))
	}
	if eh.IsRecoverable() {
		t.Error("too many errors should not be recoverable")
	}
	if eh.RecoveryMessage() == "Connection issue. Retrying..." {
		t.Error("expected the non-recoverable message")
	}
}

func TestErrorHandler_ConnectionState(t *testing.T) {
	eh := NewErrorHandler()

	// Given: nothing fetched yet
	// Then: still connecting
	if got := eh.ConnectionState(); got != StateConnecting {
		t.Errorf("expected connecting, got %v", got)
	}

	// Given: a failure before any success
	// Then: retrying
	eh.ProcessUpdate(StatusUpdated{Err: errors.New("dial tcp: refused")})
	if got := eh.ConnectionState(); got != StateRetrying {
		t.Errorf("expected retrying, got %v", got)
	}

	// Given: a successful fetch
	// Then: connected
	eh.ProcessUpdate(StatusUpdated{Status: planner.RefreshStatus{State: planner.StateRunning}})
	if got := eh.ConnectionState(); got != StateConnected {
		t.Errorf("expected connected, got %v", got)
	}

	// Given: more failures in a row than are recoverable
	// Then: error
	for i := 0; i <= MaxRecoverableErrors; i++ {
		eh.ProcessUpdate(StatusUpdated{Err: errors.New("timeout")})
		if i < MaxRecoverableErrors && eh.ConnectionState() != StateRetrying {
			t.Fatalf("failure %d: expected retrying, got %v", i+1, eh.ConnectionState())
		}
	}
	if got := eh.ConnectionState(); got != StateError {
		t.Errorf("expected error, got %v", got)
	}
}
