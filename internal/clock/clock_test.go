package clock

import (
	"testing"
	"time"
)

func TestReal_AfterFuncFires(t *testing.T) {
	fired := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected callback to fire")
	}
}

func TestReal_StopPreventsCallback(t *testing.T) {
	fired := make(chan struct{}, 1)
	timer := Real().AfterFunc(time.Hour, func() { fired <- struct{}{} })

	if !timer.Stop() {
		t.Fatal("expected Stop to cancel a pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}
}

func TestOrReal(t *testing.T) {
	if OrReal(nil) == nil {
		t.Fatal("expected a scheduler for nil input")
	}

	custom := Real()
	if got := OrReal(custom); got != custom {
		t.Error("expected the supplied scheduler to be returned unchanged")
	}
}
