package components

import (
	"strings"
	"testing"

	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/polling"
)

func TestStatusBar_New(t *testing.T) {
	sb := NewStatusBar(nil, nil)

	if sb.State() != polling.StateConnecting {
		t.Errorf("expected initial state Connecting, got %v", sb.State())
	}
	if sb.styles == nil || sb.catalog == nil {
		t.Error("expected default styles and catalog")
	}
}

func TestStatusBar_View_ContainsEndpoint(t *testing.T) {
	sb := NewStatusBar(nil, nil)
	sb.SetEndpoint("http://localhost:8000/api")
	sb.SetWidth(100)

	if view := sb.View(); !strings.Contains(view, "http://localhost:8000/api") {
		t.Errorf("view should contain endpoint, got %q", view)
	}
}

func TestStatusBar_StateLabels(t *testing.T) {
	catalog := messages.For("en")
	tests := []struct {
		state polling.ConnectionState
		want  string
	}{
		{polling.StateConnected, "● " + catalog.Online},
		{polling.StateConnecting, "○ connecting"},
		{polling.StateRetrying, "↻ retrying"},
		{polling.StateError, "✗ " + catalog.Offline},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			sb := NewStatusBar(nil, catalog)
			sb.SetState(tt.state)
			sb.SetWidth(80)
			if view := sb.View(); !strings.Contains(view, tt.want) {
				t.Errorf("view for %v should contain %q, got %q", tt.state, tt.want, view)
			}
		})
	}
}

func TestStatusBar_JapaneseLabels(t *testing.T) {
	catalog := messages.For("ja")
	sb := NewStatusBar(nil, catalog)
	sb.SetState(polling.StateConnected)

	if view := sb.View(); !strings.Contains(view, catalog.Online) {
		t.Errorf("view should contain %q, got %q", catalog.Online, view)
	}
}

func TestStatusBar_SetHelpText(t *testing.T) {
	sb := NewStatusBar(nil, nil)
	sb.SetHelpText("r refresh")

	if view := sb.View(); !strings.Contains(view, "r refresh") {
		t.Errorf("view should contain custom help text, got %q", view)
	}
}

func TestStatusBar_View_NarrowWidth(t *testing.T) {
	sb := NewStatusBar(nil, nil)
	sb.SetEndpoint("http://planner")
	sb.SetWidth(5)

	view := sb.View()
	if !strings.Contains(view, "http://planner") || !strings.Contains(view, "? help") {
		t.Errorf("narrow view should still contain every section, got %q", view)
	}
	if strings.Contains(view, "\n") {
		t.Error("status bar should render on a single line")
	}
}
