// Package components provides reusable UI components for the TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/polling"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

// StatusBar displays the backend endpoint, the connection state and a help
// hint at the bottom of the screen.
type StatusBar struct {
	styles   *styles.Styles
	catalog  *messages.Catalog
	endpoint string
	state    polling.ConnectionState
	helpText string
	width    int
}

// NewStatusBar creates a StatusBar in the connecting state.
func NewStatusBar(s *styles.Styles, catalog *messages.Catalog) *StatusBar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if catalog == nil {
		catalog = messages.For("")
	}
	return &StatusBar{
		styles:   s,
		catalog:  catalog,
		state:    polling.StateConnecting,
		helpText: "? help",
	}
}

func (s *StatusBar) SetEndpoint(endpoint string) { s.endpoint = endpoint }
func (s *StatusBar) SetState(state polling.ConnectionState) { s.state = state }
func (s *StatusBar) SetHelpText(text string) { s.helpText = text }
func (s *StatusBar) SetWidth(width int) { s.width = width }
func (s *StatusBar) SetStyles(st *styles.Styles) { s.styles = st }

// State returns the displayed connection state.
func (s *StatusBar) State() polling.ConnectionState { return s.state }

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.styles.Bold.Render(s.endpoint)
	center := s.renderConnectionState()
	right := s.styles.Muted.Render(s.helpText)

	content := lipgloss.Width(left) + lipgloss.Width(center) + lipgloss.Width(right)
	space := s.width - content
	if space < 2 {
		space = 2
	}
	leftPad := space / 2

	bar := left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", space-leftPad) + right
	return lipgloss.NewStyle().
		Background(s.styles.Theme.BackgroundAlt).
		Padding(0, 1).
		Inline(true).
		Render(bar)
}

func (s *StatusBar) renderConnectionState() string {
	switch s.state {
	case polling.StateConnected:
		return s.styles.Connected.Render("● " + s.catalog.Online)
	case polling.StateConnecting:
		return s.styles.Connecting.Render("○ " + s.state.String())
	case polling.StateRetrying:
		return s.styles.Connecting.Render("↻ " + s.state.String())
	case polling.StateError:
		return s.styles.ConnError.Render("✗ " + s.catalog.Offline)
	default:
		return s.styles.Disconnected.Render("○ " + s.catalog.Offline)
	}
}
