package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

// RefreshButton renders the refresh trigger. While an attempt is running it
// shows a spinner and the busy label instead.
type RefreshButton struct {
	styles  *styles.Styles
	catalog *messages.Catalog
	spinner spinner.Model
	busy    bool
}

// NewRefreshButton creates an idle RefreshButton.
func NewRefreshButton(s *styles.Styles, catalog *messages.Catalog) *RefreshButton {
	if catalog == nil {
		catalog = messages.For("")
	}
	b := &RefreshButton{
		catalog: catalog,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	b.SetStyles(s)
	return b
}

// SetStyles switches the button to another theme.
func (b *RefreshButton) SetStyles(s *styles.Styles) {
	if s == nil {
		s = styles.DefaultStyles()
	}
	b.styles = s
	b.spinner.Style = s.Spinner
}

// SetBusy marks the button busy or idle. Becoming busy returns the spinner's
// first tick so the animation starts.
func (b *RefreshButton) SetBusy(busy bool) tea.Cmd {
	wasBusy := b.busy
	b.busy = busy
	if busy && !wasBusy {
		return b.spinner.Tick
	}
	return nil
}

func (b *RefreshButton) IsBusy() bool { return b.busy }

// Update advances the spinner. Ticks stop being rescheduled once the button
// is idle.
func (b *RefreshButton) Update(msg tea.Msg) (*RefreshButton, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !b.busy {
		return b, nil
	}
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(tick)
	return b, cmd
}

// View renders the button.
func (b *RefreshButton) View() string {
	if b.busy {
		return b.styles.ButtonBusy.Render(b.spinner.View() + " " + b.catalog.RefreshingButton)
	}
	return b.styles.Button.Render(b.catalog.RefreshButton)
}
