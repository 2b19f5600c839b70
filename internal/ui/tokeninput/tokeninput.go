// Package tokeninput is a small Bubble Tea program that prompts for the
// planner API token with masked input.
package tokeninput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

// Model is the token prompt. It quits the program once the user submits a
// non-empty token or cancels.
type Model struct {
	styles    *styles.Styles
	endpoint  string
	input     textinput.Model
	err       string
	submitted bool
	cancelled bool
}

// NewModel creates a focused prompt for the token used against endpoint.
func NewModel(s *styles.Styles, endpoint string) Model {
	if s == nil {
		s = styles.DefaultStyles()
	}
	ti := textinput.New()
	ti.Placeholder = "API token"
	ti.CharLimit = 1024
	ti.Width = 60
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()

	return Model{styles: s, endpoint: endpoint, input: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if m.Token() == "" {
				m.err = "token cannot be empty"
				return m, nil
			}
			m.submitted = true
			m.err = ""
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Planner API token") + "\n\n")
	if m.endpoint != "" {
		b.WriteString(m.styles.Muted.Render("Endpoint: "+m.endpoint) + "\n\n")
	}
	b.WriteString(m.input.View() + "\n\n")
	if m.err != "" {
		b.WriteString(m.styles.Error.Bold(true).Render("Error: "+m.err) + "\n\n")
	}
	b.WriteString(m.styles.Muted.Render("Press Enter to save • Esc to cancel"))
	return b.String()
}

// Token returns the entered token without surrounding whitespace.
func (m Model) Token() string {
	return strings.TrimSpace(m.input.Value())
}

func (m Model) Submitted() bool { return m.submitted }
func (m Model) Cancelled() bool { return m.cancelled }
