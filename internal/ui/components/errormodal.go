package components

import (
	"errors"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plantingplanner/planner-tui/internal/planner"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

const minErrorModalWidth = 50

// ErrorInfo is a classified error ready for the error modal.
type ErrorInfo struct {
	Title   string
	Message string
	Hint    string
}

// ErrorModal is an overlay that displays errors the user has to act on.
type ErrorModal struct {
	styles  *styles.Styles
	visible bool
	width   int
	height  int
	info    ErrorInfo
}

func NewErrorModal(s *styles.Styles) *ErrorModal {
	return &ErrorModal{styles: s}
}

// Show makes the modal visible with the given content.
func (m *ErrorModal) Show(info ErrorInfo) {
	m.info = info
	m.visible = true
}

func (m *ErrorModal) Hide() { m.visible = false }
func (m *ErrorModal) IsVisible() bool { return m.visible }
func (m *ErrorModal) Info() ErrorInfo { return m.info }
func (m *ErrorModal) SetStyles(s *styles.Styles) { m.styles = s }
func (m *ErrorModal) SetSize(width, height int) { m.width, m.height = width, height }

// Update closes the modal on esc or enter.
func (m *ErrorModal) Update(msg tea.Msg) (*ErrorModal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter":
			m.Hide()
		}
	}
	return m, nil
}

// View renders the modal centered in the available area.
func (m *ErrorModal) View() string {
	if !m.visible {
		return ""
	}

	width := max(minErrorModalWidth, lipgloss.Width(m.info.Title))
	bg := m.styles.Theme.BackgroundAlt
	block := func(st lipgloss.Style) lipgloss.Style { return st.Width(width).Background(bg) }

	var content strings.Builder
	content.WriteString(block(m.styles.Error.Bold(true)).Render(m.info.Title))
	content.WriteString("\n\n")
	content.WriteString(block(m.styles.Value).Render(m.info.Message))
	content.WriteString("\n")
	if m.info.Hint != "" {
		content.WriteString("\n")
		content.WriteString(block(m.styles.Key).Render(m.info.Hint))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(block(m.styles.Muted).Render("Press esc to dismiss"))

	modal := m.styles.ModalBox.BorderForeground(m.styles.Theme.Error).Render(content.String())
	return center(modal, m.width, m.height)
}

// CriticalErrorMsg asks the root model to show the error modal.
type CriticalErrorMsg struct {
	Info ErrorInfo
}

// NewCriticalErrorCmd returns a command emitting CriticalErrorMsg when err
// classifies as critical, and nil otherwise.
func NewCriticalErrorCmd(err error) tea.Cmd {
	info := ClassifyError(err)
	if info == nil {
		return nil
	}
	return func() tea.Msg {
		return CriticalErrorMsg{Info: *info}
	}
}

// ClassifyError returns display information for errors retrying cannot fix:
// rejected credentials and a wrong endpoint. Transient errors return nil.
func ClassifyError(err error) *ErrorInfo {
	var httpErr *planner.HTTPError
	if !errors.As(err, &httpErr) {
		return nil
	}

	switch {
	case httpErr.StatusCode == http.StatusUnauthorized:
		return &ErrorInfo{
			Title:   "Authentication Error",
			Message: "The planner API rejected the request. The API token may be missing or expired.",
			Hint:    "Run 'planner-tui auth' to store a new token.",
		}
	case httpErr.StatusCode == http.StatusForbidden:
		return &ErrorInfo{
			Title:   "Authentication Error",
			Message: "The API token is not allowed to trigger or read refreshes.",
			Hint:    "Run 'planner-tui auth' with a token that has refresh access.",
		}
	case planner.IsNotFound(err):
		return &ErrorInfo{
			Title:   "Configuration Error",
			Message: "The planner API returned 'not found'. The configured api_endpoint may be wrong.",
			Hint:    "Check api_endpoint in your config file. It should end with /api.",
		}
	}
	return nil
}
