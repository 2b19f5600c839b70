package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/plantingplanner/planner-tui/internal/toast"
)

// Styles holds the pre-computed lipgloss styles for one theme.
type Styles struct {
	Theme Theme

	// Layout
	Panel    lipgloss.Style
	ModalBox lipgloss.Style
	Header   lipgloss.Style

	// Text
	Title       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style
	Bold        lipgloss.Style
	Key         lipgloss.Style
	Description lipgloss.Style
	Selected    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Refresh button
	Button     lipgloss.Style
	ButtonBusy lipgloss.Style
	Spinner    lipgloss.Style

	// Toast boxes, one per variant
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastDetail  lipgloss.Style

	// Connection indicator
	Connected    lipgloss.Style
	Connecting   lipgloss.Style
	Disconnected lipgloss.Style
	ConnError    lipgloss.Style
}

// NewStyles creates a Styles instance from the given theme.
func NewStyles(theme Theme) *Styles {
	s := &Styles{Theme: theme}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	s.ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Background(theme.BackgroundAlt).
		Padding(1, 2)

	s.Header = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Padding(0, 1)

	s.Title = fg(theme.Primary).Bold(true)
	s.Label = fg(theme.Secondary).Bold(true)
	s.Value = fg(theme.Foreground)
	s.Muted = fg(theme.ForegroundMuted)
	s.Bold = fg(theme.ForegroundBold).Bold(true)
	s.Key = fg(theme.Accent).Bold(true)
	s.Description = fg(theme.Foreground)
	s.Selected = lipgloss.NewStyle().
		Foreground(theme.SelectForeground).
		Background(theme.SelectBackground)

	s.Success = fg(theme.Success)
	s.Warning = fg(theme.Warning)
	s.Error = fg(theme.Error)
	s.Info = fg(theme.Info)

	s.Button = lipgloss.NewStyle().
		Foreground(theme.SelectForeground).
		Background(theme.SelectBackground).
		Bold(true).
		Padding(0, 2)
	s.ButtonBusy = lipgloss.NewStyle().
		Foreground(theme.ForegroundMuted).
		Background(theme.BackgroundAlt).
		Padding(0, 2)
	s.Spinner = fg(theme.Spinner)

	toastBox := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1)
	}
	s.ToastSuccess = toastBox(theme.Success)
	s.ToastError = toastBox(theme.Error)
	s.ToastWarning = toastBox(theme.Warning)
	s.ToastInfo = toastBox(theme.Info)
	s.ToastDetail = fg(theme.Foreground)

	s.Connected = fg(theme.Success)
	s.Connecting = fg(theme.Warning)
	s.Disconnected = fg(theme.ForegroundMuted)
	s.ConnError = fg(theme.Error)

	return s
}

// Toast returns the box style for a toast variant. Unknown variants use the
// info style.
func (s *Styles) Toast(v toast.Variant) lipgloss.Style {
	switch v {
	case toast.Success:
		return s.ToastSuccess
	case toast.Error:
		return s.ToastError
	case toast.Warning:
		return s.ToastWarning
	default:
		return s.ToastInfo
	}
}

// DefaultStyles returns styles using the default theme.
func DefaultStyles() *Styles {
	return NewStyles(GetDefaultTheme())
}
