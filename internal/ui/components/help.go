package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

// HelpSection is a titled group of key bindings.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpModal is an overlay listing the available key bindings.
type HelpModal struct {
	styles   *styles.Styles
	visible  bool
	width    int
	height   int
	sections []HelpSection
}

// NewHelpModal creates a hidden HelpModal for the given sections.
func NewHelpModal(s *styles.Styles, sections ...HelpSection) *HelpModal {
	return &HelpModal{styles: s, sections: sections}
}

func (h *HelpModal) Show() { h.visible = true }
func (h *HelpModal) Hide() { h.visible = false }
func (h *HelpModal) Toggle() { h.visible = !h.visible }
func (h *HelpModal) IsVisible() bool { return h.visible }
func (h *HelpModal) SetStyles(s *styles.Styles) { h.styles = s }
func (h *HelpModal) SetSize(width, height int) { h.width, h.height = width, height }

// Update closes the modal on esc, q or ?.
func (h *HelpModal) Update(msg tea.Msg) (*HelpModal, tea.Cmd) {
	if !h.visible {
		return h, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "?":
			h.Hide()
		}
	}
	return h, nil
}

// View renders the modal centered in the available area.
func (h *HelpModal) View() string {
	if !h.visible {
		return ""
	}

	keyStyle := h.styles.Key.Width(12)
	var content strings.Builder
	content.WriteString(h.styles.Title.Render("Keyboard shortcuts"))
	content.WriteString("\n")

	for _, section := range h.sections {
		content.WriteString("\n")
		content.WriteString(h.styles.Label.Render(section.Title))
		content.WriteString("\n")
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			content.WriteString(keyStyle.Render(help.Key) + h.styles.Description.Render(help.Desc))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(h.styles.Muted.Render("Press esc, q, or ? to close"))

	return center(h.styles.ModalBox.Render(content.String()), h.width, h.height)
}

// center places an overlay in the middle of a width x height area. A zero
// size returns the overlay unchanged.
func center(overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		return overlay
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
}
