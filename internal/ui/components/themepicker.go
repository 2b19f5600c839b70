package components

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

// ThemeSelectedMsg is sent when the user confirms a theme.
type ThemeSelectedMsg struct {
	ThemeName string
}

var (
	pickerUp     = key.NewBinding(key.WithKeys("up", "k"))
	pickerDown   = key.NewBinding(key.WithKeys("down", "j"))
	pickerSelect = key.NewBinding(key.WithKeys("enter"))
	pickerCancel = key.NewBinding(key.WithKeys("esc", "q"))
)

// ThemePicker is a modal list of the available themes.
type ThemePicker struct {
	styles  *styles.Styles
	visible bool
	width   int
	height  int
	themes  []string
	current string
	cursor  int
}

func NewThemePicker(s *styles.Styles, themes []string, current string) *ThemePicker {
	return &ThemePicker{styles: s, themes: themes, current: current}
}

// Show opens the picker with the cursor on the current theme.
func (t *ThemePicker) Show() {
	t.cursor = max(slices.Index(t.themes, t.current), 0)
	t.visible = true
}

func (t *ThemePicker) Hide() { t.visible = false }
func (t *ThemePicker) IsVisible() bool { return t.visible }
func (t *ThemePicker) Cursor() int { return t.cursor }
func (t *ThemePicker) Current() string { return t.current }
func (t *ThemePicker) SetSize(w, h int) { t.width, t.height = w, h }

// SetCurrent records the active theme and restyles the picker with it.
func (t *ThemePicker) SetCurrent(name string, s *styles.Styles) {
	t.current = name
	t.styles = s
}

func (t *ThemePicker) Update(msg tea.Msg) (*ThemePicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !t.visible || !ok || len(t.themes) == 0 {
		return t, nil
	}

	switch {
	case key.Matches(keyMsg, pickerCancel):
		t.visible = false
	case key.Matches(keyMsg, pickerUp):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(keyMsg, pickerDown):
		if t.cursor < len(t.themes)-1 {
			t.cursor++
		}
	case key.Matches(keyMsg, pickerSelect):
		name := t.themes[t.cursor]
		t.visible = false
		return t, func() tea.Msg { return ThemeSelectedMsg{ThemeName: name} }
	}
	return t, nil
}

func (t *ThemePicker) View() string {
	if !t.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(t.styles.Title.Render("Select Theme"))
	b.WriteString("\n\n")
	for i, name := range t.themes {
		line := "  " + name
		if name == t.current {
			line += " (current)"
		}
		if i == t.cursor {
			b.WriteString(t.styles.Selected.Render(">" + line[1:]))
		} else {
			b.WriteString(t.styles.Value.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t.styles.Muted.Render("↑/↓: navigate • enter: select • esc/q: cancel"))

	return center(t.styles.ModalBox.Render(b.String()), t.width, t.height)
}
