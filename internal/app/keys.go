package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/plantingplanner/planner-tui/internal/ui/components"
)

// KeyMap holds the root model's key bindings.
type KeyMap struct {
	Refresh    key.Binding
	Dismiss    key.Binding
	DismissAll key.Binding
	History    key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "start refresh")),
		Dismiss:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss oldest toast")),
		DismissAll: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "dismiss all toasts")),
		History:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "toggle refresh history")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "select theme")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// HelpSections groups the bindings for the help overlay.
func (k KeyMap) HelpSections() []components.HelpSection {
	return []components.HelpSection{
		{Title: "Refresh", Bindings: []key.Binding{k.Refresh, k.Dismiss, k.DismissAll, k.History}},
		{Title: "General", Bindings: []key.Binding{k.Theme, k.Help, k.Quit}},
	}
}
