package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for the application.
// Colors are ANSI 256 codes (e.g. "33") or hex values (e.g. "#7c6f64").
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors, also used for the toast variants.
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color // modals and toasts

	Foreground      lipgloss.Color
	ForegroundMuted lipgloss.Color
	ForegroundBold  lipgloss.Color

	SelectForeground lipgloss.Color
	SelectBackground lipgloss.Color

	Border  lipgloss.Color
	Spinner lipgloss.Color
}

// Validate reports whether the theme can be registered.
func (t Theme) Validate() error {
	if t.Name == "" {
		return ErrThemeNameRequired
	}
	for _, c := range []lipgloss.Color{
		t.Primary, t.Success, t.Warning, t.Error, t.Info,
		t.Foreground, t.ForegroundMuted, t.Border,
	} {
		if c == "" {
			return ThemeError{Message: "theme " + t.Name + " is missing a required color"}
		}
	}
	return nil
}

// ThemeError represents errors related to theme operations.
type ThemeError struct {
	Message string
}

func (e ThemeError) Error() string {
	return e.Message
}

var (
	ErrThemeNameRequired = ThemeError{Message: "theme name is required"}
	ErrThemeNotFound     = ThemeError{Message: "theme not found"}
)
