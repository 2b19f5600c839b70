package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeName is used when no theme, or an unknown one, is configured.
const DefaultThemeName = "dark"

var themeRegistry = map[string]Theme{}

func init() {
	for _, t := range []Theme{darkTheme, gruvboxTheme, nordTheme, draculaTheme, catppuccinTheme, githubTheme} {
		if err := t.Validate(); err != nil {
			panic(err)
		}
		themeRegistry[t.Name] = t
	}
}

// GetThemeByName returns a registered theme, or ErrThemeNotFound.
func GetThemeByName(name string) (Theme, error) {
	theme, ok := themeRegistry[name]
	if !ok {
		return Theme{}, ErrThemeNotFound
	}
	return theme, nil
}

// GetThemeByNameWithFallback returns the named theme or the default one.
func GetThemeByNameWithFallback(name string) Theme {
	theme, err := GetThemeByName(name)
	if err != nil {
		return GetDefaultTheme()
	}
	return theme
}

func GetDefaultTheme() Theme {
	return themeRegistry[DefaultThemeName]
}

// ListAvailableThemes returns the registered theme names, sorted.
func ListAvailableThemes() []string {
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// palette builds a Theme from hex or ANSI codes in field order.
func palette(name string, c ...string) Theme {
	col := func(i int) lipgloss.Color { return lipgloss.Color(c[i]) }
	return Theme{
		Name:             name,
		Primary:          col(0),
		Secondary:        col(1),
		Accent:           col(2),
		Success:          col(3),
		Warning:          col(4),
		Error:            col(5),
		Info:             col(6),
		Background:       col(7),
		BackgroundAlt:    col(8),
		Foreground:       col(9),
		ForegroundMuted:  col(10),
		ForegroundBold:   col(11),
		SelectForeground: col(12),
		SelectBackground: col(13),
		Border:           col(14),
		Spinner:          col(15),
	}
}

// Order: primary, secondary, accent, success, warning, error, info, bg, bg alt,
// fg, fg muted, fg bold, select fg, select bg, border, spinner.
var (
	darkTheme       = palette("dark", "62", "39", "170", "42", "214", "196", "81", "235", "236", "252", "241", "255", "229", "57", "240", "205")
	gruvboxTheme    = palette("gruvbox", "#458588", "#689d6a", "#d3869b", "#b8bb26", "#fabd2f", "#fb4934", "#83a598", "#282828", "#1d2021", "#ebdbb2", "#928374", "#fbf1c7", "#fabd2f", "#504945", "#504945", "#d3869b")
	nordTheme       = palette("nord", "#81a1c1", "#88c0d0", "#b48ead", "#a3be8c", "#ebcb8b", "#bf616a", "#5e81ac", "#2e3440", "#3b4252", "#eceff4", "#4c566a", "#eceff4", "#eceff4", "#434c5e", "#4c566a", "#b48ead")
	draculaTheme    = palette("dracula", "#bd93f9", "#8be9fd", "#ff79c6", "#50fa7b", "#f1fa8c", "#ff5555", "#8be9fd", "#282a36", "#21222c", "#f8f8f2", "#6272a4", "#f8f8f2", "#f8f8f2", "#44475a", "#6272a4", "#ff79c6")
	catppuccinTheme = palette("catppuccin", "#89b4fa", "#94e2d5", "#cba6f7", "#a6e3a1", "#f9e2af", "#f38ba8", "#89dceb", "#1e1e2e", "#181825", "#cdd6f4", "#6c7086", "#cdd6f4", "#cdd6f4", "#45475a", "#585b70", "#f5c2e7")
	githubTheme     = palette("github", "#58a6ff", "#56d4dd", "#bc8cff", "#3fb950", "#d29922", "#f85149", "#58a6ff", "#0d1117", "#161b22", "#c9d1d9", "#8b949e", "#f0f6fc", "#f0f6fc", "#264f78", "#30363d", "#bc8cff")
)
