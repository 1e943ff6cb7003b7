// Package styles holds the lipgloss palette shared by the picker and the
// human-readable tables.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // titles, prompt
	Accent  color.Color // selected item, fuzzy matches
	Success color.Color // clean, pruned
	Error   color.Color // errors, missing worktrees
	Muted   color.Color // paths, hints
	Warning color.Color // dirty, skipped
}

var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Warning: lipgloss.Color("214"), // orange
	}

	// DraculaTheme is based on the Dracula color scheme
	DraculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"),
		Accent:  lipgloss.Color("#ff79c6"),
		Success: lipgloss.Color("#50fa7b"),
		Error:   lipgloss.Color("#ff5555"),
		Muted:   lipgloss.Color("#6272a4"),
		Warning: lipgloss.Color("#ffb86c"),
	}

	// NordTheme is based on the Nord color scheme
	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"),
		Accent:  lipgloss.Color("#b48ead"),
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Muted:   lipgloss.Color("#4c566a"),
		Warning: lipgloss.Color("#ebcb8b"),
	}

	// MonoTheme renders without colors. Bold and underline are kept.
	MonoTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

var presets = map[string]Theme{
	"default": DefaultTheme,
	"mono":    MonoTheme,
	"dracula": DraculaTheme,
	"nord":    NordTheme,
}

// Styles derived from the current theme. Init rebuilds them.
var (
	TitleStyle     lipgloss.Style
	AccentStyle    lipgloss.Style
	SuccessStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	MutedStyle     lipgloss.Style
	WarningStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
)

var currentTheme = DefaultTheme

func init() {
	applyTheme(DefaultTheme)
}

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Preset returns the named theme.
func Preset(name string) (Theme, bool) {
	t, ok := presets[name]
	return t, ok
}

// Init activates the named theme. Unknown names fall back to the default
// theme and report false. Call it once after loading config, before
// rendering anything.
func Init(name string) bool {
	theme, ok := presets[name]
	if !ok {
		theme = DefaultTheme
	}
	currentTheme = theme
	applyTheme(theme)
	return ok || name == ""
}

func applyTheme(t Theme) {
	TitleStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Underline(true)
}
