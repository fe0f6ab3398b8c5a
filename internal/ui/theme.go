package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/krishisahayak/sahayak/internal/store"
)

// Theme defines colors for the UI. The two themes mirror the light and dark
// modes of the web client.
type Theme struct {
	Name string

	Background string
	Surface    string

	Text  string
	Muted string

	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	Border        string
	SelectionBg   string
	SelectionText string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Title       lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
}

// SeverityStyle returns the text style for a notification severity.
func (s Styles) SeverityStyle(sev store.Severity) lipgloss.Style {
	switch sev {
	case store.SeveritySuccess:
		return s.SuccessText
	case store.SeverityWarning:
		return s.WarningText
	case store.SeverityError:
		return s.DangerText
	default:
		return s.InfoText
	}
}

// Theme definitions

var themes = map[string]Theme{
	store.ThemeLight: lightTheme(),
	store.ThemeDark:  darkTheme(),
}

var themeOrder = []string{store.ThemeLight, store.ThemeDark}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return lightTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func lightTheme() Theme {
	return Theme{
		Name: store.ThemeLight,

		Background: "#f8faf7",
		Surface:    "#e8efe5",

		Text:  "#1f2a1d",
		Muted: "#5f6f5a",

		Accent:  "#2e7d32",
		Success: "#1b5e20",
		Warning: "#b26a00",
		Danger:  "#b3261e",
		Info:    "#1565c0",

		Border:        "#c2d1bd",
		SelectionBg:   "#2e7d32",
		SelectionText: "#f8faf7",
	}
}

func darkTheme() Theme {
	return Theme{
		Name: store.ThemeDark,

		Background: "#121810",
		Surface:    "#1c241a",

		Text:  "#e2e8de",
		Muted: "#8a977f",

		Accent:  "#81c784",
		Success: "#66bb6a",
		Warning: "#ffb74d",
		Danger:  "#ef5350",
		Info:    "#64b5f6",

		Border:        "#32402d",
		SelectionBg:   "#81c784",
		SelectionText: "#121810",
	}
}
