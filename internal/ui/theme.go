package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used by the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	Text   string
	Muted  string
	Faint  string
	Accent string

	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style

	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Title  lipgloss.Style
	Status lipgloss.Style
	Prompt lipgloss.Style

	// Highlight overlays for match spans.
	SearchMatch  lipgloss.Style
	FilterMatch  lipgloss.Style
	CurrentMatch lipgloss.Style
}

// Styles builds the style set for the theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Title: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SearchMatch: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.Background)),
		FilterMatch: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Danger)).
			Foreground(lipgloss.Color(t.Background)),
		CurrentMatch: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Success)).
			Foreground(lipgloss.Color(t.Background)),
	}
}

// severityStyle maps a severity level name onto the theme's role
// styles, so cycling themes recolors classified records.
func severityStyle(name string, s Styles) (lipgloss.Style, bool) {
	switch name {
	case "Error":
		return s.DangerText, true
	case "Warning":
		return s.WarningText, true
	case "Info":
		return s.SuccessText, true
	case "Debug":
		return s.InfoText, true
	}
	return lipgloss.Style{}, false
}

var themes = []Theme{
	{
		Name:       "Dracula",
		Background: "#282A36",
		Surface:    "#343746",
		Text:       "#F8F8F2",
		Muted:      "#BFBFBF",
		Faint:      "#6272A4",
		Accent:     "#BD93F9",
		Success:    "#50FA7B",
		Warning:    "#F1FA8C",
		Danger:     "#FF5555",
		Info:       "#8BE9FD",
	},
	{
		Name:       "Nord",
		Background: "#2E3440",
		Surface:    "#3B4252",
		Text:       "#ECEFF4",
		Muted:      "#D8DEE9",
		Faint:      "#4C566A",
		Accent:     "#88C0D0",
		Success:    "#A3BE8C",
		Warning:    "#EBCB8B",
		Danger:     "#BF616A",
		Info:       "#81A1C1",
	},
	{
		Name:       "Gruvbox",
		Background: "#282828",
		Surface:    "#3C3836",
		Text:       "#EBDBB2",
		Muted:      "#BDAE93",
		Faint:      "#665C54",
		Accent:     "#D3869B",
		Success:    "#B8BB26",
		Warning:    "#FABD2F",
		Danger:     "#FB4934",
		Info:       "#83A598",
	},
}

// GetTheme returns the named theme, defaulting to the first entry.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, wrapping.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
