package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ColorblindFriendlyTheme defines a colorblind-friendly color scheme
// based on the Okabe-Ito palette
type ColorblindFriendlyTheme struct {
	Blue      lipgloss.Color
	Yellow    lipgloss.Color
	White     lipgloss.Color
	DarkBlue  lipgloss.Color
	LightBlue lipgloss.Color
	Orange    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Default lipgloss.Color

	Title      lipgloss.Style
	Breadcrumb lipgloss.Style
	Prompt     lipgloss.Style
	Text       lipgloss.Style
	Bold       lipgloss.Style
	Faint      lipgloss.Style

	SelectedItem   lipgloss.Style
	UnselectedItem lipgloss.Style
	ItemSubtitle   lipgloss.Style
	DrillMarker    lipgloss.Style
	Notification   lipgloss.Style
	ErrorText      lipgloss.Style
}

// NewTheme creates a new colorblind-friendly theme
func NewTheme() *ColorblindFriendlyTheme {
	t := &ColorblindFriendlyTheme{
		Blue:      "#0072B2",
		Yellow:    "#E69F00",
		White:     "#FFFFFF",
		DarkBlue:  "#004C99",
		LightBlue: "#56B4E9",
		Orange:    "#D55E00",

		Success: "#009E73",
		Warning: "#E69F00",
		Error:   "#D55E00",
		Default: "#999999",
	}

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Blue).
		MarginBottom(1)

	t.Breadcrumb = lipgloss.NewStyle().
		Foreground(t.DarkBlue)

	t.Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.LightBlue)

	t.Text = lipgloss.NewStyle()

	t.Bold = lipgloss.NewStyle().
		Bold(true)

	t.Faint = lipgloss.NewStyle().
		Faint(true).
		Foreground(t.Default)

	t.SelectedItem = lipgloss.NewStyle().
		Bold(true).
		Background(t.LightBlue).
		Foreground(t.White).
		Padding(0, 1)

	t.UnselectedItem = lipgloss.NewStyle().
		Padding(0, 1)

	t.ItemSubtitle = lipgloss.NewStyle().
		Foreground(t.Default)

	t.DrillMarker = lipgloss.NewStyle().
		Foreground(t.Yellow)

	t.Notification = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(t.Error)

	return t
}
