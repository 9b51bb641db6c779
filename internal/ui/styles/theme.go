package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   lipgloss.Style
	TextSecondaryStyle lipgloss.Style
	TextDimStyle       lipgloss.Style
	TitleStyle         lipgloss.Style
	SelectedRowStyle   lipgloss.Style
	ErrorStyle         lipgloss.Style
	SuccessStyle       lipgloss.Style
)

var current = "default"

func init() {
	Apply("default")
}

// Apply switches the palette. Unknown names fall back to "default".
func Apply(theme string) {
	switch theme {
	case "mono":
		monoColors()
		current = "mono"
	default:
		defaultColors()
		current = "default"
	}
	buildStyles()
}

// Current is the name of the active theme.
func Current() string { return current }

func buildStyles() {
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	SelectedRowStyle = lipgloss.NewStyle().Background(SelectedRowBg)
	if current == "mono" {
		SelectedRowStyle = lipgloss.NewStyle().Reverse(true)
	}
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusError).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccess).Bold(true)
}
