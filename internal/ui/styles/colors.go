package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/run"
)

// Semantic colors, AdaptiveColor{Light, Dark}
var (
	BorderFocused   lipgloss.TerminalColor
	BorderUnfocused lipgloss.TerminalColor
	TitleText       lipgloss.TerminalColor
	KeybindKey      lipgloss.TerminalColor
	KeybindLabel    lipgloss.TerminalColor
	TextPrimary     lipgloss.TerminalColor
	TextSecondary   lipgloss.TerminalColor
	TextDim         lipgloss.TerminalColor

	StatusRunning lipgloss.TerminalColor
	StatusSuccess lipgloss.TerminalColor
	StatusError   lipgloss.TerminalColor
	StatusWarning lipgloss.TerminalColor
	StatusPending lipgloss.TerminalColor

	SelectedRowBg lipgloss.TerminalColor

	ScoreGradientStart string
	ScoreGradientEnd   string

	bugTypeColors map[string]lipgloss.TerminalColor
)

func defaultColors() {
	BorderFocused = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusPending = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	SelectedRowBg = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#292e42"}

	ScoreGradientStart = "#7aa2f7"
	ScoreGradientEnd = "#9ece6a"

	bugTypeColors = map[string]lipgloss.TerminalColor{
		"LINTING":     lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"},
		"SYNTAX":      lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"},
		"LOGIC":       lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#bb9af7"},
		"TYPE_ERROR":  lipgloss.AdaptiveColor{Light: "#bc4c00", Dark: "#ff9e64"},
		"IMPORT":      lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"},
		"INDENTATION": lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#73daca"},
	}
}

// monoColors drops every foreground and background color. Bold and
// reverse attributes still carry emphasis.
func monoColors() {
	none := lipgloss.NoColor{}
	BorderFocused, BorderUnfocused, TitleText = none, none, none
	KeybindKey, KeybindLabel = none, none
	TextPrimary, TextSecondary, TextDim = none, none, none
	StatusRunning, StatusSuccess, StatusError, StatusWarning, StatusPending = none, none, none, none, none
	SelectedRowBg = none
	ScoreGradientStart, ScoreGradientEnd = "", ""
	bugTypeColors = map[string]lipgloss.TerminalColor{}
}

// StatusColor returns the color for a run status.
func StatusColor(s run.Status) lipgloss.TerminalColor {
	switch s {
	case run.StatusRunning:
		return StatusRunning
	case run.StatusPassed:
		return StatusSuccess
	case run.StatusFailed:
		return StatusError
	default:
		return StatusPending
	}
}

func StageColor(s run.StageState) lipgloss.TerminalColor {
	switch s {
	case run.StageCompleted:
		return StatusSuccess
	case run.StageActive:
		return StatusRunning
	case run.StageFailed:
		return StatusError
	default:
		return TextDim
	}
}

// BugTypeColor returns the palette entry for a bug class, or TextSecondary
// for classes outside the palette.
func BugTypeColor(bugType string) lipgloss.TerminalColor {
	if c, ok := bugTypeColors[bugType]; ok {
		return c
	}
	return TextSecondary
}

func OutcomeColor(o run.Outcome) lipgloss.TerminalColor {
	if o == run.OutcomeFixed {
		return StatusSuccess
	}
	return StatusError
}
