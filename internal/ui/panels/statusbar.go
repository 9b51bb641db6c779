package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"github.com/justinpbarnett/healtop/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	state      run.ViewState
	agentURL   string
	spinner    spinner.Model
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	now        func() time.Time
}

func NewStatusBar(agentURL string) StatusBar {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.StatusRunning)
	return StatusBar{state: run.InitialState(), agentURL: agentURL, spinner: sp, now: time.Now}
}

// SetState records the latest snapshot.
func (s *StatusBar) SetState(v run.ViewState) { s.state = v }

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	appName := "healtop " + Version
	if s.state.Status == run.StatusRunning {
		appName = s.spinner.View() + " " + appName
	}
	left := " " + styles.TextSecondaryStyle.Render(appName) +
		sep + lipgloss.NewStyle().Foreground(styles.StatusColor(s.state.Status)).Bold(true).Render(string(s.state.Status)) +
		sep + styles.TextSecondaryStyle.Render(s.state.Meta.Elapsed) +
		sep + styles.TextSecondaryStyle.Render(text.Plural(len(s.state.Fixes), "fix", "fixes"))

	if s.flash != "" && s.now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		left += sep + lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" "+s.flash)
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "
	if s.agentURL != "" {
		right = styles.TextDimStyle.Render(s.agentURL) + sep + right
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// drop the agent URL before truncating the flash
		right = styles.TextSecondaryStyle.Render("?:help") + " "
		gap = s.width - lipgloss.Width(left) - lipgloss.Width(right)
	}
	if gap < 1 {
		left = text.Truncate(left, max(s.width-lipgloss.Width(right)-1, 0))
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = s.now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

// Flash returns the current flash text, empty once expired.
func (s StatusBar) Flash() string {
	if s.flash == "" || !s.now().Before(s.flashUntil) {
		return ""
	}
	return s.flash
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

// Tick advances the spinner frame.
func (s *StatusBar) Tick() {
	s.spinner, _ = s.spinner.Update(s.spinner.Tick())
}
