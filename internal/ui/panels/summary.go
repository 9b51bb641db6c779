package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/ui/border"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"github.com/justinpbarnett/healtop/internal/ui/text"
)

const awaitingInput = "Awaiting input..."

// Summary shows what is being repaired and how it is going.
type Summary struct {
	state  run.ViewState
	width  int
	height int
}

func NewSummary() Summary {
	return Summary{state: run.InitialState()}
}

func (s Summary) Update(msg tea.Msg) (Summary, tea.Cmd) {
	if msg, ok := msg.(StoreUpdatedMsg); ok {
		s.state = msg.State
	}
	return s, nil
}

func countOutcomes(fixes []run.Fix) (fixed, failed int) {
	for _, f := range fixes {
		if f.Status == run.OutcomeFixed {
			fixed++
		} else {
			failed++
		}
	}
	return fixed, failed
}

func (s Summary) View() string {
	innerW := s.width - 2
	valueW := max(innerW-labelWidth-2, 1)
	meta := s.state.Meta

	kv := func(label, value string) string {
		return " " + styles.TextSecondaryStyle.Render(text.PadRight(label, labelWidth)) + " " + value
	}
	plain := func(v string) string {
		return styles.TextPrimaryStyle.Render(text.Truncate(v, valueW))
	}

	status := lipgloss.NewStyle().Foreground(styles.StatusColor(s.state.Status)).Bold(true).
		Render(string(s.state.Status))

	repo := styles.TextDimStyle.Render(awaitingInput)
	if slug := run.RepoSlug(meta.RepoURL); slug != "" {
		repo = plain(text.TruncateLeft(slug, valueW))
	}

	branch := styles.TextDimStyle.Render("—")
	if b := run.BranchName(meta.TeamName, meta.LeaderName); b != "" {
		branch = lipgloss.NewStyle().Foreground(styles.KeybindKey).Render(text.Truncate(b, valueW))
	}

	fixed, failed := countOutcomes(s.state.Fixes)
	fixes := lipgloss.NewStyle().Foreground(styles.StatusSuccess).Render(fmt.Sprintf("%d fixed", fixed)) +
		styles.TextDimStyle.Render(" / ") +
		lipgloss.NewStyle().Foreground(styles.StatusError).Render(fmt.Sprintf("%d failed", failed))

	rows := []string{
		kv("Status", status),
		kv("Repo", repo),
		kv("Team", plain(text.Placeholder(meta.TeamName, "—"))),
		kv("Leader", plain(text.Placeholder(meta.LeaderName, "—"))),
		kv("Branch", branch),
		kv("Elapsed", plain(meta.Elapsed)),
		kv("Fixes", fixes),
	}

	p := border.Panel{Title: "Summary", Width: s.width, Height: s.height}
	if s.state.Status.IsTerminal() {
		p.Accent = styles.StatusColor(s.state.Status)
	}
	return p.Render(strings.Join(rows, "\n"))
}

func (s *Summary) SetSize(w, h int) {
	s.width = w
	s.height = h
}
