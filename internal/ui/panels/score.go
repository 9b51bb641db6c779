package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/ui/border"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"github.com/justinpbarnett/healtop/internal/ui/text"
)

// Score renders the breakdown and a bar for the total.
type Score struct {
	score  run.Score
	bar    progress.Model
	width  int
	height int
}

func NewScore() Score {
	return Score{score: run.DefaultScore(), bar: newScoreBar()}
}

func newScoreBar() progress.Model {
	if styles.ScoreGradientStart == "" {
		return progress.New(progress.WithoutPercentage(), progress.WithSolidFill(""))
	}
	return progress.New(
		progress.WithoutPercentage(),
		progress.WithGradient(styles.ScoreGradientStart, styles.ScoreGradientEnd),
	)
}

func (s Score) Update(msg tea.Msg) (Score, tea.Cmd) {
	if msg, ok := msg.(StoreUpdatedMsg); ok {
		s.score = msg.State.Score
	}
	return s, nil
}

func (s Score) View() string {
	innerW := s.width - 2
	num := func(label string, v string, color lipgloss.TerminalColor) string {
		return " " + styles.TextSecondaryStyle.Render(text.PadRight(label, 12)) +
			lipgloss.NewStyle().Foreground(color).Render(v)
	}

	sc := s.score
	rows := []string{
		num("Base", fmt.Sprint(sc.Base), styles.TextPrimary),
		num("Speed", text.Signed(sc.SpeedBonus), styles.StatusSuccess),
		num("Efficiency", text.Penalty(sc.EfficiencyPenalty), styles.StatusError),
	}

	bar := s.bar
	bar.Width = max(innerW-2, 1)
	rows = append(rows, " "+bar.ViewAs(run.ScorePercent(sc)))

	badge := styles.TitleStyle.Render(fmt.Sprintf("%d pts", sc.Total))
	return border.Panel{
		Title:  "Score",
		Badge:  badge,
		Width:  s.width,
		Height: s.height,
	}.Render(strings.Join(rows, "\n"))
}

func (s *Score) SetSize(w, h int) {
	s.width = w
	s.height = h
}
