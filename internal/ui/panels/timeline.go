package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/ui/border"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"github.com/justinpbarnett/healtop/internal/ui/text"
)

// Timeline draws the five pipeline stages.
type Timeline struct {
	state   run.ViewState
	spinner spinner.Model
	width   int
	height  int
}

func NewTimeline() Timeline {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return Timeline{state: run.InitialState(), spinner: sp}
}

func (t Timeline) Update(msg tea.Msg) (Timeline, tea.Cmd) {
	switch msg := msg.(type) {
	case StoreUpdatedMsg:
		t.state = msg.State
	case AnimTickMsg:
		t.spinner, _ = t.spinner.Update(t.spinner.Tick())
	}
	return t, nil
}

func stageIcon(s run.StageState) string {
	switch s {
	case run.StageCompleted:
		return "✓"
	case run.StageActive:
		return "●"
	case run.StageFailed:
		return "✗"
	default:
		return "○"
	}
}

func (t Timeline) View() string {
	innerW := t.width - 2
	var rows []string
	for _, st := range run.Stages(t.state) {
		color := styles.StageColor(st.State)
		icon := stageIcon(st.State)
		if st.State == run.StageActive && t.state.Status == run.StatusRunning {
			icon = t.spinner.View()
		}
		iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
		labelStyle := lipgloss.NewStyle().Foreground(color)
		if st.State == run.StagePending {
			labelStyle = styles.TextDimStyle
		}
		line := fmt.Sprintf(" %s %s %s",
			iconStyle.Render(icon),
			styles.TextSecondaryStyle.Render(fmt.Sprintf("%d.", st.Step)),
			labelStyle.Render(st.Label),
		)
		rows = append(rows, text.Truncate(line, innerW))
	}

	badge := ""
	if t.state.Step.Valid() {
		badge = styles.TextSecondaryStyle.Render(fmt.Sprintf("%d/%d", t.state.Step, run.NumSteps))
	}
	return border.Panel{
		Title:  "Timeline",
		Badge:  badge,
		Width:  t.width,
		Height: t.height,
	}.Render(strings.Join(rows, "\n"))
}

func (t *Timeline) SetSize(w, h int) {
	t.width = w
	t.height = h
}
