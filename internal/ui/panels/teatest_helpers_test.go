package panels

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/healtop/internal/run"
)

// panelAdapter wraps panels with typed Update signatures into a tea.Model
// for teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

func wrapForm(f *Form) tea.Model {
	return panelAdapter{
		view: func() string { return f.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			var cmd tea.Cmd
			*f, cmd = f.Update(msg)
			return cmd
		},
	}
}

func wrapFixes(fx *Fixes) tea.Model {
	return panelAdapter{
		view: func() string { return fx.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			var cmd tea.Cmd
			*fx, cmd = fx.Update(msg)
			return cmd
		},
	}
}

func wrapConsole(c *Console) tea.Model {
	return panelAdapter{
		view: func() string { return c.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			var cmd tea.Cmd
			*c, cmd = c.Update(msg)
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// sampleState is a run midway through: classifying with two fixes recorded.
func sampleState() run.ViewState {
	return run.ViewState{
		Generation: 1,
		Status:     run.StatusRunning,
		Meta: run.Metadata{
			RepoURL:    "https://github.com/acme/widgets",
			TeamName:   "Code Crew",
			LeaderName: "Ada",
			Elapsed:    "01:05",
		},
		Step: run.StepClassify,
		Fixes: []run.Fix{
			{File: "app.py", Line: 12, Type: "SYNTAX", CommitMsg: "[AI-AGENT] fix missing colon", Status: run.OutcomeFixed},
			{File: "src/utils.py", Line: 3, Type: "IMPORT", CommitMsg: "[AI-AGENT] remove unused import", Status: run.OutcomeFailed},
		},
		Score: run.Score{Base: 100, SpeedBonus: 10, EfficiencyPenalty: 2, Total: 108},
	}
}
