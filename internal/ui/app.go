package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/agent"
	"github.com/justinpbarnett/healtop/internal/config"
	"github.com/justinpbarnett/healtop/internal/logbuf"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/ui/clipboard"
	"github.com/justinpbarnett/healtop/internal/ui/layout"
	"github.com/justinpbarnett/healtop/internal/ui/panels"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"go.uber.org/zap"
)

const (
	focusForm = iota
	focusFixes
	focusConsole
)

const animInterval = 120 * time.Millisecond

// Runner starts and stops runs. *controller.Controller satisfies it.
type Runner interface {
	Start(ctx context.Context, in run.Input) error
	Stop()
	Running() bool
	LastError() error
}

type App struct {
	config      *config.Config
	store       *run.Store
	runner      Runner
	console     *logbuf.RingBuffer
	log         *zap.Logger
	copy        func(string) error
	now         func() time.Time
	ctx         context.Context
	width       int
	height      int
	layout      layout.Layout
	focused     int
	state       run.ViewState
	form        panels.Form
	timeline    panels.Timeline
	summary     panels.Summary
	score       panels.Score
	fixes       panels.Fixes
	consoleView panels.Console
	statusBar   panels.StatusBar
	helpOverlay *panels.HelpOverlay
	keys        KeyMap
	ready       bool
}

type Option func(*App)

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(string) error) Option { return func(a *App) { a.copy = fn } }
func WithClock(now func() time.Time) Option      { return func(a *App) { a.now = now } }
func WithContext(ctx context.Context) Option     { return func(a *App) { a.ctx = ctx } }

// WithInput prefills the form.
func WithInput(in run.Input) Option { return func(a *App) { a.form.SetValues(in) } }

// NewApp builds the dashboard. The theme must already be applied with
// styles.Apply since panels capture colors when constructed.
func NewApp(cfg *config.Config, store *run.Store, runner Runner, console *logbuf.RingBuffer, log *zap.Logger, opts ...Option) App {
	if log == nil {
		log = zap.NewNop()
	}
	a := App{
		config:      cfg,
		store:       store,
		runner:      runner,
		console:     console,
		log:         log,
		copy:        clipboard.Write,
		now:         time.Now,
		ctx:         context.Background(),
		state:       store.Snapshot(),
		form:        panels.NewForm(),
		timeline:    panels.NewTimeline(),
		summary:     panels.NewSummary(),
		score:       panels.NewScore(),
		fixes:       panels.NewFixes(),
		consoleView: panels.NewConsole(console),
		statusBar:   panels.NewStatusBar(cfg.Agent.BaseURL),
		keys:        DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&a)
	}
	a.broadcast(StoreUpdatedMsg{State: a.state})
	a.statusBar.SetState(a.state)
	a.updateFocusState()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		listenForChanges(a.store.Changes()),
		animTick(),
		elapsedTick(),
		textinput.Blink,
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height, a.config.UI.ConsoleEnabled())
		a.propagateSizes()
		return a, nil

	case storeChangedMsg:
		return a, tea.Batch(a.applySnapshot(a.store.Snapshot()), listenForChanges(a.store.Changes()))

	case SubmitRunMsg:
		return a, a.startRun(msg.Input)

	case RunStartedMsg:
		return a, a.handleRunStarted(msg.Err)

	case AnimTickMsg:
		a.statusBar.Tick()
		cmds := a.broadcast(msg)
		return a, tea.Batch(append(cmds, animTick())...)

	case elapsedTickMsg:
		if a.state.Status == run.StatusRunning && a.runner.Running() && !a.state.Meta.StartedAt.IsZero() {
			a.store.SetElapsed(a.state.Generation, a.now().Sub(a.state.Meta.StartedAt))
		}
		return a, elapsedTick()

	case YankMsg:
		return a, a.yank(msg.Text, msg.What)

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case panels.GTimerExpiredMsg:
		return a, tea.Batch(a.broadcast(msg)...)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// cursor blink and other component-internal messages
	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	if a.focused == focusForm {
		if key.Matches(msg, a.keys.LeaveForm) {
			a.focused = focusFixes
			return a, a.updateFocusState()
		}
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.helpOverlay = panels.NewHelpOverlay()
		return a, nil
	case key.Matches(msg, a.keys.FocusNext):
		a.focused = a.nextFocus(1)
		return a, a.updateFocusState()
	case key.Matches(msg, a.keys.FocusPrev):
		a.focused = a.nextFocus(-1)
		return a, a.updateFocusState()
	case key.Matches(msg, a.keys.FocusForm):
		a.focused = focusForm
		return a, a.updateFocusState()
	case key.Matches(msg, a.keys.YankBranch):
		branch := run.BranchName(a.state.Meta.TeamName, a.state.Meta.LeaderName)
		if branch == "" {
			return a, a.flash("No run to copy a branch from", panels.FlashWarning)
		}
		return a, a.yank(branch, "branch name")
	case key.Matches(msg, a.keys.YankLedger):
		if len(a.state.Fixes) == 0 {
			return a, a.flash("Fix ledger is empty", panels.FlashWarning)
		}
		return a, a.yank(run.Ledger(a.state.Fixes), "fix ledger")
	case key.Matches(msg, a.keys.Stop):
		if !a.runner.Running() {
			return a, nil
		}
		a.runner.Stop()
		return a, a.flash("Run stopped", panels.FlashInfo)
	}

	return a.routeKey(msg)
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focused {
	case focusFixes:
		a.fixes, cmd = a.fixes.Update(msg)
	case focusConsole:
		a.consoleView, cmd = a.consoleView.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	left := lipgloss.JoinVertical(lipgloss.Left, a.form.View(), a.summary.View(), a.score.View())
	rightParts := []string{a.timeline.View(), a.fixes.View()}
	if a.config.UI.ConsoleEnabled() {
		rightParts = append(rightParts, a.consoleView.View())
	}
	right := lipgloss.JoinVertical(lipgloss.Left, rightParts...)
	full := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		a.statusBar.View(),
	)

	if a.helpOverlay != nil {
		full = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, a.helpOverlay.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}
	return full
}

// applySnapshot fans v out to every panel and flashes on the transition
// into a terminal status.
func (a *App) applySnapshot(v run.ViewState) tea.Cmd {
	prev := a.state
	a.state = v
	a.statusBar.SetState(v)
	cmds := a.broadcast(StoreUpdatedMsg{State: v})

	// A fast run can reach its verdict before the app sees RUNNING, so a
	// new generation counts as a transition too.
	finished := v.Status.IsTerminal() && (v.Generation != prev.Generation || !prev.Status.IsTerminal())
	if finished {
		cmds = append(cmds, a.finishFlash(v))
	}
	return tea.Batch(cmds...)
}

func (a *App) finishFlash(v run.ViewState) tea.Cmd {
	if v.Status == run.StatusPassed {
		return a.flash(fmt.Sprintf("Run passed in %s with %d points", v.Meta.Elapsed, v.Score.Total), panels.FlashSuccess)
	}
	if err := a.runner.LastError(); err != nil {
		return a.flash("Run failed: "+err.Error(), panels.FlashError)
	}
	return a.flash("Run failed", panels.FlashError)
}

func (a *App) broadcast(msg tea.Msg) []tea.Cmd {
	var cmds [6]tea.Cmd
	a.form, cmds[0] = a.form.Update(msg)
	a.timeline, cmds[1] = a.timeline.Update(msg)
	a.summary, cmds[2] = a.summary.Update(msg)
	a.score, cmds[3] = a.score.Update(msg)
	a.fixes, cmds[4] = a.fixes.Update(msg)
	a.consoleView, cmds[5] = a.consoleView.Update(msg)
	return cmds[:]
}

func (a App) startRun(in run.Input) tea.Cmd {
	runner, ctx := a.runner, a.ctx
	return tea.Batch(
		a.flash("Starting run…", panels.FlashInfo),
		func() tea.Msg {
			return RunStartedMsg{Err: runner.Start(ctx, in)}
		},
	)
}

func (a *App) handleRunStarted(err error) tea.Cmd {
	switch {
	case err == nil:
		a.focused = focusFixes
		return tea.Batch(a.updateFocusState(), a.flash("Run started", panels.FlashSuccess))
	case errors.Is(err, agent.ErrInvalidInput):
		a.form.SetError(err.Error())
		return a.flash("Check the run inputs", panels.FlashWarning)
	default:
		a.log.Warn("run start failed", zap.Error(err))
		return a.flash("Run failed: "+err.Error(), panels.FlashError)
	}
}

func (a *App) yank(text, what string) tea.Cmd {
	if err := a.copy(text); err != nil {
		a.log.Warn("clipboard write failed", zap.Error(err))
		return a.flash("Copy failed: "+err.Error(), panels.FlashError)
	}
	if what == "" {
		what = "text"
	}
	return a.flash("Copied "+what, panels.FlashSuccess)
}

func (a *App) flash(msg string, level panels.FlashLevel) tea.Cmd {
	a.statusBar.SetFlashWithLevel(msg, level)
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

func (a App) nextFocus(dir int) int {
	order := []int{focusForm, focusFixes}
	if a.config.UI.ConsoleEnabled() {
		order = append(order, focusConsole)
	}
	for i, f := range order {
		if f == a.focused {
			return order[(i+dir+len(order))%len(order)]
		}
	}
	return focusFixes
}

func (a *App) propagateSizes() {
	l := a.layout
	a.form.SetSize(l.Form.Width, l.Form.Height)
	a.summary.SetSize(l.Summary.Width, l.Summary.Height)
	a.score.SetSize(l.Score.Width, l.Score.Height)
	a.timeline.SetSize(l.Timeline.Width, l.Timeline.Height)
	a.fixes.SetSize(l.Fixes.Width, l.Fixes.Height)
	a.consoleView.SetSize(l.Console.Width, l.Console.Height)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() tea.Cmd {
	a.fixes.SetFocused(a.focused == focusFixes)
	a.consoleView.SetFocused(a.focused == focusConsole)
	return a.form.SetFocused(a.focused == focusForm)
}

// State returns the last snapshot the app rendered.
func (a App) State() run.ViewState { return a.state }

func listenForChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

func animTick() tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg { return AnimTickMsg{} })
}

func elapsedTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return elapsedTickMsg{} })
}
