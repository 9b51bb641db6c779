package ui

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/healtop/internal/config"
	"github.com/justinpbarnett/healtop/internal/logbuf"
	"github.com/justinpbarnett/healtop/internal/run"
)

const waitDuration = 3 * time.Second

// fakeRunner plays a fixed run into the store synchronously.
type fakeRunner struct {
	store *run.Store

	mu      sync.Mutex
	inputs  []run.Input
	err     error
	lastErr error
	running bool
	stops   int
	script  func(gen run.Generation)
}

func (f *fakeRunner) Start(_ context.Context, in run.Input) error {
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	err, script := f.err, f.script
	f.mu.Unlock()
	if err != nil {
		return err
	}
	gen := f.store.Reset(in.Metadata())
	if script != nil {
		script(gen)
	}
	return nil
}

// Stop abandons the current run the way the controller does.
func (f *fakeRunner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.running = false
	if f.store.Fail(f.store.Generation()) {
		f.lastErr = errStopped
	}
}

var errStopped = errors.New("stopped by operator")

func (f *fakeRunner) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeRunner) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// passingScript reports one fix and a final score, then passes.
func passingScript(store *run.Store) func(run.Generation) {
	return func(gen run.Generation) {
		store.SetStep(gen, run.StepSandbox)
		store.AppendFix(gen, run.Fix{File: "app.py", Line: 12, Type: "SYNTAX", CommitMsg: "[AI-AGENT] fix missing colon", Status: run.OutcomeFixed})
		store.SetStep(gen, run.StepGit)
		store.ReplaceScore(gen, run.Score{Base: 100, SpeedBonus: 10, Total: 110})
		store.SetStatus(gen, run.StatusPassed)
	}
}

type testEnv struct {
	store   *run.Store
	runner  *fakeRunner
	console *logbuf.RingBuffer
	copied  []string
}

func newTestEnv(t testing.TB, mutate func(*config.Config), opts ...Option) (*testEnv, App) {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	env := &testEnv{store: run.NewStore(), console: logbuf.NewRingBuffer(50)}
	env.runner = &fakeRunner{store: env.store}
	opts = append([]Option{WithClipboard(func(s string) error {
		env.copied = append(env.copied, s)
		return nil
	})}, opts...)
	return env, NewApp(&cfg, env.store, env.runner, env.console, nil, opts...)
}

// appAdapter keeps the store listener but skips the tickers so teatest
// programs only see messages the test causes.
type appAdapter struct {
	app App
}

func (a *appAdapter) Init() tea.Cmd {
	return listenForChanges(a.app.store.Changes())
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

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
