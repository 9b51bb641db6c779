package agentsim

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/justinpbarnett/healtop/internal/run"
)

// Emission is one scripted event and the pause before it is sent.
type Emission struct {
	Event string
	Data  string
	Delay time.Duration
}

// Script produces the events streamed for one run.
type Script func(in run.Input) []Emission

func status(s run.Status) Emission { return Emission{Event: "status", Data: string(s)} }
func step(s run.Step) Emission     { return Emission{Event: "step", Data: fmt.Sprint(int(s))} }
func logLine(format string, args ...any) Emission {
	return Emission{Event: "log", Data: fmt.Sprintf(format, args...)}
}

func jsonEmission(event string, v any) Emission {
	data, _ := json.Marshal(v)
	return Emission{Event: event, Data: string(data)}
}

// HealingScript follows the agent's happy path: clone, discover a failing
// test, classify and repair one bug, push the branch and score the run.
func HealingScript(in run.Input) []Emission {
	branch := run.BranchName(in.TeamName, in.LeaderName)
	return []Emission{
		status(run.StatusRunning),
		step(run.StepClone),
		logLine("Cloning %s", in.RepoURL),
		step(run.StepDiscover),
		logLine("Booting sandbox to run initial tests..."),
		logLine("Failures detected, capturing logs"),
		step(run.StepClassify),
		logLine("Bug classified: SYNTAX"),
		logLine("Pinpointed to app.py (line 12)"),
		step(run.StepSandbox),
		logLine("Forging new code fix..."),
		jsonEmission("fix", map[string]any{
			"file":      "app.py",
			"line":      12,
			"type":      "SYNTAX",
			"commitMsg": "[AI-AGENT] fix missing colon",
			"status":    "SUCCESS",
		}),
		step(run.StepGit),
		logLine("Pushed branch %s", branch),
		jsonEmission("score", run.Score{Base: 100, SpeedBonus: 10, EfficiencyPenalty: 0, Total: 110}),
		status(run.StatusPassed),
	}
}

// CleanScript is a run whose tests already pass.
func CleanScript(in run.Input) []Emission {
	return []Emission{
		status(run.StatusRunning),
		step(run.StepClone),
		logLine("Cloning %s", in.RepoURL),
		step(run.StepDiscover),
		logLine("All tests passed, no bugs found."),
		status(run.StatusPassed),
	}
}

// CloneFailureScript fails at the first stage.
func CloneFailureScript(in run.Input) []Emission {
	return []Emission{
		status(run.StatusRunning),
		step(run.StepClone),
		logLine("Failed to clone %s", in.RepoURL),
		status(run.StatusFailed),
	}
}

// Fixed replays a fixed event list regardless of input.
func Fixed(events ...Emission) Script {
	return func(run.Input) []Emission { return events }
}

// Paced returns script with d inserted before every event.
func Paced(script Script, d time.Duration) Script {
	return func(in run.Input) []Emission {
		events := script(in)
		out := make([]Emission, len(events))
		for i, e := range events {
			if e.Delay == 0 {
				e.Delay = d
			}
			out[i] = e
		}
		return out
	}
}
