package run

import (
	"time"
)

// ID names one remote run. It is assigned by the agent and never reused.
type ID string

type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusRunning Status = "RUNNING"
	StatusPassed  Status = "PASSED"
	StatusFailed  Status = "FAILED"
)

// IsTerminal reports whether no further transitions can happen for the run.
func (s Status) IsTerminal() bool {
	return s == StatusPassed || s == StatusFailed
}

// ParseStatus accepts the literals the agent may emit on the status feed.
// IDLE is never emitted by the agent and is rejected.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusRunning, StatusPassed, StatusFailed:
		return Status(s), true
	}
	return "", false
}

// Step is the index of the current pipeline stage. Zero means no stage has
// started yet.
type Step int

const (
	StepNone Step = iota
	StepClone
	StepDiscover
	StepClassify
	StepSandbox
	StepGit
)

// NumSteps is the count of defined stages.
const NumSteps = int(StepGit)

var stepLabels = [...]string{
	StepClone:    "Clone Repository",
	StepDiscover: "Test Discovery Engine",
	StepClassify: "AI Minister Classification",
	StepSandbox:  "Sandbox Execution",
	StepGit:      "Git Operations",
}

func (s Step) Valid() bool {
	return s >= StepClone && s <= StepGit
}

func (s Step) Label() string {
	if !s.Valid() {
		return ""
	}
	return stepLabels[s]
}

type Outcome string

const (
	OutcomeFixed  Outcome = "FIXED"
	OutcomeFailed Outcome = "FAILED"
)

// Fix is one entry of the fix ledger.
type Fix struct {
	File      string  `json:"file"`
	Line      int     `json:"line"`
	Type      string  `json:"type"`
	CommitMsg string  `json:"commitMsg"`
	Status    Outcome `json:"status"`
}

// Score is replaced as a whole on every score event.
type Score struct {
	Base              int `json:"base"`
	SpeedBonus        int `json:"speedBonus"`
	EfficiencyPenalty int `json:"efficiencyPenalty"`
	Total             int `json:"total"`
}

// DefaultScore is the breakdown shown before the agent reports one.
func DefaultScore() Score {
	return Score{Base: 100, Total: 100}
}

// Input is what the operator submits to start a run.
type Input struct {
	RepoURL    string `json:"repoUrl" validate:"required,url"`
	TeamName   string `json:"teamName" validate:"required"`
	LeaderName string `json:"leaderName" validate:"required"`
}

// Metadata describes the run being tracked. Elapsed is the only field that
// changes after the run starts.
type Metadata struct {
	RepoURL    string
	TeamName   string
	LeaderName string
	Elapsed    string
	StartedAt  time.Time
}

// ViewState is the aggregate every display surface reads.
type ViewState struct {
	Generation Generation
	Status     Status
	Meta       Metadata
	Step       Step
	Fixes      []Fix
	Score      Score
}

// Clone returns a deep copy safe to hand to readers.
func (v ViewState) Clone() ViewState {
	out := v
	if v.Fixes != nil {
		out.Fixes = make([]Fix, len(v.Fixes))
		copy(out.Fixes, v.Fixes)
	}
	return out
}
