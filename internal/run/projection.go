package run

import (
	"net/url"
	"strings"
)

// StageState is how one timeline stage should be drawn.
type StageState int

const (
	StagePending StageState = iota
	StageActive
	StageCompleted
	StageFailed
)

type Stage struct {
	Step  Step
	Label string
	State StageState
}

// Stages projects the view state onto the five timeline stages.
func Stages(v ViewState) []Stage {
	stages := make([]Stage, 0, NumSteps)
	for i := StepClone; i <= StepGit; i++ {
		st := StagePending
		switch {
		case v.Step > i || v.Status == StatusPassed:
			st = StageCompleted
		case v.Status == StatusFailed && v.Step == i:
			st = StageFailed
		case v.Step == i:
			st = StageActive
		}
		stages = append(stages, Stage{Step: i, Label: i.Label(), State: st})
	}
	return stages
}

// BranchName is the branch the agent pushes fixes to:
// TEAM_NAME_LEADER_NAME_AI_Fix.
func BranchName(team, leader string) string {
	team = strings.TrimSpace(team)
	leader = strings.TrimSpace(leader)
	if team == "" || leader == "" {
		return ""
	}
	clean := func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(s, " ", "_"))
	}
	return clean(team) + "_" + clean(leader) + "_AI_Fix"
}

// RepoSlug returns the URL path without its leading slash, e.g. "acme/widgets".
func RepoSlug(repoURL string) string {
	if repoURL == "" {
		return ""
	}
	u, err := url.Parse(repoURL)
	if err != nil {
		return repoURL
	}
	return strings.TrimSuffix(strings.TrimPrefix(u.Path, "/"), ".git")
}

// ScorePercent maps the total onto [0, 1] for progress bars.
func ScorePercent(s Score) float64 {
	p := float64(s.Total) / 100
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
