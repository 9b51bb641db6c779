// Package event turns raw stream frames into typed run events and folds them
// into the run store.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/stream"
)

type Kind string

const (
	KindStatus Kind = "status"
	KindStep   Kind = "step"
	KindLog    Kind = "log"
	KindFix    Kind = "fix"
	KindScore  Kind = "score"
)

// ErrMalformed wraps every payload decode failure.
var ErrMalformed = errors.New("malformed payload")

// Event is one of Status, Step, Log, Fix, Score or Unknown.
type Event interface {
	Kind() Kind
	isEvent()
}

type Status struct{ Value run.Status }

type Step struct{ Value run.Step }

type Log struct{ Text string }

type Fix struct{ Fix run.Fix }

type Score struct{ Score run.Score }

// Unknown carries an event kind this client does not understand.
type Unknown struct {
	Name string
	Data string
}

func (Status) Kind() Kind    { return KindStatus }
func (Step) Kind() Kind      { return KindStep }
func (Log) Kind() Kind       { return KindLog }
func (Fix) Kind() Kind       { return KindFix }
func (Score) Kind() Kind     { return KindScore }
func (u Unknown) Kind() Kind { return Kind(u.Name) }

func (Status) isEvent()  {}
func (Step) isEvent()    {}
func (Log) isEvent()     {}
func (Fix) isEvent()     {}
func (Score) isEvent()   {}
func (Unknown) isEvent() {}

// Terminal reports whether ev ends the run.
func Terminal(ev Event) bool {
	s, ok := ev.(Status)
	return ok && s.Value.IsTerminal()
}

// Decode classifies f by its event name and parses the payload. Unknown
// names decode to Unknown without error.
func Decode(f stream.Frame) (Event, error) {
	switch Kind(f.Event) {
	case KindStatus:
		st, ok := run.ParseStatus(strings.TrimSpace(f.Data))
		if !ok {
			return nil, fmt.Errorf("status %q: %w", f.Data, ErrMalformed)
		}
		return Status{Value: st}, nil

	case KindStep:
		n, err := strconv.Atoi(strings.TrimSpace(f.Data))
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", f.Data, ErrMalformed)
		}
		step := run.Step(n)
		if !step.Valid() {
			return nil, fmt.Errorf("step %d out of range: %w", n, ErrMalformed)
		}
		return Step{Value: step}, nil

	case KindLog:
		return Log{Text: f.Data}, nil

	case KindFix:
		fx, err := decodeFix(f.Data)
		if err != nil {
			return nil, err
		}
		return Fix{Fix: fx}, nil

	case KindScore:
		sc, err := decodeScore(f.Data)
		if err != nil {
			return nil, err
		}
		return Score{Score: sc}, nil
	}
	return Unknown{Name: f.Event, Data: f.Data}, nil
}

type fixPayload struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Type      string `json:"type"`
	CommitMsg string `json:"commitMsg"`
	Status    string `json:"status"`
}

func decodeFix(data string) (run.Fix, error) {
	var p fixPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return run.Fix{}, fmt.Errorf("fix: %v: %w", err, ErrMalformed)
	}
	if strings.TrimSpace(p.File) == "" {
		return run.Fix{}, fmt.Errorf("fix: missing file: %w", ErrMalformed)
	}
	if p.Line < 0 {
		return run.Fix{}, fmt.Errorf("fix: negative line %d: %w", p.Line, ErrMalformed)
	}

	var outcome run.Outcome
	switch strings.ToUpper(strings.TrimSpace(p.Status)) {
	case "FIXED", "SUCCESS":
		outcome = run.OutcomeFixed
	case "FAILED":
		outcome = run.OutcomeFailed
	default:
		return run.Fix{}, fmt.Errorf("fix: outcome %q: %w", p.Status, ErrMalformed)
	}

	return run.Fix{
		File:      p.File,
		Line:      p.Line,
		Type:      strings.ToUpper(strings.TrimSpace(p.Type)),
		CommitMsg: p.CommitMsg,
		Status:    outcome,
	}, nil
}

// scorePayload uses pointers so a missing field is distinguishable from zero.
type scorePayload struct {
	Base              *int `json:"base"`
	SpeedBonus        *int `json:"speedBonus"`
	EfficiencyPenalty *int `json:"efficiencyPenalty"`
	Total             *int `json:"total"`
}

func decodeScore(data string) (run.Score, error) {
	var p scorePayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return run.Score{}, fmt.Errorf("score: %v: %w", err, ErrMalformed)
	}
	if p.Base == nil || p.SpeedBonus == nil || p.EfficiencyPenalty == nil || p.Total == nil {
		return run.Score{}, fmt.Errorf("score: incomplete breakdown: %w", ErrMalformed)
	}
	return run.Score{
		Base:              *p.Base,
		SpeedBonus:        *p.SpeedBonus,
		EfficiencyPenalty: *p.EfficiencyPenalty,
		Total:             *p.Total,
	}, nil
}
