package run

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testMeta() Metadata {
	return Metadata{
		RepoURL:    "https://github.com/acme/widgets",
		TeamName:   "RIFT",
		LeaderName: "Alice",
	}
}

func TestNewStoreIsIdle(t *testing.T) {
	s := NewStore()
	v := s.Snapshot()

	if v.Status != StatusIdle {
		t.Errorf("expected IDLE, got %s", v.Status)
	}
	if v.Step != StepNone {
		t.Errorf("expected step 0, got %d", v.Step)
	}
	if v.Score != DefaultScore() {
		t.Errorf("expected default score, got %+v", v.Score)
	}
	if v.Meta.Elapsed != "00:00" {
		t.Errorf("expected elapsed 00:00, got %q", v.Meta.Elapsed)
	}
}

func TestStoreResetDiscardsPreviousRun(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())
	s.AppendFix(gen, Fix{File: "a.py", Line: 1, Type: "SYNTAX", Status: OutcomeFixed})
	s.ReplaceScore(gen, Score{Base: 100, SpeedBonus: 10, EfficiencyPenalty: -5, Total: 105})
	s.SetStep(gen, StepSandbox)
	s.SetElapsed(gen, 90*time.Second)
	s.SetStatus(gen, StatusPassed)

	meta := Metadata{RepoURL: "https://github.com/acme/gadgets", TeamName: "B", LeaderName: "Bob"}
	gen2 := s.Reset(meta)

	if gen2 == gen {
		t.Fatal("expected a new generation after reset")
	}
	want := ViewState{
		Generation: gen2,
		Status:     StatusRunning,
		Meta: Metadata{
			RepoURL:    "https://github.com/acme/gadgets",
			TeamName:   "B",
			LeaderName: "Bob",
			Elapsed:    "00:00",
		},
		Step:  StepClone,
		Fixes: []Fix{},
		Score: Score{Base: 100, Total: 100},
	}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("state after reset mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreRejectsStaleGeneration(t *testing.T) {
	s := NewStore()
	old := s.Reset(testMeta())
	cur := s.Reset(testMeta())

	if s.AppendFix(old, Fix{File: "stale.py"}) {
		t.Error("expected stale append to be refused")
	}
	if s.SetStatus(old, StatusFailed) {
		t.Error("expected stale status to be refused")
	}
	v := s.Snapshot()
	if len(v.Fixes) != 0 || v.Status != StatusRunning {
		t.Errorf("stale mutation leaked: %+v", v)
	}
	if !s.AppendFix(cur, Fix{File: "ok.py"}) {
		t.Error("expected current append to apply")
	}
}

func TestStoreUpdateKeepsGeneration(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())
	for i := 0; i < 3; i++ {
		if !s.SetStep(gen, StepDiscover) {
			t.Fatalf("update %d refused", i)
		}
	}
	if got := s.Generation(); got != gen {
		t.Errorf("generation moved from %d to %d", gen, got)
	}
}

func TestStoreRejectsZeroGeneration(t *testing.T) {
	s := NewStore()
	if s.SetStatus(0, StatusRunning) {
		t.Error("expected mutation before any reset to be refused")
	}
}

func TestStoreTerminalStatusFreezesState(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())
	s.SetStatus(gen, StatusPassed)

	if s.SetStep(gen, StepGit) {
		t.Error("expected step after terminal status to be refused")
	}
	if s.AppendFix(gen, Fix{File: "late.py"}) {
		t.Error("expected fix after terminal status to be refused")
	}
	if s.ReplaceScore(gen, Score{Total: 1}) {
		t.Error("expected score after terminal status to be refused")
	}
	if s.Fail(gen) {
		t.Error("expected FAILED after PASSED to be refused")
	}
	v := s.Snapshot()
	if v.Status != StatusPassed || v.Step != StepClone || len(v.Fixes) != 0 {
		t.Errorf("terminal state was altered: %+v", v)
	}
}

func TestStoreFixLedgerKeepsArrivalOrder(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())
	files := []string{"z.py", "a.py", "m.py"}
	for i, f := range files {
		s.AppendFix(gen, Fix{File: f, Line: 10 - i})
	}

	v := s.Snapshot()
	if len(v.Fixes) != len(files) {
		t.Fatalf("expected %d fixes, got %d", len(files), len(v.Fixes))
	}
	for i, f := range files {
		if v.Fixes[i].File != f {
			t.Errorf("fix %d: expected %s, got %s", i, f, v.Fixes[i].File)
		}
	}
}

func TestStoreScoreReplacedWholesale(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())
	s.ReplaceScore(gen, Score{Base: 100, SpeedBonus: 10, EfficiencyPenalty: -5, Total: 105})
	s.ReplaceScore(gen, Score{Base: 80, Total: 80})

	got := s.Snapshot().Score
	want := Score{Base: 80, Total: 80}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())
	s.AppendFix(gen, Fix{File: "a.py"})

	v := s.Snapshot()
	v.Fixes[0].File = "mutated.py"
	v.Fixes = append(v.Fixes, Fix{File: "extra.py"})

	v2 := s.Snapshot()
	if len(v2.Fixes) != 1 || v2.Fixes[0].File != "a.py" {
		t.Errorf("Snapshot did not return a copy: %+v", v2.Fixes)
	}
}

func TestStoreSetElapsed(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())
	s.SetElapsed(gen, 2*time.Minute+5*time.Second)

	if got := s.Snapshot().Meta.Elapsed; got != "02:05" {
		t.Errorf("expected 02:05, got %q", got)
	}
}

func TestStoreChangesCoalesce(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())
	s.SetStep(gen, StepDiscover)
	s.SetStep(gen, StepClassify)

	select {
	case <-s.Changes():
	default:
		t.Fatal("expected a pending change notification")
	}
	select {
	case <-s.Changes():
		t.Fatal("expected notifications to coalesce")
	default:
	}
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()
	calls := 0
	s.Subscribe(func() { calls++ })

	gen := s.Reset(testMeta())
	s.SetStep(gen, StepDiscover)
	s.SetStep(Generation(99), StepGit)

	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}
}

func TestStoreConcurrentReadersSeeWholeMutations(t *testing.T) {
	s := NewStore()
	gen := s.Reset(testMeta())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.ReplaceScore(gen, Score{Base: i, SpeedBonus: i, EfficiencyPenalty: -i, Total: i})
			s.AppendFix(gen, Fix{File: fmt.Sprintf("f%d.py", i), Line: i})
		}
	}()

	for i := 0; i < 200; i++ {
		v := s.Snapshot()
		sc := v.Score
		if sc.Base != 100 && (sc.Base != sc.SpeedBonus || sc.Total != sc.Base) {
			t.Fatalf("observed partial score %+v", sc)
		}
		for j, f := range v.Fixes {
			if f.Line != j {
				t.Fatalf("fix %d out of order: %+v", j, f)
			}
		}
	}
	wg.Wait()
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{125 * time.Minute, "125:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
