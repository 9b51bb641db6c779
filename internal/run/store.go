package run

import (
	"fmt"
	"sync"
	"time"
)

// Generation identifies one reset of the store. Mutations carry the
// generation they were issued for so that a previous run can never write into
// the current one.
type Generation uint64

// Store owns the single ViewState. All writes go through generation-checked
// methods; readers only ever see deep copies.
type Store struct {
	mu          sync.RWMutex
	state       ViewState
	subscribers []func()
	changeCh    chan struct{}
}

func NewStore() *Store {
	return &Store{
		state:    InitialState(),
		changeCh: make(chan struct{}, 1),
	}
}

// InitialState is the view before any run has been started.
func InitialState() ViewState {
	return ViewState{
		Status: StatusIdle,
		Score:  DefaultScore(),
		Meta:   Metadata{Elapsed: FormatElapsed(0)},
	}
}

// Reset discards everything from the previous run and enters RUNNING at the
// first stage. It returns the generation all mutations for the new run must
// carry.
func (s *Store) Reset(meta Metadata) Generation {
	s.mu.Lock()
	gen := s.state.Generation + 1
	meta.Elapsed = FormatElapsed(0)
	s.state = ViewState{
		Generation: gen,
		Status:     StatusRunning,
		Meta:       meta,
		Step:       StepClone,
		Fixes:      []Fix{},
		Score:      DefaultScore(),
	}
	s.mu.Unlock()
	s.notify()
	return gen
}

// Update applies fn under the write lock if gen is still current and the run
// has not reached a terminal status. It reports whether fn ran.
func (s *Store) Update(gen Generation, fn func(*ViewState)) bool {
	s.mu.Lock()
	ok := gen != 0 && gen == s.state.Generation && !s.state.Status.IsTerminal()
	if ok {
		fn(&s.state)
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return ok
}

func (s *Store) SetStatus(gen Generation, st Status) bool {
	return s.Update(gen, func(v *ViewState) { v.Status = st })
}

// Fail forces the run into FAILED regardless of its last non-terminal status.
func (s *Store) Fail(gen Generation) bool {
	return s.SetStatus(gen, StatusFailed)
}

func (s *Store) SetStep(gen Generation, step Step) bool {
	return s.Update(gen, func(v *ViewState) { v.Step = step })
}

func (s *Store) AppendFix(gen Generation, f Fix) bool {
	return s.Update(gen, func(v *ViewState) { v.Fixes = append(v.Fixes, f) })
}

func (s *Store) ReplaceScore(gen Generation, sc Score) bool {
	return s.Update(gen, func(v *ViewState) { v.Score = sc })
}

func (s *Store) SetElapsed(gen Generation, d time.Duration) bool {
	return s.Update(gen, func(v *ViewState) { v.Meta.Elapsed = FormatElapsed(d) })
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Generation() Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Generation
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Status
}

func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) Changes() <-chan struct{} {
	return s.changeCh
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}

	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}

// FormatElapsed renders d as MM:SS. Minutes keep growing past 59.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
