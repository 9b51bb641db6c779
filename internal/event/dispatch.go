package event

import (
	"github.com/justinpbarnett/healtop/internal/logbuf"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/stream"
	"go.uber.org/zap"
)

// Dispatcher is the only writer of run state while a run is live. Callers
// must invoke it sequentially.
type Dispatcher struct {
	store   *run.Store
	console *logbuf.RingBuffer
	log     *zap.Logger
}

// NewDispatcher wires a dispatcher to store. console and log may be nil.
func NewDispatcher(store *run.Store, console *logbuf.RingBuffer, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{store: store, console: console, log: log}
}

// Decode is the package Decode with malformed frames logged and turned
// into nil.
func (d *Dispatcher) Decode(f stream.Frame) Event {
	ev, err := Decode(f)
	if err != nil {
		d.log.Warn("dropping event", zap.String("event", f.Event), zap.Error(err))
		return nil
	}
	return ev
}

// Dispatch decodes f and applies it for gen. The returned event is nil when
// the frame was dropped.
func (d *Dispatcher) Dispatch(gen run.Generation, f stream.Frame) Event {
	ev := d.Decode(f)
	if ev != nil {
		d.Apply(gen, ev)
	}
	return ev
}

// Apply folds ev into the store. It reports whether the view state changed.
func (d *Dispatcher) Apply(gen run.Generation, ev Event) bool {
	var applied bool
	switch e := ev.(type) {
	case Status:
		applied = d.store.SetStatus(gen, e.Value)
	case Step:
		applied = d.store.SetStep(gen, e.Value)
	case Fix:
		applied = d.store.AppendFix(gen, e.Fix)
	case Score:
		applied = d.store.ReplaceScore(gen, e.Score)
	case Log:
		if d.console != nil {
			d.console.Append(e.Text)
		}
		d.log.Info("agent log", zap.String("text", e.Text))
		return false
	case Unknown:
		d.log.Debug("ignoring unknown event", zap.String("event", e.Name))
		return false
	default:
		return false
	}
	if !applied {
		d.log.Debug("event ignored for closed or stale run", zap.String("event", string(ev.Kind())))
	}
	return applied
}
