// Package controller drives one run at a time: it triggers the agent, owns
// the stream connection and is the only writer of run state while the run is
// live.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/justinpbarnett/healtop/internal/agent"
	"github.com/justinpbarnett/healtop/internal/event"
	"github.com/justinpbarnett/healtop/internal/logbuf"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/stream"
	"go.uber.org/zap"
)

// ErrStopped is the LastError of a run the operator abandoned.
var ErrStopped = errors.New("stopped by operator")

type Trigger interface {
	StartRun(ctx context.Context, in run.Input) (*agent.Started, error)
}

// Stream is a live event subscription. Frames is closed when the
// subscription ends; Err then reports why, or nil after Close.
type Stream interface {
	Frames() <-chan stream.Frame
	Done() <-chan struct{}
	Err() error
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context, id run.ID) (Stream, error)
}

// DialFunc adapts a function to Dialer.
type DialFunc func(ctx context.Context, id run.ID) (Stream, error)

func (f DialFunc) Dial(ctx context.Context, id run.ID) (Stream, error) { return f(ctx, id) }

// StreamDialer adapts a stream client to Dialer.
func StreamDialer(c *stream.Client) Dialer {
	return DialFunc(func(ctx context.Context, id run.ID) (Stream, error) {
		conn, err := c.Dial(ctx, id)
		if err != nil {
			return nil, err
		}
		return conn, nil
	})
}

type Controller struct {
	store   *run.Store
	trigger Trigger
	dialer  Dialer
	console *logbuf.RingBuffer
	log     *zap.Logger
	now     func() time.Time

	startMu sync.Mutex
	mu      sync.Mutex
	active  *session
	lastErr error
}

type Option func(*Controller)

func WithConsole(rb *logbuf.RingBuffer) Option { return func(c *Controller) { c.console = rb } }
func WithLogger(l *zap.Logger) Option          { return func(c *Controller) { c.log = l } }
func WithClock(now func() time.Time) Option    { return func(c *Controller) { c.now = now } }

func New(store *run.Store, trigger Trigger, dialer Dialer, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		trigger: trigger,
		dialer:  dialer,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// session is one run's connection and drain goroutine.
type session struct {
	gen       run.Generation
	id        run.ID
	conn      Stream
	startedAt time.Time
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// shutdown closes the connection exactly once.
func (s *session) shutdown() {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.conn.Close()
	})
}

// Start begins a new run. Any previous connection is closed and drained
// before the store is reset. A trigger or dial failure leaves the run FAILED
// and is returned.
func (c *Controller) Start(ctx context.Context, in run.Input) error {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", agent.ErrInvalidInput, err)
	}

	c.startMu.Lock()
	defer c.startMu.Unlock()

	c.Close()
	if c.console != nil {
		c.console.Reset()
	}

	meta := in.Metadata()
	startedAt := c.now()
	meta.StartedAt = startedAt
	gen := c.store.Reset(meta)
	c.setLastErr(nil)

	started, err := c.trigger.StartRun(ctx, in)
	if err != nil {
		c.fail(gen, startedAt, fmt.Errorf("trigger: %w", err))
		return err
	}

	log := c.log.With(zap.String("run_id", string(started.RunID)))
	conn, err := c.dialer.Dial(ctx, started.RunID)
	if err != nil {
		c.fail(gen, startedAt, fmt.Errorf("stream: %w", err))
		return err
	}

	sess := &session{
		gen:       gen,
		id:        started.RunID,
		conn:      conn,
		startedAt: startedAt,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	c.mu.Lock()
	c.active = sess
	c.mu.Unlock()

	log.Debug("stream open")
	go c.drain(sess, log)
	return nil
}

// Stop abandons the active run: it is marked FAILED with ErrStopped, then
// the connection is closed and drained. A run that already finished keeps its
// status.
func (c *Controller) Stop() {
	c.teardown(func(sess *session) {
		c.fail(sess.gen, sess.startedAt, ErrStopped)
	})
}

// Close tears down the active connection without touching run status. It is
// meant for program exit.
func (c *Controller) Close() {
	c.teardown(nil)
}

func (c *Controller) teardown(before func(*session)) {
	c.mu.Lock()
	sess := c.active
	c.active = nil
	c.mu.Unlock()

	if sess == nil {
		return
	}
	if before != nil {
		before(sess)
	}
	sess.shutdown()
	<-sess.done
}

// Wait blocks until the active run stops streaming or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	sess := c.active
	c.mu.Unlock()

	if sess == nil {
		return nil
	}
	select {
	case <-sess.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastError is the cause of the most recent FAILED transition that did not
// come from the agent itself.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Running reports whether a connection is currently being drained.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return false
	}
	select {
	case <-c.active.done:
		return false
	default:
		return true
	}
}

func (c *Controller) setLastErr(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *Controller) fail(gen run.Generation, startedAt time.Time, err error) {
	c.store.SetElapsed(gen, c.now().Sub(startedAt))
	if c.store.Fail(gen) {
		c.setLastErr(err)
		c.log.Warn("run failed", zap.Error(err))
	}
}

// drain applies frames one at a time until a terminal status, a transport
// error or Stop.
func (c *Controller) drain(sess *session, log *zap.Logger) {
	defer close(sess.done)
	d := event.NewDispatcher(c.store, c.console, log)

	for {
		select {
		case <-sess.stop:
			return
		default:
		}
		select {
		case <-sess.stop:
			return
		case f, ok := <-sess.conn.Frames():
			if !ok {
				select {
				case <-sess.stop:
					return
				default:
				}
				<-sess.conn.Done()
				err := sess.conn.Err()
				if err == nil {
					err = stream.ErrStreamEnded
				}
				c.fail(sess.gen, sess.startedAt, err)
				sess.shutdown()
				return
			}

			ev := d.Decode(f)
			if ev == nil {
				continue
			}
			if event.Terminal(ev) {
				c.store.SetElapsed(sess.gen, c.now().Sub(sess.startedAt))
				d.Apply(sess.gen, ev)
				sess.shutdown()
				log.Info("run finished", zap.String("status", string(ev.(event.Status).Value)))
				return
			}
			d.Apply(sess.gen, ev)
		}
	}
}
