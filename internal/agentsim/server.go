// Package agentsim is a scripted stand-in for the remote repair agent. It
// serves the trigger and stream endpoints so the dashboard can be exercised
// without a real agent.
package agentsim

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justinpbarnett/healtop/internal/run"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	mu     sync.Mutex
	runs   map[string]run.Input
	script Script
	log    *zap.Logger
}

type Option func(*Server)

func WithScript(s Script) Option      { return func(srv *Server) { srv.script = s } }
func WithLogger(l *zap.Logger) Option { return func(srv *Server) { srv.log = l } }

func New(opts ...Option) *Server {
	s := &Server{
		runs:   make(map[string]run.Input),
		script: HealingScript,
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler serves POST /api/run-agent and GET /api/stream/{run_id}.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/run-agent", s.handleTrigger)
	mux.HandleFunc("GET /api/stream/{run_id}", s.handleStream)
	return mux
}

// Serve listens on addr until ctx is cancelled. Open streams are cut when
// ctx ends.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	g, gCtx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gCtx },
	}

	g.Go(func() error {
		s.log.Info("demo agent listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type triggerResponse struct {
	RunID  string `json:"run_id"`
	Branch string `json:"branch"`
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	var in run.Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.runs[id] = in
	s.mu.Unlock()

	s.log.Info("run accepted", zap.String("run_id", id), zap.String("repo", in.RepoURL))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(triggerResponse{ //nolint:errcheck
		RunID:  id,
		Branch: run.BranchName(in.TeamName, in.LeaderName),
	})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("run_id")
	s.mu.Lock()
	in, ok := s.runs[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "run id not found")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log := s.log.With(zap.String("run_id", id))
	for _, e := range s.script(in) {
		if e.Delay > 0 {
			t := time.NewTimer(e.Delay)
			select {
			case <-r.Context().Done():
				t.Stop()
				log.Debug("subscriber went away")
				return
			case <-t.C:
			}
		}
		if err := sse.WriteEvent(e.Event, e.Data); err != nil {
			log.Debug("write failed", zap.Error(err))
			return
		}
	}
	log.Info("script finished")
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
