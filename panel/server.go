// Package panel owns the daemon's server surface: the chat panel and host
// shim websockets plus the operational HTTP endpoints.
package panel

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linkdock/linkdock/finder"
	"github.com/linkdock/linkdock/intent"
	"github.com/linkdock/linkdock/internal/health"
	"github.com/linkdock/linkdock/logger"
	"github.com/linkdock/linkdock/metrics"
	"github.com/linkdock/linkdock/session"
)

// maxIntentBytes bounds a single intent payload on any ingest path.
const maxIntentBytes = 1 << 20

// Server serves both websockets and the HTTP endpoints on one listener.
type Server struct {
	sessions    *session.Manager
	callTimeout time.Duration
	srv         *http.Server
}

// NewServer wires the routes. callTimeout bounds each host shim round trip.
func NewServer(addr string, sessions *session.Manager, callTimeout time.Duration) *Server {
	s := &Server{
		sessions:    sessions,
		callTimeout: callTimeout,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Post("/send", s.handleSend)
	r.Get("/ws/panel", s.handlePanelSocket)
	r.Get("/ws/host", s.handleHostSocket)

	s.srv = &http.Server{Addr: addr, Handler: r}
	return s
}

// Handler exposes the route table, used by tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start blocks serving until Shutdown.
func (s *Server) Start() error {
	logger.Info("server listening", "addr", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// handleHealth answers liveness probes. ?verbose=1 adds a process snapshot
// with session occupancy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("verbose") == "" {
		writeJSON(w, map[string]string{"status": "ok"})
		return
	}
	writeJSON(w, health.Collect(health.Options{Sessions: s.sessions}))
}

// sendResponse answers POST /send.
type sendResponse struct {
	OK      bool         `json:"ok"`
	Results []resultCard `json:"results,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// handleSend accepts one intent over plain HTTP and runs it against the
// oldest session with a design tool attached. Search results come back in
// the response body instead of being pushed to a panel.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIntentBytes))
	if err != nil {
		writeJSONStatus(w, http.StatusBadRequest, sendResponse{Error: "failed to read body"})
		return
	}

	msg, err := intent.Parse(body)
	if err != nil {
		writeJSONStatus(w, http.StatusBadRequest, sendResponse{Error: err.Error()})
		return
	}

	sess, ok := s.targetSession(r)
	if !ok {
		writeJSONStatus(w, http.StatusServiceUnavailable, sendResponse{Error: "no session with a design tool attached"})
		return
	}
	d, ok := sess.Dispatcher()
	if !ok {
		writeJSONStatus(w, http.StatusServiceUnavailable, sendResponse{Error: "no design tool attached to this session"})
		return
	}

	sess.Touch()
	var results []finder.Result
	d.Dispatch(r.Context(), msg, func(_ context.Context, rs []finder.Result) error {
		results = rs
		return nil
	})

	writeJSON(w, sendResponse{OK: true, Results: renderCards(results)})
}

// targetSession picks the session named by ?session= or falls back to the
// oldest one with a host.
func (s *Server) targetSession(r *http.Request) (*session.Session, bool) {
	if id := r.URL.Query().Get("session"); id != "" {
		return s.sessions.Get(id)
	}
	return s.sessions.First()
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
