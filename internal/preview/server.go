// Package preview serves a rendered calendar page over HTTP.
//
// The served content is replaced as a whole by Reload, so requests never
// observe a page and a literal from different renders.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"calrender/pkg/logging"
)

const (
	// DefaultReadHeaderTimeout is the timeout for reading request headers.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultShutdownTimeout bounds the graceful shutdown in Run.
	DefaultShutdownTimeout = 5 * time.Second
)

// Content is one rendered state of the calendar.
type Content struct {
	Page       template.HTML
	Literal    string
	Generation uint64
	LoadedAt   time.Time
}

// Status is the body of the health endpoint.
type Status struct {
	Status     string    `json:"status"`
	Generation uint64    `json:"generation"`
	LoadedAt   time.Time `json:"loadedAt,omitzero"`
	Error      string    `json:"error,omitempty"`
}

// Server serves the current Content.
type Server struct {
	content    atomic.Pointer[Content]
	lastErr    atomic.Pointer[string]
	generation atomic.Uint64
	now        func() time.Time
	mux        *http.ServeMux
}

// NewServer returns a server without content. Pages are answered with 503
// until the first Reload.
func NewServer() *Server {
	s := &Server{now: time.Now}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /options.js", s.handleLiteral)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux = mux
	return s
}

// Reload replaces the served page and literal and clears a previous
// failure.
func (s *Server) Reload(page template.HTML, literal string) {
	c := &Content{
		Page:       page,
		Literal:    literal,
		Generation: s.generation.Add(1),
		LoadedAt:   s.now(),
	}
	s.content.Store(c)
	s.lastErr.Store(nil)
	logging.Info("Preview", "Serving generation %d", c.Generation)
}

// Fail records a failed reload. The previous content stays in place and
// the health endpoint reports the error.
func (s *Server) Fail(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	s.lastErr.Store(&msg)
	logging.Error("Preview", err, "Reload failed, keeping previous content")
}

// Current returns the served content, or nil before the first Reload.
func (s *Server) Current() *Content {
	return s.content.Load()
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func setCommonHeaders(w http.ResponseWriter, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	c := s.content.Load()
	if c == nil {
		http.Error(w, "calendar not loaded yet", http.StatusServiceUnavailable)
		return
	}
	setCommonHeaders(w, "text/html; charset=utf-8")
	w.Header().Set("X-Calendar-Generation", fmt.Sprint(c.Generation))
	_, _ = w.Write([]byte(c.Page))
}

func (s *Server) handleLiteral(w http.ResponseWriter, r *http.Request) {
	c := s.content.Load()
	if c == nil {
		http.Error(w, "calendar not loaded yet", http.StatusServiceUnavailable)
		return
	}
	setCommonHeaders(w, "application/javascript; charset=utf-8")
	w.Header().Set("X-Calendar-Generation", fmt.Sprint(c.Generation))
	_, _ = w.Write([]byte(c.Literal))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := Status{Status: "ok"}
	code := http.StatusOK

	c := s.content.Load()
	switch {
	case c == nil:
		status.Status = "starting"
		code = http.StatusServiceUnavailable
	default:
		status.Generation = c.Generation
		status.LoadedAt = c.LoadedAt
	}
	if msg := s.lastErr.Load(); msg != nil {
		status.Status = "degraded"
		status.Error = *msg
	}

	setCommonHeaders(w, "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled, then shuts down
// gracefully. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ErrorLog:          logging.StdLogger("Preview", logging.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	logging.Info("Preview", "Preview server listening on http://%s", listener.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server failed: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down preview server: %w", err)
		}
		logging.Info("Preview", "Preview server stopped")
		return nil
	}
}
