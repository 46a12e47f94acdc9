// Package server renders baseplate templates over HTTP.
//
// Routes:
//
//	GET /healthz                       liveness probe, returns "ok"
//	GET /profiles                      profile names and their constants
//	GET /stats                         request and render counters, when enabled
//	GET /baseplate.{format}?width=&height=[&profile=&title=&scale=]
//
// Input errors are returned as 400 with a JSON body {"code", "message"}.
// Every response carries X-Request-ID and Server headers.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/laserfinity/laserfinity/pkg/buildinfo"
	"github.com/laserfinity/laserfinity/pkg/observability"
	"github.com/laserfinity/laserfinity/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// shutdownTimeout bounds how long in-flight requests get after the context
// is cancelled.
const shutdownTimeout = 5 * time.Second

// Server serves rendered baseplates.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	addr    string
	timeout time.Duration
	stats   *observability.Counters
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option { return func(s *Server) { s.addr = addr } }

// WithTimeout limits how long a single render may take.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// WithStats serves c's snapshot at /stats.
func WithStats(c *observability.Counters) Option { return func(s *Server) { s.stats = c } }

// New creates a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		addr:    DefaultAddr,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(hooks)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/profiles", s.handleProfiles)
	if s.stats != nil {
		r.Get("/stats", s.handleStats)
	}
	r.Get("/baseplate.{format}", s.handleBaseplate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
