package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	healthTimeout     = 2 * time.Second
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server routes HTTP requests to the use case handlers.
type Server struct {
	handlers    Handlers
	tokens      TokenService
	pinger      Pinger
	logger      *slog.Logger
	development bool
	corsOrigin  string
	now         func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for access logs and internal errors. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDevelopment adds the internal error chain to error responses.
func WithDevelopment(development bool) Option {
	return func(s *Server) {
		s.development = development
	}
}

// WithCORSOrigin sets the one origin that may call the API from a browser.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithClock replaces time.Now for the timestamps the server hands to commands and queries.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a Server.
func NewServer(handlers Handlers, tokens TokenService, pinger Pinger, opts ...Option) *Server {
	s := &Server{
		handlers: handlers,
		tokens:   tokens,
		pinger:   pinger,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Routes returns the complete handler with all middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.health)

	s.userRoutes(mux)
	s.authorRoutes(mux)
	s.bookRoutes(mux)
	s.studentRoutes(mux)
	s.loanRoutes(mux)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, &core.AppError{
			Kind:    core.KindNotFound,
			Code:    core.CodeNotFound,
			Message: "Route " + r.Method + " " + r.URL.Path + " was not found.",
		})
	})

	return s.requestID(s.accessLog(s.recoverPanic(s.cors(mux))))
}

// NewHTTPServer wraps handler in an http.Server with conservative timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", "error", err)
		s.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCommand decodes the request with build, runs the command and writes its value with status.
func handleCommand[C shell.Command, R any](
	s *Server,
	handler shell.CommandHandler[C, R],
	status int,
	build func(w http.ResponseWriter, r *http.Request) (C, error),
) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		command, err := build(w, r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		result, err := handler.Handle(r.Context(), command)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, r, status, result.Value)
	}
}

// handleQuery builds the query from the request, runs it and writes the projection with 200.
func handleQuery[Q shell.Query, R any](
	s *Server,
	handler shell.QueryHandler[Q, R],
	build func(r *http.Request) (Q, error),
) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		query, err := build(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		result, err := handler.Handle(r.Context(), query)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, r, http.StatusOK, result)
	}
}
