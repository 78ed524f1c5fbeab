// Package server exposes bracket generation over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness and build version
//	GET  /v1/brackets/{capacity}   generated document or rendering
//	POST /v1/teams                 roster CSV to team records
//
// Bracket responses carry an ETag derived from the generation inputs, so
// clients revalidating with If-None-Match get a 304 without the document
// being loaded from the cache.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/pipeline"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

// DefaultMaxUploadBytes caps the size of a roster upload.
const DefaultMaxUploadBytes = 4 << 20

// Options configures a Server. The zero value serves the built-in defaults
// to any origin.
type Options struct {
	// Generation defaults. Lenient can be overridden per request.
	Layout  bracket.LayoutConfig
	Date    string
	Lenient bool

	// Columns are the roster columns used when a request does not name them.
	Columns roster.Columns

	CORSOrigins    []string
	MaxUploadBytes int64
	Logger         *log.Logger
}

// Server handles API requests on top of a pipeline runner. It is safe for
// concurrent use.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New creates a server. A zero Columns value means roster.DefaultColumns.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Columns == (roster.Columns{}) {
		opts.Columns = roster.DefaultColumns()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	s := &Server{
		runner: runner,
		opts:   opts,
		logger: opts.Logger.WithPrefix("http"),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.logger, bmerrors.New(bmerrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/brackets/{capacity}", s.handleBracket)
		r.Post("/teams", s.handleTeams)
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully,
// waiting up to shutdownTimeout for in-flight requests.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
