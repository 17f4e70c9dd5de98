// Package server exposes the talent map over HTTP.
//
// Routes:
//
//	GET /map.{svg,json,png,pdf,dot}  rendered map (?dataset, ?category, ?width, ?height, ?refresh)
//	GET /map                         same, format from ?format (default svg)
//	GET /skills                      ranked skills with bar fractions (?category)
//	GET /languages                   ranked languages with bar fractions
//	GET /categories                  filter choices, "all" first
//	GET /summary                     snapshot totals
//	GET /healthz                     liveness
//	GET /metrics                     Prometheus metrics, when enabled
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/talentmap/pkg/metrics"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Options configures a [Server].
type Options struct {
	Runner   *pipeline.Runner
	Defaults pipeline.Options // base options; query parameters override them
	Metrics  *metrics.Manager // nil disables /metrics and request metrics
	Logger   *log.Logger
	AllLabel string // display name of the "all" category; default "All"
}

// Server serves talent-map renders and list data.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	metrics  *metrics.Manager
	logger   *log.Logger
	allLabel string
	router   chi.Router
}

// New builds the server and its routes.
func New(opts Options) *Server {
	s := &Server{
		runner:   opts.Runner,
		defaults: opts.Defaults,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		allLabel: opts.AllLabel,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.allLabel == "" {
		s.allLabel = "All"
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.metrics != nil {
		r.Use(s.observe)
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/map", s.handleMap(""))
	for format := range pipeline.ValidFormats {
		r.Get("/map."+format, s.handleMap(format))
	}
	r.Get("/skills", s.handleList(pipeline.DatasetSkills))
	r.Get("/languages", s.handleList(pipeline.DatasetLanguages))
	r.Get("/categories", s.handleCategories)
	r.Get("/summary", s.handleSummary)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
