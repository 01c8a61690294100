// Package api serves the chart pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz             liveness probe
//	POST /v1/charts           compute and store a chart from {table, options}
//	GET  /v1/charts           list stored charts, newest first (?limit=N)
//	GET  /v1/charts/{id}      fetch a stored chart
//	POST /v1/downsample       reduce {algorithm, threshold, points}
//	POST /v1/stats            summarize and bin {values, rule}
//
// Every response carries an X-Request-ID header. Errors use the body
// described in pkg/httputil with a status derived from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lodviz/pkg/httputil"
	"github.com/matzehuels/lodviz/pkg/pipeline"
	"github.com/matzehuels/lodviz/pkg/storage"
)

// Server timeouts.
const (
	ReadTimeout     = 30 * time.Second
	WriteTimeout    = 60 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// Server routes API requests to a pipeline runner and a chart store.
type Server struct {
	runner *pipeline.Runner
	store  storage.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil store selects an in-memory store and a nil
// logger the runner's logger.
func New(runner *pipeline.Runner, store storage.Store, logger *log.Logger) *Server {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, store: store, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(s.recoverer)
	r.NotFound(httputil.NotFound)
	r.MethodNotAllowed(httputil.MethodNotAllowed)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/charts", s.createChart)
		r.Get("/charts", s.listCharts)
		r.Get("/charts/{id}", s.getChart)
		r.Post("/downsample", s.downsample)
		r.Post("/stats", s.stats)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
