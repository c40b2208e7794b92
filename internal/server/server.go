// Package server exposes the graph pipeline over HTTP.
//
// Graphs are uploaded as TOML manifests or JSON snapshots and persisted
// in a [store.Store] under generated ids. Analysis and render endpoints
// operate on stored graphs:
//
//	POST   /api/graphs                   upload a manifest or snapshot
//	GET    /api/graphs                   list stored graphs
//	GET    /api/graphs/{id}              fetch a stored graph
//	DELETE /api/graphs/{id}              delete a stored graph
//	GET    /api/graphs/{id}/descendants  reachability from ?vertex=
//	GET    /api/graphs/{id}/ancestors    reverse reachability from ?vertex=
//	GET    /api/graphs/{id}/components   strongly connected components
//	GET    /api/graphs/{id}/stats        summary counts
//	GET    /api/graphs/{id}/render       artifact in ?format=
//	GET    /healthz                      liveness probe
//
// Analysis and render results are cached through the shared cache with
// keys scoped per stored graph id.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/refgraph/pkg/cache"
	"github.com/matzehuels/refgraph/pkg/observability"
	"github.com/matzehuels/refgraph/pkg/pipeline"
	"github.com/matzehuels/refgraph/pkg/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Config holds the server dependencies.
type Config struct {
	Addr   string
	Store  store.Store
	Cache  cache.Cache
	Logger *log.Logger
}

// Server serves the refgraph HTTP API.
type Server struct {
	addr   string
	store  store.Store
	cache  cache.Cache
	logger *log.Logger
	router chi.Router
}

// New assembles a server. The store is required; a nil cache disables
// caching and a nil logger falls back to the default logger.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		addr:   cfg.Addr,
		store:  cfg.Store,
		cache:  cfg.Cache,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully with a short drain timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/graphs", func(r chi.Router) {
		r.Post("/", s.handleSaveGraph)
		r.Get("/", s.handleListGraphs)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGraph)
			r.Delete("/", s.handleDeleteGraph)
			r.Get("/descendants", s.handleAnalyze(pipeline.OpDescendants))
			r.Get("/ancestors", s.handleAnalyze(pipeline.OpAncestors))
			r.Get("/components", s.handleAnalyze(pipeline.OpComponents))
			r.Get("/stats", s.handleAnalyze(pipeline.OpStats))
			r.Get("/render", s.handleRender)
		})
	})

	return r
}

// runnerFor builds a pipeline runner whose cache keys are scoped to one
// stored graph, so a graph's entries share a common prefix.
func (s *Server) runnerFor(id string) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(nil, "graph:"+id+":")
	return pipeline.NewRunner(s.cache, keyer, s.logger)
}

// logRequests logs one line per request and feeds the server hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}
