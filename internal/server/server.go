// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/layout                  dataset → layout JSON
//	POST   /v1/render?format=svg       dataset → artifact
//	POST   /v1/charts?style=simple     dataset → stored chart summary
//	GET    /v1/charts?limit=50
//	GET    /v1/charts/{id}
//	GET    /v1/charts/{id}/render?format=svg
//	DELETE /v1/charts/{id}
//
// Dataset bodies are JSON by default; text/csv, text/tab-separated-values
// and application/toml are accepted by Content-Type.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/mekko/internal/config"
	"github.com/matzehuels/mekko/pkg/pipeline"
	"github.com/matzehuels/mekko/pkg/storage"
)

// MaxBodySize caps dataset uploads.
const MaxBodySize = 8 << 20

// Options configure a [Server].
type Options struct {
	Addr           string
	AllowedOrigins []string
	Runner         *pipeline.Runner
	Store          storage.Store
	// Render seeds per-request render options.
	Render config.RenderConfig
	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	router   *chi.Mux
	http     *http.Server
	runner   *pipeline.Runner
	store    storage.Store
	defaults config.RenderConfig
	logger   *log.Logger
}

// New wires routes and middleware. A nil store keeps charts in memory.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		router:   chi.NewRouter(),
		runner:   opts.Runner,
		store:    opts.Store,
		defaults: opts.Render,
		logger:   opts.Logger.WithPrefix("server"),
	}
	s.setupMiddleware(opts.AllowedOrigins)
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/charts", func(r chi.Router) {
			r.Post("/", s.handleCreateChart)
			r.Get("/", s.handleListCharts)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetChart)
				r.Delete("/", s.handleDeleteChart)
				r.Get("/render", s.handleRenderChart)
			})
		})
	})
}

// Start listens until the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains connections and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	err := s.http.Shutdown(ctx)
	if cerr := s.store.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
