// Package server exposes synthesis, image generation, and feed aggregation
// over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"newsmith/internal/config"
	"newsmith/internal/enrich"
	"newsmith/internal/imagegen"
	"newsmith/internal/logger"
	"newsmith/internal/sources"
	"newsmith/internal/synthesis"
)

// AuthChecker validates a session token and resolves it to a user id. It is
// an external collaborator; the server only consumes the boolean verdict.
type AuthChecker interface {
	Check(ctx context.Context, token string) (int64, bool)
}

// Deps carries the collaborators a Server needs.
type Deps struct {
	Enricher    *enrich.Enricher
	Synthesizer *synthesis.Orchestrator
	Images      *imagegen.Pipeline
	Aggregator  *sources.Aggregator
	Auth        AuthChecker // Optional; nil disables the session gate
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     config.Server
	log        *slog.Logger
	validate   *validator.Validate

	enricher *enrich.Enricher
	synth    *synthesis.Orchestrator
	images   *imagegen.Pipeline
	feeds    *sources.Aggregator
	auth     AuthChecker
}

// New creates a new HTTP server instance
func New(cfg config.Server, deps Deps) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		log:      logger.Get(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		enricher: deps.Enricher,
		synth:    deps.Synthesizer,
		images:   deps.Images,
		feeds:    deps.Aggregator,
		auth:     deps.Auth,
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Synthesis calls can take a while against slow providers
	s.router.Use(middleware.Timeout(120 * time.Second))

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/status", s.handleStatus)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.requireSession)

		r.Post("/synthesize", s.handleSynthesize)

		r.Route("/articles", func(r chi.Router) {
			r.Post("/edit", s.handleEditArticle)
			r.Post("/titles", s.handleGenerateTitles)
			r.Post("/quality", s.handleAnalyzeQuality)
		})

		r.Route("/images", func(r chi.Router) {
			r.Post("/generate", s.handleGenerateImage)
			r.Post("/edit", s.handleEditImage)
		})

		r.Get("/sources/fetch", s.handleFetchSources)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
