// Package server provides the HTTP API for keiyaku.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/keiyaku/internal/config"
	"github.com/hyperjump/keiyaku/internal/extract"
	"github.com/hyperjump/keiyaku/internal/pipeline"
	"go.uber.org/zap"
)

// Server is the HTTP server for the keiyaku API.
type Server struct {
	analyzer  *pipeline.Analyzer
	extractor *extract.Extractor
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(analyzer *pipeline.Analyzer, extractor *extract.Extractor, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		analyzer:  analyzer,
		extractor: extractor,
		config:    cfg,
		logger:    logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Router builds the chi router. Exposed so tests can serve it directly.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
