// Package server exposes the telematik processor over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/akuvvet/buchhaltung/pkg/telematik"
)

// Config holds HTTP server settings
type Config struct {
	// ArchiveDir receives a copy of every processed workbook; empty disables it.
	ArchiveDir string
	// MaxUploadBytes limits the request body size.
	MaxUploadBytes int64
}

// Server represents the telematik HTTP application
type Server struct {
	router *chi.Mux
	config Config
	opts   telematik.Options
	logger *zap.Logger
}

// New creates a Server processing uploads with opts.
func New(config Config, opts telematik.Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router: chi.NewRouter(),
		config: config,
		opts:   opts,
		logger: logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/telematik", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Post("/clipboard", s.handleClipboard)
	})
}
