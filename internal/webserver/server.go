// Package webserver provides the HTTP server exposing the download and
// newsletter REST API plus static serving of downloaded media.
package webserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/permitrdu/digest/internal/webapi"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	DownloadDir string
	Fetcher     webapi.MediaFetcher
	Newsletters webapi.NewsletterStore
	Logger      *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("webserver: fetcher is required")
	}
	if cfg.Newsletters == nil {
		return nil, fmt.Errorf("webserver: newsletter store is required")
	}

	router := chi.NewRouter()
	router.Use(webapi.RequestLogger(cfg.Logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	handlers := webapi.NewHandlers(cfg.Fetcher, cfg.Newsletters, cfg.DownloadDir, cfg.Logger)
	handlers.RegisterRoutes(router)

	// Downloaded media served directly, matching the API's file listings.
	router.Handle("/downloads/*", http.StripPrefix("/downloads/",
		http.FileServer(http.Dir(cfg.DownloadDir))))

	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe starts the HTTP server and blocks until it stops. The
// server shuts down gracefully when ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("HTTP server starting", "address", s.srv.Addr)

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}
