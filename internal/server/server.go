// Package server provides the read-only HTTP API over the portfolio content.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/portfolio/internal/content"
	"github.com/jonathan/portfolio/internal/server/middleware"
	"github.com/jonathan/portfolio/internal/server/ratelimit"
	"github.com/jonathan/portfolio/internal/sitemap"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/rs/zerolog"
)

// shutdownTimeout bounds how long in-flight requests may finish after Start's context ends
const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      *content.Store
	identity   types.SiteIdentity
	sitemap    sitemap.Options
	logger     zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	Identity  types.SiteIdentity
	Sitemap   sitemap.Options
	RateLimit ratelimit.Config
	Logger    zerolog.Logger
}

// New creates a new server instance
func New(store *content.Store, cfg Config) *Server {
	s := &Server{
		store:    store,
		identity: cfg.Identity,
		sitemap:  cfg.Sitemap,
		logger:   cfg.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/person", s.handlePerson)
	mux.HandleFunc("GET /api/case-studies", s.handleListCaseStudies)
	mux.HandleFunc("GET /api/case-studies/{slug}", s.handleGetCaseStudy)
	mux.HandleFunc("GET /api/case-studies/{slug}/page", s.handleCaseStudyPage)
	mux.HandleFunc("GET /api/writing", s.handleListWriting)
	mux.HandleFunc("GET /api/writing/{slug}", s.handleGetWriting)
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)

	handler := middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.RateLimit(ratelimit.NewLimiter(cfg.RateLimit)),
	)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("server starting")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, contentType string, data any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse maps err to a status and writes it as a JSON error body
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	s.jsonResponse(w, r, status, contentTypeJSON, map[string]string{"error": err.Error()})
}
