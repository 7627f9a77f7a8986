// Package server provides the HTTP server for the fmu-settings API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/equinor/fmu-settings-api/internal/server/cache"
	"github.com/equinor/fmu-settings-api/internal/session"
	"github.com/equinor/fmu-settings-api/pkg/logging"
	"github.com/equinor/fmu-settings-api/pkg/schema"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	schemas  *schema.Registry
	sessions *session.Manager
	cache    *cache.Cache
	logger   *zerolog.Logger
	config   Config
	httpSrv  *http.Server
}

// New creates a new server instance with the given configuration.
func New(schemas *schema.Registry, cfg Config, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}

	// Set defaults
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = time.Hour
	}

	server := &Server{
		schemas:  schemas,
		sessions: session.NewManager(cfg.SessionTTL),
		cache:    cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		logger:   logger,
		config:   cfg,
	}

	return server
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// ListenAndServe starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", addr).
			Str("prefix", s.config.PathPrefix).
			Msg("HTTP server listening")
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}

	s.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// Sessions returns the server's session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Cache returns the server's preview cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}
