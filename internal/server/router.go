package server

import (
	"net/http"

	"github.com/equinor/fmu-settings-api/internal/server/handlers"
	"github.com/equinor/fmu-settings-api/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.schemas, s.sessions, s.cache, s.logger)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints (no auth required)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Session endpoints
	mux.HandleFunc("POST "+prefix+"/session", h.HandleCreateSession)
	mux.HandleFunc("DELETE "+prefix+"/session", h.HandleDestroySession)

	// Resource cache endpoints
	mux.HandleFunc("GET "+prefix+"/resources/{kind}/revisions", h.HandleListRevisions)
	mux.HandleFunc("GET "+prefix+"/resources/{kind}/revisions/{id}", h.HandleRevisionContent)
	mux.HandleFunc("GET "+prefix+"/resources/{kind}/revisions/{id}/diff", h.HandleRevisionDiff)
	mux.HandleFunc("POST "+prefix+"/resources/{kind}/revisions/{id}/restore", h.HandleRestoreRevision)

	// Mappings endpoints
	mux.HandleFunc("GET "+prefix+"/mappings/stratigraphy", h.HandleListStratigraphyMappings)
	mux.HandleFunc("PATCH "+prefix+"/mappings/stratigraphy", h.HandleUpdateStratigraphyMappings)
	mux.HandleFunc("GET "+prefix+"/mappings/stratigraphy/grouped", h.HandleGroupedStratigraphyMappings)
}

// applyMiddleware wraps the mux in the configured middleware chain.
func (s *Server) applyMiddleware(mux http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}

	if s.config.CORSEnabled {
		corsCfg := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsCfg.AllowedOrigins = s.config.CORSOrigins
		}
		chain = append(chain, middleware.CORS(corsCfg))
	}

	if s.config.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(s.config.RateLimit, s.logger)
		chain = append(chain, middleware.RateLimit(limiter))
	}

	authCfg := middleware.DefaultAuthConfig()
	authCfg.Enabled = s.config.AuthEnabled
	if s.config.AuthHeader != "" {
		authCfg.HeaderName = s.config.AuthHeader
	}
	authCfg.PublicPaths = []string{
		"/health",
		s.config.PathPrefix + "/health",
		s.config.PathPrefix + "/ready",
		"POST " + s.config.PathPrefix + "/session",
		"/favicon.ico",
	}
	chain = append(chain, middleware.Auth(authCfg, s.sessions, s.logger))

	return middleware.Chain(chain...)(mux)
}
