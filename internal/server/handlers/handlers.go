// Package handlers provides HTTP request handlers for the fmu-settings
// API.
package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/equinor/fmu-settings-api/internal/resources"
	"github.com/equinor/fmu-settings-api/internal/server/cache"
	"github.com/equinor/fmu-settings-api/internal/server/middleware"
	"github.com/equinor/fmu-settings-api/internal/server/response"
	"github.com/equinor/fmu-settings-api/internal/service"
	"github.com/equinor/fmu-settings-api/internal/session"
	"github.com/equinor/fmu-settings-api/pkg/schema"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	schemas  *schema.Registry
	sessions *session.Manager
	cache    *cache.Cache
	logger   *zerolog.Logger
}

// New creates a new Handlers instance.
func New(
	schemas *schema.Registry,
	sessions *session.Manager,
	previews *cache.Cache,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		schemas:  schemas,
		sessions: sessions,
		cache:    previews,
		logger:   logger,
	}
}

// store builds the resource store of the session attached to the
// request. The auth middleware guarantees a session on protected
// routes; its absence here is a routing bug, reported as unauthorized.
func (h *Handlers) store(w http.ResponseWriter, r *http.Request) (*resources.Store, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No session", "Open a session before accessing project resources")
		return nil, false
	}
	store := resources.NewStore(sess.ProjectRoot, h.schemas, resources.WithLogger(h.logger))
	return store, true
}

// resourceService builds the resource service for the request session.
func (h *Handlers) resourceService(w http.ResponseWriter, r *http.Request) (*service.ResourceService, bool) {
	store, ok := h.store(w, r)
	if !ok {
		return nil, false
	}
	return service.NewResourceService(store, h.schemas, h.logger), true
}

// mappingsService builds the mappings service for the request session.
func (h *Handlers) mappingsService(w http.ResponseWriter, r *http.Request) (*service.MappingsService, bool) {
	store, ok := h.store(w, r)
	if !ok {
		return nil, false
	}
	return service.NewMappingsService(store), true
}
