package handlers

import (
	"net/http"

	"github.com/equinor/fmu-settings-api/internal/server/response"
)

// HandleHealth handles GET /api/v1/health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "fmu-settings-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready, reporting session and preview
// cache occupancy.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":   "ready",
		"sessions": h.sessions.Count(),
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
	})
}
