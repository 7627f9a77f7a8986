package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/equinor/fmu-settings-api/internal/server/response"
	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/logging"
)

// HandleListStratigraphyMappings handles
// GET /api/v1/mappings/stratigraphy.
func (h *Handlers) HandleListStratigraphyMappings(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.mappingsService(w, r)
	if !ok {
		return
	}

	mappings, err := svc.ListStratigraphyMappings()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"mappings": mappings})
}

// HandleUpdateStratigraphyMappings handles
// PATCH /api/v1/mappings/stratigraphy. The body is the full list of
// stratigraphy mappings; existing mappings are overwritten.
func (h *Handlers) HandleUpdateStratigraphyMappings(w http.ResponseWriter, r *http.Request) {
	var mappings []document.Item
	if err := json.NewDecoder(r.Body).Decode(&mappings); err != nil {
		response.BadRequest(w, "Invalid request body",
			"Expected a JSON array of stratigraphy mapping records")
		return
	}

	svc, ok := h.mappingsService(w, r)
	if !ok {
		return
	}

	stored, err := svc.UpdateStratigraphyMappings(mappings)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("mappings", len(stored)).
		Msg("stratigraphy_mappings_updated")
	response.OK(w, map[string]any{"mappings": stored})
}

// HandleGroupedStratigraphyMappings handles
// GET /api/v1/mappings/stratigraphy/grouped.
func (h *Handlers) HandleGroupedStratigraphyMappings(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.mappingsService(w, r)
	if !ok {
		return
	}

	groups, err := svc.GroupStratigraphyMappings()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"groups": groups})
}
