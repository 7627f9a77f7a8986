package handlers

import (
	"net/http"

	"github.com/equinor/fmu-settings-api/internal/server/cache"
	"github.com/equinor/fmu-settings-api/internal/server/middleware"
	"github.com/equinor/fmu-settings-api/internal/server/response"
	"github.com/equinor/fmu-settings-api/pkg/diff"
	"github.com/equinor/fmu-settings-api/pkg/logging"
)

// HandleListRevisions handles
// GET /api/v1/resources/{kind}/revisions.
func (h *Handlers) HandleListRevisions(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}

	revisions, err := svc.ListCacheRevisions(r.PathValue("kind"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"revisions": revisions})
}

// HandleRevisionContent handles
// GET /api/v1/resources/{kind}/revisions/{id}.
func (h *Handlers) HandleRevisionContent(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}

	content, err := svc.GetCacheContent(r.PathValue("kind"), r.PathValue("id"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"content": content})
}

// HandleRevisionDiff handles
// GET /api/v1/resources/{kind}/revisions/{id}/diff. Computed previews
// are cached per (project, kind, revision) so repeated UI requests
// render the same result without recomputation; the cache is
// invalidated on restore. The project root is part of the key because
// revision IDs are timestamps and collide across projects.
func (h *Handlers) HandleRevisionDiff(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	revisionID := r.PathValue("id")

	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No session", "Open a session before accessing project resources")
		return
	}

	key := cache.Key("diff", sess.ProjectRoot, kind, revisionID)
	if cached, ok := h.cache.Get(key); ok {
		if entries, ok := cached.([]diff.Entry); ok {
			response.OK(w, map[string]any{"diff": entries})
			return
		}
	}

	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}

	entries, err := svc.GetCacheDiff(kind, revisionID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ctx := logging.WithRevision(logging.WithResource(r.Context(), kind), revisionID)
	logging.Ctx(ctx).Debug().Int("entries", len(entries)).Msg("cache_diff_computed")

	h.cache.Set(key, entries)
	response.OK(w, map[string]any{"diff": entries})
}

// HandleRestoreRevision handles
// POST /api/v1/resources/{kind}/revisions/{id}/restore.
func (h *Handlers) HandleRestoreRevision(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	revisionID := r.PathValue("id")

	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No session", "Open a session before accessing project resources")
		return
	}

	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}

	if err := svc.RestoreFromCache(kind, revisionID); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	// The current state changed, so every cached preview of this
	// resource in this project is stale.
	h.cache.DeletePrefix(cache.Key("diff", sess.ProjectRoot, kind))
	response.OK(w, map[string]any{"restored": revisionID})
}
