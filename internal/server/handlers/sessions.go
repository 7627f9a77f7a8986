package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/equinor/fmu-settings-api/internal/resources"
	"github.com/equinor/fmu-settings-api/internal/server/middleware"
	"github.com/equinor/fmu-settings-api/internal/server/response"
	"github.com/equinor/fmu-settings-api/pkg/logging"
)

// createSessionRequest is the body of POST /api/v1/session.
type createSessionRequest struct {
	ProjectRoot string `json:"project_root"`
}

// HandleCreateSession handles POST /api/v1/session. It opens a session
// against a project directory containing a .fmu settings directory.
func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}
	if req.ProjectRoot == "" {
		response.BadRequest(w, "project_root is required", "")
		return
	}

	root, err := filepath.Abs(req.ProjectRoot)
	if err != nil {
		response.BadRequest(w, "Invalid project_root", err.Error())
		return
	}
	if info, err := os.Stat(filepath.Join(root, resources.DirName)); err != nil || !info.IsDir() {
		response.NotFound(w, "No .fmu directory found at "+root, "")
		return
	}

	sess := h.sessions.Create(root)
	logging.Ctx(r.Context()).Info().
		Str("session_id", sess.ID).
		Str("project_root", root).
		Msg("session_created")
	response.Created(w, sess)
}

// HandleDestroySession handles DELETE /api/v1/session for the session
// attached to the request.
func (h *Handlers) HandleDestroySession(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No session", "")
		return
	}

	h.sessions.Destroy(sess.ID)
	logging.Ctx(r.Context()).Info().Str("session_id", sess.ID).Msg("session_destroyed")
	response.OK(w, map[string]any{"destroyed": true})
}
