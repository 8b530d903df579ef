package api

import (
	"net/http"

	"github.com/ayusman/airpredict/internal/session"
)

// TargetsHandler exposes the pinch-click target layout.
type TargetsHandler struct {
	controller Controller
}

// NewTargetsHandler creates a new TargetsHandler over the given controller.
func NewTargetsHandler(c Controller) *TargetsHandler {
	return &TargetsHandler{controller: c}
}

type targetsResponse struct {
	Targets []session.Target `json:"targets"`
}

type putTargetsRequest struct {
	Targets []session.Target `json:"targets"`
}

// ServeHTTP handles GET and PUT on /api/targets.
func (h *TargetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		targets := h.controller.Targets()
		if targets == nil {
			targets = []session.Target{}
		}
		writeJSON(w, http.StatusOK, targetsResponse{Targets: targets})

	case http.MethodPut:
		var req putTargetsRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		for _, t := range req.Targets {
			if t.ID == "" {
				writeError(w, http.StatusBadRequest, "target id is required")
				return
			}
		}
		h.controller.SetTargets(req.Targets)
		writeJSON(w, http.StatusOK, targetsResponse{Targets: req.Targets})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
