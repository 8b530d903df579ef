package api

import (
	"net/http"

	"github.com/ayusman/airpredict/internal/store"
)

// SettingsHandler exposes the persisted key-value settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

type settingsResponse struct {
	Settings map[string]string `json:"settings"`
}

type putSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

// ServeHTTP handles GET and PUT on /api/settings.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.store.Settings().All()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load settings")
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{Settings: settings})

	case http.MethodPut:
		var req putSettingsRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		for k, v := range req.Settings {
			if k == "" {
				writeError(w, http.StatusBadRequest, "setting key is required")
				return
			}
			if err := h.store.Settings().Set(k, v); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to save settings")
				return
			}
		}
		writeJSON(w, http.StatusOK, nil)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
