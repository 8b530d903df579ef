package api

import (
	"errors"
	"net/http"
)

// StateHandler serves the live session snapshot.
type StateHandler struct {
	controller Controller
}

// NewStateHandler creates a new StateHandler over the given controller.
func NewStateHandler(c Controller) *StateHandler {
	return &StateHandler{controller: c}
}

// ServeHTTP handles GET /api/state.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.controller.State())
}

// CommandHandler applies UI commands to the session.
type CommandHandler struct {
	controller Controller
}

// NewCommandHandler creates a new CommandHandler over the given controller.
func NewCommandHandler(c Controller) *CommandHandler {
	return &CommandHandler{controller: c}
}

// ServeHTTP handles POST /api/command.
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var cmd Command
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if cmd.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.controller.Execute(cmd); err != nil {
		if errors.Is(err, ErrInvalidCommand) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to execute command")
		return
	}

	writeJSON(w, http.StatusOK, h.controller.State())
}
