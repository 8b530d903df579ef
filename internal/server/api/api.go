// Package api provides the HTTP API handlers for the air-writing
// application.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/airpredict/internal/session"
)

// ErrInvalidCommand is returned by a Controller for commands it does not
// understand. The command handler maps it to a 400 response.
var ErrInvalidCommand = errors.New("invalid command")

// State is a point-in-time snapshot of the writing session, safe to
// serialize to clients.
type State struct {
	Running       bool     `json:"running"`
	Mode          string   `json:"mode"`
	Sentence      string   `json:"sentence"`
	Suggestions   []string `json:"suggestions"`
	LastCharacter string   `json:"last_character"`
	Confidence    float64  `json:"confidence"`
	Hovered       string   `json:"hovered"`
}

// Command is a UI request applied between pipeline ticks.
type Command struct {
	Name string `json:"name"`
	Arg  string `json:"arg,omitempty"`
}

// Controller is the pipeline surface the API talks to.
type Controller interface {
	// State returns a snapshot of the current session.
	State() State

	// Execute applies a command. Unknown or malformed commands return an
	// error wrapping ErrInvalidCommand.
	Execute(Command) error

	// Targets returns the current pinch-click target layout.
	Targets() []session.Target

	// SetTargets replaces the pinch-click target layout.
	SetTargets([]session.Target)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeBody decodes a JSON request body.
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
