// Package endpoints contains all HTTP API endpoints for the Redpen server.
// Each endpoint implements api.Endpoint, providing both an HTTP route and
// a CLI command that calls it.
package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/jackzampolin/redpen/internal/api"
)

// All returns all endpoints in registration order.
func All() []api.Endpoint {
	return []api.Endpoint{
		&RootEndpoint{},
		&HealthEndpoint{},
		&StatusEndpoint{},
		&CorrectEndpoint{},
		&CorrectBatchEndpoint{},
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"input text is empty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
