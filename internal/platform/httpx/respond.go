// Package httpx provides the JSON request/response helpers shared by all
// HTTP handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope returned on every failed request. The
// error field carries the machine-oriented detail and is omitted when empty.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends the {message, error} envelope with the given status code.
func Error(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, ErrorBody{Message: message, Error: detail})
}

// DecodeJSON decodes the JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
