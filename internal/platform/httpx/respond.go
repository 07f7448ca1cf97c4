// Package httpx provides HTTP response utilities with a single JSON
// error envelope shared by every API path.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the uniform JSON error body: {"success":false,"error":...}.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends the uniform error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorEnvelope{Success: false, Error: message})
}
