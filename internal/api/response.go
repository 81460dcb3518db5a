// Package api implements HTTP handlers exposing the rate refresh state.
package api

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"rate limited by server"`
}

// ThrottledResponse represents a locally throttled refresh attempt. It is an
// advisory, not an error: the previously published state is untouched.
type ThrottledResponse struct {
	Notice           string `json:"notice" example:"refresh throttled, next allowed in 237s"`
	SecondsRemaining int    `json:"seconds_remaining" example:"237"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
