package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response body for every API endpoint:
// {data, message, success}. Clients rely on this shape for both success and
// failure responses.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets Content-Type and no-store cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a successful envelope with the given payload and message.
func WriteData(w http.ResponseWriter, code int, data any, message string) {
	if message == "" {
		message = "Request successful"
	}
	WriteJSON(w, code, Envelope{Data: data, Message: message, Success: true})
}

// WriteError writes a failure envelope with the given message.
func WriteError(w http.ResponseWriter, code int, message string) {
	if message == "" {
		message = "Something went wrong"
	}
	WriteJSON(w, code, Envelope{Data: map[string]any{}, Message: message, Success: false})
}

// NoCache sets Cache-Control and Pragma headers to prevent caching. Required
// for responses carrying session material.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
