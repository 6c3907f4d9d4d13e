package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the body used by the threat and analysis endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body used by the auth endpoints and the access gate.
// Error is only set on internal failures.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondError sends {"error": message}
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// RespondMessage sends {"message": message}
func RespondMessage(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, MessageResponse{Message: message}, statusCode)
}

// RespondInternal sends {"message": message, "error": detail} with a 500.
// detail must be safe to show to clients.
func RespondInternal(w http.ResponseWriter, message, detail string) {
	RespondJSON(w, MessageResponse{Message: message, Error: detail}, http.StatusInternalServerError)
}

// DecodeJSON decodes a request body of at most 1 MiB into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(dst)
}
