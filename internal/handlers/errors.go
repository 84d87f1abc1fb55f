package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fachig/blog-api/internal/middleware"
)

// errorBody is the error shape for every failure response: a stable
// machine-readable code plus a human message.
type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorBody{
		Error:     code,
		Message:   message,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}
