package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fachig/blog-api/internal/auth"
)

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AdminLogin verifies the shared admin secret. Success and failure both
// answer 200 so the status code leaks nothing about why a login failed; a
// missing server-side secret is logged but rendered exactly like a denial.
func AdminLogin(gate *auth.Gate, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
			return
		}

		resp := AdminLoginResponse{Success: false, Message: "Invalid password"}
		switch gate.Check(req.Password) {
		case auth.Authorized:
			resp = AdminLoginResponse{Success: true, Message: "Authentication successful"}
		case auth.Misconfigured:
			logger.Error("admin password not configured")
			resp.Message = "Authentication is not available. Please contact the administrator."
		case auth.Denied:
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
