package verification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the email verification endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/verify", h.verify)
	router.Post("/resend", h.resend)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	type request struct {
		UserID int    `json:"userId"`
		Code   string `json:"code"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Missing user ID or verification code")
		return
	}
	if !isSixDigits(req.Code) {
		respondError(w, http.StatusBadRequest, "Invalid code format.")
		return
	}

	err := h.service.Verify(r.Context(), req.UserID, req.Code)
	switch {
	case errors.Is(err, ErrCodeInvalid):
		respondError(w, http.StatusBadRequest, "Invalid, used, or expired verification code.")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Server failed to process verification.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Verification successful."})
}

func (h *Handler) resend(w http.ResponseWriter, r *http.Request) {
	type request struct {
		UserID int    `json:"userId"`
		Email  string `json:"email"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Missing user ID or email.")
		return
	}

	if err := h.service.SendCode(r.Context(), req.UserID, req.Email, "New User"); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resend verification code due to a server error.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "New verification code sent."})
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
