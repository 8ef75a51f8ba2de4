package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the public signup and login endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/signup", h.signup)
	router.Post("/login", h.login)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Reason)
		return
	case errors.Is(err, ErrEmailTaken):
		respondError(w, http.StatusConflict, "User with this email already exists.")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to create account due to a server error.")
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully.",
		"userId":  u.ID,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case errors.Is(err, ErrNotVerified):
		respondError(w, http.StatusForbidden, "Account not verified. Please check your email.")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "An unexpected server error occurred during login.")
		return
	}

	// Login success is not persisted server-side; the client is told where
	// to go and keeps the user payload itself.
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user": map[string]interface{}{
			"id":    u.ID,
			"name":  u.FullName,
			"email": u.Email,
		},
		"redirectTo": "/home",
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
