package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mugna-shop/backend/internal/modules/product"
	"github.com/mugna-shop/backend/internal/modules/user"
)

// Handler exposes the back-office endpoints: login, user listing and the
// dashboard counters.
type Handler struct {
	service  Service
	users    user.Service
	products product.Service
}

func NewHandler(service Service, users user.Service, products product.Service) *Handler {
	return &Handler{service: service, users: users, products: products}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/admin/login", h.login)
	router.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/admin/users", h.listUsers)
		r.Get("/admin/dashboard", h.dashboard)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Invalid request body",
		})
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		respond(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false, "message": "Invalid admin credentials",
		})
		return
	case err != nil:
		respond(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Admin login is not available",
		})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Admin login successful",
		"token":   token,
	})
}

// requireAdmin guards back-office reads with the bearer token issued by
// login.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || h.service.VerifyToken(token) != nil {
			respond(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "error": "Admin authorization required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "error": "Failed to retrieve user data.",
		})
		return
	}

	type userView struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		CreatedAt string `json:"createdAt"`
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			ID:        strconv.Itoa(u.ID),
			Name:      u.FullName,
			Email:     u.Email,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   views,
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := h.users.CountUsers(r.Context())
	if err != nil {
		h.dashboardError(w)
		return
	}
	verifiedUsers, err := h.users.CountVerifiedUsers(r.Context())
	if err != nil {
		h.dashboardError(w)
		return
	}
	totalProducts, err := h.products.Count(r.Context())
	if err != nil {
		h.dashboardError(w)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"totalUsers":    totalUsers,
		"verifiedUsers": verifiedUsers,
		"totalProducts": totalProducts,
	})
}

func (h *Handler) dashboardError(w http.ResponseWriter) {
	respond(w, http.StatusInternalServerError, map[string]interface{}{
		"success": false, "error": "Failed to load dashboard metrics.",
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
