package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kefoundation/backend/internal/middlewares"
	"github.com/kefoundation/backend/internal/models"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps the admin business logic needed
// by the admin handler
type AdminService interface {
	// ListUsers returns all users, sanitized
	ListUsers(ctx context.Context) ([]*models.PublicUser, error)
	// Stats assembles the admin dashboard stats
	Stats(ctx context.Context) (*models.AdminStats, error)
	// RemoveAdmin revokes admin privileges from the target user
	RemoveAdmin(ctx context.Context, actingUserID, targetUserID string) (*models.PublicUser, error)
}

// AdminHandler handles admin-only user management requests
type AdminHandler struct {
	BaseHandler
	service AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterAdminRoutes registers the admin-gated user management routes
func (h *AdminHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/users", h.ListUsers)
	r.Patch("/users/{id}/remove-admin", h.RemoveAdmin)
	r.Get("/stats", h.Stats)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, users)
}

// RemoveAdmin handles PATCH /api/admin/users/{id}/remove-admin
func (h *AdminHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	acting, ok := middlewares.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID := chi.URLParam(r, "id")
	updated, err := h.service.RemoveAdmin(r.Context(), acting.ID, targetID)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user":    updated,
		"message": "Admin privileges removed successfully",
	})
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, stats)
}
