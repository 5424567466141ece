package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kefoundation/backend/internal/config"
	"github.com/kefoundation/backend/internal/middlewares"
	"github.com/kefoundation/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps the authentication business logic
// needed by the auth handler
type AuthService interface {
	// Register creates a user account and a session for it, destroying the
	// caller's prior session first
	Register(ctx context.Context, req *models.RegisterRequest, priorToken string) (*models.PublicUser, string, error)
	// OAuthSignup logs in (or first creates) an externally-verified identity
	OAuthSignup(ctx context.Context, req *models.OAuthSignupRequest, priorToken string) (*models.PublicUser, string, error)
	// Login authenticates by email and password
	Login(ctx context.Context, req *models.LoginRequest, priorToken string) (*models.PublicUser, string, error)
	// Logout destroys the session for the given token
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	BaseHandler
	service AuthService
	session config.SessionConfig
	oauth   config.OAuthConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService, session config.SessionConfig, oauth config.OAuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
		session:     session,
		oauth:       oauth,
	}
}

// RegisterRoutes registers the public auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/oauth-signup", h.OAuthSignup)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/google", h.GoogleRedirect)
}

// RegisterProtectedRoutes registers routes that require a valid session
func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/auth/me", h.Me)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.Register(r.Context(), &req, h.sessionToken(r))
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.RespondJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// OAuthSignup handles POST /api/auth/oauth-signup. The identity provider has
// already verified the email; this endpoint establishes the local session.
func (h *AuthHandler) OAuthSignup(w http.ResponseWriter, r *http.Request) {
	var req models.OAuthSignupRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.OAuthSignup(r.Context(), &req, h.sessionToken(r))
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.RespondJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), &req, h.sessionToken(r))
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Logout handles POST /api/auth/logout. Works with or without a live
// session: the cookie is cleared either way.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), h.sessionToken(r)); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.clearSessionCookie(w)
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me handles GET /api/auth/me. The auth middleware has already resolved the
// session to a fresh user record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user.Public()})
}

// GoogleRedirect handles GET /api/auth/google by redirecting the browser to
// the identity provider's authorize endpoint
func (h *AuthHandler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	if h.oauth.ProjectID == "" {
		h.RespondError(w, http.StatusNotImplemented, "OAuth is not configured")
		return
	}

	redirectTo := "https://" + r.Host + h.oauth.RedirectPath
	authorizeURL := "https://" + h.oauth.ProjectID + ".supabase.co/auth/v1/authorize" +
		"?provider=google&redirect_to=" + url.QueryEscape(redirectTo)
	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

// sessionToken extracts the session token carried by the request, or ""
func (h *AuthHandler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(h.session.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie attaches the session token to the response
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.session.TTL / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
