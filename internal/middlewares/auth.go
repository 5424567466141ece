package middlewares

import (
	"context"
	"net/http"

	"github.com/kefoundation/backend/internal/apperrors"
	"github.com/kefoundation/backend/internal/models"
	"github.com/kefoundation/backend/internal/sessions"
	"go.uber.org/zap"
)

const (
	userKey    contextKey = "user"
	sessionKey contextKey = "session"
)

// UserProvider loads user records for session validation
type UserProvider interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// SessionAuth builds the session-validation middlewares. RequireAuth
// resolves the session cookie to a live user; RequireAdmin additionally
// checks the session's isAdmin snapshot.
type SessionAuth struct {
	store      sessions.Store
	users      UserProvider
	cookieName string
	logger     *zap.Logger
}

// NewSessionAuth creates the session middleware set
func NewSessionAuth(store sessions.Store, users UserProvider, cookieName string, logger *zap.Logger) *SessionAuth {
	return &SessionAuth{
		store:      store,
		users:      users,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RequireAuth validates the session cookie. On success the user record and
// the session are attached to the request context. If the session points at
// a user that no longer exists, the session is destroyed.
func (a *SessionAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, user, ok := a.authenticate(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin validates the session cookie and then checks the session's
// isAdmin snapshot, not a fresh database read. Admin-gated routes trust the
// snapshot taken at login time, so a privilege change takes effect for an
// already-logged-in user only on their next login.
func (a *SessionAuth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, user, ok := a.authenticate(w, r)
		if !ok {
			return
		}

		if !sess.IsAdmin {
			respondJSONError(w, http.StatusForbidden, "Admin access required")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate resolves the session cookie to a session and user. It writes
// the 401 response itself and returns ok=false on failure.
func (a *SessionAuth) authenticate(w http.ResponseWriter, r *http.Request) (*sessions.Session, *models.User, bool) {
	cookie, err := r.Cookie(a.cookieName)
	if err != nil || cookie.Value == "" {
		respondJSONError(w, http.StatusUnauthorized, "Authentication required")
		return nil, nil, false
	}

	sess, err := a.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if err != sessions.ErrNoSession {
			a.logger.Error("failed to look up session", zap.Error(err))
		}
		respondJSONError(w, http.StatusUnauthorized, "Authentication required")
		return nil, nil, false
	}

	user, err := a.users.GetByID(r.Context(), sess.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			// User deleted out-of-band; the session is no longer valid
			if delErr := a.store.Delete(r.Context(), sess.Token); delErr != nil {
				a.logger.Error("failed to destroy orphaned session",
					zap.String("user_id", sess.UserID), zap.Error(delErr))
			}
			respondJSONError(w, http.StatusUnauthorized, "User not found")
			return nil, nil, false
		}
		a.logger.Error("failed to load session user",
			zap.String("user_id", sess.UserID), zap.Error(err))
		respondJSONError(w, http.StatusUnauthorized, "Authentication required")
		return nil, nil, false
	}

	return sess, user, true
}

// GetUser retrieves the authenticated user from context
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// GetSession retrieves the session from context
func GetSession(ctx context.Context) (*sessions.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*sessions.Session)
	return sess, ok
}

func respondJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
