package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/kefoundation/backend/internal/apperrors"
	"github.com/kefoundation/backend/internal/models"
	"github.com/kefoundation/backend/internal/sessions"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for users table data
// access needed by the auth service
type UserRepository interface {
	// Create inserts a new user. The repository assigns the id, the signup
	// order (transactionally, so concurrent registrations cannot share an
	// order) and the admin flag via isAdminForOrder.
	Create(ctx context.Context, user *models.User, isAdminForOrder func(int) bool) error
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsByEmail checks if a user with such email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByUsername checks if a user with such username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// authService implements the authentication business logic
type authService struct {
	userRepo  UserRepository
	store     sessions.Store
	bootstrap models.AdminBootstrap
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, store sessions.Store, bootstrap models.AdminBootstrap, logger *zap.Logger) *authService {
	return &authService{
		userRepo:  userRepo,
		store:     store,
		bootstrap: bootstrap,
		logger:    logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// usernameSanitizeRegex matches characters that are not allowed in derived
// usernames
var usernameSanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// Register creates a new user account and establishes a session. Any
// session the caller already holds (priorToken) is destroyed first, so the
// presented cookie never survives authentication. The returned token must
// be delivered to the client as the session cookie.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest, priorToken string) (*models.PublicUser, string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if username == "" {
		return nil, "", apperrors.New(apperrors.KindValidation, "Username is required")
	}
	if req.Password == "" {
		return nil, "", apperrors.New(apperrors.KindValidation, "Password is required")
	}
	if !emailRegex.MatchString(email) {
		return nil, "", apperrors.New(apperrors.KindValidation, "Invalid email")
	}

	// Conflict checks are sequential: username first, then email, so the
	// first match wins as the reported conflict
	usernameExists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if usernameExists {
		return nil, "", apperrors.New(apperrors.KindConflict, "Username already exists")
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if emailExists {
		return nil, "", apperrors.New(apperrors.KindConflict, "Email already exists")
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
	}
	if err := s.userRepo.Create(ctx, user, s.bootstrap.ComputeIsAdmin); err != nil {
		return nil, "", err
	}

	token, err := s.regenerateSession(ctx, priorToken, user)
	if err != nil {
		s.logger.Error("failed to create session after registration",
			zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.Int("signup_order", user.SignupOrder),
		zap.Bool("is_admin", user.IsAdmin),
	)

	return user.Public(), token, nil
}

// OAuthSignup logs in (or first creates) a user from an already-verified
// external identity. The provider's verification is trusted; calling twice
// with the same email logs the same user in both times. The caller's prior
// session, if any, is destroyed before the new one is issued.
func (s *authService) OAuthSignup(ctx context.Context, req *models.OAuthSignupRequest, priorToken string) (*models.PublicUser, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, "", apperrors.New(apperrors.KindValidation, "Email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !apperrors.Is(err, apperrors.KindNotFound) {
			return nil, "", err
		}
		// First sign-in with this identity: create the account with no
		// local password, so the local login path can never match it
		user = &models.User{
			Username:     deriveUsername(email),
			Email:        email,
			PasswordHash: "",
			Name:         strings.TrimSpace(req.Name),
		}
		if err := s.userRepo.Create(ctx, user, s.bootstrap.ComputeIsAdmin); err != nil {
			return nil, "", err
		}
		s.logger.Info("user created via oauth",
			zap.String("user_id", user.ID),
			zap.Int("signup_order", user.SignupOrder),
			zap.Bool("is_admin", user.IsAdmin),
		)
	}

	token, err := s.regenerateSession(ctx, priorToken, user)
	if err != nil {
		s.logger.Error("failed to create session after oauth signup",
			zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}

	return user.Public(), token, nil
}

// Login authenticates a user by email and password. Unknown email and wrong
// password produce the same error, so callers cannot probe for accounts.
// On success the caller's prior session, if any, is destroyed before the
// new one is issued, so a stale privilege snapshot cannot outlive a fresh
// authentication.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest, priorToken string) (*models.PublicUser, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", apperrors.New(apperrors.KindValidation, "Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, "", apperrors.New(apperrors.KindAuthentication, "Invalid credentials")
		}
		return nil, "", err
	}

	if !verifyPassword(req.Password, user.PasswordHash) {
		return nil, "", apperrors.New(apperrors.KindAuthentication, "Invalid credentials")
	}

	token, err := s.regenerateSession(ctx, priorToken, user)
	if err != nil {
		s.logger.Error("failed to create session after login",
			zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}

	return user.Public(), token, nil
}

// regenerateSession destroys the prior session and issues a fresh one. The
// delete must succeed before the new token is created; leaving the old
// token live would let its isAdmin snapshot outlast re-authentication.
func (s *authService) regenerateSession(ctx context.Context, priorToken string, user *models.User) (string, error) {
	if priorToken != "" {
		if err := s.store.Delete(ctx, priorToken); err != nil {
			return "", err
		}
	}
	return s.store.Create(ctx, user.ID, user.IsAdmin)
}

// Logout destroys the session for the given token. Unknown tokens are not
// an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}

// deriveUsername builds a username from the email's local part: characters
// outside [A-Za-z0-9_] become underscores and the result is capped at 20
// characters
func deriveUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	username := usernameSanitizeRegex.ReplaceAllString(local, "_")
	if len(username) > 20 {
		username = username[:20]
	}
	return username
}
