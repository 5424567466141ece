package services

import (
	"context"

	"github.com/kefoundation/backend/internal/apperrors"
	"github.com/kefoundation/backend/internal/models"
	"go.uber.org/zap"
)

// AdminUserRepository is the interface that wraps methods for users table
// data access needed by the admin service
type AdminUserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// GetAll retrieves all users ordered by signup order
	GetAll(ctx context.Context) ([]models.User, error)
	// CountAdmins returns the number of users with the admin flag set
	CountAdmins(ctx context.Context) (int, error)
	// UpdateAdminStatus sets the admin flag and returns the updated record
	UpdateAdminStatus(ctx context.Context, userID string, isAdmin bool) (*models.User, error)
}

// EntityCounter counts rows of a content entity for the stats endpoint
type EntityCounter interface {
	Count(ctx context.Context) (int, error)
}

// MessageCounter counts contact messages, total and unread
type MessageCounter interface {
	EntityCounter
	CountUnread(ctx context.Context) (int, error)
}

// StatsSources groups the counters feeding the admin stats payload
type StatsSources struct {
	Programs    EntityCounter
	Events      EntityCounter
	Resources   EntityCounter
	Memberships EntityCounter
	Messages    MessageCounter
}

// adminService implements the admin business logic
type adminService struct {
	userRepo AdminUserRepository
	stats    StatsSources
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo AdminUserRepository, stats StatsSources, logger *zap.Logger) *adminService {
	return &adminService{
		userRepo: userRepo,
		stats:    stats,
		logger:   logger,
	}
}

// ListUsers returns all users, sanitized
func (s *adminService) ListUsers(ctx context.Context) ([]*models.PublicUser, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]*models.PublicUser, len(users))
	for i := range users {
		public[i] = users[i].Public()
	}
	return public, nil
}

// Stats assembles the admin dashboard stats
func (s *adminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	adminCount, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.AdminStats{
		TotalUsers: len(users),
		AdminCount: adminCount,
	}

	if stats.ProgramCount, err = s.stats.Programs.Count(ctx); err != nil {
		return nil, err
	}
	if stats.EventCount, err = s.stats.Events.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ResourceCount, err = s.stats.Resources.Count(ctx); err != nil {
		return nil, err
	}
	if stats.MembershipCount, err = s.stats.Memberships.Count(ctx); err != nil {
		return nil, err
	}
	if stats.MessageCount, err = s.stats.Messages.Count(ctx); err != nil {
		return nil, err
	}
	if stats.UnreadMessageCount, err = s.stats.Messages.CountUnread(ctx); err != nil {
		return nil, err
	}

	// Last five signups, sanitized
	start := len(users) - 5
	if start < 0 {
		start = 0
	}
	recent := users[start:]
	stats.RecentSignups = make([]*models.PublicUser, len(recent))
	for i := range recent {
		stats.RecentSignups[i] = recent[i].Public()
	}

	return stats, nil
}

// RemoveAdmin revokes admin privileges from the target user. Admins cannot
// revoke their own access. The write is verified with a re-read because a
// silently dropped update here would leave a revoked admin with privileges
// indefinitely.
//
// The target's live sessions are deliberately left untouched: their isAdmin
// snapshot stays true until they log in again or the session expires.
func (s *adminService) RemoveAdmin(ctx context.Context, actingUserID, targetUserID string) (*models.PublicUser, error) {
	s.logger.Info("admin removal requested",
		zap.String("acting_user_id", actingUserID),
		zap.String("target_user_id", targetUserID),
	)

	if targetUserID == actingUserID {
		s.logger.Warn("admin tried to remove their own privileges",
			zap.String("user_id", actingUserID))
		return nil, apperrors.New(apperrors.KindSelfModification, "You cannot remove your own admin privileges")
	}

	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	if !target.IsAdmin {
		return nil, apperrors.New(apperrors.KindNoOp, "User is not an admin")
	}

	updated, err := s.userRepo.UpdateAdminStatus(ctx, targetUserID, false)
	if err != nil {
		return nil, err
	}

	// Verify the change persisted
	verify, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if verify.IsAdmin {
		s.logger.Error("admin removal did not persist",
			zap.String("acting_user_id", actingUserID),
			zap.String("target_user_id", targetUserID),
		)
		return nil, apperrors.New(apperrors.KindPersistence, "Failed to persist admin removal")
	}

	s.logger.Info("admin privileges removed",
		zap.String("acting_user_id", actingUserID),
		zap.String("target_user_id", targetUserID),
	)

	return updated.Public(), nil
}
