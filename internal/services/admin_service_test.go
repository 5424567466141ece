package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kefoundation/backend/internal/apperrors"
	"github.com/kefoundation/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminUserRepository is a mock implementation of AdminUserRepository
type mockAdminUserRepository struct {
	users           map[string]*models.User
	allUsers        []models.User
	getAllErr       error
	countAdmins     int
	countAdminsErr  error
	updateErr       error
	updateApplies   bool
	updateCalled    bool
	updatedTargetID string
}

func (m *mockAdminUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "User not found")
	}
	// Return a copy so callers observe the stored state at read time
	copied := *user
	return &copied, nil
}

func (m *mockAdminUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.allUsers, nil
}

func (m *mockAdminUserRepository) CountAdmins(ctx context.Context) (int, error) {
	if m.countAdminsErr != nil {
		return 0, m.countAdminsErr
	}
	return m.countAdmins, nil
}

func (m *mockAdminUserRepository) UpdateAdminStatus(ctx context.Context, userID string, isAdmin bool) (*models.User, error) {
	m.updateCalled = true
	m.updatedTargetID = userID
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "User not found")
	}
	if m.updateApplies {
		user.IsAdmin = isAdmin
	}
	copied := *user
	copied.IsAdmin = isAdmin
	return &copied, nil
}

// mockCounter is a mock implementation of EntityCounter and MessageCounter
type mockCounter struct {
	count       int
	countErr    error
	unreadCount int
}

func (m *mockCounter) Count(ctx context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

func (m *mockCounter) CountUnread(ctx context.Context) (int, error) {
	return m.unreadCount, nil
}

func testStatsSources() StatsSources {
	return StatsSources{
		Programs:    &mockCounter{count: 3},
		Events:      &mockCounter{count: 2},
		Resources:   &mockCounter{count: 7},
		Memberships: &mockCounter{count: 4},
		Messages:    &mockCounter{count: 10, unreadCount: 6},
	}
}

func newTestAdminService(repo *mockAdminUserRepository) *adminService {
	logger, _ := zap.NewDevelopment()
	return NewAdminService(repo, testStatsSources(), logger)
}

func TestAdminService_ListUsers(t *testing.T) {
	repo := &mockAdminUserRepository{
		allUsers: []models.User{
			{ID: "user-1", Username: "alice", PasswordHash: "secret-hash", SignupOrder: 1, IsAdmin: true},
			{ID: "user-2", Username: "bob", PasswordHash: "secret-hash", SignupOrder: 2},
		},
	}
	svc := newTestAdminService(repo)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestAdminService_Stats(t *testing.T) {
	repo := &mockAdminUserRepository{
		allUsers: []models.User{
			{ID: "user-1", Username: "u1", SignupOrder: 1, IsAdmin: true},
			{ID: "user-2", Username: "u2", SignupOrder: 2, IsAdmin: true},
			{ID: "user-3", Username: "u3", SignupOrder: 3, IsAdmin: true},
			{ID: "user-4", Username: "u4", SignupOrder: 4, IsAdmin: true},
			{ID: "user-5", Username: "u5", SignupOrder: 5},
			{ID: "user-6", Username: "u6", SignupOrder: 6},
		},
		countAdmins: 4,
	}
	svc := newTestAdminService(repo)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalUsers)
	assert.Equal(t, 4, stats.AdminCount)
	assert.Equal(t, 3, stats.ProgramCount)
	assert.Equal(t, 2, stats.EventCount)
	assert.Equal(t, 7, stats.ResourceCount)
	assert.Equal(t, 4, stats.MembershipCount)
	assert.Equal(t, 10, stats.MessageCount)
	assert.Equal(t, 6, stats.UnreadMessageCount)

	// Last five signups only
	require.Len(t, stats.RecentSignups, 5)
	assert.Equal(t, "u2", stats.RecentSignups[0].Username)
	assert.Equal(t, "u6", stats.RecentSignups[4].Username)
}

func TestAdminService_Stats_FewerThanFiveUsers(t *testing.T) {
	repo := &mockAdminUserRepository{
		allUsers: []models.User{
			{ID: "user-1", Username: "u1", SignupOrder: 1, IsAdmin: true},
			{ID: "user-2", Username: "u2", SignupOrder: 2, IsAdmin: true},
		},
		countAdmins: 2,
	}
	svc := newTestAdminService(repo)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	require.Len(t, stats.RecentSignups, 2)
}

func TestAdminService_Stats_CounterError(t *testing.T) {
	repo := &mockAdminUserRepository{countAdmins: 1}
	logger, _ := zap.NewDevelopment()
	sources := testStatsSources()
	sources.Events = &mockCounter{countErr: errors.New("table gone")}
	svc := NewAdminService(repo, sources, logger)

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
}

func TestAdminService_RemoveAdmin(t *testing.T) {
	tests := []struct {
		name          string
		actingUserID  string
		targetUserID  string
		repo          *mockAdminUserRepository
		expectedKind  apperrors.Kind
		expectedError string
		expectUpdate  bool
	}{
		{
			name:         "success",
			actingUserID: "admin-1",
			targetUserID: "admin-2",
			repo: &mockAdminUserRepository{
				users: map[string]*models.User{
					"admin-1": {ID: "admin-1", Username: "alice", IsAdmin: true},
					"admin-2": {ID: "admin-2", Username: "bob", IsAdmin: true},
				},
				updateApplies: true,
			},
			expectUpdate: true,
		},
		{
			name:         "self removal rejected",
			actingUserID: "admin-1",
			targetUserID: "admin-1",
			repo: &mockAdminUserRepository{
				users: map[string]*models.User{
					"admin-1": {ID: "admin-1", Username: "alice", IsAdmin: true},
				},
			},
			expectedKind:  apperrors.KindSelfModification,
			expectedError: "You cannot remove your own admin privileges",
		},
		{
			name:         "target not found",
			actingUserID: "admin-1",
			targetUserID: "ghost",
			repo: &mockAdminUserRepository{
				users: map[string]*models.User{
					"admin-1": {ID: "admin-1", Username: "alice", IsAdmin: true},
				},
			},
			expectedKind:  apperrors.KindNotFound,
			expectedError: "User not found",
		},
		{
			name:         "target is not an admin",
			actingUserID: "admin-1",
			targetUserID: "user-5",
			repo: &mockAdminUserRepository{
				users: map[string]*models.User{
					"admin-1": {ID: "admin-1", Username: "alice", IsAdmin: true},
					"user-5":  {ID: "user-5", Username: "erin", IsAdmin: false},
				},
			},
			expectedKind:  apperrors.KindNoOp,
			expectedError: "User is not an admin",
		},
		{
			name:         "silently dropped write is detected",
			actingUserID: "admin-1",
			targetUserID: "admin-2",
			repo: &mockAdminUserRepository{
				users: map[string]*models.User{
					"admin-1": {ID: "admin-1", Username: "alice", IsAdmin: true},
					"admin-2": {ID: "admin-2", Username: "bob", IsAdmin: true},
				},
				updateApplies: false,
			},
			expectedKind:  apperrors.KindPersistence,
			expectedError: "Failed to persist admin removal",
			expectUpdate:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAdminService(tt.repo)

			updated, err := svc.RemoveAdmin(context.Background(), tt.actingUserID, tt.targetUserID)

			assert.Equal(t, tt.expectUpdate, tt.repo.updateCalled)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.expectedKind))
				assert.Equal(t, tt.expectedError, apperrors.Message(err, ""))
				assert.Nil(t, updated)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.targetUserID, updated.ID)
			assert.False(t, updated.IsAdmin)
			assert.Equal(t, tt.targetUserID, tt.repo.updatedTargetID)
		})
	}
}

func TestAdminService_RemoveAdmin_UpdateError(t *testing.T) {
	repo := &mockAdminUserRepository{
		users: map[string]*models.User{
			"admin-1": {ID: "admin-1", IsAdmin: true},
			"admin-2": {ID: "admin-2", IsAdmin: true},
		},
		updateErr: errors.New("connection reset"),
	}
	svc := newTestAdminService(repo)

	_, err := svc.RemoveAdmin(context.Background(), "admin-1", "admin-2")
	require.Error(t, err)
	assert.NotEqual(t, apperrors.KindPersistence, apperrors.KindOf(err))
}
