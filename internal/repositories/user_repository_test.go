package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kefoundation/backend/internal/apperrors"
	"github.com/kefoundation/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, _ := zap.NewDevelopment()
	repo := NewUserRepository(db, logger)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func userRows(users ...*models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "name",
		"signup_order", "is_admin", "created_at",
	})
	for _, u := range users {
		rows.AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.Name,
			u.SignupOrder, u.IsAdmin, u.CreatedAt)
	}
	return rows
}

func neverAdmin(int) bool  { return false }
func firstFour(o int) bool { return o <= 4 }

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name            string
		existingCount   int
		isAdminForOrder func(int) bool
		setupMock       func(sqlmock.Sqlmock)
		expectedError   bool
		expectedOrder   int
		expectedAdmin   bool
	}{
		{
			name:            "first user gets order 1 and admin",
			existingCount:   0,
			isAdminForOrder: firstFour,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users FOR UPDATE`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectExec(`INSERT INTO users`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			expectedOrder: 1,
			expectedAdmin: true,
		},
		{
			name:            "fifth user gets order 5 and no admin",
			existingCount:   4,
			isAdminForOrder: firstFour,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users FOR UPDATE`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
				mock.ExpectExec(`INSERT INTO users`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			expectedOrder: 5,
			expectedAdmin: false,
		},
		{
			name:            "count query error rolls back",
			isAdminForOrder: neverAdmin,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users FOR UPDATE`).
					WillReturnError(errors.New("lock wait timeout"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
		{
			name:            "insert error rolls back",
			isAdminForOrder: neverAdmin,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users FOR UPDATE`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
				mock.ExpectExec(`INSERT INTO users`).
					WillReturnError(errors.New("duplicate entry"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user := &models.User{
				Username:     "testuser",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
			}
			err := repo.Create(context.Background(), user, tt.isAdminForOrder)

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, user.ID)
				assert.Equal(t, tt.expectedOrder, user.SignupOrder)
				assert.Equal(t, tt.expectedAdmin, user.IsAdmin)
				assert.False(t, user.CreatedAt.IsZero())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	stored := &models.User{
		ID:          "user-1",
		Username:    "alice",
		Email:       "alice@example.com",
		SignupOrder: 1,
		IsAdmin:     true,
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \?`).
		WithArgs("user-1").
		WillReturnRows(userRows(stored))

	user, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsAdmin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \?`).
		WithArgs("ghost").
		WillReturnRows(userRows())

	user, err := repo.GetByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	stored := &models.User{
		ID:          "user-2",
		Username:    "bob",
		Email:       "bob@example.com",
		SignupOrder: 2,
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \?`).
		WithArgs("bob@example.com").
		WillReturnRows(userRows(stored))

	user, err := repo.GetByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-2", user.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	tests := []struct {
		name     string
		exists   bool
		mockErr  error
		expected bool
		wantErr  bool
	}{
		{name: "exists", exists: true, expected: true},
		{name: "does not exist", exists: false, expected: false},
		{name: "database error", mockErr: errors.New("connection lost"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			expect := mock.ExpectQuery(`SELECT EXISTS\(SELECT \* FROM users WHERE email = \?\)`).
				WithArgs("test@example.com")
			if tt.mockErr != nil {
				expect.WillReturnError(tt.mockErr)
			} else {
				expect.WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))
			}

			exists, err := repo.ExistsByEmail(context.Background(), "test@example.com")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, exists)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetAll(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY signup_order`).
		WillReturnRows(userRows(
			&models.User{ID: "user-1", Username: "alice", Email: "a@example.com", SignupOrder: 1, IsAdmin: true, CreatedAt: now},
			&models.User{ID: "user-2", Username: "bob", Email: "b@example.com", SignupOrder: 2, CreatedAt: now},
		))

	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, 2, users[1].SignupOrder)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CountAdmins(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE is_admin = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountAdmins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateAdminStatus(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users SET is_admin = \? WHERE id = \?`).
		WithArgs(false, "user-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated := &models.User{
		ID:          "user-2",
		Username:    "bob",
		Email:       "bob@example.com",
		SignupOrder: 2,
		IsAdmin:     false,
		CreatedAt:   time.Now().UTC(),
	}
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \?`).
		WithArgs("user-2").
		WillReturnRows(userRows(updated))

	user, err := repo.UpdateAdminStatus(context.Background(), "user-2", false)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateAdminStatus_ExecError(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users SET is_admin = \? WHERE id = \?`).
		WithArgs(false, "user-2").
		WillReturnError(errors.New("connection reset"))

	user, err := repo.UpdateAdminStatus(context.Background(), "user-2", false)
	require.Error(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}
