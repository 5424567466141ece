package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kefoundation/backend/internal/apperrors"
	"github.com/kefoundation/backend/internal/models"
	"go.uber.org/zap"
)

// membershipRepository implements data access for the memberships table
type membershipRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *sql.DB, logger *zap.Logger) *membershipRepository {
	return &membershipRepository{db: db, logger: logger}
}

// Create inserts a new membership
func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	membership.ID = uuid.New().String()
	membership.CreatedAt = time.Now().UTC()
	if membership.Status == "" {
		membership.Status = models.MembershipStatusActive
	}

	query := `
		INSERT INTO memberships (id, name, email, phone, organization, membership_type, status, notes, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var userID any
	if membership.UserID != "" {
		userID = membership.UserID
	}
	_, err := r.db.ExecContext(ctx, query,
		membership.ID, membership.Name, membership.Email, membership.Phone,
		membership.Organization, membership.MembershipType, membership.Status,
		membership.Notes, userID, membership.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create membership", zap.Error(err))
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// GetByID retrieves a membership by ID
func (r *membershipRepository) GetByID(ctx context.Context, id string) (*models.Membership, error) {
	query := `
		SELECT id, name, email, phone, organization, membership_type, status, notes, user_id, created_at
		FROM memberships WHERE id = ?
	`
	m := &models.Membership{}
	var phone, organization, notes, userID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Email, &phone, &organization,
		&m.MembershipType, &m.Status, &notes, &userID, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.KindNotFound, "Membership not found")
	}
	if err != nil {
		r.logger.Error("failed to get membership", zap.Error(err))
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	m.Phone = phone.String
	m.Organization = organization.String
	m.Notes = notes.String
	m.UserID = userID.String
	return m, nil
}

// GetAll retrieves all memberships, newest first
func (r *membershipRepository) GetAll(ctx context.Context) ([]models.Membership, error) {
	query := `
		SELECT id, name, email, phone, organization, membership_type, status, notes, user_id, created_at
		FROM memberships ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list memberships", zap.Error(err))
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		var phone, organization, notes, userID sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &phone, &organization,
			&m.MembershipType, &m.Status, &notes, &userID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		m.Phone = phone.String
		m.Organization = organization.String
		m.Notes = notes.String
		m.UserID = userID.String
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return memberships, nil
}

// Update applies a partial update; nil fields are left unchanged
func (r *membershipRepository) Update(ctx context.Context, id string, req *models.UpdateMembershipRequest) (*models.Membership, error) {
	sets := []string{}
	args := []any{}
	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *req.Phone)
	}
	if req.Organization != nil {
		sets = append(sets, "organization = ?")
		args = append(args, *req.Organization)
	}
	if req.MembershipType != nil {
		sets = append(sets, "membership_type = ?")
		args = append(args, *req.MembershipType)
	}
	if req.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *req.Status)
	}
	if req.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *req.Notes)
	}
	if len(sets) > 0 {
		query := "UPDATE memberships SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("failed to update membership", zap.String("membership_id", id), zap.Error(err))
			return nil, fmt.Errorf("failed to update membership: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a membership by ID
func (r *membershipRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM memberships WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete membership", zap.String("membership_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}

// Count returns the number of memberships
func (r *membershipRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memberships`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}
	return count, nil
}
