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

// membershipPlanRepository implements data access for the membership_plans table
type membershipPlanRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMembershipPlanRepository creates a new membership plan repository
func NewMembershipPlanRepository(db *sql.DB, logger *zap.Logger) *membershipPlanRepository {
	return &membershipPlanRepository{db: db, logger: logger}
}

// Create inserts a new membership plan
func (r *membershipPlanRepository) Create(ctx context.Context, plan *models.MembershipPlan) error {
	plan.ID = uuid.New().String()
	plan.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO membership_plans (id, name, description, price, benefits, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		plan.ID, plan.Name, plan.Description, plan.Price,
		plan.Benefits, plan.IsActive, plan.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create membership plan", zap.Error(err))
		return fmt.Errorf("failed to create membership plan: %w", err)
	}
	return nil
}

// GetByID retrieves a membership plan by ID
func (r *membershipPlanRepository) GetByID(ctx context.Context, id string) (*models.MembershipPlan, error) {
	query := `
		SELECT id, name, description, price, benefits, is_active, created_at
		FROM membership_plans WHERE id = ?
	`
	plan := &models.MembershipPlan{}
	var description, benefits sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&plan.ID, &plan.Name, &description, &plan.Price,
		&benefits, &plan.IsActive, &plan.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.KindNotFound, "Membership plan not found")
	}
	if err != nil {
		r.logger.Error("failed to get membership plan", zap.Error(err))
		return nil, fmt.Errorf("failed to get membership plan: %w", err)
	}
	plan.Description = description.String
	plan.Benefits = benefits.String
	return plan, nil
}

// GetAll retrieves all membership plans, newest first
func (r *membershipPlanRepository) GetAll(ctx context.Context) ([]models.MembershipPlan, error) {
	query := `
		SELECT id, name, description, price, benefits, is_active, created_at
		FROM membership_plans ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list membership plans", zap.Error(err))
		return nil, fmt.Errorf("failed to list membership plans: %w", err)
	}
	defer rows.Close()

	var plans []models.MembershipPlan
	for rows.Next() {
		var plan models.MembershipPlan
		var description, benefits sql.NullString
		if err := rows.Scan(
			&plan.ID, &plan.Name, &description, &plan.Price,
			&benefits, &plan.IsActive, &plan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership plan row: %w", err)
		}
		plan.Description = description.String
		plan.Benefits = benefits.String
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate membership plans: %w", err)
	}
	return plans, nil
}

// Update applies a partial update; nil fields are left unchanged
func (r *membershipPlanRepository) Update(ctx context.Context, id string, req *models.UpdateMembershipPlanRequest) (*models.MembershipPlan, error) {
	sets := []string{}
	args := []any{}
	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *req.Price)
	}
	if req.Benefits != nil {
		sets = append(sets, "benefits = ?")
		args = append(args, *req.Benefits)
	}
	if req.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *req.IsActive)
	}
	if len(sets) > 0 {
		query := "UPDATE membership_plans SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("failed to update membership plan", zap.String("plan_id", id), zap.Error(err))
			return nil, fmt.Errorf("failed to update membership plan: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a membership plan by ID
func (r *membershipPlanRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM membership_plans WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete membership plan", zap.String("plan_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete membership plan: %w", err)
	}
	return nil
}
