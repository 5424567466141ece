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

// supportRequestRepository implements data access for the support_requests table
type supportRequestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSupportRequestRepository creates a new support request repository
func NewSupportRequestRepository(db *sql.DB, logger *zap.Logger) *supportRequestRepository {
	return &supportRequestRepository{db: db, logger: logger}
}

// Create inserts a new support request
func (r *supportRequestRepository) Create(ctx context.Context, request *models.SupportRequest) error {
	request.ID = uuid.New().String()
	request.CreatedAt = time.Now().UTC()
	if request.Status == "" {
		request.Status = models.RequestStatusPending
	}

	query := `
		INSERT INTO support_requests (id, name, email, type, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.Name, request.Email, request.Type,
		request.Description, request.Status, request.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create support request", zap.Error(err))
		return fmt.Errorf("failed to create support request: %w", err)
	}
	return nil
}

// GetByID retrieves a support request by ID
func (r *supportRequestRepository) GetByID(ctx context.Context, id string) (*models.SupportRequest, error) {
	query := `
		SELECT id, name, email, type, description, status, created_at
		FROM support_requests WHERE id = ?
	`
	req := &models.SupportRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.Name, &req.Email, &req.Type,
		&req.Description, &req.Status, &req.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.KindNotFound, "Request not found")
	}
	if err != nil {
		r.logger.Error("failed to get support request", zap.Error(err))
		return nil, fmt.Errorf("failed to get support request: %w", err)
	}
	return req, nil
}

// GetAll retrieves all support requests, newest first
func (r *supportRequestRepository) GetAll(ctx context.Context) ([]models.SupportRequest, error) {
	query := `
		SELECT id, name, email, type, description, status, created_at
		FROM support_requests ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list support requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list support requests: %w", err)
	}
	defer rows.Close()

	var requests []models.SupportRequest
	for rows.Next() {
		var req models.SupportRequest
		if err := rows.Scan(
			&req.ID, &req.Name, &req.Email, &req.Type,
			&req.Description, &req.Status, &req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan support request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate support requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus sets the status of a support request and returns the updated
// record
func (r *supportRequestRepository) UpdateStatus(ctx context.Context, id, status string) (*models.SupportRequest, error) {
	if _, err := r.db.ExecContext(ctx, `UPDATE support_requests SET status = ? WHERE id = ?`, status, id); err != nil {
		r.logger.Error("failed to update support request status", zap.String("request_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update support request status: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a support request by ID
func (r *supportRequestRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM support_requests WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete support request", zap.String("request_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete support request: %w", err)
	}
	return nil
}
