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

// resourceRepository implements data access for the resources table
type resourceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *sql.DB, logger *zap.Logger) *resourceRepository {
	return &resourceRepository{db: db, logger: logger}
}

// Create inserts a new resource
func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	resource.ID = uuid.New().String()
	resource.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO resources (id, title, description, type, link, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		resource.ID, resource.Title, resource.Description, resource.Type,
		resource.Link, resource.IsActive, resource.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create resource", zap.Error(err))
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

// GetByID retrieves a resource by ID
func (r *resourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	query := `
		SELECT id, title, description, type, link, is_active, created_at
		FROM resources WHERE id = ?
	`
	resource := &models.Resource{}
	var description, link sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&resource.ID, &resource.Title, &description, &resource.Type,
		&link, &resource.IsActive, &resource.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.KindNotFound, "Resource not found")
	}
	if err != nil {
		r.logger.Error("failed to get resource", zap.Error(err))
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	resource.Description = description.String
	resource.Link = link.String
	return resource, nil
}

// GetAll retrieves all resources, newest first
func (r *resourceRepository) GetAll(ctx context.Context) ([]models.Resource, error) {
	query := `
		SELECT id, title, description, type, link, is_active, created_at
		FROM resources ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list resources", zap.Error(err))
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var resource models.Resource
		var description, link sql.NullString
		if err := rows.Scan(
			&resource.ID, &resource.Title, &description, &resource.Type,
			&link, &resource.IsActive, &resource.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resource.Description = description.String
		resource.Link = link.String
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resources: %w", err)
	}
	return resources, nil
}

// Update applies a partial update; nil fields are left unchanged
func (r *resourceRepository) Update(ctx context.Context, id string, req *models.UpdateResourceRequest) (*models.Resource, error) {
	sets := []string{}
	args := []any{}
	if req.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *req.Type)
	}
	if req.Link != nil {
		sets = append(sets, "link = ?")
		args = append(args, *req.Link)
	}
	if req.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *req.IsActive)
	}
	if len(sets) > 0 {
		query := "UPDATE resources SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("failed to update resource", zap.String("resource_id", id), zap.Error(err))
			return nil, fmt.Errorf("failed to update resource: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a resource by ID
func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete resource", zap.String("resource_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

// Count returns the number of resources
func (r *resourceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	return count, nil
}
