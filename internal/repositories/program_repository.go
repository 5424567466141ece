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

// programRepository implements data access for the programs table
type programRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *sql.DB, logger *zap.Logger) *programRepository {
	return &programRepository{db: db, logger: logger}
}

// Create inserts a new program
func (r *programRepository) Create(ctx context.Context, program *models.Program) error {
	program.ID = uuid.New().String()
	program.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO programs (id, title, description, category, image, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		program.ID, program.Title, program.Description, program.Category,
		program.Image, program.IsActive, program.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create program", zap.Error(err))
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

// GetByID retrieves a program by ID
func (r *programRepository) GetByID(ctx context.Context, id string) (*models.Program, error) {
	query := `
		SELECT id, title, description, category, image, is_active, created_at
		FROM programs WHERE id = ?
	`
	program := &models.Program{}
	var image sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&program.ID, &program.Title, &program.Description, &program.Category,
		&image, &program.IsActive, &program.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.KindNotFound, "Program not found")
	}
	if err != nil {
		r.logger.Error("failed to get program", zap.Error(err))
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	program.Image = image.String
	return program, nil
}

// GetAll retrieves all programs, newest first
func (r *programRepository) GetAll(ctx context.Context) ([]models.Program, error) {
	query := `
		SELECT id, title, description, category, image, is_active, created_at
		FROM programs ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list programs", zap.Error(err))
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var programs []models.Program
	for rows.Next() {
		var program models.Program
		var image sql.NullString
		if err := rows.Scan(
			&program.ID, &program.Title, &program.Description, &program.Category,
			&image, &program.IsActive, &program.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}
		program.Image = image.String
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate programs: %w", err)
	}
	return programs, nil
}

// Update applies a partial update; nil fields are left unchanged
func (r *programRepository) Update(ctx context.Context, id string, req *models.UpdateProgramRequest) (*models.Program, error) {
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
	if req.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Image != nil {
		sets = append(sets, "image = ?")
		args = append(args, *req.Image)
	}
	if req.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *req.IsActive)
	}
	if len(sets) > 0 {
		query := "UPDATE programs SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("failed to update program", zap.String("program_id", id), zap.Error(err))
			return nil, fmt.Errorf("failed to update program: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a program by ID
func (r *programRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete program", zap.String("program_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete program: %w", err)
	}
	return nil
}

// Count returns the number of programs
func (r *programRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM programs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count programs: %w", err)
	}
	return count, nil
}
