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

// eventRepository implements data access for the events table
type eventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, logger *zap.Logger) *eventRepository {
	return &eventRepository{db: db, logger: logger}
}

// Create inserts a new event
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO events (id, title, description, date, location, image, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Date,
		event.Location, event.Image, event.IsActive, event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create event", zap.Error(err))
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, title, description, date, location, image, is_active, created_at
		FROM events WHERE id = ?
	`
	event := &models.Event{}
	var location, image sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.Date,
		&location, &image, &event.IsActive, &event.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.KindNotFound, "Event not found")
	}
	if err != nil {
		r.logger.Error("failed to get event", zap.Error(err))
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	event.Location = location.String
	event.Image = image.String
	return event, nil
}

// GetAll retrieves all events, most recent date first
func (r *eventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, title, description, date, location, image, is_active, created_at
		FROM events ORDER BY date DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list events", zap.Error(err))
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var location, image sql.NullString
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Date,
			&location, &image, &event.IsActive, &event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		event.Location = location.String
		event.Image = image.String
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// Update applies a partial update; nil fields are left unchanged
func (r *eventRepository) Update(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error) {
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
	if req.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *req.Date)
	}
	if req.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *req.Location)
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
		query := "UPDATE events SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("failed to update event", zap.String("event_id", id), zap.Error(err))
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an event by ID
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete event", zap.String("event_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// Count returns the number of events
func (r *eventRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
