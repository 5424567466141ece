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

// contactMessageRepository implements data access for the contact_messages table
type contactMessageRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *sql.DB, logger *zap.Logger) *contactMessageRepository {
	return &contactMessageRepository{db: db, logger: logger}
}

// Create inserts a new contact message
func (r *contactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	message.ID = uuid.New().String()
	message.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.Name, message.Email, message.Subject,
		message.Message, message.IsRead, message.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create contact message", zap.Error(err))
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// GetByID retrieves a contact message by ID
func (r *contactMessageRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, is_read, created_at
		FROM contact_messages WHERE id = ?
	`
	m := &models.ContactMessage{}
	var subject sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Email, &subject, &m.Message, &m.IsRead, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.KindNotFound, "Message not found")
	}
	if err != nil {
		r.logger.Error("failed to get contact message", zap.Error(err))
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}
	m.Subject = subject.String
	return m, nil
}

// GetAll retrieves all contact messages, newest first
func (r *contactMessageRepository) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, is_read, created_at
		FROM contact_messages ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list contact messages", zap.Error(err))
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		var subject sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &subject, &m.Message, &m.IsRead, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact message row: %w", err)
		}
		m.Subject = subject.String
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact messages: %w", err)
	}
	return messages, nil
}

// MarkAsRead flags a message as read and returns the updated record
func (r *contactMessageRepository) MarkAsRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	if _, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = TRUE WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to mark message as read", zap.String("message_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to mark message as read: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a contact message by ID
func (r *contactMessageRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete contact message", zap.String("message_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	return nil
}

// Count returns the number of contact messages
func (r *contactMessageRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	return count, nil
}

// CountUnread returns the number of unread contact messages
func (r *contactMessageRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread contact messages: %w", err)
	}
	return count, nil
}
