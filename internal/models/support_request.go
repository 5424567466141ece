package models

import "time"

// Support request statuses
const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "in_progress"
	RequestStatusResolved   = "resolved"
)

// SupportRequest represents an application or support request submitted
// through the public site (startup support, partnership, etc.)
type SupportRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateSupportRequestRequest is the public request form payload
type CreateSupportRequestRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// UpdateRequestStatusRequest updates the status of a support request
type UpdateRequestStatusRequest struct {
	Status string `json:"status"`
}
