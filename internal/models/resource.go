package models

import "time"

// Resource represents a downloadable or linked resource
type Resource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Link        string    `json:"link,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateResourceRequest is the admin create-resource payload
type CreateResourceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Link        string `json:"link"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateResourceRequest is the admin partial-update payload; nil fields are
// left unchanged
type UpdateResourceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Link        *string `json:"link"`
	IsActive    *bool   `json:"isActive"`
}
