package models

import "time"

// Program represents a foundation program shown on the marketing site
type Program struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateProgramRequest is the admin create-program payload
type CreateProgramRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateProgramRequest is the admin partial-update payload; nil fields are
// left unchanged
type UpdateProgramRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"isActive"`
}
