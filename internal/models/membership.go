package models

import "time"

// Membership statuses
const (
	MembershipStatusActive   = "active"
	MembershipStatusInactive = "inactive"
)

// Membership represents a member record managed by admins
type Membership struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Organization   string    `json:"organization,omitempty"`
	MembershipType string    `json:"membershipType"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	UserID         string    `json:"userId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateMembershipRequest is the admin create-membership payload
type CreateMembershipRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Organization   string `json:"organization"`
	MembershipType string `json:"membershipType"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
	UserID         string `json:"userId"`
}

// UpdateMembershipRequest is the admin partial-update payload; nil fields
// are left unchanged
type UpdateMembershipRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Organization   *string `json:"organization"`
	MembershipType *string `json:"membershipType"`
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
}

// MembershipPlan represents a purchasable membership tier
type MembershipPlan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int       `json:"price"` // cents
	Benefits    string    `json:"benefits,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateMembershipPlanRequest is the admin create-plan payload
type CreateMembershipPlanRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Benefits    string `json:"benefits"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateMembershipPlanRequest is the admin partial-update payload; nil
// fields are left unchanged
type UpdateMembershipPlanRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Benefits    *string `json:"benefits"`
	IsActive    *bool   `json:"isActive"`
}
