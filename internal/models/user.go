package models

import "time"

// User represents a user account
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Name         string    `json:"name,omitempty"`
	SignupOrder  int       `json:"signupOrder"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is a user record with the credential stripped, safe for
// client transmission. Every response path that includes a user must go
// through Public().
type PublicUser struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	SignupOrder int       `json:"signupOrder"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public returns the sanitized form of the user
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Name:        u.Name,
		SignupOrder: u.SignupOrder,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
	}
}

// RegisterRequest represents a local registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// OAuthSignupRequest represents a signup/login via an external identity
// provider. The provider has already verified the email.
type OAuthSignupRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginRequest represents a local login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminStats is the admin dashboard stats payload
type AdminStats struct {
	TotalUsers         int           `json:"totalUsers"`
	AdminCount         int           `json:"adminCount"`
	ProgramCount       int           `json:"programCount"`
	EventCount         int           `json:"eventCount"`
	ResourceCount      int           `json:"resourceCount"`
	MembershipCount    int           `json:"membershipCount"`
	MessageCount       int           `json:"messageCount"`
	UnreadMessageCount int           `json:"unreadMessageCount"`
	RecentSignups      []*PublicUser `json:"recentSignups"`
}
