package models

import "time"

// User is the single persisted identity record. ResetToken and
// ResetTokenExpiry are always set and cleared together; both nil means no
// reset is pending.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Session is the ephemeral authenticated context created on login. The user
// fields are denormalized at login time and not refreshed until the next
// login.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
