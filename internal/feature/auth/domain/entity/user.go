// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the system.
// It contains authentication credentials and the administrator flag
// used for access control decisions.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null" json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords and is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// IsAdmin marks the user as an administrator.
	// Only administrators may reach the user management endpoints.
	IsAdmin bool `gorm:"not null;default:false" json:"is_admin"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}
