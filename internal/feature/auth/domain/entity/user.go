// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user (UUID string).
	// It is generated at registration and never changes.
	ID string `gorm:"primaryKey;size:36"`

	// Name is the user's display name. It must not be empty.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored as given.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	PasswordHash string `gorm:"column:password_hash;size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
}
