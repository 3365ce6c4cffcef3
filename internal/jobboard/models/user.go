package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the local profile record mirroring an authenticated identity.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID
	// Email is the sign-in address, unique across users.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
	// CreatedAt records the timestamp when the profile was created.
	CreatedAt time.Time
}
