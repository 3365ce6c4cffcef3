// Package models contains the persistence models for the job board,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an authenticated identity in the local users table.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255"`
	CreatedAt    time.Time
}

// Company represents an employer entity in the database. Name uniqueness is
// enforced by the database index, not an application-level pre-check, so a
// conflicting insert is reported atomically as a duplicated key.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;uniqueIndex;not null"`
	LogoURL   string    `gorm:"size:1024"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Job represents a job posting in the database. Deletes are hard deletes;
// there is no tombstone column.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text;not null"`
	Location    string    `gorm:"size:255;not null"`
	Type        string    `gorm:"size:32;not null"`
	Status      string    `gorm:"size:16;not null;default:active;index"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Company     Company
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}
