package models

import (
	"time"

	"github.com/google/uuid"
)

// Company defines the domain model for an employer entity. Companies are
// shared by postings and are never deleted by this service.
type Company struct {
	// ID is the unique identifier for the company.
	ID uuid.UUID
	// Name is the company's name, unique across the board.
	Name string
	// LogoURL is a publicly resolvable logo location; empty when no logo was uploaded.
	LogoURL string
	// CreatedAt records the timestamp when the company was created.
	CreatedAt time.Time
	// UpdatedAt records the timestamp when the company was last updated.
	UpdatedAt time.Time
}
