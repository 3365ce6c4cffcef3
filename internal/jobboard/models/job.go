// Package models defines the core domain models for the job board:
// Job, Company and User, along with the JobType and JobStatus enumerations.
package models

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the employment type of a posting.
type JobType string

const (
	FullTime   JobType = "Full-Time"
	PartTime   JobType = "Part-Time"
	Contract   JobType = "Contract"
	Internship JobType = "Internship"
	Freelance  JobType = "Freelance"
)

// JobTypes lists every accepted employment type.
var JobTypes = []JobType{FullTime, PartTime, Contract, Internship, Freelance}

// Valid reports whether t is one of the accepted employment types.
func (t JobType) Valid() bool {
	for _, known := range JobTypes {
		if t == known {
			return true
		}
	}
	return false
}

// JobStatus represents the publication state of a posting.
type JobStatus string

const (
	StatusActive   JobStatus = "active"
	StatusInactive JobStatus = "inactive"
)

// Toggle returns the opposite publication state.
func (s JobStatus) Toggle() JobStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// Job defines the domain model for a job posting.
type Job struct {
	// ID is the unique identifier for the posting.
	ID uuid.UUID
	// Title is the role title.
	Title string
	// Description is the full posting body.
	Description string
	// Location is a free-form location string.
	Location string
	// Type is the employment type.
	Type JobType
	// Status is active or inactive; only active postings are listed.
	Status JobStatus
	// CompanyID references the company the posting belongs to.
	CompanyID uuid.UUID
	// CompanyName mirrors the referenced company's name for display and filtering.
	CompanyName string
	// CompanyLogoURL mirrors the referenced company's logo URL.
	CompanyLogoURL string
	// UserID references the owner who created the posting.
	UserID uuid.UUID
	// CreatedAt records the timestamp when the posting was created.
	CreatedAt time.Time
	// UpdatedAt records the timestamp when the posting was last updated.
	UpdatedAt time.Time
}

// JobUpdate represents the fields that can be updated for a Job.
// Pointer types are used to allow partial updates.
type JobUpdate struct {
	// ID is the unique identifier for the posting to update.
	ID uuid.UUID
	// Title is the new role title.
	Title *string
	// Description is the new posting body.
	Description *string
	// Location is the new location string.
	Location *string
	// Type is the new employment type.
	Type *JobType
	// Status is the new publication state.
	Status *JobStatus
}
