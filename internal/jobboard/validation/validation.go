// Package validation holds the pure field validators for job-posting forms
// and credentials. Validators append field-keyed messages to a shared
// errors.Validation so a workflow can collect every failure in one pass.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
)

// MinDescriptionLen is the minimum accepted job description length.
const MinDescriptionLen = 50

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// JobForm carries the user-editable fields of a posting form.
type JobForm struct {
	Title       string
	Description string
	Location    string
	Type        models.JobType
}

// CompanyChoice carries the company selection of a posting form: either a
// new company name or an existing company identifier.
type CompanyChoice struct {
	// New indicates the poster typed a new company name instead of
	// selecting an existing company.
	New  bool
	Name string
	ID   uuid.UUID
}

// Job validates the posting fields, appending failures to v.
func Job(v *e.Validation, f JobForm) {
	if strings.TrimSpace(f.Title) == "" {
		v.Add("title", "title is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		v.Add("description", "description is required")
	} else if len(f.Description) < MinDescriptionLen {
		v.Add("description", fmt.Sprintf("description must be at least %d characters", MinDescriptionLen))
	}
	if strings.TrimSpace(f.Location) == "" {
		v.Add("location", "location is required")
	}
	if !f.Type.Valid() {
		v.Add("type", "unknown job type")
	}
}

// Company validates the company selection, appending failures to v.
func Company(v *e.Validation, c CompanyChoice) {
	if c.New {
		if strings.TrimSpace(c.Name) == "" {
			v.Add("company", "company name is required")
		}
		return
	}
	if c.ID == uuid.Nil {
		v.Add("company", "company selection is required")
	}
}

// Email reports whether s looks like a well-formed email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Credentials validates sign-up input, appending failures to v.
func Credentials(v *e.Validation, email, password string) {
	if !Email(email) {
		v.Add("email", "invalid email address")
	}
	if len(password) < MinPasswordLen {
		v.Add("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLen))
	}
}
