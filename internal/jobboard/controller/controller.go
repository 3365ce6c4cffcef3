// Package controller implements the core business logic (service layer) for
// job postings: create, update, delete and status toggling with ownership
// enforcement, plus the paginated active listing. Every mutation takes an
// explicit Actor and produces view-invalidation events on success.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	"github.com/gartstein/jobboard/internal/jobboard/company"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gartstein/jobboard/internal/jobboard/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PageSize is the fixed listing page size.
const PageSize = 10

type EventProducer interface {
	Produce(eventType events.EventType, paths []string, entityID uuid.UUID)
}

// CompanyResolver maps company input to an existing or new company row.
type CompanyResolver interface {
	Resolve(ctx context.Context, in *company.Input) (uuid.UUID, error)
}

// Repository defines the storage interface for job postings.
type Repository interface {
	EnsureUser(ctx context.Context, id uuid.UUID, email string) error
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	UpdateJob(ctx context.Context, update *models.JobUpdate) error
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
	ListActiveJobs(ctx context.Context, page, pageSize int) ([]*models.Job, int64, error)
}

// JobInput carries the validated form fields for create and update.
type JobInput struct {
	validation.JobForm
	Company validation.CompanyChoice
	// LogoURL is the public URL of a freshly uploaded logo, when one was
	// provided with the form.
	LogoURL string
}

// JobPage is one page of the active listing.
type JobPage struct {
	Jobs       []*models.Job
	Page       int
	Total      int64
	TotalPages int
}

// JobService provides the job mutation workflows and the listing.
type JobService struct {
	repo     Repository
	resolver CompanyResolver
	producer EventProducer
	logger   *zap.Logger
}

// NewJobService constructs a JobService.
func NewJobService(repo Repository, resolver CompanyResolver, producer EventProducer, logger *zap.Logger) *JobService {
	return &JobService{
		repo:     repo,
		resolver: resolver,
		producer: producer,
		logger:   logger.Named("job_service"),
	}
}

// CreateJob validates the form, resolves the company and inserts the
// posting. Validation failures are field-keyed and never reach persistence.
func (s *JobService) CreateJob(ctx context.Context, actor auth.Actor, in *JobInput) (*models.Job, error) {
	if actor.ID == uuid.Nil {
		return nil, e.ErrUnauthenticated
	}

	v := e.NewValidation()
	validation.Job(v, in.JobForm)
	validation.Company(v, in.Company)
	if !v.Empty() {
		return nil, v
	}

	// The local profile row mirrors the authenticated identity lazily.
	if err := s.repo.EnsureUser(ctx, actor.ID, actor.Email); err != nil {
		return nil, fmt.Errorf("failed to ensure user profile: %w", err)
	}

	companyID, err := s.resolver.Resolve(ctx, &company.Input{
		CreateNew: in.Company.New,
		Name:      in.Company.Name,
		ID:        in.Company.ID,
		LogoURL:   in.LogoURL,
	})
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Type:        in.Type,
		Status:      models.StatusActive,
		CompanyID:   companyID,
		UserID:      actor.ID,
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.invalidate(events.JobCreated, job.ID)
	return job, nil
}

// UpdateJob applies the form fields to an existing posting after verifying
// ownership. A fresh logo URL replaces the referenced company's logo.
func (s *JobService) UpdateJob(ctx context.Context, actor auth.Actor, id uuid.UUID, in *JobInput) (*models.Job, error) {
	job, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	v := e.NewValidation()
	validation.Job(v, in.JobForm)
	if !v.Empty() {
		return nil, v
	}

	update := &models.JobUpdate{
		ID:          id,
		Title:       &in.Title,
		Description: &in.Description,
		Location:    &in.Location,
		Type:        &in.Type,
	}
	if err := s.repo.UpdateJob(ctx, update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	if in.LogoURL != "" {
		if _, err := s.resolver.Resolve(ctx, &company.Input{
			ID:      job.CompanyID,
			LogoURL: in.LogoURL,
		}); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.GetJob(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get job after update",
			zap.Error(err),
			zap.String("job_id", id.String()),
		)
		return nil, err
	}

	s.invalidate(events.JobUpdated, id)
	return updated, nil
}

// DeleteJob hard-deletes a posting after verifying ownership.
func (s *JobService) DeleteJob(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.invalidate(events.JobDeleted, id)
	return nil
}

// ToggleStatus flips a posting between active and inactive, writing only the
// status column. Toggling twice restores the original status.
func (s *JobService) ToggleStatus(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Job, error) {
	job, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	next := job.Status.Toggle()
	if err := s.repo.UpdateJobStatus(ctx, id, next); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle job status: %w", err)
	}
	job.Status = next

	s.invalidate(events.JobUpdated, id)
	return job, nil
}

// GetJob fetches a single posting; no authentication required.
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs returns one page of active postings, newest first, with total
// count and page count. Pages are 1-based; out-of-range pages clamp to 1.
func (s *JobService) ListJobs(ctx context.Context, page int) (*JobPage, error) {
	if page < 1 {
		page = 1
	}

	jobs, total, err := s.repo.ListActiveJobs(ctx, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return &JobPage{
		Jobs:       jobs,
		Page:       page,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// authorize fetches the posting and verifies the actor owns it.
func (s *JobService) authorize(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Job, error) {
	if actor.ID == uuid.Nil {
		return nil, e.ErrUnauthenticated
	}

	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.UserID != actor.ID {
		return nil, e.ErrForbidden
	}
	return job, nil
}

func (s *JobService) invalidate(eventType events.EventType, jobID uuid.UUID) {
	paths := []string{"/jobs", "/jobs/" + jobID.String(), "/dashboard"}
	go func() {
		s.producer.Produce(eventType, paths, jobID)
	}()
}
