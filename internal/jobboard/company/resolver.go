// Package company maps a poster's company input to an existing or newly
// created company row. Uniqueness is enforced by the database unique index:
// creation is a single insert whose duplicate-key conflict is the
// DuplicateName signal, so there is no check-then-insert race.
package company

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository defines the storage interface the resolver needs.
type Repository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompanyLogo(ctx context.Context, id uuid.UUID, logoURL string) error
}

// LogoRemover deletes a previously stored logo object by its public URL.
type LogoRemover interface {
	Remove(ctx context.Context, url string) error
}

// Input selects the resolution mode: CreateNew inserts a company under Name,
// otherwise ID must reference an existing company. LogoURL, when set, is
// attached to the resolved company.
type Input struct {
	CreateNew bool
	Name      string
	ID        uuid.UUID
	LogoURL   string
}

// Resolver resolves company input for the job mutation workflows.
type Resolver struct {
	repo   Repository
	logos  LogoRemover
	logger *zap.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(repo Repository, logos LogoRemover, logger *zap.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logos:  logos,
		logger: logger.Named("company_resolver"),
	}
}

// Resolve returns the identifier of the company the posting should
// reference. In create mode a conflicting name fails with ErrDuplicateName
// and inserts nothing; in attach mode an unknown identifier fails closed
// with ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, in *Input) (uuid.UUID, error) {
	if in.CreateNew {
		return r.create(ctx, in)
	}
	return r.attach(ctx, in)
}

func (r *Resolver) create(ctx context.Context, in *Input) (uuid.UUID, error) {
	if in.Name == "" {
		return uuid.Nil, fmt.Errorf("%w: company name required", e.ErrInvalidInput)
	}

	created := &models.Company{
		ID:      uuid.New(),
		Name:    in.Name,
		LogoURL: in.LogoURL,
	}
	if err := r.repo.CreateCompany(ctx, created); err != nil {
		if errors.Is(err, e.ErrDuplicateName) {
			return uuid.Nil, e.ErrDuplicateName
		}
		return uuid.Nil, fmt.Errorf("failed to create company: %w", err)
	}
	r.logger.Info("Created company",
		zap.String("company_id", created.ID.String()),
		zap.String("name", created.Name),
	)
	return created.ID, nil
}

func (r *Resolver) attach(ctx context.Context, in *Input) (uuid.UUID, error) {
	if in.ID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: company ID required", e.ErrInvalidInput)
	}

	existing, err := r.repo.GetCompany(ctx, in.ID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return uuid.Nil, e.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get company: %w", err)
	}

	if in.LogoURL == "" || in.LogoURL == existing.LogoURL {
		return existing.ID, nil
	}

	if err := r.repo.UpdateCompanyLogo(ctx, existing.ID, in.LogoURL); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update company logo: %w", err)
	}
	if existing.LogoURL != "" {
		if err := r.logos.Remove(ctx, existing.LogoURL); err != nil {
			// The row already points at the new logo; losing the old
			// object only leaks storage, so log and continue.
			r.logger.Warn("Failed to remove replaced logo",
				zap.Error(err),
				zap.String("company_id", existing.ID.String()),
			)
		}
	}
	return existing.ID, nil
}
