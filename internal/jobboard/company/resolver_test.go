package company

import (
	"context"
	"errors"
	"testing"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockRepository implements the Repository interface for testing.
type MockRepository struct {
	createCompany     func(context.Context, *models.Company) error
	getCompany        func(context.Context, uuid.UUID) (*models.Company, error)
	updateCompanyLogo func(context.Context, uuid.UUID, string) error
}

func (m *MockRepository) CreateCompany(ctx context.Context, c *models.Company) error {
	return m.createCompany(ctx, c)
}

func (m *MockRepository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return m.getCompany(ctx, id)
}

func (m *MockRepository) UpdateCompanyLogo(ctx context.Context, id uuid.UUID, url string) error {
	return m.updateCompanyLogo(ctx, id, url)
}

// MockRemover records removed logo URLs.
type MockRemover struct {
	removed []string
	err     error
}

func (m *MockRemover) Remove(_ context.Context, url string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, url)
	return nil
}

func TestResolveCreateMode(t *testing.T) {
	var created *models.Company
	repo := &MockRepository{
		createCompany: func(_ context.Context, c *models.Company) error {
			created = c
			return nil
		},
	}
	r := NewResolver(repo, &MockRemover{}, zaptest.NewLogger(t))

	id, err := r.Resolve(context.Background(), &Input{
		CreateNew: true,
		Name:      "Acme",
		LogoURL:   "http://cdn/company-logos/a.png",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created.ID, id)
	assert.Equal(t, "Acme", created.Name)
	assert.Equal(t, "http://cdn/company-logos/a.png", created.LogoURL)
}

func TestResolveCreateDuplicateName(t *testing.T) {
	repo := &MockRepository{
		createCompany: func(context.Context, *models.Company) error {
			return e.ErrDuplicateName
		},
	}
	r := NewResolver(repo, &MockRemover{}, zaptest.NewLogger(t))

	_, err := r.Resolve(context.Background(), &Input{CreateNew: true, Name: "Acme"})
	assert.ErrorIs(t, err, e.ErrDuplicateName)
}

func TestResolveCreateMissingName(t *testing.T) {
	repo := &MockRepository{
		createCompany: func(context.Context, *models.Company) error {
			t.Fatal("repository must not be touched without a name")
			return nil
		},
	}
	r := NewResolver(repo, &MockRemover{}, zaptest.NewLogger(t))

	_, err := r.Resolve(context.Background(), &Input{CreateNew: true})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestResolveAttachMode(t *testing.T) {
	existingID := uuid.New()
	repo := &MockRepository{
		getCompany: func(_ context.Context, id uuid.UUID) (*models.Company, error) {
			assert.Equal(t, existingID, id)
			return &models.Company{ID: existingID, Name: "Acme"}, nil
		},
	}
	r := NewResolver(repo, &MockRemover{}, zaptest.NewLogger(t))

	id, err := r.Resolve(context.Background(), &Input{ID: existingID})
	require.NoError(t, err)
	assert.Equal(t, existingID, id)
}

func TestResolveAttachUnknownIDFailsClosed(t *testing.T) {
	repo := &MockRepository{
		getCompany: func(context.Context, uuid.UUID) (*models.Company, error) {
			return nil, e.ErrNotFound
		},
	}
	r := NewResolver(repo, &MockRemover{}, zaptest.NewLogger(t))

	_, err := r.Resolve(context.Background(), &Input{ID: uuid.New()})
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestResolveAttachReplacesLogoAndRemovesOldObject(t *testing.T) {
	existingID := uuid.New()
	var updatedURL string
	repo := &MockRepository{
		getCompany: func(context.Context, uuid.UUID) (*models.Company, error) {
			return &models.Company{
				ID:      existingID,
				Name:    "Acme",
				LogoURL: "http://cdn/company-logos/old.png",
			}, nil
		},
		updateCompanyLogo: func(_ context.Context, _ uuid.UUID, url string) error {
			updatedURL = url
			return nil
		},
	}
	remover := &MockRemover{}
	r := NewResolver(repo, remover, zaptest.NewLogger(t))

	id, err := r.Resolve(context.Background(), &Input{
		ID:      existingID,
		LogoURL: "http://cdn/company-logos/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, existingID, id)
	assert.Equal(t, "http://cdn/company-logos/new.png", updatedURL)
	assert.Equal(t, []string{"http://cdn/company-logos/old.png"}, remover.removed,
		"the replaced logo object must be cleaned up")
}

func TestResolveAttachFirstLogoHasNothingToRemove(t *testing.T) {
	existingID := uuid.New()
	repo := &MockRepository{
		getCompany: func(context.Context, uuid.UUID) (*models.Company, error) {
			return &models.Company{ID: existingID, Name: "Acme"}, nil
		},
		updateCompanyLogo: func(context.Context, uuid.UUID, string) error {
			return nil
		},
	}
	remover := &MockRemover{}
	r := NewResolver(repo, remover, zaptest.NewLogger(t))

	_, err := r.Resolve(context.Background(), &Input{
		ID:      existingID,
		LogoURL: "http://cdn/company-logos/first.png",
	})
	require.NoError(t, err)
	assert.Empty(t, remover.removed)
}

func TestResolveAttachRemoveFailureIsNonFatal(t *testing.T) {
	existingID := uuid.New()
	repo := &MockRepository{
		getCompany: func(context.Context, uuid.UUID) (*models.Company, error) {
			return &models.Company{
				ID:      existingID,
				LogoURL: "http://cdn/company-logos/old.png",
			}, nil
		},
		updateCompanyLogo: func(context.Context, uuid.UUID, string) error {
			return nil
		},
	}
	remover := &MockRemover{err: errors.New("store down")}
	r := NewResolver(repo, remover, zaptest.NewLogger(t))

	id, err := r.Resolve(context.Background(), &Input{
		ID:      existingID,
		LogoURL: "http://cdn/company-logos/new.png",
	})
	assert.NoError(t, err, "a failed cleanup must not fail the resolution")
	assert.Equal(t, existingID, id)
}

func TestResolveAttachMissingID(t *testing.T) {
	r := NewResolver(&MockRepository{}, &MockRemover{}, zaptest.NewLogger(t))

	_, err := r.Resolve(context.Background(), &Input{})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}
