// Package db implements the GORM-backed repository for users, companies and
// job postings. Postgres is used in production; tests run against in-memory
// SQLite. TranslateError is enabled so unique-key conflicts surface as
// gorm.ErrDuplicatedKey on both drivers.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	dbmodels "github.com/gartstein/jobboard/internal/jobboard/db/models"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		return err
	}
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)
	if err := backoff.Retry(connect, policy); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&dbmodels.User{}, &dbmodels.Company{}, &dbmodels.Job{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// EnsureUser lazily creates the local profile row for an authenticated
// identity if it does not exist yet.
func (r *Repository) EnsureUser(ctx context.Context, id uuid.UUID, email string) error {
	user := dbmodels.User{ID: id, Email: email}
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		FirstOrCreate(&user)
	return result.Error
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	row := dbmodels.User{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicateName
		}
		return result.Error
	}
	user.CreatedAt = row.CreatedAt
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var row dbmodels.User
	result := r.db.WithContext(ctx).First(&row, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &models.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	row := dbmodels.Company{
		ID:      company.ID,
		Name:    company.Name,
		LogoURL: company.LogoURL,
	}
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicateName
		}
		return result.Error
	}
	company.CreatedAt = row.CreatedAt
	company.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var row dbmodels.Company
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return toCompany(&row), nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	var rows []dbmodels.Company
	result := r.db.WithContext(ctx).Order("name asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	companies := make([]*models.Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, toCompany(&rows[i]))
	}
	return companies, nil
}

func (r *Repository) UpdateCompanyLogo(ctx context.Context, id uuid.UUID, logoURL string) error {
	result := r.db.WithContext(ctx).Model(&dbmodels.Company{}).
		Where("id = ?", id).
		Update("logo_url", logoURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	row := dbmodels.Job{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Type:        string(job.Type),
		Status:      string(job.Status),
		CompanyID:   job.CompanyID,
		UserID:      job.UserID,
	}
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return result.Error
	}
	job.CreatedAt = row.CreatedAt
	job.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var row dbmodels.Job
	result := r.db.WithContext(ctx).Preload("Company").First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return toJob(&row), nil
}

func (r *Repository) UpdateJob(ctx context.Context, update *models.JobUpdate) error {
	columns := map[string]interface{}{}
	if update.Title != nil {
		columns["title"] = *update.Title
	}
	if update.Description != nil {
		columns["description"] = *update.Description
	}
	if update.Location != nil {
		columns["location"] = *update.Location
	}
	if update.Type != nil {
		columns["type"] = string(*update.Type)
	}
	if update.Status != nil {
		columns["status"] = string(*update.Status)
	}
	if len(columns) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&dbmodels.Job{}).
		Where("id = ?", update.ID).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// UpdateJobStatus writes only the status column.
func (r *Repository) UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	result := r.db.WithContext(ctx).Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&dbmodels.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// ListActiveJobs returns one page of active postings ordered newest-first,
// along with the total active count. Page numbering is 1-based.
func (r *Repository) ListActiveJobs(ctx context.Context, page, pageSize int) ([]*models.Job, int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&dbmodels.Job{}).
		Where("status = ?", string(models.StatusActive)).
		Count(&total)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	var rows []dbmodels.Job
	result = r.db.WithContext(ctx).Preload("Company").
		Where("status = ?", string(models.StatusActive)).
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	jobs := make([]*models.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, toJob(&rows[i]))
	}
	return jobs, total, nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Exec runs a raw SQL statement; used by integration tests for cleanup.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	return r.db.WithContext(ctx).Exec(sql).Error
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func toCompany(row *dbmodels.Company) *models.Company {
	return &models.Company{
		ID:        row.ID,
		Name:      row.Name,
		LogoURL:   row.LogoURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func toJob(row *dbmodels.Job) *models.Job {
	return &models.Job{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		Location:       row.Location,
		Type:           models.JobType(row.Type),
		Status:         models.JobStatus(row.Status),
		CompanyID:      row.CompanyID,
		CompanyName:    row.Company.Name,
		CompanyLogoURL: row.Company.LogoURL,
		UserID:         row.UserID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
