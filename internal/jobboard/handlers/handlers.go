// Package handlers provides the HTTP surface of the job board, bridging gin
// requests to the auth service and the job controller and translating
// domain errors into HTTP statuses.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	"github.com/gartstein/jobboard/internal/jobboard/controller"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/listing"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gartstein/jobboard/internal/jobboard/storage"
	"github.com/gartstein/jobboard/internal/jobboard/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobController defines the business logic interface the HTTP handlers
// invoke.
type JobController interface {
	CreateJob(ctx context.Context, actor auth.Actor, in *controller.JobInput) (*models.Job, error)
	UpdateJob(ctx context.Context, actor auth.Actor, id uuid.UUID, in *controller.JobInput) (*models.Job, error)
	DeleteJob(ctx context.Context, actor auth.Actor, id uuid.UUID) error
	ToggleStatus(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, page int) (*controller.JobPage, error)
}

// Authenticator defines the credential service interface.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (string, *models.User, error)
	SignIn(ctx context.Context, email, password string) (string, *models.User, error)
}

// LogoUploader uploads a validated logo file and returns its stored form.
type LogoUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (*storage.Logo, error)
}

// CompanyDirectory lists companies for the selection picker.
type CompanyDirectory interface {
	ListCompanies(ctx context.Context) ([]*models.Company, error)
}

// JobHandler serves the job board HTTP API.
type JobHandler struct {
	jobs      JobController
	auth      Authenticator
	logos     LogoUploader
	companies CompanyDirectory
	logger    *zap.Logger
}

// NewJobHandler constructs a JobHandler with its collaborators.
func NewJobHandler(jobs JobController, authSvc Authenticator, logos LogoUploader, companies CompanyDirectory, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobs:      jobs,
		auth:      authSvc,
		logos:     logos,
		companies: companies,
		logger:    logger.Named("http_handler"),
	}
}

// SignUp handles POST /api/v1/auth/signup.
func (h *JobHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse{Token: token, User: toUserResponse(user)})
}

// SignIn handles POST /api/v1/auth/signin.
func (h *JobHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Token: token, User: toUserResponse(user)})
}

// SignOut handles POST /api/v1/auth/signout. Sessions are stateless JWTs,
// so the server has nothing to revoke; the client drops the token.
func (h *JobHandler) SignOut(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
func (h *JobHandler) Me(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		h.respondError(c, e.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": actor.ID.String(), "email": actor.Email}})
}

// ListJobs handles GET /api/v1/jobs?page=N.
func (h *JobHandler) ListJobs(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.jobs.ListJobs(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	jobs := make([]jobResponse, 0, len(result.Jobs))
	for _, job := range result.Jobs {
		jobs = append(jobs, toJobResponse(job))
	}
	c.JSON(http.StatusOK, jobListResponse{
		Jobs:       jobs,
		Page:       result.Page,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		PageWindow: listing.PageWindow(result.Page, result.TotalPages),
	})
}

// GetJob handles GET /api/v1/jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	job, err := h.jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": toJobResponse(job)})
}

// CreateJob handles POST /api/v1/jobs. The form may arrive as JSON or as a
// multipart form carrying an optional logo file.
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		h.respondError(c, e.ErrUnauthenticated)
		return
	}

	in, err := h.bindJobInput(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	job, err := h.jobs.CreateJob(c.Request.Context(), actor, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": toJobResponse(job)})
}

// UpdateJob handles PATCH /api/v1/jobs/:id.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		h.respondError(c, e.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	in, err := h.bindJobInput(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	job, err := h.jobs.UpdateJob(c.Request.Context(), actor, id, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": toJobResponse(job)})
}

// DeleteJob handles DELETE /api/v1/jobs/:id.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		h.respondError(c, e.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	if err := h.jobs.DeleteJob(c.Request.Context(), actor, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleStatus handles POST /api/v1/jobs/:id/status.
func (h *JobHandler) ToggleStatus(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		h.respondError(c, e.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	job, err := h.jobs.ToggleStatus(c.Request.Context(), actor, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": toJobResponse(job)})
}

// ListCompanies handles GET /api/v1/companies, feeding the selection picker.
func (h *JobHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companies.ListCompanies(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, toCompanyResponse(company))
	}
	c.JSON(http.StatusOK, gin.H{"companies": out})
}

// bindJobInput reads the posting form from JSON or multipart, uploading the
// logo file when one is attached.
func (h *JobHandler) bindJobInput(c *gin.Context) (*controller.JobInput, error) {
	var req jobRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, e.ErrInvalidInput
	}

	in := &controller.JobInput{
		JobForm: validation.JobForm{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			Type:        models.JobType(req.Type),
		},
		Company: validation.CompanyChoice{
			New:  req.NewCompany,
			Name: req.CompanyName,
		},
	}
	if req.CompanyID != "" {
		id, err := uuid.Parse(req.CompanyID)
		if err != nil {
			v := e.NewValidation()
			v.Add("company", "invalid company ID")
			return nil, v
		}
		in.Company.ID = id
	}

	file, err := c.FormFile("logo")
	if err != nil {
		// No file attached; JSON requests land here as well.
		return in, nil
	}
	if _, err := storage.ValidateLogo(file.Filename, file.Size); err != nil {
		return nil, err
	}
	src, err := file.Open()
	if err != nil {
		return nil, e.ErrInvalidInput
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, storage.MaxLogoSize+1))
	if err != nil {
		return nil, e.ErrInvalidInput
	}

	logo, err := h.logos.Upload(c.Request.Context(), file.Filename, data)
	if err != nil {
		return nil, err
	}
	in.LogoURL = logo.URL
	return in, nil
}

// respondError maps domain errors onto HTTP statuses. Unclassified errors
// are logged and surfaced as a generic message.
func (h *JobHandler) respondError(c *gin.Context, err error) {
	if v, ok := e.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": v.Fields})
		return
	}

	switch {
	case errors.Is(err, e.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, e.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this posting"})
	case errors.Is(err, e.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, e.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": "a company with this name already exists"})
	case errors.Is(err, e.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
