package handlers

import (
	"time"

	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// signUpRequest and signInRequest share a shape; kept separate so binding
// errors name the right endpoint.
type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// jobRequest carries the posting form. Required-ness is checked by the
// validation package so failures come back field-keyed, not as one opaque
// binding error.
type jobRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Location    string `json:"location" form:"location"`
	Type        string `json:"type" form:"type"`
	NewCompany  bool   `json:"new_company" form:"new_company"`
	CompanyName string `json:"company_name" form:"company_name"`
	CompanyID   string `json:"company_id" form:"company_id"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type jobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	CompanyID      string    `json:"company_id"`
	CompanyName    string    `json:"company_name,omitempty"`
	CompanyLogoURL string    `json:"company_logo_url,omitempty"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type jobListResponse struct {
	Jobs       []jobResponse `json:"jobs"`
	Page       int           `json:"page"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
	// PageWindow is the sliding window of visible page numbers.
	PageWindow []int `json:"page_window"`
}

type companyResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func toJobResponse(job *models.Job) jobResponse {
	return jobResponse{
		ID:             job.ID.String(),
		Title:          job.Title,
		Description:    job.Description,
		Location:       job.Location,
		Type:           string(job.Type),
		Status:         string(job.Status),
		CompanyID:      job.CompanyID.String(),
		CompanyName:    job.CompanyName,
		CompanyLogoURL: job.CompanyLogoURL,
		UserID:         job.UserID.String(),
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

func toCompanyResponse(company *models.Company) companyResponse {
	return companyResponse{
		ID:      company.ID.String(),
		Name:    company.Name,
		LogoURL: company.LogoURL,
	}
}
