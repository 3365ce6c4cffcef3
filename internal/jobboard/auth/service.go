package auth

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gartstein/jobboard/internal/jobboard/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore defines the persistence interface the credential service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service implements sign-up and sign-in against the local users table.
type Service struct {
	store  UserStore
	secret string
	logger *zap.Logger
}

// NewService constructs a credential Service.
func NewService(store UserStore, secret string, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		secret: secret,
		logger: logger.Named("auth_service"),
	}
}

// SignUp registers a new user and returns a signed session token.
func (s *Service) SignUp(ctx context.Context, email, password string) (string, *models.User, error) {
	v := e.NewValidation()
	validation.Credentials(v, email, password)
	if !v.Empty() {
		return "", nil, v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, e.ErrDuplicateName) {
			v := e.NewValidation()
			v.Add("email", "email is already registered")
			return "", nil, v
		}
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := GenerateToken(Actor{ID: user.ID, Email: user.Email}, s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

// SignIn checks credentials and returns a signed session token. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", e.ErrUnauthenticated)
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", e.ErrUnauthenticated)
	}

	token, err := GenerateToken(Actor{ID: user.ID, Email: user.Email}, s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

// CurrentUser resolves a session token into an Actor.
func (s *Service) CurrentUser(tokenString string) (Actor, error) {
	actor, err := VerifyToken(tokenString, s.secret)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %v", e.ErrUnauthenticated, err)
	}
	return actor, nil
}
