// Package auth contains the login use case for the admin API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/storeadm/backend/internal/domain"
)

type userRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
}

// LoginInput carries admin credentials.
type LoginInput struct {
	Email    string
	Password string
}

func (in *LoginInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must not be empty"})
	}
	if in.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

// Service authenticates admin users.
type Service struct {
	users  userRepository
	tokens tokenIssuer
	log    *slog.Logger
}

func NewService(users userRepository, tokens tokenIssuer, log *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, log: log}
}

// Login checks the credentials and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", u.ID.String()))

	u.PasswordHash = ""
	return &LoginResult{Token: token, User: u}, nil
}

// Me returns the account behind an authenticated request.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}
