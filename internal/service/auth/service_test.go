package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/storeadm/backend/internal/domain"
)

type userRepoMock struct {
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

type issuerMock struct{}

func (issuerMock) GenerateAccessToken(uuid.UUID, string) (string, error) {
	return "signed-token", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: hashOf(t, "s3cret"),
			}, nil
		},
	}
	svc := NewService(users, issuerMock{}, testLogger())

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "signed-token", result.Token)
	assert.Empty(t, result.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email, PasswordHash: hashOf(t, "right")}, nil
		},
	}
	svc := NewService(users, issuerMock{}, testLogger())

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByEmailFunc: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewService(users, issuerMock{}, testLogger())

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_EmptyInput(t *testing.T) {
	t.Parallel()

	svc := NewService(&userRepoMock{}, issuerMock{}, testLogger())

	_, err := svc.Login(context.Background(), LoginInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
