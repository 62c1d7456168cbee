package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeadm/backend/internal/domain"
	authsvc "github.com/storeadm/backend/internal/service/auth"
	"github.com/storeadm/backend/pkg/ctxutil"
)

type authServiceMock struct {
	LoginFunc func(ctx context.Context, in authsvc.LoginInput) (*authsvc.LoginResult, error)
	MeFunc    func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *authServiceMock) Login(ctx context.Context, in authsvc.LoginInput) (*authsvc.LoginResult, error) {
	return m.LoginFunc(ctx, in)
}

func (m *authServiceMock) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.MeFunc(ctx, userID)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(_ context.Context, in authsvc.LoginInput) (*authsvc.LoginResult, error) {
			assert.Equal(t, "ana@example.com", in.Email)
			return &authsvc.LoginResult{
				Token: "tok",
				User:  &domain.User{ID: uuid.New(), Email: in.Email, FullName: "Ana"},
			}, nil
		},
	}
	h := NewAuthHandler(svc, testLogger())

	body := `{"email":"ana@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "ana@example.com", got.User.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(context.Context, authsvc.LoginInput) (*authsvc.LoginResult, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"x","password":"y"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_NoIdentity(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&authServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &authServiceMock{
		MeFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			assert.Equal(t, userID, id)
			return &domain.User{ID: id, Email: "ana@example.com", FullName: "Ana"}, nil
		},
	}
	h := NewAuthHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, userID, got.ID)
}
