package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	authsvc "github.com/storeadm/backend/internal/service/auth"
	"github.com/storeadm/backend/pkg/ctxutil"
)

type authService interface {
	Login(ctx context.Context, in authsvc.LoginInput) (*authsvc.LoginResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// AuthHandler serves login and the current-user lookup.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

func NewAuthHandler(svc authService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	result, err := h.svc.Login(r.Context(), authsvc.LoginInput{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, loginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		handleError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	u, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toUserResponse(u))
}
