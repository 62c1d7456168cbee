package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/internal/i18n"
	"github.com/storeadm/backend/pkg/ctxutil"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, fields []fieldError) {
	render.Status(r, status)
	render.JSON(w, r, errorEnvelope{Error: errorBody{Message: message, Fields: fields}})
}

// handleError maps domain errors to HTTP statuses and localized messages.
// The message language comes from the request context; unknown errors are
// logged and rendered as an opaque 500.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	lang := ctxutil.LanguageFromCtx(r.Context())

	var verr *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &verr):
		msg := i18n.Resolve(lang, "errors.validation")
		if verr.MessageKey != "" {
			msg = i18n.Resolve(lang, verr.MessageKey, verr.Args...)
		}
		var fields []fieldError
		for _, fe := range verr.Errors {
			fields = append(fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeError(w, r, http.StatusBadRequest, msg, fields)

	case errors.As(err, &conflict):
		// duplicate unique field reads as a validation problem to the admin UI
		writeError(w, r, http.StatusBadRequest,
			i18n.Resolve(lang, "errors.duplicateField", conflict.Field), nil)

	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, r, http.StatusConflict, i18n.Resolve(lang, "errors.validation"), nil)

	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, i18n.Resolve(lang, "errors.notFound"), nil)

	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, i18n.Resolve(lang, "errors.unauthorized"), nil)

	case errors.Is(err, domain.ErrForbidden):
		writeError(w, r, http.StatusForbidden, i18n.Resolve(lang, "errors.forbidden"), nil)

	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.Any("error", err),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("path", r.URL.Path),
		)
		writeError(w, r, http.StatusInternalServerError, i18n.Resolve(lang, "errors.internal"), nil)
	}
}
