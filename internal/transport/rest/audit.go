package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
)

type auditService interface {
	EntityHistory(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
	UserHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

// AuditHandler serves audit history reads. Writing audit records is the
// entity services' job; there is no write endpoint.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

func NewAuditHandler(svc auditService, log *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: log}
}

// History dispatches on query parameters: entityType+entityId for one
// entity's history, userId for one actor's history.
func (h *AuditHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := queryInt(q, "limit", 0)
	offset := queryInt(q, "offset", 0)

	p := newQueryParser(q)
	userID := p.UUID("userId")
	entityID := p.UUID("entityId")
	if err := p.Err(); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if userID != nil {
		recs, err := h.svc.UserHistory(r.Context(), *userID, limit, offset)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toAuditResponses(recs))
		return
	}

	if entityID == nil {
		handleError(w, r, h.log, domain.NewValidationError("entityId", "must be a UUID"))
		return
	}

	recs, err := h.svc.EntityHistory(r.Context(),
		domain.EntityType(q.Get("entityType")), *entityID, limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAuditResponses(recs))
}
