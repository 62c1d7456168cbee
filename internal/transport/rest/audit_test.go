package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeadm/backend/internal/domain"
)

type auditServiceMock struct {
	EntityHistoryFunc func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
	UserHistoryFunc   func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

func (m *auditServiceMock) EntityHistory(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	return m.EntityHistoryFunc(ctx, entityType, entityID, limit, offset)
}

func (m *auditServiceMock) UserHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	return m.UserHistoryFunc(ctx, userID, limit, offset)
}

func TestAuditHistory_ByUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &auditServiceMock{
		UserHistoryFunc: func(_ context.Context, id uuid.UUID, limit, _ int) ([]domain.AuditRecord, error) {
			assert.Equal(t, userID, id)
			assert.Equal(t, 5, limit)
			return nil, nil
		},
	}
	h := NewAuditHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/audit-log?userId="+userID.String()+"&limit=5", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuditHistory_ByEntity(t *testing.T) {
	t.Parallel()

	entityID := uuid.New()
	svc := &auditServiceMock{
		EntityHistoryFunc: func(_ context.Context, et domain.EntityType, id uuid.UUID, _, _ int) ([]domain.AuditRecord, error) {
			assert.Equal(t, domain.EntityTypeCategory, et)
			assert.Equal(t, entityID, id)
			return []domain.AuditRecord{{ID: uuid.New(), EntityID: &entityID}}, nil
		},
	}
	h := NewAuditHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/audit-log?entityType=CATEGORY&entityId="+entityID.String(), nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuditHistory_MissingParams(t *testing.T) {
	t.Parallel()

	h := NewAuditHandler(&auditServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/audit-log", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
