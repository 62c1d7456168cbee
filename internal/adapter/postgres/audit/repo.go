// Package audit implements the append-only audit log store.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeadm/backend/internal/adapter/postgres"
	"github.com/storeadm/backend/internal/domain"
)

const appendQuery = `
INSERT INTO audit_log (id, tenant_id, user_id, entity_type, entity_id, action, changes)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listByEntityQuery = `
SELECT id, tenant_id, user_id, entity_type, entity_id, action, changes, created_at
FROM audit_log
WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3
ORDER BY created_at DESC
LIMIT $4 OFFSET $5`

const listByUserQuery = `
SELECT id, tenant_id, user_id, entity_type, entity_id, action, changes, created_at
FROM audit_log
WHERE tenant_id = $1 AND user_id = $2
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

// Repository writes and reads audit records. Append resolves its Querier
// from the context, so a record written during a service transaction commits
// or rolls back together with the mutation it describes.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Append(ctx context.Context, rec *domain.AuditRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	changes, err := json.Marshal(rec.Changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}

	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, err = q.Exec(ctx, appendQuery,
		id, rec.TenantID, rec.UserID, rec.EntityType, rec.EntityID, rec.Action, changes,
	)
	if err != nil {
		return postgres.MapError(err, "audit record", id)
	}
	return nil
}

// ListByEntity returns the mutation history of one entity, newest first.
func (r *Repository) ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByEntityQuery, tenantID, entityType, entityID, limit, offset)
	if err != nil {
		return nil, postgres.MapError(err, "audit record", uuid.Nil)
	}
	return scanRecords(rows)
}

// ListByUser returns the mutations one user performed in a tenant, newest
// first.
func (r *Repository) ListByUser(ctx context.Context, tenantID, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByUserQuery, tenantID, userID, limit, offset)
	if err != nil {
		return nil, postgres.MapError(err, "audit record", uuid.Nil)
	}
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]domain.AuditRecord, error) {
	defer rows.Close()

	out := []domain.AuditRecord{}
	for rows.Next() {
		var rec domain.AuditRecord
		var changes []byte
		err := rows.Scan(
			&rec.ID, &rec.TenantID, &rec.UserID, &rec.EntityType,
			&rec.EntityID, &rec.Action, &changes, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if err := json.Unmarshal(changes, &rec.Changes); err != nil {
			return nil, fmt.Errorf("unmarshal audit changes: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
