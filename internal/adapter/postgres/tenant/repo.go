// Package tenant implements PostgreSQL persistence for tenants and
// tenant memberships.
package tenant

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeadm/backend/internal/adapter/postgres"
	"github.com/storeadm/backend/internal/domain"
)

const getByIDQuery = `
SELECT id, name, url, created_at, updated_at
FROM tenants
WHERE id = $1`

const getMembershipQuery = `
SELECT tenant_id, user_id, roles, status, created_at
FROM tenant_users
WHERE tenant_id = $1 AND user_id = $2`

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.Tenant
	err := q.QueryRow(ctx, getByIDQuery, id).
		Scan(&t.ID, &t.Name, &t.URL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "tenant", id)
	}
	return &t, nil
}

// GetMembership returns the membership row linking a user to a tenant, or
// domain.ErrNotFound when the user does not belong to the tenant.
func (r *Repository) GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*domain.TenantUser, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var tu domain.TenantUser
	err := q.QueryRow(ctx, getMembershipQuery, tenantID, userID).
		Scan(&tu.TenantID, &tu.UserID, &tu.Roles, &tu.Status, &tu.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "tenant membership", tenantID)
	}
	return &tu, nil
}
