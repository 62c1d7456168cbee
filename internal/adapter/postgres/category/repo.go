// Package category implements PostgreSQL persistence for catalog categories.
package category

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

const entity = "category"

const columns = `id, tenant_id, name, slug, meta_keywords, meta_descriptions,
	status, is_feature, phone_number, photo, import_hash,
	created_by, updated_by, created_at, updated_at`

const createQuery = `
INSERT INTO categories (
	id, tenant_id, name, slug, meta_keywords, meta_descriptions,
	status, is_feature, phone_number, photo, import_hash,
	created_by, updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + columns

const getByIDQuery = `
SELECT ` + columns + `
FROM categories
WHERE tenant_id = $1 AND id = $2`

const getByNameQuery = `
SELECT ` + columns + `
FROM categories
WHERE tenant_id = $1 AND name = $2
LIMIT 1`

const listAllTenantsQuery = `
SELECT ` + columns + `
FROM categories
ORDER BY created_at DESC
LIMIT $1`

const deleteQuery = `
DELETE FROM categories
WHERE tenant_id = $1 AND id = $2`

const countQuery = `
SELECT count(*) FROM categories WHERE tenant_id = $1`

const existsByImportHashQuery = `
SELECT EXISTS (
	SELECT 1 FROM categories WHERE tenant_id = $1 AND import_hash = $2
)`

// Repository provides access to the categories table. All queries run
// through postgres.QuerierFromCtx, so they join the caller's transaction
// when one is active.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	photo, err := marshalPhoto(c.Photo)
	if err != nil {
		return nil, fmt.Errorf("marshal photo: %w", err)
	}

	row := q.QueryRow(ctx, createQuery,
		c.ID, c.TenantID, c.Name, c.Slug, c.MetaKeywords, c.MetaDescriptions,
		c.Status, c.IsFeature, c.PhoneNumber, photo, c.ImportHash,
		c.CreatedBy, c.UpdatedBy,
	)

	created, err := scanCategory(row)
	if err != nil {
		return nil, postgres.MapError(err, entity, c.ID)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCategory(q.QueryRow(ctx, getByIDQuery, tenantID, id))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return c, nil
}

// GetByName returns the first category with an exact name match. The public
// contact endpoint uses it to find the record holding the contact number.
func (r *Repository) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCategory(q.QueryRow(ctx, getByNameQuery, tenantID, name))
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	return c, nil
}

// ListAllTenantsNewestFirst returns the most recent categories ACROSS ALL
// tenants. It deliberately skips tenant scoping and exists only for the
// public customer-service lookup; nothing else may use it.
func (r *Repository) ListAllTenantsNewestFirst(ctx context.Context, limit int) ([]domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listAllTenantsQuery, limit)
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	return scanCategories(rows)
}

func (r *Repository) Update(ctx context.Context, tenantID, id, updatedBy uuid.UUID, p domain.CategoryUpdateParams) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := buildUpdate(tenantID, id, updatedBy, p)
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	c, err := scanCategory(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return c, nil
}

func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteQuery, tenantID, id)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repository) SearchAndCount(ctx context.Context, tenantID uuid.UUID, query domain.SearchQuery[domain.CategoryFilter]) (*domain.SearchResult[domain.Category], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := buildCount(tenantID, query.Filter)
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}
	var count int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}

	result := &domain.SearchResult[domain.Category]{Rows: []domain.Category{}, Count: count}
	if count == 0 {
		return result, nil
	}

	searchSQL, searchArgs, err := buildSearch(tenantID, query)
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	rows, err := q.Query(ctx, searchSQL, searchArgs...)
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	result.Rows, err = scanCategories(rows)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) Autocomplete(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]domain.AutocompleteItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := buildAutocomplete(tenantID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("build autocomplete: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	defer rows.Close()

	items := []domain.AutocompleteItem{}
	for rows.Next() {
		var it domain.AutocompleteItem
		if err := rows.Scan(&it.ID, &it.Label); err != nil {
			return nil, fmt.Errorf("scan autocomplete item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repository) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countQuery, tenantID).Scan(&count); err != nil {
		return 0, postgres.MapError(err, entity, uuid.Nil)
	}
	return count, nil
}

func (r *Repository) ExistsByImportHash(ctx context.Context, tenantID uuid.UUID, hash string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, existsByImportHashQuery, tenantID, hash).Scan(&exists); err != nil {
		return false, postgres.MapError(err, entity, uuid.Nil)
	}
	return exists, nil
}

func marshalPhoto(refs []domain.FileRef) ([]byte, error) {
	return json.Marshal(domain.StripDownloadURLs(refs))
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	var photo []byte

	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.MetaKeywords, &c.MetaDescriptions,
		&c.Status, &c.IsFeature, &c.PhoneNumber, &photo, &c.ImportHash,
		&c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(photo, &c.Photo); err != nil {
		return nil, fmt.Errorf("unmarshal photo: %w", err)
	}
	return &c, nil
}

func scanCategories(rows pgx.Rows) ([]domain.Category, error) {
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
