// Package product implements PostgreSQL persistence for catalog products.
package product

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeadm/backend/internal/adapter/postgres"
	"github.com/storeadm/backend/internal/domain"
)

const entity = "product"

const columns = `id, tenant_id, name, slug, description, price_cents,
	status, is_feature, photo, import_hash,
	created_by, updated_by, created_at, updated_at`

const createQuery = `
INSERT INTO products (
	id, tenant_id, name, slug, description, price_cents,
	status, is_feature, photo, import_hash, created_by, updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + columns

const getByIDQuery = `
SELECT ` + columns + `
FROM products
WHERE tenant_id = $1 AND id = $2`

const deleteQuery = `
DELETE FROM products
WHERE tenant_id = $1 AND id = $2`

const countQuery = `
SELECT count(*) FROM products WHERE tenant_id = $1`

const existsByImportHashQuery = `
SELECT EXISTS (
	SELECT 1 FROM products WHERE tenant_id = $1 AND import_hash = $2
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var sortColumns = map[string]string{
	"name":      "name",
	"slug":      "slug",
	"status":    "status",
	"price":     "price_cents",
	"isFeature": "is_feature",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	photo, err := marshalPhoto(p.Photo)
	if err != nil {
		return nil, fmt.Errorf("marshal photo: %w", err)
	}

	row := q.QueryRow(ctx, createQuery,
		p.ID, p.TenantID, p.Name, p.Slug, p.Description, p.PriceCents,
		p.Status, p.IsFeature, photo, p.ImportHash, p.CreatedBy, p.UpdatedBy,
	)

	created, err := scanProduct(row)
	if err != nil {
		return nil, postgres.MapError(err, entity, p.ID)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Product, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProduct(q.QueryRow(ctx, getByIDQuery, tenantID, id))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, tenantID, id, updatedBy uuid.UUID, params domain.ProductUpdateParams) (*domain.Product, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Update("products").
		Set("updated_by", updatedBy).
		Set("updated_at", sq.Expr("now()"))

	if params.Name != nil {
		b = b.Set("name", *params.Name)
	}
	if params.Slug != nil {
		b = b.Set("slug", *params.Slug)
	}
	if params.Description != nil {
		b = b.Set("description", *params.Description)
	}
	if params.PriceCents != nil {
		b = b.Set("price_cents", *params.PriceCents)
	}
	if params.Status != nil {
		b = b.Set("status", *params.Status)
	}
	if params.IsFeature != nil {
		b = b.Set("is_feature", *params.IsFeature)
	}
	if params.Photo != nil {
		photo, err := marshalPhoto(params.Photo)
		if err != nil {
			return nil, fmt.Errorf("marshal photo: %w", err)
		}
		b = b.Set("photo", photo)
	}

	sql, args, err := b.Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	p, err := scanProduct(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return p, nil
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

func (r *Repository) SearchAndCount(ctx context.Context, tenantID uuid.UUID, query domain.SearchQuery[domain.ProductFilter]) (*domain.SearchResult[domain.Product], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := whereFromFilter(tenantID, query.Filter)

	countSQL, countArgs, err := psql.Select("count(*)").From("products").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}
	var count int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}

	result := &domain.SearchResult[domain.Product]{Rows: []domain.Product{}, Count: count}
	if count == 0 {
		return result, nil
	}

	searchSQL, searchArgs, err := psql.Select(
		"id", "tenant_id", "name", "slug", "description", "price_cents",
		"status", "is_feature", "photo", "import_hash",
		"created_by", "updated_by", "created_at", "updated_at",
	).
		From("products").
		Where(where).
		OrderBy(postgres.OrderClause(query.OrderBy, sortColumns, "created_at DESC")).
		Limit(uint64(query.Limit)).
		Offset(uint64(query.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}

	rows, err := q.Query(ctx, searchSQL, searchArgs...)
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	result.Rows, err = scanProducts(rows)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) Autocomplete(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]domain.AutocompleteItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select("id", "name").
		From("products").
		Where(sq.Eq{"tenant_id": tenantID})
	if query != "" {
		pattern := "%" + query + "%"
		b = b.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.Expr("id::text ILIKE ?", pattern),
		})
	}
	sql, args, err := b.OrderBy("name ASC").Limit(uint64(limit)).ToSql()
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

func whereFromFilter(tenantID uuid.UUID, f domain.ProductFilter) sq.And {
	where := sq.And{sq.Eq{"tenant_id": tenantID}}

	if f.ID != nil {
		where = append(where, sq.Eq{"id": *f.ID})
	}
	if f.Name != nil {
		where = append(where, sq.ILike{"name": "%" + *f.Name + "%"})
	}
	if f.Slug != nil {
		where = append(where, sq.ILike{"slug": "%" + *f.Slug + "%"})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.IsFeature != nil {
		where = append(where, sq.Eq{"is_feature": *f.IsFeature})
	}
	if f.PriceMin != nil {
		where = append(where, sq.GtOrEq{"price_cents": *f.PriceMin})
	}
	if f.PriceMax != nil {
		where = append(where, sq.LtOrEq{"price_cents": *f.PriceMax})
	}
	if f.CreatedAtFrom != nil {
		where = append(where, sq.GtOrEq{"created_at": *f.CreatedAtFrom})
	}
	if f.CreatedAtTo != nil {
		where = append(where, sq.LtOrEq{"created_at": *f.CreatedAtTo})
	}
	return where
}

func marshalPhoto(refs []domain.FileRef) ([]byte, error) {
	return json.Marshal(domain.StripDownloadURLs(refs))
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var photo []byte

	err := row.Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Slug, &p.Description, &p.PriceCents,
		&p.Status, &p.IsFeature, &photo, &p.ImportHash,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(photo, &p.Photo); err != nil {
		return nil, fmt.Errorf("unmarshal photo: %w", err)
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
