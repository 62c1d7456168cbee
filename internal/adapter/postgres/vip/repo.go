// Package vip implements PostgreSQL persistence for vip customer records.
package vip

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

const entity = "vip"

const columns = `id, tenant_id, name, phone, email, status, photo, import_hash,
	created_by, updated_by, created_at, updated_at`

const createQuery = `
INSERT INTO vips (
	id, tenant_id, name, phone, email, status, photo, import_hash,
	created_by, updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + columns

const getByIDQuery = `
SELECT ` + columns + `
FROM vips
WHERE tenant_id = $1 AND id = $2`

const deleteQuery = `
DELETE FROM vips
WHERE tenant_id = $1 AND id = $2`

const countQuery = `
SELECT count(*) FROM vips WHERE tenant_id = $1`

const existsByImportHashQuery = `
SELECT EXISTS (
	SELECT 1 FROM vips WHERE tenant_id = $1 AND import_hash = $2
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var sortColumns = map[string]string{
	"name":      "name",
	"phone":     "phone",
	"email":     "email",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, v *domain.Vip) (*domain.Vip, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	photo, err := marshalPhoto(v.Photo)
	if err != nil {
		return nil, fmt.Errorf("marshal photo: %w", err)
	}

	row := q.QueryRow(ctx, createQuery,
		v.ID, v.TenantID, v.Name, v.Phone, v.Email, v.Status, photo,
		v.ImportHash, v.CreatedBy, v.UpdatedBy,
	)

	created, err := scanVip(row)
	if err != nil {
		return nil, postgres.MapError(err, entity, v.ID)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Vip, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	v, err := scanVip(q.QueryRow(ctx, getByIDQuery, tenantID, id))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return v, nil
}

func (r *Repository) Update(ctx context.Context, tenantID, id, updatedBy uuid.UUID, params domain.VipUpdateParams) (*domain.Vip, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Update("vips").
		Set("updated_by", updatedBy).
		Set("updated_at", sq.Expr("now()"))

	if params.Name != nil {
		b = b.Set("name", *params.Name)
	}
	if params.Phone != nil {
		b = b.Set("phone", *params.Phone)
	}
	if params.Email != nil {
		b = b.Set("email", *params.Email)
	}
	if params.Status != nil {
		b = b.Set("status", *params.Status)
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

	v, err := scanVip(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return v, nil
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

func (r *Repository) SearchAndCount(ctx context.Context, tenantID uuid.UUID, query domain.SearchQuery[domain.VipFilter]) (*domain.SearchResult[domain.Vip], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := whereFromFilter(tenantID, query.Filter)

	countSQL, countArgs, err := psql.Select("count(*)").From("vips").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}
	var count int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}

	result := &domain.SearchResult[domain.Vip]{Rows: []domain.Vip{}, Count: count}
	if count == 0 {
		return result, nil
	}

	searchSQL, searchArgs, err := psql.Select(
		"id", "tenant_id", "name", "phone", "email", "status", "photo",
		"import_hash", "created_by", "updated_by", "created_at", "updated_at",
	).
		From("vips").
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
	result.Rows, err = scanVips(rows)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) Autocomplete(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]domain.AutocompleteItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select("id", "name").
		From("vips").
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

func whereFromFilter(tenantID uuid.UUID, f domain.VipFilter) sq.And {
	where := sq.And{sq.Eq{"tenant_id": tenantID}}

	if f.ID != nil {
		where = append(where, sq.Eq{"id": *f.ID})
	}
	if f.Name != nil {
		where = append(where, sq.ILike{"name": "%" + *f.Name + "%"})
	}
	if f.Phone != nil {
		where = append(where, sq.ILike{"phone": "%" + *f.Phone + "%"})
	}
	if f.Email != nil {
		where = append(where, sq.ILike{"email": "%" + *f.Email + "%"})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
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

func scanVip(row pgx.Row) (*domain.Vip, error) {
	var v domain.Vip
	var photo []byte

	err := row.Scan(
		&v.ID, &v.TenantID, &v.Name, &v.Phone, &v.Email, &v.Status, &photo,
		&v.ImportHash, &v.CreatedBy, &v.UpdatedBy, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(photo, &v.Photo); err != nil {
		return nil, fmt.Errorf("unmarshal photo: %w", err)
	}
	return &v, nil
}

func scanVips(rows pgx.Rows) ([]domain.Vip, error) {
	defer rows.Close()

	out := []domain.Vip{}
	for rows.Next() {
		v, err := scanVip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vip: %w", err)
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}
