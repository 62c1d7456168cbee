package category

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/adapter/postgres"
	"github.com/storeadm/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var sortColumns = map[string]string{
	"name":      "name",
	"slug":      "slug",
	"status":    "status",
	"isFeature": "is_feature",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// whereFromFilter builds the conjunctive predicate set. Absent (nil) fields
// contribute nothing; a pointer to the zero value still contributes an
// equality predicate, so isFeature=false matches only unfeatured rows.
func whereFromFilter(tenantID uuid.UUID, f domain.CategoryFilter) sq.And {
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
	if f.MetaKeywords != nil {
		where = append(where, sq.ILike{"meta_keywords": "%" + *f.MetaKeywords + "%"})
	}
	if f.MetaDescriptions != nil {
		where = append(where, sq.ILike{"meta_descriptions": "%" + *f.MetaDescriptions + "%"})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.IsFeature != nil {
		where = append(where, sq.Eq{"is_feature": *f.IsFeature})
	}
	if f.CreatedAtFrom != nil {
		where = append(where, sq.GtOrEq{"created_at": *f.CreatedAtFrom})
	}
	if f.CreatedAtTo != nil {
		where = append(where, sq.LtOrEq{"created_at": *f.CreatedAtTo})
	}
	return where
}

func buildSearch(tenantID uuid.UUID, q domain.SearchQuery[domain.CategoryFilter]) (string, []any, error) {
	return psql.Select(
		"id", "tenant_id", "name", "slug", "meta_keywords", "meta_descriptions",
		"status", "is_feature", "phone_number", "photo", "import_hash",
		"created_by", "updated_by", "created_at", "updated_at",
	).
		From("categories").
		Where(whereFromFilter(tenantID, q.Filter)).
		OrderBy(postgres.OrderClause(q.OrderBy, sortColumns, "created_at DESC")).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset)).
		ToSql()
}

func buildUpdate(tenantID, id, updatedBy uuid.UUID, p domain.CategoryUpdateParams) (string, []any, error) {
	b := psql.Update("categories").
		Set("updated_by", updatedBy).
		Set("updated_at", sq.Expr("now()"))

	if p.Name != nil {
		b = b.Set("name", *p.Name)
	}
	if p.Slug != nil {
		b = b.Set("slug", *p.Slug)
	}
	if p.MetaKeywords != nil {
		b = b.Set("meta_keywords", *p.MetaKeywords)
	}
	if p.MetaDescriptions != nil {
		b = b.Set("meta_descriptions", *p.MetaDescriptions)
	}
	if p.Status != nil {
		b = b.Set("status", *p.Status)
	}
	if p.IsFeature != nil {
		b = b.Set("is_feature", *p.IsFeature)
	}
	if p.PhoneNumber != nil {
		b = b.Set("phone_number", *p.PhoneNumber)
	}
	if p.Photo != nil {
		photo, err := marshalPhoto(p.Photo)
		if err != nil {
			return "", nil, err
		}
		b = b.Set("photo", photo)
	}

	return b.Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		Suffix("RETURNING " + columns).
		ToSql()
}

func buildCount(tenantID uuid.UUID, f domain.CategoryFilter) (string, []any, error) {
	return psql.Select("count(*)").
		From("categories").
		Where(whereFromFilter(tenantID, f)).
		ToSql()
}

func buildAutocomplete(tenantID uuid.UUID, query string, limit int) (string, []any, error) {
	b := psql.Select("id", "name").
		From("categories").
		Where(sq.Eq{"tenant_id": tenantID})
	if query != "" {
		pattern := "%" + query + "%"
		b = b.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.Expr("id::text ILIKE ?", pattern),
		})
	}
	return b.OrderBy("name ASC").Limit(uint64(limit)).ToSql()
}
