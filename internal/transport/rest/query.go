package rest

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
)

// queryParser reads typed filter parameters from the query string. Absent
// parameters stay nil so the filter layer can distinguish "not filtered"
// from an explicit zero value. Malformed values accumulate field errors
// instead of being dropped, so a bad filter never silently widens a search.
type queryParser struct {
	values url.Values
	errs   []domain.FieldError
}

func newQueryParser(q url.Values) *queryParser {
	return &queryParser{values: q}
}

func (p *queryParser) fail(key, message string) {
	p.errs = append(p.errs, domain.FieldError{Field: key, Message: message})
}

// Err returns a validation error covering every malformed parameter seen
// so far, or nil when all parameters parsed.
func (p *queryParser) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Errors: p.errs}
}

func (p *queryParser) String(key string) *string {
	if !p.values.Has(key) {
		return nil
	}
	v := p.values.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func (p *queryParser) Bool(key string) *bool {
	if !p.values.Has(key) {
		return nil
	}
	v, err := strconv.ParseBool(p.values.Get(key))
	if err != nil {
		p.fail(key, "must be a boolean")
		return nil
	}
	return &v
}

func (p *queryParser) Int64(key string) *int64 {
	if !p.values.Has(key) {
		return nil
	}
	v, err := strconv.ParseInt(p.values.Get(key), 10, 64)
	if err != nil {
		p.fail(key, "must be an integer")
		return nil
	}
	return &v
}

func (p *queryParser) UUID(key string) *uuid.UUID {
	if !p.values.Has(key) {
		return nil
	}
	v, err := uuid.Parse(p.values.Get(key))
	if err != nil {
		p.fail(key, "must be a UUID")
		return nil
	}
	return &v
}

func (p *queryParser) Time(key string) *time.Time {
	if !p.values.Has(key) {
		return nil
	}
	v, err := time.Parse(time.RFC3339, p.values.Get(key))
	if err != nil {
		p.fail(key, "must be an RFC 3339 timestamp")
		return nil
	}
	return &v
}

func (p *queryParser) Status(key string) *domain.RecordStatus {
	if !p.values.Has(key) {
		return nil
	}
	s := domain.RecordStatus(p.values.Get(key))
	if !s.IsValid() {
		p.fail(key, "must be one of DRAFT, PUBLISHED, ARCHIVED")
		return nil
	}
	return &s
}

// queryInt reads limit/offset style parameters. These stay tolerant; the
// services clamp them to sane defaults anyway.
func queryInt(q url.Values, key string, fallback int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return fallback
	}
	return v
}

func categoryFilterFromQuery(p *queryParser) domain.CategoryFilter {
	return domain.CategoryFilter{
		ID:               p.UUID("id"),
		Name:             p.String("name"),
		Slug:             p.String("slug"),
		MetaKeywords:     p.String("metaKeywords"),
		MetaDescriptions: p.String("metaDescriptions"),
		Status:           p.Status("status"),
		IsFeature:        p.Bool("isFeature"),
		CreatedAtFrom:    p.Time("createdAtFrom"),
		CreatedAtTo:      p.Time("createdAtTo"),
	}
}

func productFilterFromQuery(p *queryParser) domain.ProductFilter {
	return domain.ProductFilter{
		ID:            p.UUID("id"),
		Name:          p.String("name"),
		Slug:          p.String("slug"),
		Status:        p.Status("status"),
		IsFeature:     p.Bool("isFeature"),
		PriceMin:      p.Int64("priceMin"),
		PriceMax:      p.Int64("priceMax"),
		CreatedAtFrom: p.Time("createdAtFrom"),
		CreatedAtTo:   p.Time("createdAtTo"),
	}
}

func vipFilterFromQuery(p *queryParser) domain.VipFilter {
	return domain.VipFilter{
		ID:            p.UUID("id"),
		Name:          p.String("name"),
		Phone:         p.String("phone"),
		Email:         p.String("email"),
		Status:        p.Status("status"),
		CreatedAtFrom: p.Time("createdAtFrom"),
		CreatedAtTo:   p.Time("createdAtTo"),
	}
}
