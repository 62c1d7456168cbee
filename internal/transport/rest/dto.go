package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
)

type categoryResponse struct {
	ID               uuid.UUID        `json:"id"`
	TenantID         uuid.UUID        `json:"tenantId"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	MetaKeywords     *string          `json:"metaKeywords,omitempty"`
	MetaDescriptions *string          `json:"metaDescriptions,omitempty"`
	Status           string           `json:"status"`
	IsFeature        bool             `json:"isFeature"`
	PhoneNumber      *string          `json:"phoneNumber,omitempty"`
	Photo            []domain.FileRef `json:"photo"`
	ImportHash       *string          `json:"importHash,omitempty"`
	CreatedBy        uuid.UUID        `json:"createdBy"`
	UpdatedBy        uuid.UUID        `json:"updatedBy"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		Name:             c.Name,
		Slug:             c.Slug,
		MetaKeywords:     c.MetaKeywords,
		MetaDescriptions: c.MetaDescriptions,
		Status:           c.Status.String(),
		IsFeature:        c.IsFeature,
		PhoneNumber:      c.PhoneNumber,
		Photo:            c.Photo,
		ImportHash:       c.ImportHash,
		CreatedBy:        c.CreatedBy,
		UpdatedBy:        c.UpdatedBy,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toCategoryResponses(cs []domain.Category) []categoryResponse {
	out := make([]categoryResponse, len(cs))
	for i := range cs {
		out[i] = toCategoryResponse(&cs[i])
	}
	return out
}

type productResponse struct {
	ID          uuid.UUID        `json:"id"`
	TenantID    uuid.UUID        `json:"tenantId"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description *string          `json:"description,omitempty"`
	PriceCents  int64            `json:"priceCents"`
	Status      string           `json:"status"`
	IsFeature   bool             `json:"isFeature"`
	Photo       []domain.FileRef `json:"photo"`
	ImportHash  *string          `json:"importHash,omitempty"`
	CreatedBy   uuid.UUID        `json:"createdBy"`
	UpdatedBy   uuid.UUID        `json:"updatedBy"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Status:      p.Status.String(),
		IsFeature:   p.IsFeature,
		Photo:       p.Photo,
		ImportHash:  p.ImportHash,
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(ps []domain.Product) []productResponse {
	out := make([]productResponse, len(ps))
	for i := range ps {
		out[i] = toProductResponse(&ps[i])
	}
	return out
}

type vipResponse struct {
	ID         uuid.UUID        `json:"id"`
	TenantID   uuid.UUID        `json:"tenantId"`
	Name       string           `json:"name"`
	Phone      string           `json:"phone"`
	Email      *string          `json:"email,omitempty"`
	Status     string           `json:"status"`
	Photo      []domain.FileRef `json:"photo"`
	ImportHash *string          `json:"importHash,omitempty"`
	CreatedBy  uuid.UUID        `json:"createdBy"`
	UpdatedBy  uuid.UUID        `json:"updatedBy"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func toVipResponse(v *domain.Vip) vipResponse {
	return vipResponse{
		ID:         v.ID,
		TenantID:   v.TenantID,
		Name:       v.Name,
		Phone:      v.Phone,
		Email:      v.Email,
		Status:     v.Status.String(),
		Photo:      v.Photo,
		ImportHash: v.ImportHash,
		CreatedBy:  v.CreatedBy,
		UpdatedBy:  v.UpdatedBy,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func toVipResponses(vs []domain.Vip) []vipResponse {
	out := make([]vipResponse, len(vs))
	for i := range vs {
		out[i] = toVipResponse(&vs[i])
	}
	return out
}

type searchResponse[T any] struct {
	Rows  []T `json:"rows"`
	Count int `json:"count"`
}

type auditRecordResponse struct {
	ID         uuid.UUID      `json:"id"`
	TenantID   uuid.UUID      `json:"tenantId"`
	UserID     uuid.UUID      `json:"userId"`
	EntityType string         `json:"entityType"`
	EntityID   *uuid.UUID     `json:"entityId,omitempty"`
	Action     string         `json:"action"`
	Changes    map[string]any `json:"changes"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func toAuditResponses(recs []domain.AuditRecord) []auditRecordResponse {
	out := make([]auditRecordResponse, len(recs))
	for i, rec := range recs {
		out[i] = auditRecordResponse{
			ID:         rec.ID,
			TenantID:   rec.TenantID,
			UserID:     rec.UserID,
			EntityType: rec.EntityType.String(),
			EntityID:   rec.EntityID,
			Action:     rec.Action.String(),
			Changes:    rec.Changes,
			CreatedAt:  rec.CreatedAt,
		}
	}
	return out
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, FullName: u.FullName}
}
