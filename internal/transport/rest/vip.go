package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	vipsvc "github.com/storeadm/backend/internal/service/vip"
)

type vipService interface {
	Create(ctx context.Context, in vipsvc.CreateInput) (*domain.Vip, error)
	Update(ctx context.Context, id uuid.UUID, in vipsvc.UpdateInput) (*domain.Vip, error)
	Destroy(ctx context.Context, id uuid.UUID) error
	DestroyAll(ctx context.Context, ids []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vip, error)
	Search(ctx context.Context, in vipsvc.SearchInput) (*domain.SearchResult[domain.Vip], error)
	Autocomplete(ctx context.Context, query string) ([]domain.AutocompleteItem, error)
	Import(ctx context.Context, in vipsvc.CreateInput) (*domain.Vip, error)
}

// VipHandler serves the tenant-scoped vip routes.
type VipHandler struct {
	svc vipService
	log *slog.Logger
}

func NewVipHandler(svc vipService, log *slog.Logger) *VipHandler {
	return &VipHandler{svc: svc, log: log}
}

func (h *VipHandler) Routes(r chi.Router) {
	r.Get("/", h.search)
	r.Post("/", h.create)
	r.Post("/import", h.importOne)
	r.Delete("/", h.destroyBulk)
	r.Get("/autocomplete", h.autocomplete)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.destroy)
}

type vipPayload struct {
	Name       string           `json:"name"`
	Phone      string           `json:"phone"`
	Email      *string          `json:"email"`
	Status     string           `json:"status"`
	Photo      []domain.FileRef `json:"photo"`
	ImportHash *string          `json:"importHash"`
}

func (p vipPayload) toCreateInput() vipsvc.CreateInput {
	return vipsvc.CreateInput{
		Name:       p.Name,
		Phone:      p.Phone,
		Email:      p.Email,
		Status:     domain.RecordStatus(p.Status),
		Photo:      p.Photo,
		ImportHash: p.ImportHash,
	}
}

func (h *VipHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload vipPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	created, err := h.svc.Create(r.Context(), payload.toCreateInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toVipResponse(created))
}

type vipUpdatePayload struct {
	Name   *string          `json:"name"`
	Phone  *string          `json:"phone"`
	Email  *string          `json:"email"`
	Status *string          `json:"status"`
	Photo  []domain.FileRef `json:"photo"`
}

func (h *VipHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	var payload vipUpdatePayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	in := vipsvc.UpdateInput{
		Name:  payload.Name,
		Phone: payload.Phone,
		Email: payload.Email,
		Photo: payload.Photo,
	}
	if payload.Status != nil {
		status := domain.RecordStatus(*payload.Status)
		in.Status = &status
	}

	updated, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toVipResponse(updated))
}

func (h *VipHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	v, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toVipResponse(v))
}

func (h *VipHandler) destroy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	if err := h.svc.Destroy(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VipHandler) destroyBulk(w http.ResponseWriter, r *http.Request) {
	ids, err := bulkIDs(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DestroyAll(r.Context(), ids); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VipHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := newQueryParser(q)
	filter := vipFilterFromQuery(p)
	if err := p.Err(); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	result, err := h.svc.Search(r.Context(), vipsvc.SearchInput{
		Filter:  filter,
		Limit:   queryInt(q, "limit", 0),
		Offset:  queryInt(q, "offset", 0),
		OrderBy: q.Get("orderBy"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, searchResponse[vipResponse]{
		Rows:  toVipResponses(result.Rows),
		Count: result.Count,
	})
}

func (h *VipHandler) autocomplete(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Autocomplete(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (h *VipHandler) importOne(w http.ResponseWriter, r *http.Request) {
	var payload vipPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	created, err := h.svc.Import(r.Context(), payload.toCreateInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toVipResponse(created))
}
