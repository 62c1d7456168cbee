package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	productsvc "github.com/storeadm/backend/internal/service/product"
)

type productService interface {
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, in productsvc.UpdateInput) (*domain.Product, error)
	Destroy(ctx context.Context, id uuid.UUID) error
	DestroyAll(ctx context.Context, ids []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Search(ctx context.Context, in productsvc.SearchInput) (*domain.SearchResult[domain.Product], error)
	Autocomplete(ctx context.Context, query string) ([]domain.AutocompleteItem, error)
	Import(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
}

// ProductHandler serves the tenant-scoped product routes.
type ProductHandler struct {
	svc productService
	log *slog.Logger
}

func NewProductHandler(svc productService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/", h.search)
	r.Post("/", h.create)
	r.Post("/import", h.importOne)
	r.Delete("/", h.destroyBulk)
	r.Get("/autocomplete", h.autocomplete)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.destroy)
}

type productPayload struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description *string          `json:"description"`
	PriceCents  int64            `json:"priceCents"`
	Status      string           `json:"status"`
	IsFeature   bool             `json:"isFeature"`
	Photo       []domain.FileRef `json:"photo"`
	ImportHash  *string          `json:"importHash"`
}

func (p productPayload) toCreateInput() productsvc.CreateInput {
	return productsvc.CreateInput{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Status:      domain.RecordStatus(p.Status),
		IsFeature:   p.IsFeature,
		Photo:       p.Photo,
		ImportHash:  p.ImportHash,
	}
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	created, err := h.svc.Create(r.Context(), payload.toCreateInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toProductResponse(created))
}

type productUpdatePayload struct {
	Name        *string          `json:"name"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	PriceCents  *int64           `json:"priceCents"`
	Status      *string          `json:"status"`
	IsFeature   *bool            `json:"isFeature"`
	Photo       []domain.FileRef `json:"photo"`
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	var payload productUpdatePayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	in := productsvc.UpdateInput{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		PriceCents:  payload.PriceCents,
		IsFeature:   payload.IsFeature,
		Photo:       payload.Photo,
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
	writeJSON(w, r, http.StatusOK, toProductResponse(updated))
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) destroy(w http.ResponseWriter, r *http.Request) {
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

func (h *ProductHandler) destroyBulk(w http.ResponseWriter, r *http.Request) {
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

func (h *ProductHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := newQueryParser(q)
	filter := productFilterFromQuery(p)
	if err := p.Err(); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	result, err := h.svc.Search(r.Context(), productsvc.SearchInput{
		Filter:  filter,
		Limit:   queryInt(q, "limit", 0),
		Offset:  queryInt(q, "offset", 0),
		OrderBy: q.Get("orderBy"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, searchResponse[productResponse]{
		Rows:  toProductResponses(result.Rows),
		Count: result.Count,
	})
}

func (h *ProductHandler) autocomplete(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Autocomplete(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (h *ProductHandler) importOne(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	created, err := h.svc.Import(r.Context(), payload.toCreateInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toProductResponse(created))
}
