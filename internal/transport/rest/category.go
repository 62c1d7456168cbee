package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	categorysvc "github.com/storeadm/backend/internal/service/category"
)

type categoryService interface {
	Create(ctx context.Context, in categorysvc.CreateInput) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, in categorysvc.UpdateInput) (*domain.Category, error)
	Destroy(ctx context.Context, id uuid.UUID) error
	DestroyAll(ctx context.Context, ids []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Search(ctx context.Context, in categorysvc.SearchInput) (*domain.SearchResult[domain.Category], error)
	Autocomplete(ctx context.Context, query string) ([]domain.AutocompleteItem, error)
	Import(ctx context.Context, in categorysvc.CreateInput) (*domain.Category, error)
	FindContact(ctx context.Context) (*categorysvc.Contact, error)
	FindCS(ctx context.Context, limit int) ([]domain.Category, error)
}

// CategoryHandler serves the tenant-scoped category routes plus the two
// public storefront lookups.
type CategoryHandler struct {
	svc categoryService
	log *slog.Logger
}

func NewCategoryHandler(svc categoryService, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

// Routes mounts the tenant-scoped category endpoints.
func (h *CategoryHandler) Routes(r chi.Router) {
	r.Get("/", h.search)
	r.Post("/", h.create)
	r.Post("/import", h.importOne)
	r.Delete("/", h.destroyBulk)
	r.Get("/autocomplete", h.autocomplete)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.destroy)
}

type categoryPayload struct {
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	MetaKeywords     *string          `json:"metaKeywords"`
	MetaDescriptions *string          `json:"metaDescriptions"`
	Status           string           `json:"status"`
	IsFeature        bool             `json:"isFeature"`
	PhoneNumber      *string          `json:"phoneNumber"`
	Photo            []domain.FileRef `json:"photo"`
	ImportHash       *string          `json:"importHash"`
}

func (p categoryPayload) toCreateInput() categorysvc.CreateInput {
	return categorysvc.CreateInput{
		Name:             p.Name,
		Slug:             p.Slug,
		MetaKeywords:     p.MetaKeywords,
		MetaDescriptions: p.MetaDescriptions,
		Status:           domain.RecordStatus(p.Status),
		IsFeature:        p.IsFeature,
		PhoneNumber:      p.PhoneNumber,
		Photo:            p.Photo,
		ImportHash:       p.ImportHash,
	}
}

func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	created, err := h.svc.Create(r.Context(), payload.toCreateInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toCategoryResponse(created))
}

type categoryUpdatePayload struct {
	Name             *string          `json:"name"`
	Slug             *string          `json:"slug"`
	MetaKeywords     *string          `json:"metaKeywords"`
	MetaDescriptions *string          `json:"metaDescriptions"`
	Status           *string          `json:"status"`
	IsFeature        *bool            `json:"isFeature"`
	PhoneNumber      *string          `json:"phoneNumber"`
	Photo            []domain.FileRef `json:"photo"`
}

func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	var payload categoryUpdatePayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	in := categorysvc.UpdateInput{
		Name:             payload.Name,
		Slug:             payload.Slug,
		MetaKeywords:     payload.MetaKeywords,
		MetaDescriptions: payload.MetaDescriptions,
		IsFeature:        payload.IsFeature,
		PhoneNumber:      payload.PhoneNumber,
		Photo:            payload.Photo,
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
	writeJSON(w, r, http.StatusOK, toCategoryResponse(updated))
}

func (h *CategoryHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	c, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCategoryResponse(c))
}

func (h *CategoryHandler) destroy(w http.ResponseWriter, r *http.Request) {
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

type destroyAllPayload struct {
	IDs []uuid.UUID `json:"ids"`
}

// destroyBulk accepts ids either as a comma-separated "ids" query parameter
// or as a JSON body, matching what the admin UI sends.
func (h *CategoryHandler) destroyBulk(w http.ResponseWriter, r *http.Request) {
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

func bulkIDs(r *http.Request) ([]uuid.UUID, error) {
	if raw := r.URL.Query().Get("ids"); raw != "" {
		parts := strings.Split(raw, ",")
		ids := make([]uuid.UUID, 0, len(parts))
		for _, p := range parts {
			id, err := uuid.Parse(strings.TrimSpace(p))
			if err != nil {
				return nil, domain.NewValidationError("ids", "must be UUIDs")
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	var payload destroyAllPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		return nil, domain.NewValidationError("ids", "must not be empty")
	}
	return payload.IDs, nil
}

func (h *CategoryHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := newQueryParser(q)
	filter := categoryFilterFromQuery(p)
	if err := p.Err(); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	result, err := h.svc.Search(r.Context(), categorysvc.SearchInput{
		Filter:  filter,
		Limit:   queryInt(q, "limit", 0),
		Offset:  queryInt(q, "offset", 0),
		OrderBy: q.Get("orderBy"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, searchResponse[categoryResponse]{
		Rows:  toCategoryResponses(result.Rows),
		Count: result.Count,
	})
}

func (h *CategoryHandler) autocomplete(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Autocomplete(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (h *CategoryHandler) importOne(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		handleError(w, r, h.log, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	created, err := h.svc.Import(r.Context(), payload.toCreateInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toCategoryResponse(created))
}

// Contact serves the public storefront contact lookup for one tenant.
func (h *CategoryHandler) Contact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.svc.FindContact(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, contact)
}

// FindCS serves the public customer-service list. Unlike every other
// endpoint it is not tenant-scoped; the behavior is kept for compatibility
// with the public contact page.
func (h *CategoryHandler) FindCS(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.FindCS(r.Context(), queryInt(r.URL.Query(), "limit", 0))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCategoryResponses(rows))
}
