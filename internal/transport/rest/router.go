package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storeadm/backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Category *CategoryHandler
	Product  *ProductHandler
	Vip      *VipHandler
	Audit    *AuditHandler
	Health   http.HandlerFunc
	Metrics  http.Handler
}

// MiddlewareSet groups the cross-cutting middleware the router applies.
type MiddlewareSet struct {
	RequestID middleware.Middleware
	Logger    middleware.Middleware
	Recovery  middleware.Middleware
	CORS      middleware.Middleware
	RateLimit middleware.Middleware
	Metrics   middleware.Middleware
	Language  middleware.Middleware
	Auth      middleware.Middleware
	Tenant    middleware.Middleware
}

// NewRouter wires the route tree. Tenant routes require an authenticated
// user with an active membership; the storefront routes under /api/tenant
// and /api/cs are public.
func NewRouter(h Handlers, mw MiddlewareSet) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		mw.Recovery, mw.RequestID, mw.Logger, mw.Metrics, mw.CORS, mw.RateLimit, mw.Language,
	))

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", h.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.With(mw.Auth).Get("/auth/me", h.Auth.Me)

		// public storefront lookups
		r.With(middleware.PublicTenant).
			Get("/tenant/{tenantID}/category/contact", h.Category.Contact)
		r.Get("/cs/findcs", h.Category.FindCS)

		// admin routes, tenant-scoped
		r.Route("/tenant/{tenantID}", func(r chi.Router) {
			r.Use(mw.Auth, mw.Tenant)

			r.Route("/category", h.Category.Routes)
			r.Route("/product", h.Product.Routes)
			r.Route("/vip", h.Vip.Routes)
			r.Get("/audit-log", h.Audit.History)
		})
	})

	return r
}
