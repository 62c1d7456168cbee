package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

type membershipChecker interface {
	GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*domain.TenantUser, error)
}

// Tenant resolves the {tenantID} URL parameter, verifies the authenticated
// user has an ACTIVE membership in that tenant, and stores the tenant ID in
// the context. Anonymous requests get 401, non-members get 403. The check
// is what keeps one tenant's users out of another tenant's data.
func Tenant(memberships membershipChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := ctxutil.UserIDFromCtx(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
			if err != nil {
				http.Error(w, "invalid tenant id", http.StatusBadRequest)
				return
			}

			tu, err := memberships.GetMembership(r.Context(), tenantID, userID)
			if err != nil || tu.Status != domain.TenantUserStatusActive {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := ctxutil.WithTenantID(r.Context(), tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PublicTenant resolves {tenantID} without a membership check. Only the
// public storefront endpoints use it.
func PublicTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
		if err != nil {
			http.Error(w, "invalid tenant id", http.StatusBadRequest)
			return
		}
		ctx := ctxutil.WithTenantID(r.Context(), tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
