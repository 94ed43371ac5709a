package middleware

import (
	"net/http"

	"github.com/bizzul/santini-manager-sub003/internal/auth"
	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"go.uber.org/zap"
)

// SiteFilterMiddleware handles multi-tenant data isolation. Regular
// users are always scoped to their own site; superadmins see all sites
// and may narrow to one with ?site_id=<site>.
type SiteFilterMiddleware struct {
	logger *zap.Logger
}

// NewSiteFilterMiddleware creates a new site filter middleware
func NewSiteFilterMiddleware(logger *zap.Logger) *SiteFilterMiddleware {
	return &SiteFilterMiddleware{logger: logger}
}

// Filter sets the effective site filter in the request context
func (m *SiteFilterMiddleware) Filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := auth.FromContext(r.Context())
		if !ok {
			// Auth middleware rejects unauthenticated requests first
			next.ServeHTTP(w, r)
			return
		}

		requested := r.URL.Query().Get("site_id")
		if requested != "" {
			siteID := domain.SiteID(requested)
			if !userCtx.IsSuperAdmin() && userCtx.SiteID != siteID {
				m.logger.Warn("user attempted to access another site",
					zap.String("user_id", userCtx.UserID.String()),
					zap.String("user_site", string(userCtx.SiteID)),
					zap.String("requested_site", requested),
				)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			ctx := auth.WithSiteFilter(r.Context(), &auth.SiteFilter{SiteID: &siteID})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		next.ServeHTTP(w, r)
	})
}
