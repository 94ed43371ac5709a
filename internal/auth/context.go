package auth

import (
	"context"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/google/uuid"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID uuid.UUID
	Email  string
	Roles  []domain.UserRoleType
	SiteID domain.SiteID
}

type contextKey string

const userContextKey contextKey = "userContext"
const siteFilterKey contextKey = "siteFilter"

// SiteFilter scopes repository queries to one production site.
// A nil SiteID means no filtering (superadmin view across sites).
type SiteFilter struct {
	SiteID *domain.SiteID
}

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// WithSiteFilter adds an explicit site filter to the context
func WithSiteFilter(ctx context.Context, filter *SiteFilter) context.Context {
	return context.WithValue(ctx, siteFilterKey, filter)
}

// SiteFilterFromContext extracts an explicit site filter from the context
func SiteFilterFromContext(ctx context.Context) (*SiteFilter, bool) {
	filter, ok := ctx.Value(siteFilterKey).(*SiteFilter)
	return filter, ok
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.UserRoleType) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsSuperAdmin checks if user has access to all sites
func (u *UserContext) IsSuperAdmin() bool {
	return u.HasRole(domain.RoleSuperAdmin)
}

// GetSiteFilter returns the site ID to scope queries by, or nil for
// superadmins who see every site
func (u *UserContext) GetSiteFilter() *domain.SiteID {
	if u.IsSuperAdmin() {
		return nil
	}
	return &u.SiteID
}

// GetEffectiveSiteFilter resolves the site scope for the current
// request: an explicit filter wins, then the authenticated user's site.
// Returns nil when queries should span all sites.
func GetEffectiveSiteFilter(ctx context.Context) *domain.SiteID {
	if filter, ok := SiteFilterFromContext(ctx); ok && filter != nil {
		return filter.SiteID
	}
	if user, ok := FromContext(ctx); ok {
		return user.GetSiteFilter()
	}
	return nil
}
