package repository

import (
	"context"

	"github.com/bizzul/santini-manager-sub003/internal/auth"
	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// ApplySiteFilter applies the multi-tenant site filter to a GORM query.
// If no filter is set (user has access to all sites), the query is
// returned unchanged.
func ApplySiteFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	siteID := auth.GetEffectiveSiteFilter(ctx)
	if siteID != nil {
		return query.Where("site_id = ?", *siteID)
	}
	return query
}

// ApplySiteFilterWithAlias applies the site filter using a table alias.
// Use this when joining multiple tables and the site_id column needs
// qualification.
func ApplySiteFilterWithAlias(ctx context.Context, query *gorm.DB, tableAlias string) *gorm.DB {
	siteID := auth.GetEffectiveSiteFilter(ctx)
	if siteID != nil {
		return query.Where(tableAlias+".site_id = ?", *siteID)
	}
	return query
}
