package repository

import (
	"context"
	"fmt"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"gorm.io/gorm"
)

// SiteRepository reads the site (tenant) registry
type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// ListActive returns every active site. Not site-filtered: the cache
// warmer iterates all tenants.
func (r *SiteRepository) ListActive(ctx context.Context) ([]domain.Site, error) {
	var sites []domain.Site
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&sites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active sites: %w", err)
	}
	return sites, nil
}
