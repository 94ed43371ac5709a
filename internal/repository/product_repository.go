package repository

import (
	"context"
	"fmt"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository reads the product catalog
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns the site's products ordered by name
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	query := r.db.WithContext(ctx).Model(&domain.Product{})
	query = ApplySiteFilter(ctx, query)

	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
