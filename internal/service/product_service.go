package service

import (
	"context"
	"fmt"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/bizzul/santini-manager-sub003/internal/mapper"
	"github.com/bizzul/santini-manager-sub003/internal/repository"
	"go.uber.org/zap"
)

// ProductService exposes the product catalog the dashboard's category
// breakdowns are keyed by
type ProductService struct {
	productRepo *repository.ProductRepository
	logger      *zap.Logger
}

func NewProductService(productRepo *repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// List returns the site's products
func (s *ProductService) List(ctx context.Context) ([]domain.ProductDTO, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	dtos := make([]domain.ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = mapper.ToProductDTO(&p)
	}
	return dtos, nil
}
