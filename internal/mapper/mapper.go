// Package mapper converts domain models to API DTOs
package mapper

import (
	"github.com/bizzul/santini-manager-sub003/internal/domain"
)

// ToProductDTO converts a Product model to its API representation
func ToProductDTO(p *domain.Product) domain.ProductDTO {
	return domain.ProductDTO{
		ID:   p.ID,
		Name: p.Name,
		Type: p.Type,
	}
}

// ToTaskSummaryDTO converts a Task model to the compact representation
// used by dashboard lists
func ToTaskSummaryDTO(t *domain.Task) domain.TaskSummaryDTO {
	count := 0
	for _, p := range t.Positions {
		if p != "" {
			count++
		}
	}
	return domain.TaskSummaryDTO{
		ID:            t.ID,
		UniqueCode:    t.UniqueCode,
		Stage:         t.StageIdentifier(),
		Product:       t.ProductName(),
		DeliveryDate:  t.DeliveryDate,
		SellPrice:     t.SellPrice,
		PositionCount: count,
		Stocked:       t.Stocked,
	}
}
