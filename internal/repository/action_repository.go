package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"gorm.io/gorm"
)

// ActionRepository reads the state-change log
type ActionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// GetMoveEventsBetween returns move_task log entries in the half-open
// interval [from, to), oldest first
func (r *ActionRepository) GetMoveEventsBetween(ctx context.Context, from, to time.Time) ([]domain.Action, error) {
	var actions []domain.Action
	query := r.db.WithContext(ctx).Model(&domain.Action{}).
		Where("type = ?", domain.ActionMoveTask).
		Where("created_at >= ? AND created_at < ?", from, to)
	query = ApplySiteFilter(ctx, query)

	if err := query.Order("created_at ASC").Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("failed to get move events: %w", err)
	}
	return actions, nil
}

// Create appends one entry to the log
func (r *ActionRepository) Create(ctx context.Context, action *domain.Action) error {
	return r.db.WithContext(ctx).Create(action).Error
}
