package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"gorm.io/gorm"
)

// TaskRepository supplies the named task subsets the metrics engine
// consumes. The subset definitions live here on purpose: the engine
// trusts the caller to hand it correctly filtered collections, and
// keeping every filter in one place is what keeps the dashboard tabs
// agreeing with each other.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// excludedActiveStages are the board columns whose tasks are not in
// production: shipped tasks are done, backlog tasks not yet started.
var excludedActiveStages = []string{domain.ColumnShipped, domain.ColumnBacklog}

// GetActive returns tasks currently in production: not archived, not
// stocked, and not sitting in a shipped or backlog column. Tasks
// without a column count as active.
func (r *TaskRepository) GetActive(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	query := r.db.WithContext(ctx).Model(&domain.Task{}).
		Preload("Column").
		Preload("Product").
		Joins("LEFT JOIN kanban_columns ON kanban_columns.id = tasks.kanban_column_id").
		Where("tasks.archived = ?", false).
		Where("tasks.stocked = ?", false).
		Where("kanban_columns.identifier IS NULL OR kanban_columns.identifier NOT IN ?", excludedActiveStages)
	query = ApplySiteFilterWithAlias(ctx, query, "tasks")

	if err := query.Order("tasks.id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to get active tasks: %w", err)
	}
	return tasks, nil
}

// GetStocked returns tasks that are produced but held in stock
func (r *TaskRepository) GetStocked(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	query := r.db.WithContext(ctx).Model(&domain.Task{}).
		Preload("Column").
		Preload("Product").
		Where("tasks.archived = ?", false).
		Where("tasks.stocked = ?", true)
	query = ApplySiteFilterWithAlias(ctx, query, "tasks")

	if err := query.Order("tasks.id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to get stocked tasks: %w", err)
	}
	return tasks, nil
}

// GetDoneSince returns shipped tasks with a delivery date at or after
// the given instant. Stocked tasks are included: a completed order
// counts toward annual totals whether or not it is still in stock.
func (r *TaskRepository) GetDoneSince(ctx context.Context, since time.Time) ([]domain.Task, error) {
	var tasks []domain.Task
	query := r.db.WithContext(ctx).Model(&domain.Task{}).
		Preload("Column").
		Preload("Product").
		Joins("JOIN kanban_columns ON kanban_columns.id = tasks.kanban_column_id").
		Where("kanban_columns.identifier = ?", domain.ColumnShipped).
		Where("tasks.delivery_date >= ?", since)
	query = ApplySiteFilterWithAlias(ctx, query, "tasks")

	if err := query.Order("tasks.id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to get done tasks: %w", err)
	}
	return tasks, nil
}

// GetByID returns one task with its column and product
func (r *TaskRepository) GetByID(ctx context.Context, id int) (*domain.Task, error) {
	var task domain.Task
	query := r.db.WithContext(ctx).
		Preload("Column").
		Preload("Product")
	query = ApplySiteFilter(ctx, query)

	if err := query.First(&task, "tasks.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}
