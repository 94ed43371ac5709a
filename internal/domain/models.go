package domain

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// SiteID identifies a production site (tenant)
type SiteID string

// Site represents a production site. Every task and action belongs to
// exactly one site, and dashboard metrics are computed per site.
type Site struct {
	ID        SiteID    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Timezone  string    `gorm:"type:varchar(50);not null;default:'Europe/Rome'" json:"timezone"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// Well-known kanban column identifiers. Columns are user-managed rows,
// but these two identifiers have fixed meaning: shipped tasks are done
// and backlog tasks are not yet in production, so both are excluded
// from the "active" production subset.
const (
	ColumnShipped = "SPEDITO"
	ColumnBacklog = "DA_PRODURRE"
)

// KanbanColumn represents a workflow stage on the production board
type KanbanColumn struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Identifier string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_column_site_identifier" json:"identifier"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	SiteID     SiteID    `gorm:"type:varchar(50);not null;uniqueIndex:idx_column_site_identifier;index" json:"siteId"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// Product represents a named product line used for per-category breakdowns
type Product struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Type      string    `gorm:"type:varchar(100)" json:"type,omitempty"`
	SiteID    SiteID    `gorm:"type:varchar(50);not null;index" json:"siteId"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// CodeSeparator splits a task's unique code into base code and suffix.
// Codes are issued as "<baseCode>-<n>" where n is the physical record
// index; the base code identifies the logical order.
const CodeSeparator = "-"

// Task represents one physical tracking record of a work order.
// A logical order that occupies several production slots is stored as
// several tasks sharing the same base code ("500-1", "500-2", ...).
type Task struct {
	ID              int              `gorm:"primaryKey;autoIncrement" json:"id"`
	UniqueCode      string           `gorm:"type:varchar(50);not null;index" json:"uniqueCode"`
	Archived        bool             `gorm:"not null;default:false;index" json:"archived"`
	Stocked         bool             `gorm:"not null;default:false;index" json:"stocked"`
	DeliveryDate    *time.Time       `gorm:"column:delivery_date" json:"deliveryDate,omitempty"`
	SellPrice       *decimal.Decimal `gorm:"type:numeric(12,2);column:sell_price" json:"sellPrice,omitempty"`
	ActualSellPrice *decimal.Decimal `gorm:"type:numeric(12,2);column:actual_sell_price" json:"actualSellPrice,omitempty"`
	Positions       pq.StringArray   `gorm:"type:text[]" json:"positions"`
	KanbanColumnID  *int             `gorm:"column:kanban_column_id;index" json:"kanbanColumnId,omitempty"`
	Column          *KanbanColumn    `gorm:"foreignKey:KanbanColumnID" json:"column,omitempty"`
	ProductID       *int             `gorm:"column:product_id;index" json:"productId,omitempty"`
	Product         *Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	QCDoneAt        *time.Time       `gorm:"column:qc_done_at" json:"qcDoneAt,omitempty"`
	SiteID          SiteID           `gorm:"type:varchar(50);not null;index" json:"siteId"`
	CreatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// BaseCode returns the part of the unique code before the first separator.
// A code without a separator is its own base code. Empty codes yield "".
func (t Task) BaseCode() string {
	code, _, _ := strings.Cut(t.UniqueCode, CodeSeparator)
	return code
}

// StageIdentifier returns the identifier of the task's current column,
// or "" when the task is not on the board.
func (t Task) StageIdentifier() string {
	if t.Column == nil {
		return ""
	}
	return t.Column.Identifier
}

// ProductName returns the task's product name, or "" when unset
func (t Task) ProductName() string {
	if t.Product == nil {
		return ""
	}
	return t.Product.Name
}

// ActionType classifies entries in the state-change log
type ActionType string

const (
	ActionMoveTask   ActionType = "move_task"
	ActionCreateTask ActionType = "create_task"
	ActionUpdateTask ActionType = "update_task"
)

// Action represents one entry in the state-change log. Only move_task
// actions feed the weekly/monthly production-value aggregation; the
// other kinds exist for the activity feed.
type Action struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      ActionType `gorm:"type:varchar(50);not null;index" json:"type"`
	TaskID    *int       `gorm:"column:task_id;index" json:"taskId,omitempty"`
	UserEmail string     `gorm:"type:varchar(255)" json:"userEmail,omitempty"`
	SiteID    SiteID     `gorm:"type:varchar(50);not null;index" json:"siteId"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

// UserRoleType represents a user's role within a site
type UserRoleType string

const (
	RoleSuperAdmin UserRoleType = "superadmin"
	RoleSiteAdmin  UserRoleType = "site_admin"
	RoleOperator   UserRoleType = "operator"
	RoleViewer     UserRoleType = "viewer"
)
