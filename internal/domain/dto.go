package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardMetrics is the engine's result object. The three blocks map
// one-to-one onto the dashboard tabs; SkippedRecords is the diagnostic
// count of malformed input records the engine dropped instead of failing.
type DashboardMetrics struct {
	Production     ProductionSnapshot `json:"production"`
	Weekly         WeeklyThroughput   `json:"weekly"`
	Annual         AnnualTrend        `json:"annual"`
	SkippedRecords int                `json:"skippedRecords"`
	ReferenceDate  time.Time          `json:"referenceDate"`
}

// ProductionSnapshot holds the "current state of the floor" tab.
// Counts are per logical order (grouped by base code); position counts
// span all physical records of the active subset.
type ProductionSnapshot struct {
	StageCounts                map[string]int  `json:"stageCounts"`
	TotalSellValueAtCompletion decimal.Decimal `json:"totalSellValueAtCompletion"`
	TotalActualSellValue       decimal.Decimal `json:"totalActualSellValue"`
	TotalPositionsInProduction int             `json:"totalPositionsInProduction"`
	ActiveOrderCount           int             `json:"activeOrderCount"`
	StockedOrderCount          int             `json:"stockedOrderCount"`
	DueToday                   int             `json:"dueToday"`
	DueThisWeek                int             `json:"dueThisWeek"`
	QualityControlDoneToday    int             `json:"qualityControlDoneToday"`
	PiecesByCategory           map[string]int  `json:"piecesByCategory"`
}

// WeekThroughput holds one business week (Mon-Fri) of the weekly tab
type WeekThroughput struct {
	WeekNumber       int             `json:"weekNumber"`
	WeekStart        time.Time       `json:"weekStart"`
	TotalPieces      int             `json:"totalPieces"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	PercentageOfGoal decimal.Decimal `json:"percentageOfGoal"`
	RemainingToGoal  decimal.Decimal `json:"remainingToGoal"`
	PiecesByProduct  map[string]int  `json:"piecesByProduct"`
}

// WeeklyThroughput holds the weekly throughput-vs-goal tab for the
// reference month
type WeeklyThroughput struct {
	PerWeek         []WeekThroughput `json:"perWeek"`
	MonthTotalValue decimal.Decimal  `json:"monthTotalValue"`
}

// YearTrend holds one calendar year of the annual trend tab
type YearTrend struct {
	OrdersByProduct map[string]int `json:"ordersByProduct"`
	PiecesTotal     int            `json:"piecesTotal"`
}

// AnnualTrend holds the rolling 5-year trend tab, keyed by calendar year
type AnnualTrend struct {
	PerYear map[int]YearTrend `json:"perYear"`
}

// ProductDTO is the API representation of a product
type ProductDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// TaskSummaryDTO is the compact task representation used by dashboard lists
type TaskSummaryDTO struct {
	ID            int              `json:"id"`
	UniqueCode    string           `json:"uniqueCode"`
	Stage         string           `json:"stage,omitempty"`
	Product       string           `json:"product,omitempty"`
	DeliveryDate  *time.Time       `json:"deliveryDate,omitempty"`
	SellPrice     *decimal.Decimal `json:"sellPrice,omitempty"`
	PositionCount int              `json:"positionCount"`
	Stocked       bool             `json:"stocked"`
}
