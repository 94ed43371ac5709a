package metrics

import (
	"errors"
	"fmt"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Configuration errors are fatal: a dashboard computed against a
// missing clock or goal would render misleading numbers, so the
// assembler refuses to run instead of defaulting.
var (
	ErrMissingClock = errors.New("metrics: reference clock not set")
	ErrInvalidGoal  = errors.New("metrics: weekly value target must be positive")
)

// Inputs carries the named, already-filtered subsets the engine reduces.
// The query layer owns the filtering rules (active means not archived,
// not stocked, not shipped, not backlog); the assembler only computes
// consistent rollups across whatever it is handed.
type Inputs struct {
	// Active tasks currently in production
	Active []domain.Task
	// Stocked tasks: produced but held
	Stocked []domain.Task
	// DoneInWindow tasks completed inside the rolling 5-year window
	DoneInWindow []domain.Task
	// Events are move_task log entries for the reference month
	Events []domain.Action
}

// Config holds the goal and category-fold settings for one assembly
type Config struct {
	// WeeklyValueTarget is the monetary production goal per business week
	WeeklyValueTarget decimal.Decimal
	// FoldLabel is the synthetic category folded products merge into
	FoldLabel string
	// FoldProducts lists product names folded into FoldLabel
	FoldProducts []string
}

// Assemble reduces the input subsets into one DashboardMetrics object.
// It is idempotent: identical inputs and clock produce identical
// results. Malformed records are skipped and reported through
// SkippedRecords; configuration problems fail the whole assembly.
func Assemble(in Inputs, clock ReferenceClock, cfg Config) (*domain.DashboardMetrics, error) {
	if clock.IsZero() {
		return nil, ErrMissingClock
	}
	if cfg.WeeklyValueTarget.Sign() <= 0 {
		return nil, fmt.Errorf("%w (got %s)", ErrInvalidGoal, cfg.WeeklyValueTarget)
	}

	fold := NewCategoryFold(cfg.FoldLabel, cfg.FoldProducts)
	skipped := 0

	production, n := assembleProduction(in, clock, fold)
	skipped += n

	weekly, n := assembleWeekly(in, clock, cfg, fold)
	skipped += n

	annual, n := assembleAnnual(in, clock)
	skipped += n

	return &domain.DashboardMetrics{
		Production:     production,
		Weekly:         weekly,
		Annual:         annual,
		SkippedRecords: skipped,
		ReferenceDate:  clock.Time(),
	}, nil
}

// assembleProduction builds the production snapshot from the active and
// stocked subsets. Order counts and money sums use one representative
// per logical order so a multi-slot order is never double counted;
// position counts span all physical records, because each record tracks
// its own slots.
func assembleProduction(in Inputs, clock ReferenceClock, fold *CategoryFold) (domain.ProductionSnapshot, int) {
	activeGroups, skipped := Group(in.Active)
	reps := Representatives(activeGroups)

	stockedGroups, n := Group(in.Stocked)
	skipped += n

	week := WeekOf(clock.Time())

	byCategory := GroupByCategory(in.Active, domain.Task.ProductName, fold)
	pieces := make(map[string]int, len(byCategory))
	for category, agg := range byCategory {
		pieces[category] = agg.Pieces
	}

	return domain.ProductionSnapshot{
		StageCounts:                CountByStage(activeGroups),
		TotalSellValueAtCompletion: SumMoney(reps, SellPrice),
		TotalActualSellValue:       SumMoney(reps, ActualSellPrice),
		TotalPositionsInProduction: CountNonEmptyPositions(in.Active),
		ActiveOrderCount:           len(activeGroups),
		StockedOrderCount:          len(stockedGroups),
		DueToday:                   CountDueWithin(reps, clock, 0),
		DueThisWeek:                CountDueInSpan(reps, week.Start, week.End),
		QualityControlDoneToday:    CountQCDoneOn(in.Active, clock.Today()),
		PiecesByCategory:           pieces,
	}, skipped
}

// assembleWeekly buckets the month's move events into business weeks
// and reduces each week's moved tasks against the goal. A task moved
// more than once inside the same week counts once; an event whose task
// cannot be resolved is skipped and reported.
func assembleWeekly(in Inputs, clock ReferenceClock, cfg Config, fold *CategoryFold) (domain.WeeklyThroughput, int) {
	weeks := WeeksOfMonth(clock)
	month := MonthOf(clock.Time())
	index := indexTasks(in)

	weekTasks := make([][]domain.Task, len(weeks))
	seen := make([]map[int]bool, len(weeks))
	for i := range weeks {
		seen[i] = make(map[int]bool)
	}

	skipped := 0
	for _, ev := range in.Events {
		if ev.Type != domain.ActionMoveTask || !month.Contains(ev.CreatedAt) {
			continue
		}
		if ev.TaskID == nil {
			skipped++
			continue
		}
		task, ok := index[*ev.TaskID]
		if !ok {
			skipped++
			continue
		}
		for i, w := range weeks {
			if !w.Contains(ev.CreatedAt) {
				continue
			}
			if !seen[i][task.ID] {
				seen[i][task.ID] = true
				weekTasks[i] = append(weekTasks[i], task)
			}
			break
		}
	}

	out := domain.WeeklyThroughput{
		PerWeek:         make([]domain.WeekThroughput, len(weeks)),
		MonthTotalValue: decimal.Zero,
	}
	for i, w := range weeks {
		tasks := weekTasks[i]
		value := SumMoney(tasks, ProductionValue)

		byProduct := GroupByCategory(tasks, domain.Task.ProductName, fold)
		pieces := make(map[string]int, len(byProduct))
		for product, agg := range byProduct {
			pieces[product] = agg.Pieces
		}

		out.PerWeek[i] = domain.WeekThroughput{
			WeekNumber:       w.Number,
			WeekStart:        w.Start,
			TotalPieces:      CountNonEmptyPositions(tasks),
			TotalValue:       value,
			PercentageOfGoal: PercentageOfGoal(value, cfg.WeeklyValueTarget),
			RemainingToGoal:  RemainingToGoal(value, cfg.WeeklyValueTarget),
			PiecesByProduct:  pieces,
		}
		out.MonthTotalValue = out.MonthTotalValue.Add(value)
	}
	return out, skipped
}

// assembleAnnual buckets completed orders into the rolling 5-year
// window by delivery year. Order counts come from grouped
// representatives; piece counts span all physical records. Tasks
// without a delivery date stay out of every year bucket.
func assembleAnnual(in Inputs, clock ReferenceClock) (domain.AnnualTrend, int) {
	from, to := YearWindow(clock)

	perYear := make(map[int]domain.YearTrend, to-from+1)
	for year := from; year <= to; year++ {
		perYear[year] = domain.YearTrend{OrdersByProduct: make(map[string]int)}
	}

	groups, skipped := Group(in.DoneInWindow)
	for _, g := range groups {
		rep := g.Representative
		if rep.DeliveryDate == nil {
			continue
		}
		year := rep.DeliveryDate.Year()
		trend, ok := perYear[year]
		if !ok {
			continue
		}
		trend.OrdersByProduct[rep.ProductName()]++
		perYear[year] = trend
	}

	for _, t := range in.DoneInWindow {
		if t.DeliveryDate == nil {
			continue
		}
		year := t.DeliveryDate.Year()
		trend, ok := perYear[year]
		if !ok {
			continue
		}
		trend.PiecesTotal += nonEmptyPositions(t)
		perYear[year] = trend
	}

	return domain.AnnualTrend{PerYear: perYear}, skipped
}

// indexTasks builds a lookup of every input task by ID so events can be
// joined back to the orders they concern
func indexTasks(in Inputs) map[int]domain.Task {
	index := make(map[int]domain.Task)
	for _, set := range [][]domain.Task{in.Active, in.Stocked, in.DoneInWindow} {
		for _, t := range set {
			index[t.ID] = t
		}
	}
	return index
}
