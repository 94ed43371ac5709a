package metrics

import (
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// MoneyField selects a monetary field from a task
type MoneyField func(domain.Task) *decimal.Decimal

// SellPrice selects the agreed sell price
func SellPrice(t domain.Task) *decimal.Decimal { return t.SellPrice }

// ActualSellPrice selects the invoiced sell price
func ActualSellPrice(t domain.Task) *decimal.Decimal { return t.ActualSellPrice }

// ProductionValue selects the invoiced price when set, otherwise the
// agreed price. This is the value a completed order contributes to the
// weekly production total.
func ProductionValue(t domain.Task) *decimal.Decimal {
	if t.ActualSellPrice != nil && !t.ActualSellPrice.IsZero() {
		return t.ActualSellPrice
	}
	return t.SellPrice
}

// CountByStage tallies logical orders per current board column
func CountByStage(groups map[string]GroupedOrder) map[string]int {
	counts := make(map[string]int)
	for _, g := range groups {
		counts[g.Representative.StageIdentifier()]++
	}
	return counts
}

// SumMoney sums a monetary field across tasks with exact decimal
// arithmetic. Tasks without a value contribute zero.
func SumMoney(tasks []domain.Task, field MoneyField) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range tasks {
		if v := field(t); v != nil {
			sum = sum.Add(*v)
		}
	}
	return sum
}

// CountNonEmptyPositions sums the filled production slots across tasks.
// An empty string entry is a placeholder slot and does not count.
func CountNonEmptyPositions(tasks []domain.Task) int {
	total := 0
	for _, t := range tasks {
		total += nonEmptyPositions(t)
	}
	return total
}

func nonEmptyPositions(t domain.Task) int {
	n := 0
	for _, p := range t.Positions {
		if p != "" {
			n++
		}
	}
	return n
}

// CountDueInSpan counts tasks whose delivery date falls in the
// half-open interval [start, end). Tasks without a delivery date are
// excluded from delivery-based counts.
func CountDueInSpan(tasks []domain.Task, start, end time.Time) int {
	count := 0
	for _, t := range tasks {
		if t.DeliveryDate == nil {
			continue
		}
		d := *t.DeliveryDate
		if !d.Before(start) && d.Before(end) {
			count++
		}
	}
	return count
}

// CountDueWithin counts tasks due within [today, today+days], both
// bounds inclusive. days == 0 means due today.
func CountDueWithin(tasks []domain.Task, clock ReferenceClock, days int) int {
	start := clock.Today()
	end := start.AddDate(0, 0, days+1)
	return CountDueInSpan(tasks, start, end)
}

// CountQCDoneOn counts tasks whose quality control finished on the
// given calendar day
func CountQCDoneOn(tasks []domain.Task, day time.Time) int {
	count := 0
	for _, t := range tasks {
		if t.QCDoneAt == nil {
			continue
		}
		y1, m1, d1 := t.QCDoneAt.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			count++
		}
	}
	return count
}

// PercentageOfGoal returns actual/goal on a 0-100 scale, uncapped; the
// presentation layer decides whether to clamp the display at 100.
// A non-positive goal yields zero rather than a division error.
func PercentageOfGoal(actual, goal decimal.Decimal) decimal.Decimal {
	if goal.Sign() <= 0 {
		return decimal.Zero
	}
	return actual.Div(goal).Mul(decimal.NewFromInt(100))
}

// RemainingToGoal returns goal-actual floored at zero
func RemainingToGoal(actual, goal decimal.Decimal) decimal.Decimal {
	remaining := goal.Sub(actual)
	if remaining.Sign() < 0 {
		return decimal.Zero
	}
	return remaining
}

// CategoryFold merges a configured set of product names into one
// synthetic category before aggregation, so the merged bucket's count
// is a true sum instead of a last-write-wins overwrite.
type CategoryFold struct {
	label   string
	members map[string]struct{}
}

// DefaultFoldLabel is the synthetic category uncategorized and folded
// products land in
const DefaultFoldLabel = "Altro"

// NewCategoryFold creates a fold that maps each of the given product
// names, and every task without a product, to label
func NewCategoryFold(label string, products []string) *CategoryFold {
	if label == "" {
		label = DefaultFoldLabel
	}
	members := make(map[string]struct{}, len(products))
	for _, p := range products {
		members[p] = struct{}{}
	}
	return &CategoryFold{label: label, members: members}
}

// Apply returns the category a product name aggregates under
func (f *CategoryFold) Apply(name string) string {
	if name == "" {
		return f.label
	}
	if _, ok := f.members[name]; ok {
		return f.label
	}
	return name
}

// CategoryAggregate holds one categorical rollup bucket
type CategoryAggregate struct {
	Orders int
	Pieces int
}

// GroupByCategory reduces tasks into per-category aggregates. The fold
// is applied to each key before accumulation, never after, so folded
// categories sum correctly. Every task lands in exactly one category
// (keyless tasks fold into the synthetic label), which is what makes
// the per-category piece counts add up to the independent total.
func GroupByCategory(tasks []domain.Task, key func(domain.Task) string, fold *CategoryFold) map[string]CategoryAggregate {
	out := make(map[string]CategoryAggregate)
	for _, t := range tasks {
		category := fold.Apply(key(t))
		agg := out[category]
		agg.Orders++
		agg.Pieces += nonEmptyPositions(t)
		out[category] = agg
	}
	return out
}
