package metrics_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/bizzul/santini-manager-sub003/internal/metrics"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, mid-September 2025. September weeks start on the 1st,
// 8th, 15th, 22nd and 29th.
var wednesday = time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

func testConfig() metrics.Config {
	return metrics.Config{
		WeeklyValueTarget: decimal.NewFromInt(2000),
		FoldLabel:         "Altro",
	}
}

func TestAssemble_RequiresClock(t *testing.T) {
	var zero metrics.ReferenceClock

	_, err := metrics.Assemble(metrics.Inputs{}, zero, testConfig())

	assert.ErrorIs(t, err, metrics.ErrMissingClock)
}

func TestAssemble_RequiresPositiveGoal(t *testing.T) {
	clock := metrics.NewReferenceClock(wednesday)

	for _, goal := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		cfg := testConfig()
		cfg.WeeklyValueTarget = goal

		_, err := metrics.Assemble(metrics.Inputs{}, clock, cfg)
		assert.ErrorIs(t, err, metrics.ErrInvalidGoal)
	}
}

func TestAssemble_ProductionSnapshot(t *testing.T) {
	serramenti := &domain.Product{ID: 1, Name: "Serramenti"}
	produzione := &domain.KanbanColumn{ID: 1, Identifier: "PRODUZIONE"}

	delivery := time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)
	qcDone := time.Date(2025, time.September, 10, 15, 30, 0, 0, time.UTC)

	in := metrics.Inputs{
		Active: []domain.Task{
			{
				ID:           1,
				UniqueCode:   "500-1",
				Product:      serramenti,
				Column:       produzione,
				Positions:    pq.StringArray{"x", "y"},
				SellPrice:    money("1000"),
				DeliveryDate: &delivery,
				QCDoneAt:     &qcDone,
			},
			{
				ID:         2,
				UniqueCode: "500-2",
				Product:    serramenti,
				Column:     produzione,
				Positions:  pq.StringArray{"z"},
				SellPrice:  money("500"),
			},
		},
		Stocked: []domain.Task{
			{ID: 10, UniqueCode: "600-1", Stocked: true},
		},
	}

	result, err := metrics.Assemble(in, metrics.NewReferenceClock(wednesday), testConfig())
	require.NoError(t, err)

	p := result.Production

	// The two sub-orders of 500 are one logical order
	assert.Equal(t, 1, p.ActiveOrderCount)
	assert.Equal(t, map[string]int{"PRODUZIONE": 1}, p.StageCounts)
	assert.Equal(t, 1, p.StockedOrderCount)

	// Money comes from the representative only, never summed twice
	assert.True(t, p.TotalSellValueAtCompletion.Equal(decimal.NewFromInt(1000)),
		"got %s", p.TotalSellValueAtCompletion)
	assert.True(t, p.TotalActualSellValue.IsZero())

	// Positions span every physical record
	assert.Equal(t, 3, p.TotalPositionsInProduction)
	assert.Equal(t, map[string]int{"Serramenti": 3}, p.PiecesByCategory)

	// Representative delivers Friday of the current week
	assert.Equal(t, 0, p.DueToday)
	assert.Equal(t, 1, p.DueThisWeek)

	assert.Equal(t, 1, p.QualityControlDoneToday)
	assert.Equal(t, 0, result.SkippedRecords)
}

func TestAssemble_WeeklyThroughput(t *testing.T) {
	serramenti := &domain.Product{ID: 1, Name: "Serramenti"}

	active1 := domain.Task{ID: 1, UniqueCode: "500-1", Product: serramenti,
		Positions: pq.StringArray{"x", "y"}, SellPrice: money("1000")}
	active2 := domain.Task{ID: 2, UniqueCode: "500-2", Product: serramenti,
		Positions: pq.StringArray{"z"}, SellPrice: money("500")}
	done := domain.Task{ID: 20, UniqueCode: "700-1", Product: serramenti,
		Positions: pq.StringArray{"p"}, SellPrice: money("1800"), ActualSellPrice: money("2000")}

	taskID := func(id int) *int { return &id }

	at := func(day, hour int) time.Time {
		return time.Date(2025, time.September, day, hour, 0, 0, 0, time.UTC)
	}

	in := metrics.Inputs{
		Active:       []domain.Task{active1, active2},
		DoneInWindow: []domain.Task{done},
		Events: []domain.Action{
			// First week of September
			{ID: 1, Type: domain.ActionMoveTask, TaskID: taskID(20), CreatedAt: at(2, 10)},
			// Second week: task 1 moved twice, counted once
			{ID: 2, Type: domain.ActionMoveTask, TaskID: taskID(1), CreatedAt: at(9, 10)},
			{ID: 3, Type: domain.ActionMoveTask, TaskID: taskID(1), CreatedAt: at(11, 14)},
			{ID: 4, Type: domain.ActionMoveTask, TaskID: taskID(2), CreatedAt: at(9, 16)},
			// Saturday move lands in no business week
			{ID: 5, Type: domain.ActionMoveTask, TaskID: taskID(2), CreatedAt: at(13, 10)},
			// Unresolvable events are skipped and reported
			{ID: 6, Type: domain.ActionMoveTask, TaskID: nil, CreatedAt: at(9, 11)},
			{ID: 7, Type: domain.ActionMoveTask, TaskID: taskID(999), CreatedAt: at(9, 12)},
			// Other action types and other months are ignored
			{ID: 8, Type: domain.ActionCreateTask, TaskID: taskID(1), CreatedAt: at(9, 9)},
			{ID: 9, Type: domain.ActionMoveTask, TaskID: taskID(1),
				CreatedAt: time.Date(2025, time.August, 29, 10, 0, 0, 0, time.UTC)},
		},
	}

	result, err := metrics.Assemble(in, metrics.NewReferenceClock(wednesday), testConfig())
	require.NoError(t, err)

	w := result.Weekly
	require.Len(t, w.PerWeek, 5)

	// Week of Sep 1: the completed order, valued at its invoiced price
	first := w.PerWeek[0]
	assert.Equal(t, 1, first.TotalPieces)
	assert.True(t, first.TotalValue.Equal(decimal.NewFromInt(2000)), "got %s", first.TotalValue)
	assert.True(t, first.PercentageOfGoal.Equal(decimal.NewFromInt(100)), "got %s", first.PercentageOfGoal)
	assert.True(t, first.RemainingToGoal.IsZero())

	// Week of Sep 8: tasks 1 and 2, the double move deduplicated
	second := w.PerWeek[1]
	assert.Equal(t, 3, second.TotalPieces)
	assert.True(t, second.TotalValue.Equal(decimal.NewFromInt(1500)), "got %s", second.TotalValue)
	assert.True(t, second.PercentageOfGoal.Equal(decimal.NewFromInt(75)), "got %s", second.PercentageOfGoal)
	assert.True(t, second.RemainingToGoal.Equal(decimal.NewFromInt(500)), "got %s", second.RemainingToGoal)
	assert.Equal(t, map[string]int{"Serramenti": 3}, second.PiecesByProduct)

	// Remaining weeks are empty
	for i := 2; i < 5; i++ {
		assert.Equal(t, 0, w.PerWeek[i].TotalPieces)
		assert.True(t, w.PerWeek[i].TotalValue.IsZero())
	}

	assert.True(t, w.MonthTotalValue.Equal(decimal.NewFromInt(3500)), "got %s", w.MonthTotalValue)
	assert.Equal(t, 2, result.SkippedRecords)
}

func TestAssemble_AnnualTrend(t *testing.T) {
	serramenti := &domain.Product{ID: 1, Name: "Serramenti"}
	ricambi := &domain.Product{ID: 2, Name: "Ricambi"}

	deliver := func(y int, m time.Month, d int) *time.Time {
		ts := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}

	in := metrics.Inputs{
		DoneInWindow: []domain.Task{
			{ID: 20, UniqueCode: "700-1", Product: serramenti,
				Positions: pq.StringArray{"p"}, DeliveryDate: deliver(2025, time.March, 10)},
			{ID: 21, UniqueCode: "700-2", Product: serramenti,
				Positions: pq.StringArray{"q", "r"}, DeliveryDate: deliver(2025, time.March, 10)},
			{ID: 22, UniqueCode: "800-1", Product: ricambi,
				Positions: pq.StringArray{"s"}, DeliveryDate: deliver(2021, time.June, 1)},
			{ID: 23, UniqueCode: "900-1", Product: ricambi,
				Positions: pq.StringArray{"t"}},
			{ID: 24, UniqueCode: "310-1", Product: ricambi,
				Positions: pq.StringArray{"u"}, DeliveryDate: deliver(2019, time.June, 1)},
		},
	}

	result, err := metrics.Assemble(in, metrics.NewReferenceClock(wednesday), testConfig())
	require.NoError(t, err)

	a := result.Annual
	require.Len(t, a.PerYear, 5)
	for year := 2021; year <= 2025; year++ {
		assert.Contains(t, a.PerYear, year)
	}

	// 700-1 and 700-2 are one order; their pieces still both count
	assert.Equal(t, map[string]int{"Serramenti": 1}, a.PerYear[2025].OrdersByProduct)
	assert.Equal(t, 3, a.PerYear[2025].PiecesTotal)

	assert.Equal(t, map[string]int{"Ricambi": 1}, a.PerYear[2021].OrdersByProduct)
	assert.Equal(t, 1, a.PerYear[2021].PiecesTotal)

	// No delivery date and out-of-window years contribute nothing
	assert.Equal(t, 0, a.PerYear[2022].PiecesTotal)
	assert.Empty(t, a.PerYear[2022].OrdersByProduct)
}

func TestAssemble_Idempotent(t *testing.T) {
	in := randomInputs(rand.New(rand.NewSource(7)))
	clock := metrics.NewReferenceClock(wednesday)

	first, err := metrics.Assemble(in, clock, testConfig())
	require.NoError(t, err)

	second, err := metrics.Assemble(in, clock, testConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssemble_PiecesByCategoryMatchesTotal(t *testing.T) {
	clock := metrics.NewReferenceClock(wednesday)

	for seed := int64(0); seed < 25; seed++ {
		in := randomInputs(rand.New(rand.NewSource(seed)))

		result, err := metrics.Assemble(in, clock, testConfig())
		require.NoError(t, err)

		sum := 0
		for _, n := range result.Production.PiecesByCategory {
			sum += n
		}
		assert.Equal(t, result.Production.TotalPositionsInProduction, sum,
			"seed %d: per-category pieces must add up to the total", seed)
	}
}

// randomInputs generates an arbitrary active subset with mixed products,
// missing products, placeholder slots and multi-slot orders
func randomInputs(rng *rand.Rand) metrics.Inputs {
	products := []*domain.Product{
		{ID: 1, Name: "Serramenti"},
		{ID: 2, Name: "Ricambi"},
		nil,
	}

	n := 5 + rng.Intn(20)
	active := make([]domain.Task, 0, n)
	for i := 0; i < n; i++ {
		positions := make(pq.StringArray, rng.Intn(4))
		for j := range positions {
			if rng.Intn(3) > 0 {
				positions[j] = fmt.Sprintf("pos-%d-%d", i, j)
			}
		}
		active = append(active, domain.Task{
			ID:         i + 1,
			UniqueCode: fmt.Sprintf("%d-%d", 100+rng.Intn(8), 1+rng.Intn(3)),
			Product:    products[rng.Intn(len(products))],
			Positions:  positions,
			SellPrice:  money(fmt.Sprintf("%d", rng.Intn(5000))),
		})
	}
	return metrics.Inputs{Active: active}
}
