package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/auth"
	"github.com/bizzul/santini-manager-sub003/internal/config"
	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/bizzul/santini-manager-sub003/internal/repository"
	"github.com/bizzul/santini-manager-sub003/internal/service"
	"github.com/bizzul/santini-manager-sub003/tests/testutil"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDashboardServiceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createDashboardService(db *gorm.DB, cfg *config.DashboardConfig) *service.DashboardService {
	logger := zap.NewNop()
	taskRepo := repository.NewTaskRepository(db)
	actionRepo := repository.NewActionRepository(db)
	return service.NewDashboardService(taskRepo, actionRepo, cfg, logger)
}

func dashboardTestConfig() *config.DashboardConfig {
	return &config.DashboardConfig{
		WeeklyValueTarget: "2000",
		FoldLabel:         "Altro",
		CacheTTL:          60,
	}
}

func mainSiteContext() context.Context {
	siteID := testutil.TestSiteMain
	return auth.WithSiteFilter(context.Background(), &auth.SiteFilter{SiteID: &siteID})
}

func TestDashboardService_GetMetrics(t *testing.T) {
	db := setupDashboardServiceTestDB(t)
	svc := createDashboardService(db, dashboardTestConfig())

	produzione := testutil.CreateTestColumn(t, db, testutil.TestSiteMain, "PRODUZIONE")
	spedito := testutil.CreateTestColumn(t, db, testutil.TestSiteMain, domain.ColumnShipped)
	product := testutil.CreateTestProduct(t, db, testutil.TestSiteMain, "Serramenti")

	// One logical order split over two production slots
	first := testutil.CreateTestTask(t, db, testutil.TestSiteMain, "500-1", produzione, product)
	require.NoError(t, db.Model(first).Updates(map[string]interface{}{
		"positions":  pq.StringArray{"x", "y"},
		"sell_price": decimal.NewFromInt(1000),
	}).Error)

	second := testutil.CreateTestTask(t, db, testutil.TestSiteMain, "500-2", produzione, product)
	require.NoError(t, db.Model(second).Updates(map[string]interface{}{
		"positions":  pq.StringArray{"z"},
		"sell_price": decimal.NewFromInt(500),
	}).Error)

	// A completed order delivered in March of the reference year
	done := testutil.CreateTestTask(t, db, testutil.TestSiteMain, "700-1", spedito, product)
	require.NoError(t, db.Model(done).Updates(map[string]interface{}{
		"positions":         pq.StringArray{"p"},
		"sell_price":        decimal.NewFromInt(1800),
		"actual_sell_price": decimal.NewFromInt(2000),
		"delivery_date":     time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}).Error)

	// The active order moved during the second week of September
	move := &domain.Action{Type: domain.ActionMoveTask, TaskID: &first.ID, SiteID: testutil.TestSiteMain}
	require.NoError(t, db.Create(move).Error)
	require.NoError(t, db.Model(move).Update("created_at",
		time.Date(2025, time.September, 9, 10, 0, 0, 0, time.UTC)).Error)

	at := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)
	result, err := svc.GetMetrics(mainSiteContext(), at)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Production.ActiveOrderCount)
	assert.Equal(t, 3, result.Production.TotalPositionsInProduction)
	assert.Equal(t, map[string]int{"Serramenti": 3}, result.Production.PiecesByCategory)
	assert.True(t, result.Production.TotalSellValueAtCompletion.Equal(decimal.NewFromInt(1000)),
		"got %s", result.Production.TotalSellValueAtCompletion)

	require.Len(t, result.Weekly.PerWeek, 5)
	week := result.Weekly.PerWeek[1]
	assert.Equal(t, 2, week.TotalPieces)
	assert.True(t, week.TotalValue.Equal(decimal.NewFromInt(1000)), "got %s", week.TotalValue)
	assert.True(t, week.PercentageOfGoal.Equal(decimal.NewFromInt(50)), "got %s", week.PercentageOfGoal)

	require.Contains(t, result.Annual.PerYear, 2025)
	assert.Equal(t, map[string]int{"Serramenti": 1}, result.Annual.PerYear[2025].OrdersByProduct)
	assert.Equal(t, 1, result.Annual.PerYear[2025].PiecesTotal)

	assert.Equal(t, 0, result.SkippedRecords)
	assert.Equal(t, at, result.ReferenceDate.UTC())
}

func TestDashboardService_CurrentMetricsAreCached(t *testing.T) {
	db := setupDashboardServiceTestDB(t)
	svc := createDashboardService(db, dashboardTestConfig())
	ctx := mainSiteContext()

	first, err := svc.GetMetrics(ctx, time.Time{})
	require.NoError(t, err)

	second, err := svc.GetMetrics(ctx, time.Time{})
	require.NoError(t, err)

	assert.Same(t, first, second, "second current-time read should hit the cache")
}

func TestDashboardService_ExplicitDateBypassesCache(t *testing.T) {
	db := setupDashboardServiceTestDB(t)
	svc := createDashboardService(db, dashboardTestConfig())
	ctx := mainSiteContext()

	at := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	first, err := svc.GetMetrics(ctx, at)
	require.NoError(t, err)

	second, err := svc.GetMetrics(ctx, at)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "historical reads recompute every time")
}

func TestDashboardService_CacheIsPerSite(t *testing.T) {
	db := setupDashboardServiceTestDB(t)
	svc := createDashboardService(db, dashboardTestConfig())

	mainResult, err := svc.GetMetrics(mainSiteContext(), time.Time{})
	require.NoError(t, err)

	secondary := testutil.TestSiteSecondary
	secondaryCtx := auth.WithSiteFilter(context.Background(), &auth.SiteFilter{SiteID: &secondary})
	secondaryResult, err := svc.GetMetrics(secondaryCtx, time.Time{})
	require.NoError(t, err)

	assert.NotSame(t, mainResult, secondaryResult)
}

func TestDashboardService_Refresh(t *testing.T) {
	db := setupDashboardServiceTestDB(t)
	svc := createDashboardService(db, dashboardTestConfig())
	ctx := mainSiteContext()

	require.NoError(t, svc.Refresh(ctx))

	// The refreshed entry serves the next current-time read
	result, err := svc.GetMetrics(ctx, time.Time{})
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestDashboardService_BadGoalConfig(t *testing.T) {
	db := setupDashboardServiceTestDB(t)
	svc := createDashboardService(db, &config.DashboardConfig{
		WeeklyValueTarget: "not-a-number",
		CacheTTL:          60,
	})

	_, err := svc.GetMetrics(mainSiteContext(), time.Time{})
	assert.ErrorIs(t, err, service.ErrBadGoalConfig)
}
