package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Site IDs seeded for every test run
const (
	TestSiteMain      domain.SiteID = "test-main"
	TestSiteSecondary domain.SiteID = "test-secondary"
)

// SetupTestDB creates a connection to the test PostgreSQL database.
// It uses environment variables or falls back to docker-compose defaults.
func SetupTestDB(t *testing.T) *gorm.DB {
	host := getEnvOrDefault("DATABASE_HOST", "localhost")
	port := getEnvOrDefault("DATABASE_PORT", "5432")
	user := getEnvOrDefault("DATABASE_USER", "santini_user")
	password := getEnvOrDefault("DATABASE_PASSWORD", "santini_password")
	dbname := getEnvOrDefault("DATABASE_NAME", "santini_test")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database. Ensure PostgreSQL is running.")

	require.NoError(t, db.AutoMigrate(
		&domain.Site{},
		&domain.KanbanColumn{},
		&domain.Product{},
		&domain.Task{},
		&domain.Action{},
	))

	EnsureTestSites(t, db)

	return db
}

// CleanupTestData cleans up test data from all tables.
// This should be called after tests to ensure a clean state.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	tables := []string{
		"actions",
		"tasks",
		"products",
		"kanban_columns",
	}

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IS NOT NULL", table)).Error
		if err != nil {
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}
}

// EnsureTestSites creates the test site records if they don't exist
func EnsureTestSites(t *testing.T, db *gorm.DB) {
	sites := []struct {
		id   domain.SiteID
		name string
	}{
		{TestSiteMain, "Main Test Site"},
		{TestSiteSecondary, "Secondary Test Site"},
	}

	for _, s := range sites {
		err := db.Exec(`
			INSERT INTO sites (id, name, timezone, is_active, created_at, updated_at)
			VALUES ($1, $2, 'Europe/Rome', true, NOW(), NOW())
			ON CONFLICT (id) DO NOTHING
		`, s.id, s.name).Error
		if err != nil {
			t.Logf("Note: Could not insert site %s: %v", s.id, err)
		}
	}
}

// CreateTestColumn creates a kanban column with the given identifier
func CreateTestColumn(t *testing.T, db *gorm.DB, siteID domain.SiteID, identifier string) *domain.KanbanColumn {
	col := &domain.KanbanColumn{
		Identifier: identifier,
		Title:      identifier,
		SiteID:     siteID,
	}
	err := db.Omit(clause.Associations).Create(col).Error
	require.NoError(t, err)
	return col
}

// CreateTestProduct creates a product with the given name
func CreateTestProduct(t *testing.T, db *gorm.DB, siteID domain.SiteID, name string) *domain.Product {
	product := &domain.Product{
		Name:   name,
		SiteID: siteID,
	}
	err := db.Omit(clause.Associations).Create(product).Error
	require.NoError(t, err)
	return product
}

// CreateTestTask creates a task and returns it. Pass nil for column or
// product to create an unassigned task.
func CreateTestTask(t *testing.T, db *gorm.DB, siteID domain.SiteID, code string, col *domain.KanbanColumn, product *domain.Product) *domain.Task {
	task := &domain.Task{
		UniqueCode: code,
		SiteID:     siteID,
	}
	if col != nil {
		task.KanbanColumnID = &col.ID
	}
	if product != nil {
		task.ProductID = &product.ID
	}
	err := db.Omit(clause.Associations).Create(task).Error
	require.NoError(t, err)
	return task
}

// TimePtr returns a pointer to t, for optional timestamp fields
func TimePtr(t time.Time) *time.Time {
	return &t
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
