package mysql

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-intake/internal/domain/agent"
	"rental-intake/internal/domain/application"
	"rental-intake/pkg/id"
)

// openTestDB creates an in-memory sqlite DB with the real models migrated.
// One connection, so every query and tx sees the same memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&agent.Agent{}, &agent.CustomQuestion{}, &application.Application{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedAgent(t *testing.T, db *gorm.DB, slug string) *agent.Agent {
	t.Helper()
	a := &agent.Agent{AgentID: id.NewID32(), Name: "Agent " + slug, Email: slug + "@realty.io", URLSlug: slug}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed agent: %v", err)
	}
	return a
}
