package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-intake/internal/config"
	"rental-intake/internal/domain/agent"
	"rental-intake/internal/domain/application"
)

// Open picks the dialector from DB_DRIVER.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return OpenGormWithDialector(mysql.Open(cfg.MySQLDSN()))
	case config.DriverSQLite:
		return OpenGormWithDialector(sqlite.Open(cfg.SQLitePath))
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// OpenGormWithDialector opens gorm on d, sizes the pool and pings once.
func OpenGormWithDialector(d gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Warn),
		TranslateError:       true,
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(d, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if d.Name() == "sqlite" {
		// single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(30)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or alters the tables for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&agent.Agent{}, &agent.CustomQuestion{}, &application.Application{})
}
