package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// two tables this service owns.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the vendors and audit_logs tables. Also used by
// integration-style tests against alternate drivers.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Vendor{},
		&model.AuditLog{},
	)
}
