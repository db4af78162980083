package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LindembergOli/producao-imac-sub000/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Surfaces unique-index violations as gorm.ErrDuplicatedKey.
		TranslateError: true,
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate performs database migration for the auth tables and the
// Casbin policy table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBUser{}, &repositories.DBRefreshToken{}); err != nil {
		return fmt.Errorf("failed to migrate auth tables: %w", err)
	}

	// The adapter creates the casbin_rules table on first use.
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}
