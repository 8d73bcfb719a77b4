package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"groupassign/internal/audit"
)

// AutoMigrate runs the schema migration for the audit store's single
// table. Unlike the multi-domain migration this replaces, there is no
// foreign-key ordering to respect.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(&audit.Record{}); err != nil {
		log.Error("auto migration failed", zap.Error(err))
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// DropAllTables drops the audit table. Useful for development resets.
func DropAllTables(db *gorm.DB, log *zap.Logger) error {
	log.Warn("dropping all tables")

	if err := db.Migrator().DropTable(&audit.Record{}); err != nil {
		log.Error("failed to drop tables", zap.Error(err))
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	log.Info("all tables dropped")
	return nil
}
