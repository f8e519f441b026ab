package database

import (
	"fmt"

	"github.com/issuetrack-api/logger"
	"github.com/issuetrack-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table managed by the service
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Issue{},
		&models.Comment{},
		&models.AuditLog{},
	}
}

// Migrate migrates the database schema
func Migrate(db *gorm.DB) error {
	logger.Get().Info("Migrating database schema...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Get().Info("Database schema migrated", zap.Int("tables", len(Models())))
	return nil
}
