package pkg

import (
	"fmt"

	"github.com/SAP-F-2025/proctoring-service/internal/config"
	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates the violation log tables. The attempt table is owned by
// the assessment service; only its mirror columns are migrated here for
// standalone deployments.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AssessmentAttempt{},
		&models.ViolationEvent{},
		&models.AuditLog{},
	)
}
