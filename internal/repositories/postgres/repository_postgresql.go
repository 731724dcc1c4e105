package postgres

import (
	"context"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/repositories"
	"gorm.io/gorm"
)

type postgresRepository struct {
	violation repositories.ViolationRepository
	attempt   repositories.AttemptRepository
	audit     repositories.AuditRepository
}

// NewRepository wires all postgres repositories against one gorm handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &postgresRepository{
		violation: NewViolationPostgreSQL(db),
		attempt:   NewAttemptPostgreSQL(db),
		audit:     NewAuditPostgreSQL(db),
	}
}

func (r *postgresRepository) Violation() repositories.ViolationRepository { return r.violation }
func (r *postgresRepository) Attempt() repositories.AttemptRepository     { return r.attempt }
func (r *postgresRepository) Audit() repositories.AuditRepository         { return r.audit }

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a AttemptPostgreSQL) GetByID(ctx context.Context, id uint) (*models.AssessmentAttempt, error) {
	var attempt models.AssessmentAttempt
	if err := a.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

type AuditPostgreSQL struct {
	db *gorm.DB
}

func NewAuditPostgreSQL(db *gorm.DB) repositories.AuditRepository {
	return &AuditPostgreSQL{db: db}
}

func (a AuditPostgreSQL) Create(ctx context.Context, log *models.AuditLog) error {
	return a.db.WithContext(ctx).Create(log).Error
}
