package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type ViolationFilters struct {
	Type      *models.ViolationType `json:"type"`
	DateFrom  *time.Time            `json:"date_from"`
	DateTo    *time.Time            `json:"date_to"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortOrder string                `json:"sort_order"` // "asc", "desc" on detection timestamp
}

// ===== REPOSITORY INTERFACES =====

// ViolationRepository is append-only by design: no update or delete
// operations exist for violation events.
type ViolationRepository interface {
	Create(ctx context.Context, event *models.ViolationEvent) error
	GetByID(ctx context.Context, id uint) (*models.ViolationEvent, error)
	GetByAttempt(ctx context.Context, attemptID uint) ([]*models.ViolationEvent, error)
	GetByAssessment(ctx context.Context, assessmentID uint, filters ViolationFilters) ([]*models.ViolationEvent, int64, error)
	GetByStudent(ctx context.Context, studentID uint, filters ViolationFilters) ([]*models.ViolationEvent, int64, error)
	CountByAttempt(ctx context.Context, attemptID uint) (int64, error)
	SummaryByAttempt(ctx context.Context, attemptID uint) (map[models.ViolationType]int, error)
}

type AttemptRepository interface {
	GetByID(ctx context.Context, id uint) (*models.AssessmentAttempt, error)
}

type AuditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// Repository aggregates all repositories behind one dependency.
type Repository interface {
	Violation() ViolationRepository
	Attempt() AttemptRepository
	Audit() AuditRepository
}

// IsNotFoundError reports whether err is a record-not-found from the
// underlying store.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
