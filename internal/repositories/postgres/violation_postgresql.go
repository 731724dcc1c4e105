package postgres

import (
	"context"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/repositories"
	"gorm.io/gorm"
)

type ViolationPostgreSQL struct {
	db *gorm.DB
}

func NewViolationPostgreSQL(db *gorm.DB) repositories.ViolationRepository {
	return &ViolationPostgreSQL{db: db}
}

func (v ViolationPostgreSQL) Create(ctx context.Context, event *models.ViolationEvent) error {
	return v.db.WithContext(ctx).Create(event).Error
}

func (v ViolationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.ViolationEvent, error) {
	var event models.ViolationEvent
	if err := v.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (v ViolationPostgreSQL) GetByAttempt(ctx context.Context, attemptID uint) ([]*models.ViolationEvent, error) {
	var events []*models.ViolationEvent
	if err := v.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("timestamp asc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (v ViolationPostgreSQL) GetByAssessment(ctx context.Context, assessmentID uint, filters repositories.ViolationFilters) ([]*models.ViolationEvent, int64, error) {
	var events []*models.ViolationEvent
	var total int64

	// apply filters first
	query := v.db.WithContext(ctx).
		Model(&models.ViolationEvent{}).
		Joins("JOIN assessment_attempts ON assessment_attempts.id = violation_events.attempt_id").
		Where("assessment_attempts.assessment_id = ?", assessmentID)
	query = v.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then pagination and sorting
	query = v.applyPaginationAndSort(query, filters)

	if err := query.Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (v ViolationPostgreSQL) GetByStudent(ctx context.Context, studentID uint, filters repositories.ViolationFilters) ([]*models.ViolationEvent, int64, error) {
	var events []*models.ViolationEvent
	var total int64

	query := v.db.WithContext(ctx).
		Model(&models.ViolationEvent{}).
		Joins("JOIN assessment_attempts ON assessment_attempts.id = violation_events.attempt_id").
		Where("assessment_attempts.student_id = ?", studentID)
	query = v.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = v.applyPaginationAndSort(query, filters)

	if err := query.Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (v ViolationPostgreSQL) CountByAttempt(ctx context.Context, attemptID uint) (int64, error) {
	var count int64
	err := v.db.WithContext(ctx).
		Model(&models.ViolationEvent{}).
		Where("attempt_id = ?", attemptID).
		Count(&count).Error
	return count, err
}

func (v ViolationPostgreSQL) SummaryByAttempt(ctx context.Context, attemptID uint) (map[models.ViolationType]int, error) {
	type row struct {
		ViolationType models.ViolationType
		Count         int
	}
	var rows []row

	if err := v.db.WithContext(ctx).
		Model(&models.ViolationEvent{}).
		Select("violation_type, count(*) as count").
		Where("attempt_id = ?", attemptID).
		Group("violation_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := make(map[models.ViolationType]int, len(rows))
	for _, r := range rows {
		summary[r.ViolationType] = r.Count
	}
	return summary, nil
}

func (v ViolationPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ViolationFilters) *gorm.DB {
	if filters.Type != nil {
		query = query.Where("violation_type = ?", *filters.Type)
	}
	if filters.DateFrom != nil {
		query = query.Where("timestamp >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("timestamp <= ?", *filters.DateTo)
	}
	return query
}

func (v ViolationPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.ViolationFilters) *gorm.DB {
	order := "timestamp asc"
	if filters.SortOrder == "desc" {
		order = "timestamp desc"
	}
	query = query.Order(order)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
