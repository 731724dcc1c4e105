package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/cache"
	"github.com/SAP-F-2025/proctoring-service/internal/events"
	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/repositories"
	"github.com/SAP-F-2025/proctoring-service/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	summaryCacheKeyFormat = "proctoring:summary:%d"
	summaryCacheTTL       = 5 * time.Minute
)

// RecordViolationRequest is the payload written by the reporting client.
type RecordViolationRequest struct {
	AttemptID     uint      `json:"attempt_id" validate:"required"`
	ViolationType string    `json:"violation_type" validate:"required,violation_type"`
	Details       string    `json:"details,omitempty" validate:"omitempty,max=2000"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
}

// RequestContext carries HTTP request metadata into the stored record.
type RequestContext struct {
	UserAgent string
	IPAddress string
}

type ViolationService interface {
	Record(ctx context.Context, req *RecordViolationRequest, reqCtx RequestContext) (*models.ViolationEvent, error)
	GetByAttempt(ctx context.Context, attemptID uint) ([]*models.ViolationEvent, error)
	GetByAssessment(ctx context.Context, assessmentID uint, filters repositories.ViolationFilters) ([]*models.ViolationEvent, int64, error)
	GetByStudent(ctx context.Context, studentID uint, filters repositories.ViolationFilters) ([]*models.ViolationEvent, int64, error)
	GetSummary(ctx context.Context, attemptID uint) (*models.ViolationSummary, error)
}

type violationService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    Logger
	validator *validator.Validator
}

// Logger is the subset of utils.Logger the services need; declared here so
// tests can pass any slog-backed implementation.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

func NewViolationService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger Logger,
	v *validator.Validator,
) ViolationService {
	return &violationService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Record appends one violation to the attempt's log. The log is append-only:
// nothing here or elsewhere in the service mutates or removes stored events.
// Event publishing and audit logging are best-effort and never fail the
// write.
func (s *violationService) Record(ctx context.Context, req *RecordViolationRequest, reqCtx RequestContext) (*models.ViolationEvent, error) {
	s.logger.Info("Recording violation",
		"attempt_id", req.AttemptID,
		"violation_type", req.ViolationType)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	attempt, err := s.repo.Attempt().GetByID(ctx, req.AttemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	event := &models.ViolationEvent{
		AttemptID: req.AttemptID,
		Type:      models.ViolationType(req.ViolationType),
		Details:   req.Details,
		Timestamp: req.Timestamp,
		UserAgent: reqCtx.UserAgent,
		IPAddress: reqCtx.IPAddress,
	}

	if err := s.repo.Violation().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create violation: %w", err)
	}

	// The cached summary for this attempt is now stale.
	cacheKey := fmt.Sprintf(summaryCacheKeyFormat, req.AttemptID)
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate summary cache", "attempt_id", req.AttemptID, "error", err)
	}

	s.publishViolationRecorded(ctx, event, attempt)
	s.writeAuditLog(ctx, event, attempt, reqCtx)

	s.logger.Info("Violation recorded",
		"violation_id", event.ID,
		"attempt_id", req.AttemptID,
		"violation_type", event.Type)

	return event, nil
}

func (s *violationService) GetByAttempt(ctx context.Context, attemptID uint) ([]*models.ViolationEvent, error) {
	if _, err := s.repo.Attempt().GetByID(ctx, attemptID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	violations, err := s.repo.Violation().GetByAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get violations by attempt: %w", err)
	}
	return violations, nil
}

func (s *violationService) GetByAssessment(ctx context.Context, assessmentID uint, filters repositories.ViolationFilters) ([]*models.ViolationEvent, int64, error) {
	violations, total, err := s.repo.Violation().GetByAssessment(ctx, assessmentID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get violations by assessment: %w", err)
	}
	return violations, total, nil
}

func (s *violationService) GetByStudent(ctx context.Context, studentID uint, filters repositories.ViolationFilters) ([]*models.ViolationEvent, int64, error) {
	violations, total, err := s.repo.Violation().GetByStudent(ctx, studentID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get violations by student: %w", err)
	}
	return violations, total, nil
}

func (s *violationService) GetSummary(ctx context.Context, attemptID uint) (*models.ViolationSummary, error) {
	cacheKey := fmt.Sprintf(summaryCacheKeyFormat, attemptID)

	var cached models.ViolationSummary
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrCacheMiss {
		s.logger.Warn("Summary cache read failed", "attempt_id", attemptID, "error", err)
	}

	byType, err := s.repo.Violation().SummaryByAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize violations: %w", err)
	}

	var total int64
	for _, count := range byType {
		total += int64(count)
	}

	summary := &models.ViolationSummary{
		AttemptID: attemptID,
		Total:     total,
		ByType:    byType,
	}

	if err := s.cache.Set(ctx, cacheKey, summary, summaryCacheTTL); err != nil {
		s.logger.Warn("Summary cache write failed", "attempt_id", attemptID, "error", err)
	}

	return summary, nil
}

func (s *violationService) publishViolationRecorded(ctx context.Context, event *models.ViolationEvent, attempt *models.AssessmentAttempt) {
	total, err := s.repo.Violation().CountByAttempt(ctx, event.AttemptID)
	if err != nil {
		s.logger.Warn("Failed to count violations for event payload", "attempt_id", event.AttemptID, "error", err)
	}

	proctoringEvent := &events.ProctoringEvent{
		ID:        uuid.NewString(),
		Type:      events.EventViolationRecorded,
		Timestamp: time.Now(),
		Source:    "proctoring-service",
		Version:   "1.0",
		Data: events.ViolationRecordedEvent{
			ViolationID:     event.ID,
			AttemptID:       event.AttemptID,
			AssessmentID:    attempt.AssessmentID,
			StudentID:       attempt.StudentID,
			ViolationType:   event.Type,
			Details:         event.Details,
			DetectedAt:      event.Timestamp,
			TotalForAttempt: total,
		},
	}

	if err := s.publisher.PublishProctoringEvent(ctx, proctoringEvent); err != nil {
		s.logger.Error("Failed to publish violation event",
			"violation_id", event.ID,
			"error", err)
	}
}

func (s *violationService) writeAuditLog(ctx context.Context, event *models.ViolationEvent, attempt *models.AssessmentAttempt, reqCtx RequestContext) {
	metadata, err := json.Marshal(map[string]interface{}{
		"violation_id":   event.ID,
		"violation_type": event.Type,
		"student_id":     attempt.StudentID,
	})
	if err != nil {
		s.logger.Warn("Failed to marshal audit metadata", "error", err)
		return
	}

	audit := &models.AuditLog{
		EventType:    models.AuditViolationRecorded,
		AttemptID:    &event.AttemptID,
		AssessmentID: &attempt.AssessmentID,
		Description:  fmt.Sprintf("%s recorded for attempt %d", event.Type.Label(), event.AttemptID),
		Metadata:     datatypes.JSON(metadata),
		IPAddress:    reqCtx.IPAddress,
		UserAgent:    reqCtx.UserAgent,
	}

	if err := s.repo.Audit().Create(ctx, audit); err != nil {
		s.logger.Warn("Failed to write audit log", "violation_id", event.ID, "error", err)
	}
}
