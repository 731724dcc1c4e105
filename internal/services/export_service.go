package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/events"
	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/repositories"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Violations"

type ExportService interface {
	// BuildAssessmentReport renders every violation across an assessment's
	// attempts into a spreadsheet for proctor review.
	BuildAssessmentReport(ctx context.Context, assessmentID uint) (*excelize.File, error)
}

type exportService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    Logger
}

func NewExportService(repo repositories.Repository, publisher events.EventPublisher, logger Logger) ExportService {
	return &exportService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *exportService) BuildAssessmentReport(ctx context.Context, assessmentID uint) (*excelize.File, error) {
	s.logger.Info("Exporting violation report", "assessment_id", assessmentID)

	violations, total, err := s.repo.Violation().GetByAssessment(ctx, assessmentID, repositories.ViolationFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load violations for export: %w", err)
	}
	if total == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("failed to rename export sheet: %w", err)
	}

	headers := []string{"Attempt ID", "Violation Type", "Details", "Detected At", "Received At", "IP Address"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, v := range violations {
		values := []interface{}{
			v.AttemptID,
			string(v.Type),
			v.Details,
			v.Timestamp.Format(time.RFC3339),
			v.ReceivedAt.Format(time.RFC3339),
			v.IPAddress,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to compute data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write violation row: %w", err)
			}
		}
	}

	s.publishExported(ctx, assessmentID, total)
	s.writeAuditLog(ctx, assessmentID, total)

	return f, nil
}

func (s *exportService) publishExported(ctx context.Context, assessmentID uint, total int64) {
	event := &events.ProctoringEvent{
		ID:        uuid.NewString(),
		Type:      events.EventReportExported,
		Timestamp: time.Now(),
		Source:    "proctoring-service",
		Version:   "1.0",
		Data: events.ReportExportedEvent{
			AssessmentID: assessmentID,
			RowCount:     total,
		},
	}

	if err := s.publisher.PublishProctoringEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish export event", "assessment_id", assessmentID, "error", err)
	}
}

func (s *exportService) writeAuditLog(ctx context.Context, assessmentID uint, total int64) {
	audit := &models.AuditLog{
		EventType:    models.AuditReportExported,
		AssessmentID: &assessmentID,
		Description:  fmt.Sprintf("Violation report exported for assessment %d (%d rows)", assessmentID, total),
	}

	if err := s.repo.Audit().Create(ctx, audit); err != nil {
		s.logger.Warn("Failed to write export audit log", "assessment_id", assessmentID, "error", err)
	}
}
