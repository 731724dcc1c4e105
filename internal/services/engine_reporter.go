package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/proctoring-service/internal/reporting"
)

// EngineReporter adapts the violation service to the engine's Reporter
// interface for co-deployed setups, skipping the HTTP hop the remote
// reporting client would take.
type EngineReporter struct {
	violations ViolationService
}

func NewEngineReporter(violations ViolationService) *EngineReporter {
	return &EngineReporter{violations: violations}
}

func (r *EngineReporter) ReportViolation(ctx context.Context, v reporting.Violation) error {
	if v.AttemptID == 0 {
		// Detection-only session, nothing to persist against.
		return nil
	}

	req := &RecordViolationRequest{
		AttemptID:     v.AttemptID,
		ViolationType: string(v.Type),
		Details:       v.Details,
		Timestamp:     v.Timestamp,
	}

	if _, err := r.violations.Record(ctx, req, RequestContext{}); err != nil {
		return fmt.Errorf("failed to record violation: %w", err)
	}
	return nil
}
