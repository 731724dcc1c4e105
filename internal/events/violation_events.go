package events

import (
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
)

// EventType represents different types of proctoring events
type EventType string

const (
	// Violation events
	EventViolationRecorded EventType = "proctoring.violation_recorded"

	// Session events
	EventSessionActivated   EventType = "proctoring.session_activated"
	EventSessionDeactivated EventType = "proctoring.session_deactivated"

	// Review events
	EventReportExported EventType = "proctoring.report_exported"
)

// ProctoringEvent is the base event structure for all proctoring events
type ProctoringEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type ViolationRecordedEvent struct {
	ViolationID     uint                 `json:"violation_id"`
	AttemptID       uint                 `json:"attempt_id"`
	AssessmentID    uint                 `json:"assessment_id"`
	StudentID       uint                 `json:"student_id"`
	ViolationType   models.ViolationType `json:"violation_type"`
	Details         string               `json:"details,omitempty"`
	DetectedAt      time.Time            `json:"detected_at"`
	TotalForAttempt int64                `json:"total_for_attempt"`
}

type SessionLifecycleEvent struct {
	AttemptID uint   `json:"attempt_id"`
	Platform  string `json:"platform"` // web or mobile
}

type ReportExportedEvent struct {
	AssessmentID uint  `json:"assessment_id"`
	RowCount     int64 `json:"row_count"`
}
