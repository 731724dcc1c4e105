package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditEventType string

const (
	AuditViolationRecorded AuditEventType = "violation_recorded"
	AuditViolationsViewed  AuditEventType = "violations_viewed"
	AuditReportExported    AuditEventType = "report_exported"
)

// AuditLog records who touched the violation log and when. Kept separate
// from ViolationEvent: violations describe student behavior, audit rows
// describe access to that data.
type AuditLog struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	EventType AuditEventType `json:"event_type" gorm:"not null;index"`

	// Target information
	AttemptID    *uint `json:"attempt_id" gorm:"index"`
	AssessmentID *uint `json:"assessment_id" gorm:"index"`

	Description string         `json:"description" gorm:"not null;type:text"`
	Metadata    datatypes.JSON `json:"metadata" gorm:"type:jsonb"`

	// Request context
	IPAddress string `json:"ip_address" gorm:"size:45"`
	UserAgent string `json:"user_agent" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
