package models

import "time"

type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusSubmitted  AttemptStatus = "submitted"
	AttemptStatusAbandoned  AttemptStatus = "abandoned"
)

// AssessmentAttempt mirrors the attempt record owned by the assessment
// service. The proctoring service only needs the keys the violation log
// hangs off: which assessment and which student an attempt belongs to.
type AssessmentAttempt struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	AssessmentID uint          `json:"assessment_id" gorm:"not null;index"`
	StudentID    uint          `json:"student_id" gorm:"not null;index"`
	Status       AttemptStatus `json:"status" gorm:"default:in_progress"`
	StartedAt    time.Time     `json:"started_at"`
	SubmittedAt  *time.Time    `json:"submitted_at"`

	Violations []ViolationEvent `json:"violations,omitempty" gorm:"foreignKey:AttemptID"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}
