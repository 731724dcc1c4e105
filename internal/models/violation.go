package models

import (
	"time"

	"gorm.io/datatypes"
)

type ViolationType string

const (
	ViolationWindowSwitch     ViolationType = "window_switch"
	ViolationTabSwitch        ViolationType = "tab_switch"
	ViolationScreenshot       ViolationType = "screenshot"
	ViolationCopy             ViolationType = "copy"
	ViolationPaste            ViolationType = "paste"
	ViolationPhoneCall        ViolationType = "phone_call"
	ViolationVisibilityChange ViolationType = "visibility_change"
)

// AllViolationTypes lists every type accepted on the wire.
// phone_call is part of the contract but no adapter currently emits it:
// there is no call-state signal source, only the background-transition
// proxy which reports as window_switch.
var AllViolationTypes = []ViolationType{
	ViolationWindowSwitch,
	ViolationTabSwitch,
	ViolationScreenshot,
	ViolationCopy,
	ViolationPaste,
	ViolationPhoneCall,
	ViolationVisibilityChange,
}

func (t ViolationType) Valid() bool {
	for _, v := range AllViolationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Label returns the plain-language category used in user-facing notices.
func (t ViolationType) Label() string {
	switch t {
	case ViolationWindowSwitch:
		return "Window switch"
	case ViolationTabSwitch:
		return "Tab switch"
	case ViolationScreenshot:
		return "Screenshot attempt"
	case ViolationCopy:
		return "Copy attempt"
	case ViolationPaste:
		return "Paste attempt"
	case ViolationPhoneCall:
		return "Phone call"
	case ViolationVisibilityChange:
		return "Visibility change"
	default:
		return string(t)
	}
}

// ViolationEvent is one recorded suspicious occurrence during an attempt.
// Rows are append-only: the service layer exposes no update or delete.
type ViolationEvent struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	AttemptID uint          `json:"attempt_id" gorm:"not null;index"`
	Type      ViolationType `json:"violation_type" gorm:"column:violation_type;not null;index"`

	// Details describes the triggering condition, e.g. "Exited fullscreen mode".
	Details string `json:"details,omitempty" gorm:"type:text"`

	// Timestamp is the client clock at detection time; ReceivedAt is ours.
	Timestamp  time.Time `json:"timestamp" gorm:"not null;index"`
	ReceivedAt time.Time `json:"received_at" gorm:"autoCreateTime"`

	// Extra adapter payload (raw key name, app state, visibility state).
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	// Request context
	UserAgent string `json:"user_agent,omitempty" gorm:"type:text"`
	IPAddress string `json:"ip_address,omitempty" gorm:"size:45"`

	// Relations
	Attempt AssessmentAttempt `json:"-" gorm:"foreignKey:AttemptID"`
}

func (ViolationEvent) TableName() string {
	return "violation_events"
}

// ViolationSummary is the per-attempt aggregate served to review UIs.
type ViolationSummary struct {
	AttemptID uint                  `json:"attempt_id"`
	Total     int64                 `json:"total"`
	ByType    map[ViolationType]int `json:"by_type"`
}
