package proctoring

import (
	"sync"

	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

// NoticeSeverity controls how the host surfaces a notice: info and warning
// render as transient toasts, alert as a blocking dialog.
type NoticeSeverity int

const (
	NoticeInfo NoticeSeverity = iota
	NoticeWarning
	NoticeAlert
)

func (s NoticeSeverity) String() string {
	switch s {
	case NoticeWarning:
		return "warning"
	case NoticeAlert:
		return "alert"
	default:
		return "info"
	}
}

// Notice is a user-facing message. Notices never block test-taking progress;
// they are the only way subsystem failures reach the user.
type Notice struct {
	Severity NoticeSeverity
	Message  string
}

// NoticeSink receives user-facing notices from the engine.
type NoticeSink interface {
	Notify(n Notice)
}

// LoggerNoticeSink writes notices to the structured log. It is the default
// sink when the host does not provide one.
type LoggerNoticeSink struct {
	logger utils.Logger
}

func NewLoggerNoticeSink(logger utils.Logger) *LoggerNoticeSink {
	return &LoggerNoticeSink{logger: logger}
}

func (s *LoggerNoticeSink) Notify(n Notice) {
	switch n.Severity {
	case NoticeAlert, NoticeWarning:
		s.logger.Warn("Proctoring notice", "severity", n.Severity.String(), "message", n.Message)
	default:
		s.logger.Info("Proctoring notice", "severity", n.Severity.String(), "message", n.Message)
	}
}

// CollectingNoticeSink records notices in memory (for testing). Safe for
// concurrent use because persistence notices arrive from a goroutine.
type CollectingNoticeSink struct {
	mu      sync.Mutex
	notices []Notice
}

func NewCollectingNoticeSink() *CollectingNoticeSink {
	return &CollectingNoticeSink{}
}

func (s *CollectingNoticeSink) Notify(n Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

func (s *CollectingNoticeSink) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notice, len(s.notices))
	copy(out, s.notices)
	return out
}
