package proctoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/reporting"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

var ErrSessionActive = errors.New("proctoring session already active")

// Options configures a Session. Zero values fall back to defaults:
// DefaultCooldown, time.Now, a logger-backed notice sink and no reporter.
type Options struct {
	Cooldown time.Duration
	Now      func() time.Time
	Logger   utils.Logger
	Reporter reporting.Reporter
	Notices  NoticeSink
}

// Session polices one test attempt. It owns the append-only violation log,
// the cooldown registry and the fullscreen enforcement state; the host shell
// pushes raw signals into it via HandleSignal.
//
// All detection and debounce logic runs synchronously inside HandleSignal;
// only persistence is dispatched to a goroutine and never awaited.
type Session struct {
	mu sync.Mutex

	host     Host
	logger   utils.Logger
	reporter reporting.Reporter
	notices  NoticeSink
	now      func() time.Time

	enabled   bool
	attemptID uint
	source    SignalSource

	violations       []Violation
	isTabVisible     bool
	isFullscreen     bool
	exitedFullscreen bool

	cooldown   *cooldownFilter
	fullscreen *fullscreenMachine

	onViolation func(Violation)

	// reports tracks in-flight persistence calls. Deactivate does not wait
	// on it; tests do.
	reports sync.WaitGroup
}

// NewSession creates an inactive session for the given host. Monitoring is
// inert until Activate: signals may already be delivered but fire no
// violation logic.
func NewSession(host Host, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	notices := opts.Notices
	if notices == nil {
		notices = NewLoggerNoticeSink(logger)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Session{
		host:         host,
		logger:       logger,
		reporter:     opts.Reporter,
		notices:      notices,
		now:          now,
		isTabVisible: true,
		cooldown:     newCooldownFilter(opts.Cooldown, now),
		fullscreen:   newFullscreenMachine(),
	}
}

// Activate binds the session to an attempt, selects the platform adapter and
// enables monitoring. attemptID 0 runs the session in detection-only mode
// with no backend writes. Adapter setup failures surface as notices and do
// not block activation of the remaining signal handling.
func (s *Session) Activate(attemptID uint, onViolation func(Violation)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled {
		return ErrSessionActive
	}

	s.attemptID = attemptID
	s.onViolation = onViolation
	s.source = NewSignalSource(s.host, s.logger)
	s.fullscreen = newFullscreenMachine()
	s.isFullscreen = s.host.Platform() == PlatformWeb
	s.enabled = true

	s.logger.Info("Proctoring session activated",
		"attempt_id", attemptID,
		"platform", s.source.Platform())

	if err := s.source.Attach(); err != nil {
		// Low severity: remaining signal handling still functions.
		s.logger.Warn("Proctoring adapter setup incomplete", "error", err)
		s.notices.Notify(Notice{
			Severity: NoticeInfo,
			Message:  "Some proctoring protections could not be enabled.",
		})
	}

	return nil
}

// Deactivate disables monitoring and tears everything down: adapter
// detached, capture restriction reverted, cooldown registry cleared,
// fullscreen released. The violation log survives for post-submission
// review. Idempotent; each teardown step is attempted independently.
//
// Monitoring is disabled strictly before the exit-fullscreen action, so the
// fullscreen change caused by submission cleanup is never itself logged.
func (s *Session) Deactivate() {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	s.enabled = false
	source := s.source
	s.source = nil
	s.onViolation = nil
	s.cooldown.Reset()
	s.mu.Unlock()

	if source != nil {
		for _, err := range source.Detach() {
			s.logger.Warn("Proctoring teardown step failed", "error", err)
		}
	}

	if err := s.host.ExitFullscreen(); err != nil {
		s.logger.Warn("Failed to exit fullscreen on teardown", "error", err)
	}

	s.logger.Info("Proctoring session deactivated", "attempt_id", s.attemptID)
}

// HandleSignal consumes one raw platform signal. It returns true when the
// host should cancel the platform default action (blocked shortcut, context
// menu). With monitoring disabled every signal is inert.
func (s *Session) HandleSignal(sig Signal) bool {
	s.mu.Lock()

	if !s.enabled || s.source == nil {
		s.mu.Unlock()
		return false
	}

	act := s.source.Classify(sig)

	if act.TabVisible != nil {
		s.isTabVisible = *act.TabVisible
	}

	if act.Fullscreen != nil {
		s.isFullscreen = *act.Fullscreen
		switch s.fullscreen.Apply(*act.Fullscreen) {
		case transitionExited:
			s.exitedFullscreen = true
			// One raw signal, two coupled updates: the machine transition
			// above and this violation through the shared debounced path.
			if act.Violation == nil {
				act.Violation = &Candidate{
					Type:    models.ViolationWindowSwitch,
					Details: "Exited fullscreen mode",
				}
			}
		case transitionReentered:
			s.exitedFullscreen = false
		}
	}

	var accepted *Violation
	if act.Violation != nil && s.cooldown.Accept() {
		v := Violation{
			Type:      act.Violation.Type,
			Timestamp: s.now(),
			Details:   act.Violation.Details,
		}
		s.violations = append(s.violations, v)
		accepted = &v
	}

	callback := s.onViolation
	attemptID := s.attemptID
	s.mu.Unlock()

	if accepted != nil {
		// Strict ordering: log appended above, callback here in the same
		// tick, persistence dispatched last and never awaited.
		if callback != nil {
			callback(*accepted)
		}
		s.dispatchReport(attemptID, *accepted)
	}

	if act.Notice != nil {
		s.notices.Notify(*act.Notice)
	}

	return act.Consumed
}

func (s *Session) dispatchReport(attemptID uint, v Violation) {
	if s.reporter == nil || attemptID == 0 {
		return
	}

	s.reports.Add(1)
	go func() {
		defer s.reports.Done()

		err := s.reporter.ReportViolation(context.Background(), reporting.Violation{
			AttemptID: attemptID,
			Type:      v.Type,
			Details:   v.Details,
			Timestamp: v.Timestamp,
		})
		if err != nil {
			// Best-effort audit trail: no retry, the in-memory log stays
			// authoritative for the UI.
			s.logger.Error("Failed to persist violation",
				"attempt_id", attemptID,
				"violation_type", v.Type,
				"error", err)
			s.notices.Notify(Notice{
				Severity: NoticeWarning,
				Message:  fmt.Sprintf("%s detected but could not be recorded.", v.Type.Label()),
			})
			return
		}

		s.notices.Notify(Notice{
			Severity: NoticeInfo,
			Message:  fmt.Sprintf("%s detected and recorded.", v.Type.Label()),
		})
	}()
}

// ===== OBSERVABLE STATE =====

// Violations returns a copy of the append-only violation log in detection
// order.
func (s *Session) Violations() []Violation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Violation, len(s.violations))
	copy(out, s.violations)
	return out
}

// ViolationCount is monotonically non-decreasing for the session lifetime.
func (s *Session) ViolationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.violations)
}

func (s *Session) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *Session) AttemptID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attemptID
}

func (s *Session) IsTabVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isTabVisible
}

func (s *Session) IsFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isFullscreen
}

// ExitedFullscreen is sticky: it stays true from the first fullscreen exit
// until the user re-enters fullscreen, independent of violation logging.
func (s *Session) ExitedFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitedFullscreen
}
