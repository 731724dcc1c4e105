package proctoring

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

// mobileAdapter classifies signals from a native app shell: app lifecycle
// transitions and screenshot-capture notifications.
//
// Phone-call detection is a known coverage gap: no call-state API is wired
// in, so an incoming call is only visible as the background transition it
// causes and reports as window_switch. The phone_call violation type exists
// on the wire contract only.
type mobileAdapter struct {
	host           Host
	logger         utils.Logger
	attached       bool
	captureBlocked bool
	backgrounded   bool
}

func newMobileAdapter(host Host, logger utils.Logger) *mobileAdapter {
	return &mobileAdapter{
		host:   host,
		logger: logger,
	}
}

func (a *mobileAdapter) Platform() Platform {
	return PlatformMobile
}

func (a *mobileAdapter) Attach() error {
	if a.attached {
		return nil
	}
	a.attached = true
	a.backgrounded = false

	// Best-effort enhancement: hosts without the capability degrade
	// silently, with no notice and no violation.
	if err := a.host.SetScreenCaptureBlocked(true); err != nil {
		if errors.Is(err, ErrUnsupported) {
			a.logger.Debug("Screen-capture prevention unavailable on this host")
			return nil
		}
		return fmt.Errorf("screen-capture prevention failed: %w", err)
	}
	a.captureBlocked = true
	return nil
}

func (a *mobileAdapter) Detach() []error {
	var errs []error
	a.attached = false
	a.backgrounded = false

	if a.captureBlocked {
		a.captureBlocked = false
		if err := a.host.SetScreenCaptureBlocked(false); err != nil && !errors.Is(err, ErrUnsupported) {
			errs = append(errs, fmt.Errorf("failed to restore screen capture: %w", err))
		}
	}
	return errs
}

func (a *mobileAdapter) Classify(sig Signal) Action {
	switch sig.Kind {
	case SignalAppStateChange:
		switch sig.State {
		case AppStateBackground, AppStateInactive:
			a.backgrounded = true
			return Action{
				Violation: &Candidate{
					Type:    models.ViolationWindowSwitch,
					Details: fmt.Sprintf("App state: %s", sig.State),
				},
				Notice: &Notice{
					Severity: NoticeWarning,
					Message:  "Leaving the app during a test is recorded as a violation.",
				},
			}
		case AppStateActive:
			// Returning is the desired corrective action, not a violation.
			a.backgrounded = false
			return Action{}
		}
		return Action{}

	case SignalScreenshotTaken:
		return Action{
			Violation: &Candidate{
				Type:    models.ViolationScreenshot,
				Details: "Screenshot attempt detected on mobile",
			},
			Notice: &Notice{
				Severity: NoticeAlert,
				Message:  "Screenshot attempt detected. This has been recorded.",
			},
		}
	}

	return Action{}
}
