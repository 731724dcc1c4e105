package proctoring

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

func newTestMobileAdapter(host *fakeHost) *mobileAdapter {
	return newMobileAdapter(host, utils.NewDevelopmentLogger())
}

func TestMobileAdapter_AppStateTransitions(t *testing.T) {
	adapter := newTestMobileAdapter(&fakeHost{platform: PlatformMobile})

	t.Run("BackgroundRaisesWindowSwitch", func(t *testing.T) {
		act := adapter.Classify(Signal{Kind: SignalAppStateChange, State: AppStateBackground})
		if act.Violation == nil || act.Violation.Type != models.ViolationWindowSwitch {
			t.Fatal("Background transition should raise window_switch")
		}
		if act.Violation.Details != "App state: background" {
			t.Errorf("Unexpected details %q", act.Violation.Details)
		}
		if act.Notice == nil || act.Notice.Severity != NoticeWarning {
			t.Error("Background transition should surface a warning")
		}
	})

	t.Run("InactiveRaisesWindowSwitch", func(t *testing.T) {
		act := adapter.Classify(Signal{Kind: SignalAppStateChange, State: AppStateInactive})
		if act.Violation == nil || act.Violation.Details != "App state: inactive" {
			t.Error("Inactive transition should raise with its state in details")
		}
	})

	t.Run("ReturningToActiveIsSilent", func(t *testing.T) {
		adapter.Classify(Signal{Kind: SignalAppStateChange, State: AppStateBackground})
		act := adapter.Classify(Signal{Kind: SignalAppStateChange, State: AppStateActive})
		if act.Violation != nil || act.Notice != nil {
			t.Error("Returning to the app must raise nothing")
		}
		if adapter.backgrounded {
			t.Error("Backgrounded flag should be cleared")
		}
	})
}

func TestMobileAdapter_ScreenshotDetected(t *testing.T) {
	adapter := newTestMobileAdapter(&fakeHost{platform: PlatformMobile})

	act := adapter.Classify(Signal{Kind: SignalScreenshotTaken})
	if act.Violation == nil || act.Violation.Type != models.ViolationScreenshot {
		t.Fatal("Screenshot notification should raise screenshot violation")
	}
	if act.Violation.Details != "Screenshot attempt detected on mobile" {
		t.Errorf("Unexpected details %q", act.Violation.Details)
	}
	if act.Notice == nil || act.Notice.Severity != NoticeAlert {
		t.Error("Mobile screenshot should surface a blocking alert")
	}
}

func TestMobileAdapter_ScreenCaptureLifecycle(t *testing.T) {
	t.Run("BlockedOnAttachRevertedOnDetach", func(t *testing.T) {
		host := &fakeHost{platform: PlatformMobile}
		adapter := newTestMobileAdapter(host)

		if err := adapter.Attach(); err != nil {
			t.Fatalf("Attach failed: %v", err)
		}
		if !host.captureBlocked {
			t.Error("Screen capture should be blocked while attached")
		}

		if errs := adapter.Detach(); len(errs) != 0 {
			t.Fatalf("Detach errors: %v", errs)
		}
		if host.captureBlocked {
			t.Error("Screen capture restriction should be reverted on detach")
		}
	})

	t.Run("UnsupportedCapabilityDegradesSilently", func(t *testing.T) {
		host := &fakeHost{platform: PlatformMobile, captureErr: ErrUnsupported}
		adapter := newTestMobileAdapter(host)

		if err := adapter.Attach(); err != nil {
			t.Errorf("Unsupported capture prevention must not fail attach: %v", err)
		}
		if errs := adapter.Detach(); len(errs) != 0 {
			t.Errorf("Unsupported capability must not produce detach errors: %v", errs)
		}
	})

	t.Run("RealFailureSurfacesFromAttach", func(t *testing.T) {
		host := &fakeHost{platform: PlatformMobile, captureErr: errors.New("permission denied")}
		adapter := newTestMobileAdapter(host)

		if err := adapter.Attach(); err == nil {
			t.Error("A real capability failure should be reported to the caller")
		}
	})

	t.Run("DoubleAttachIsNoop", func(t *testing.T) {
		host := &fakeHost{platform: PlatformMobile}
		adapter := newTestMobileAdapter(host)

		adapter.Attach()
		host.captureCalls = 0
		adapter.Attach()
		if host.captureCalls != 0 {
			t.Error("Re-attach must not re-run setup")
		}
	})
}
