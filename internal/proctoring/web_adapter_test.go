package proctoring

import (
	"strings"
	"testing"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

func newTestWebAdapter() *webAdapter {
	return newWebAdapter(&fakeHost{platform: PlatformWeb}, utils.NewDevelopmentLogger())
}

func TestWebAdapter_KeyClassification(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		wantType models.ViolationType
		consumed bool
	}{
		{"PrintScreenAlone", Key{Code: "PrintScreen"}, models.ViolationScreenshot, true},
		{"CtrlPrintScreen", Key{Code: "PrintScreen", Ctrl: true}, models.ViolationScreenshot, true},
		{"AltPrintScreen", Key{Code: "PrintScreen", Alt: true}, models.ViolationScreenshot, true},
		{"CmdShift3", Key{Code: "Digit3", Meta: true, Shift: true}, models.ViolationScreenshot, true},
		{"CmdShift4", Key{Code: "Digit4", Meta: true, Shift: true}, models.ViolationScreenshot, true},
		{"CtrlShift4", Key{Code: "Digit4", Ctrl: true, Shift: true}, models.ViolationScreenshot, true},
		{"WinShiftS", Key{Code: "KeyS", Meta: true, Shift: true}, models.ViolationScreenshot, true},
		{"CtrlShiftS", Key{Code: "KeyS", Ctrl: true, Shift: true}, models.ViolationScreenshot, true},
		{"CtrlC", Key{Code: "KeyC", Ctrl: true}, models.ViolationCopy, true},
		{"CmdC", Key{Code: "KeyC", Meta: true}, models.ViolationCopy, true},
		{"CtrlV", Key{Code: "KeyV", Ctrl: true}, models.ViolationPaste, true},
		{"CmdV", Key{Code: "KeyV", Meta: true}, models.ViolationPaste, true},
	}

	adapter := newTestWebAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := adapter.Classify(Signal{Kind: SignalKeyDown, Key: tt.key})
			if act.Violation == nil {
				t.Fatalf("Expected a violation for %s", tt.key)
			}
			if act.Violation.Type != tt.wantType {
				t.Errorf("Expected %s, got %s", tt.wantType, act.Violation.Type)
			}
			if act.Consumed != tt.consumed {
				t.Errorf("Expected consumed=%v", tt.consumed)
			}
			if !strings.Contains(act.Violation.Details, tt.key.Code) {
				t.Errorf("Details %q should name the key %q", act.Violation.Details, tt.key.Code)
			}
		})
	}
}

func TestWebAdapter_HarmlessKeysIgnored(t *testing.T) {
	adapter := newTestWebAdapter()

	for _, key := range []Key{
		{Code: "KeyA"},
		{Code: "KeyC"},              // plain C, no modifier
		{Code: "KeyC", Shift: true}, // Shift+C types a capital C
		{Code: "Digit3"},
	} {
		act := adapter.Classify(Signal{Kind: SignalKeyDown, Key: key})
		if act.Violation != nil || act.Consumed {
			t.Errorf("Key %s should be ignored", key)
		}
	}
}

func TestWebAdapter_ScreenshotKeyCarriesWarningNotice(t *testing.T) {
	adapter := newTestWebAdapter()

	act := adapter.Classify(Signal{Kind: SignalKeyDown, Key: Key{Code: "PrintScreen"}})
	if act.Notice == nil || act.Notice.Severity != NoticeWarning {
		t.Error("Screenshot shortcut should surface a user-facing warning")
	}

	// Silent categories carry no notice.
	act = adapter.Classify(Signal{Kind: SignalWindowBlur})
	if act.Notice != nil {
		t.Error("Window blur should be silent")
	}
}

func TestWebAdapter_VisibilityChange(t *testing.T) {
	adapter := newTestWebAdapter()

	t.Run("HiddenRaisesTabSwitch", func(t *testing.T) {
		act := adapter.Classify(Signal{Kind: SignalVisibilityChange, State: "hidden"})
		if act.TabVisible == nil || *act.TabVisible {
			t.Error("Expected TabVisible=false")
		}
		if act.Violation == nil || act.Violation.Type != models.ViolationTabSwitch {
			t.Fatal("Expected a tab_switch violation")
		}
		if !strings.Contains(act.Violation.Details, "hidden") {
			t.Errorf("Details %q should include the raw visibility state", act.Violation.Details)
		}
	})

	t.Run("VisibleIsNotViolation", func(t *testing.T) {
		act := adapter.Classify(Signal{Kind: SignalVisibilityChange, State: "visible"})
		if act.TabVisible == nil || !*act.TabVisible {
			t.Error("Expected TabVisible=true")
		}
		if act.Violation != nil {
			t.Error("Becoming visible is not a violation")
		}
	})
}

func TestWebAdapter_FocusSignals(t *testing.T) {
	adapter := newTestWebAdapter()

	act := adapter.Classify(Signal{Kind: SignalWindowBlur})
	if act.Violation == nil || act.Violation.Type != models.ViolationWindowSwitch {
		t.Fatal("Window blur should raise window_switch")
	}
	if act.Violation.Details != "Window lost focus" {
		t.Errorf("Unexpected details %q", act.Violation.Details)
	}

	// Focus regain is not itself suspicious.
	act = adapter.Classify(Signal{Kind: SignalWindowFocus})
	if act.Violation != nil {
		t.Error("Focus regain should raise nothing")
	}
}

func TestWebAdapter_ContextMenuAndClipboard(t *testing.T) {
	adapter := newTestWebAdapter()

	act := adapter.Classify(Signal{Kind: SignalContextMenu})
	if !act.Consumed || act.Violation == nil || act.Violation.Type != models.ViolationScreenshot {
		t.Error("Context menu should be blocked and classified as screenshot")
	}
	if act.Violation.Details != "Right-click blocked" {
		t.Errorf("Unexpected details %q", act.Violation.Details)
	}

	act = adapter.Classify(Signal{Kind: SignalClipboardCopy})
	if !act.Consumed || act.Violation == nil || act.Violation.Type != models.ViolationCopy {
		t.Error("Native copy event should be blocked and classified as copy")
	}

	act = adapter.Classify(Signal{Kind: SignalClipboardPaste})
	if !act.Consumed || act.Violation == nil || act.Violation.Type != models.ViolationPaste {
		t.Error("Native paste event should be blocked and classified as paste")
	}
}

func TestWebAdapter_FullscreenChangeReportsStateOnly(t *testing.T) {
	adapter := newTestWebAdapter()

	// The session owns the coupled violation; the adapter just relays state.
	act := adapter.Classify(Signal{Kind: SignalFullscreenChange, Fullscreen: false})
	if act.Fullscreen == nil || *act.Fullscreen {
		t.Error("Expected Fullscreen=false relayed")
	}
	if act.Violation != nil {
		t.Error("Adapter must not classify fullscreen exits itself")
	}
}
