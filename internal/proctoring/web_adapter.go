package proctoring

import (
	"fmt"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

// webAdapter classifies signals from a windowed-document host: visibility,
// focus, fullscreen, key combinations, context menu and native clipboard
// events.
type webAdapter struct {
	host     Host
	logger   utils.Logger
	attached bool
}

func newWebAdapter(host Host, logger utils.Logger) *webAdapter {
	return &webAdapter{
		host:   host,
		logger: logger,
	}
}

func (a *webAdapter) Platform() Platform {
	return PlatformWeb
}

func (a *webAdapter) Attach() error {
	if a.attached {
		// Re-activation must not double-attach.
		return nil
	}
	a.attached = true

	if err := a.host.RequestFullscreen(); err != nil {
		return fmt.Errorf("fullscreen request failed: %w", err)
	}
	return nil
}

func (a *webAdapter) Detach() []error {
	a.attached = false
	return nil
}

func (a *webAdapter) Classify(sig Signal) Action {
	switch sig.Kind {
	case SignalVisibilityChange:
		visible := sig.State == "visible"
		act := Action{TabVisible: &visible}
		if !visible {
			act.Violation = &Candidate{
				Type:    models.ViolationTabSwitch,
				Details: fmt.Sprintf("Tab visibility changed: %s", sig.State),
			}
		}
		return act

	case SignalWindowBlur:
		return Action{Violation: &Candidate{
			Type:    models.ViolationWindowSwitch,
			Details: "Window lost focus",
		}}

	case SignalWindowFocus:
		// Regaining focus is not itself suspicious.
		return Action{}

	case SignalFullscreenChange:
		// The session drives the enforcement state machine and the coupled
		// window_switch violation; the adapter only reports the new state.
		fs := sig.Fullscreen
		return Action{Fullscreen: &fs}

	case SignalKeyDown:
		return a.classifyKey(sig.Key)

	case SignalContextMenu:
		// Right-click is categorized as a screenshot/inspection attempt for
		// backend compatibility, even though it captures nothing.
		return Action{
			Consumed: true,
			Violation: &Candidate{
				Type:    models.ViolationScreenshot,
				Details: "Right-click blocked",
			},
		}

	case SignalClipboardCopy:
		// Catches menu-driven and touch-driven copy, not just the shortcut.
		return Action{
			Consumed: true,
			Violation: &Candidate{
				Type:    models.ViolationCopy,
				Details: "Copy event blocked",
			},
		}

	case SignalClipboardPaste:
		return Action{
			Consumed: true,
			Violation: &Candidate{
				Type:    models.ViolationPaste,
				Details: "Paste event blocked",
			},
		}
	}

	return Action{}
}

func (a *webAdapter) classifyKey(key Key) Action {
	if isScreenshotShortcut(key) {
		return Action{
			Consumed: true,
			Violation: &Candidate{
				Type:    models.ViolationScreenshot,
				Details: fmt.Sprintf("Screenshot shortcut blocked (%s)", key),
			},
			Notice: &Notice{
				Severity: NoticeWarning,
				Message:  "Screenshots are not allowed during the test.",
			},
		}
	}

	primary := key.Ctrl || key.Meta
	if primary && !key.Shift && !key.Alt {
		switch key.Code {
		case "KeyC":
			return Action{
				Consumed: true,
				Violation: &Candidate{
					Type:    models.ViolationCopy,
					Details: fmt.Sprintf("Copy shortcut blocked (%s)", key),
				},
			}
		case "KeyV":
			return Action{
				Consumed: true,
				Violation: &Candidate{
					Type:    models.ViolationPaste,
					Details: fmt.Sprintf("Paste shortcut blocked (%s)", key),
				},
			}
		}
	}

	return Action{}
}

// isScreenshotShortcut matches the capture shortcuts across platforms:
// PrintScreen alone or with Ctrl/Alt, Cmd/Ctrl+Shift+3/4 (macOS style),
// and modifier+Shift+S (Windows snipping).
func isScreenshotShortcut(key Key) bool {
	if key.Code == "PrintScreen" {
		return true
	}
	if key.Shift && (key.Meta || key.Ctrl) {
		switch key.Code {
		case "Digit3", "Digit4", "KeyS":
			return true
		}
	}
	return false
}
