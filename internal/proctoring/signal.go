package proctoring

import (
	"fmt"
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
)

// SignalKind identifies a raw platform event pushed into the engine by the
// host shell (browser bridge or native app shell).
type SignalKind string

const (
	SignalVisibilityChange SignalKind = "visibility_change"
	SignalWindowBlur       SignalKind = "window_blur"
	SignalWindowFocus      SignalKind = "window_focus"
	SignalFullscreenChange SignalKind = "fullscreen_change"
	SignalKeyDown          SignalKind = "key_down"
	SignalContextMenu      SignalKind = "context_menu"
	SignalClipboardCopy    SignalKind = "clipboard_copy"
	SignalClipboardPaste   SignalKind = "clipboard_paste"
	SignalAppStateChange   SignalKind = "app_state_change"
	SignalScreenshotTaken  SignalKind = "screenshot_taken"
)

// App lifecycle states reported by the native shell.
const (
	AppStateActive     = "active"
	AppStateInactive   = "inactive"
	AppStateBackground = "background"
)

// Key describes a key press with its modifier state. Code follows the
// DOM KeyboardEvent.code naming ("PrintScreen", "KeyC", "Digit3").
type Key struct {
	Code  string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

func (k Key) String() string {
	prefix := ""
	if k.Meta {
		prefix += "Meta+"
	}
	if k.Ctrl {
		prefix += "Ctrl+"
	}
	if k.Alt {
		prefix += "Alt+"
	}
	if k.Shift {
		prefix += "Shift+"
	}
	return prefix + k.Code
}

// Signal is one normalized raw event. Only the fields relevant to its Kind
// are populated: State for visibility and app-state changes, Fullscreen for
// fullscreen changes, Key for key presses.
type Signal struct {
	Kind       SignalKind
	State      string
	Fullscreen bool
	Key        Key
}

// Candidate is a classified violation before debouncing.
type Candidate struct {
	Type    models.ViolationType
	Details string
}

// Action is the outcome of classifying one raw signal. Consumed tells the
// host to cancel the platform default (blocked shortcut, context menu).
// Pointer fields are nil when the signal does not touch that piece of state.
type Action struct {
	Consumed   bool
	Violation  *Candidate
	Notice     *Notice
	TabVisible *bool
	Fullscreen *bool
}

// Violation is one accepted occurrence in the session's append-only log.
// The timestamp is the client clock at detection time.
type Violation struct {
	Type      models.ViolationType `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Details   string               `json:"details"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at %s: %s", v.Type, v.Timestamp.Format(time.RFC3339), v.Details)
}
