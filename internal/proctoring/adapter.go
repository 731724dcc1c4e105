package proctoring

import (
	"errors"

	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

// Platform identifies the hosting environment. Selected once at activation;
// detection logic never branches on it afterwards.
type Platform string

const (
	PlatformWeb    Platform = "web"
	PlatformMobile Platform = "mobile"
)

// ErrUnsupported is returned by Host capabilities that the current shell
// cannot provide (e.g. screen-capture prevention on older devices).
var ErrUnsupported = errors.New("capability not supported by host")

// Host is implemented by the embedding shell. It exposes the host-global
// capabilities the engine needs; signal delivery happens separately through
// Session.HandleSignal.
type Host interface {
	Platform() Platform

	// RequestFullscreen asks the host to enter exclusive display mode.
	RequestFullscreen() error

	// ExitFullscreen leaves exclusive display mode. Called during teardown
	// after monitoring is disabled, so the resulting fullscreen-change signal
	// is never logged.
	ExitFullscreen() error

	// SetScreenCaptureBlocked toggles OS-level capture prevention.
	// Hosts without the capability return ErrUnsupported.
	SetScreenCaptureBlocked(blocked bool) error
}

// SignalSource translates raw platform signals into classified actions.
// Implementations keep only adapter-local state; all session state (log,
// cooldown, flags) is owned by the Session.
type SignalSource interface {
	Platform() Platform

	// Attach performs activation-time setup (fullscreen request, capture
	// blocking). Setup failures are surfaced as notices by the caller and
	// never abort activation.
	Attach() error

	// Detach reverses Attach best-effort. Each teardown step runs
	// independently; all failures are returned.
	Detach() []error

	// Classify maps one raw signal to its action. Never called while the
	// session is disabled.
	Classify(sig Signal) Action
}

// NewSignalSource builds the adapter for the host's platform.
func NewSignalSource(host Host, logger utils.Logger) SignalSource {
	if host.Platform() == PlatformMobile {
		return newMobileAdapter(host, logger)
	}
	return newWebAdapter(host, logger)
}
