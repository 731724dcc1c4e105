package proctoring

// fullscreenState is the enforcement sub-state-machine's state. It is
// independent of one-shot violation logging: the persistent "must return"
// warning is driven by ExitedWarning, while the exit violation is logged
// once through the debounced report path.
type fullscreenState int

const (
	stateFullscreen fullscreenState = iota
	stateExitedWarning
)

type fullscreenTransition int

const (
	transitionNone fullscreenTransition = iota
	transitionExited
	transitionReentered
)

type fullscreenMachine struct {
	state fullscreenState
}

// newFullscreenMachine starts in Fullscreen: activation requests exclusive
// display mode best-effort, and a denied request surfaces as the next
// non-fullscreen change signal.
func newFullscreenMachine() *fullscreenMachine {
	return &fullscreenMachine{state: stateFullscreen}
}

// Apply consumes a fullscreen-change signal. Exiting raises the coupled
// violation (handled by the caller); re-entering is the desired corrective
// action and raises nothing. Repeated signals in the same state produce no
// transition, so remaining in ExitedWarning never re-logs.
func (m *fullscreenMachine) Apply(fullscreen bool) fullscreenTransition {
	switch {
	case m.state == stateFullscreen && !fullscreen:
		m.state = stateExitedWarning
		return transitionExited
	case m.state == stateExitedWarning && fullscreen:
		m.state = stateFullscreen
		return transitionReentered
	default:
		return transitionNone
	}
}

func (m *fullscreenMachine) Exited() bool {
	return m.state == stateExitedWarning
}
