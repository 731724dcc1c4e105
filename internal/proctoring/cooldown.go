package proctoring

import "time"

// DefaultCooldown is the minimum gap between accepted violations of any kind.
const DefaultCooldown = 2000 * time.Millisecond

// cooldownFilter suppresses reports arriving within the cooldown window of
// the previous accepted report. The window is global across all violation
// types, not type-scoped: a copy immediately followed by a paste records
// only the copy. That undercounts genuinely distinct violations in rapid
// succession, but it is the behavior the backend counts were calibrated
// against, so it stays.
type cooldownFilter struct {
	window         time.Duration
	now            func() time.Time
	lastAcceptedAt time.Time
}

func newCooldownFilter(window time.Duration, now func() time.Time) *cooldownFilter {
	if window <= 0 {
		window = DefaultCooldown
	}
	if now == nil {
		now = time.Now
	}
	return &cooldownFilter{
		window: window,
		now:    now,
	}
}

// Accept reports whether a violation arriving now passes the filter, and
// records the acceptance timestamp when it does. Suppressed calls leave the
// registry untouched.
func (f *cooldownFilter) Accept() bool {
	ts := f.now()
	if !f.lastAcceptedAt.IsZero() && ts.Sub(f.lastAcceptedAt) < f.window {
		return false
	}
	f.lastAcceptedAt = ts
	return true
}

// Reset clears the registry. Called on session teardown.
func (f *cooldownFilter) Reset() {
	f.lastAcceptedAt = time.Time{}
}
