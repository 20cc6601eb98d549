package engine

import "time"

// Clock supplies the current local time for day-boundary and month checks.
// Tests substitute a manual implementation; ticks themselves are injected by
// calling Tick, never read from the clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the host's local wall clock.
func SystemClock() Clock { return systemClock{} }

// DateOf reduces a time to its local calendar date in ISO form (2006-01-02).
// All day-boundary comparisons in the engine go through this so that DST
// shifts and restarts compare dates, not elapsed durations.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
