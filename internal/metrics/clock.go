// Package metrics implements the dashboard aggregation engine. It is a
// pure function of its inputs: the caller fetches the named task/event
// subsets and injects a reference clock, and the engine reduces them
// into one DashboardMetrics object. Nothing in this package reads the
// system clock or touches storage.
package metrics

import "time"

// ReferenceClock is the injected "now" every relative window (today,
// this week, the 5-year trend) is computed against. Injecting it keeps
// a full assembly deterministic and repeatable.
type ReferenceClock struct {
	t time.Time
}

// NewReferenceClock creates a reference clock fixed at t
func NewReferenceClock(t time.Time) ReferenceClock {
	return ReferenceClock{t: t}
}

// IsZero reports whether the clock was never set
func (c ReferenceClock) IsZero() bool {
	return c.t.IsZero()
}

// Time returns the reference instant
func (c ReferenceClock) Time() time.Time {
	return c.t
}

// Year returns the reference calendar year
func (c ReferenceClock) Year() int {
	return c.t.Year()
}

// Today returns midnight of the reference day, in the clock's location
func (c ReferenceClock) Today() time.Time {
	return time.Date(c.t.Year(), c.t.Month(), c.t.Day(), 0, 0, 0, 0, c.t.Location())
}
