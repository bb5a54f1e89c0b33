// Package idle decides when a burst of scroll events has settled so the
// host can return a grid engine to the Idle phase.
package idle

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan is the interval between the first and last scroll of a burst.
type TimeSpan = timespan.TimeSpan

// Tracker debounces scroll activity. The zero value settles immediately
// after every touch.
type Tracker struct {
	Quiet time.Duration

	first, last time.Time
	active      bool
}

func New(quiet time.Duration) *Tracker {
	return &Tracker{Quiet: quiet}
}

// Touch records a scroll at now, opening a burst if none is active.
func (t *Tracker) Touch(now time.Time) {
	if !t.active {
		t.first = now
		t.active = true
	}
	t.last = now
}

func (t *Tracker) Active() bool {
	return t.active
}

// Deadline is the earliest time the current burst can settle. It is false
// when no burst is active.
func (t *Tracker) Deadline() (time.Time, bool) {
	if !t.active {
		return time.Time{}, false
	}
	return t.last.Add(t.Quiet), true
}

// Settle closes the burst once Quiet has passed since the last touch and
// returns its span.
func (t *Tracker) Settle(now time.Time) (TimeSpan, bool) {
	deadline, ok := t.Deadline()
	if !ok || now.Before(deadline) {
		return TimeSpan{}, false
	}
	t.active = false
	return timespan.BetweenTimes(t.first, t.last), true
}
