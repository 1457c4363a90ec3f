// Package testutil holds helpers shared by tests.
package testutil

import (
	"sync"
	"time"
)

// Clock provides deterministic, monotonically increasing times.
// It is safe for concurrent use.
type Clock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewClock returns a clock starting at 2024-01-01T00:00:00Z that advances
// one second per call to Now.
func NewClock() *Clock {
	return NewClockAt(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), time.Second)
}

// NewClockAt returns a clock whose first Now returns start. A zero step
// freezes the clock.
func NewClockAt(start time.Time, step time.Duration) *Clock {
	return &Clock{current: start.Add(-step), step: step}
}

// Now advances the clock by one step and returns the new time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.current.Add(c.step)

	return c.current
}

// Set moves the clock so the next Now returns t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = t.Add(-c.step)
}
