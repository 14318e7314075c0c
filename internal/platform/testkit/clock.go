package testkit

import (
	"sync"
	"time"
)

// Clock is a settable time source for code that takes a now func
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// FixedClock returns a Clock stopped at t
func FixedClock(t time.Time) *Clock { return &Clock{t: t} }

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Date is a short time.Date for calendar days in loc
func Date(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
