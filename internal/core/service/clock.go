package service

import (
	"sync"
	"time"
)

// Clock hands out millisecond timestamps that are strictly increasing within
// the process, so ids and tokens derived from them never repeat.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClock wraps now; a nil now falls back to time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Now returns the current UTC time truncated to milliseconds.
func (c *Clock) Now() time.Time {
	return c.now().UTC().Truncate(time.Millisecond)
}

// Next returns a unique timestamp. When the wall clock has not advanced since
// the previous call it is bumped by one millisecond.
func (c *Clock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return time.UnixMilli(ms).UTC()
}
