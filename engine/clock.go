package engine

import (
	"sync"
	"time"
)

// WallClock reads the system clock, monotonic readings included
// It backs the deferred queue, which must not follow timeline pause or speed
type WallClock struct{}

// NewWallClock returns the system clock
func NewWallClock() WallClock {
	return WallClock{}
}

// Now returns the current time
func (WallClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to; safe for concurrent use
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock starts a manual clock at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the manual time
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d, negative d is ignored
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set jumps the clock to t, backwards included
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
