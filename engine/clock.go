package engine

import "time"

// Clock measures time since the engine started running.
type Clock struct {
	now     func() time.Time
	start   time.Time
	last    time.Time
	running bool
}

// NewClock creates a stopped clock reading time from now. A nil now uses time.Now.
//
// Parameters:
//   - now: the time source
//
// Returns:
//   - *Clock: the clock
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start resets the clock to zero and starts it.
func (c *Clock) Start() {
	c.start = c.now()
	c.last = c.start
	c.running = true
}

// Running reports whether the clock has been started.
func (c *Clock) Running() bool {
	return c.running
}

// ElapsedTime returns the seconds since Start. A stopped clock is started first.
//
// Returns:
//   - float32: elapsed seconds
func (c *Clock) ElapsedTime() float32 {
	if !c.running {
		c.Start()
	}
	return float32(c.now().Sub(c.start).Seconds())
}

// Delta returns the seconds since the previous Delta call, or since Start.
//
// Returns:
//   - float32: seconds since the last call
func (c *Clock) Delta() float32 {
	if !c.running {
		c.Start()
		return 0
	}
	now := c.now()
	dt := float32(now.Sub(c.last).Seconds())
	c.last = now
	return dt
}
